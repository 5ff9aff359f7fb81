package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/starrun/internal/config"
	"github.com/relabs-tech/starrun/internal/filter"
	"github.com/relabs-tech/starrun/internal/game"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local dashboard, any origin
	},
}

// dashboardState is the combined view pushed to browsers.
type dashboardState struct {
	Attitude filter.Attitude `json:"attitude"`
	Game     game.Snapshot   `json:"game"`
}

// RunWeb subscribes to the game's telemetry topics and serves a live
// dashboard: JSON snapshot under /api/state, a websocket stream under /ws,
// and static files from ./web.
func RunWeb() error {
	cfg := config.Get()

	var (
		mu    sync.RWMutex
		state dashboardState
		have  bool
	)

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Telemetry.Broker).
		SetClientID(cfg.Telemetry.ClientIDWeb)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: connected to MQTT broker at %s", cfg.Telemetry.Broker)

	token := client.Subscribe(cfg.Telemetry.TopicAttitude, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var att filter.Attitude
		if err := json.Unmarshal(msg.Payload(), &att); err != nil {
			log.Printf("web: attitude unmarshal error: %v", err)
			return
		}
		mu.Lock()
		state.Attitude = att
		have = true
		mu.Unlock()
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}

	token = client.Subscribe(cfg.Telemetry.TopicGame, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var snap game.Snapshot
		if err := json.Unmarshal(msg.Payload(), &snap); err != nil {
			log.Printf("web: game unmarshal error: %v", err)
			return
		}
		mu.Lock()
		state.Game = snap
		have = true
		mu.Unlock()
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: subscribed to %s and %s", cfg.Telemetry.TopicAttitude, cfg.Telemetry.TopicGame)

	http.HandleFunc("/api/state", func(w http.ResponseWriter, r *http.Request) {
		mu.RLock()
		defer mu.RUnlock()

		if !have {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(state); err != nil {
			log.Printf("web: json encode error: %v", err)
		}
	})

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("web: websocket upgrade error: %v", err)
			return
		}
		defer conn.Close()

		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		for range ticker.C {
			mu.RLock()
			snapshot := state
			ok := have
			mu.RUnlock()

			if !ok {
				continue
			}
			if err := conn.WriteJSON(snapshot); err != nil {
				log.Printf("web: websocket write error: %v", err)
				return
			}
		}
	})

	http.Handle("/", http.FileServer(http.Dir("web")))

	addr := fmt.Sprintf(":%d", cfg.Web.Port)
	log.Printf("web server listening on %s", addr)
	return http.ListenAndServe(addr, nil)
}
