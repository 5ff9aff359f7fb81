package telemetry

import (
	"encoding/json"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/starrun/internal/config"
	"github.com/relabs-tech/starrun/internal/filter"
	"github.com/relabs-tech/starrun/internal/game"
)

// Publisher pushes attitude and game snapshots to MQTT. It is an optional
// side channel: the tick loop never waits on a publish.
type Publisher struct {
	client        mqtt.Client
	topicAttitude string
	topicGame     string
}

// Connect dials the configured broker.
func Connect() (*Publisher, error) {
	cfg := config.Get()

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Telemetry.Broker).
		SetClientID(cfg.Telemetry.ClientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	log.Printf("telemetry: connected to MQTT broker at %s", cfg.Telemetry.Broker)

	return &Publisher{
		client:        client,
		topicAttitude: cfg.Telemetry.TopicAttitude,
		topicGame:     cfg.Telemetry.TopicGame,
	}, nil
}

// PublishAttitude publishes the latest roll/pitch. Fire-and-forget: errors
// surface on the next reconnect, not in the tick loop.
func (p *Publisher) PublishAttitude(att filter.Attitude) {
	payload, err := json.Marshal(att)
	if err != nil {
		log.Printf("telemetry: attitude marshal error: %v", err)
		return
	}
	p.client.Publish(p.topicAttitude, 0, true, payload)
}

// PublishGame publishes the machine snapshot.
func (p *Publisher) PublishGame(snap game.Snapshot) {
	payload, err := json.Marshal(snap)
	if err != nil {
		log.Printf("telemetry: game marshal error: %v", err)
		return
	}
	p.client.Publish(p.topicGame, 0, true, payload)
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
