package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/starrun/internal/app"
	"github.com/relabs-tech/starrun/internal/config"
)

func main() {
	log.Println("starting starrun simulator (mock accelerometer, console output)")

	config.InitGlobalDefaults()

	if err := app.RunSim(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
