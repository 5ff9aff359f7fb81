// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"

	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/starrun/internal/app"
	"github.com/relabs-tech/starrun/internal/config"
)

func main() {
	configPath := flag.String("config", "./starrun_config.yaml", "path to configuration file")
	flag.Parse()

	log.Println("starting starrun game")

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunGame(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
