package main

import (
	"log"

	"dam-dash/config"
	"dam-dash/di"
	"dam-dash/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[MAIN] Invalid configuration: %v", err)
	}

	container, err := di.NewContainer(cfg, observability.NewMetrics())
	if err != nil {
		log.Fatalf("[MAIN] Failed to initialize container: %v", err)
	}
	defer container.Close()

	if err := container.DamDashHttpServer.Start(); err != nil {
		log.Printf("[MAIN] Server stopped with error: %v", err)
	}
}
