package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jeongseonghan/ofdm-phy/internal/config"
	"github.com/jeongseonghan/ofdm-phy/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Server.Listen = *addr
	}

	var metrics *server.Metrics
	if cfg.Server.EnableMetrics {
		metrics = server.NewMetrics()
	}

	handlers := server.NewHandlers(cfg.PHY.DefaultRateMbps, byte(cfg.PHY.ScramblerSeed), metrics)
	srv := server.NewServer(cfg.Server.Listen, handlers, cfg.Server.EnableMetrics)

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		os.Exit(0)
	}()

	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
