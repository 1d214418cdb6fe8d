package main

import (
	"log"
	"net/http"
	"time"

	"copartinv/internal/config"
	"copartinv/internal/inventory"
	"copartinv/internal/observability"
)

func main() {
	cfg := config.Load()

	observability.Start(cfg.MetricsPort)

	router := inventory.NewRouter(&inventory.Store{Path: cfg.InventoryFile})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("API de inventário rodando em %s (arquivo: %s)", cfg.Addr(), cfg.InventoryFile)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Servidor encerrado: %v", err)
	}
}
