package main

import (
	"context"
	"flag"
	"log"
	"os"

	"copartinv/internal/config"
	"copartinv/internal/db"
	"copartinv/internal/normalizer"
	"copartinv/internal/repository"
)

// go run cmd/normalizer/main.go -src=LotSearchresults_2025November15.csv -out=copart_inventory.json
func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()

	src := flag.String("src", cfg.CSVFile, "Arquivo CSV exportado da Copart (separado por ';')")
	out := flag.String("out", cfg.InventoryFile, "Arquivo JSON de inventário gerado")
	flag.Parse()

	ctx := context.Background()
	n := &normalizer.Normalizer{Source: *src, Output: *out}

	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("Erro ao conectar no Postgres (pgxpool): %v", err)
			return 1
		}
		defer pool.Close()

		repo := &repository.InventoryRepository{DB: pool}
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Printf("Erro ao preparar o schema: %v", err)
			return 1
		}
		n.Sink = repo
	}

	if !n.Run(ctx) {
		return 1
	}
	return 0
}
