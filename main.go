package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/mandazavee22/Pharmaceutical-Inventory-Tracking/internal/api"
	"github.com/mandazavee22/Pharmaceutical-Inventory-Tracking/internal/config"
	"github.com/mandazavee22/Pharmaceutical-Inventory-Tracking/internal/database"
	"github.com/mandazavee22/Pharmaceutical-Inventory-Tracking/internal/migrations"
	"github.com/mandazavee22/Pharmaceutical-Inventory-Tracking/internal/seed"
	"github.com/mandazavee22/Pharmaceutical-Inventory-Tracking/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	db := database.Connect(cfg.DatabaseDSN)
	defer db.Close()

	migrations.Run(db)
	if cfg.SeedItems != "" {
		seed.LoadItems(db, cfg.SeedItems)
	}

	handler := api.New(store.New(db), cfg.Secret)

	log.Printf("inventory tracker starting on :%s", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
