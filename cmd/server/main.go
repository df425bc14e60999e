package main

import (
	"log"
	"net/http"
	"os"

	"sketch-rooms/internal/config"
	"sketch-rooms/internal/db"
	"sketch-rooms/internal/server"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	conn, err := db.Open()
	if err != nil {
		log.Printf("running without database: %v", err)
		conn = nil
	} else {
		if err := db.ConfigurePool(conn, db.PoolConfig{
			MaxOpenConns:           cfg.DBMaxOpenConns,
			MaxIdleConns:           cfg.DBMaxIdleConns,
			ConnMaxLifetimeSeconds: cfg.DBConnMaxLifetimeSeconds,
			ConnMaxIdleTimeSeconds: cfg.DBConnMaxIdleTimeSeconds,
		}); err != nil {
			log.Fatalf("database pool configuration failed: %v", err)
		}
		if err := db.Migrate(conn); err != nil {
			log.Fatalf("database migration failed: %v", err)
		}
	}

	addr := ":8080"
	if env := os.Getenv("PORT"); env != "" {
		addr = ":" + env
	}

	srv := server.New(conn, cfg)
	log.Printf("sketch-rooms server listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatal(err)
	}
}
