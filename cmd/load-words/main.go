package main

import (
	"flag"
	"log"

	"sketch-rooms/internal/config"
	"sketch-rooms/internal/db"
)

func main() {
	filePath := flag.String("file", "words.csv", "path to words csv")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}

	conn, err := db.Open()
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	inserted, err := db.LoadWordLibrary(conn, *filePath)
	if err != nil {
		log.Fatalf("failed to load words: %v", err)
	}

	log.Printf("loaded %d words", inserted)
}
