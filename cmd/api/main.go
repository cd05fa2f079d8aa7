package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"three_statements/pkg/api/run"
	"three_statements/pkg/core/config"
	"three_statements/pkg/core/store"
	"three_statements/pkg/logger"
)

func main() {
	// Load environment variables
	godotenv.Load()

	cfg := config.Default()
	if path := os.Getenv("ENGINE_CONFIG"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			log.Fatalf("Config error: %v", err)
		}
	}

	lg := logger.New()

	// The archive is optional: without DATABASE_URL the run endpoints still
	// work and the archive endpoints answer 503.
	var repo store.RunRepository
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(context.Background()); err != nil {
			log.Fatalf("Database error: %v", err)
		}
		defer store.Close()
		repo = store.NewRunRepo()
	} else {
		fmt.Println("[WARNING] DATABASE_URL not set, run archive disabled")
	}

	handler := run.NewHandler(cfg, repo, lg)
	http.HandleFunc("/api/run", handler.HandleRun)
	http.HandleFunc("/api/run/demo", handler.HandleDemo)
	http.HandleFunc("/api/runs", handler.HandleRecent)
	http.HandleFunc("/api/runs/get", handler.HandleGet)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("API server starting on :%s...\n", port)
	fmt.Println("  - POST /api/run        (submit TB/GL dataset)")
	fmt.Println("  - GET  /api/run/demo   (run the built-in dataset)")
	fmt.Println("  - GET  /api/runs       (recent archived runs)")
	fmt.Println("  - GET  /api/runs/get   (one archived run by id)")

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
