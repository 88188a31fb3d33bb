package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"saas_pnl/pkg/api/config"
	"saas_pnl/pkg/api/projection"
	coreConfig "saas_pnl/pkg/core/config"
)

func main() {
	// Load .env and process environment
	cfg, err := coreConfig.Load()
	if err != nil {
		fmt.Printf("[FATAL] Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	base, err := cfg.BaseAssumptions()
	if err != nil {
		fmt.Printf("[FATAL] Failed to load base scenario: %v\n", err)
		os.Exit(1)
	}
	if cfg.ScenarioFile != "" {
		fmt.Printf("[SCENARIO] Loaded base scenario from %s\n", cfg.ScenarioFile)
	}

	projectionHandler := projection.NewHandler(base, cfg.ARRGoal, cfg.Locale, cfg.Strict)
	projectionHandler.AllowedOrigin = cfg.AllowedOrigin
	configHandler := config.NewHandler(projectionHandler, cfg.ScenarioFile)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Config endpoints
	r.Get("/api/config", configHandler.HandleConfig)
	r.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	// Projection endpoints
	r.Route("/api/projection", projectionHandler.Routes)

	fmt.Printf("API server starting on %s...\n", cfg.Addr)
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")
	fmt.Println("  - GET  /api/projection/defaults")
	fmt.Println("  - POST /api/projection/run  (?strict=true, ?goal=)")
	fmt.Println("  - POST /api/projection/report  (?format=html|markdown|csv)")
	fmt.Println("  - POST /api/projection/validate")

	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
