// Package config loads runtime settings from the environment (and an optional .env file).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"saas_pnl/pkg/core/assumption"
	"saas_pnl/pkg/core/projection"
)

// Config holds settings shared by the API server and the calc-engine CLI.
type Config struct {
	Addr          string  `env:"PNL_ADDR" envDefault:":8080"`
	ScenarioFile  string  `env:"PNL_SCENARIO_FILE"` // base scenario (json, yaml or hjson); built-in defaults when empty
	ARRGoal       float64 `env:"PNL_ARR_GOAL" envDefault:"100000000"`
	Locale        string  `env:"PNL_LOCALE" envDefault:"ja"`
	Strict        bool    `env:"PNL_STRICT" envDefault:"false"`
	AllowedOrigin string  `env:"PNL_ALLOWED_ORIGIN" envDefault:"*"`
}

// Load reads .env files (default: ./.env) and parses the environment into Config.
// A missing .env file is not an error.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
		log.Println("[CONFIG] .env file not found, using process environment")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// BaseAssumptions returns the scenario every request overlays.
func (c Config) BaseAssumptions() (projection.Assumptions, error) {
	if c.ScenarioFile == "" {
		return assumption.Default(), nil
	}
	a, err := assumption.LoadFile(c.ScenarioFile)
	if err != nil {
		return projection.Assumptions{}, fmt.Errorf("base scenario: %w", err)
	}
	return a, nil
}
