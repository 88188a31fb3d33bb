package config

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"golang.org/x/text/language"

	"saas_pnl/pkg/api/projection"
)

// Response reports the live server settings.
type Response struct {
	projection.Settings
	ScenarioFile string   `json:"scenario_file,omitempty"`
	Locales      []string `json:"locales"`
}

// SwitchRequest changes server defaults. Nil fields are left alone.
type SwitchRequest struct {
	Locale *string  `json:"locale"`
	Strict *bool    `json:"strict"`
	Goal   *float64 `json:"arr_goal"`
}

var supportedLocales = []string{"ja", "en", "en-US", "de", "fr"}

// Handler holds dependencies for config endpoints
type Handler struct {
	Projection   *projection.Handler
	ScenarioFile string
}

// NewHandler creates a new config handler
func NewHandler(p *projection.Handler, scenarioFile string) *Handler {
	return &Handler{
		Projection:   p,
		ScenarioFile: scenarioFile,
	}
}

func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	// Add CORS headers for local dev
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	resp := Response{
		Settings:     h.Projection.Settings(),
		ScenarioFile: h.ScenarioFile,
		Locales:      supportedLocales,
	}
	json.NewEncoder(w).Encode(resp)
}

func (h *Handler) HandleSwitch(w http.ResponseWriter, r *http.Request) {
	// Add CORS headers
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req SwitchRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Locale != nil {
		if _, err := language.Parse(*req.Locale); err != nil {
			http.Error(w, fmt.Sprintf("invalid locale %q: %v", *req.Locale, err), http.StatusBadRequest)
			return
		}
	}
	if req.Goal != nil && *req.Goal <= 0 {
		http.Error(w, "arr_goal must be positive", http.StatusBadRequest)
		return
	}

	s := h.Projection.UpdateSettings(func(s *projection.Settings) {
		if req.Locale != nil {
			s.Locale = *req.Locale
		}
		if req.Strict != nil {
			s.Strict = *req.Strict
		}
		if req.Goal != nil {
			s.Goal = *req.Goal
		}
	})
	log.Printf("[CONFIG] settings switched: locale=%s strict=%t goal=%.0f", s.Locale, s.Strict, s.Goal)

	fmt.Fprintf(w, "Success: locale=%s strict=%t arr_goal=%.0f", s.Locale, s.Strict, s.Goal)
}
