// Package projection exposes the projection engine over HTTP.
// Every request re-runs the engine on a fresh assumptions snapshot.
package projection

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"saas_pnl/pkg/core/assumption"
	coreProjection "saas_pnl/pkg/core/projection"
	"saas_pnl/pkg/core/report"
)

const maxBodyBytes = 64 * 1024

// Settings are the per-server defaults a request can override via query parameters.
type Settings struct {
	Goal   float64 `json:"arr_goal"`
	Locale string  `json:"locale"`
	Strict bool    `json:"strict"`
}

// Handler holds the base scenario and rendering settings.
type Handler struct {
	Base          coreProjection.Assumptions
	AllowedOrigin string

	mu       sync.RWMutex
	settings Settings
}

// NewHandler creates a projection handler over a base scenario
func NewHandler(base coreProjection.Assumptions, goal float64, locale string, strict bool) *Handler {
	return &Handler{
		Base:          base,
		AllowedOrigin: "*",
		settings:      Settings{Goal: goal, Locale: locale, Strict: strict},
	}
}

// Settings returns a snapshot of the current settings.
func (h *Handler) Settings() Settings {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.settings
}

// UpdateSettings applies fn to the settings under the write lock.
func (h *Handler) UpdateSettings(fn func(*Settings)) Settings {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(&h.settings)
	return h.settings
}

// Routes mounts the projection endpoints under the given router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/defaults", h.HandleDefaults)
	r.Post("/run", h.HandleRun)
	r.Post("/report", h.HandleReport)
	r.Post("/validate", h.HandleValidate)
	r.Options("/*", h.HandleOptions)
}

// RunResponse is the body of a successful run.
type RunResponse struct {
	*report.Report
	Warnings []assumption.Violation `json:"warnings,omitempty"`
}

// ValidateResponse lists every out-of-range input.
type ValidateResponse struct {
	Valid      bool                   `json:"valid"`
	Violations []assumption.Violation `json:"violations"`
}

// HandleDefaults returns the base scenario as a full assumptions document.
func (h *Handler) HandleDefaults(w http.ResponseWriter, r *http.Request) {
	h.cors(w)
	writeJSON(w, http.StatusOK, assumption.FromAssumptions(h.Base))
}

// HandleRun projects the posted assumptions and returns records plus aggregates.
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	h.cors(w)
	start := time.Now()

	goal, err := h.goal(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	a, warnings, ok := h.readAssumptions(w, r)
	if !ok {
		return
	}

	rep := report.Build(a, goal)
	log.Printf("[API] run %s: %d months in %s (warnings: %d)", rep.RunID, len(rep.Months), time.Since(start), len(warnings))

	writeJSON(w, http.StatusOK, RunResponse{Report: rep, Warnings: warnings})
}

// HandleReport renders the projection as markdown, html or csv (?format=, default html).
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	h.cors(w)

	goal, err := h.goal(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	a, _, ok := h.readAssumptions(w, r)
	if !ok {
		return
	}

	rep := report.Build(a, goal)
	locale := r.URL.Query().Get("lang")
	if locale == "" {
		locale = h.Settings().Locale
	}
	f := report.NewFormatter(locale)

	switch format := r.URL.Query().Get("format"); format {
	case "", "html":
		page, err := rep.HTML(f)
		if err != nil {
			log.Printf("[ERROR] report %s: %v", rep.RunID, err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, page)

	case "markdown", "md":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		io.WriteString(w, rep.Markdown(f))

	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "projection-"+rep.RunID+".csv"))
		if err := report.WriteCSV(w, rep.Months); err != nil {
			log.Printf("[ERROR] csv %s: %v", rep.RunID, err)
		}

	default:
		http.Error(w, fmt.Sprintf("unknown format %q", format), http.StatusBadRequest)
		return
	}

	log.Printf("[API] report %s rendered", rep.RunID)
}

// HandleValidate checks the posted assumptions against input ranges. It always answers 200.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	h.cors(w)

	doc, err := decodeDocument(w, r)
	if err != nil {
		http.Error(w, err.Error(), bodyErrorStatus(err))
		return
	}

	resp := ValidateResponse{Valid: true, Violations: []assumption.Violation{}}
	if vs := violations(assumption.Validate(doc.Apply(h.Base))); len(vs) > 0 {
		resp.Valid = false
		resp.Violations = vs
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleOptions answers CORS preflight requests.
func (h *Handler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	h.cors(w)
	w.WriteHeader(http.StatusOK)
}

// readAssumptions decodes the body, overlays it on the base scenario and
// applies strict mode. It writes the error response itself when it returns false.
func (h *Handler) readAssumptions(w http.ResponseWriter, r *http.Request) (coreProjection.Assumptions, []assumption.Violation, bool) {
	strict := h.Settings().Strict
	if s := r.URL.Query().Get("strict"); s != "" {
		parsed, err := strconv.ParseBool(s)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid strict value %q", s), http.StatusBadRequest)
			return coreProjection.Assumptions{}, nil, false
		}
		strict = parsed
	}

	doc, err := decodeDocument(w, r)
	if err != nil {
		http.Error(w, err.Error(), bodyErrorStatus(err))
		return coreProjection.Assumptions{}, nil, false
	}

	a := doc.Apply(h.Base)
	vs := violations(assumption.Validate(a))

	if strict && len(vs) > 0 {
		writeJSON(w, http.StatusBadRequest, ValidateResponse{Valid: false, Violations: vs})
		return coreProjection.Assumptions{}, nil, false
	}
	return a, vs, true
}

// goal reads ?goal=, which must be a finite positive number.
func (h *Handler) goal(r *http.Request) (float64, error) {
	s := r.URL.Query().Get("goal")
	if s == "" {
		return h.Settings().Goal, nil
	}
	g, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(g) || math.IsInf(g, 0) || g <= 0 {
		return 0, fmt.Errorf("goal must be a finite positive number, got %q", s)
	}
	return g, nil
}

func (h *Handler) cors(w http.ResponseWriter) {
	origin := h.AllowedOrigin
	if origin == "" {
		origin = "*"
	}
	w.Header().Set("Access-Control-Allow-Origin", origin)
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// decodeDocument reads a lenient JSON assumptions document. An empty body means "no overrides".
// Bodies over maxBodyBytes are rejected, never truncated.
func decodeDocument(w http.ResponseWriter, r *http.Request) (assumption.Document, error) {
	if r.Body == nil {
		return assumption.Document{}, nil
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return assumption.Document{}, fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return assumption.Document{}, nil
	}
	return assumption.Parse(body, assumption.FormatJSON)
}

func bodyErrorStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func violations(err error) []assumption.Violation {
	var verr *assumption.ValidationError
	if errors.As(err, &verr) {
		return verr.Violations
	}
	return nil
}

// writeJSON encodes before writing the status so an encode failure becomes a 500.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Printf("[ERROR] encode response: %v", err)
		http.Error(w, "JSON_ENCODE_ERROR: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
