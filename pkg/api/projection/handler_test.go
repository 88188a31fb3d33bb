package projection

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"saas_pnl/pkg/core/assumption"
	"saas_pnl/pkg/core/calc"
	coreProjection "saas_pnl/pkg/core/projection"
)

func newServer() http.Handler {
	return newServerWith(NewHandler(assumption.Default(), calc.DefaultARRGoal, "en", false))
}

func newServerWith(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/projection", h.Routes)
	return r
}

func do(t *testing.T, srv http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

type runBody struct {
	RunID    string                         `json:"run_id"`
	Months   []coreProjection.MonthlyRecord `json:"months"`
	Annual   []calc.AnnualSummary           `json:"annual"`
	Warnings []assumption.Violation         `json:"warnings"`
}

func TestHandleDefaults(t *testing.T) {
	rec := do(t, newServer(), http.MethodGet, "/api/projection/defaults", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}

	var doc assumption.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Apply(coreProjection.Assumptions{}) != assumption.Default() {
		t.Error("defaults endpoint should return the full base scenario")
	}
}

func TestHandleRun_EmptyBodyUsesBase(t *testing.T) {
	rec := do(t, newServer(), http.MethodPost, "/api/projection/run", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body runBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.RunID == "" || len(body.Months) != coreProjection.Months || len(body.Annual) != coreProjection.Years {
		t.Fatalf("unexpected payload: id=%q months=%d annual=%d", body.RunID, len(body.Months), len(body.Annual))
	}

	want := coreProjection.Run(assumption.Default())
	if body.Months[35].MRR != want[35].MRR {
		t.Errorf("final MRR: got %v, want %v", body.Months[35].MRR, want[35].MRR)
	}
	if len(body.Warnings) != 0 {
		t.Errorf("defaults should produce no warnings, got %v", body.Warnings)
	}
}

func TestHandleRun_Overrides(t *testing.T) {
	// trailing comma is repaired by the lenient parser
	rec := do(t, newServer(), http.MethodPost, "/api/projection/run", `{"deals_per_rep_quarter": 0,}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body runBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, m := range body.Months {
		if m.NewCustomers != 0 {
			t.Fatalf("month %d: expected no acquisition, got %v", m.Month, m.NewCustomers)
		}
	}
	if len(body.Warnings) != 1 || body.Warnings[0].Field != "deals_per_rep_quarter" {
		t.Errorf("expected one deals warning, got %+v", body.Warnings)
	}
}

func TestHandleRun_Strict(t *testing.T) {
	srv := newServer()
	payload := `{"mix": {"small_pct": 80, "mid_pct": 40}}`

	rec := do(t, srv, http.MethodPost, "/api/projection/run?strict=true", payload)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 in strict mode, got %d", rec.Code)
	}
	var vr ValidateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &vr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if vr.Valid || len(vr.Violations) == 0 {
		t.Errorf("expected violations, got %+v", vr)
	}

	rec = do(t, srv, http.MethodPost, "/api/projection/run", payload)
	if rec.Code != http.StatusOK {
		t.Errorf("expected non-strict run to succeed, got %d", rec.Code)
	}
}

func TestHandleRun_BadBody(t *testing.T) {
	rec := do(t, newServer(), http.MethodPost, "/api/projection/run", `{"founders": [`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleReport_Formats(t *testing.T) {
	srv := newServer()
	tests := []struct {
		format      string
		contentType string
		contains    string
	}{
		{"", "text/html", "<table>"},
		{"html", "text/html", "<table>"},
		{"markdown", "text/markdown", "## Annual Summary"},
		{"csv", "text/csv", "month,year,quarter"},
	}

	for _, tt := range tests {
		rec := do(t, srv, http.MethodPost, "/api/projection/report?format="+tt.format, "")
		if rec.Code != http.StatusOK {
			t.Errorf("[%s] expected 200, got %d", tt.format, rec.Code)
			continue
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, tt.contentType) {
			t.Errorf("[%s] content type: got %q", tt.format, ct)
		}
		if !strings.Contains(rec.Body.String(), tt.contains) {
			t.Errorf("[%s] body missing %q", tt.format, tt.contains)
		}
	}

	rec := do(t, srv, http.MethodPost, "/api/projection/report?format=pdf", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown format: expected 400, got %d", rec.Code)
	}
}

func TestHandleValidate(t *testing.T) {
	srv := newServer()

	rec := do(t, srv, http.MethodPost, "/api/projection/validate", `{"founders": 3}`)
	var vr ValidateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &vr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !vr.Valid || len(vr.Violations) != 0 {
		t.Errorf("expected valid, got %+v", vr)
	}

	rec = do(t, srv, http.MethodPost, "/api/projection/validate", `{"retention": {"monthly_churn_pct": 150}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("validate always answers 200, got %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &vr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if vr.Valid || len(vr.Violations) != 1 || vr.Violations[0].Field != "retention.monthly_churn_pct" {
		t.Errorf("expected one churn violation, got %+v", vr)
	}
}

func TestHandleRun_GoalMustBeFinitePositive(t *testing.T) {
	srv := newServer()
	for _, goal := range []string{"Inf", "-Inf", "NaN", "0", "-5", "lots"} {
		rec := do(t, srv, http.MethodPost, "/api/projection/run?goal="+goal, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("goal=%s: expected 400, got %d", goal, rec.Code)
		}
		rec = do(t, srv, http.MethodPost, "/api/projection/report?format=csv&goal="+goal, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("report goal=%s: expected 400, got %d", goal, rec.Code)
		}
	}

	rec := do(t, srv, http.MethodPost, "/api/projection/run?goal=50000000", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Headline calc.HeadlineMetrics `json:"headline"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Headline.ARRGoal != 50_000_000 {
		t.Errorf("goal override not applied, got %v", body.Headline.ARRGoal)
	}
}

func TestWriteJSON_EncodeFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]float64{"arr_goal": math.Inf(1)})

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 on encode failure, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "JSON_ENCODE_ERROR") {
		t.Errorf("expected error body, got %q", rec.Body.String())
	}
}

func TestHandleRun_StrictQueryCannotBeBypassed(t *testing.T) {
	srv := newServerWith(NewHandler(assumption.Default(), calc.DefaultARRGoal, "en", true))
	payload := `{"founders": 0}`

	rec := do(t, srv, http.MethodPost, "/api/projection/run", payload)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("strict server: expected 400, got %d", rec.Code)
	}

	for _, value := range []string{"bogus", "yes please", "2"} {
		rec = do(t, srv, http.MethodPost, "/api/projection/run?strict="+url.QueryEscape(value), payload)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("strict=%s: expected 400, got %d", value, rec.Code)
		}
	}

	rec = do(t, srv, http.MethodPost, "/api/projection/run?strict=false", payload)
	if rec.Code != http.StatusOK {
		t.Errorf("explicit strict=false should run, got %d", rec.Code)
	}
}

func TestHandleRun_OversizedBodyRejected(t *testing.T) {
	srv := newServer()
	body := `{"founders": 3,` + strings.Repeat(" ", 70*1024) + `"deals_per_rep_quarter": 9}`

	for _, target := range []string{"/api/projection/run", "/api/projection/report", "/api/projection/validate"} {
		rec := do(t, srv, http.MethodPost, target, body)
		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("%s: expected 413, got %d", target, rec.Code)
		}
	}

	// same overrides within the limit are honored
	rec := do(t, srv, http.MethodPost, "/api/projection/run", `{"founders": 3, "deals_per_rep_quarter": 9}`)
	var got runBody
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Months[2].NewCustomers != 27 {
		t.Errorf("month 3 new customers: got %v, want 27", got.Months[2].NewCustomers)
	}
}

func TestPreflight(t *testing.T) {
	srv := newServer()
	for _, target := range []string{"/api/projection/run", "/api/projection/report", "/api/projection/defaults"} {
		rec := do(t, srv, http.MethodOptions, target, "")
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", target, rec.Code)
		}
		if rec.Header().Get("Access-Control-Allow-Methods") == "" {
			t.Errorf("%s: missing CORS methods header", target)
		}
	}
}
