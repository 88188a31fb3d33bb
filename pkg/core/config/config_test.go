package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PNL_ADDR", "")
	os.Unsetenv("PNL_ADDR")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.Addr)
	}
	if cfg.ARRGoal != 100_000_000 {
		t.Errorf("expected default goal 1e8, got %v", cfg.ARRGoal)
	}
	if cfg.Locale != "ja" || cfg.Strict {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "test.env")
	content := "PNL_ARR_GOAL=250000000\nPNL_STRICT=true\n"
	if err := os.WriteFile(envPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv("PNL_ARR_GOAL")
		os.Unsetenv("PNL_STRICT")
	})

	cfg, err := Load(envPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ARRGoal != 250_000_000 || !cfg.Strict {
		t.Errorf("expected values from .env, got %+v", cfg)
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("PNL_ARR_GOAL", "lots")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("expected parse error, got nil")
	}
}

func TestBaseAssumptions(t *testing.T) {
	cfg := Config{}
	a, err := cfg.BaseAssumptions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Founders != 2 {
		t.Errorf("expected built-in defaults, got founders=%d", a.Founders)
	}

	path := filepath.Join(t.TempDir(), "base.hjson")
	if err := os.WriteFile(path, []byte("{\n  founders: 6\n}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.ScenarioFile = path
	a, err = cfg.BaseAssumptions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Founders != 6 {
		t.Errorf("expected founders 6 from scenario file, got %d", a.Founders)
	}

	cfg.ScenarioFile = filepath.Join(t.TempDir(), "nope.yaml")
	if _, err := cfg.BaseAssumptions(); err == nil {
		t.Error("expected error for missing scenario file")
	}
}
