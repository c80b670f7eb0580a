package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8080 || cfg.Renderer != "styled" {
		t.Errorf("port=%d renderer=%q", cfg.Port, cfg.Renderer)
	}
	if cfg.Grid.Rows != 4 || cfg.Grid.Cols != 4 || cfg.Grid.Margin != 10 || cfg.Large.Margin != 20 {
		t.Errorf("layout defaults = %+v %+v", cfg.Grid, cfg.Large)
	}
	if cfg.Page.Format != "A4" || cfg.Page.Orientation != "P" || cfg.Page.Unit != "mm" {
		t.Errorf("page defaults = %+v", cfg.Page)
	}
	if cfg.Session.TTL != 2*time.Hour {
		t.Errorf("session ttl = %v", cfg.Session.TTL)
	}
	if cfg.Defaults.Dots != "rounded" || cfg.Defaults.Corners != "extra-rounded" || !cfg.Defaults.BuiltinLogo {
		t.Errorf("style defaults = %+v", cfg.Defaults)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("QRSHEET_GRID_ROWS", "3")
	t.Setenv("QRSHEET_RENDERER", "plain")
	t.Setenv("QRSHEET_SESSION_TTL", "15m")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("port = %d, want 9000 from PORT", cfg.Port)
	}
	if cfg.Grid.Rows != 3 || cfg.Renderer != "plain" || cfg.Session.TTL != 15*time.Minute {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Addr() != ":9000" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("PORT", "")
	path := filepath.Join(dir, "custom.yaml")
	yaml := "page:\n  orientation: L\ngrid:\n  cols: 2\ndefaults:\n  dots: dots\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Page.Orientation != "L" || cfg.Grid.Cols != 2 || cfg.Defaults.Dots != "dots" {
		t.Errorf("file values not applied: %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "")

	tests := map[string]string{
		"QRSHEET_RENDERER":      "fancy",
		"QRSHEET_GRID_ROWS":     "0",
		"QRSHEET_DEFAULTS_DOTS": "stars",
		"QRSHEET_PREVIEW_SIZE":  "64",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(""); err == nil {
				t.Errorf("%s=%s: expected error", key, value)
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := Load("does-not-exist.yaml"); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}
