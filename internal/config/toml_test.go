package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/bananatype/internal/model"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Practice.Lang != nil {
		t.Fatalf("expected empty config")
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[practice]
lang = "de"
punct = 0.25
seed = 42

[theme]
correct = "#00FF00"

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Practice.Lang == nil || *cfg.Practice.Lang != "de" {
		t.Fatalf("unexpected lang: %v", cfg.Practice.Lang)
	}
	if cfg.Practice.PunctPct == nil || *cfg.Practice.PunctPct != 0.25 {
		t.Fatalf("unexpected punct: %v", cfg.Practice.PunctPct)
	}
	if cfg.Practice.CapsPct != nil {
		t.Fatalf("caps should stay unset")
	}
	if cfg.Practice.Seed == nil || *cfg.Practice.Seed != 42 {
		t.Fatalf("unexpected seed: %v", cfg.Practice.Seed)
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level: %v", cfg.Log.Level)
	}

	theme := cfg.Theme.ApplyTheme(model.DefaultTheme())
	if theme.Correct != "#00FF00" {
		t.Fatalf("expected correct color override, got %s", theme.Correct)
	}
	if theme.Incorrect != model.DefaultTheme().Incorrect {
		t.Fatalf("expected default incorrect color, got %s", theme.Incorrect)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[practice]\nduration = 60\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "practice.duration") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_STATE_HOME", "/state")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "bananatype", "config.toml") {
		t.Fatalf("unexpected config path %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "bananatype", "corpus.db") {
		t.Fatalf("unexpected db path %s", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/state", "bananatype", "debug.log") {
		t.Fatalf("unexpected log path %s", got)
	}
}
