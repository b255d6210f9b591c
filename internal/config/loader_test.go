package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing explicit file")
	}

	loadErr, ok := err.(*LoadError)
	if !ok {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	if loadErr.Path != "nonexistent/config.yaml" {
		t.Errorf("expected path 'nonexistent/config.yaml', got %q", loadErr.Path)
	}
	if loadErr.Message != "config file not found" {
		t.Errorf("expected message 'config file not found', got %q", loadErr.Message)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("LoadError should unwrap to os.ErrNotExist")
	}
}

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	originalDir, _ := os.Getwd()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(originalDir) }()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected defaults when no config exists, got %v", err)
	}
	if cfg.Data.Path != DefaultDataPath {
		t.Errorf("expected default data path, got %q", cfg.Data.Path)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
data:
  path: data/fight-songs.csv
  watch: false
  debounce: 2s

dashboard:
  top_k: 4
  default_conferences: 3
  min_radar_dimensions: 4
  decade_min: 1900
  decade_max: 1950
  decade_step: 10
  variant: Contest

server:
  addr: ":9000"
  read_timeout: 5s

log:
  level: debug
  dir: /tmp/fightsongs-logs
  json: true
  max_files: 3
  max_age: 24h
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify data settings
	if cfg.Data.Path != "data/fight-songs.csv" {
		t.Errorf("expected data.path 'data/fight-songs.csv', got %q", cfg.Data.Path)
	}
	if cfg.Data.Watch {
		t.Error("expected data.watch to be false")
	}
	if cfg.Data.Debounce != 2*time.Second {
		t.Errorf("expected data.debounce 2s, got %v", cfg.Data.Debounce)
	}

	// Verify dashboard settings
	d := cfg.Dashboard
	if d.TopK != 4 || d.DefaultConferences != 3 || d.MinRadarDimensions != 4 {
		t.Errorf("unexpected dashboard settings %+v", d)
	}
	if d.DecadeMin != 1900 || d.DecadeMax != 1950 {
		t.Errorf("unexpected decade range %d..%d", d.DecadeMin, d.DecadeMax)
	}
	if d.Variant != VariantContest {
		t.Errorf("expected variant 'contest' (lower-cased), got %q", d.Variant)
	}

	// Verify server and log settings
	if cfg.Server.Addr != ":9000" || cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("unexpected server settings %+v", cfg.Server)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.JSON || cfg.Log.MaxFiles != 3 || cfg.Log.MaxAge != 24*time.Hour {
		t.Errorf("unexpected log settings %+v", cfg.Log)
	}
}

func TestLoad_DefaultsApplied(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	// Minimal config - just the data path
	configContent := `
data:
  path: songs.csv
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Data.Path != "songs.csv" {
		t.Errorf("expected data.path 'songs.csv', got %q", cfg.Data.Path)
	}
	if !cfg.Data.Watch {
		t.Error("expected data.watch to keep its default of true")
	}
	if cfg.Dashboard.TopK != DefaultTopK {
		t.Errorf("expected default top_k %d, got %d", DefaultTopK, cfg.Dashboard.TopK)
	}
	if cfg.Server.Addr != DefaultServerAddr {
		t.Errorf("expected default server.addr %q, got %q", DefaultServerAddr, cfg.Server.Addr)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
data:
  path: songs.csv
dashboard:
  top_k: 4
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("FIGHTSONGS_DATA_PATH", "other.csv")
	t.Setenv("FIGHTSONGS_DATA_WATCH", "no")
	t.Setenv("FIGHTSONGS_DASHBOARD_TOP_K", "3")
	t.Setenv("FIGHTSONGS_DASHBOARD_VARIANT", "CONTEST")
	t.Setenv("FIGHTSONGS_SERVER_READ_TIMEOUT", "1m")
	t.Setenv("FIGHTSONGS_LOG_LEVEL", "error")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Data.Path != "other.csv" {
		t.Errorf("expected data.path 'other.csv' from env, got %q", cfg.Data.Path)
	}
	if cfg.Data.Watch {
		t.Error("expected data.watch false from env")
	}
	if cfg.Dashboard.TopK != 3 {
		t.Errorf("expected top_k 3 from env, got %d", cfg.Dashboard.TopK)
	}
	if cfg.Dashboard.Variant != VariantContest {
		t.Errorf("expected variant contest from env, got %q", cfg.Dashboard.Variant)
	}
	if cfg.Server.ReadTimeout != time.Minute {
		t.Errorf("expected read_timeout 1m from env, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("expected log.level 'error' from env, got %q", cfg.Log.Level)
	}
}

func TestLoad_InvalidEnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("data:\n  path: songs.csv\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("FIGHTSONGS_DASHBOARD_TOP_K", "many")

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("expected error for non-numeric top_k override")
	}
	if !strings.Contains(err.Error(), "FIGHTSONGS_DASHBOARD_TOP_K") {
		t.Errorf("error should name the variable, got %v", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
data:
  path: songs.csv
    watch: [broken
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	loadErr, ok := err.(*LoadError)
	if !ok {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	if loadErr.Message != "failed to read config file" {
		t.Errorf("unexpected message %q", loadErr.Message)
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
dashboard:
  min_radar_dimensions: 2
  variant: coach
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors in chain, got %v", err)
	}
	if len(verrs) != 2 {
		t.Errorf("expected 2 validation errors, got %d: %v", len(verrs), verrs)
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, ".fightsongs")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte("server:\n  addr: \":7000\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("LoadFromDir() error = %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("expected addr ':7000', got %q", cfg.Server.Addr)
	}
}

func TestParseBool(t *testing.T) {
	tests := map[string]bool{
		"true":  true,
		"TRUE":  true,
		"1":     true,
		"yes":   true,
		" Yes ": true,
		"false": false,
		"0":     false,
		"no":    false,
		"":      false,
	}
	for in, want := range tests {
		if got := parseBool(in); got != want {
			t.Errorf("parseBool(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSave_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ".fightsongs", "config.yaml")

	cfg := NewConfig()
	cfg.Data.Debounce = 750 * time.Millisecond
	cfg.Dashboard.Variant = VariantContest
	cfg.Data.Watch = false

	if err := Save(cfg, path, false); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "debounce: 750ms") {
		t.Errorf("durations should be written in Go syntax:\n%s", raw)
	}
	if !strings.HasPrefix(string(raw), "# fightsongs configuration.") {
		t.Error("saved file should start with the header comment")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() of saved file error = %v", err)
	}
	if loaded.Data.Debounce != 750*time.Millisecond {
		t.Errorf("debounce = %v after round trip", loaded.Data.Debounce)
	}
	if loaded.Dashboard.Variant != VariantContest || loaded.Data.Watch {
		t.Errorf("round trip lost values: %+v", loaded)
	}
	if loaded.Log.MaxAge != DefaultMaxLogAge {
		t.Errorf("max_age = %v after round trip", loaded.Log.MaxAge)
	}
}

func TestSave_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("data: {}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Save(NewConfig(), path, false); err == nil {
		t.Error("Save() should refuse to overwrite without force")
	}
	if err := Save(NewConfig(), path, true); err != nil {
		t.Errorf("Save() with force error = %v", err)
	}
}
