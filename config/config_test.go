package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Data.Dir != "data" {
		t.Errorf("expected default data dir data, got %s", cfg.Data.Dir)
	}
	if cfg.Data.Structure != "structure.csv" {
		t.Errorf("expected default structure structure.csv, got %s", cfg.Data.Structure)
	}
	if cfg.Lookup.Similarity {
		t.Error("expected similarity scan disabled by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Logging.Level)
	}
	if cfg.Watch.Enabled {
		t.Error("expected watching disabled by default")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing structure",
			modify:  func(c *Config) { c.Data.Structure = "" },
			wantErr: true,
		},
		{
			name:    "missing activity index",
			modify:  func(c *Config) { c.Data.ActivityIndex = "" },
			wantErr: true,
		},
		{
			name:    "missing metadata",
			modify:  func(c *Config) { c.Data.Metadata = nil },
			wantErr: true,
		},
		{
			name:    "bad log level",
			modify:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "bad log format",
			modify:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
data:
  dir: /srv/sic
  structure: condensed.csv
  metadata:
    - shards/*.yaml
    - extra.yaml
lookup:
  similarity: true
logging:
  level: debug
  format: json
watch:
  enabled: true
  debounce_delay: 250ms
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Data.Dir != "/srv/sic" {
		t.Errorf("expected data dir /srv/sic, got %s", cfg.Data.Dir)
	}
	if cfg.Data.Structure != "condensed.csv" {
		t.Errorf("expected structure condensed.csv, got %s", cfg.Data.Structure)
	}
	// Unset entries keep their defaults
	if cfg.Data.ActivityIndex != "activity_index.csv" {
		t.Errorf("expected default activity index, got %s", cfg.Data.ActivityIndex)
	}
	if len(cfg.Data.Metadata) != 2 {
		t.Errorf("expected 2 metadata patterns, got %d", len(cfg.Data.Metadata))
	}
	if !cfg.Lookup.Similarity {
		t.Error("expected similarity scan enabled")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format json, got %s", cfg.Logging.Format)
	}
	if !cfg.Watch.Enabled {
		t.Error("expected watching enabled")
	}
	if cfg.Watch.DebounceDelay != "250ms" {
		t.Errorf("expected debounce 250ms, got %s", cfg.Watch.DebounceDelay)
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		Data: DataConfig{
			Dir:       "/override",
			Structure: "other.csv",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}

	base.Merge(override)

	if base.Data.Dir != "/override" {
		t.Errorf("expected data dir /override, got %s", base.Data.Dir)
	}
	if base.Data.Structure != "other.csv" {
		t.Errorf("expected structure other.csv, got %s", base.Data.Structure)
	}
	// Activity index should remain from base since override didn't set it
	if base.Data.ActivityIndex != "activity_index.csv" {
		t.Errorf("expected activity index to remain default, got %s", base.Data.ActivityIndex)
	}
	if base.Logging.Level != "warn" {
		t.Errorf("expected log level warn, got %s", base.Logging.Level)
	}
	if base.Logging.Format != "text" {
		t.Errorf("expected log format to remain text, got %s", base.Logging.Format)
	}
}

func TestDataPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Data.Dir = "/srv/sic"
	cfg.Data.Rephrased = "/elsewhere/rephrased.csv"
	cfg.Data.Descriptions = ""

	paths := cfg.DataPaths()

	if paths.Structure != filepath.Join("/srv/sic", "structure.csv") {
		t.Errorf("unexpected structure path: %s", paths.Structure)
	}
	if len(paths.Metadata) != 1 || paths.Metadata[0] != filepath.Join("/srv/sic", "metadata/*.yaml") {
		t.Errorf("unexpected metadata patterns: %v", paths.Metadata)
	}
	// Absolute paths pass through unchanged
	if paths.Rephrased != "/elsewhere/rephrased.csv" {
		t.Errorf("unexpected rephrased path: %s", paths.Rephrased)
	}
	// Empty paths stay empty rather than resolving to the data dir
	if paths.Descriptions != "" {
		t.Errorf("expected empty descriptions path, got %s", paths.Descriptions)
	}
}

func TestLoaderLoadPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "sicindex.yaml")

	content := "data:\n  dir: " + tmpDir + "\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := NewLoader(nil).LoadPath(configPath)
	if err != nil {
		t.Fatalf("LoadPath() error = %v", err)
	}
	if cfg.Data.Dir != tmpDir {
		t.Errorf("expected data dir %s, got %s", tmpDir, cfg.Data.Dir)
	}
}

func TestLoaderEnvOverrides(t *testing.T) {
	t.Setenv(EnvDataDir, "/env/data")
	t.Setenv(EnvLogLevel, "error")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "sicindex.yaml")
	if err := os.WriteFile(configPath, []byte("logging:\n  level: debug\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := NewLoader(nil).LoadPath(configPath)
	if err != nil {
		t.Fatalf("LoadPath() error = %v", err)
	}
	if cfg.Data.Dir != "/env/data" {
		t.Errorf("expected env data dir, got %s", cfg.Data.Dir)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("expected env log level error, got %s", cfg.Logging.Level)
	}
}

func TestLoaderEnvValidation(t *testing.T) {
	t.Setenv(EnvLogLevel, "shouty")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "sicindex.yaml")
	if err := os.WriteFile(configPath, []byte("data:\n  dir: .\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := NewLoader(nil).LoadPath(configPath); err == nil {
		t.Error("expected validation error for bad env log level")
	}
}
