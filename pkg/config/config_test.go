package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestValidateRejectsBadMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Execution.DefaultMode = "bogus"
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() = nil, want error for bad default_mode")
	}
}

func TestValidateRejectsEmptyOutputDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Reporting.OutputDir = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() = nil, want error for empty output_dir")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("CHAOS_TEST_OUTPUT_DIR", "/tmp/chaos-reports")

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "reporting:\n  output_dir: \"${CHAOS_TEST_OUTPUT_DIR}\"\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Reporting.OutputDir != "/tmp/chaos-reports" {
		t.Errorf("Reporting.OutputDir = %q, want expanded env var", cfg.Reporting.OutputDir)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Prometheus.Enabled = true
	cfg.Prometheus.Port = 9999

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Prometheus.Port != 9999 {
		t.Errorf("Prometheus.Port = %d, want 9999", loaded.Prometheus.Port)
	}
}
