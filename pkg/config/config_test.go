package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.App.Port != ":8080" {
		t.Errorf("Expected default port :8080, got %s", cfg.App.Port)
	}
	if cfg.Processor.NumWorkers != 4 {
		t.Errorf("Expected 4 workers, got %d", cfg.Processor.NumWorkers)
	}
	if cfg.Generator.Interval != 100*time.Millisecond {
		t.Errorf("Expected 100ms interval, got %v", cfg.Generator.Interval)
	}
	if len(cfg.Dashboard.Suggestions) != 4 || cfg.Dashboard.Suggestions[0] != "AAPL" {
		t.Errorf("Unexpected default suggestions: %v", cfg.Dashboard.Suggestions)
	}
	if !cfg.Dashboard.SeedSample {
		t.Error("Sample stocks should be seeded by default")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", ":9999")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("PROCESSOR_NUM_WORKERS", "8")
	t.Setenv("DASHBOARD_REQUEST_TIMEOUT", "2s")
	t.Setenv("DASHBOARD_SEED_SAMPLE", "false")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.App.Port != ":9999" {
		t.Errorf("Expected :9999, got %s", cfg.App.Port)
	}
	if cfg.Redis.Addr != "redis:6380" {
		t.Errorf("Expected redis:6380, got %s", cfg.Redis.Addr)
	}
	if cfg.Processor.NumWorkers != 8 {
		t.Errorf("Expected 8 workers, got %d", cfg.Processor.NumWorkers)
	}
	if cfg.Dashboard.RequestTimeout != 2*time.Second {
		t.Errorf("Expected 2s timeout, got %v", cfg.Dashboard.RequestTimeout)
	}
	if cfg.Dashboard.SeedSample {
		t.Error("Expected seeding disabled via env")
	}
}

func TestLoadConfig_RejectsNonPositiveWorkers(t *testing.T) {
	t.Setenv("PROCESSOR_NUM_WORKERS", "0")

	if _, err := LoadConfig(); err == nil {
		t.Error("Expected error for zero workers")
	}
}

func TestNewLogger(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     LoggerConfig
		wantErr bool
	}{
		{name: "json info", cfg: LoggerConfig{Level: "info", Encoding: "json"}},
		{name: "console debug", cfg: LoggerConfig{Level: "debug", Encoding: "console"}},
		{name: "bad level", cfg: LoggerConfig{Level: "loud"}, wantErr: true},
		{name: "bad encoding", cfg: LoggerConfig{Level: "info", Encoding: "xml"}, wantErr: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			logger.Debug("probe")
		})
	}
}

func TestNewLogger_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.log")

	logger, err := NewLogger(LoggerConfig{Level: "info", FilePath: path, MaxSizeMB: 1})
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	logger.Info("hello file")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Log file not written: %v", err)
	}
	if len(data) == 0 {
		t.Error("Log file is empty")
	}
}
