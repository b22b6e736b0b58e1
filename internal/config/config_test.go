package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		expectError bool
		validate    func(*testing.T, *Config)
	}{
		{
			name:    "defaults",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.BaseURL != "https://sscweb.gsfc.nasa.gov/WS/sscr/2" {
					t.Errorf("Expected default BaseURL, got '%s'", cfg.BaseURL)
				}
				if cfg.UserAgent != "sscweb" {
					t.Errorf("Expected default UserAgent to be 'sscweb', got '%s'", cfg.UserAgent)
				}
				if cfg.Timeout != 0 {
					t.Errorf("Expected no timeout by default, got %s", cfg.Timeout)
				}
				if cfg.MockupMode {
					t.Errorf("Expected default MockupMode to be false")
				}
				if cfg.OutputMode != OutputLocal {
					t.Errorf("Expected default OutputMode to be 'local', got '%s'", cfg.OutputMode)
				}
				if cfg.LocalOutputDir != "./plots" {
					t.Errorf("Expected default LocalOutputDir to be './plots', got '%s'", cfg.LocalOutputDir)
				}
				if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
					t.Errorf("Expected info/text logging, got %s/%s", cfg.LogLevel, cfg.LogFormat)
				}
				if cfg.Environment != "development" {
					t.Errorf("Expected default Environment to be 'development', got '%s'", cfg.Environment)
				}
			},
		},
		{
			name: "custom configuration values",
			envVars: map[string]string{
				"SSC_BASE_URL":   "http://localhost:8080/WS/sscr/2/",
				"SSC_USER_AGENT": "tester",
				"SSC_TIMEOUT":    "45s",
				"MOCKUP_MODE":    "true",
				"OUTPUT_MODE":    "GCS",
				"GCS_BUCKET":     "plots-bucket",
				"METRICS_ADDR":   ":9090",
				"LOG_FORMAT":     "json",
			},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.BaseURL != "http://localhost:8080/WS/sscr/2" {
					t.Errorf("Expected trailing slash to be trimmed, got '%s'", cfg.BaseURL)
				}
				if cfg.Timeout != 45*time.Second {
					t.Errorf("Expected 45s timeout, got %s", cfg.Timeout)
				}
				if !cfg.MockupMode {
					t.Errorf("Expected MockupMode to be true")
				}
				if cfg.OutputMode != OutputGCS || cfg.GCSBucket != "plots-bucket" {
					t.Errorf("Expected gcs output to plots-bucket, got %s/%s", cfg.OutputMode, cfg.GCSBucket)
				}
				if cfg.MetricsAddr != ":9090" {
					t.Errorf("Expected metrics address ':9090', got '%s'", cfg.MetricsAddr)
				}
			},
		},
		{
			name:        "gcs without bucket",
			envVars:     map[string]string{"OUTPUT_MODE": "gcs"},
			expectError: true,
		},
		{
			name:        "unknown output mode",
			envVars:     map[string]string{"OUTPUT_MODE": "ftp"},
			expectError: true,
		},
		{
			name:        "invalid timeout",
			envVars:     map[string]string{"SSC_TIMEOUT": "soon"},
			expectError: true,
		},
		{
			name:        "negative timeout",
			envVars:     map[string]string{"SSC_TIMEOUT": "-1s"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := load(context.Background(), envconfig.MapLookuper(tt.envVars))
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error, got config %+v", cfg)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			tt.validate(t, cfg)
		})
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SSC_USER_AGENT", "from-env")
	t.Setenv("OUTPUT_MODE", "local")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if cfg.UserAgent != "from-env" {
		t.Errorf("Expected UserAgent 'from-env', got '%s'", cfg.UserAgent)
	}
}

func TestFullUserAgent(t *testing.T) {
	t.Setenv("APP_VERSION", "1.4.2")

	cfg := &Config{UserAgent: "sscweb"}
	if got := cfg.FullUserAgent(); got != "sscweb/1.4.2" {
		t.Errorf("Expected 'sscweb/1.4.2', got '%s'", got)
	}
	if !strings.HasPrefix(cfg.FullUserAgent(), cfg.UserAgent+"/") {
		t.Errorf("Expected agent prefix, got '%s'", cfg.FullUserAgent())
	}
}
