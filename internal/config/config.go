package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Output modes for downloaded plot files
const (
	OutputLocal = "local"
	OutputGCS   = "gcs"
)

// Config holds all configuration for the sscweb client
type Config struct {
	// Service endpoint
	BaseURL   string        `env:"SSC_BASE_URL,default=https://sscweb.gsfc.nasa.gov/WS/sscr/2"`
	UserAgent string        `env:"SSC_USER_AGENT,default=sscweb"`
	Timeout   time.Duration `env:"SSC_TIMEOUT,default=0s"`

	// Serve every request from the embedded mock service instead
	MockupMode bool `env:"MOCKUP_MODE,default=false"`

	// Where downloaded plots are written
	OutputMode     string `env:"OUTPUT_MODE,default=local"`
	LocalOutputDir string `env:"LOCAL_OUTPUT_DIR,default=./plots"`
	GCSBucket      string `env:"GCS_BUCKET"`

	// Prometheus endpoint, disabled when empty
	MetricsAddr string `env:"METRICS_ADDR"`

	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=text"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	ec := &envconfig.Config{Target: &cfg, Lookuper: lookuper}
	if err := envconfig.ProcessWith(ctx, ec); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks combinations envconfig cannot express
func (c *Config) Validate() error {
	c.OutputMode = strings.ToLower(strings.TrimSpace(c.OutputMode))
	switch c.OutputMode {
	case OutputLocal:
	case OutputGCS:
		if c.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET is required when OUTPUT_MODE is %s", OutputGCS)
		}
	default:
		return fmt.Errorf("invalid OUTPUT_MODE %q: expected %s or %s", c.OutputMode, OutputLocal, OutputGCS)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("SSC_TIMEOUT must not be negative, got %s", c.Timeout)
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("SSC_BASE_URL must not be empty")
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return nil
}

// FullUserAgent is the User-Agent header sent with every request
func (c *Config) FullUserAgent() string {
	return c.UserAgent + "/" + GetVersion()
}
