package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Mode          string   `yaml:"mode"`           // DRY_RUN or LIVE
	Symbols       []string `yaml:"symbols"`        // scan order; fixed and significant (first qualifying signal wins)
	IndexSymbol   string   `yaml:"index_symbol"`   // currency-strength proxy whose signals invert
	CorrelatedSet []string `yaml:"correlated_set"` // pairs actually traded when a signal fires
	NewsCurrency  string   `yaml:"news_currency"`

	CycleMinutes int `yaml:"cycle_minutes"`
	BarCount     int `yaml:"bar_count"`

	LotSize     float64 `yaml:"lot_size"`
	MLThreshold float64 `yaml:"ml_threshold"`

	Model struct {
		ArtifactPath       string  `yaml:"artifact_path"`
		FallbackConfidence float64 `yaml:"fallback_confidence"`
	} `yaml:"model"`

	Gateway struct {
		TimeoutSeconds      int `yaml:"timeout_seconds"`
		OrderTimeoutSeconds int `yaml:"order_timeout_seconds"`
		ReconnectAttempts   int `yaml:"reconnect_attempts"`
		ReconnectWaitSecs   int `yaml:"reconnect_wait_seconds"`
	} `yaml:"gateway"`

	Server struct {
		Enabled bool `yaml:"enabled"`
		Port    int  `yaml:"port"`
	} `yaml:"server"`
}

func (c *Config) Validate() error {
	if c.Mode != "DRY_RUN" && c.Mode != "LIVE" {
		return fmt.Errorf("invalid mode '%s': must be 'DRY_RUN' or 'LIVE'", c.Mode)
	}
	if len(c.Symbols) == 0 {
		return errors.New("symbols cannot be empty")
	}
	if len(c.CorrelatedSet) == 0 {
		return errors.New("correlated_set cannot be empty")
	}
	if c.LotSize <= 0 {
		return fmt.Errorf("lot_size must be positive, got %v", c.LotSize)
	}
	if c.MLThreshold < 0 || c.MLThreshold > 1 {
		return fmt.Errorf("ml_threshold must be in [0,1], got %v", c.MLThreshold)
	}
	if c.CycleMinutes <= 0 {
		return fmt.Errorf("cycle_minutes must be positive, got %d", c.CycleMinutes)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if c.Mode == "" {
		c.Mode = "DRY_RUN"
	}
	if len(c.Symbols) == 0 {
		c.Symbols = []string{"EURUSD", "GBPUSD", "DXY"}
	}
	if c.IndexSymbol == "" {
		c.IndexSymbol = "DXY"
	}
	if len(c.CorrelatedSet) == 0 {
		c.CorrelatedSet = []string{"EURUSD", "GBPUSD"}
	}
	if c.NewsCurrency == "" {
		c.NewsCurrency = "USD"
	}
	if c.CycleMinutes == 0 {
		c.CycleMinutes = 15
	}
	if c.BarCount == 0 {
		c.BarCount = 250
	}
	if c.LotSize == 0 {
		c.LotSize = 0.1
	}
	if c.MLThreshold == 0 {
		c.MLThreshold = 0.7
	}
	if c.Gateway.TimeoutSeconds == 0 {
		c.Gateway.TimeoutSeconds = 30
	}
	if c.Gateway.OrderTimeoutSeconds == 0 {
		c.Gateway.OrderTimeoutSeconds = 10
	}
	if c.Gateway.ReconnectAttempts == 0 {
		c.Gateway.ReconnectAttempts = 5
	}
	if c.Gateway.ReconnectWaitSecs == 0 {
		c.Gateway.ReconnectWaitSecs = 2
	}
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}
