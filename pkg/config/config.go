package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Kronos struct {
		ServiceURL  string        `yaml:"service_url"`
		Timeout     time.Duration `yaml:"timeout"`
		MinBars     int           `yaml:"min_bars"`
		MaxLookback int           `yaml:"max_lookback"`
		Temperature float64       `yaml:"temperature"`
		TopP        float64       `yaml:"top_p"`
		SampleCount int           `yaml:"sample_count"`
	} `yaml:"kronos"`
	Cache struct {
		TTL     time.Duration `yaml:"ttl"`
		MaxSize int           `yaml:"max_size"`
		Redis   struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Audit struct {
		Kafka struct {
			Enabled bool     `yaml:"enabled"`
			Brokers []string `yaml:"brokers"`
			Topic   string   `yaml:"topic"`
		} `yaml:"kafka"`
		ClickHouse struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Database string `yaml:"database"`
			User     string `yaml:"user"`
			Password string `yaml:"password"`
		} `yaml:"clickhouse"`
	} `yaml:"audit"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("KRONOS_SERVICE_URL"); v != "" {
		c.Kronos.ServiceURL = v
	}
	if v := os.Getenv("SERVICE_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Enabled = true
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Audit.Kafka.Enabled = true
		c.Audit.Kafka.Brokers = strings.Split(v, ",")
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 5001
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Kronos.Timeout == 0 {
		c.Kronos.Timeout = 30 * time.Second
	}
	if c.Kronos.MinBars == 0 {
		c.Kronos.MinBars = 50
	}
	if c.Kronos.MaxLookback == 0 {
		c.Kronos.MaxLookback = 400
	}
	if c.Kronos.Temperature == 0 {
		c.Kronos.Temperature = 1.0
	}
	if c.Kronos.TopP == 0 {
		c.Kronos.TopP = 0.9
	}
	if c.Kronos.SampleCount == 0 {
		c.Kronos.SampleCount = 1
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 30 * time.Second
	}
	if c.Cache.MaxSize == 0 {
		c.Cache.MaxSize = 1000
	}
	if c.Audit.Kafka.Topic == "" {
		c.Audit.Kafka.Topic = "forecast.audit"
	}
	if c.Audit.ClickHouse.Database == "" {
		c.Audit.ClickHouse.Database = "kronos"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Kronos.MinBars < 1 {
		return fmt.Errorf("kronos.min_bars must be positive")
	}
	if c.Audit.Kafka.Enabled && len(c.Audit.Kafka.Brokers) == 0 {
		return fmt.Errorf("audit.kafka.brokers cannot be empty when enabled")
	}
	if c.Audit.ClickHouse.Enabled && c.Audit.ClickHouse.Host == "" {
		return fmt.Errorf("audit.clickhouse.host is required when enabled")
	}
	return nil
}
