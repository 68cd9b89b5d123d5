package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalYAML = `
environment: test
server:
  port: 5001
kronos:
  service_url: "http://localhost:8100"
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Kronos.MinBars != 50 {
		t.Fatalf("min_bars %d, want default 50", cfg.Kronos.MinBars)
	}
	if cfg.Kronos.MaxLookback != 400 {
		t.Fatalf("max_lookback %d, want default 400", cfg.Kronos.MaxLookback)
	}
	if cfg.Kronos.Temperature != 1.0 || cfg.Kronos.TopP != 0.9 || cfg.Kronos.SampleCount != 1 {
		t.Fatalf("sampling defaults: %v %v %d", cfg.Kronos.Temperature, cfg.Kronos.TopP, cfg.Kronos.SampleCount)
	}
	if cfg.Cache.TTL != 30*time.Second {
		t.Fatalf("cache ttl %v, want 30s", cfg.Cache.TTL)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Fatalf("shutdown timeout %v, want 10s", cfg.Server.ShutdownTimeout)
	}
}

func TestLoadRejectsMissingEnvironment(t *testing.T) {
	if _, err := Load(writeConfig(t, "server:\n  port: 5001\n")); err == nil {
		t.Fatal("expected validation error for missing environment")
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	yaml := "environment: test\nserver:\n  port: 99999\n"
	if _, err := Load(writeConfig(t, yaml)); err == nil {
		t.Fatal("expected validation error for bad port")
	}
}

func TestLoadRejectsEnabledKafkaWithoutBrokers(t *testing.T) {
	yaml := minimalYAML + `
audit:
  kafka:
    enabled: true
`
	if _, err := Load(writeConfig(t, yaml)); err == nil {
		t.Fatal("expected validation error for kafka without brokers")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("KRONOS_SERVICE_URL", "http://model:9000")
	t.Setenv("SERVICE_PORT", "8123")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := LoadWithEnv(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Kronos.ServiceURL != "http://model:9000" {
		t.Fatalf("service url %q", cfg.Kronos.ServiceURL)
	}
	if cfg.Server.Port != 8123 {
		t.Fatalf("port %d, want 8123", cfg.Server.Port)
	}
	if !cfg.Audit.Kafka.Enabled || len(cfg.Audit.Kafka.Brokers) != 2 {
		t.Fatalf("kafka override not applied: %+v", cfg.Audit.Kafka)
	}
}
