package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if cfg.AppPort != "8080" || cfg.Storage != "memory" || cfg.SessionStore != "memory" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("expected 24h session ttl, got %v", cfg.SessionTTL)
	}
	if cfg.RedisQueueDB != 4 || cfg.Currency != "INR" {
		t.Fatalf("unexpected redis/currency defaults %+v", cfg)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("STORAGE", "mongo")
	t.Setenv("OTP_STRICT", "true")
	t.Setenv("DIRECTORY_LATENCY", "500ms")

	v := viper.New()
	v.AutomaticEnv()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if cfg.Storage != "mongo" || !cfg.OTPStrict || cfg.DirectoryLatency != 500*time.Millisecond {
		t.Fatalf("expected environment to override defaults, got %+v", cfg)
	}
}
