package config

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.TickRate != 60 {
		t.Errorf("TickRate = %d, want 60", cfg.TickRate)
	}
	if cfg.BallSpeed != 300 {
		t.Errorf("BallSpeed = %v, want 300", cfg.BallSpeed)
	}
	if cfg.TickInterval() != time.Second/60 {
		t.Errorf("TickInterval = %v", cfg.TickInterval())
	}
	if cfg.Level() != zerolog.InfoLevel {
		t.Errorf("Level = %v, want info", cfg.Level())
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ALLOWED_ORIGINS", "localhost:*,example.com")
	t.Setenv("BALL_SPEED", "450")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Port != "9000" || cfg.BallSpeed != 450 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "example.com" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.Level() != zerolog.DebugLevel {
		t.Errorf("Level = %v, want debug", cfg.Level())
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	t.Setenv("TICK_RATE", "fast")
	_, err := Parse()
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	base, err := Parse()
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero tick rate", func(c *Config) { c.TickRate = 0 }},
		{"negative ball speed", func(c *Config) { c.BallSpeed = -1 }},
		{"zero paddle speed", func(c *Config) { c.PaddleSpeed = 0 }},
		{"infinite ball speed", func(c *Config) { c.BallSpeed = math.Inf(1) }},
		{"NaN paddle speed", func(c *Config) { c.PaddleSpeed = math.NaN() }},
		{"no rooms", func(c *Config) { c.MaxRooms = 0 }},
		{"no connections per IP", func(c *Config) { c.MaxConnsPerIP = 0 }},
		{"no message budget", func(c *Config) { c.MsgRate = 0 }},
		{"volume above one", func(c *Config) { c.AudioVolume = 1.5 }},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestParseRejectsZeroLimits(t *testing.T) {
	t.Setenv("MAX_CONNS_PER_IP", "0")
	t.Setenv("MSG_RATE", "0")
	if _, err := Parse(); !errors.Is(err, ErrInvalid) {
		t.Fatalf("Parse() = %v, want ErrInvalid", err)
	}
}
