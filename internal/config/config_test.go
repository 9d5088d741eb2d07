package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DIRECTORY_COLLATION", "")
	t.Setenv("DIRECTORY_TIMEZONE", "")
	t.Setenv("DIRECTORY_MUTATION_LATENCY", "")
	t.Setenv("IMPORT_LOW_CONFIDENCE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Directory.Collation != "fr" || cfg.Directory.MutationLatency != 0 {
		t.Errorf("unexpected directory defaults: %+v", cfg.Directory)
	}
	if cfg.Import.LowConfidence != 60 {
		t.Errorf("Expected low confidence 60, got %d", cfg.Import.LowConfidence)
	}
	if cfg.Directory.Location() != time.UTC {
		t.Errorf("Expected UTC, got %v", cfg.Directory.Location())
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DIRECTORY_MUTATION_LATENCY", "250ms")
	t.Setenv("DIRECTORY_TIMEZONE", "Africa/Lome")
	t.Setenv("IMPORT_MAX_DRAFTS", "12")
	t.Setenv("NOTIFY_REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Directory.MutationLatency != 250*time.Millisecond {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Import.MaxDrafts != 12 || cfg.Notify.RedisAddr != "localhost:6379" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Directory.Location().String() != "Africa/Lome" {
		t.Errorf("Expected Africa/Lome, got %v", cfg.Directory.Location())
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080"},
			Directory: DirectoryConfig{Collation: "fr", Timezone: "UTC"},
			Import:    ImportConfig{MaxUploadSize: 1, LowConfidence: 60},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty port", func(c *Config) { c.Server.Port = "" }},
		{"negative latency", func(c *Config) { c.Directory.MutationLatency = -time.Second }},
		{"bad collation", func(c *Config) { c.Directory.Collation = "!!" }},
		{"bad timezone", func(c *Config) { c.Directory.Timezone = "Mars/Olympus" }},
		{"confidence out of range", func(c *Config) { c.Import.LowConfidence = 101 }},
		{"zero upload size", func(c *Config) { c.Import.MaxUploadSize = 0 }},
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("baseline config invalid: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			if err := c.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
