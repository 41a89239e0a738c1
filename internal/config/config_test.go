package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "3000" {
		t.Errorf("Expected default port '3000', got '%s'", cfg.Port)
	}
	if cfg.CandidateLimit != 20 {
		t.Errorf("Expected default candidate limit 20, got %d", cfg.CandidateLimit)
	}
	if cfg.LLMTimeout != 15*time.Second {
		t.Errorf("Expected default LLM timeout 15s, got %v", cfg.LLMTimeout)
	}
	if cfg.MetricsUsername != "prometheus" {
		t.Errorf("Expected default metrics username 'prometheus', got '%s'", cfg.MetricsUsername)
	}
}

func TestLoadOverrides(t *testing.T) {
	_ = os.Setenv(EnvPort, "8080")
	_ = os.Setenv(EnvGeminiModels, "gemini-2.5-flash, gemini-2.5-flash-lite")
	_ = os.Setenv(EnvLLMTimeout, "5s")
	defer func() {
		_ = os.Unsetenv(EnvPort)
		_ = os.Unsetenv(EnvGeminiModels)
		_ = os.Unsetenv(EnvLLMTimeout)
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if len(cfg.GeminiModels) != 2 || cfg.GeminiModels[0] != "gemini-2.5-flash" {
		t.Errorf("Expected parsed model list, got %v", cfg.GeminiModels)
	}
	if cfg.LLMTimeout != 5*time.Second {
		t.Errorf("Expected LLM timeout 5s, got %v", cfg.LLMTimeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(_ *Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing data dir", func(c *Config) { c.DataDir = "" }, true},
		{"zero candidate limit", func(c *Config) { c.CandidateLimit = 0 }, true},
		{"negative llm timeout", func(c *Config) { c.LLMTimeout = -time.Second }, true},
		{"sentry enabled without token", func(c *Config) { c.SentryEnabled = true }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Port:           "3000",
				DataDir:        "./data",
				CandidateLimit: 20,
				LLMTimeout:     15 * time.Second,
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsUsableAPIKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"empty", "", false},
		{"too short", "abc123", false},
		{"placeholder", "your-api-key-goes-here-please", false},
		{"changeme padded", "changeme-changeme-changeme", false},
		{"real-looking key", "AIzaSyD4e9f8a7b6c5d4e3f2a1b0c9d8e7f6a5b4", true},
		{"whitespace trimmed", "   short   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUsableAPIKey(tt.key); got != tt.want {
				t.Errorf("IsUsableAPIKey(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}
