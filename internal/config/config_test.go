package config

import (
	"context"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Environment() != "development" {
		t.Errorf("Environment() = %q, want development", cfg.Environment())
	}
	if cfg.Resolve() != devBaseURL {
		t.Errorf("Resolve() = %q, want %q", cfg.Resolve(), devBaseURL)
	}
	if cfg.Stub.Port != "8000" {
		t.Errorf("Stub.Port = %q, want 8000", cfg.Stub.Port)
	}
	if cfg.Stub.TokenTTL != 24*time.Hour {
		t.Errorf("Stub.TokenTTL = %v, want 24h", cfg.Stub.TokenTTL)
	}
}

func TestEnvironmentPrecedence(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"both empty", Config{}, "development"},
		{"node env only", Config{NodeEnv: "production"}, "production"},
		{"env wins", Config{Env: "staging", NodeEnv: "production"}, "staging"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Environment(); got != tt.want {
				t.Errorf("Environment() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolvePrecedence(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"default development", Config{ProdAPIURL: "https://docue.herokuapp.com"}, devBaseURL},
		{"production", Config{Env: "production", ProdAPIURL: "https://docue.herokuapp.com"}, "https://docue.herokuapp.com"},
		{"explicit override wins", Config{Env: "production", APIURL: "http://10.0.0.5:9000", ProdAPIURL: "https://docue.herokuapp.com"}, "http://10.0.0.5:9000"},
		{"override in development", Config{APIURL: "http://10.0.0.5:9000"}, "http://10.0.0.5:9000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Resolve(); got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}
