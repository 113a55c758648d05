package config

import (
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/satboard")
	t.Setenv("PUBLIC_URL", "https://pay.example.com")
	t.Setenv("FUNDING_API_URL", "https://funding.example.com")
	t.Setenv("FUNDING_API_KEY", "svc-key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("expected default env development, got %s", cfg.Env)
	}
	if cfg.LnurlRateLimit != 60 || cfg.LnurlBurstSize != 10 {
		t.Errorf("unexpected rate limit defaults: %d/%d", cfg.LnurlRateLimit, cfg.LnurlBurstSize)
	}
}

func TestLoad_DerivesWSURL(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Funding.WSURL != "wss://funding.example.com" {
		t.Errorf("expected derived wss URL, got %s", cfg.Funding.WSURL)
	}
}

func TestLoad_ExplicitWSURLWins(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FUNDING_WS_URL", "wss://other.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Funding.WSURL != "wss://other.example.com" {
		t.Errorf("explicit ws url must win, got %s", cfg.Funding.WSURL)
	}
}

func TestLoad_TrimsTrailingSlashes(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PUBLIC_URL", "https://pay.example.com/")
	t.Setenv("FUNDING_API_URL", "http://funding.local/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.PublicURL != "https://pay.example.com" {
		t.Errorf("public url not trimmed: %s", cfg.PublicURL)
	}
	if cfg.Funding.APIURL != "http://funding.local" {
		t.Errorf("funding url not trimmed: %s", cfg.Funding.APIURL)
	}
	if cfg.Funding.WSURL != "ws://funding.local" {
		t.Errorf("expected derived ws URL, got %s", cfg.Funding.WSURL)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	tests := []struct {
		name string
		omit string
	}{
		{"database url", "DATABASE_URL"},
		{"public url", "PUBLIC_URL"},
		{"funding api url", "FUNDING_API_URL"},
		{"funding api key", "FUNDING_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.omit, "")

			if _, err := Load(); err == nil {
				t.Errorf("expected error when %s is missing", tt.omit)
			}
		})
	}
}

func TestDeriveWSURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://node.example.com", "wss://node.example.com"},
		{"http://localhost:5000", "ws://localhost:5000"},
		{"wss://already.ws", "wss://already.ws"},
	}

	for _, tt := range tests {
		if got := deriveWSURL(tt.in); got != tt.want {
			t.Errorf("deriveWSURL(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
