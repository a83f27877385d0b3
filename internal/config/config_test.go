package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("MAX_EXCHANGES", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.GeminiAPIKey != "" {
		t.Fatalf("expected default gemini key empty, got %s", cfg.GeminiAPIKey)
	}
	if cfg.GeminiModelID != "gemini-2.0-flash" {
		t.Fatalf("expected default gemini model, got %s", cfg.GeminiModelID)
	}
	if cfg.MaxExchanges != 20 {
		t.Fatalf("expected default max exchanges, got %d", cfg.MaxExchanges)
	}
	if cfg.SessionTimeout != 10*time.Minute {
		t.Fatalf("expected default session timeout, got %s", cfg.SessionTimeout)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("expected wildcard CORS default, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HONEYPOT_API_KEY", "hp-key")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("GENERATOR_TIMEOUT", "20s")
	t.Setenv("REPORT_CALLBACK_URL", "https://guvnl.example.com/report")
	t.Setenv("MAX_EXCHANGES", "30")
	t.Setenv("SESSION_TIMEOUT", "5m")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.APIKey != "hp-key" {
		t.Fatalf("expected api key override, got %s", cfg.APIKey)
	}
	if cfg.GeneratorTimeout != 20*time.Second {
		t.Fatalf("expected generator timeout override, got %s", cfg.GeneratorTimeout)
	}
	if cfg.ReportCallbackURL != "https://guvnl.example.com/report" {
		t.Fatalf("expected callback override, got %s", cfg.ReportCallbackURL)
	}
	if cfg.MaxExchanges != 30 {
		t.Fatalf("expected max exchanges override, got %d", cfg.MaxExchanges)
	}
	if cfg.SessionTimeout != 5*time.Minute {
		t.Fatalf("expected session timeout override, got %s", cfg.SessionTimeout)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("expected redis addr override, got %s", cfg.RedisAddr)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("expected trimmed CORS list, got %v", cfg.CORSAllowedOrigins)
	}
}
