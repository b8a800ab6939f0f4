package httpclient

import (
	"strings"
	"testing"
	"time"

	"github.com/kbukum/fetchkit/security"
	"github.com/kbukum/fetchkit/version"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.Timeout)
	}
	if cfg.RequestIDHeader != "X-Request-Id" {
		t.Errorf("expected X-Request-Id, got %q", cfg.RequestIDHeader)
	}
	if cfg.UserAgent != version.UserAgent() || cfg.Name != "default" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		c := Config{BaseURL: "https://api.example.com"}
		c.ApplyDefaults()
		return c
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"bad base url", func(c *Config) { c.BaseURL = "api.example.com" }, "http.base_url"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "http.timeout"},
		{"bad request id header", func(c *Config) { c.RequestIDHeader = "X Id" }, "http.request_id_header"},
		{"bad default header", func(c *Config) { c.Headers = map[string]string{"a:b": "v"} }, "http.headers"},
		{"negative idle conns", func(c *Config) { c.MaxIdleConnsPerHost = -1 }, "http.max_idle_conns_per_host"},
		{"tls cert without key", func(c *Config) { c.TLS = &security.TLSConfig{CertFile: "c.pem"} }, "tls.cert_file"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %v", tc.errMsg, err)
			}
		})
	}

	disabled := valid()
	disabled.RequestIDHeader = "-"
	if err := disabled.Validate(); err != nil {
		t.Errorf("expected '-' to disable request ids, got %v", err)
	}
}

func TestNew_NegativeTimeoutRejected(t *testing.T) {
	_, err := New(Config{Timeout: -time.Second})
	if err == nil || !strings.Contains(err.Error(), "http.timeout") {
		t.Errorf("expected http.timeout error, got %v", err)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	if _, err := New(Config{BaseURL: "not-a-url"}); err == nil {
		t.Error("expected error for invalid base url")
	}
	if _, err := New(Config{TLS: &security.TLSConfig{CAFile: "/nonexistent/ca.pem"}}); err == nil {
		t.Error("expected error for missing CA file")
	}
}
