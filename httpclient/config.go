package httpclient

import (
	"time"

	"github.com/kbukum/fetchkit/security"
	"github.com/kbukum/fetchkit/validation"
	"github.com/kbukum/fetchkit/version"
)

const (
	defaultTimeout         = 30 * time.Second
	defaultRequestIDHeader = "X-Request-Id"
)

// Config configures the HTTP adapter.
type Config struct {
	// Name identifies the adapter in logs, spans and metrics.
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is prepended to targets that are not absolute URLs.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds one complete exchange. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers are sent with every request unless the request already carries them.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// TLS configures TLS settings for the HTTP transport.
	TLS *security.TLSConfig `yaml:"tls" mapstructure:"tls"`

	// RequestIDHeader names the header holding a generated request id.
	// Defaults to X-Request-Id; "-" disables generation.
	RequestIDHeader string `yaml:"request_id_header" mapstructure:"request_id_header"`

	// UserAgent is sent when the request has no User-Agent. Defaults to "fetchkit/<version>".
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// MaxIdleConnsPerHost tunes connection reuse. Zero keeps the net/http default.
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host" mapstructure:"max_idle_conns_per_host"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "default"
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	if c.RequestIDHeader == "" {
		c.RequestIDHeader = defaultRequestIDHeader
	}
	if c.UserAgent == "" {
		c.UserAgent = version.UserAgent()
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	v := validation.New().
		OptionalURL("http.base_url", c.BaseURL).
		Custom(c.Timeout > 0, "http.timeout", "must be positive").
		Min("http.max_idle_conns_per_host", int64(c.MaxIdleConnsPerHost), 0)
	if c.RequestIDHeader != "-" {
		v.HeaderName("http.request_id_header", c.RequestIDHeader)
	}
	for name := range c.Headers {
		v.HeaderName("http.headers", name)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return c.TLS.Validate()
}

// requestIDEnabled reports whether request ids are generated.
func (c *Config) requestIDEnabled() bool {
	return c.RequestIDHeader != "" && c.RequestIDHeader != "-"
}
