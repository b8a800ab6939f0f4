package dataprovider

import (
	"github.com/kbukum/fetchkit/config"
	"github.com/kbukum/fetchkit/fetch"
	"github.com/kbukum/fetchkit/httpclient"
	"github.com/kbukum/fetchkit/validation"
)

// Config configures a Provider bound to a remote REST API.
//
//	name: users-api
//	base_url: https://api.example.com
//	base_path: /v1
//	count_header: X-Total-Count
//	logging:
//	  level: debug
//	http:
//	  timeout: 10s
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the API origin requests are sent to.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`
	// BasePath is the leading path segment of every resource. Defaults to "/".
	BasePath string `yaml:"base_path" mapstructure:"base_path"`
	// CountHeader carries list totals. Defaults to X-Total-Count.
	CountHeader string `yaml:"count_header" mapstructure:"count_header" validate:"required"`

	HTTP httpclient.Config `yaml:"http" mapstructure:"http"`
}

// ApplyDefaults applies default values.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "dataprovider"
	}
	c.ServiceConfig.ApplyDefaults()
	if c.BasePath == "" {
		c.BasePath = DefaultBase
	}
	if c.CountHeader == "" {
		c.CountHeader = DefaultCountHeader
	}
	if c.HTTP.Name == "" {
		c.HTTP.Name = c.Name
	}
	if c.HTTP.BaseURL == "" {
		c.HTTP.BaseURL = c.BaseURL
	}
	c.HTTP.ApplyDefaults()
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	return c.HTTP.Validate()
}

// LoadConfig loads, defaults and validates the configuration of service name.
func LoadConfig(name string, opts ...config.LoaderOption) (*Config, error) {
	var cfg Config
	if err := config.LoadConfig(name, &cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = name
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewFromConfig builds an httpclient.Adapter from cfg and binds a Provider
// to it. When no logger option is given the config's logging section is used.
func NewFromConfig(cfg *Config, opts ...Option) (*Provider, *httpclient.Adapter, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log
	if log == nil {
		log = cfg.NewLogger()
	}

	adapter, err := httpclient.New(cfg.HTTP, httpclient.WithLogger(log))
	if err != nil {
		return nil, nil, err
	}

	all := make([]Option, 0, len(opts)+2)
	all = append(all, WithLogger(log), WithHandles(fetch.WithTransport(adapter)))
	all = append(all, opts...)
	p, err := New(cfg.BasePath, cfg.CountHeader, all...)
	if err != nil {
		return nil, nil, err
	}
	return p, adapter, nil
}
