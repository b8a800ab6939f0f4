package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	BaseURL       string        `mapstructure:"base_url"`
	HTTP          testHTTP      `mapstructure:"http"`
	Retries       int           `mapstructure:"retries"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type testHTTP struct {
	Timeout         time.Duration `mapstructure:"timeout"`
	RequestIDHeader string        `mapstructure:"request_id_header"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("expected debug log level, got %q", cfg.Logging.Level)
		}
	})

	t.Run("production keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("expected info log level, got %q", cfg.Logging.Level)
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	valid := func(env string) ServiceConfig {
		cfg := ServiceConfig{Name: "svc", Environment: env}
		cfg.ApplyDefaults()
		return cfg
	}
	badLogging := valid("staging")
	badLogging.Logging.Format = "xml"

	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr bool
		errMsg  string
	}{
		{"valid development", valid("development"), false, ""},
		{"valid production", valid("production"), false, ""},
		{"missing name", ServiceConfig{Environment: "production"}, true, "config.name is required"},
		{"invalid environment", ServiceConfig{Name: "svc", Environment: "invalid"}, true, "config.environment must be one of"},
		{"invalid logging", badLogging, true, "config.logging"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tc.errMsg) {
					t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: users-api
environment: staging
base_url: https://api.example.com
http:
  timeout: 5s
  request_id_header: X-Trace
`)

	var cfg testConfig
	if err := LoadConfig("users-api", &cfg, WithConfigFile(path), WithEnvPrefix("FKTEST_YAML")); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "users-api" || cfg.Environment != "staging" {
		t.Errorf("unexpected service config %+v", cfg.ServiceConfig)
	}
	if cfg.BaseURL != "https://api.example.com" {
		t.Errorf("expected base url, got %q", cfg.BaseURL)
	}
	if cfg.HTTP.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.HTTP.Timeout)
	}
	if cfg.HTTP.RequestIDHeader != "X-Trace" {
		t.Errorf("expected X-Trace, got %q", cfg.HTTP.RequestIDHeader)
	}
}

func TestLoadConfigEnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
base_url: https://file.example.com
http:
  timeout: 5s
`)
	t.Setenv("FKTEST_BASE_URL", "https://env.example.com")
	t.Setenv("FKTEST_HTTP_TIMEOUT", "2s")
	t.Setenv("FKTEST_HTTP_REQUEST_ID_HEADER", "X-Env-Id")

	var cfg testConfig
	if err := LoadConfig("svc", &cfg, WithConfigFile(path), WithEnvPrefix("FKTEST_")); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.BaseURL != "https://env.example.com" {
		t.Errorf("expected env base url, got %q", cfg.BaseURL)
	}
	if cfg.HTTP.Timeout != 2*time.Second {
		t.Errorf("expected 2s timeout, got %v", cfg.HTTP.Timeout)
	}
	if cfg.HTTP.RequestIDHeader != "X-Env-Id" {
		t.Errorf("expected X-Env-Id, got %q", cfg.HTTP.RequestIDHeader)
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "FKTESTENV_RETRIES=3\n")
	t.Cleanup(func() { os.Unsetenv("FKTESTENV_RETRIES") })

	var cfg testConfig
	err := LoadConfig("svc", &cfg,
		WithConfigFile(filepath.Join(dir, "missing.yml")),
		WithEnvFile(envPath),
		WithEnvPrefix("FKTESTENV"),
	)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Retries != 3 {
		t.Errorf("expected retries=3 from .env, got %d", cfg.Retries)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "name: [unclosed\n")

	var cfg testConfig
	err := LoadConfig("svc", &cfg, WithConfigFile(path))
	if err == nil || !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("nonexistent-service", &cfg,
		WithConfigFile("/nonexistent/path.yml"),
		WithEnvFile("/nonexistent/.env"),
		WithEnvPrefix("FKTEST_NONE"),
	)
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

type mockFS struct {
	files  map[string]bool
	loaded []string
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error {
	m.loaded = append(m.loaded, path)
	return nil
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/my-svc/config.yml": true,
		"./config/config.yml":     true,
		"./.env":                  true,
	}}
	resolver := &Resolver{FileSystem: fs}

	files := resolver.ResolveFiles("my-svc", LoaderConfig{})
	if files.ConfigFile != "./cmd/my-svc/config.yml" {
		t.Errorf("expected config file at ./cmd/my-svc/config.yml, got %q", files.ConfigFile)
	}
	if files.EnvFile != "./.env" {
		t.Errorf("expected env file at ./.env, got %q", files.EnvFile)
	}

	explicit := resolver.ResolveFiles("my-svc", LoaderConfig{ConfigFile: "custom.yml"})
	if explicit.ConfigFile != "custom.yml" {
		t.Errorf("expected explicit config file, got %q", explicit.ConfigFile)
	}
}

func TestLoadConfigUsesFileSystem(t *testing.T) {
	fs := &mockFS{files: map[string]bool{"./.env": true}}
	var cfg testConfig
	if err := LoadConfig("svc", &cfg, WithFileSystem(fs), WithEnvPrefix("FKTEST_FS")); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !slices.Equal(fs.loaded, []string{"./.env"}) {
		t.Errorf("expected ./.env to be loaded, got %v", fs.loaded)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("HTTP_REQUEST_ID_HEADER")
	for _, want := range []string{"http_request_id_header", "http.request.id.header", "http.request_id_header"} {
		if !slices.Contains(got, want) {
			t.Errorf("expected variant %q in %v", want, got)
		}
	}
	if got := envKeyVariants("RETRIES"); !slices.Equal(got, []string{"retries"}) {
		t.Errorf("expected [retries], got %v", got)
	}
}

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	WithEnvPrefix("APP_")(&lc)
	if lc.ConfigFile != "/path/to/config.yml" || lc.EnvFile != "/path/to/.env" {
		t.Errorf("unexpected loader config %+v", lc)
	}
	if lc.EnvPrefix != "APP" {
		t.Errorf("expected prefix APP, got %q", lc.EnvPrefix)
	}
}
