package config

import (
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"
)

type testConfig struct {
	ServiceConfig `mapstructure:",squash"`
	Auth          struct {
		Token struct {
			Secret string `mapstructure:"secret"`
			TTL    string `mapstructure:"ttl"`
		} `mapstructure:"token"`
	} `mapstructure:"auth"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	var c ServiceConfig
	c.ApplyDefaults()
	if c.Environment != "development" || !c.Debug {
		t.Errorf("unexpected defaults: %+v", c)
	}
	if c.Logging.Level != "info" {
		t.Errorf("logging defaults not applied: %+v", c.Logging)
	}
}

func TestServiceConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		cfg    ServiceConfig
		errMsg string
	}{
		{"valid", ServiceConfig{Name: "labauth", Environment: "production"}, ""},
		{"missing name", ServiceConfig{Environment: "production"}, "name is required"},
		{"bad env", ServiceConfig{Name: "labauth", Environment: "qa"}, "environment must be one of"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Logging.ApplyDefaults()
			err := tc.cfg.Validate()
			if tc.errMsg == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %v", tc.errMsg, err)
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: labauth
environment: staging
auth:
  token:
    ttl: 30m
`)

	var cfg testConfig
	if err := LoadConfig("labauth", &cfg, WithConfigFile(path), WithEnvFile(filepath.Join(dir, "none"))); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "labauth" || cfg.Environment != "staging" {
		t.Errorf("service fields not loaded: %+v", cfg.ServiceConfig)
	}
	if cfg.Auth.Token.TTL != "30m" {
		t.Errorf("ttl = %q", cfg.Auth.Token.TTL)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "name: labauth\nauth:\n  token:\n    ttl: 30m\n")
	t.Setenv("AUTH_TOKEN_SECRET", "from-environment-0123456789abcdef")
	t.Setenv("AUTH_TOKEN_TTL", "2h")

	var cfg testConfig
	if err := LoadConfig("labauth", &cfg, WithConfigFile(path), WithEnvFile(filepath.Join(dir, "none"))); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Auth.Token.Secret != "from-environment-0123456789abcdef" {
		t.Errorf("secret not bound from env")
	}
	if cfg.Auth.Token.TTL != "2h" {
		t.Errorf("ttl = %q, want env override", cfg.Auth.Token.TTL)
	}
}

func TestLoadConfigUnquotesEnv(t *testing.T) {
	t.Setenv("AUTH_TOKEN_SECRET", `  "quoted-secret-0123456789abcdef0123"  `)

	var cfg testConfig
	if err := LoadConfig("labauth", &cfg, WithConfigFile("/nonexistent/config.yml"), WithEnvFile("/nonexistent/.env")); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Auth.Token.Secret != "quoted-secret-0123456789abcdef0123" {
		t.Errorf("secret was not unquoted")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("nonexistent", &cfg, WithConfigFile("/nonexistent/path.yml"), WithEnvFile("/nonexistent/.env"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestLoadConfigBrokenYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", "name: [unterminated")
	var cfg testConfig
	if err := LoadConfig("labauth", &cfg, WithConfigFile(path)); err == nil {
		t.Fatal("expected an error for unparsable YAML")
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }
func (m *mockFS) LoadEnv(string) error    { return nil }

func TestResolverPrefersEnvironmentFile(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./config/config.yml":     true,
		"./config/production.yml": true,
		"./.env":                  true,
	}}
	r := &Resolver{FileSystem: fs}

	files := r.ResolveFiles("labauth", LoaderConfig{Environment: "production"})
	if files.ConfigFile != "./config/production.yml" {
		t.Errorf("config file = %q", files.ConfigFile)
	}
	if files.EnvFile != "./.env" {
		t.Errorf("env file = %q", files.EnvFile)
	}

	files = r.ResolveFiles("labauth", LoaderConfig{})
	if files.ConfigFile != "./config/config.yml" {
		t.Errorf("config file without env = %q", files.ConfigFile)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("AUTH_TOKEN_SECRET")
	for _, want := range []string{"auth_token_secret", "auth.token.secret", "auth.token_secret"} {
		if !slices.Contains(got, want) {
			t.Errorf("variants %v missing %q", got, want)
		}
	}
	if got := envKeyVariants("PORT"); len(got) != 1 || got[0] != "port" {
		t.Errorf("single segment variants = %v", got)
	}
}

func TestLoadConfigIgnoresUnrelatedEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "name: labauth\nauth:\n  token:\n    ttl: 30m\n")
	t.Setenv("AUTH_TOKEN_SECRET", "from-environment-0123456789abcdef")
	t.Setenv("AUTH_TOKEN", "some-ci-token")
	t.Setenv("NAME", "somebox")
	t.Setenv("DEBUG", "true")

	var cfg testConfig
	if err := LoadConfig("labauth", &cfg, WithConfigFile(path), WithEnvFile(filepath.Join(dir, "none"))); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "labauth" {
		t.Errorf("name = %q, unrelated NAME must not override it", cfg.Name)
	}
	if cfg.Debug {
		t.Error("unrelated DEBUG must not set debug")
	}
	if cfg.Auth.Token.Secret != "from-environment-0123456789abcdef" {
		t.Error("secret not bound from env")
	}
	if cfg.Auth.Token.TTL != "30m" {
		t.Errorf("ttl = %q", cfg.Auth.Token.TTL)
	}
}

func TestLoadConfigPrefixedTopLevelEnv(t *testing.T) {
	t.Setenv("LABAUTH_ENVIRONMENT", "staging")
	t.Setenv("LABAUTH_NAME", "labauth-eu")

	var cfg testConfig
	if err := LoadConfig("labauth", &cfg, WithConfigFile("/nonexistent/config.yml"), WithEnvFile("/nonexistent/.env")); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Environment != "staging" || cfg.Name != "labauth-eu" {
		t.Errorf("prefixed env not bound: %+v", cfg.ServiceConfig)
	}
}

func TestConfigKeys(t *testing.T) {
	keys := configKeys(reflect.TypeOf(&testConfig{}), "")
	for _, want := range []string{"name", "environment", "logging.level", "auth.token.secret", "auth.token.ttl"} {
		if !keys[want] {
			t.Errorf("missing key %q in %v", want, keys)
		}
	}
	for _, unwanted := range []string{"auth", "auth.token", "serviceconfig"} {
		if keys[unwanted] {
			t.Errorf("non-leaf key %q listed", unwanted)
		}
	}
}
