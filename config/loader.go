package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/labauth/util"
)

// FileSystem abstracts the file lookups the loader performs so tests can run
// without touching disk.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadEnv loads a dotenv file without overriding variables already set in the
// process environment.
func (RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Resolver finds the config and env files for a service.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles returns explicit paths when given and searches the standard
// locations otherwise.
func (r *Resolver) ResolveFiles(serviceName string, lc LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{ConfigFile: lc.ConfigFile, EnvFile: lc.EnvFile}
	if resolved.ConfigFile == "" {
		resolved.ConfigFile = r.first(configCandidates(serviceName, lc.Environment))
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = r.first(envCandidates(serviceName))
	}
	return resolved
}

func (r *Resolver) first(paths []string) string {
	for _, p := range paths {
		if r.FileSystem.Exists(p) {
			return p
		}
	}
	return ""
}

// configCandidates lists config files in lookup order. An environment specific
// file wins over the generic one in the same directory.
func configCandidates(serviceName, env string) []string {
	dirs := []string{
		"./cmd/" + serviceName,
		"../cmd/" + serviceName,
		"../../cmd/" + serviceName,
		"./config",
		"../config",
		".",
	}
	var out []string
	for _, d := range dirs {
		if env != "" {
			out = append(out, fmt.Sprintf("%s/%s.yml", d, env))
		}
		out = append(out, d+"/config.yml")
	}
	return out
}

func envCandidates(serviceName string) []string {
	var out []string
	for _, name := range []string{".env." + serviceName, ".env"} {
		for _, d := range []string{"./cmd/" + serviceName, "./config", ".", ".."} {
			out = append(out, d+"/"+name)
		}
	}
	return out
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem  FileSystem
	ConfigFile  string
	EnvFile     string
	Environment string
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithEnvironment prefers <env>.yml over config.yml during the file search.
func WithEnvironment(env string) LoaderOption {
	return func(lc *LoaderConfig) { lc.Environment = env }
}

// LoadConfig loads configuration for a service into cfg. Precedence, lowest
// first: YAML file, .env file, process environment. Environment keys map to
// nested config keys by splitting on underscores, so AUTH_TOKEN_SECRET sets
// auth.token.secret. Only keys that exist in cfg or the YAML file are bound.
// Top-level keys need the service prefix (LABAUTH_ENVIRONMENT) so generic
// variables such as NAME or DEBUG are ignored.
func LoadConfig(serviceName string, cfg interface{}, opts ...LoaderOption) error {
	lc := LoaderConfig{FileSystem: RealFileSystem{}}
	for _, opt := range opts {
		opt(&lc)
	}

	resolver := &Resolver{FileSystem: lc.FileSystem}
	files := resolver.ResolveFiles(serviceName, lc)

	v := viper.New()
	if files.ConfigFile != "" && lc.FileSystem.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file %s: %w", files.ConfigFile, err)
		}
	}

	// godotenv never overrides variables that are already exported, which
	// keeps the process environment on top.
	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			return fmt.Errorf("load env file %s: %w", files.EnvFile, err)
		}
	}

	known := configKeys(reflect.TypeOf(cfg), "")
	for _, k := range v.AllKeys() {
		known[k] = true
	}
	bindEnv(v, os.Environ(), known, envPrefix(serviceName))

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config for service %s: %w", serviceName, err)
	}
	return nil
}

// envPrefix turns a service name into its environment prefix: "labauth"
// becomes "LABAUTH_".
func envPrefix(serviceName string) string {
	if serviceName == "" {
		return ""
	}
	return strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(serviceName)) + "_"
}

// bindEnv sets the nesting variants of each KEY=value pair that name a known
// leaf key. Unprefixed variables only reach nested keys; a variable carrying
// the service prefix may also set top-level ones. Values are trimmed and
// unquoted.
func bindEnv(v *viper.Viper, environ []string, known map[string]bool, prefix string) {
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		value = util.SanitizeEnvValue(value)

		topLevel := false
		if prefix != "" && strings.HasPrefix(key, prefix) && len(key) > len(prefix) {
			key = key[len(prefix):]
			topLevel = true
		}
		for _, variant := range envKeyVariants(key) {
			if !known[variant] {
				continue
			}
			if !topLevel && !strings.Contains(variant, ".") {
				continue
			}
			v.Set(variant, value)
		}
	}
}

// configKeys lists the dotted leaf paths of a config struct as mapstructure
// decodes them. Squashed embeds share their parent's prefix; maps, slices and
// scalars are leaves.
func configKeys(t reflect.Type, prefix string) map[string]bool {
	keys := map[string]bool{}
	collectKeys(t, prefix, keys)
	return keys
}

func collectKeys(t reflect.Type, prefix string, keys map[string]bool) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" {
			continue
		}
		squash := strings.Contains(opts, "squash")
		if name == "" && !squash {
			name = strings.ToLower(f.Name)
		}

		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if squash {
			collectKeys(ft, prefix, keys)
			continue
		}

		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		if ft.Kind() == reflect.Struct && ft.PkgPath() != "time" {
			collectKeys(ft, path, keys)
			continue
		}
		keys[path] = true
	}
}

// envKeyVariants expands an environment key into the dotted paths it may
// address. Underscores are ambiguous (nesting or part of a field name), so
// every split point is produced:
//
//	AUTH_TOKEN_SECRET -> auth_token_secret, auth.token.secret, auth.token_secret
//	STORE_REDIS_KEY_PREFIX -> ..., store.redis.key_prefix, store.redis.key.prefix
func envKeyVariants(envKey string) []string {
	lower := strings.ToLower(envKey)
	parts := strings.Split(lower, "_")
	if len(parts) == 1 {
		return []string{lower}
	}

	seen := map[string]bool{}
	var out []string
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	add(lower)
	add(strings.Join(parts, "."))
	for i := 1; i < len(parts); i++ {
		add(strings.Join(parts[:i], ".") + "." + strings.Join(parts[i:], "_"))
	}
	return out
}
