package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

const (
	defaultEnvFile = ".env"
	envPrefix      = "STOREFRONT_"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server     ServerConfig     `envPrefix:"SERVER_"`
	API        APIConfig        `envPrefix:"API_"`
	Storefront StorefrontConfig
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	Dev        bool   `env:"DEV"`
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port              string        `env:"PORT"                envDefault:"8080"`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"10s"`
	ReadTimeout       time.Duration `env:"READ_TIMEOUT"        envDefault:"15s"`
	WriteTimeout      time.Duration `env:"WRITE_TIMEOUT"       envDefault:"0s"`
	IdleTimeout       time.Duration `env:"IDLE_TIMEOUT"        envDefault:"60s"`
}

// APIConfig points at the remote settings/catalog service.
type APIConfig struct {
	BaseURL string        `env:"BASE_URL" envDefault:"http://localhost:8000"`
	Timeout time.Duration `env:"TIMEOUT"  envDefault:"5s"`
}

// StorefrontConfig tunes view behaviour and presentation defaults.
type StorefrontConfig struct {
	HeroInterval     time.Duration `env:"HERO_INTERVAL"     envDefault:"5s"`
	CountdownTick    time.Duration `env:"COUNTDOWN_TICK"    envDefault:"1s"`
	PlaceholderImage string        `env:"PLACEHOLDER_IMAGE" envDefault:"/placeholder.svg"`
	Currency         string        `env:"CURRENCY"          envDefault:"INR"`
	Locale           string        `env:"LOCALE"            envDefault:"en-IN"`
}

// ValidationError is returned when configuration fields are invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// EnvironmentValues returns the effective key/value environment map
// (dotenv < OS env < explicit env map).
func EnvironmentValues(opts ...Option) (map[string]string, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return nil, err
	}

	values := make(map[string]string)
	merge := func(source map[string]string) {
		for key, value := range source {
			values[key] = value
		}
	}
	merge(dotEnvValues)
	if options.useSystemEnv {
		merge(env.ToMap(os.Environ()))
	}
	merge(options.envMap)
	return values, nil
}

// Load assembles the configuration from defaults, .env overrides, environment
// variables and explicit maps, then validates it.
func Load(opts ...Option) (Config, error) {
	values, err := EnvironmentValues(opts...)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{
		Environment: values,
		Prefix:      envPrefix,
	}); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}

	// Cloud Run style PORT is honoured when the prefixed key is absent.
	if _, ok := values[envPrefix+"SERVER_PORT"]; !ok {
		if port := strings.TrimSpace(values["PORT"]); port != "" {
			cfg.Server.Port = port
		}
	}

	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.API.BaseURL), "/")
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.Storefront.Currency = strings.ToUpper(strings.TrimSpace(cfg.Storefront.Currency))

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	return ":" + c.Server.Port
}

func validate(cfg Config) error {
	var invalid []string

	if port, err := strconv.Atoi(cfg.Server.Port); err != nil || port <= 0 || port > 65535 {
		invalid = append(invalid, envPrefix+"SERVER_PORT")
	}
	if cfg.API.BaseURL != "" {
		u, err := url.Parse(cfg.API.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			invalid = append(invalid, envPrefix+"API_BASE_URL")
		}
	}
	if cfg.API.Timeout <= 0 {
		invalid = append(invalid, envPrefix+"API_TIMEOUT")
	}
	if cfg.Storefront.HeroInterval <= 0 {
		invalid = append(invalid, envPrefix+"HERO_INTERVAL")
	}
	if cfg.Storefront.CountdownTick <= 0 {
		invalid = append(invalid, envPrefix+"COUNTDOWN_TICK")
	}
	if len(cfg.Storefront.Currency) != 3 {
		invalid = append(invalid, envPrefix+"CURRENCY")
	}
	if _, err := language.Parse(cfg.Storefront.Locale); err != nil {
		invalid = append(invalid, envPrefix+"LOCALE")
	}

	if len(invalid) > 0 {
		return &ValidationError{fields: invalid}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	values, err := godotenv.Read(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	return values, nil
}
