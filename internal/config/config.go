package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"time"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const envPrefix = "FRONTENV_"

const (
	defaultRoot       = "."
	defaultConfigDir  = "config"
	defaultScriptName = "front.env.js"
	defaultGlobalName = "__frontEnv__"
	defaultMarker     = "<!-- front-env -->"
	defaultPort       = "8080"

	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
)

var defaultPrefixes = []string{"STAGE", "API_URL"}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Config aggregates the tool's own settings, resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults.
// This is distinct from the frontend configuration the tool injects; only
// variables matching Prefixes ever reach the generated script.
type Config struct {
	Root       string
	ConfigDir  string
	ScriptName string
	GlobalName string
	Marker     string

	// Prefixes is the whitelist of environment variable names eligible for
	// injection. By default a prefix match is enough, preserving the
	// behaviour of shell-based injectors; ExactMatch tightens it to full
	// names.
	Prefixes   []string
	ExactMatch bool

	Port                 string
	ShutdownGracePeriod  time.Duration
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	EnableRequestLogging bool
	RateLimitRPS         float64
	RateLimitBurst       int
}

// Layer is a partially specified configuration from a single source. Nil and
// empty fields defer to lower-precedence layers. Durations are carried as
// strings so the YAML and env decoders agree on the format.
type Layer struct {
	Root       string `yaml:"root" env:"ROOT"`
	ConfigDir  string `yaml:"config_dir" env:"CONFIG_DIR"`
	ScriptName string `yaml:"script_name" env:"SCRIPT_NAME"`
	GlobalName string `yaml:"global_name" env:"GLOBAL_NAME"`
	Marker     string `yaml:"marker" env:"MARKER"`

	Prefixes   []string `yaml:"prefixes" env:"PREFIXES" envSeparator:","`
	ExactMatch *bool    `yaml:"exact_match" env:"EXACT_MATCH"`

	Port                 string   `yaml:"port" env:"PORT"`
	ShutdownGracePeriod  string   `yaml:"shutdown_grace_period" env:"SHUTDOWN_GRACE_PERIOD"`
	ReadHeaderTimeout    string   `yaml:"read_header_timeout" env:"READ_HEADER_TIMEOUT"`
	WriteTimeout         string   `yaml:"write_timeout" env:"WRITE_TIMEOUT"`
	IdleTimeout          string   `yaml:"idle_timeout" env:"IDLE_TIMEOUT"`
	EnableRequestLogging *bool    `yaml:"enable_request_logging" env:"ENABLE_REQUEST_LOGGING"`
	RateLimitRPS         *float64 `yaml:"rate_limit_rps" env:"RATE_LIMIT_RPS"`
	RateLimitBurst       *int     `yaml:"rate_limit_burst" env:"RATE_LIMIT_BURST"`
}

// Load resolves configuration by merging layers in precedence order: the CLI
// layer (may be nil), the YAML file at configFile (skipped when empty), the
// FRONTENV_-prefixed environment, and finally the defaults. The merged result
// is validated before being returned.
func Load(cli *Layer, configFile string) (Config, error) {
	var merged Layer

	if cli != nil {
		if err := mergo.Merge(&merged, *cli); err != nil {
			return Config{}, fmt.Errorf("merge CLI layer: %w", err)
		}
	}

	if configFile != "" {
		fileLayer, err := loadFromFile(configFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := mergo.Merge(&merged, fileLayer); err != nil {
			return Config{}, fmt.Errorf("merge YAML layer: %w", err)
		}
	}

	envLayer, err := loadFromEnv()
	if err != nil {
		return Config{}, fmt.Errorf("load env config: %w", err)
	}
	if err := mergo.Merge(&merged, envLayer); err != nil {
		return Config{}, fmt.Errorf("merge env layer: %w", err)
	}

	cfg, err := merged.finalize()
	if err != nil {
		return Config{}, err
	}
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ScriptPath returns the filesystem location of the generated script.
func (c Config) ScriptPath() string {
	return filepath.Join(c.Root, c.ConfigDir, c.ScriptName)
}

// ScriptSrc returns the relative URL the injected script tag points at. It is
// also the request path, relative to the document root, under which the
// server exposes the generated file.
func (c Config) ScriptSrc() string {
	return "./" + path.Join(c.ConfigDir, c.ScriptName)
}

func loadFromFile(file string) (Layer, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return Layer{}, fmt.Errorf("read file: %w", err)
	}
	var l Layer
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layer{}, fmt.Errorf("parse YAML: %w", err)
	}
	return l, nil
}

func loadFromEnv() (Layer, error) {
	var l Layer
	if err := env.ParseWithOptions(&l, env.Options{Prefix: envPrefix}); err != nil {
		return Layer{}, fmt.Errorf("parse environment: %w", err)
	}
	return l, nil
}

// finalize fills remaining gaps with defaults and converts string durations.
func (l Layer) finalize() (Config, error) {
	cfg := Config{
		Root:                 orDefault(l.Root, defaultRoot),
		ConfigDir:            orDefault(l.ConfigDir, defaultConfigDir),
		ScriptName:           orDefault(l.ScriptName, defaultScriptName),
		GlobalName:           orDefault(l.GlobalName, defaultGlobalName),
		Marker:               orDefault(l.Marker, defaultMarker),
		Prefixes:             append([]string(nil), defaultPrefixes...),
		Port:                 orDefault(l.Port, defaultPort),
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
	}

	if len(l.Prefixes) > 0 {
		cfg.Prefixes = l.Prefixes
	}
	if l.ExactMatch != nil {
		cfg.ExactMatch = *l.ExactMatch
	}
	if l.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *l.EnableRequestLogging
	}
	if l.RateLimitRPS != nil {
		cfg.RateLimitRPS = *l.RateLimitRPS
	}
	if l.RateLimitBurst != nil {
		cfg.RateLimitBurst = *l.RateLimitBurst
	}

	for _, d := range []struct {
		raw    string
		target *time.Duration
		name   string
	}{
		{l.ShutdownGracePeriod, &cfg.ShutdownGracePeriod, "shutdown_grace_period"},
		{l.ReadHeaderTimeout, &cfg.ReadHeaderTimeout, "read_header_timeout"},
		{l.WriteTimeout, &cfg.WriteTimeout, "write_timeout"},
		{l.IdleTimeout, &cfg.IdleTimeout, "idle_timeout"},
	} {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", d.name, err)
		}
		*d.target = parsed
	}

	return cfg, nil
}

func validate(cfg Config) error {
	if !identifierPattern.MatchString(cfg.GlobalName) {
		return fmt.Errorf("global object name %q is not a valid identifier", cfg.GlobalName)
	}
	if cfg.Marker == "" {
		return fmt.Errorf("placeholder marker cannot be empty")
	}
	if len(cfg.Prefixes) == 0 {
		return fmt.Errorf("whitelist cannot be empty")
	}
	for _, p := range cfg.Prefixes {
		if p == "" {
			return fmt.Errorf("whitelist entries cannot be empty")
		}
	}
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("rate_limit_rps must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("rate_limit_burst must be >= 0")
	}
	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
