// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Service ServiceConfig `toml:"service"`
	Log     LogConfig     `toml:"log"`
	Screen  ScreenConfig  `toml:"screen"`
}

// ServiceConfig points at the recommendation service.
type ServiceConfig struct {
	URL     string   `toml:"url"`
	APIKey  string   `toml:"api_key"`
	Timeout Duration `toml:"timeout"` // 0 disables the request timeout
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // empty discards logs while the screen is running
}

type ScreenConfig struct {
	Title      string `toml:"title"`
	ShowErrors bool   `toml:"show_errors"`
}

// Duration is a time.Duration written as a string ("10s") in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

const (
	defaultServiceURL = "http://localhost:8080"
	defaultLogLevel   = "info"
	defaultTitle      = "NetFlix Roulette"
)

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Service.URL == "" {
		c.Service.URL = defaultServiceURL
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	if c.Screen.Title == "" {
		c.Screen.Title = defaultTitle
	}
}

// Load reads, substitutes, parses and validates the configuration file.
// Unresolved variables and validation failures are reported together as *Error.
func Load(path string) (*Config, error) {
	cfg, problems, err := Inspect(path)
	if err != nil {
		return nil, err
	}
	if problems.HasErrors() {
		return nil, problems
	}
	return cfg, nil
}

// Inspect parses the configuration file like Load but does not reject it.
// The parsed config is returned alongside every unresolved variable and
// invalid setting, so callers can show both. err is set only when the file
// cannot be read or decoded.
func Inspect(path string) (*Config, *Error, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, nil, err
	}
	return cfg, &Error{Path: path, Missing: missing, Errors: cfg.Validate()}, nil
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, missing, nil
}

// envVarPattern matches ${VAR} and ${VAR:-default}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

// substituteEnvVars replaces ${VAR} with its value and ${VAR:-default} with the value
// or default when VAR is unset or empty. Unresolved names are returned in order.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	seen := make(map[string]bool)

	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		name, hasDefault, def := parts[1], parts[2] != "", parts[3]

		value, ok := os.LookupEnv(name)
		if ok && (value != "" || !hasDefault) {
			return value
		}
		if hasDefault {
			return def
		}
		if !seen[name] {
			seen[name] = true
			missing = append(missing, name)
		}
		return match
	})

	return out, missing
}

// redact hides secrets when printing config.
func redact(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}

// Summary returns a human-readable description with secrets redacted.
func (c *Config) Summary() []string {
	timeout := "none"
	if c.Service.Timeout.Duration > 0 {
		timeout = c.Service.Timeout.String()
	}
	key := "(none)"
	if c.Service.APIKey != "" {
		key = redact(c.Service.APIKey)
	}
	logFile := c.Log.File
	if logFile == "" {
		logFile = "(discarded)"
	}
	return []string{
		fmt.Sprintf("Service:  %s (timeout: %s)", c.Service.URL, timeout),
		fmt.Sprintf("API key:  %s", key),
		fmt.Sprintf("Log:      %s -> %s", c.Log.Level, logFile),
		fmt.Sprintf("Screen:   %q (show errors: %t)", c.Screen.Title, c.Screen.ShowErrors),
	}
}
