package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Provider string `yaml:"provider" validate:"required"`
	APIKey   string `yaml:"api_key,omitempty"`
	Model    string `yaml:"model,omitempty"`
	BaseURL  string `yaml:"base_url,omitempty"`

	Addr           string        `yaml:"addr" validate:"required"`
	LogLevel       string        `yaml:"log_level" validate:"oneof=DEBUG INFO WARN ERROR"`
	SessionTTL     time.Duration `yaml:"session_ttl" validate:"gt=0"`
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"gte=0"`
}

// envOverlay is read from the process environment; set values win over the
// config file.
type envOverlay struct {
	Provider       string        `env:"HACKTWIN_PROVIDER"`
	APIKey         string        `env:"HACKTWIN_API_KEY"`
	Model          string        `env:"HACKTWIN_MODEL"`
	BaseURL        string        `env:"HACKTWIN_BASE_URL"`
	Addr           string        `env:"HACKTWIN_ADDR"`
	LogLevel       string        `env:"HACKTWIN_LOG_LEVEL"`
	SessionTTL     time.Duration `env:"HACKTWIN_SESSION_TTL"`
	RequestTimeout time.Duration `env:"HACKTWIN_REQUEST_TIMEOUT"`
	GeminiAPIKey   string        `env:"GEMINI_API_KEY"`
	GoogleAPIKey   string        `env:"GOOGLE_API_KEY"`
}

var validate = validator.New()

func DefaultConfig() *Config {
	return &Config{
		Provider:       "gemini",
		Model:          "gemini-2.0-flash",
		Addr:           ":8501",
		LogLevel:       "INFO",
		SessionTTL:     12 * time.Hour,
		RequestTimeout: 2 * time.Minute,
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "hacktwin"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Exists reports whether a config file is present at path, or at the default
// location when path is empty.
func Exists(path string) bool {
	path, err := resolvePath(path)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the config file at path (default location when empty). A missing
// file yields nil, nil.
func Load(path string) (*Config, error) {
	path, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve builds the effective config: defaults, then the config file, then
// a .env file in the working directory, then the environment. The result is
// validated.
func Resolve(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyEnv overlays HACKTWIN_* variables. For the gemini provider,
// GEMINI_API_KEY or GOOGLE_API_KEY fill in a missing key.
func (c *Config) ApplyEnv() error {
	var overlay envOverlay
	if _, err := env.UnmarshalFromEnviron(&overlay); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Addr != "" {
		c.Addr = overlay.Addr
	}
	if overlay.LogLevel != "" {
		c.LogLevel = overlay.LogLevel
	}
	if overlay.SessionTTL > 0 {
		c.SessionTTL = overlay.SessionTTL
	}
	if overlay.RequestTimeout > 0 {
		c.RequestTimeout = overlay.RequestTimeout
	}

	if c.APIKey == "" && c.Provider == "gemini" {
		c.APIKey = overlay.GeminiAPIKey
		if c.APIKey == "" {
			c.APIKey = overlay.GoogleAPIKey
		}
	}

	return nil
}

func (c *Config) Validate() error {
	c.LogLevel = strings.ToUpper(c.LogLevel)
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if GetProvider(c.Provider) == nil {
		return fmt.Errorf("invalid config: unknown provider %q (want one of %s)",
			c.Provider, strings.Join(ProviderIDs(), ", "))
	}
	return nil
}

// NeedsSetup reports whether the selected provider still lacks a key.
func (c *Config) NeedsSetup() bool {
	p := GetProvider(c.Provider)
	return p == nil || (p.NeedsAPIKey && c.APIKey == "")
}

// Save writes the config to path (default location when empty).
func (c *Config) Save(path string) error {
	path, err := resolvePath(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

func resolvePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return ConfigPath()
}
