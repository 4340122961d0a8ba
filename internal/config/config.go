// Package config loads jalur settings from an optional YAML file with
// JALUR_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no path is given and JALUR_CONFIG is unset.
const DefaultPath = "jalur.yaml"

type Config struct {
	Profile      string   `yaml:"profile"`
	Rules        string   `yaml:"rules"`
	KeywordsFile string   `yaml:"keywords_file"`
	SynonymsFile string   `yaml:"synonyms_file"`
	ProfilesFile string   `yaml:"profiles_file"`
	Locale       string   `yaml:"locale"`
	DateLayouts  []string `yaml:"date_layouts"`
	Workers      int      `yaml:"workers"`
	LogLevel     string   `yaml:"log_level"`

	Server Server `yaml:"server"`
	LLM    LLM    `yaml:"llm"`

	// Source is the file the config was read from, if any.
	Source string `yaml:"-"`
}

type Server struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	MaxUploadMB  int           `yaml:"max_upload_mb"`
}

type LLM struct {
	Provider string        `yaml:"provider"`
	Model    string        `yaml:"model"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Load reads path (or $JALUR_CONFIG, or ./jalur.yaml when present), applies
// environment overrides and fills defaults. A missing default file is not an
// error; a missing explicit file is.
func Load(path string) (*Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		if env := os.Getenv("JALUR_CONFIG"); env != "" {
			path, explicit = env, true
		} else {
			path = DefaultPath
		}
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
		cfg.Source = path
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyEnv() error {
	envOverride(&c.Profile, "JALUR_PROFILE")
	envOverride(&c.Rules, "JALUR_RULES")
	envOverride(&c.KeywordsFile, "JALUR_KEYWORDS_FILE")
	envOverride(&c.SynonymsFile, "JALUR_SYNONYMS_FILE")
	envOverride(&c.ProfilesFile, "JALUR_PROFILES_FILE")
	envOverride(&c.Locale, "JALUR_LOCALE")
	envOverride(&c.LogLevel, "JALUR_LOG_LEVEL")
	envOverride(&c.Server.Addr, "JALUR_SERVER_ADDR")
	envOverride(&c.LLM.Provider, "JALUR_LLM_PROVIDER")
	envOverride(&c.LLM.Model, "JALUR_LLM_MODEL")
	if layouts := os.Getenv("JALUR_DATE_LAYOUTS"); layouts != "" {
		c.DateLayouts = nil
		for _, l := range strings.Split(layouts, ";") {
			if l = strings.TrimSpace(l); l != "" {
				c.DateLayouts = append(c.DateLayouts, l)
			}
		}
	}
	if err := envOverrideInt(&c.Workers, "JALUR_WORKERS"); err != nil {
		return err
	}
	if err := envOverrideInt(&c.Server.MaxUploadMB, "JALUR_SERVER_MAX_UPLOAD_MB"); err != nil {
		return err
	}
	if err := envOverrideDuration(&c.Server.ReadTimeout, "JALUR_SERVER_READ_TIMEOUT"); err != nil {
		return err
	}
	if err := envOverrideDuration(&c.Server.WriteTimeout, "JALUR_SERVER_WRITE_TIMEOUT"); err != nil {
		return err
	}
	return envOverrideDuration(&c.LLM.Timeout, "JALUR_LLM_TIMEOUT")
}

func (c *Config) applyDefaults() {
	if c.Profile == "" {
		c.Profile = "auto"
	}
	if c.Rules == "" {
		c.Rules = "standard"
	}
	if c.Locale == "" {
		c.Locale = "id"
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 60 * time.Second
	}
	if c.Server.MaxUploadMB == 0 {
		c.Server.MaxUploadMB = 20
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 60 * time.Second
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Locale {
	case "id", "en":
	default:
		return fmt.Errorf("config: locale must be 'id' or 'en', got %q", c.Locale)
	}
	if c.Workers < 1 {
		return fmt.Errorf("config: workers must be >= 1, got %d", c.Workers)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	if c.Server.MaxUploadMB < 1 {
		return fmt.Errorf("config: server.max_upload_mb must be >= 1, got %d", c.Server.MaxUploadMB)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.LLM.Timeout < 0 {
		return errors.New("config: timeouts must not be negative")
	}
	switch c.LLM.Provider {
	case "", "anthropic", "openai", "gemini", "openrouter":
	default:
		return fmt.Errorf("config: llm.provider must be anthropic, openai, gemini or openrouter, got %q", c.LLM.Provider)
	}
	for _, f := range []struct{ key, path string }{
		{"keywords_file", c.KeywordsFile},
		{"synonyms_file", c.SynonymsFile},
		{"profiles_file", c.ProfilesFile},
	} {
		if f.path == "" {
			continue
		}
		if _, err := os.Stat(f.path); err != nil {
			return fmt.Errorf("config: %s: %w", f.key, err)
		}
	}
	return nil
}

// MaxUploadBytes is the server body limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) << 20
}

func envOverride(field *string, key string) {
	if val := os.Getenv(key); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, key string) error {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*field = n
	return nil
}

func envOverrideDuration(field *time.Duration, key string) error {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(val))
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*field = d
	return nil
}
