package config

import (
	"fmt"
	"os"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	LLM       LLMConfig       `yaml:"llm"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

// LLMConfig points at an OpenAI-compatible chat endpoint. An empty APIKey
// disables extraction; workout logs then fall back to comma splitting.
type LLMConfig struct {
	APIBase      string        `yaml:"api_base"`
	APIKey       string        `yaml:"api_key"`
	FallbackKeys []string      `yaml:"fallback_keys"`
	Model        string        `yaml:"model"`
	Temperature  float64       `yaml:"temperature"`
	MaxTokens    int           `yaml:"max_tokens"`
	Timeout      time.Duration `yaml:"timeout"`
}

type CatalogConfig struct {
	MatchThreshold int    `yaml:"match_threshold"`
	SeedFile       string `yaml:"seed_file"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Defaults returns a config with every optional field set.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
		LLM: LLMConfig{
			APIBase:     "https://generativelanguage.googleapis.com/v1beta/openai",
			Model:       "gemini-2.5-flash",
			Temperature: 0.1,
			MaxTokens:   4096,
			Timeout:     60 * time.Second,
		},
		Catalog: CatalogConfig{
			MatchThreshold: 60,
			SeedFile:       "data/exercises.json",
		},
		Tailscale: TailscaleConfig{
			Hostname: "gymlog",
			StateDir: "tsnet-state",
		},
	}
}

// Load reads config from a YAML file on top of Defaults, then applies
// environment variable overrides. Env vars use the prefix GYMLOG_:
//
//	GYMLOG_SERVER_HOST, GYMLOG_SERVER_PORT,
//	GYMLOG_DB_HOST, GYMLOG_DB_PORT, GYMLOG_DB_NAME,
//	GYMLOG_DB_USER, GYMLOG_DB_PASSWORD, GYMLOG_DB_SSLMODE,
//	GYMLOG_AUTH_API_KEY,
//	GYMLOG_LLM_API_BASE, GYMLOG_LLM_API_KEY, GYMLOG_LLM_FALLBACK_KEYS,
//	GYMLOG_LLM_MODEL, GYMLOG_LLM_TEMPERATURE, GYMLOG_LLM_MAX_TOKENS, GYMLOG_LLM_TIMEOUT,
//	GYMLOG_CATALOG_MATCH_THRESHOLD, GYMLOG_CATALOG_SEED_FILE,
//	GYMLOG_TAILSCALE_ENABLED, GYMLOG_TAILSCALE_HOSTNAME, GYMLOG_TAILSCALE_STATE_DIR
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	cfg.Server.Host = env.Str("GYMLOG_SERVER_HOST", cfg.Server.Host)
	cfg.Server.Port = env.Int("GYMLOG_SERVER_PORT", cfg.Server.Port)

	cfg.Database.Host = env.Str("GYMLOG_DB_HOST", cfg.Database.Host)
	cfg.Database.Port = env.Int("GYMLOG_DB_PORT", cfg.Database.Port)
	cfg.Database.Name = env.Str("GYMLOG_DB_NAME", cfg.Database.Name)
	cfg.Database.User = env.Str("GYMLOG_DB_USER", cfg.Database.User)
	cfg.Database.Password = env.Str("GYMLOG_DB_PASSWORD", cfg.Database.Password)
	cfg.Database.SSLMode = env.Str("GYMLOG_DB_SSLMODE", cfg.Database.SSLMode)

	cfg.Auth.APIKey = env.Str("GYMLOG_AUTH_API_KEY", cfg.Auth.APIKey)

	cfg.LLM.APIBase = env.Str("GYMLOG_LLM_API_BASE", cfg.LLM.APIBase)
	cfg.LLM.APIKey = env.Str("GYMLOG_LLM_API_KEY", cfg.LLM.APIKey)
	if keys := env.List("GYMLOG_LLM_FALLBACK_KEYS", ""); len(keys) > 0 && keys[0] != "" {
		cfg.LLM.FallbackKeys = keys
	}
	cfg.LLM.Model = env.Str("GYMLOG_LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.Temperature = env.Float("GYMLOG_LLM_TEMPERATURE", cfg.LLM.Temperature)
	cfg.LLM.MaxTokens = env.Int("GYMLOG_LLM_MAX_TOKENS", cfg.LLM.MaxTokens)
	cfg.LLM.Timeout = env.Duration("GYMLOG_LLM_TIMEOUT", cfg.LLM.Timeout)

	cfg.Catalog.MatchThreshold = env.Int("GYMLOG_CATALOG_MATCH_THRESHOLD", cfg.Catalog.MatchThreshold)
	cfg.Catalog.SeedFile = env.Str("GYMLOG_CATALOG_SEED_FILE", cfg.Catalog.SeedFile)

	switch env.Str("GYMLOG_TAILSCALE_ENABLED", "") {
	case "true", "1":
		cfg.Tailscale.Enabled = true
	case "false", "0":
		cfg.Tailscale.Enabled = false
	}
	cfg.Tailscale.Hostname = env.Str("GYMLOG_TAILSCALE_HOSTNAME", cfg.Tailscale.Hostname)
	cfg.Tailscale.StateDir = env.Str("GYMLOG_TAILSCALE_STATE_DIR", cfg.Tailscale.StateDir)
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Catalog.MatchThreshold < 0 || c.Catalog.MatchThreshold > 100 {
		return fmt.Errorf("catalog.match_threshold must be within 0..100, got %d", c.Catalog.MatchThreshold)
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	return nil
}

// RequireAPIKey reports an error when no API key is configured. Only the HTTP
// server needs one; the CLI talks to the database directly.
func (c *Config) RequireAPIKey() error {
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	return nil
}
