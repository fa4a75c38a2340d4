package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "ZENKEEP_"

// Config is the full runtime configuration, populated from ZENKEEP_*
// environment variables over built-in defaults.
//
//	ZENKEEP_HTTP_ADDR  -> http_addr
//	ZENKEEP_STORE      -> store ("badger" or "redis")
//	ZENKEEP_BADGER_PATH, ZENKEEP_REDIS_ADDR
//	ZENKEEP_OPENAI_API_KEY, ZENKEEP_OPENAI_MODEL
//	ZENKEEP_API_KEYS   -> comma-separated bearer tokens; empty disables auth
//	ZENKEEP_LOG_LEVEL
type Config struct {
	HTTPAddr     string `koanf:"http_addr"`
	Store        string `koanf:"store"`
	BadgerPath   string `koanf:"badger_path"`
	RedisAddr    string `koanf:"redis_addr"`
	OpenAIAPIKey string `koanf:"openai_api_key"`
	OpenAIModel  string `koanf:"openai_model"`
	APIKeys      string `koanf:"api_keys"`
	LogLevel     string `koanf:"log_level"`
}

// LoadConfig reads environment variables into a Config and validates it.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := defaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		HTTPAddr:    ":9090",
		Store:       "badger",
		BadgerPath:  defaultBadgerPath(),
		RedisAddr:   "localhost:6379",
		OpenAIModel: "gpt-4o-mini",
		LogLevel:    "info",
	}
}

func defaultBadgerPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "zenkeep-data"
	}
	return filepath.Join(home, ".zenkeep", "data")
}

func (c *Config) validate() error {
	switch c.Store {
	case "badger":
		if c.BadgerPath == "" {
			return fmt.Errorf("badger_path must be set when store is badger")
		}
	case "redis":
		if c.RedisAddr == "" {
			return fmt.Errorf("redis_addr must be set when store is redis")
		}
	default:
		return fmt.Errorf("unknown store %q (want badger or redis)", c.Store)
	}
	return nil
}
