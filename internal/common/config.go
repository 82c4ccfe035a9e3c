package common

import (
	"fmt"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	LLM      LLMConfig
}

// DatabaseConfig holds database-related configuration. DSN selects the
// backend: a postgres:// URL opens Postgres via pgx, anything else is treated
// as a SQLite file path.
type DatabaseConfig struct {
	DSN         string        `koanf:"EXPENSE_DB"`
	DialTimeout time.Duration `koanf:"EXPENSE_DB_DIAL_TIMEOUT"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr string `koanf:"EXPENSE_HTTP_ADDR"`
}

// LLMConfig holds text-generation configuration.
type LLMConfig struct {
	Endpoint      string        `koanf:"OLLAMA_ENDPOINT"`
	Model         string        `koanf:"OLLAMA_MODEL"`
	ParseTimeout  time.Duration `koanf:"OLLAMA_PARSE_TIMEOUT"`
	RecipeTimeout time.Duration `koanf:"OLLAMA_RECIPE_TIMEOUT"`
}

// LoadConfig reads configuration from environment variables and applies
// defaults for anything unset.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", nil), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: true}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "expenses.db"
	}
	if cfg.Database.DialTimeout <= 0 {
		cfg.Database.DialTimeout = 3 * time.Second
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8000"
	}
	if cfg.LLM.Endpoint == "" {
		cfg.LLM.Endpoint = "http://localhost:11434"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gemma3n:e2b"
	}
	if cfg.LLM.ParseTimeout <= 0 {
		cfg.LLM.ParseTimeout = 20 * time.Second
	}
	if cfg.LLM.RecipeTimeout <= 0 {
		cfg.LLM.RecipeTimeout = 60 * time.Second
	}
	return &cfg, nil
}
