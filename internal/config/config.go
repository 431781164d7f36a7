package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/storage"
)

var validate = validator.New()

// Get returns the value of the requested environment variable or the
// supplied fallback when empty.
func Get(name string, fallback string) string {
	if value, ok := os.LookupEnv(name); ok && value != "" {
		return value
	}
	return fallback
}

// Config is the process-wide runtime configuration, read once from the
// environment.
type Config struct {
	// StateURL is the base URL of the state server the CLI talks to.
	StateURL string `validate:"required,url"`
	// ListenAddr is where `hub serve` binds.
	ListenAddr string `validate:"required"`
	// DBPath is the SQLite file backing the state server.
	DBPath string `validate:"required"`
	// SaveDelay is the debounce quiet period for interactive edits.
	SaveDelay time.Duration `validate:"min=0"`

	// OpenRouter settings for the Jarvis analysis module. The key may be
	// empty; Summarize degrades to its fallback line in that case.
	OpenRouterURL   string `validate:"required,url"`
	OpenRouterKey   string
	OpenRouterModel string `validate:"required"`
}

// Load reads environment variables into Config with validation.
func Load() (Config, error) {
	dbPath := Get("STARK_DB_PATH", "")
	if dbPath == "" {
		p, err := storage.DefaultDBPath()
		if err != nil {
			return Config{}, err
		}
		dbPath = p
	}

	delay, err := time.ParseDuration(Get("STARK_SAVE_DELAY", "600ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STARK_SAVE_DELAY: %w", err)
	}

	cfg := Config{
		StateURL:        Get("STARK_STATE_URL", "http://localhost:3001"),
		ListenAddr:      Get("STARK_LISTEN_ADDR", ":3001"),
		DBPath:          dbPath,
		SaveDelay:       delay,
		OpenRouterURL:   Get("OPENROUTER_URL", "https://openrouter.ai/api/v1/chat/completions"),
		OpenRouterKey:   Get("OPENROUTER_API_KEY", ""),
		OpenRouterModel: Get("OPENROUTER_MODEL", "openai/gpt-4o-mini"),
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
