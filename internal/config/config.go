// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/tellebma/template-discord-bot/internal/errs"
)

// Config is everything the bot process needs from the environment.
type Config struct {
	DiscordToken    string `env:"DISCORD_TOKEN,required"`
	AppID           string `env:"DISCORD_APP_ID,required"`
	StoragePath     string `env:"STORAGE_PATH" envDefault:"data/botstore.json"`
	CommandCacheDir string `env:"COMMAND_CACHE_DIR" envDefault:"data/commands"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile         string `env:"LOG_FILE"`
}

// Load reads .env if present, then parses the environment. A missing required
// variable comes back as a configuration error; callers treat it as fatal.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errs.NewConfig(".env", "file could not be read", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		key, reason := classifyParseError(err)
		return nil, errs.NewConfig(key, reason, err)
	}
	return cfg, nil
}

// classifyParseError pulls the offending variable out of the parser's message
// so the error names the key instead of the struct field.
func classifyParseError(err error) (key, reason string) {
	msg := err.Error()
	for _, k := range []string{"DISCORD_TOKEN", "DISCORD_APP_ID"} {
		if strings.Contains(msg, k) {
			return k, "required variable is not set"
		}
	}
	return "environment", msg
}
