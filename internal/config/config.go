// Package config loads process configuration from the environment.
//
// A .env file in the working directory is read first (development convenience);
// real environment variables always win over it.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every setting the server and CLI read at startup.
type Config struct {
	Port         string        `env:"PORT" envDefault:"5175"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
	WordsFile    string        `env:"WORDS_FILE"` // empty: embedded list
	DailySalt    string        `env:"DAILY_SALT" envDefault:"local_dev_salt"`
	JWTSecret    string        `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	TokenTTL     time.Duration `env:"JWT_EXPIRES" envDefault:"24h"`
	ClientOrigin string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	CookieName   string        `env:"COOKIE_NAME" envDefault:"wordgrid_session"`
	DefaultLang  string        `env:"DEFAULT_LANG" envDefault:"en-US"`
	Env          string        `env:"NODE_ENV" envDefault:"development"`
}

// Production reports whether cookies must be Secure.
func (c Config) Production() bool { return c.Env == "production" }

// Load reads .env (if present) and parses the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load()
	return parse(env.Options{})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
