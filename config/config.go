package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// DatabaseURL is the SQLite target, e.g. "database/properties.db".
	// Required; startup fails without it.
	DatabaseURL string `env:"DATABASE_URL"`

	Port     string `env:"PORT" envDefault:"5250"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
