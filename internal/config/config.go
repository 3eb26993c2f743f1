package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	DBHost       string `env:"DB_HOST" envDefault:"localhost"`
	DBPort       string `env:"DB_PORT" envDefault:"5432"`
	DBUser       string `env:"DB_USER" envDefault:"postgres"`
	DBPassword   string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName       string `env:"DB_NAME" envDefault:"rahoot"`
	JWTSecret    string `env:"JWT_SECRET" envDefault:"super-secret-key-change-me"`
	GamePassword string `env:"GAME_PASSWORD" envDefault:"PASSWORD"`
	ServerPort   string `env:"SERVER_PORT" envDefault:"5505"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
