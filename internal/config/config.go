package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application settings. Values come from the environment;
// a .env file is loaded first when present.
type Config struct {
	Addr               string `env:"ADDR" envDefault:":3001"`
	DatabaseURL        string `env:"DATABASE_URL,required"`
	JWTSecret          string `env:"JWT_SECRET,required"`
	GooglePlacesAPIKey string `env:"GOOGLE_PLACES_API_KEY"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
