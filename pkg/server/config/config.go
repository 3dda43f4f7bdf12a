package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type HTTPConfig struct {
	Address string        `yaml:"address" env:"PLANNER_HTTP_ADDRESS" env-default:":8080"`
	Timeout time.Duration `yaml:"timeout" env:"PLANNER_HTTP_TIMEOUT" env-default:"5s"`
}

type Config struct {
	LogLevel string     `yaml:"log_level" env:"PLANNER_LOG_LEVEL" env-default:"INFO"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Load reads configPath, falling back to the environment when the file does
// not exist. A .env file in the working directory is loaded first if present.
func Load(configPath string) (Config, error) {
	var cfg Config

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("cannot read .env: %w", err)
	}

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return cfg, fmt.Errorf("cannot read env: %w", err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			if err := cleanenv.ReadEnv(&cfg); err != nil {
				return cfg, fmt.Errorf("cannot read env: %w", err)
			}
			return cfg, nil
		}
		return cfg, fmt.Errorf("cannot read config %q: %w", configPath, err)
	}

	return cfg, nil
}
