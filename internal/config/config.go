package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port            uint16        `env:"PORT" env-default:"8080"`
	LogLevel        string        `env:"LOG_LEVEL" env-default:"info"`
	GinMode         string        `env:"GIN_MODE" env-default:"release"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// Load reads an optional .env file and then the environment. Variables already
// set in the environment win over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		return nil, fmt.Errorf("invalid GIN_MODE: %q, must be one of: debug, release, test", cfg.GinMode)
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %s", cfg.ShutdownTimeout)
	}
	return &cfg, nil
}

func MustLoad(log *logrus.Logger) *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

func (c *Config) Level() (logrus.Level, error) {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
		return logrus.ParseLevel(c.LogLevel)
	}
	return logrus.InfoLevel, fmt.Errorf("invalid LOG_LEVEL: %q, must be one of: debug, info, warn, error", c.LogLevel)
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
