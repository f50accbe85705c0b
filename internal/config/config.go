package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rpggio/countdown/internal/domain/countdown"
	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Transport TransportConfig `yaml:"transport"`
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Countdown CountdownConfig `yaml:"countdown"`
	Auth      AuthConfig      `yaml:"auth"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"` // stdio, http or board
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type CountdownConfig struct {
	Format string `yaml:"format"`
	Seed   bool   `yaml:"seed"`
}

type AuthConfig struct {
	Token string `yaml:"token"`
}

// Load reads configuration from an optional .env file, an optional YAML file and environment variables.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		Transport: TransportConfig{
			Mode: "stdio",
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Log: LogConfig{
			Level: "info",
		},
		Countdown: CountdownConfig{
			Format: string(countdown.ModeNumeric),
			Seed:   true,
		},
	}

	if path := os.Getenv("COUNTDOWN_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if mode := os.Getenv("COUNTDOWN_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if host := os.Getenv("COUNTDOWN_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("COUNTDOWN_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid COUNTDOWN_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if level := os.Getenv("COUNTDOWN_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if path := os.Getenv("COUNTDOWN_LOG_PATH"); path != "" {
		cfg.Log.Path = path
	}
	if format := os.Getenv("COUNTDOWN_FORMAT"); format != "" {
		cfg.Countdown.Format = format
	}
	if seedStr := os.Getenv("COUNTDOWN_SEED"); seedStr != "" {
		seed, err := strconv.ParseBool(seedStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid COUNTDOWN_SEED: %w", err)
		}
		cfg.Countdown.Seed = seed
	}
	if token := os.Getenv("COUNTDOWN_AUTH_TOKEN"); token != "" {
		cfg.Auth.Token = token
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FormatMode returns the configured countdown mode.
func (c Config) FormatMode() countdown.Mode {
	mode, err := countdown.ParseMode(c.Countdown.Format)
	if err != nil {
		return countdown.ModeNumeric
	}
	return mode
}

func (c Config) validate() error {
	switch c.Transport.Mode {
	case "stdio", "http", "board":
	default:
		return fmt.Errorf("invalid transport mode %q", c.Transport.Mode)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if _, err := countdown.ParseMode(c.Countdown.Format); err != nil {
		return fmt.Errorf("invalid countdown format: %w", err)
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
