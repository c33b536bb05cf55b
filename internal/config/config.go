package config

import (
	"fmt"
	"strings"

	"github.com/asejik/invoice-aso-oke/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Server  ServerConfig  `validate:"required"`
	Store   StoreConfig   `validate:"required"`
	Logging LoggingConfig `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

// StoreConfig locates the local SQLite database file. The tool is
// offline-first: this file is the only durable state.
type StoreConfig struct {
	Path string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// LogLevel implements logger.Config
func (c *Configuration) LogLevel() types.LogLevel {
	return c.Logging.Level
}

func NewConfig() (*Configuration, error) {
	// Optional .env for local overrides, ignored when absent
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("ASOOKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.address", "127.0.0.1:8080")
	v.SetDefault("store.path", "asooke.db")
	v.SetDefault("logging.level", string(types.LogLevelInfo))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c Configuration) Validate() error {
	if !c.Logging.Level.Validate() {
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}
	return validator.New().Struct(c)
}
