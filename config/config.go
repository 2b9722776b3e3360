package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/andrewpaige1/flashcard-challenges/utils"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env  string     `mapstructure:"env" validate:"oneof=development production test"`
	HTTP HTTPConfig `mapstructure:"http"`
	DB   DBConfig   `mapstructure:"database"`
	Auth AuthConfig `mapstructure:"auth"`
	CORS CORSConfig `mapstructure:"cors"`

	// Categories are ensured to exist on startup.
	Categories []string `mapstructure:"categories" validate:"dive,required,max=100"`
}

type HTTPConfig struct {
	Port string `mapstructure:"port" validate:"required,numeric"`
}

type DBConfig struct {
	Driver       string `mapstructure:"driver" validate:"oneof=postgres sqlite"`
	URL          string `mapstructure:"url" validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"min=1,max=1000"`
}

type AuthConfig struct {
	JWTSecret string   `mapstructure:"jwt_secret" validate:"required,min=16"`
	Issuer    string   `mapstructure:"issuer" validate:"required"`
	Audience  []string `mapstructure:"audience" validate:"required,min=1"`

	// DevTokens mounts POST /api/token, which signs a token for any subject.
	DevTokens bool `mapstructure:"dev_tokens"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from ./config/config.yaml (optional) and the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "development")
	v.SetDefault("http.port", "8080")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.url", "data/flashcards.db")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("auth.issuer", "flashcard-challenges")
	v.SetDefault("auth.dev_tokens", false)
	v.SetDefault("auth.audience", []string{"flashcard-challenges-api"})
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("categories", []string{"history", "geography", "science", "languages"})

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("http.port", "PORT")
	_ = v.BindEnv("database.driver", "DB_DRIVER")
	_ = v.BindEnv("database.url", "DB_URL")
	_ = v.BindEnv("auth.jwt_secret", "JWT_SECRET_KEY")
	_ = v.BindEnv("auth.issuer", "AUTH_ISSUER")
	_ = v.BindEnv("auth.audience", "AUTH_AUDIENCE")
	_ = v.BindEnv("auth.dev_tokens", "AUTH_DEV_TOKENS")
	_ = v.BindEnv("cors.allowed_origins", "CORS_ALLOWED_ORIGINS")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Env vars arrive as a single comma separated string.
	cfg.Auth.Audience = splitList(cfg.Auth.Audience)
	cfg.CORS.AllowedOrigins = splitList(cfg.CORS.AllowedOrigins)

	if err := utils.ValidateStruct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Auth.DevTokens && !cfg.IsDevelopment() {
		return nil, fmt.Errorf("invalid config: auth.dev_tokens requires env development, got %q", cfg.Env)
	}

	return &cfg, nil
}

func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
