package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	minSecretKeyLength = 32

	maxPredictionCycles = 12
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

// Config is the runtime configuration of the service and the CLI.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Timezone   string           `yaml:"timezone"`
	Log        LogConfig        `yaml:"log"`
	Reminders  ReminderConfig   `yaml:"reminders"`
	Prediction PredictionConfig `yaml:"prediction"`
}

type ServerConfig struct {
	Port         int           `yaml:"port"`
	SecretKey    string        `yaml:"secret_key"`
	TokenTTL     time.Duration `yaml:"token_ttl"`
	CookieSecure bool          `yaml:"cookie_secure"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ReminderConfig struct {
	Cron           string `yaml:"cron"`
	TelegramToken  string `yaml:"telegram_token"`
	TelegramChatID int64  `yaml:"telegram_chat_id"`
}

type PredictionConfig struct {
	Cycles       int     `yaml:"cycles"`
	RecentWeight float64 `yaml:"recent_weight"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:     8080,
			TokenTTL: 7 * 24 * time.Hour,
		},
		Database: DatabaseConfig{
			Path: "data/periodcalendar.db",
		},
		Timezone: "UTC",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Reminders: ReminderConfig{
			Cron: "0 9 * * *",
		},
		Prediction: PredictionConfig{
			Cycles:       3,
			RecentWeight: 0.3,
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file at
// path, a .env file in the working directory and finally the process
// environment. An empty path or a missing file only skips the YAML step.
func Load(path string) (*Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	// godotenv.Load never overrides variables that are already set.
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) applyEnv() error {
	if err := envInt("PORT", &cfg.Server.Port); err != nil {
		return err
	}
	envString("SECRET_KEY", &cfg.Server.SecretKey)
	if raw, ok := lookupEnv("TOKEN_TTL"); ok {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid TOKEN_TTL: %w", err)
		}
		cfg.Server.TokenTTL = ttl
	}
	if raw, ok := lookupEnv("COOKIE_SECURE"); ok {
		secure, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid COOKIE_SECURE: %w", err)
		}
		cfg.Server.CookieSecure = secure
	}
	envString("DB_PATH", &cfg.Database.Path)
	envString("TZ", &cfg.Timezone)
	envString("LOG_LEVEL", &cfg.Log.Level)
	envString("LOG_FORMAT", &cfg.Log.Format)
	envString("REMINDER_CRON", &cfg.Reminders.Cron)
	envString("TELEGRAM_BOT_TOKEN", &cfg.Reminders.TelegramToken)
	if raw, ok := lookupEnv("TELEGRAM_CHAT_ID"); ok {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.Reminders.TelegramChatID = chatID
	}
	if err := envInt("PREDICTION_CYCLES", &cfg.Prediction.Cycles); err != nil {
		return err
	}
	if raw, ok := lookupEnv("PREDICTION_RECENT_WEIGHT"); ok {
		weight, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid PREDICTION_RECENT_WEIGHT: %w", err)
		}
		cfg.Prediction.RecentWeight = weight
	}
	return nil
}

func (cfg *Config) Validate() error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if cfg.Server.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive, got %s", cfg.Server.TokenTTL)
	}
	if strings.TrimSpace(cfg.Database.Path) == "" {
		return errors.New("database path is required")
	}
	if cfg.Prediction.Cycles < 1 || cfg.Prediction.Cycles > maxPredictionCycles {
		return fmt.Errorf("prediction cycles must be between 1 and %d, got %d", maxPredictionCycles, cfg.Prediction.Cycles)
	}
	if cfg.Prediction.RecentWeight < 0 || cfg.Prediction.RecentWeight > 1 {
		return fmt.Errorf("prediction recent weight must be between 0 and 1, got %g", cfg.Prediction.RecentWeight)
	}
	return nil
}

// ResolveSecretKey returns the token signing secret, refusing empty,
// placeholder and short values.
func (cfg *Config) ResolveSecretKey() (string, error) {
	secret := strings.TrimSpace(cfg.Server.SecretKey)
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return "", errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secret) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}

// Location resolves the configured time zone, falling back to UTC.
func (cfg *Config) Location() *time.Location {
	name := strings.TrimSpace(cfg.Timezone)
	if name == "" {
		return time.UTC
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return location
}

// TelegramEnabled reports whether reminders go to Telegram.
func (cfg *Config) TelegramEnabled() bool {
	return strings.TrimSpace(cfg.Reminders.TelegramToken) != "" && cfg.Reminders.TelegramChatID != 0
}

func lookupEnv(key string) (string, bool) {
	value := strings.TrimSpace(os.Getenv(key))
	return value, value != ""
}

func envString(key string, target *string) {
	if value, ok := lookupEnv(key); ok {
		*target = value
	}
}

func envInt(key string, target *int) error {
	raw, ok := lookupEnv(key)
	if !ok {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*target = value
	return nil
}
