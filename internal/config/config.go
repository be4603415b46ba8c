package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type BotConfig struct {
	TelegramToken  string
	DatabaseURL    string
	LoginPin       string
	DefaultTaxRate float64
	LogLevel       logrus.Level
	BotDebug       bool
	SeedDemoData   bool
}

var instance *BotConfig
var once sync.Once

// GetBotConfig loads the configuration once and exits on error.
func GetBotConfig() *BotConfig {
	once.Do(func() {
		cfg, err := Load()
		if err != nil {
			logrus.Fatalf("error loading config: %s", err.Error())
		}
		instance = cfg
	})

	return instance
}

// Load reads .env when present, then the process environment.
func Load() (*BotConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading env variables: %w", err)
	}

	cfg := &BotConfig{}

	cfg.TelegramToken = getEnv("TELEGRAM_BOT_TOKEN", "")
	if cfg.TelegramToken == "" {
		return nil, errors.New("could not get bot token")
	}

	cfg.DatabaseURL = getEnv("DATABASE_URL", "biopay.db")
	cfg.LoginPin = getEnv("LOGIN_PIN", "123")

	cfg.DefaultTaxRate = getEnvAsFloat("DEFAULT_TAX_RATE", 15)
	if cfg.DefaultTaxRate < 0 || cfg.DefaultTaxRate > 100 {
		return nil, fmt.Errorf("DEFAULT_TAX_RATE must be within 0..100, got %v", cfg.DefaultTaxRate)
	}

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	cfg.BotDebug = getEnvAsBool("BOT_DEBUG", false)
	cfg.SeedDemoData = getEnvAsBool("SEED_DEMO_DATA", true)

	return cfg, nil
}

// NewLogger builds a component logger at the configured level.
func (c *BotConfig) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(c.LogLevel)
	return logger
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsFloat(name string, defaultVal float64) float64 {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseFloat(valStr, 64); err == nil {
		return val
	}

	return defaultVal
}
