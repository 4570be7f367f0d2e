package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load builds the full configuration from the environment. A .env file in the
// working directory is read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shopDomain, err := requiredString("SHOPIFY_SHOP_DOMAIN")
	if err != nil {
		return nil, err
	}
	token, err := requiredString("SHOPIFY_ACCESS_TOKEN")
	if err != nil {
		return nil, err
	}
	shopifyTimeout, err := durationWithDefault("SHOPIFY_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	maxConcurrent, err := intWithDefault("BATCH_MAX_CONCURRENT", 4)
	if err != nil {
		return nil, err
	}
	if maxConcurrent <= 0 {
		return nil, fmt.Errorf("BATCH_MAX_CONCURRENT must be positive, got %d", maxConcurrent)
	}
	shutdownTimeout, err := durationWithDefault("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	mysqlPort, err := intWithDefault("MYSQL_PORT", 3306)
	if err != nil {
		return nil, err
	}

	return &Config{
		Shopify: ShopifyConfig{
			ShopDomain: shopDomain,
			Token:      token,
			APIVer:     stringWithDefault("SHOPIFY_API_VERSION", "2024-01"),
			Timeout:    shopifyTimeout,
		},
		Server: ServerConfig{
			Addr:            stringWithDefault("SERVER_ADDR", ":8080"),
			ShutdownTimeout: shutdownTimeout,
		},
		Batch: BatchConfig{
			MaxConcurrent: maxConcurrent,
		},
		Mysql: MysqlConfig{
			Host:     stringWithDefault("MYSQL_HOST", ""),
			Port:     mysqlPort,
			Username: stringWithDefault("MYSQL_USER", ""),
			Password: stringWithDefault("MYSQL_PASSWORD", ""),
			Database: stringWithDefault("MYSQL_DATABASE", ""),
		},
		TelegramBot: TelegramBotConfig{
			ChatId: stringWithDefault("TELEGRAM_CHAT_ID", ""),
			Token:  stringWithDefault("TELEGRAM_BOT_TOKEN", ""),
		},
	}, nil
}

func requiredString(key string) (string, error) {
	variable, isOk := os.LookupEnv(key)
	if !isOk || variable == "" {
		return "", fmt.Errorf("missing required env var: %s", key)
	}
	return variable, nil
}

func stringWithDefault(key, def string) string {
	variable, isOk := os.LookupEnv(key)
	if !isOk || variable == "" {
		return def
	}
	return variable
}

func intWithDefault(key string, def int) (int, error) {
	variable, isOk := os.LookupEnv(key)
	if !isOk || variable == "" {
		return def, nil
	}
	number, err := strconv.Atoi(variable)
	if err != nil {
		return 0, fmt.Errorf("invalid int for %s: %w", key, err)
	}
	return number, nil
}

func durationWithDefault(key string, def time.Duration) (time.Duration, error) {
	variable, isOk := os.LookupEnv(key)
	if !isOk || variable == "" {
		return def, nil
	}
	d, err := time.ParseDuration(variable)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	return d, nil
}
