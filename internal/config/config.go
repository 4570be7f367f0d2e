package config

import (
	"strings"
	"time"
)

type Config struct {
	Shopify     ShopifyConfig
	Server      ServerConfig
	Batch       BatchConfig
	Mysql       MysqlConfig
	TelegramBot TelegramBotConfig
}

type ShopifyConfig struct {
	// ShopDomain is the full myshopify domain, e.g. acme.myshopify.com.
	ShopDomain string
	Token      string
	APIVer     string
	Timeout    time.Duration
}

// ShopName is the bare shop handle the REST SDK expects.
func (c ShopifyConfig) ShopName() string {
	domain := c.ShopDomain
	if _, rest, ok := strings.Cut(domain, "://"); ok {
		domain = rest
	}
	name, _, _ := strings.Cut(domain, ".")
	return name
}

type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

type BatchConfig struct {
	// MaxConcurrent bounds in-flight product updates per batch.
	MaxConcurrent int
}

// MysqlConfig is optional; with an empty Host the batch history store is
// disabled.
type MysqlConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
}

func (c MysqlConfig) Enabled() bool {
	return c.Host != ""
}

// TelegramBotConfig is optional; with empty credentials batch alerts are
// disabled.
type TelegramBotConfig struct {
	ChatId string
	Token  string
}
