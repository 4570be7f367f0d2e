package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SHOPIFY_SHOP_DOMAIN", "test-shop.myshopify.com")
	t.Setenv("SHOPIFY_ACCESS_TOKEN", "shpat_test")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-shop.myshopify.com", cfg.Shopify.ShopDomain)
	assert.Equal(t, "2024-01", cfg.Shopify.APIVer)
	assert.Equal(t, 30*time.Second, cfg.Shopify.Timeout)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 4, cfg.Batch.MaxConcurrent)
	assert.False(t, cfg.Mysql.Enabled())
}

func TestLoadMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SHOPIFY_ACCESS_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHOPIFY_ACCESS_TOKEN")
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SHOPIFY_API_VERSION", "2024-07")
	t.Setenv("SHOPIFY_TIMEOUT", "5s")
	t.Setenv("BATCH_MAX_CONCURRENT", "8")
	t.Setenv("MYSQL_HOST", "localhost")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "2024-07", cfg.Shopify.APIVer)
	assert.Equal(t, 5*time.Second, cfg.Shopify.Timeout)
	assert.Equal(t, 8, cfg.Batch.MaxConcurrent)
	assert.True(t, cfg.Mysql.Enabled())
}

func TestLoadRejectsBadConcurrency(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BATCH_MAX_CONCURRENT", "0")

	_, err := Load()
	require.Error(t, err)
}

func TestShopName(t *testing.T) {
	cfg := ShopifyConfig{ShopDomain: "test-shop.myshopify.com"}
	assert.Equal(t, "test-shop", cfg.ShopName())

	cfg.ShopDomain = "https://test-shop.myshopify.com"
	assert.Equal(t, "test-shop", cfg.ShopName())
}
