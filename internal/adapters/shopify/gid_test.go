package shopify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyID(t *testing.T) {
	cases := []struct {
		gid  string
		want int64
	}{
		{"gid://shopify/Product/123456", 123456},
		{"gid://shopify/ProductVariant/789", 789},
		{"gid://shopify/InventoryItem/42?inventory_management=shopify", 42},
		{"555", 555},
	}
	for _, tc := range cases {
		got, err := LegacyID(tc.gid)
		require.NoError(t, err, tc.gid)
		assert.Equal(t, tc.want, got, tc.gid)
	}
}

func TestLegacyIDErrors(t *testing.T) {
	_, err := LegacyID("")
	require.Error(t, err)
	_, err = LegacyID("gid://shopify/Product/abc")
	require.Error(t, err)
}

func TestGIDBuildersRoundTrip(t *testing.T) {
	assert.Equal(t, "gid://shopify/Product/1", ProductGID(1))
	assert.Equal(t, "gid://shopify/ProductVariant/2", VariantGID(2))
	assert.Equal(t, "gid://shopify/InventoryItem/3", InventoryItemGID(3))

	id, err := LegacyID(VariantGID(9001))
	require.NoError(t, err)
	assert.Equal(t, int64(9001), id)
}

func TestNormalizeProductGID(t *testing.T) {
	assert.Equal(t, "gid://shopify/Product/7", NormalizeProductGID("7"))
	assert.Equal(t, "gid://shopify/Product/7", NormalizeProductGID("gid://shopify/Product/7"))
}
