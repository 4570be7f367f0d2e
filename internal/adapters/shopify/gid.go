package shopify

import (
	"fmt"
	"strconv"
	"strings"
)

// Gid namespaces for the resources this service touches.
const (
	gidProductPrefix       = "gid://shopify/Product/"
	gidVariantPrefix       = "gid://shopify/ProductVariant/"
	gidInventoryItemPrefix = "gid://shopify/InventoryItem/"
)

// LegacyID unwraps the numeric resource id from a gid. The REST endpoints key
// resources by this number, so the fallback transport depends on it.
func LegacyID(gid string) (int64, error) {
	gid = strings.TrimSpace(gid)
	if gid == "" {
		return 0, fmt.Errorf("empty gid")
	}
	raw := gid
	if i := strings.LastIndex(gid, "/"); i >= 0 {
		raw = gid[i+1:]
	}
	// Some gids carry a query suffix, e.g. ...?inventory_management=shopify
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[:i]
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("gid %q has no numeric id: %w", gid, err)
	}
	return id, nil
}

func ProductGID(id int64) string {
	return gidProductPrefix + strconv.FormatInt(id, 10)
}

func VariantGID(id int64) string {
	return gidVariantPrefix + strconv.FormatInt(id, 10)
}

func InventoryItemGID(id int64) string {
	return gidInventoryItemPrefix + strconv.FormatInt(id, 10)
}

// NormalizeProductGID accepts either a bare numeric id or a full gid and
// returns the gid form the GraphQL API expects.
func NormalizeProductGID(id string) string {
	id = strings.TrimSpace(id)
	if strings.HasPrefix(id, "gid://") {
		return id
	}
	return gidProductPrefix + id
}
