package model

import "github.com/shopspring/decimal"

// Product is a request-scoped copy of a Shopify product. Shopify owns the
// record; nothing here is persisted locally.
type Product struct {
	ID          string // gid://shopify/Product/<n>
	Title       string
	Description string // HTML
	Vendor      string
	ProductType string
	Status      string
	Variants    []Variant
}

type Variant struct {
	ID               string // gid://shopify/ProductVariant/<n>
	Title            string
	SKU              string
	Price            decimal.Decimal
	CompareAtPrice   *decimal.Decimal // nil when unset
	Weight           decimal.Decimal
	WeightUnit       string
	InventoryItemID  string // gid://shopify/InventoryItem/<n>
	Cost             *decimal.Decimal // nil when unset
	Tracked          bool
	RequiresShipping bool
}

// HasCompareAtPrice reports whether the variant carries a compare-at price
// greater than zero.
func (v Variant) HasCompareAtPrice() bool {
	return v.CompareAtPrice != nil && v.CompareAtPrice.IsPositive()
}

func (v Variant) HasCost() bool {
	return v.Cost != nil && v.Cost.IsPositive()
}
