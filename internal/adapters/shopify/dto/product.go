package dto

type ShopifyProduct struct {
	ID              string `json:"id,omitempty"`
	Title           string `json:"title,omitempty"`
	Handle          string `json:"handle,omitempty"`
	DescriptionHTML string `json:"descriptionHtml,omitempty"`
	Status          string `json:"status,omitempty"`
	Vendor          string `json:"vendor,omitempty"`
	ProductType     string `json:"productType,omitempty"`

	Variants ShopifyVariantConnection `json:"variants,omitempty"`
}

type ShopifyPageInfo struct {
	HasNextPage bool   `json:"hasNextPage,omitempty"`
	EndCursor   string `json:"endCursor,omitempty"`
}

type ShopifyProductConnection struct {
	Nodes    []ShopifyProduct `json:"nodes,omitempty"`
	PageInfo ShopifyPageInfo  `json:"pageInfo,omitempty"`
}

type ShopifyVariantConnection struct {
	Nodes    []ShopifyVariant `json:"nodes,omitempty"`
	PageInfo ShopifyPageInfo  `json:"pageInfo,omitempty"`
}

type ShopifyVariant struct {
	ID             string                `json:"id,omitempty"`
	Title          string                `json:"title,omitempty"`
	SKU            string                `json:"sku,omitempty"`
	Price          string                `json:"price,omitempty"`
	CompareAtPrice string                `json:"compareAtPrice,omitempty"`
	InventoryItem  *ShopifyInventoryItem `json:"inventoryItem,omitempty"`
}

type ShopifyInventoryItem struct {
	ID               string              `json:"id,omitempty"`
	Tracked          bool                `json:"tracked,omitempty"`
	RequiresShipping bool                `json:"requiresShipping,omitempty"`
	UnitCost         *ShopifyMoney       `json:"unitCost,omitempty"`
	Measurement      *ShopifyMeasurement `json:"measurement,omitempty"`
}

type ShopifyMoney struct {
	Amount string `json:"amount,omitempty"`
}

type ShopifyMeasurement struct {
	Weight *ShopifyWeight `json:"weight,omitempty"`
}

type ShopifyWeight struct {
	Value float64 `json:"value,omitempty"`
	Unit  string  `json:"unit,omitempty"` // GRAMS, KILOGRAMS, OUNCES, POUNDS
}

type ProductsQueryData struct {
	Products ShopifyProductConnection `json:"products"`
}

type ProductQueryData struct {
	Product *ShopifyProduct `json:"product,omitempty"`
}

type ProductUpdateData struct {
	ProductUpdate struct {
		Product    *ShopifyProduct    `json:"product"`
		UserErrors []ShopifyUserError `json:"userErrors,omitempty"`
	} `json:"productUpdate"`
}

type ProductVariantsBulkUpdateData struct {
	ProductVariantsBulkUpdate struct {
		ProductVariants []struct {
			ID string `json:"id,omitempty"`
		} `json:"productVariants,omitempty"`
		UserErrors []ShopifyUserError `json:"userErrors,omitempty"`
	} `json:"productVariantsBulkUpdate"`
}

type InventoryItemUpdateData struct {
	InventoryItemUpdate struct {
		InventoryItem *ShopifyInventoryItem `json:"inventoryItem,omitempty"`
		UserErrors    []ShopifyUserError    `json:"userErrors,omitempty"`
	} `json:"inventoryItemUpdate"`
}
