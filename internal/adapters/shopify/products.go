package shopify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"shopify-bulk-editor/internal/adapters/shopify/dto"
	"shopify-bulk-editor/internal/domain/model"
)

const productSelection = `
id
title
descriptionHtml
vendor
productType
status
variants(first: 250) {
	nodes {
		id
		title
		sku
		price
		compareAtPrice
		inventoryItem {
			id
			tracked
			requiresShipping
			unitCost { amount }
			measurement {
				weight { value unit }
			}
		}
	}
}`

// SearchProducts pages through the products matching a Shopify search query.
// An empty query returns every product, capped by the caller's filter step.
func (c *Client) SearchProducts(ctx context.Context, searchQuery string) ([]model.Product, error) {
	const pageSize = 100

	query := fmt.Sprintf(`
query products($first: Int!, $after: String, $query: String) {
	products(first: $first, after: $after, query: $query) {
		nodes {%s}
		pageInfo { hasNextPage endCursor }
	}
}`, productSelection)

	var (
		products []model.Product
		cursor   *string
	)

	for {
		variables := map[string]any{"first": pageSize}
		if searchQuery != "" {
			variables["query"] = searchQuery
		}
		if cursor != nil && *cursor != "" {
			variables["after"] = *cursor
		}

		var data dto.ProductsQueryData
		if err := c.graphqlRequest(ctx, query, variables, &data); err != nil {
			return nil, err
		}

		for _, sp := range data.Products.Nodes {
			products = append(products, mapShopifyProduct(sp))
		}

		if !data.Products.PageInfo.HasNextPage || data.Products.PageInfo.EndCursor == "" {
			break
		}
		next := data.Products.PageInfo.EndCursor
		cursor = &next
	}

	return products, nil
}

func (c *Client) ProductByID(ctx context.Context, productGID string) (model.Product, error) {
	productGID = strings.TrimSpace(productGID)
	if productGID == "" {
		return model.Product{}, errors.New("shopify product gid is required")
	}

	query := fmt.Sprintf(`
query product($id: ID!) {
	product(id: $id) {%s}
}`, productSelection)

	var data dto.ProductQueryData
	if err := c.graphqlRequest(ctx, query, map[string]any{"id": productGID}, &data); err != nil {
		return model.Product{}, err
	}
	if data.Product == nil {
		return model.Product{}, fmt.Errorf("shopify product %s not found", productGID)
	}
	return mapShopifyProduct(*data.Product), nil
}

func (c *Client) UpdateProductFields(ctx context.Context, productGID string, input ProductFieldInput) error {
	productGID = strings.TrimSpace(productGID)
	if productGID == "" {
		return errors.New("shopify product gid is required")
	}

	fields := map[string]any{"id": productGID}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.DescriptionHTML != nil {
		fields["descriptionHtml"] = *input.DescriptionHTML
	}
	if input.Vendor != nil {
		fields["vendor"] = *input.Vendor
	}
	if input.ProductType != nil {
		fields["productType"] = *input.ProductType
	}
	if input.Status != nil {
		fields["status"] = strings.ToUpper(*input.Status)
	}
	if len(fields) == 1 {
		return errors.New("shopify product update has no fields")
	}

	query := `
mutation productUpdate($input: ProductInput!) {
	productUpdate(input: $input) {
		product { id }
		userErrors { field message }
	}
}`

	var data dto.ProductUpdateData
	if err := c.graphqlRequest(ctx, query, map[string]any{"input": fields}, &data); err != nil {
		return err
	}
	return userErrorsToError("productUpdate", data.ProductUpdate.UserErrors)
}

func (c *Client) BulkUpdateVariants(ctx context.Context, productGID string, variants []VariantInput) error {
	productGID = strings.TrimSpace(productGID)
	if productGID == "" {
		return errors.New("shopify product gid is required")
	}
	if len(variants) == 0 {
		return errors.New("shopify variant update has no variants")
	}

	inputs := make([]map[string]any, 0, len(variants))
	for _, v := range variants {
		input := map[string]any{"id": v.ID}
		if v.Price != nil {
			input["price"] = v.Price.StringFixed(2)
		}
		if v.CompareAtPrice != nil {
			input["compareAtPrice"] = v.CompareAtPrice.StringFixed(2)
		}
		// Weight and requiresShipping moved off ProductVariantInput in newer
		// API versions; sending them can come back as a schema error, which
		// the orchestrator resolves through the REST fallback.
		if v.Weight != nil || v.WeightUnit != "" || v.RequiresShipping != nil {
			item := map[string]any{}
			if v.RequiresShipping != nil {
				item["requiresShipping"] = *v.RequiresShipping
			}
			if v.Weight != nil || v.WeightUnit != "" {
				weight := map[string]any{}
				if v.Weight != nil {
					f, _ := v.Weight.Float64()
					weight["value"] = f
				}
				if v.WeightUnit != "" {
					weight["unit"] = graphqlWeightUnit(v.WeightUnit)
				}
				item["measurement"] = map[string]any{"weight": weight}
			}
			input["inventoryItem"] = item
		}
		inputs = append(inputs, input)
	}

	query := `
mutation productVariantsBulkUpdate($productId: ID!, $variants: [ProductVariantsBulkInput!]!) {
	productVariantsBulkUpdate(productId: $productId, variants: $variants) {
		productVariants { id }
		userErrors { field message }
	}
}`

	var data dto.ProductVariantsBulkUpdateData
	err := c.graphqlRequest(ctx, query, map[string]any{
		"productId": productGID,
		"variants":  inputs,
	}, &data)
	if err != nil {
		return err
	}
	return userErrorsToError("productVariantsBulkUpdate", data.ProductVariantsBulkUpdate.UserErrors)
}

func (c *Client) UpdateInventoryItem(ctx context.Context, inventoryItemGID string, input InventoryItemInput) error {
	inventoryItemGID = strings.TrimSpace(inventoryItemGID)
	if inventoryItemGID == "" {
		return errors.New("shopify inventory item gid is required")
	}

	fields := map[string]any{}
	if input.Tracked != nil {
		fields["tracked"] = *input.Tracked
	}
	if input.Cost != nil {
		fields["cost"] = input.Cost.StringFixed(2)
	}
	if len(fields) == 0 {
		return errors.New("shopify inventory item update has no fields")
	}

	query := `
mutation inventoryItemUpdate($id: ID!, $input: InventoryItemInput!) {
	inventoryItemUpdate(id: $id, input: $input) {
		inventoryItem { id }
		userErrors { field message }
	}
}`

	var data dto.InventoryItemUpdateData
	err := c.graphqlRequest(ctx, query, map[string]any{
		"id":    inventoryItemGID,
		"input": fields,
	}, &data)
	if err != nil {
		return err
	}
	return userErrorsToError("inventoryItemUpdate", data.InventoryItemUpdate.UserErrors)
}

func mapShopifyProduct(sp dto.ShopifyProduct) model.Product {
	p := model.Product{
		ID:          sp.ID,
		Title:       sp.Title,
		Description: sp.DescriptionHTML,
		Vendor:      sp.Vendor,
		ProductType: sp.ProductType,
		Status:      strings.ToLower(sp.Status),
	}
	for _, sv := range sp.Variants.Nodes {
		p.Variants = append(p.Variants, mapShopifyVariant(sv))
	}
	return p
}

func mapShopifyVariant(sv dto.ShopifyVariant) model.Variant {
	v := model.Variant{
		ID:    sv.ID,
		Title: sv.Title,
		SKU:   sv.SKU,
	}
	if d, err := decimal.NewFromString(sv.Price); err == nil {
		v.Price = d
	}
	if sv.CompareAtPrice != "" {
		if d, err := decimal.NewFromString(sv.CompareAtPrice); err == nil {
			v.CompareAtPrice = &d
		}
	}
	if item := sv.InventoryItem; item != nil {
		v.InventoryItemID = item.ID
		v.Tracked = item.Tracked
		v.RequiresShipping = item.RequiresShipping
		if item.UnitCost != nil && item.UnitCost.Amount != "" {
			if d, err := decimal.NewFromString(item.UnitCost.Amount); err == nil {
				v.Cost = &d
			}
		}
		if item.Measurement != nil && item.Measurement.Weight != nil {
			v.Weight = decimal.NewFromFloat(item.Measurement.Weight.Value)
			v.WeightUnit = restWeightUnit(item.Measurement.Weight.Unit)
		}
	}
	return v
}

var weightUnitToGraphQL = map[string]string{
	"g":  "GRAMS",
	"kg": "KILOGRAMS",
	"oz": "OUNCES",
	"lb": "POUNDS",
}

func graphqlWeightUnit(unit string) string {
	if mapped, ok := weightUnitToGraphQL[strings.ToLower(unit)]; ok {
		return mapped
	}
	return strings.ToUpper(unit)
}

func restWeightUnit(unit string) string {
	for rest, gql := range weightUnitToGraphQL {
		if gql == unit {
			return rest
		}
	}
	return strings.ToLower(unit)
}
