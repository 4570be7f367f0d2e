// Package shopifyrest is the fallback write transport. The Admin REST API
// still exposes variant weight and a handful of fields the GraphQL schema
// dropped, so failed GraphQL writes are retried here against the numeric
// resource id.
package shopifyrest

import (
	"fmt"

	goshopify "github.com/bold-commerce/go-shopify/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shopify-bulk-editor/internal/config"
	"shopify-bulk-editor/internal/domain/model"
)

// VariantPatch lists the variant fields the fallback can rewrite. Nil members
// keep the remote value.
type VariantPatch struct {
	Price            *decimal.Decimal
	CompareAtPrice   *decimal.Decimal
	Weight           *decimal.Decimal
	WeightUnit       string
	RequiresShipping *bool
}

type ProductPatch struct {
	Title       *string
	BodyHTML    *string
	Vendor      *string
	ProductType *string
	Status      *string
}

type InventoryItemPatch struct {
	Tracked *bool
	Cost    *decimal.Decimal
}

type Service interface {
	GetVariant(variantID int64) (model.Variant, error)
	UpdateVariant(variantID int64, patch VariantPatch) (model.Variant, error)
	UpdateProduct(productID int64, patch ProductPatch) error
	UpdateInventoryItem(inventoryItemID int64, patch InventoryItemPatch) error
}

type Client struct {
	api    *goshopify.Client
	logger *zap.Logger
}

func NewClient(cfg config.ShopifyConfig, logger *zap.Logger) Service {
	api := goshopify.NewClient(
		goshopify.App{},
		cfg.ShopName(),
		cfg.Token,
		goshopify.WithVersion(cfg.APIVer),
		goshopify.WithRetry(3),
	)
	return &Client{api: api, logger: logger}
}

func (c *Client) GetVariant(variantID int64) (model.Variant, error) {
	variant, err := c.api.Variant.Get(variantID, nil)
	if err != nil {
		return model.Variant{}, fmt.Errorf("rest variant %d get: %w", variantID, err)
	}
	return mapRESTVariant(variant), nil
}

// UpdateVariant reads the current variant and writes back the merged record;
// the REST endpoint replaces the resource, so unchanged fields must round-trip.
func (c *Client) UpdateVariant(variantID int64, patch VariantPatch) (model.Variant, error) {
	current, err := c.api.Variant.Get(variantID, nil)
	if err != nil {
		return model.Variant{}, fmt.Errorf("rest variant %d get: %w", variantID, err)
	}

	update := goshopify.Variant{
		ID:              current.ID,
		RequireShipping: current.RequireShipping,
	}
	if patch.Price != nil {
		update.Price = patch.Price
	}
	if patch.CompareAtPrice != nil {
		update.CompareAtPrice = patch.CompareAtPrice
	}
	if patch.Weight != nil {
		update.Weight = patch.Weight
	} else if patch.WeightUnit != "" {
		// Changing only the unit must keep the numeric value.
		update.Weight = current.Weight
	}
	if patch.WeightUnit != "" {
		update.WeightUnit = patch.WeightUnit
	}
	if patch.RequiresShipping != nil {
		update.RequireShipping = *patch.RequiresShipping
	}

	updated, err := c.api.Variant.Update(update)
	if err != nil {
		return model.Variant{}, fmt.Errorf("rest variant %d update: %w", variantID, err)
	}
	c.logger.Debug("rest variant updated", zap.Int64("variant_id", variantID))
	return mapRESTVariant(updated), nil
}

func (c *Client) UpdateProduct(productID int64, patch ProductPatch) error {
	update := goshopify.Product{ID: productID}
	if patch.Title != nil {
		update.Title = *patch.Title
	}
	if patch.BodyHTML != nil {
		update.BodyHTML = *patch.BodyHTML
	}
	if patch.Vendor != nil {
		update.Vendor = *patch.Vendor
	}
	if patch.ProductType != nil {
		update.ProductType = *patch.ProductType
	}
	if patch.Status != nil {
		update.Status = goshopify.ProductStatus(*patch.Status)
	}

	if _, err := c.api.Product.Update(update); err != nil {
		return fmt.Errorf("rest product %d update: %w", productID, err)
	}
	c.logger.Debug("rest product updated", zap.Int64("product_id", productID))
	return nil
}

func (c *Client) UpdateInventoryItem(inventoryItemID int64, patch InventoryItemPatch) error {
	update := goshopify.InventoryItem{ID: inventoryItemID}
	if patch.Tracked != nil {
		update.Tracked = patch.Tracked
	}
	if patch.Cost != nil {
		update.Cost = patch.Cost
	}

	if _, err := c.api.InventoryItem.Update(update); err != nil {
		return fmt.Errorf("rest inventory item %d update: %w", inventoryItemID, err)
	}
	c.logger.Debug("rest inventory item updated", zap.Int64("inventory_item_id", inventoryItemID))
	return nil
}

func mapRESTVariant(v *goshopify.Variant) model.Variant {
	out := model.Variant{
		Title:            v.Title,
		SKU:              v.Sku,
		WeightUnit:       v.WeightUnit,
		RequiresShipping: v.RequireShipping,
	}
	if v.Price != nil {
		out.Price = *v.Price
	}
	if v.CompareAtPrice != nil {
		out.CompareAtPrice = v.CompareAtPrice
	}
	if v.Weight != nil {
		out.Weight = *v.Weight
	}
	return out
}
