package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"shopify-bulk-editor/internal/adapters/shopify"
	"shopify-bulk-editor/internal/adapters/shopifyrest"
	"shopify-bulk-editor/internal/domain/model"
)

type costStrategy struct {
	gql  shopify.ProductService
	rest shopifyrest.Service
	cost decimal.Decimal
}

func newCostStrategy(req model.EditRequest, gql shopify.ProductService, rest shopifyrest.Service) (*costStrategy, error) {
	raw := strings.TrimSpace(req.CostValue)
	if raw == "" {
		return nil, fmt.Errorf("cost value is required")
	}
	cost, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("cost value must be a number: %w", err)
	}
	if cost.IsNegative() {
		return nil, fmt.Errorf("cost value must not be negative")
	}
	return &costStrategy{gql: gql, rest: rest, cost: cost.Round(2)}, nil
}

func (s *costStrategy) Section() string { return SectionCost }

func (s *costStrategy) Targets(p model.Product) []Target {
	return variantTargets(p)
}

func (s *costStrategy) Compute(_ model.Product, t Target) (Change, error) {
	if t.Variant.InventoryItemID == "" {
		return Change{}, fmt.Errorf("variant %s has no inventory item", t.ID)
	}
	old := ""
	if t.Variant.Cost != nil {
		old = t.Variant.Cost.StringFixed(2)
	}
	return Change{
		OldValue: old,
		NewValue: s.cost.StringFixed(2),
	}, nil
}

func (s *costStrategy) WritePrimary(ctx context.Context, _ model.Product, t Target, _ Change) error {
	cost := s.cost
	return s.gql.UpdateInventoryItem(ctx, t.Variant.InventoryItemID, shopify.InventoryItemInput{Cost: &cost})
}

func (s *costStrategy) WriteFallback(_ context.Context, _ model.Product, t Target, _ Change) error {
	itemID, err := shopify.LegacyID(t.Variant.InventoryItemID)
	if err != nil {
		return err
	}
	cost := s.cost
	return s.rest.UpdateInventoryItem(itemID, shopifyrest.InventoryItemPatch{Cost: &cost})
}
