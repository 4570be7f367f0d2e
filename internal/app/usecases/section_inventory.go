package usecases

import (
	"context"
	"fmt"
	"strconv"

	"shopify-bulk-editor/internal/adapters/shopify"
	"shopify-bulk-editor/internal/adapters/shopifyrest"
	"shopify-bulk-editor/internal/domain/model"
)

type inventoryStrategy struct {
	gql     shopify.ProductService
	rest    shopifyrest.Service
	tracked bool
}

func newInventoryStrategy(req model.EditRequest, gql shopify.ProductService, rest shopifyrest.Service) (*inventoryStrategy, error) {
	value, err := parseBoolOperand("tracksInventory", req.TracksInventory)
	if err != nil {
		return nil, err
	}
	return &inventoryStrategy{gql: gql, rest: rest, tracked: value}, nil
}

func (s *inventoryStrategy) Section() string { return SectionTracksInventory }

func (s *inventoryStrategy) Targets(p model.Product) []Target {
	return variantTargets(p)
}

func (s *inventoryStrategy) Compute(_ model.Product, t Target) (Change, error) {
	if t.Variant.InventoryItemID == "" {
		return Change{}, fmt.Errorf("variant %s has no inventory item", t.ID)
	}
	return Change{
		OldValue: strconv.FormatBool(t.Variant.Tracked),
		NewValue: strconv.FormatBool(s.tracked),
	}, nil
}

func (s *inventoryStrategy) WritePrimary(ctx context.Context, _ model.Product, t Target, _ Change) error {
	value := s.tracked
	return s.gql.UpdateInventoryItem(ctx, t.Variant.InventoryItemID, shopify.InventoryItemInput{Tracked: &value})
}

func (s *inventoryStrategy) WriteFallback(_ context.Context, _ model.Product, t Target, _ Change) error {
	itemID, err := shopify.LegacyID(t.Variant.InventoryItemID)
	if err != nil {
		return err
	}
	value := s.tracked
	return s.rest.UpdateInventoryItem(itemID, shopifyrest.InventoryItemPatch{Tracked: &value})
}
