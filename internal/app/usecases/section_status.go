package usecases

import (
	"context"
	"fmt"
	"strings"

	"shopify-bulk-editor/internal/adapters/shopify"
	"shopify-bulk-editor/internal/adapters/shopifyrest"
	"shopify-bulk-editor/internal/domain/model"
)

type statusStrategy struct {
	gql    shopify.ProductService
	rest   shopifyrest.Service
	status string
}

func newStatusStrategy(req model.EditRequest, gql shopify.ProductService, rest shopifyrest.Service) (*statusStrategy, error) {
	status := strings.ToLower(strings.TrimSpace(req.NewStatus))
	switch status {
	case "active", "draft", "archived":
	default:
		return nil, fmt.Errorf("unknown product status %q", req.NewStatus)
	}
	return &statusStrategy{gql: gql, rest: rest, status: status}, nil
}

func (s *statusStrategy) Section() string { return SectionStatus }

func (s *statusStrategy) Targets(p model.Product) []Target {
	return []Target{{ID: p.ID}}
}

func (s *statusStrategy) Compute(p model.Product, _ Target) (Change, error) {
	return Change{OldValue: strings.ToLower(p.Status), NewValue: s.status}, nil
}

func (s *statusStrategy) WritePrimary(ctx context.Context, p model.Product, _ Target, ch Change) error {
	next := ch.NewValue
	return s.gql.UpdateProductFields(ctx, p.ID, shopify.ProductFieldInput{Status: &next})
}

func (s *statusStrategy) WriteFallback(_ context.Context, p model.Product, _ Target, ch Change) error {
	productID, err := shopify.LegacyID(p.ID)
	if err != nil {
		return err
	}
	next := ch.NewValue
	return s.rest.UpdateProduct(productID, shopifyrest.ProductPatch{Status: &next})
}
