package usecases

import (
	"context"
	"strconv"

	"shopify-bulk-editor/internal/adapters/shopify"
	"shopify-bulk-editor/internal/adapters/shopifyrest"
	"shopify-bulk-editor/internal/domain/model"
)

type shippingStrategy struct {
	gql              shopify.ProductService
	rest             shopifyrest.Service
	requiresShipping bool
}

func newShippingStrategy(req model.EditRequest, gql shopify.ProductService, rest shopifyrest.Service) (*shippingStrategy, error) {
	value, err := parseBoolOperand("requiresShipping", req.RequiresShipping)
	if err != nil {
		return nil, err
	}
	return &shippingStrategy{gql: gql, rest: rest, requiresShipping: value}, nil
}

func (s *shippingStrategy) Section() string { return SectionRequiresShipping }

func (s *shippingStrategy) Targets(p model.Product) []Target {
	return variantTargets(p)
}

func (s *shippingStrategy) Compute(_ model.Product, t Target) (Change, error) {
	return Change{
		OldValue: strconv.FormatBool(t.Variant.RequiresShipping),
		NewValue: strconv.FormatBool(s.requiresShipping),
	}, nil
}

func (s *shippingStrategy) WritePrimary(ctx context.Context, p model.Product, t Target, _ Change) error {
	value := s.requiresShipping
	return s.gql.BulkUpdateVariants(ctx, p.ID, []shopify.VariantInput{{
		ID:               t.ID,
		RequiresShipping: &value,
	}})
}

func (s *shippingStrategy) WriteFallback(_ context.Context, _ model.Product, t Target, _ Change) error {
	variantID, err := shopify.LegacyID(t.ID)
	if err != nil {
		return err
	}
	value := s.requiresShipping
	_, err = s.rest.UpdateVariant(variantID, shopifyrest.VariantPatch{RequiresShipping: &value})
	return err
}
