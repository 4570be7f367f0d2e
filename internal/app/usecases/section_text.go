package usecases

import (
	"context"
	"fmt"

	"shopify-bulk-editor/internal/adapters/shopify"
	"shopify-bulk-editor/internal/adapters/shopifyrest"
	"shopify-bulk-editor/internal/domain/edit"
	"shopify-bulk-editor/internal/domain/model"
)

// productFieldStrategy covers the product-level text sections: title,
// description, vendor and product type. Each product is a single target.
type productFieldStrategy struct {
	section string
	gql     shopify.ProductService
	rest    shopifyrest.Service
	op      edit.TextOp
}

func newProductFieldStrategy(section string, gql shopify.ProductService, rest shopifyrest.Service, op edit.TextOp) *productFieldStrategy {
	return &productFieldStrategy{section: section, gql: gql, rest: rest, op: op}
}

func (s *productFieldStrategy) Section() string { return s.section }

func (s *productFieldStrategy) Targets(p model.Product) []Target {
	return []Target{{ID: p.ID}}
}

func (s *productFieldStrategy) current(p model.Product) string {
	switch s.section {
	case SectionTitle:
		return p.Title
	case SectionDescription:
		return p.Description
	case SectionVendor:
		return p.Vendor
	case SectionProductType:
		return p.ProductType
	}
	return ""
}

func (s *productFieldStrategy) Compute(p model.Product, _ Target) (Change, error) {
	old := s.current(p)
	next := s.op.Apply(old)
	if s.section == SectionTitle && next == "" {
		return Change{}, fmt.Errorf("edit would leave product %s with an empty title", p.ID)
	}
	return Change{OldValue: old, NewValue: next}, nil
}

func (s *productFieldStrategy) WritePrimary(ctx context.Context, p model.Product, _ Target, ch Change) error {
	next := ch.NewValue
	input := shopify.ProductFieldInput{}
	switch s.section {
	case SectionTitle:
		input.Title = &next
	case SectionDescription:
		input.DescriptionHTML = &next
	case SectionVendor:
		input.Vendor = &next
	case SectionProductType:
		input.ProductType = &next
	}
	return s.gql.UpdateProductFields(ctx, p.ID, input)
}

func (s *productFieldStrategy) WriteFallback(_ context.Context, p model.Product, _ Target, ch Change) error {
	productID, err := shopify.LegacyID(p.ID)
	if err != nil {
		return err
	}
	next := ch.NewValue
	patch := shopifyrest.ProductPatch{}
	switch s.section {
	case SectionTitle:
		patch.Title = &next
	case SectionDescription:
		patch.BodyHTML = &next
	case SectionVendor:
		patch.Vendor = &next
	case SectionProductType:
		patch.ProductType = &next
	}
	return s.rest.UpdateProduct(productID, patch)
}
