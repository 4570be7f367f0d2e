package usecases

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"shopify-bulk-editor/internal/adapters/shopify"
	"shopify-bulk-editor/internal/adapters/shopifyrest"
	"shopify-bulk-editor/internal/domain/edit"
	"shopify-bulk-editor/internal/domain/model"
)

// Price adjustment types accepted from the form.
const (
	adjustSetPrice           = "setPrice"
	adjustByAmount           = "adjustAmount"
	adjustByPercentage       = "adjustPercentage"
	adjustPercentOfCompareAt = "percentOfCompareAt"
	adjustPercentOfCost      = "percentOfCost"
	adjustRound              = "round"
)

type priceStrategy struct {
	gql  shopify.ProductService
	rest shopifyrest.Service
	op   edit.PriceOp
}

func newPriceStrategy(req model.EditRequest, gql shopify.ProductService, rest shopifyrest.Service) (*priceStrategy, error) {
	var (
		op  edit.PriceOp
		err error
	)
	switch req.AdjustmentType {
	case adjustSetPrice:
		op, err = edit.NewSetPrice(req.AdjustmentAmount)
	case adjustByAmount:
		op, err = edit.NewAdjustPriceByAmount(req.AdjustmentAmount)
	case adjustByPercentage:
		op, err = edit.NewAdjustPriceByPercent(req.AdjustmentAmount)
	case adjustPercentOfCompareAt:
		op, err = edit.NewPercentOfCompareAt(req.AdjustmentAmount)
	case adjustPercentOfCost:
		op, err = edit.NewPercentOfCost(req.AdjustmentAmount)
	case adjustRound:
		op, err = edit.NewRoundPrice(req.RoundingType, req.RoundingValue)
	default:
		return nil, fmt.Errorf("unknown adjustment type %q", req.AdjustmentType)
	}
	if err != nil {
		return nil, err
	}
	return &priceStrategy{gql: gql, rest: rest, op: op}, nil
}

func (s *priceStrategy) Section() string { return SectionPrice }

func (s *priceStrategy) Targets(p model.Product) []Target {
	return variantTargets(p)
}

func (s *priceStrategy) Compute(_ model.Product, t Target) (Change, error) {
	v := t.Variant
	inputs := edit.PriceInputs{Price: v.Price}
	if v.HasCompareAtPrice() {
		inputs.CompareAtPrice = v.CompareAtPrice
	}
	if v.HasCost() {
		inputs.Cost = v.Cost
	}
	next := s.op.Apply(inputs)
	return Change{
		OldValue: v.Price.StringFixed(2),
		NewValue: next.StringFixed(2),
		Payload:  next,
	}, nil
}

func (s *priceStrategy) WritePrimary(ctx context.Context, p model.Product, t Target, ch Change) error {
	price := ch.Payload.(decimal.Decimal)
	return s.gql.BulkUpdateVariants(ctx, p.ID, []shopify.VariantInput{{
		ID:    t.ID,
		Price: &price,
	}})
}

func (s *priceStrategy) WriteFallback(_ context.Context, _ model.Product, t Target, ch Change) error {
	variantID, err := shopify.LegacyID(t.ID)
	if err != nil {
		return err
	}
	price := ch.Payload.(decimal.Decimal)
	_, err = s.rest.UpdateVariant(variantID, shopifyrest.VariantPatch{Price: &price})
	return err
}
