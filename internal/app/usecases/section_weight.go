package usecases

import (
	"context"
	"fmt"
	"strings"

	"shopify-bulk-editor/internal/adapters/shopify"
	"shopify-bulk-editor/internal/adapters/shopifyrest"
	"shopify-bulk-editor/internal/domain/edit"
	"shopify-bulk-editor/internal/domain/model"
)

const (
	weightEditSet     = "set"
	weightEditConvert = "convert"
)

type weightApplier interface {
	Apply(current edit.Weight) edit.Weight
}

type weightStrategy struct {
	gql  shopify.ProductService
	rest shopifyrest.Service
	op   weightApplier
}

func newWeightStrategy(req model.EditRequest, gql shopify.ProductService, rest shopifyrest.Service) (*weightStrategy, error) {
	editType := req.EditType
	if editType == "" {
		editType = weightEditSet
	}
	var (
		op  weightApplier
		err error
	)
	switch editType {
	case weightEditSet:
		op, err = edit.NewSetWeight(req.WeightValue, req.WeightUnit)
	case weightEditConvert:
		op, err = edit.NewConvertWeight(req.WeightUnit)
	default:
		return nil, fmt.Errorf("unknown weight edit type %q", req.EditType)
	}
	if err != nil {
		return nil, err
	}
	return &weightStrategy{gql: gql, rest: rest, op: op}, nil
}

func (s *weightStrategy) Section() string { return SectionWeight }

func (s *weightStrategy) Targets(p model.Product) []Target {
	return variantTargets(p)
}

func renderWeight(w edit.Weight) string {
	return strings.TrimSpace(w.Value.String() + " " + w.Unit)
}

func (s *weightStrategy) Compute(_ model.Product, t Target) (Change, error) {
	current := edit.Weight{Value: t.Variant.Weight, Unit: t.Variant.WeightUnit}
	next := s.op.Apply(current)
	return Change{
		OldValue: renderWeight(current),
		NewValue: renderWeight(next),
		Payload:  next,
	}, nil
}

// WritePrimary sends the weight through the variants bulk mutation. On API
// versions whose variant input has no weight this returns a schema error and
// the driver retries over REST.
func (s *weightStrategy) WritePrimary(ctx context.Context, p model.Product, t Target, ch Change) error {
	next := ch.Payload.(edit.Weight)
	return s.gql.BulkUpdateVariants(ctx, p.ID, []shopify.VariantInput{{
		ID:         t.ID,
		Weight:     &next.Value,
		WeightUnit: next.Unit,
	}})
}

func (s *weightStrategy) WriteFallback(_ context.Context, _ model.Product, t Target, ch Change) error {
	variantID, err := shopify.LegacyID(t.ID)
	if err != nil {
		return err
	}
	next := ch.Payload.(edit.Weight)
	_, err = s.rest.UpdateVariant(variantID, shopifyrest.VariantPatch{
		Weight:     &next.Value,
		WeightUnit: next.Unit,
	})
	return err
}
