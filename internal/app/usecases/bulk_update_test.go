package usecases

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shopify-bulk-editor/internal/adapters/shopify"
	"shopify-bulk-editor/internal/adapters/shopifyrest"
	"shopify-bulk-editor/internal/domain/model"
)

type fakeFetcher struct {
	products map[string]model.Product
	err      error
}

func (f *fakeFetcher) ProductByID(_ context.Context, gid string) (model.Product, error) {
	if f.err != nil {
		return model.Product{}, f.err
	}
	p, ok := f.products[gid]
	if !ok {
		return model.Product{}, fmt.Errorf("shopify product %s not found", gid)
	}
	return p, nil
}

// fakeGraphQL records bulk variant writes and fails the ids listed in failIDs.
type fakeGraphQL struct {
	mu        sync.Mutex
	bulkCalls [][]shopify.VariantInput
	failIDs   map[string]error
	itemCalls []string
}

func (f *fakeGraphQL) SearchProducts(context.Context, string) ([]model.Product, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeGraphQL) ProductByID(context.Context, string) (model.Product, error) {
	return model.Product{}, errors.New("not implemented")
}

func (f *fakeGraphQL) UpdateProductFields(context.Context, string, shopify.ProductFieldInput) error {
	return nil
}

func (f *fakeGraphQL) BulkUpdateVariants(_ context.Context, _ string, variants []shopify.VariantInput) error {
	f.mu.Lock()
	f.bulkCalls = append(f.bulkCalls, variants)
	f.mu.Unlock()
	for _, v := range variants {
		if err, ok := f.failIDs[v.ID]; ok {
			return err
		}
	}
	return nil
}

func (f *fakeGraphQL) UpdateInventoryItem(_ context.Context, gid string, _ shopify.InventoryItemInput) error {
	f.mu.Lock()
	f.itemCalls = append(f.itemCalls, gid)
	f.mu.Unlock()
	return nil
}

type restCall struct {
	variantID int64
	patch     shopifyrest.VariantPatch
}

type fakeREST struct {
	mu    sync.Mutex
	calls []restCall
	err   error
}

func (f *fakeREST) GetVariant(int64) (model.Variant, error) { return model.Variant{}, nil }

func (f *fakeREST) UpdateVariant(variantID int64, patch shopifyrest.VariantPatch) (model.Variant, error) {
	if f.err != nil {
		return model.Variant{}, f.err
	}
	f.mu.Lock()
	f.calls = append(f.calls, restCall{variantID: variantID, patch: patch})
	f.mu.Unlock()
	return model.Variant{}, nil
}

func (f *fakeREST) UpdateProduct(int64, shopifyrest.ProductPatch) error { return f.err }

func (f *fakeREST) UpdateInventoryItem(int64, shopifyrest.InventoryItemPatch) error { return f.err }

func testVariant(id string, price, weight string, unit string) model.Variant {
	return model.Variant{
		ID:         "gid://shopify/ProductVariant/" + id,
		Price:      decimal.RequireFromString(price),
		Weight:     decimal.RequireFromString(weight),
		WeightUnit: unit,
	}
}

func testProduct(id, title string, variants ...model.Variant) model.Product {
	return model.Product{
		ID:       "gid://shopify/Product/" + id,
		Title:    title,
		Variants: variants,
	}
}

func newTestUpdater(fetcher ProductFetcher) *BulkUpdater {
	return NewBulkUpdater(fetcher, zap.NewNop(), 2)
}

func TestRunSkipsUnchangedWeight(t *testing.T) {
	p := testProduct("1", "Shirt", testVariant("11", "10.00", "500", "g"))
	fetcher := &fakeFetcher{products: map[string]model.Product{p.ID: p}}
	gql := &fakeGraphQL{}
	rest := &fakeREST{}

	strat, err := BuildStrategy(model.EditRequest{
		Section:     SectionWeight,
		EditType:    "set",
		WeightValue: "500",
		WeightUnit:  "g",
	}, gql, rest)
	require.NoError(t, err)

	result := newTestUpdater(fetcher).Run(context.Background(), []string{p.ID}, strat)

	assert.Equal(t, 1, result.SkippedVariants)
	assert.Equal(t, 0, result.UpdatedVariants)
	assert.Empty(t, gql.bulkCalls, "unchanged value must not be written")
	assert.Empty(t, rest.calls)
	assert.False(t, result.PartialFailure)
	assert.False(t, result.HardFailure())
}

func TestRunFallsBackToREST(t *testing.T) {
	p := testProduct("1", "Shirt", testVariant("11", "10.00", "500", "g"))
	fetcher := &fakeFetcher{products: map[string]model.Product{p.ID: p}}
	gql := &fakeGraphQL{failIDs: map[string]error{
		"gid://shopify/ProductVariant/11": errors.New("Field 'weight' doesn't exist on type 'ProductVariantsBulkInput'"),
	}}
	rest := &fakeREST{}

	strat, err := BuildStrategy(model.EditRequest{
		Section:    SectionWeight,
		EditType:   "convert",
		WeightUnit: "kg",
	}, gql, rest)
	require.NoError(t, err)

	result := newTestUpdater(fetcher).Run(context.Background(), []string{p.ID}, strat)

	require.Equal(t, 1, result.UpdatedVariants)
	update := result.Products[0].VariantUpdates[0]
	assert.Equal(t, model.TransportREST, update.Transport)
	assert.Equal(t, "500 g", update.OriginalValue)
	assert.Equal(t, "0.5 kg", update.NewValue)

	require.Len(t, rest.calls, 1)
	call := rest.calls[0]
	assert.Equal(t, int64(11), call.variantID)
	assert.Equal(t, "kg", call.patch.WeightUnit)
	require.NotNil(t, call.patch.Weight)
	assert.True(t, decimal.RequireFromString("0.5").Equal(*call.patch.Weight))
}

func TestRunUnitOnlyWeightEditKeepsValue(t *testing.T) {
	p := testProduct("1", "Shirt", testVariant("11", "10.00", "500", "g"))
	fetcher := &fakeFetcher{products: map[string]model.Product{p.ID: p}}
	gql := &fakeGraphQL{failIDs: map[string]error{
		"gid://shopify/ProductVariant/11": errors.New("Field 'weight' doesn't exist on type 'ProductVariantsBulkInput'"),
	}}
	rest := &fakeREST{}

	// Setting only the unit reinterprets the number, it does not convert it.
	strat, err := BuildStrategy(model.EditRequest{
		Section:    SectionWeight,
		EditType:   "set",
		WeightUnit: "kg",
	}, gql, rest)
	require.NoError(t, err)

	result := newTestUpdater(fetcher).Run(context.Background(), []string{p.ID}, strat)

	require.Equal(t, 1, result.UpdatedVariants)
	update := result.Products[0].VariantUpdates[0]
	assert.False(t, update.Skipped)
	assert.Equal(t, "500 kg", update.NewValue)

	require.Len(t, rest.calls, 1)
	call := rest.calls[0]
	assert.Equal(t, "kg", call.patch.WeightUnit)
	require.NotNil(t, call.patch.Weight)
	assert.True(t, decimal.RequireFromString("500").Equal(*call.patch.Weight))
}

func TestRunAggregatesMixedOutcomes(t *testing.T) {
	p := testProduct("1", "Shirt",
		testVariant("11", "10.00", "0", ""),
		testVariant("12", "20.00", "0", ""),
		testVariant("13", "30.00", "0", ""),
	)
	fetcher := &fakeFetcher{products: map[string]model.Product{p.ID: p}}
	gql := &fakeGraphQL{failIDs: map[string]error{
		"gid://shopify/ProductVariant/12": errors.New("internal error"),
	}}
	rest := &fakeREST{err: errors.New("rest down")}

	strat, err := BuildStrategy(model.EditRequest{
		Section:          SectionPrice,
		AdjustmentType:   "adjustAmount",
		AdjustmentAmount: "2.50",
	}, gql, rest)
	require.NoError(t, err)

	result := newTestUpdater(fetcher).Run(context.Background(), []string{p.ID}, strat)

	assert.Equal(t, 3, result.TotalVariants)
	assert.Equal(t, 2, result.UpdatedVariants)
	assert.Equal(t, 0, result.SkippedVariants)
	assert.Equal(t, 1, result.FailedVariants)
	assert.Equal(t, result.TotalVariants, result.UpdatedVariants+result.SkippedVariants+result.FailedVariants)

	assert.True(t, result.PartialFailure)
	assert.False(t, result.HardFailure())
	assert.True(t, result.Products[0].Success, "a product with any update counts as successful")

	failed := result.Products[0].VariantUpdates[1]
	assert.False(t, failed.Updated)
	assert.Contains(t, failed.Error, "graphql: internal error")
	assert.Contains(t, failed.Error, "rest: rest down")
}

func TestRunFetchErrorFailsProduct(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("boom")}

	strat, err := BuildStrategy(model.EditRequest{
		Section:          SectionPrice,
		AdjustmentType:   "adjustAmount",
		AdjustmentAmount: "1",
	}, &fakeGraphQL{}, &fakeREST{})
	require.NoError(t, err)

	result := newTestUpdater(fetcher).Run(context.Background(), []string{"gid://shopify/Product/1"}, strat)

	assert.Equal(t, 1, result.FailedProducts)
	assert.Equal(t, 0, result.TotalVariants)
	assert.True(t, result.HardFailure())
	assert.Equal(t, "boom", result.ErrorSummary())
}

func TestRunAllFailDeduplicatesErrors(t *testing.T) {
	p := testProduct("1", "Shirt",
		testVariant("11", "10.00", "0", ""),
		testVariant("12", "20.00", "0", ""),
	)
	fetcher := &fakeFetcher{products: map[string]model.Product{p.ID: p}}
	gql := &fakeGraphQL{failIDs: map[string]error{
		"gid://shopify/ProductVariant/11": errors.New("throttled"),
		"gid://shopify/ProductVariant/12": errors.New("throttled"),
	}}
	rest := &fakeREST{err: errors.New("rest down")}

	strat, err := BuildStrategy(model.EditRequest{
		Section:          SectionPrice,
		AdjustmentType:   "adjustAmount",
		AdjustmentAmount: "1",
	}, gql, rest)
	require.NoError(t, err)

	result := newTestUpdater(fetcher).Run(context.Background(), []string{p.ID}, strat)

	assert.True(t, result.HardFailure())
	assert.False(t, result.PartialFailure)
	assert.Equal(t, "graphql: throttled; rest: rest down", result.ErrorSummary())
}

func TestRunNormalizesNumericProductIDs(t *testing.T) {
	p := testProduct("1", "Shirt", testVariant("11", "10.00", "0", ""))
	fetcher := &fakeFetcher{products: map[string]model.Product{p.ID: p}}

	strat, err := BuildStrategy(model.EditRequest{
		Section:          SectionPrice,
		AdjustmentType:   "setPrice",
		AdjustmentAmount: "15.00",
	}, &fakeGraphQL{}, &fakeREST{})
	require.NoError(t, err)

	result := newTestUpdater(fetcher).Run(context.Background(), []string{"1"}, strat)

	require.Len(t, result.Products, 1)
	assert.Equal(t, "gid://shopify/Product/1", result.Products[0].ProductID)
	assert.Equal(t, 1, result.UpdatedVariants)
}

func TestRunPreservesInputOrder(t *testing.T) {
	a := testProduct("1", "A", testVariant("11", "10.00", "0", ""))
	b := testProduct("2", "B", testVariant("21", "10.00", "0", ""))
	fetcher := &fakeFetcher{products: map[string]model.Product{a.ID: a, b.ID: b}}

	strat, err := BuildStrategy(model.EditRequest{
		Section:          SectionPrice,
		AdjustmentType:   "adjustAmount",
		AdjustmentAmount: "1",
	}, &fakeGraphQL{}, &fakeREST{})
	require.NoError(t, err)

	result := newTestUpdater(fetcher).Run(context.Background(), []string{b.ID, a.ID}, strat)

	require.Len(t, result.Products, 2)
	assert.Equal(t, b.ID, result.Products[0].ProductID)
	assert.Equal(t, a.ID, result.Products[1].ProductID)
}

func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	strat, err := BuildStrategy(model.EditRequest{
		Section:          SectionPrice,
		AdjustmentType:   "adjustAmount",
		AdjustmentAmount: "1",
	}, &fakeGraphQL{}, &fakeREST{})
	require.NoError(t, err)

	result := newTestUpdater(&fakeFetcher{}).Run(ctx, []string{"1"}, strat)

	assert.Equal(t, 1, result.FailedProducts)
	assert.Contains(t, result.Products[0].Error, "batch canceled")
}
