package usecases

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shopify-bulk-editor/internal/adapters/shopify"
	"shopify-bulk-editor/internal/domain/model"
)

// Target is one thing a section writes to: a variant, or the product itself
// for product-level fields.
type Target struct {
	ID      string
	Variant *model.Variant
}

// Change is a computed edit for one target. Old and New are the normalized
// string renderings used for the skip check and the result payload; Payload
// carries the section's typed value through to the writes.
type Change struct {
	OldValue string
	NewValue string
	Payload  any
}

// Strategy plugs one section into the generic driver. Compute must be pure;
// the driver owns skipping, fallback and tallying.
type Strategy interface {
	Section() string
	Targets(p model.Product) []Target
	Compute(p model.Product, t Target) (Change, error)
	WritePrimary(ctx context.Context, p model.Product, t Target, ch Change) error
	WriteFallback(ctx context.Context, p model.Product, t Target, ch Change) error
}

type ProductFetcher interface {
	ProductByID(ctx context.Context, productGID string) (model.Product, error)
}

type BulkUpdateService interface {
	Run(ctx context.Context, productIDs []string, strat Strategy) *model.BatchResult
}

type BulkUpdater struct {
	fetcher       ProductFetcher
	logger        *zap.Logger
	maxConcurrent int
}

func NewBulkUpdater(fetcher ProductFetcher, logger *zap.Logger, maxConcurrent int) *BulkUpdater {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &BulkUpdater{
		fetcher:       fetcher,
		logger:        logger,
		maxConcurrent: maxConcurrent,
	}
}

// Run applies one section edit across the selected products. Products are
// processed by a bounded worker pool; every target ends in exactly one of
// updated, skipped or failed, and one failing target never aborts the batch.
func (u *BulkUpdater) Run(ctx context.Context, productIDs []string, strat Strategy) *model.BatchResult {
	started := time.Now()
	result := &model.BatchResult{
		ID:       uuid.NewString(),
		Section:  strat.Section(),
		Products: make([]model.ProductResult, len(productIDs)),
	}

	u.logger.Info("bulk edit started",
		zap.String("batch_id", result.ID),
		zap.String("section", result.Section),
		zap.Int("products", len(productIDs)),
	)

	sem := make(chan struct{}, u.maxConcurrent)
	var wg sync.WaitGroup
	for i, id := range productIDs {
		i, id := i, id
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			result.Products[i] = u.processProduct(ctx, strat, id)
		}()
	}
	wg.Wait()

	result.Finalize()
	result.Duration = time.Since(started)

	u.logger.Info("bulk edit finished",
		zap.String("batch_id", result.ID),
		zap.String("section", result.Section),
		zap.Int("updated", result.UpdatedVariants),
		zap.Int("skipped", result.SkippedVariants),
		zap.Int("failed", result.FailedVariants),
		zap.Bool("partial_failure", result.PartialFailure),
		zap.Duration("duration", result.Duration),
	)

	return result
}

func (u *BulkUpdater) processProduct(ctx context.Context, strat Strategy, productID string) model.ProductResult {
	productID = shopify.NormalizeProductGID(productID)
	out := model.ProductResult{ProductID: productID}

	if err := ctx.Err(); err != nil {
		out.Error = fmt.Sprintf("batch canceled: %v", err)
		return out
	}

	product, err := u.fetcher.ProductByID(ctx, productID)
	if err != nil {
		u.logger.Warn("product fetch failed",
			zap.String("product_id", productID),
			zap.Error(err),
		)
		out.Error = err.Error()
		return out
	}
	out.ProductTitle = product.Title

	for _, target := range strat.Targets(product) {
		out.VariantUpdates = append(out.VariantUpdates, u.processTarget(ctx, strat, product, target))
	}
	return out
}

// processTarget drives the per-target state machine:
// pending -> skipped | updated | failed, with a single fallback-transport
// retry and no other retries.
func (u *BulkUpdater) processTarget(ctx context.Context, strat Strategy, product model.Product, target Target) model.UpdateResult {
	out := model.UpdateResult{VariantID: target.ID}

	change, err := strat.Compute(product, target)
	if err != nil {
		out.Error = err.Error()
		return out
	}
	out.OriginalValue = change.OldValue
	out.NewValue = change.NewValue

	if change.NewValue == change.OldValue {
		out.Skipped = true
		return out
	}

	primaryErr := strat.WritePrimary(ctx, product, target, change)
	if primaryErr == nil {
		out.Updated = true
		out.Transport = model.TransportGraphQL
		return out
	}

	u.logger.Debug("primary transport failed, trying rest fallback",
		zap.String("target_id", target.ID),
		zap.Bool("schema_error", shopify.IsSchemaError(primaryErr)),
		zap.Error(primaryErr),
	)

	if fallbackErr := strat.WriteFallback(ctx, product, target, change); fallbackErr != nil {
		out.Error = fmt.Sprintf("graphql: %v; rest: %v", primaryErr, fallbackErr)
		return out
	}
	out.Updated = true
	out.Transport = model.TransportREST
	return out
}
