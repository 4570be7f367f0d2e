package usecases

import (
	"context"

	"go.uber.org/zap"

	"shopify-bulk-editor/internal/adapters/shopify"
	"shopify-bulk-editor/internal/domain/filter"
	"shopify-bulk-editor/internal/domain/model"
)

// SearchResult reports the confirmation-step numbers: how many candidates the
// remote search returned and which of them the exact predicate kept.
type SearchResult struct {
	Total   int
	Matched []model.Product
}

type ProductSearchService interface {
	Search(ctx context.Context, field, condition, value string) (SearchResult, error)
}

type ProductSearch struct {
	gql    shopify.ProductService
	logger *zap.Logger
}

func NewProductSearch(gql shopify.ProductService, logger *zap.Logger) *ProductSearch {
	return &ProductSearch{gql: gql, logger: logger}
}

// Search narrows server-side with a Shopify search query where the condition
// allows, then applies the exact local predicate.
func (s *ProductSearch) Search(ctx context.Context, field, condition, value string) (SearchResult, error) {
	f, err := filter.New(field, condition, value)
	if err != nil {
		return SearchResult{}, err
	}

	candidates, err := s.gql.SearchProducts(ctx, f.RemoteQuery())
	if err != nil {
		return SearchResult{}, err
	}

	matched := f.Apply(candidates)
	s.logger.Info("product search",
		zap.String("field", field),
		zap.String("condition", condition),
		zap.Int("candidates", len(candidates)),
		zap.Int("matched", len(matched)),
	)

	return SearchResult{Total: len(candidates), Matched: matched}, nil
}
