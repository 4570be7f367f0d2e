package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shopify-bulk-editor/internal/adapters/shopify"
	"shopify-bulk-editor/internal/domain/model"
)

type fakeSearchGraphQL struct {
	fakeGraphQL
	gotQuery string
	products []model.Product
}

func (f *fakeSearchGraphQL) SearchProducts(_ context.Context, query string) ([]model.Product, error) {
	f.gotQuery = query
	return f.products, nil
}

func TestSearchFiltersLocally(t *testing.T) {
	gql := &fakeSearchGraphQL{products: []model.Product{
		testProduct("1", "Sale Shirt"),
		testProduct("2", "Regular Pants"),
	}}
	search := NewProductSearch(gql, zap.NewNop())

	// doesNotContain has no remote form: the candidates come back unfiltered
	// and the local predicate decides.
	res, err := search.Search(context.Background(), "title", "doesNotContain", "sale")
	require.NoError(t, err)

	assert.Equal(t, "", gql.gotQuery)
	assert.Equal(t, 2, res.Total)
	require.Len(t, res.Matched, 1)
	assert.Equal(t, "gid://shopify/Product/2", res.Matched[0].ID)
}

func TestSearchPushesQueryRemote(t *testing.T) {
	gql := &fakeSearchGraphQL{products: []model.Product{testProduct("1", "Sale Shirt")}}
	search := NewProductSearch(gql, zap.NewNop())

	res, err := search.Search(context.Background(), "title", "startsWith", "Sale")
	require.NoError(t, err)

	assert.Equal(t, "title:Sale*", gql.gotQuery)
	require.Len(t, res.Matched, 1)
}

func TestSearchRejectsUnknownCondition(t *testing.T) {
	search := NewProductSearch(&fakeSearchGraphQL{}, zap.NewNop())
	_, err := search.Search(context.Background(), "title", "fuzzy", "x")
	require.Error(t, err)
}

var _ shopify.ProductService = (*fakeSearchGraphQL)(nil)
