package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopify-bulk-editor/internal/domain/model"
)

func product(id, title, description, vendor string) model.Product {
	return model.Product{ID: id, Title: title, Description: description, Vendor: vendor}
}

func TestNewRejectsUnknownFieldAndCondition(t *testing.T) {
	_, err := New("sku", "is", "x")
	require.Error(t, err)

	_, err = New("title", "fuzzyMatches", "x")
	require.Error(t, err)
}

func TestNewReturnsValidationError(t *testing.T) {
	_, err := New("title", "fuzzy", "x")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestNewRequiresValueExceptEmpty(t *testing.T) {
	_, err := New("title", "contains", "  ")
	require.Error(t, err)

	_, err = New("description", "empty", "")
	require.NoError(t, err)
}

func TestMatchesTitleConditions(t *testing.T) {
	p := product("gid://shopify/Product/1", "Blue Cotton Shirt", "", "Acme")

	cases := []struct {
		condition string
		value     string
		want      bool
	}{
		{"is", "blue cotton shirt", true},
		{"is", "blue", false},
		{"contains", "COTTON", true},
		{"contains", "wool", false},
		{"doesNotContain", "wool", true},
		{"startsWith", "blue", true},
		{"startsWith", "cotton", false},
		{"endsWith", "shirt", true},
		{"endsWith", "blue", false},
	}
	for _, tc := range cases {
		f, err := New("title", tc.condition, tc.value)
		require.NoError(t, err)
		assert.Equal(t, tc.want, f.Matches(p), "%s %q", tc.condition, tc.value)
	}
}

func TestMatchesEmptyDescription(t *testing.T) {
	f, err := New("description", "empty", "")
	require.NoError(t, err)

	assert.True(t, f.Matches(product("1", "A", "", "")))
	assert.True(t, f.Matches(product("2", "B", "  \n ", "")))
	assert.False(t, f.Matches(product("3", "C", "<p>text</p>", "")))
}

func TestMatchesDescriptionStripsHTML(t *testing.T) {
	f, err := New("description", "contains", "soft fabric")
	require.NoError(t, err)

	p := product("1", "Shirt", "<p>Soft fabric</p> blend", "")
	assert.True(t, f.Matches(p))
}

func TestMatchesIDUnwrapsGID(t *testing.T) {
	f, err := New("id", "is", "123456")
	require.NoError(t, err)

	assert.True(t, f.Matches(product("gid://shopify/Product/123456", "X", "", "")))
	assert.False(t, f.Matches(product("gid://shopify/Product/99", "X", "", "")))
}

func TestApplyPreservesOrder(t *testing.T) {
	f, err := New("title", "contains", "sale")
	require.NoError(t, err)

	in := []model.Product{
		product("1", "Sale Shirt", "", ""),
		product("2", "Regular Pants", "", ""),
		product("3", "Final SALE Boots", "", ""),
	}
	got := f.Apply(in)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}

func TestRemoteQuery(t *testing.T) {
	cases := []struct {
		field, condition, value string
		want                    string
	}{
		{"title", "is", "Shirt", "title:Shirt"},
		{"title", "contains", "Shirt", "title:*Shirt*"},
		{"title", "startsWith", "Shirt", "title:Shirt*"},
		{"vendor", "is", "Acme Co", `vendor:"Acme Co"`},
		{"id", "is", "42", "id:42"},
		// No remote form; local predicate must do the work.
		{"title", "doesNotContain", "Shirt", ""},
		{"description", "contains", "soft", ""},
	}
	for _, tc := range cases {
		f, err := New(tc.field, tc.condition, tc.value)
		require.NoError(t, err)
		assert.Equal(t, tc.want, f.RemoteQuery(), "%s %s %q", tc.field, tc.condition, tc.value)
	}
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "Hello", StripHTML("  <p>Hello</p> "))
	assert.Equal(t, "plain", StripHTML("plain"))
}
