package filter

import (
	"fmt"
	"regexp"
	"strings"

	"shopify-bulk-editor/internal/domain/model"
)

type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldID          Field = "id"
	FieldVendor      Field = "vendor"
)

type Condition string

const (
	ConditionIs             Condition = "is"
	ConditionContains       Condition = "contains"
	ConditionDoesNotContain Condition = "doesNotContain"
	ConditionStartsWith     Condition = "startsWith"
	ConditionEndsWith       Condition = "endsWith"
	ConditionEmpty          Condition = "empty"
)

// ValidationError marks a filter that failed construction, so callers can
// tell bad input apart from a transport failure while searching.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// Filter narrows a product set by one field condition. Unknown fields and
// conditions are rejected at construction instead of silently matching
// everything.
type Filter struct {
	Field     Field
	Condition Condition
	Value     string
}

func New(field, condition, value string) (Filter, error) {
	f := Field(strings.TrimSpace(field))
	switch f {
	case FieldTitle, FieldDescription, FieldID, FieldVendor:
	default:
		return Filter{}, validationErrorf("unknown filter field %q", field)
	}

	c := Condition(strings.TrimSpace(condition))
	switch c {
	case ConditionIs, ConditionContains, ConditionDoesNotContain,
		ConditionStartsWith, ConditionEndsWith, ConditionEmpty:
	default:
		return Filter{}, validationErrorf("unknown filter condition %q", condition)
	}

	value = strings.TrimSpace(value)
	if c != ConditionEmpty && value == "" {
		return Filter{}, validationErrorf("filter value is required for condition %q", c)
	}

	return Filter{Field: f, Condition: c, Value: value}, nil
}

// RemoteQuery renders the condition as a Shopify search query where the search
// syntax can express it, for server-side narrowing. Conditions the remote
// search cannot express exactly return "" and rely on the local predicate.
func (f Filter) RemoteQuery() string {
	field := string(f.Field)
	if f.Field == FieldDescription {
		// The products search index has no description field.
		return ""
	}
	value := f.Value
	if strings.ContainsAny(value, ` "`) {
		value = `"` + strings.ReplaceAll(value, `"`, `\"`) + `"`
	}
	switch f.Condition {
	case ConditionIs:
		if f.Field == FieldID {
			return "id:" + value
		}
		return field + ":" + value
	case ConditionContains:
		return field + ":*" + value + "*"
	case ConditionStartsWith:
		return field + ":" + value + "*"
	}
	return ""
}

// Matches applies the exact local predicate. String comparisons are
// case-insensitive; description matching strips HTML tags first.
func (f Filter) Matches(p model.Product) bool {
	subject := f.subject(p)
	value := strings.ToLower(f.Value)
	lowered := strings.ToLower(subject)

	switch f.Condition {
	case ConditionIs:
		return lowered == value
	case ConditionContains:
		return strings.Contains(lowered, value)
	case ConditionDoesNotContain:
		return !strings.Contains(lowered, value)
	case ConditionStartsWith:
		return strings.HasPrefix(lowered, value)
	case ConditionEndsWith:
		return strings.HasSuffix(lowered, value)
	case ConditionEmpty:
		return strings.TrimSpace(subject) == ""
	}
	return false
}

// Apply returns the subset of products the filter matches, preserving order.
func (f Filter) Apply(products []model.Product) []model.Product {
	matched := make([]model.Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			matched = append(matched, p)
		}
	}
	return matched
}

func (f Filter) subject(p model.Product) string {
	switch f.Field {
	case FieldTitle:
		return p.Title
	case FieldDescription:
		return StripHTML(p.Description)
	case FieldVendor:
		return p.Vendor
	case FieldID:
		return legacyIDString(p.ID)
	}
	return ""
}

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes markup tags so description matching sees only the text.
func StripHTML(s string) string {
	return strings.TrimSpace(htmlTag.ReplaceAllString(s, " "))
}

// legacyIDString unwraps the trailing numeric part of a gid, so "id is 42"
// matches gid://shopify/Product/42.
func legacyIDString(gid string) string {
	if i := strings.LastIndex(gid, "/"); i >= 0 {
		return gid[i+1:]
	}
	return gid
}
