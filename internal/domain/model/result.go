package model

import (
	"sort"
	"strings"
	"time"
)

// Transport names which write path persisted a change.
const (
	TransportGraphQL = "graphql"
	TransportREST    = "rest"
)

// UpdateResult is the terminal outcome for one target (variant or product
// field). Exactly one of Skipped, Updated or a non-empty Error applies.
type UpdateResult struct {
	VariantID     string `json:"variantId"`
	OriginalValue string `json:"originalValue"`
	NewValue      string `json:"newValue"`
	Skipped       bool   `json:"skipped"`
	Updated       bool   `json:"updated"`
	Transport     string `json:"transport,omitempty"`
	Error         string `json:"error,omitempty"`
}

type ProductResult struct {
	ProductID      string         `json:"productId"`
	ProductTitle   string         `json:"productTitle"`
	Success        bool           `json:"success"`
	Error          string         `json:"error,omitempty"`
	VariantUpdates []UpdateResult `json:"variantUpdates"`
}

// BatchResult aggregates one bulk-edit run. Counts always satisfy
// updated+skipped+failed == total.
type BatchResult struct {
	ID       string          `json:"batchId"`
	Section  string          `json:"section"`
	Products []ProductResult `json:"products"`

	TotalProducts      int `json:"totalProducts"`
	SuccessfulProducts int `json:"successfulProducts"`
	FailedProducts     int `json:"failedProducts"`

	TotalVariants   int `json:"totalVariants"`
	UpdatedVariants int `json:"updatedVariants"`
	SkippedVariants int `json:"skippedVariants"`
	FailedVariants  int `json:"failedVariants"`

	PartialFailure bool          `json:"partialFailure"`
	Duration       time.Duration `json:"-"`
}

// Finalize recomputes every aggregate from the per-product results. A product
// counts as successful iff at least one of its targets was updated.
func (b *BatchResult) Finalize() {
	b.TotalProducts = len(b.Products)
	b.SuccessfulProducts = 0
	b.FailedProducts = 0
	b.TotalVariants = 0
	b.UpdatedVariants = 0
	b.SkippedVariants = 0
	b.FailedVariants = 0

	for i := range b.Products {
		p := &b.Products[i]
		updated := 0
		for _, u := range p.VariantUpdates {
			b.TotalVariants++
			switch {
			case u.Updated:
				b.UpdatedVariants++
				updated++
			case u.Skipped:
				b.SkippedVariants++
			default:
				b.FailedVariants++
			}
		}
		p.Success = updated > 0
		if p.Success {
			b.SuccessfulProducts++
		} else {
			b.FailedProducts++
		}
	}

	b.PartialFailure = b.FailedVariants > 0 && (b.UpdatedVariants+b.SkippedVariants) > 0
}

// HardFailure reports whether nothing in the batch was written or legitimately
// skipped. Products that failed before producing any target (fetch errors)
// count too.
func (b *BatchResult) HardFailure() bool {
	if b.UpdatedVariants > 0 || b.SkippedVariants > 0 {
		return false
	}
	return b.TotalVariants > 0 || b.FailedProducts > 0
}

// ErrorSummary joins the distinct error messages of the batch, sorted for
// stable output.
func (b *BatchResult) ErrorSummary() string {
	seen := make(map[string]struct{})
	for _, p := range b.Products {
		if msg := strings.TrimSpace(p.Error); msg != "" {
			seen[msg] = struct{}{}
		}
		for _, u := range p.VariantUpdates {
			if msg := strings.TrimSpace(u.Error); msg != "" {
				seen[msg] = struct{}{}
			}
		}
	}
	if len(seen) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(seen))
	for msg := range seen {
		msgs = append(msgs, msg)
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}
