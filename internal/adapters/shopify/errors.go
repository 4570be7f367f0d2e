package shopify

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"shopify-bulk-editor/internal/adapters/shopify/dto"
)

// httpStatusError is a non-2xx response from the Shopify endpoint, kept as a
// typed error so retry classification can read the status code.
type httpStatusError struct {
	statusCode int
	status     string
	body       string
}

func (e *httpStatusError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("shopify request failed: %s", e.status)
	}
	return fmt.Sprintf("shopify request failed: %s: %s", e.status, e.body)
}

func newHTTPStatusError(statusCode int, status string, body []byte) error {
	return &httpStatusError{
		statusCode: statusCode,
		status:     status,
		body:       strings.TrimSpace(string(body)),
	}
}

// isRetryableHTTPError reports whether the failed request is worth repeating:
// rate limiting or a server-side error, never a 4xx the caller caused.
func isRetryableHTTPError(err error) bool {
	var httpErr *httpStatusError
	if !errors.As(err, &httpErr) {
		return false
	}
	switch httpErr.statusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// isThrottleGraphQLError detects Shopify's cost-based throttling, which comes
// back inside a 200 response as a GraphQL error.
func isThrottleGraphQLError(errs []dto.GraphQLError) bool {
	for _, e := range errs {
		if strings.Contains(strings.ToLower(e.Message), "throttled") {
			return true
		}
		if code, ok := e.Extensions["code"].(string); ok && strings.EqualFold(code, "THROTTLED") {
			return true
		}
	}
	return false
}

type userErrorDetail struct {
	Field   string
	Message string
}

// userErrorsError carries the per-field validation errors a mutation returned
// inside a 200 response.
type userErrorsError struct {
	Action string
	Errors []userErrorDetail
}

func (e *userErrorsError) Error() string {
	if e == nil {
		return "shopify user errors"
	}
	parts := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		field := strings.TrimSpace(err.Field)
		message := strings.TrimSpace(err.Message)
		if field == "" {
			parts = append(parts, message)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", field, message))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("shopify %s failed with user errors", e.Action)
	}
	return fmt.Sprintf("shopify %s failed: %s", e.Action, strings.Join(parts, "; "))
}

func userErrorsToError(action string, userErrors []dto.ShopifyUserError) error {
	if len(userErrors) == 0 {
		return nil
	}
	details := make([]userErrorDetail, 0, len(userErrors))
	for _, ue := range userErrors {
		details = append(details, userErrorDetail{
			Field:   strings.Join(ue.Field, "."),
			Message: ue.Message,
		})
	}
	return &userErrorsError{Action: action, Errors: details}
}

// graphqlErrorsError wraps top-level GraphQL errors, keeping the raw messages
// for schema-gap classification.
type graphqlErrorsError struct {
	Errors []dto.GraphQLError
}

func (e *graphqlErrorsError) Error() string {
	return "shopify graphql errors: " + formatGraphQLErrors(e.Errors)
}

func formatGraphQLErrors(errs []dto.GraphQLError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, strings.TrimSpace(e.Message))
	}
	return strings.Join(parts, "; ")
}

// IsSchemaError reports whether the error came back because the GraphQL schema
// does not expose the requested field on this API version. These are the
// errors the REST fallback exists for.
func IsSchemaError(err error) bool {
	var gqlErr *graphqlErrorsError
	if !errors.As(err, &gqlErr) {
		return false
	}
	for _, e := range gqlErr.Errors {
		msg := strings.ToLower(e.Message)
		if strings.Contains(msg, "doesn't exist on type") ||
			strings.Contains(msg, "isn't a defined input type") ||
			strings.Contains(msg, "field is not defined") ||
			strings.Contains(msg, "undefinedfield") {
			return true
		}
		if code, ok := e.Extensions["code"].(string); ok && strings.EqualFold(code, "undefinedField") {
			return true
		}
	}
	return false
}
