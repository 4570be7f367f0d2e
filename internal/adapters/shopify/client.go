package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shopify-bulk-editor/internal/adapters/shopify/dto"
	"shopify-bulk-editor/internal/config"
	"shopify-bulk-editor/internal/domain/model"
)

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// ProductFieldInput names the product-level fields a bulk edit may rewrite.
// Nil members are left untouched.
type ProductFieldInput struct {
	Title           *string
	DescriptionHTML *string
	Vendor          *string
	ProductType     *string
	Status          *string
}

// VariantInput names the variant-level fields a bulk edit may rewrite. Weight
// and RequiresShipping are not exposed by every API version; mutations that
// include them can fail with a schema error, which callers resolve through the
// REST fallback.
type VariantInput struct {
	ID               string
	Price            *decimal.Decimal
	CompareAtPrice   *decimal.Decimal
	Weight           *decimal.Decimal
	WeightUnit       string
	RequiresShipping *bool
}

type InventoryItemInput struct {
	Tracked *bool
	Cost    *decimal.Decimal
}

type ProductService interface {
	SearchProducts(ctx context.Context, searchQuery string) ([]model.Product, error)
	ProductByID(ctx context.Context, productGID string) (model.Product, error)
	UpdateProductFields(ctx context.Context, productGID string, input ProductFieldInput) error
	BulkUpdateVariants(ctx context.Context, productGID string, variants []VariantInput) error
	UpdateInventoryItem(ctx context.Context, inventoryItemGID string, input InventoryItemInput) error
}

type Client struct {
	config     config.ShopifyConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg config.ShopifyConfig, httpClient *http.Client, logger *zap.Logger) ProductService {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		config:     cfg,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *Client) shopifyAPIRequest(ctx context.Context, method string, endpoint string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.config.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newHTTPStatusError(resp.StatusCode, resp.Status, respBody)
	}

	return respBody, nil
}

func (c *Client) graphqlEndpoint() (string, error) {
	domain := strings.TrimSpace(c.config.ShopDomain)
	if domain == "" {
		return "", errors.New("shopify shop domain is empty")
	}
	if !strings.HasPrefix(domain, "http://") && !strings.HasPrefix(domain, "https://") {
		domain = "https://" + domain
	}
	domain = strings.TrimRight(domain, "/")
	if c.config.APIVer == "" {
		return "", errors.New("shopify api version is empty")
	}
	return domain + "/admin/api/" + c.config.APIVer + "/graphql.json", nil
}

// graphqlRequest posts one query/mutation, retrying transient HTTP failures
// and throttled responses with exponential backoff. Schema and userError
// failures are returned to the caller untouched.
func (c *Client) graphqlRequest(ctx context.Context, query string, variables map[string]any, out any) error {
	endpoint, err := c.graphqlEndpoint()
	if err != nil {
		return err
	}

	payload := graphQLRequest{
		Query:     strings.TrimSpace(query),
		Variables: variables,
	}
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	for attempt := 0; attempt <= graphqlRetryMax; attempt++ {
		raw, err := c.shopifyAPIRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
		if err != nil {
			if attempt < graphqlRetryMax && isRetryableHTTPError(err) {
				if err := sleepWithContext(ctx, retryDelay(attempt)); err != nil {
					return err
				}
				continue
			}
			return err
		}

		var resp dto.GraphQLResponse[json.RawMessage]
		if err := json.Unmarshal(raw, &resp); err != nil {
			return fmt.Errorf("shopify graphql response unmarshal: %w", err)
		}
		if len(resp.Errors) > 0 {
			if isThrottleGraphQLError(resp.Errors) && attempt < graphqlRetryMax {
				c.logger.Warn("shopify graphql throttled, backing off",
					zap.Int("attempt", attempt),
					zap.Duration("delay", retryDelay(attempt)),
				)
				if err := sleepWithContext(ctx, retryDelay(attempt)); err != nil {
					return err
				}
				continue
			}
			return &graphqlErrorsError{Errors: resp.Errors}
		}
		if out == nil {
			return nil
		}
		if len(resp.Data) == 0 {
			return errors.New("shopify graphql response missing data")
		}
		return json.Unmarshal(resp.Data, out)
	}

	return fmt.Errorf("shopify graphql request exhausted %d attempts", graphqlRetryMax+1)
}
