package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shopify-bulk-editor/internal/app/usecases"
	"shopify-bulk-editor/internal/domain/filter"
	"shopify-bulk-editor/internal/domain/model"
	"shopify-bulk-editor/internal/infra/mysql"
	"shopify-bulk-editor/internal/logging"
)

// StrategyBuilder turns a validated form request into the section strategy.
// Injected so handler tests can stub the whole update pipeline.
type StrategyBuilder func(model.EditRequest) (usecases.Strategy, error)

type Handler struct {
	updater       usecases.BulkUpdateService
	search        usecases.ProductSearchService
	buildStrategy StrategyBuilder
	store         *mysql.BatchStore
	notifier      logging.Notifier
	logger        *zap.Logger
}

func NewHandler(
	updater usecases.BulkUpdateService,
	search usecases.ProductSearchService,
	buildStrategy StrategyBuilder,
	store *mysql.BatchStore,
	notifier logging.Notifier,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		updater:       updater,
		search:        search,
		buildStrategy: buildStrategy,
		store:         store,
		notifier:      notifier,
		logger:        logger,
	}
}

type actionResponse struct {
	Success        bool                  `json:"success"`
	Error          string                `json:"error,omitempty"`
	Message        string                `json:"message,omitempty"`
	PartialFailure bool                  `json:"partialFailure,omitempty"`
	Results        []model.ProductResult `json:"results,omitempty"`
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, actionResponse{Success: false, Error: err.Error()})
}

// BulkEdit is the form action endpoint. Input validation fails fast; the
// orchestration outcome maps onto the success / partialFailure / error shape.
func (h *Handler) BulkEdit(c *gin.Context) {
	if actionType := c.PostForm("actionType"); actionType != "bulkEdit" {
		badRequest(c, fmt.Errorf("unknown action type %q", actionType))
		return
	}

	var productIDs []string
	rawIDs := strings.TrimSpace(c.PostForm("productIds"))
	if rawIDs == "" {
		badRequest(c, fmt.Errorf("productIds is required"))
		return
	}
	if err := json.Unmarshal([]byte(rawIDs), &productIDs); err != nil {
		badRequest(c, fmt.Errorf("productIds must be a JSON array: %w", err))
		return
	}
	if len(productIDs) == 0 {
		badRequest(c, fmt.Errorf("productIds must not be empty"))
		return
	}

	req := editRequestFromForm(c)
	req.ProductIDs = productIDs
	strat, err := h.buildStrategy(req)
	if err != nil {
		badRequest(c, err)
		return
	}

	result := h.updater.Run(c.Request.Context(), req.ProductIDs, strat)

	if err := h.store.Insert(c.Request.Context(), result); err != nil {
		// History is best-effort; the edit already happened.
		h.logger.Warn("batch history insert failed", zap.Error(err))
	}
	if h.notifier != nil {
		if result.HardFailure() {
			h.notifier.BatchFailed(result.Section, errors.New(result.ErrorSummary()))
		} else {
			h.notifier.BatchCompleted(result)
		}
	}

	h.respondBatch(c, result)
}

func (h *Handler) respondBatch(c *gin.Context, result *model.BatchResult) {
	// Nothing was even fetched: treat as a total transport failure.
	if result.TotalVariants == 0 && result.TotalProducts > 0 && result.FailedProducts == result.TotalProducts {
		c.JSON(http.StatusBadGateway, actionResponse{
			Success: false,
			Error:   result.ErrorSummary(),
			Results: result.Products,
		})
		return
	}

	if result.HardFailure() {
		c.JSON(http.StatusOK, actionResponse{
			Success: false,
			Error:   result.ErrorSummary(),
			Results: result.Products,
		})
		return
	}

	resp := actionResponse{
		Success: true,
		Message: fmt.Sprintf("Updated %d of %d variants (%d skipped, %d failed)",
			result.UpdatedVariants, result.TotalVariants, result.SkippedVariants, result.FailedVariants),
		PartialFailure: result.PartialFailure,
		Results:        result.Products,
	}
	c.JSON(http.StatusOK, resp)
}

func editRequestFromForm(c *gin.Context) model.EditRequest {
	return model.EditRequest{
		Section:            c.PostForm("section"),
		EditType:           c.PostForm("editType"),
		TextToAdd:          c.PostForm("textToAdd"),
		TextToRemove:       c.PostForm("textToRemove"),
		ReplacementText:    c.PostForm("replacementText"),
		CapitalizationType: c.PostForm("capitalizationType"),
		NumberOfCharacters: c.PostForm("numberOfCharacters"),
		NewTitle:           c.PostForm("newTitle"),
		NewDescription:     c.PostForm("newDescription"),
		NewVendor:          c.PostForm("newVendor"),
		NewProductType:     c.PostForm("newProductType"),
		NewStatus:          c.PostForm("newStatus"),
		AdjustmentType:     c.PostForm("adjustmentType"),
		AdjustmentAmount:   c.PostForm("adjustmentAmount"),
		RoundingType:       c.PostForm("roundingType"),
		RoundingValue:      c.PostForm("roundingValue"),
		WeightValue:        c.PostForm("weightValue"),
		WeightUnit:         c.PostForm("weightUnit"),
		CostValue:          c.PostForm("costValue"),
		RequiresShipping:   c.PostForm("requiresShipping"),
		TracksInventory:    c.PostForm("tracksInventory"),
	}
}

type searchResponse struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
	Total   int             `json:"total"`
	Matched int             `json:"matched"`
	Results []searchProduct `json:"results"`
}

type searchProduct struct {
	ProductID string `json:"productId"`
	Title     string `json:"title"`
	Vendor    string `json:"vendor,omitempty"`
	Status    string `json:"status,omitempty"`
}

// SearchProducts runs the filter step and reports "N of M matched" so the
// caller can confirm before editing.
func (h *Handler) SearchProducts(c *gin.Context) {
	field := c.PostForm("field")
	condition := c.PostForm("condition")
	value := c.PostForm("value")

	result, err := h.search.Search(c.Request.Context(), field, condition, value)
	if err != nil {
		var vErr *filter.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, searchResponse{Success: false, Error: err.Error()})
			return
		}
		h.logger.Error("product search failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, searchResponse{Success: false, Error: err.Error()})
		return
	}

	products := make([]searchProduct, 0, len(result.Matched))
	for _, p := range result.Matched {
		products = append(products, searchProduct{
			ProductID: p.ID,
			Title:     p.Title,
			Vendor:    p.Vendor,
			Status:    p.Status,
		})
	}

	c.JSON(http.StatusOK, searchResponse{
		Success: true,
		Message: fmt.Sprintf("%d of %d products matched", len(result.Matched), result.Total),
		Total:   result.Total,
		Matched: len(result.Matched),
		Results: products,
	})
}

// ListBatches returns recent batch history rows; an unconfigured store yields
// an empty list.
func (h *Handler) ListBatches(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	records, err := h.store.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("batch history list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to list batches"})
		return
	}
	if records == nil {
		records = []mysql.BatchRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "results": records})
}
