// One-shot bulk edit from the command line, for scripted runs and smoke
// testing against a dev store without the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"shopify-bulk-editor/internal/adapters/shopify"
	"shopify-bulk-editor/internal/adapters/shopifyrest"
	"shopify-bulk-editor/internal/app/usecases"
	"shopify-bulk-editor/internal/config"
	"shopify-bulk-editor/internal/domain/model"
	"shopify-bulk-editor/internal/logging"
)

func main() {
	var (
		section    = flag.String("section", "", "field section to edit (title, price, weight, ...)")
		editType   = flag.String("edit-type", "", "edit type for text sections")
		productIDs = flag.String("products", "", "comma-separated product ids or gids")
		operands   = flag.String("operands", "{}", "JSON object of section operands")
	)
	flag.Parse()

	logger, err := logging.NewLogger(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}

	if *section == "" || *productIDs == "" {
		logger.Fatal("-section and -products are required")
	}

	req := model.EditRequest{Section: *section, EditType: *editType}
	if err := json.Unmarshal([]byte(*operands), &operandAlias{&req}); err != nil {
		logger.Fatal("invalid -operands JSON", zap.Error(err))
	}

	req.ProductIDs = strings.Split(*productIDs, ",")
	for i := range req.ProductIDs {
		req.ProductIDs[i] = strings.TrimSpace(req.ProductIDs[i])
	}

	gqlClient := shopify.NewClient(cfg.Shopify, nil, logger)
	restClient := shopifyrest.NewClient(cfg.Shopify, logger)

	strat, err := usecases.BuildStrategy(req, gqlClient, restClient)
	if err != nil {
		logger.Fatal("invalid edit request", zap.Error(err))
	}

	updater := usecases.NewBulkUpdater(gqlClient, logger, cfg.Batch.MaxConcurrent)
	result := updater.Run(context.Background(), req.ProductIDs, strat)

	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))

	if result.HardFailure() {
		os.Exit(1)
	}
}

// operandAlias lets the -operands JSON use the same field names as the HTTP
// form.
type operandAlias struct {
	req *model.EditRequest
}

func (a *operandAlias) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r := a.req
	for key, value := range raw {
		switch key {
		case "textToAdd":
			r.TextToAdd = value
		case "textToRemove":
			r.TextToRemove = value
		case "replacementText":
			r.ReplacementText = value
		case "capitalizationType":
			r.CapitalizationType = value
		case "numberOfCharacters":
			r.NumberOfCharacters = value
		case "newTitle":
			r.NewTitle = value
		case "newDescription":
			r.NewDescription = value
		case "newVendor":
			r.NewVendor = value
		case "newProductType":
			r.NewProductType = value
		case "newStatus":
			r.NewStatus = value
		case "adjustmentType":
			r.AdjustmentType = value
		case "adjustmentAmount":
			r.AdjustmentAmount = value
		case "roundingType":
			r.RoundingType = value
		case "roundingValue":
			r.RoundingValue = value
		case "weightValue":
			r.WeightValue = value
		case "weightUnit":
			r.WeightUnit = value
		case "costValue":
			r.CostValue = value
		case "requiresShipping":
			r.RequiresShipping = value
		case "tracksInventory":
			r.TracksInventory = value
		default:
			return fmt.Errorf("unknown operand %q", key)
		}
	}
	return nil
}
