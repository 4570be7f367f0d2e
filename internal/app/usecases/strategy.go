package usecases

import (
	"fmt"
	"strconv"
	"strings"

	"shopify-bulk-editor/internal/adapters/shopify"
	"shopify-bulk-editor/internal/adapters/shopifyrest"
	"shopify-bulk-editor/internal/domain/edit"
	"shopify-bulk-editor/internal/domain/model"
)

// Section names accepted by the bulk-edit action.
const (
	SectionTitle            = "title"
	SectionDescription      = "description"
	SectionVendor           = "vendor"
	SectionProductType      = "productType"
	SectionStatus           = "status"
	SectionPrice            = "price"
	SectionWeight           = "weight"
	SectionRequiresShipping = "requiresShipping"
	SectionTracksInventory  = "tracksInventory"
	SectionCost             = "cost"
)

// BuildStrategy validates the request operands and assembles the section
// strategy. Every operand error surfaces here, before any remote call.
func BuildStrategy(req model.EditRequest, gql shopify.ProductService, rest shopifyrest.Service) (Strategy, error) {
	switch req.Section {
	case SectionTitle:
		op, err := textOpFromRequest(req, req.NewTitle)
		if err != nil {
			return nil, err
		}
		return newProductFieldStrategy(SectionTitle, gql, rest, op), nil
	case SectionDescription:
		op, err := textOpFromRequest(req, req.NewDescription)
		if err != nil {
			return nil, err
		}
		return newProductFieldStrategy(SectionDescription, gql, rest, op), nil
	case SectionVendor:
		op, err := textOpFromRequest(req, req.NewVendor)
		if err != nil {
			return nil, err
		}
		return newProductFieldStrategy(SectionVendor, gql, rest, op), nil
	case SectionProductType:
		op, err := textOpFromRequest(req, req.NewProductType)
		if err != nil {
			return nil, err
		}
		return newProductFieldStrategy(SectionProductType, gql, rest, op), nil
	case SectionStatus:
		return newStatusStrategy(req, gql, rest)
	case SectionPrice:
		return newPriceStrategy(req, gql, rest)
	case SectionWeight:
		return newWeightStrategy(req, gql, rest)
	case SectionRequiresShipping:
		return newShippingStrategy(req, gql, rest)
	case SectionTracksInventory:
		return newInventoryStrategy(req, gql, rest)
	case SectionCost:
		return newCostStrategy(req, gql, rest)
	}
	return nil, fmt.Errorf("unknown section %q", req.Section)
}

// Edit types shared by the text sections.
const (
	editTypePrepend    = "prepend"
	editTypeAppend     = "append"
	editTypeRemove     = "remove"
	editTypeReplace    = "replace"
	editTypeCapitalize = "capitalize"
	editTypeTruncate   = "truncate"
	editTypeSet        = "set"
)

func textOpFromRequest(req model.EditRequest, setValue string) (edit.TextOp, error) {
	switch req.EditType {
	case editTypePrepend:
		if req.TextToAdd == "" {
			return nil, fmt.Errorf("text to add is required")
		}
		return edit.PrependText{Text: req.TextToAdd}, nil
	case editTypeAppend:
		if req.TextToAdd == "" {
			return nil, fmt.Errorf("text to add is required")
		}
		return edit.AppendText{Text: req.TextToAdd}, nil
	case editTypeRemove:
		return edit.NewRemoveText(req.TextToRemove)
	case editTypeReplace:
		return edit.NewReplaceText(req.TextToRemove, req.ReplacementText)
	case editTypeCapitalize:
		return edit.NewCapitalize(req.CapitalizationType)
	case editTypeTruncate:
		return edit.NewTruncate(req.NumberOfCharacters)
	case editTypeSet:
		if strings.TrimSpace(setValue) == "" {
			return nil, fmt.Errorf("replacement value is required")
		}
		return edit.SetText{Text: setValue}, nil
	}
	return nil, fmt.Errorf("unknown edit type %q", req.EditType)
}

func parseBoolOperand(name, raw string) (bool, error) {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, fmt.Errorf("%s must be true or false: %w", name, err)
	}
	return v, nil
}

func variantTargets(p model.Product) []Target {
	targets := make([]Target, 0, len(p.Variants))
	for i := range p.Variants {
		v := &p.Variants[i]
		targets = append(targets, Target{ID: v.ID, Variant: v})
	}
	return targets
}
