package model

// EditRequest carries one bulk-edit action as submitted by the form. It lives
// for a single request and is never stored.
type EditRequest struct {
	Section    string
	EditType   string
	ProductIDs []string

	// Text operands.
	TextToAdd          string
	TextToRemove       string
	ReplacementText    string
	CapitalizationType string
	NumberOfCharacters string
	NewTitle           string
	NewDescription     string
	NewVendor          string
	NewProductType     string
	NewStatus          string

	// Price operands.
	AdjustmentType   string
	AdjustmentAmount string
	RoundingType     string
	RoundingValue    string

	// Variant operands.
	WeightValue      string
	WeightUnit       string
	CostValue        string
	RequiresShipping string
	TracksInventory  string
}
