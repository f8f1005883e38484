package models

// Default category suggestions shown before the user defines any of their
// own. Categories are free-form labels; this list only seeds the pickers
// and the wallet's budget table.
const (
	CategoryFoodDining    = "Food & Dining"
	CategoryTransport     = "Transport"
	CategoryEntertainment = "Entertainment"
	CategoryShopping      = "Shopping"
	CategoryHealthFitness = "Health & Fitness"
	CategoryBills         = "Bills"
	CategoryUtilities     = "Utilities"
	CategoryOther         = "Other"
)

// DefaultCategories returns the fixed suggestion list in display order.
func DefaultCategories() []string {
	return []string{
		CategoryFoodDining,
		CategoryTransport,
		CategoryEntertainment,
		CategoryShopping,
		CategoryHealthFitness,
		CategoryBills,
		CategoryUtilities,
		CategoryOther,
	}
}
