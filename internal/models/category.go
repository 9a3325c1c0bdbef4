package models

import "strings"

// ExpenseCategory is one of the fixed set of expense categories.
type ExpenseCategory string

const (
	CategoryFood           ExpenseCategory = "FOOD"
	CategoryTransportation ExpenseCategory = "TRANSPORTATION"
	CategoryEntertainment  ExpenseCategory = "ENTERTAINMENT"
	CategoryUtilities      ExpenseCategory = "UTILITIES"
	CategoryHealthcare     ExpenseCategory = "HEALTHCARE"
	CategoryShopping       ExpenseCategory = "SHOPPING"
	CategoryEducation      ExpenseCategory = "EDUCATION"
	CategoryTravel         ExpenseCategory = "TRAVEL"
	CategoryRent           ExpenseCategory = "RENT"
	CategoryOther          ExpenseCategory = "OTHER"
)

// Categories lists every valid category in display order.
var Categories = []ExpenseCategory{
	CategoryFood,
	CategoryTransportation,
	CategoryEntertainment,
	CategoryUtilities,
	CategoryHealthcare,
	CategoryShopping,
	CategoryEducation,
	CategoryTravel,
	CategoryRent,
	CategoryOther,
}

// Valid reports whether c is a known category.
func (c ExpenseCategory) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// CategoryNames returns the valid category names joined for error messages.
func CategoryNames() string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
