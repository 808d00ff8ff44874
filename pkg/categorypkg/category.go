// Package categorypkg provides common account category functionality for apps.
package categorypkg

import "github.com/go-playground/validator/v10"

// Constants for all supported account categories.
const (
	Savings = "SAVINGS"
	Current = "CURRENT"
)

// SupportedCategories holds all the supported account categories.
var SupportedCategories = []string{
	Savings,
	Current,
}

// IsSupportedCategory returns true if the category is supported.
func IsSupportedCategory(category string) bool {
	for _, c := range SupportedCategories {
		if c == category {
			return true
		}
	}

	return false
}

// ValidCategory validates whether the account category is supported.
var ValidCategory validator.Func = func(fl validator.FieldLevel) bool {
	if c, ok := fl.Field().Interface().(string); ok {
		return IsSupportedCategory(c)
	}
	return false
}
