package models

import "strings"

// Canonical meal types.
const (
	MealBreakfast = "Breakfast"
	MealLunch     = "Lunch"
	MealDinner    = "Dinner"
	MealSnack     = "Snack"
)

// mealTypeMap maps lowercased meal labels and common shorthands to canonical
// meal types.
var mealTypeMap = map[string]string{
	"breakfast": MealBreakfast,
	"bf":        MealBreakfast,
	"bfast":     MealBreakfast,
	"brekkie":   MealBreakfast,
	"morning":   MealBreakfast,

	"lunch":     MealLunch,
	"brunch":    MealLunch,
	"noon":      MealLunch,
	"midday":    MealLunch,
	"afternoon": MealLunch,

	"dinner":       MealDinner,
	"supper":       MealDinner,
	"night":        MealDinner,
	"evening meal": MealDinner,

	"snack":        MealSnack,
	"snacks":       MealSnack,
	"eve":          MealSnack,
	"evening":      MealSnack,
	"pre workout":  MealSnack,
	"post workout": MealSnack,
}

// NormalizeMealType returns the canonical meal type for a label.
// Unknown or empty labels map to MealSnack with known=false.
func NormalizeMealType(label string) (canonical string, known bool) {
	key := strings.ToLower(strings.TrimSpace(label))
	key = strings.ReplaceAll(key, "-", " ")
	if c, ok := mealTypeMap[key]; ok {
		return c, true
	}
	return MealSnack, false
}
