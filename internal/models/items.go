package models

import "strings"

// Item types.
const (
	ItemLift   = "lift"
	ItemCardio = "cardio"
)

// Item is one extracted workout entry. Lifts carry Sets/Reps/Weight, cardio
// carries Duration/Distance/Speed/Calories. Reps and weights stay free text
// ("8-10", "100kg") because that is how people log them.
type Item struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Sets     int    `json:"sets,omitempty"`
	Reps     string `json:"reps,omitempty"`
	Weight   string `json:"weight,omitempty"`
	Duration string `json:"duration,omitempty"`
	Distance string `json:"distance,omitempty"`
	Speed    string `json:"speed,omitempty"`
	Calories int    `json:"calories,omitempty"`
}

// IsCardio reports whether the item is a cardio entry. Anything else is a lift.
func (it Item) IsCardio() bool {
	return strings.EqualFold(it.Type, ItemCardio)
}

// DietItem is one estimated meal entry.
type DietItem struct {
	MealType string `json:"meal_type"`
	FoodRaw  string `json:"food_raw"`
	Calories int    `json:"calories"`
	Protein  int    `json:"protein"`
	Carbs    int    `json:"carbs"`
	Fats     int    `json:"fats"`
}

// SumMacros totals the macros of items.
func SumMacros(items []DietItem) Macros {
	var m Macros
	for _, it := range items {
		m.Calories += it.Calories
		m.Protein += it.Protein
		m.Carbs += it.Carbs
		m.Fats += it.Fats
	}
	return m
}
