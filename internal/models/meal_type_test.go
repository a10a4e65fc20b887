package models

import "testing"

// TestNormalizeMealType_Canonical verifies canonical names pass through in any case.
func TestNormalizeMealType_Canonical(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Breakfast", MealBreakfast},
		{"LUNCH", MealLunch},
		{"dinner", MealDinner},
		{" Snack ", MealSnack},
	}
	for _, tc := range cases {
		got, known := NormalizeMealType(tc.input)
		if !known {
			t.Errorf("NormalizeMealType(%q): expected known=true", tc.input)
		}
		if got != tc.want {
			t.Errorf("NormalizeMealType(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

// TestNormalizeMealType_Shorthand verifies the shorthands people type in quick logs.
func TestNormalizeMealType_Shorthand(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Bf", MealBreakfast},
		{"eve", MealSnack},
		{"post-workout", MealSnack},
		{"supper", MealDinner},
	}
	for _, tc := range cases {
		got, known := NormalizeMealType(tc.input)
		if !known {
			t.Errorf("NormalizeMealType(%q): expected known=true", tc.input)
		}
		if got != tc.want {
			t.Errorf("NormalizeMealType(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

// TestNormalizeMealType_Unknown verifies unknown labels default to Snack.
func TestNormalizeMealType_Unknown(t *testing.T) {
	for _, input := range []string{"", "second breakfast?", "xyz"} {
		got, known := NormalizeMealType(input)
		if known {
			t.Errorf("NormalizeMealType(%q): expected known=false", input)
		}
		if got != MealSnack {
			t.Errorf("NormalizeMealType(%q) = %q, want %q", input, got, MealSnack)
		}
	}
}

func TestSumMacros(t *testing.T) {
	got := SumMacros([]DietItem{
		{Calories: 140, Protein: 12, Carbs: 1, Fats: 10},
		{Calories: 300, Protein: 8, Carbs: 60, Fats: 2},
	})
	want := Macros{Calories: 440, Protein: 20, Carbs: 61, Fats: 12}
	if got != want {
		t.Errorf("SumMacros = %+v, want %+v", got, want)
	}
	if (SumMacros(nil) != Macros{}) {
		t.Error("SumMacros(nil) should be zero")
	}
}
