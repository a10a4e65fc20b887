package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutLogRow is a row of the workout_logs table: one logged session.
type WorkoutLogRow struct {
	ID        uuid.UUID `json:"id"`
	Date      time.Time `json:"date"`
	DayType   string    `json:"day_type"`
	Raw       string    `json:"raw"`
	CreatedAt time.Time `json:"created_at"`
}

// WorkoutExerciseRow is a lift within a session, joined with its exercise name.
type WorkoutExerciseRow struct {
	ID           int64     `json:"id"`
	WorkoutLogID uuid.UUID `json:"workout_log_id"`
	ExerciseID   int       `json:"exercise_id"`
	Name         string    `json:"name"`
	Sets         *int      `json:"sets,omitempty"`
	Reps         string    `json:"reps,omitempty"`
	Weight       string    `json:"weight,omitempty"`
}

// CardioRow is a row of the cardio_logs table.
type CardioRow struct {
	ID           int64     `json:"id"`
	WorkoutLogID uuid.UUID `json:"workout_log_id"`
	ActivityName string    `json:"activity_name"`
	Duration     string    `json:"duration,omitempty"`
	Distance     string    `json:"distance,omitempty"`
	Speed        string    `json:"speed,omitempty"`
	Calories     *int      `json:"calories,omitempty"`
}

// WorkoutDetail is a session with everything logged in it.
type WorkoutDetail struct {
	WorkoutLogRow
	Exercises []WorkoutExerciseRow `json:"exercises"`
	Cardio    []CardioRow          `json:"cardio"`
}

// DietLogRow is a row of the diet_logs table.
type DietLogRow struct {
	ID        int64     `json:"id"`
	Date      time.Time `json:"date"`
	MealType  string    `json:"meal_type"`
	FoodRaw   string    `json:"food_raw"`
	Calories  int       `json:"calories"`
	Protein   int       `json:"protein"`
	Carbs     int       `json:"carbs"`
	Fats      int       `json:"fats"`
	CreatedAt time.Time `json:"created_at"`
}

// Macros is a calorie and macronutrient total.
type Macros struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fats     int `json:"fats"`
}

// ReportRow is one lift or cardio line of the flat workout report.
type ReportRow struct {
	Date     time.Time `json:"date"`
	DayType  string    `json:"day_type"`
	ItemName string    `json:"item_name"`
	Type     string    `json:"type"`
	Sets     *int      `json:"sets,omitempty"`
	Reps     string    `json:"reps,omitempty"`
	Weight   string    `json:"weight,omitempty"`
	Duration string    `json:"duration,omitempty"`
	Distance string    `json:"distance,omitempty"`
	Speed    string    `json:"speed,omitempty"`
}

// Dashboard is the daily overview: today's session, recent sessions and today's macros.
type Dashboard struct {
	Date   time.Time       `json:"date"`
	Today  *WorkoutDetail  `json:"today,omitempty"`
	Recent []WorkoutLogRow `json:"recent"`
	Macros Macros          `json:"macros"`
}
