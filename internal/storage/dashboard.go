package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/gymlog/internal/models"
)

// GetDashboard assembles the daily overview for date.
func (db *DB) GetDashboard(ctx context.Context, date time.Time) (*models.Dashboard, error) {
	today, err := db.WorkoutOnDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("loading today's workout: %w", err)
	}
	recent, err := db.RecentWorkouts(ctx, 5)
	if err != nil {
		return nil, fmt.Errorf("loading recent workouts: %w", err)
	}
	macros, err := db.DailyMacros(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("loading today's macros: %w", err)
	}

	return &models.Dashboard{
		Date:   date,
		Today:  today,
		Recent: recent,
		Macros: macros,
	}, nil
}
