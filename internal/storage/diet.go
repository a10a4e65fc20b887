package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/claude/gymlog/internal/models"
)

// DefaultDietHistoryLimit caps RecentDietLogs when no limit is given.
const DefaultDietHistoryLimit = 50

// InsertDietLogs batch-inserts meal entries for date. Returns count inserted.
func (db *DB) InsertDietLogs(ctx context.Context, date time.Time, items []models.DietItem) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}

	query := `INSERT INTO diet_logs (log_date, meal_type, food_raw, calories, protein, carbs, fats) VALUES `
	args := make([]any, 0, len(items)*7)
	valueStrings := make([]string, 0, len(items))

	for i, it := range items {
		base := i * 7
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7,
		))
		mealType := it.MealType
		if mealType == "" {
			mealType = models.MealSnack
		}
		args = append(args, date, mealType, it.FoodRaw, it.Calories, it.Protein, it.Carbs, it.Fats)
	}

	query += strings.Join(valueStrings, ",")

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting diet logs: %w", err)
	}
	return tag.RowsAffected(), nil
}

// RecentDietLogs returns meal entries, newest first.
func (db *DB) RecentDietLogs(ctx context.Context, limit int) ([]models.DietLogRow, error) {
	if limit <= 0 {
		limit = DefaultDietHistoryLimit
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT id, log_date, meal_type, food_raw, calories, protein, carbs, fats, created_at
		 FROM diet_logs
		 ORDER BY log_date DESC, id DESC
		 LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("querying diet logs: %w", err)
	}
	defer rows.Close()

	result := []models.DietLogRow{}
	for rows.Next() {
		var r models.DietLogRow
		if err := rows.Scan(&r.ID, &r.Date, &r.MealType, &r.FoodRaw,
			&r.Calories, &r.Protein, &r.Carbs, &r.Fats, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning diet log: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// DailyMacros sums the macros logged for date. A day with nothing logged is all zeros.
func (db *DB) DailyMacros(ctx context.Context, date time.Time) (models.Macros, error) {
	var m models.Macros
	err := db.Pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(calories), 0)::int, COALESCE(SUM(protein), 0)::int,
		        COALESCE(SUM(carbs), 0)::int, COALESCE(SUM(fats), 0)::int
		 FROM diet_logs
		 WHERE log_date = $1`,
		date).Scan(&m.Calories, &m.Protein, &m.Carbs, &m.Fats)
	if err != nil {
		return models.Macros{}, fmt.Errorf("summing macros for %s: %w", date.Format(time.DateOnly), err)
	}
	return m, nil
}
