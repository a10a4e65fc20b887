package storage

import (
	"context"
	"fmt"
	"time"
)

// DataStats holds aggregate statistics about all stored data.
type DataStats struct {
	TotalWorkouts int64          `json:"total_workouts"`
	TotalLifts    int64          `json:"total_lifts"`
	TotalCardio   int64          `json:"total_cardio"`
	TotalDietLogs int64          `json:"total_diet_logs"`
	CatalogSize   int64          `json:"catalog_size"`
	EarliestData  *time.Time     `json:"earliest_data"`
	LatestData    *time.Time     `json:"latest_data"`
	WorkoutsByDay []DayTypeStat  `json:"workouts_by_day_type"`
	TopExercises  []ExerciseStat `json:"top_exercises"`
}

// DayTypeStat counts sessions of one day type.
type DayTypeStat struct {
	DayType string `json:"day_type"`
	Count   int64  `json:"count"`
}

// ExerciseStat counts how often an exercise was logged.
type ExerciseStat struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// GetDataStats returns aggregate statistics for the stored data.
func (db *DB) GetDataStats(ctx context.Context) (*DataStats, error) {
	stats := &DataStats{
		WorkoutsByDay: []DayTypeStat{},
		TopExercises:  []ExerciseStat{},
	}

	err := db.Pool.QueryRow(ctx,
		`SELECT (SELECT COUNT(*) FROM workout_logs),
		        (SELECT COUNT(*) FROM workout_exercises),
		        (SELECT COUNT(*) FROM cardio_logs),
		        (SELECT COUNT(*) FROM diet_logs),
		        (SELECT COUNT(*) FROM exercises)`,
	).Scan(&stats.TotalWorkouts, &stats.TotalLifts, &stats.TotalCardio, &stats.TotalDietLogs, &stats.CatalogSize)
	if err != nil {
		return nil, fmt.Errorf("counting rows: %w", err)
	}

	// Date range across workouts and diet logs
	err = db.Pool.QueryRow(ctx,
		`SELECT MIN(d)::timestamptz, MAX(d)::timestamptz FROM (
			SELECT workout_date AS d FROM workout_logs
			UNION ALL
			SELECT log_date FROM diet_logs
		) sub`,
	).Scan(&stats.EarliestData, &stats.LatestData)
	if err != nil {
		return nil, fmt.Errorf("querying date range: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT day_type, COUNT(*)
		 FROM workout_logs
		 GROUP BY day_type
		 ORDER BY COUNT(*) DESC, day_type ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying workouts by day type: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s DayTypeStat
		if err := rows.Scan(&s.DayType, &s.Count); err != nil {
			return nil, fmt.Errorf("scanning day type stat: %w", err)
		}
		stats.WorkoutsByDay = append(stats.WorkoutsByDay, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	exRows, err := db.Pool.Query(ctx,
		`SELECT e.name, COUNT(*)
		 FROM workout_exercises we
		 JOIN exercises e ON e.id = we.exercise_id
		 GROUP BY e.name
		 ORDER BY COUNT(*) DESC, e.name ASC
		 LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("querying top exercises: %w", err)
	}
	defer exRows.Close()

	for exRows.Next() {
		var s ExerciseStat
		if err := exRows.Scan(&s.Name, &s.Count); err != nil {
			return nil, fmt.Errorf("scanning exercise stat: %w", err)
		}
		stats.TopExercises = append(stats.TopExercises, s)
	}
	if err := exRows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
