package storage

import (
	"context"
	"fmt"

	"github.com/claude/gymlog/internal/models"
)

// DefaultReportLimit caps QueryReport when no limit is given.
const DefaultReportLimit = 100

// QueryReport returns the flat lift and cardio log, newest session first and
// items alphabetically within a day.
func (db *DB) QueryReport(ctx context.Context, limit int) ([]models.ReportRow, error) {
	if limit <= 0 {
		limit = DefaultReportLimit
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT l.workout_date, l.day_type, e.name AS item_name, 'lift' AS type,
		        we.sets, COALESCE(we.reps, ''), COALESCE(we.weight, ''),
		        '' AS duration, '' AS distance, '' AS speed
		 FROM workout_logs l
		 JOIN workout_exercises we ON l.id = we.workout_log_id
		 JOIN exercises e ON we.exercise_id = e.id

		 UNION ALL

		 SELECT l.workout_date, l.day_type, cl.activity_name AS item_name, 'cardio' AS type,
		        NULL, '', '',
		        COALESCE(cl.duration, ''), COALESCE(cl.distance, ''), COALESCE(cl.speed, '')
		 FROM workout_logs l
		 JOIN cardio_logs cl ON l.id = cl.workout_log_id

		 ORDER BY workout_date DESC, item_name ASC
		 LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("querying report: %w", err)
	}
	defer rows.Close()

	result := []models.ReportRow{}
	for rows.Next() {
		var r models.ReportRow
		if err := rows.Scan(&r.Date, &r.DayType, &r.ItemName, &r.Type,
			&r.Sets, &r.Reps, &r.Weight, &r.Duration, &r.Distance, &r.Speed); err != nil {
			return nil, fmt.Errorf("scanning report row: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
