package storage

import (
	"context"
	"fmt"
	"time"
)

// DayTypePeriodSummary counts sessions of one day type within a period.
type DayTypePeriodSummary struct {
	DayType string `json:"day_type"`
	Count   int    `json:"count"`
}

// GroupVolume is the number of sets that hit a muscle group as primary mover.
type GroupVolume struct {
	Group    string `json:"group"`
	Category string `json:"category"`
	Sets     int    `json:"sets"`
}

// LiftVolumeSummary holds aggregated lifting stats for a period.
type LiftVolumeSummary struct {
	Lifts              int           `json:"lifts"`
	Sets               int           `json:"sets"`
	Sessions           int           `json:"sessions"`
	AvgLiftsPerSession float64       `json:"avg_lifts_per_session"`
	Groups             []GroupVolume `json:"groups"`
}

// TrainingSummaryPeriod holds session and lifting data for one time period.
type TrainingSummaryPeriod struct {
	Period   string                 `json:"period"`
	Sessions []DayTypePeriodSummary `json:"sessions"`
	Volume   *LiftVolumeSummary     `json:"volume,omitempty"`
}

// GetTrainingSummary returns session counts per day type and lifting volume
// per period. A lift with no recorded set count counts as one set.
func (db *DB) GetTrainingSummary(ctx context.Context, start, end time.Time, bucket string) ([]TrainingSummaryPeriod, error) {
	interval := truncInterval(bucket)

	// Query 1: sessions grouped by period + day type
	sessionRows, err := db.Pool.Query(ctx,
		`SELECT date_trunc($1, workout_date)::date AS period,
		        day_type,
		        COUNT(*)::int
		 FROM workout_logs
		 WHERE workout_date >= $2 AND workout_date < $3
		 GROUP BY period, day_type
		 ORDER BY period DESC, COUNT(*) DESC, day_type ASC`,
		interval, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying session summary: %w", err)
	}
	defer sessionRows.Close()

	periodMap := make(map[string]*TrainingSummaryPeriod)
	var periodOrder []string
	period := func(t time.Time) *TrainingSummaryPeriod {
		key := t.Format(time.DateOnly)
		if _, ok := periodMap[key]; !ok {
			periodMap[key] = &TrainingSummaryPeriod{Period: key, Sessions: []DayTypePeriodSummary{}}
			periodOrder = append(periodOrder, key)
		}
		return periodMap[key]
	}

	for sessionRows.Next() {
		var periodTime time.Time
		var s DayTypePeriodSummary
		if err := sessionRows.Scan(&periodTime, &s.DayType, &s.Count); err != nil {
			return nil, fmt.Errorf("scanning session summary: %w", err)
		}
		p := period(periodTime)
		p.Sessions = append(p.Sessions, s)
	}
	if err := sessionRows.Err(); err != nil {
		return nil, err
	}

	// Query 2: lift volume grouped by period
	volumeRows, err := db.Pool.Query(ctx,
		`SELECT date_trunc($1, l.workout_date)::date AS period,
		        COUNT(*)::int AS lifts,
		        COALESCE(SUM(COALESCE(we.sets, 1)), 0)::int AS sets,
		        COUNT(DISTINCT l.id)::int AS sessions
		 FROM workout_exercises we
		 JOIN workout_logs l ON l.id = we.workout_log_id
		 WHERE l.workout_date >= $2 AND l.workout_date < $3
		 GROUP BY period
		 ORDER BY period DESC`,
		interval, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying lift volume: %w", err)
	}
	defer volumeRows.Close()

	for volumeRows.Next() {
		var periodTime time.Time
		v := LiftVolumeSummary{Groups: []GroupVolume{}}
		if err := volumeRows.Scan(&periodTime, &v.Lifts, &v.Sets, &v.Sessions); err != nil {
			return nil, fmt.Errorf("scanning lift volume: %w", err)
		}
		if v.Sessions > 0 {
			v.AvgLiftsPerSession = float64(v.Lifts) / float64(v.Sessions)
		}
		period(periodTime).Volume = &v
	}
	if err := volumeRows.Err(); err != nil {
		return nil, err
	}

	// Query 3: primary-mover sets per muscle group
	groupRows, err := db.Pool.Query(ctx,
		`SELECT date_trunc($1, l.workout_date)::date AS period,
		        mg.name, mg.category,
		        COALESCE(SUM(COALESCE(we.sets, 1)), 0)::int
		 FROM muscle_activations ma
		 JOIN workout_exercises we ON we.id = ma.workout_exercise_id
		 JOIN workout_logs l ON l.id = we.workout_log_id
		 JOIN muscles m ON m.id = ma.muscle_id
		 JOIN muscle_groups mg ON mg.id = m.group_id
		 WHERE ma.activation_type = 'primary'
		   AND l.workout_date >= $2 AND l.workout_date < $3
		 GROUP BY period, mg.name, mg.category
		 ORDER BY period DESC, 4 DESC, mg.name ASC`,
		interval, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying group volume: %w", err)
	}
	defer groupRows.Close()

	for groupRows.Next() {
		var periodTime time.Time
		var g GroupVolume
		if err := groupRows.Scan(&periodTime, &g.Group, &g.Category, &g.Sets); err != nil {
			return nil, fmt.Errorf("scanning group volume: %w", err)
		}
		p := period(periodTime)
		if p.Volume == nil {
			p.Volume = &LiftVolumeSummary{Groups: []GroupVolume{}}
		}
		p.Volume.Groups = append(p.Volume.Groups, g)
	}
	if err := groupRows.Err(); err != nil {
		return nil, err
	}

	// Assemble result in order
	result := make([]TrainingSummaryPeriod, 0, len(periodOrder))
	for _, key := range periodOrder {
		result = append(result, *periodMap[key])
	}
	return result, nil
}

// truncInterval converts bucket strings like "1 month" to the interval name
// that date_trunc expects (e.g. "month", "week").
func truncInterval(bucket string) string {
	switch bucket {
	case "1 week", "week":
		return "week"
	case "1 month", "month":
		return "month"
	default:
		return "month"
	}
}
