package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/claude/gymlog/internal/models"
)

// SaveResult reports what SaveWorkout stored.
type SaveResult struct {
	ID      uuid.UUID `json:"id"`
	Lifts   int       `json:"lifts"`
	Cardio  int       `json:"cardio"`
	Skipped []string  `json:"skipped,omitempty"`
}

// SaveWorkout stores a session and its items in one transaction. Lifts are
// looked up by canonical name; each gets a primary and secondary muscle
// activations. Lifts whose name is not in the catalog are skipped and
// reported. A zero log.ID is replaced with a new UUID.
func (db *DB) SaveWorkout(ctx context.Context, log models.WorkoutLogRow, items []models.Item) (*SaveResult, error) {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	result := &SaveResult{ID: log.ID}

	err := db.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO workout_logs (id, workout_date, day_type, exercises_raw)
			 VALUES ($1, $2, $3, $4)`,
			log.ID, log.Date, log.DayType, log.Raw)
		if err != nil {
			return fmt.Errorf("inserting workout log: %w", err)
		}

		for _, it := range items {
			if it.IsCardio() {
				if err := insertCardio(ctx, tx, log.ID, it); err != nil {
					return err
				}
				result.Cardio++
				continue
			}

			ok, err := insertLift(ctx, tx, log.ID, it)
			if err != nil {
				return err
			}
			if !ok {
				result.Skipped = append(result.Skipped, it.Name)
				continue
			}
			result.Lifts++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func insertCardio(ctx context.Context, tx pgx.Tx, logID uuid.UUID, it models.Item) error {
	name := it.Name
	if name == "" {
		name = "Cardio"
	}
	_, err := tx.Exec(ctx,
		`INSERT INTO cardio_logs (workout_log_id, activity_name, duration, distance, speed, calories)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		logID, name, nullString(it.Duration), nullString(it.Distance), nullString(it.Speed), nullInt(it.Calories))
	if err != nil {
		return fmt.Errorf("inserting cardio %q: %w", name, err)
	}
	return nil
}

// insertLift returns false when the exercise is not in the catalog.
func insertLift(ctx context.Context, tx pgx.Tx, logID uuid.UUID, it models.Item) (bool, error) {
	if it.Name == "" {
		return false, nil
	}

	var exID, primaryID int
	var secondaryIDs []int
	err := tx.QueryRow(ctx,
		`SELECT id, primary_muscle_id, secondary_muscle_ids FROM exercises WHERE name = $1`,
		it.Name).Scan(&exID, &primaryID, &secondaryIDs)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("looking up exercise %q: %w", it.Name, err)
	}

	var weID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO workout_exercises (workout_log_id, exercise_id, sets, reps, weight)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		logID, exID, nullInt(it.Sets), nullString(it.Reps), nullString(it.Weight)).Scan(&weID)
	if err != nil {
		return false, fmt.Errorf("inserting workout exercise %q: %w", it.Name, err)
	}

	if err := insertActivations(ctx, tx, weID, primaryID, secondaryIDs); err != nil {
		return false, err
	}
	return true, nil
}

func insertActivations(ctx context.Context, tx pgx.Tx, workoutExerciseID int64, primaryID int, secondaryIDs []int) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO muscle_activations (workout_exercise_id, muscle_id, activation_type)
		 SELECT $1::bigint, $2::int, 'primary'
		 UNION ALL
		 SELECT $1::bigint, unnest($3::int[]), 'secondary'`,
		workoutExerciseID, primaryID, secondaryIDs)
	if err != nil {
		return fmt.Errorf("inserting muscle activations: %w", err)
	}
	return nil
}

// GetWorkout retrieves a single session with its lifts and cardio.
func (db *DB) GetWorkout(ctx context.Context, id uuid.UUID) (*models.WorkoutDetail, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, workout_date, day_type, exercises_raw, created_at
		 FROM workout_logs
		 WHERE id = $1`,
		id)

	var w models.WorkoutLogRow
	err := row.Scan(&w.ID, &w.Date, &w.DayType, &w.Raw, &w.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("workout %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying workout: %w", err)
	}
	return db.workoutDetail(ctx, w)
}

func (db *DB) workoutDetail(ctx context.Context, w models.WorkoutLogRow) (*models.WorkoutDetail, error) {
	detail := &models.WorkoutDetail{
		WorkoutLogRow: w,
		Exercises:     []models.WorkoutExerciseRow{},
		Cardio:        []models.CardioRow{},
	}

	exRows, err := db.Pool.Query(ctx,
		`SELECT we.id, we.workout_log_id, we.exercise_id, e.name, we.sets,
		        COALESCE(we.reps, ''), COALESCE(we.weight, '')
		 FROM workout_exercises we
		 JOIN exercises e ON e.id = we.exercise_id
		 WHERE we.workout_log_id = $1
		 ORDER BY we.id ASC`,
		w.ID)
	if err != nil {
		return nil, fmt.Errorf("querying workout exercises: %w", err)
	}
	defer exRows.Close()

	for exRows.Next() {
		var r models.WorkoutExerciseRow
		if err := exRows.Scan(&r.ID, &r.WorkoutLogID, &r.ExerciseID, &r.Name, &r.Sets, &r.Reps, &r.Weight); err != nil {
			return nil, fmt.Errorf("scanning workout exercise: %w", err)
		}
		detail.Exercises = append(detail.Exercises, r)
	}
	if err := exRows.Err(); err != nil {
		return nil, err
	}

	cardioRows, err := db.Pool.Query(ctx,
		`SELECT id, workout_log_id, activity_name,
		        COALESCE(duration, ''), COALESCE(distance, ''), COALESCE(speed, ''), calories
		 FROM cardio_logs
		 WHERE workout_log_id = $1
		 ORDER BY id ASC`,
		w.ID)
	if err != nil {
		return nil, fmt.Errorf("querying cardio logs: %w", err)
	}
	defer cardioRows.Close()

	for cardioRows.Next() {
		var c models.CardioRow
		if err := cardioRows.Scan(&c.ID, &c.WorkoutLogID, &c.ActivityName, &c.Duration, &c.Distance, &c.Speed, &c.Calories); err != nil {
			return nil, fmt.Errorf("scanning cardio log: %w", err)
		}
		detail.Cardio = append(detail.Cardio, c)
	}

	return detail, cardioRows.Err()
}

// RecentWorkouts returns the latest sessions, newest first.
func (db *DB) RecentWorkouts(ctx context.Context, limit int) ([]models.WorkoutLogRow, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT id, workout_date, day_type, exercises_raw, created_at
		 FROM workout_logs
		 ORDER BY workout_date DESC, created_at DESC
		 LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent workouts: %w", err)
	}
	defer rows.Close()

	return scanWorkoutLogRows(rows)
}

// LastWorkout returns the most recent session, or nil if none was logged.
func (db *DB) LastWorkout(ctx context.Context) (*models.WorkoutLogRow, error) {
	rows, err := db.RecentWorkouts(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// WorkoutOnDate returns the latest session logged for date with its items,
// or nil if there is none.
func (db *DB) WorkoutOnDate(ctx context.Context, date time.Time) (*models.WorkoutDetail, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, workout_date, day_type, exercises_raw, created_at
		 FROM workout_logs
		 WHERE workout_date = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		date)

	var w models.WorkoutLogRow
	err := row.Scan(&w.ID, &w.Date, &w.DayType, &w.Raw, &w.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying workout on %s: %w", date.Format(time.DateOnly), err)
	}
	return db.workoutDetail(ctx, w)
}

func scanWorkoutLogRows(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]models.WorkoutLogRow, error) {
	result := []models.WorkoutLogRow{}
	for rows.Next() {
		var w models.WorkoutLogRow
		if err := rows.Scan(&w.ID, &w.Date, &w.DayType, &w.Raw, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning workout log: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullInt(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}
