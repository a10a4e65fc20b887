package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BackfillActivations adds primary and secondary muscle activations to logged
// lifts that have none. Returns how many lifts were filled. Safe to rerun.
func (db *DB) BackfillActivations(ctx context.Context) (int, error) {
	var filled int
	err := db.inTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			`SELECT we.id, e.primary_muscle_id, e.secondary_muscle_ids
			 FROM workout_exercises we
			 JOIN exercises e ON e.id = we.exercise_id
			 WHERE NOT EXISTS (
				SELECT 1 FROM muscle_activations ma WHERE ma.workout_exercise_id = we.id
			 )
			 ORDER BY we.id`)
		if err != nil {
			return fmt.Errorf("querying lifts without activations: %w", err)
		}

		type pending struct {
			id        int64
			primary   int
			secondary []int
		}
		var todo []pending
		for rows.Next() {
			var p pending
			if err := rows.Scan(&p.id, &p.primary, &p.secondary); err != nil {
				rows.Close()
				return fmt.Errorf("scanning lift: %w", err)
			}
			todo = append(todo, p)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		for _, p := range todo {
			if err := insertActivations(ctx, tx, p.id, p.primary, p.secondary); err != nil {
				return err
			}
			filled++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return filled, nil
}

// MergeResult reports what MergeExercise changed.
type MergeResult struct {
	FromID      int   `json:"from_id"`
	IntoID      int   `json:"into_id"`
	LiftsMoved  int64 `json:"lifts_moved"`
	Activations int64 `json:"activations_rebuilt"`
}

// MergeExercise folds the catalog exercise named from into the one named
// into: logged lifts are re-pointed, their muscle activations rebuilt from
// the target exercise, and the source exercise is deleted.
func (db *DB) MergeExercise(ctx context.Context, from, into string) (*MergeResult, error) {
	if from == into {
		return nil, fmt.Errorf("cannot merge %q into itself", from)
	}
	res := &MergeResult{}

	err := db.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		if res.FromID, err = exerciseID(ctx, tx, from); err != nil {
			return err
		}
		if res.IntoID, err = exerciseID(ctx, tx, into); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx,
			`DELETE FROM muscle_activations
			 WHERE workout_exercise_id IN (SELECT id FROM workout_exercises WHERE exercise_id = $1)`,
			res.FromID)
		if err != nil {
			return fmt.Errorf("clearing activations: %w", err)
		}
		res.Activations = tag.RowsAffected()

		tag, err = tx.Exec(ctx,
			`UPDATE workout_exercises SET exercise_id = $2 WHERE exercise_id = $1`,
			res.FromID, res.IntoID)
		if err != nil {
			return fmt.Errorf("moving lifts: %w", err)
		}
		res.LiftsMoved = tag.RowsAffected()

		if _, err := tx.Exec(ctx, `DELETE FROM exercises WHERE id = $1`, res.FromID); err != nil {
			return fmt.Errorf("deleting exercise %q: %w", from, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Moved lifts now lack activations; rebuild them from the target exercise.
	if _, err := db.BackfillActivations(ctx); err != nil {
		return nil, fmt.Errorf("rebuilding activations: %w", err)
	}
	return res, nil
}

// RedateResult reports what RedateWorkout changed.
type RedateResult struct {
	OldDate time.Time   `json:"old_date"`
	NewDate time.Time   `json:"new_date"`
	Deleted []uuid.UUID `json:"deleted"`
}

// RedateWorkout keeps one session, deletes every other session logged on
// the same day, and moves the kept session to newDate.
func (db *DB) RedateWorkout(ctx context.Context, keepID uuid.UUID, newDate time.Time) (*RedateResult, error) {
	res := &RedateResult{NewDate: newDate, Deleted: []uuid.UUID{}}

	err := db.inTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `SELECT workout_date FROM workout_logs WHERE id = $1`, keepID).Scan(&res.OldDate)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("workout %s: %w", keepID, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("querying workout %s: %w", keepID, err)
		}

		rows, err := tx.Query(ctx,
			`DELETE FROM workout_logs WHERE workout_date = $1 AND id <> $2 RETURNING id`,
			res.OldDate, keepID)
		if err != nil {
			return fmt.Errorf("deleting duplicate workouts: %w", err)
		}
		for rows.Next() {
			var id uuid.UUID
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return fmt.Errorf("scanning deleted workout: %w", err)
			}
			res.Deleted = append(res.Deleted, id)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `UPDATE workout_logs SET workout_date = $2 WHERE id = $1`, keepID, newDate); err != nil {
			return fmt.Errorf("updating workout date: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
