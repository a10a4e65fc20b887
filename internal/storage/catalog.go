package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/claude/gymlog/internal/catalog"
)

// LoadCatalog reads muscle groups, muscles and exercises and builds a
// validated snapshot.
func (db *DB) LoadCatalog(ctx context.Context) (*catalog.Snapshot, error) {
	groups, err := db.ListMuscleGroups(ctx)
	if err != nil {
		return nil, err
	}
	muscles, err := db.ListMuscles(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := db.ListExercises(ctx)
	if err != nil {
		return nil, err
	}

	snap, err := catalog.NewSnapshot(groups, muscles, entries)
	if err != nil {
		return nil, fmt.Errorf("building catalog snapshot: %w", err)
	}
	return snap, nil
}

// ListMuscleGroups returns all muscle groups ordered by ID.
func (db *DB) ListMuscleGroups(ctx context.Context) ([]catalog.MuscleGroup, error) {
	rows, err := db.Pool.Query(ctx, `SELECT id, name, category FROM muscle_groups ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying muscle groups: %w", err)
	}
	defer rows.Close()

	var result []catalog.MuscleGroup
	for rows.Next() {
		var g catalog.MuscleGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.Category); err != nil {
			return nil, fmt.Errorf("scanning muscle group: %w", err)
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

// ListMuscles returns all muscles ordered by ID.
func (db *DB) ListMuscles(ctx context.Context) ([]catalog.Muscle, error) {
	rows, err := db.Pool.Query(ctx, `SELECT id, name, group_id FROM muscles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying muscles: %w", err)
	}
	defer rows.Close()

	var result []catalog.Muscle
	for rows.Next() {
		var m catalog.Muscle
		if err := rows.Scan(&m.ID, &m.Name, &m.GroupID); err != nil {
			return nil, fmt.Errorf("scanning muscle: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// ListExercises returns all catalog exercises ordered by ID.
func (db *DB) ListExercises(ctx context.Context) ([]catalog.Entry, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, aliases, primary_muscle_id, secondary_muscle_ids, exercise_type
		 FROM exercises
		 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []catalog.Entry
	for rows.Next() {
		var e catalog.Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.Aliases, &e.PrimaryMuscleID, &e.SecondaryMuscleIDs, &e.Kind); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// InsertExercise adds a catalog exercise unless one with the same name
// (case-insensitive) exists. Returns true if inserted.
func (db *DB) InsertExercise(ctx context.Context, e catalog.Entry) (bool, error) {
	aliases := e.Aliases
	if aliases == nil {
		aliases = []string{}
	}
	secondary := e.SecondaryMuscleIDs
	if secondary == nil {
		secondary = []int{}
	}
	kind := e.Kind
	if kind == "" {
		kind = catalog.KindLift
	}

	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO exercises (name, aliases, primary_muscle_id, secondary_muscle_ids, exercise_type)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT DO NOTHING`,
		e.Name, aliases, e.PrimaryMuscleID, secondary, string(kind))
	if err != nil {
		return false, fmt.Errorf("inserting exercise %q: %w", e.Name, err)
	}
	return tag.RowsAffected() > 0, nil
}

// FindMuscleID returns the ID of the muscle with the exact name.
func (db *DB) FindMuscleID(ctx context.Context, name string) (int, error) {
	var id int
	err := db.Pool.QueryRow(ctx, `SELECT id FROM muscles WHERE name = $1`, name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("muscle %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("querying muscle %q: %w", name, err)
	}
	return id, nil
}

// exerciseID returns the ID of the exercise with the exact canonical name.
func exerciseID(ctx context.Context, q pgx.Tx, name string) (int, error) {
	var id int
	err := q.QueryRow(ctx, `SELECT id FROM exercises WHERE name = $1`, name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("exercise %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("querying exercise %q: %w", name, err)
	}
	return id, nil
}
