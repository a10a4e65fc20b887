// Package snapshotdb stores a catalog snapshot in a standalone SQLite file so
// exercise names can be resolved without the Postgres database.
package snapshotdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/claude/gymlog/internal/catalog"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS muscle_groups (
	id       INTEGER PRIMARY KEY,
	name     TEXT NOT NULL,
	category TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS muscles (
	id       INTEGER PRIMARY KEY,
	name     TEXT NOT NULL,
	group_id INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS exercises (
	id                INTEGER PRIMARY KEY,
	position          INTEGER NOT NULL,
	name              TEXT NOT NULL,
	primary_muscle_id INTEGER NOT NULL,
	kind              TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS exercise_aliases (
	exercise_id INTEGER NOT NULL,
	position    INTEGER NOT NULL,
	alias       TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS exercise_secondary_muscles (
	exercise_id INTEGER NOT NULL,
	position    INTEGER NOT NULL,
	muscle_id   INTEGER NOT NULL
);`

// DB is an offline catalog file.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite catalog file at path.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog dir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog file: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog tables: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the catalog file.
func (d *DB) Close() error {
	return d.db.Close()
}

// Save replaces the stored catalog with snap.
func (d *DB) Save(snap *catalog.Snapshot) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"exercise_secondary_muscles", "exercise_aliases", "exercises", "muscles", "muscle_groups"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for _, g := range snap.Groups() {
		if _, err := tx.Exec(`INSERT INTO muscle_groups (id, name, category) VALUES (?, ?, ?)`,
			g.ID, g.Name, string(g.Category)); err != nil {
			return fmt.Errorf("inserting group %q: %w", g.Name, err)
		}
	}
	for _, m := range snap.Muscles() {
		if _, err := tx.Exec(`INSERT INTO muscles (id, name, group_id) VALUES (?, ?, ?)`,
			m.ID, m.Name, m.GroupID); err != nil {
			return fmt.Errorf("inserting muscle %q: %w", m.Name, err)
		}
	}
	for i, e := range snap.Entries() {
		if _, err := tx.Exec(`INSERT INTO exercises (id, position, name, primary_muscle_id, kind) VALUES (?, ?, ?, ?, ?)`,
			e.ID, i, e.Name, e.PrimaryMuscleID, string(e.Kind)); err != nil {
			return fmt.Errorf("inserting exercise %q: %w", e.Name, err)
		}
		for j, alias := range e.Aliases {
			if _, err := tx.Exec(`INSERT INTO exercise_aliases (exercise_id, position, alias) VALUES (?, ?, ?)`,
				e.ID, j, alias); err != nil {
				return fmt.Errorf("inserting alias %q: %w", alias, err)
			}
		}
		for j, id := range e.SecondaryMuscleIDs {
			if _, err := tx.Exec(`INSERT INTO exercise_secondary_muscles (exercise_id, position, muscle_id) VALUES (?, ?, ?)`,
				e.ID, j, id); err != nil {
				return fmt.Errorf("inserting secondary muscle of %q: %w", e.Name, err)
			}
		}
	}

	return tx.Commit()
}

// Load reads the stored catalog and validates it into a snapshot.
func (d *DB) Load() (*catalog.Snapshot, error) {
	groups, err := d.groups()
	if err != nil {
		return nil, err
	}
	muscles, err := d.muscles()
	if err != nil {
		return nil, err
	}
	entries, err := d.entries()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog file holds no exercises")
	}

	snap, err := catalog.NewSnapshot(groups, muscles, entries)
	if err != nil {
		return nil, fmt.Errorf("validating stored catalog: %w", err)
	}
	return snap, nil
}

func (d *DB) groups() ([]catalog.MuscleGroup, error) {
	rows, err := d.db.Query(`SELECT id, name, category FROM muscle_groups ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying groups: %w", err)
	}
	defer rows.Close()

	var out []catalog.MuscleGroup
	for rows.Next() {
		var g catalog.MuscleGroup
		var category string
		if err := rows.Scan(&g.ID, &g.Name, &category); err != nil {
			return nil, fmt.Errorf("scanning group: %w", err)
		}
		g.Category = catalog.Category(category)
		out = append(out, g)
	}
	return out, rows.Err()
}

func (d *DB) muscles() ([]catalog.Muscle, error) {
	rows, err := d.db.Query(`SELECT id, name, group_id FROM muscles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying muscles: %w", err)
	}
	defer rows.Close()

	var out []catalog.Muscle
	for rows.Next() {
		var m catalog.Muscle
		if err := rows.Scan(&m.ID, &m.Name, &m.GroupID); err != nil {
			return nil, fmt.Errorf("scanning muscle: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (d *DB) entries() ([]catalog.Entry, error) {
	rows, err := d.db.Query(`SELECT id, name, primary_muscle_id, kind FROM exercises ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	var out []catalog.Entry
	index := map[int]int{}
	for rows.Next() {
		var e catalog.Entry
		var kind string
		if err := rows.Scan(&e.ID, &e.Name, &e.PrimaryMuscleID, &kind); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		e.Kind = catalog.Kind(kind)
		index[e.ID] = len(out)
		out = append(out, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	aliases, err := d.db.Query(`SELECT exercise_id, alias FROM exercise_aliases ORDER BY exercise_id, position`)
	if err != nil {
		return nil, fmt.Errorf("querying aliases: %w", err)
	}
	defer aliases.Close()
	for aliases.Next() {
		var id int
		var alias string
		if err := aliases.Scan(&id, &alias); err != nil {
			return nil, fmt.Errorf("scanning alias: %w", err)
		}
		if i, ok := index[id]; ok {
			out[i].Aliases = append(out[i].Aliases, alias)
		}
	}
	if err := aliases.Err(); err != nil {
		return nil, err
	}

	secondary, err := d.db.Query(`SELECT exercise_id, muscle_id FROM exercise_secondary_muscles ORDER BY exercise_id, position`)
	if err != nil {
		return nil, fmt.Errorf("querying secondary muscles: %w", err)
	}
	defer secondary.Close()
	for secondary.Next() {
		var id, muscleID int
		if err := secondary.Scan(&id, &muscleID); err != nil {
			return nil, fmt.Errorf("scanning secondary muscle: %w", err)
		}
		if i, ok := index[id]; ok {
			out[i].SecondaryMuscleIDs = append(out[i].SecondaryMuscleIDs, muscleID)
		}
	}
	return out, secondary.Err()
}

// Write saves snap to a catalog file at path.
func Write(path string, snap *catalog.Snapshot) error {
	d, err := Open(path)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Save(snap)
}

// Read loads a snapshot from the catalog file at path.
func Read(path string) (*catalog.Snapshot, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("catalog file: %w", err)
	}
	d, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer d.Close()
	return d.Load()
}
