// Package seed loads catalog exercises from a seed file into the database.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/claude/gymlog/internal/catalog"
	"github.com/claude/gymlog/internal/storage"
)

// MuscleDefaults maps a muscle group name used in seed files to the specific
// muscle stored for it. An empty value means the group is not tracked.
var MuscleDefaults = map[string]string{
	"Quads":      "Rectus Femoris",
	"Hamstrings": "Biceps Femoris",
	"Glutes":     "Gluteus Maximus",
	"Calves":     "Gastrocnemius",
	"Biceps":     "Long Head Bicep",
	"Triceps":    "Long Head Tricep",
	"Shoulders":  "Front Delts",
	"Chest":      "Mid Pecs",
	"Back":       "Outer Lats",
	"Traps":      "Traps",
	"Lats":       "Outer Lats",
	"Forearms":   "",
}

// File is the seed file layout. JSON files parse too.
type File struct {
	Exercises []Exercise `yaml:"exercises" json:"exercises"`
}

// Exercise is one seed entry. Muscles are referenced by name.
type Exercise struct {
	Name             string   `yaml:"name" json:"name"`
	Aliases          []string `yaml:"aliases" json:"aliases"`
	PrimaryMuscle    string   `yaml:"primary_muscle" json:"primary_muscle"`
	SecondaryMuscles []string `yaml:"secondary_muscles" json:"secondary_muscles"`
	Type             string   `yaml:"type" json:"type"`
}

// Store is the subset of storage the seeder writes through.
type Store interface {
	LoadCatalog(ctx context.Context) (*catalog.Snapshot, error)
	FindMuscleID(ctx context.Context, name string) (int, error)
	InsertExercise(ctx context.Context, e catalog.Entry) (bool, error)
}

// Stats tracks seeding progress.
type Stats struct {
	Added    int      `json:"added"`
	Existing int      `json:"existing"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings,omitempty"`
}

// Seeder inserts seed exercises that are not in the catalog yet.
type Seeder struct {
	store   Store
	log     *slog.Logger
	dryRun  bool
	stats   Stats
	muscles map[string]int
	// taken maps every lower-cased name and alias in the catalog, plus those
	// accepted this run, to the name of the exercise owning it.
	taken map[string]string
}

// New creates a new Seeder. With dryRun set, muscles are resolved but
// nothing is inserted; Added then counts exercises that would be inserted.
func New(store Store, log *slog.Logger, dryRun bool) *Seeder {
	return &Seeder{store: store, log: log, dryRun: dryRun, muscles: map[string]int{}, taken: map[string]string{}}
}

// ParseFile reads a seed file from disk.
func ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a YAML or JSON seed document.
func Parse(r io.Reader) (*File, error) {
	var file File
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	return &file, nil
}

// Seed inserts every exercise of file. An exercise whose primary muscle
// cannot be resolved is skipped; unresolvable secondary muscles are dropped.
// An exercise whose name or aliases already belong to another exercise is
// skipped too, so the catalog keeps loading.
func (s *Seeder) Seed(ctx context.Context, file *File) (*Stats, error) {
	snap, err := s.store.LoadCatalog(ctx)
	if err != nil {
		return &s.stats, fmt.Errorf("loading catalog: %w", err)
	}
	for _, e := range snap.Entries() {
		s.claim(e.Name, e.Aliases)
	}

	for _, ex := range file.Exercises {
		name := strings.TrimSpace(ex.Name)
		if name == "" {
			s.warn("skipping exercise without a name")
			s.stats.Skipped++
			continue
		}

		primary, ok, err := s.resolveMuscle(ctx, ex.PrimaryMuscle)
		if err != nil {
			return &s.stats, err
		}
		if !ok {
			s.warn(fmt.Sprintf("skipping %q: primary muscle %q invalid", name, ex.PrimaryMuscle))
			s.stats.Skipped++
			continue
		}

		var secondary []int
		for _, m := range ex.SecondaryMuscles {
			id, ok, err := s.resolveMuscle(ctx, m)
			if err != nil {
				return &s.stats, err
			}
			if ok && id != primary && !slices.Contains(secondary, id) {
				secondary = append(secondary, id)
			}
		}

		if owner, ok := s.taken[strings.ToLower(name)]; ok && strings.EqualFold(owner, name) {
			// Already in the catalog or earlier in this file; the insert is a no-op.
			if s.dryRun {
				s.stats.Existing++
				continue
			}
		} else if owner, text, ok := s.collision(name, ex.Aliases); ok {
			s.warn(fmt.Sprintf("skipping %q: %q already belongs to %q", name, text, owner))
			s.stats.Skipped++
			continue
		} else {
			s.claim(name, ex.Aliases)
		}

		entry := catalog.Entry{
			Name:               name,
			Aliases:            ex.Aliases,
			PrimaryMuscleID:    primary,
			SecondaryMuscleIDs: secondary,
			Kind:               kindOf(ex.Type),
		}

		if s.dryRun {
			s.log.Info("dry run: would insert exercise", "name", name, "primary_muscle_id", primary)
			s.stats.Added++
			continue
		}

		inserted, err := s.store.InsertExercise(ctx, entry)
		if err != nil {
			return &s.stats, err
		}
		if inserted {
			s.stats.Added++
		} else {
			s.stats.Existing++
		}
	}

	s.log.Info("seed complete",
		"added", s.stats.Added, "existing", s.stats.Existing, "skipped", s.stats.Skipped, "dry_run", s.dryRun)
	return &s.stats, nil
}

// collision reports the first of name and aliases that the catalog already
// maps to a different exercise.
func (s *Seeder) collision(name string, aliases []string) (owner, text string, ok bool) {
	for _, t := range append([]string{name}, aliases...) {
		k := strings.ToLower(strings.TrimSpace(t))
		if k == "" {
			continue
		}
		if o, taken := s.taken[k]; taken && !strings.EqualFold(o, name) {
			return o, t, true
		}
	}
	return "", "", false
}

func (s *Seeder) claim(name string, aliases []string) {
	name = strings.TrimSpace(name)
	s.taken[strings.ToLower(name)] = name
	for _, a := range aliases {
		if k := strings.ToLower(strings.TrimSpace(a)); k != "" {
			if _, ok := s.taken[k]; !ok {
				s.taken[k] = name
			}
		}
	}
}

// resolveMuscle finds a muscle by exact name, then through MuscleDefaults.
func (s *Seeder) resolveMuscle(ctx context.Context, name string) (int, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, false, nil
	}
	if id, ok := s.muscles[name]; ok {
		return id, id != 0, nil
	}

	id, err := s.findMuscle(ctx, name)
	if err != nil {
		return 0, false, err
	}
	if id == 0 {
		if mapped := MuscleDefaults[name]; mapped != "" {
			if id, err = s.findMuscle(ctx, mapped); err != nil {
				return 0, false, err
			}
		}
	}
	if id == 0 {
		s.warn(fmt.Sprintf("muscle %q not found", name))
	}
	s.muscles[name] = id
	return id, id != 0, nil
}

func (s *Seeder) findMuscle(ctx context.Context, name string) (int, error) {
	id, err := s.store.FindMuscleID(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Seeder) warn(msg string) {
	s.log.Warn(msg)
	s.stats.Warnings = append(s.stats.Warnings, msg)
}

func kindOf(t string) catalog.Kind {
	if strings.EqualFold(strings.TrimSpace(t), string(catalog.KindCardio)) {
		return catalog.KindCardio
	}
	return catalog.KindLift
}

// Export converts a catalog snapshot back into seed form, muscles by name.
func Export(snap *catalog.Snapshot) *File {
	file := &File{}
	for _, e := range snap.Entries() {
		ex := Exercise{
			Name:             e.Name,
			Aliases:          e.Aliases,
			SecondaryMuscles: []string{},
			Type:             string(e.Kind),
		}
		if m, ok := snap.Muscle(e.PrimaryMuscleID); ok {
			ex.PrimaryMuscle = m.Name
		}
		ex.SecondaryMuscles = append(ex.SecondaryMuscles, snap.SecondaryMuscles(e.Name)...)
		file.Exercises = append(file.Exercises, ex)
	}
	return file
}

// WriteFile writes file as YAML to path.
func WriteFile(path string, file *File) error {
	out, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encoding seed file: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("writing seed file: %w", err)
	}
	return nil
}
