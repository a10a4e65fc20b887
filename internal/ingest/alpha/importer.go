package alpha

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/claude/gymlog/internal/categorizer"
	"github.com/claude/gymlog/internal/models"
	"github.com/claude/gymlog/internal/storage"
	"github.com/claude/gymlog/internal/workout"
)

// Workouts is the part of workout.Service the importer needs.
type Workouts interface {
	Match(query string, threshold int) workout.Match
	Categorize(names []string) categorizer.Report
	Confirm(ctx context.Context, date time.Time, dayType, raw string, items []models.Item) (*storage.SaveResult, error)
}

// Result holds the outcome of an import.
type Result struct {
	Sessions  int             `json:"sessions"`
	Saved     int             `json:"saved"`
	Lifts     int             `json:"lifts"`
	Unmatched []string        `json:"unmatched"`
	Workouts  []SessionResult `json:"workouts"`
}

// SessionResult describes one imported session.
type SessionResult struct {
	Name      string     `json:"name"`
	Date      time.Time  `json:"date"`
	DayType   string     `json:"day_type"`
	Lifts     int        `json:"lifts"`
	Unmatched []string   `json:"unmatched,omitempty"`
	ID        *uuid.UUID `json:"id,omitempty"`
}

// Importer turns exported sessions into gymlog workouts.
type Importer struct {
	workouts Workouts
	log      *slog.Logger
	dryRun   bool
}

// NewImporter creates an Importer. With dryRun set nothing is saved.
func NewImporter(w Workouts, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{workouts: w, log: log, dryRun: dryRun}
}

// Import parses r and logs each session as one workout. Exercise names go
// through the resolver; unresolved exercises are reported and left out.
// Sessions with no resolved lifts are not saved. A malformed export returns
// a nil Result; a failed save returns the partial Result with the error.
func (im *Importer) Import(ctx context.Context, r io.Reader) (*Result, error) {
	sessions, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}

	res := &Result{Unmatched: []string{}, Workouts: []SessionResult{}}
	seen := map[string]bool{}
	for _, s := range sessions {
		res.Sessions++
		sr := SessionResult{Name: s.Name, Date: s.Date}

		var items []models.Item
		var names []string
		for _, ex := range s.Exercises {
			it, ok := toItem(ex)
			if !ok {
				continue
			}
			m := im.workouts.Match(ex.Name, -1)
			if !m.Matched {
				sr.Unmatched = append(sr.Unmatched, ex.Name)
				if !seen[ex.Name] {
					seen[ex.Name] = true
					res.Unmatched = append(res.Unmatched, ex.Name)
				}
				continue
			}
			it.Name = m.Name
			items = append(items, it)
			names = append(names, m.Name)
		}
		sr.Lifts = len(items)
		sr.DayType = im.workouts.Categorize(names).DayType
		res.Lifts += len(items)

		if len(items) > 0 && !im.dryRun {
			saved, err := im.workouts.Confirm(ctx, s.Date, sr.DayType, s.Name, items)
			if err != nil {
				return res, fmt.Errorf("saving session %q (%s): %w", s.Name, s.Date.Format(time.DateOnly), err)
			}
			sr.ID = &saved.ID
			res.Saved++
		}
		im.log.Debug("alpha session", "name", s.Name, "date", s.Date.Format(time.DateOnly),
			"day_type", sr.DayType, "lifts", sr.Lifts, "unmatched", len(sr.Unmatched))
		res.Workouts = append(res.Workouts, sr)
	}

	im.log.Info("alpha import complete",
		"sessions", res.Sessions, "saved", res.Saved, "lifts", res.Lifts,
		"unmatched", len(res.Unmatched), "dry_run", im.dryRun)
	return res, nil
}

// toItem summarizes the working sets of ex. Warmups are dropped. Reps is a
// single number when every set matches, otherwise "8/10/10". Weight is the
// heaviest working set. It reports false when there are no working sets.
func toItem(ex Exercise) (models.Item, bool) {
	var reps []string
	var top Set
	n := 0
	for _, s := range ex.Sets {
		if s.Warmup {
			continue
		}
		if n == 0 || s.WeightKg > top.WeightKg {
			top = s
		}
		reps = append(reps, strconv.Itoa(s.Reps))
		n++
	}
	if n == 0 {
		return models.Item{}, false
	}

	r := reps[0]
	for _, x := range reps[1:] {
		if x != reps[0] {
			r = strings.Join(reps, "/")
			break
		}
	}
	return models.Item{
		Type:   models.ItemLift,
		Sets:   n,
		Reps:   r,
		Weight: formatWeight(top),
	}, true
}

func formatWeight(s Set) string {
	kg := strconv.FormatFloat(s.WeightKg, 'f', -1, 64) + "kg"
	switch {
	case s.Bodyweight && s.WeightKg == 0:
		return "BW"
	case s.Bodyweight:
		return "BW+" + kg
	}
	return kg
}
