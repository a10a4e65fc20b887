// Package workout turns free-text workout logs into categorized, catalog-backed
// sessions and stores them.
package workout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/claude/gymlog/internal/catalog"
	"github.com/claude/gymlog/internal/categorizer"
	"github.com/claude/gymlog/internal/extract"
	"github.com/claude/gymlog/internal/models"
	"github.com/claude/gymlog/internal/resolver"
	"github.com/claude/gymlog/internal/storage"
)

// ErrNothingMatched is returned by QuickLog when no item of the log could be
// matched to the catalog or recognized as cardio.
var ErrNothingMatched = errors.New("no exercises matched the catalog")

// ErrNoStore is returned by operations that need the database when the
// service was built without one.
var ErrNoStore = errors.New("no workout store configured")

// Store is the persistence the service needs.
type Store interface {
	LoadCatalog(ctx context.Context) (*catalog.Snapshot, error)
	SaveWorkout(ctx context.Context, log models.WorkoutLogRow, items []models.Item) (*storage.SaveResult, error)
}

// Entry is a matched lift shown in a preview.
type Entry struct {
	Input    string           `json:"input"`
	Name     string           `json:"name"`
	Score    int              `json:"score"`
	Muscle   string           `json:"muscle"`
	Group    string           `json:"group"`
	Category catalog.Category `json:"category"`
	Sets     int              `json:"sets,omitempty"`
	Reps     string           `json:"reps,omitempty"`
	Weight   string           `json:"weight,omitempty"`
}

// Preview is an extracted and categorized session that has not been saved.
// Items holds the lifts under their canonical names plus the cardio items,
// ready to be passed to Confirm.
type Preview struct {
	Raw       string             `json:"raw"`
	DayType   string             `json:"day_type"`
	Lifts     []Entry            `json:"lifts"`
	Cardio    []models.Item      `json:"cardio"`
	Unmatched []string           `json:"unmatched"`
	Items     []models.Item      `json:"items"`
	Report    categorizer.Report `json:"report"`
}

// LogResult is the outcome of QuickLog.
type LogResult struct {
	Preview *Preview            `json:"preview"`
	Saved   *storage.SaveResult `json:"saved"`
}

// engine bundles a snapshot with the resolver and categorizer built on it so
// a reload swaps all three at once.
type engine struct {
	snap *catalog.Snapshot
	res  *resolver.Resolver
	cat  *categorizer.Categorizer
}

func newEngine(snap *catalog.Snapshot) *engine {
	return &engine{snap: snap, res: resolver.New(snap), cat: categorizer.New(snap)}
}

// Service is safe for concurrent use.
type Service struct {
	store     Store
	ext       *extract.Extractor
	log       *slog.Logger
	threshold int
	cur       atomic.Pointer[engine]
}

// New creates a Service over an already loaded snapshot. store may be nil
// for read-only use; Confirm, QuickLog and Reload then return ErrNoStore.
func New(snap *catalog.Snapshot, store Store, ext *extract.Extractor, log *slog.Logger, threshold int) *Service {
	s := &Service{store: store, ext: ext, log: log, threshold: threshold}
	s.cur.Store(newEngine(snap))
	return s
}

// Snapshot returns the catalog snapshot currently in use.
func (s *Service) Snapshot() *catalog.Snapshot {
	return s.cur.Load().snap
}

// Threshold returns the configured match threshold.
func (s *Service) Threshold() int { return s.threshold }

// Resolve matches one exercise name with the configured threshold.
func (s *Service) Resolve(query string) (resolver.Resolution, bool) {
	return s.cur.Load().res.ResolveWithThreshold(query, s.threshold)
}

// ResolveWithThreshold matches one exercise name with an explicit threshold.
func (s *Service) ResolveWithThreshold(query string, threshold int) (resolver.Resolution, bool) {
	return s.cur.Load().res.ResolveWithThreshold(query, threshold)
}

// Match is the outcome of resolving one name, matched or not.
type Match struct {
	Query     string `json:"query"`
	Matched   bool   `json:"matched"`
	Name      string `json:"name,omitempty"`
	Score     int    `json:"score,omitempty"`
	Threshold int    `json:"threshold"`
}

// Match resolves query and reports the outcome. A negative threshold means
// the configured one.
func (s *Service) Match(query string, threshold int) Match {
	if threshold < 0 {
		threshold = s.threshold
	}
	m := Match{Query: query, Threshold: threshold}
	if r, ok := s.ResolveWithThreshold(query, threshold); ok {
		m.Matched = true
		m.Name = r.Name
		m.Score = r.Score
	}
	return m
}

// Categorize classifies a list of canonical exercise names.
func (s *Service) Categorize(names []string) categorizer.Report {
	return s.cur.Load().cat.Categorize(names)
}

// Reload rebuilds the snapshot from the store and swaps it in. On error the
// current snapshot stays in place.
func (s *Service) Reload(ctx context.Context) (int, error) {
	if s.store == nil {
		return 0, ErrNoStore
	}
	snap, err := s.store.LoadCatalog(ctx)
	if err != nil {
		return 0, fmt.Errorf("reloading catalog: %w", err)
	}
	s.cur.Store(newEngine(snap))
	s.log.Info("catalog reloaded", "exercises", snap.Len())
	return snap.Len(), nil
}

// Preview extracts items from raw, resolves lifts and categorizes the session.
// Cardio items pass through unresolved. Lifts below the threshold are listed
// in Unmatched.
func (s *Service) Preview(ctx context.Context, raw string) (*Preview, error) {
	items, err := s.ext.ParseWorkout(ctx, raw)
	if err != nil {
		return nil, err
	}

	eng := s.cur.Load()
	p := &Preview{
		Raw:       strings.TrimSpace(raw),
		Lifts:     []Entry{},
		Cardio:    []models.Item{},
		Unmatched: []string{},
		Items:     []models.Item{},
	}

	var names []string
	for _, it := range items {
		if it.IsCardio() {
			it.Type = models.ItemCardio
			p.Cardio = append(p.Cardio, it)
			p.Items = append(p.Items, it)
			continue
		}

		r, ok := eng.res.ResolveWithThreshold(it.Name, s.threshold)
		if !ok {
			s.log.Debug("exercise unmatched", "input", it.Name)
			p.Unmatched = append(p.Unmatched, it.Name)
			continue
		}

		e := Entry{
			Input:  it.Name,
			Name:   r.Name,
			Score:  r.Score,
			Sets:   it.Sets,
			Reps:   it.Reps,
			Weight: it.Weight,
		}
		if pl, ok := eng.snap.Place(r.Name); ok {
			e.Muscle = pl.Muscle
			e.Group = pl.Group
			e.Category = pl.Category
		}
		p.Lifts = append(p.Lifts, e)

		it.Type = models.ItemLift
		it.Name = r.Name
		p.Items = append(p.Items, it)
		names = append(names, r.Name)
	}

	p.Report = eng.cat.Categorize(names)
	p.DayType = p.Report.DayType
	return p, nil
}

// SessionDayType is the day type a session saved from p is stored with: the
// categorized day type, or MIXED when p has no lifts.
func (p *Preview) SessionDayType() string {
	if len(p.Lifts) == 0 {
		return categorizer.DayMixed
	}
	return p.DayType
}

// Confirm stores a previewed session. An empty dayType is recomputed from the
// lifts in items; a session without lifts is MIXED.
func (s *Service) Confirm(ctx context.Context, date time.Time, dayType, raw string, items []models.Item) (*storage.SaveResult, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	if len(items) == 0 {
		return nil, ErrNothingMatched
	}
	if date.IsZero() {
		date = time.Now()
	}
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	if dayType == "" {
		dayType = s.dayType(items)
	}

	res, err := s.store.SaveWorkout(ctx, models.WorkoutLogRow{
		Date:    date,
		DayType: dayType,
		Raw:     raw,
	}, items)
	if err != nil {
		return nil, fmt.Errorf("saving workout: %w", err)
	}
	s.log.Info("workout saved",
		"id", res.ID, "date", date.Format(time.DateOnly), "day_type", dayType,
		"lifts", res.Lifts, "cardio", res.Cardio, "skipped", len(res.Skipped))
	return res, nil
}

// QuickLog previews raw and saves it in one step. Nothing is saved when
// nothing matched.
func (s *Service) QuickLog(ctx context.Context, date time.Time, raw string) (*LogResult, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	p, err := s.Preview(ctx, raw)
	if err != nil {
		return nil, err
	}
	if len(p.Items) == 0 {
		return &LogResult{Preview: p}, ErrNothingMatched
	}

	saved, err := s.Confirm(ctx, date, p.SessionDayType(), p.Raw, p.Items)
	if err != nil {
		return nil, err
	}
	return &LogResult{Preview: p, Saved: saved}, nil
}

// Analyze asks the LLM for coaching feedback on a preview.
func (s *Service) Analyze(ctx context.Context, p *Preview) string {
	return s.ext.Analyze(ctx, p.Report)
}

func (s *Service) dayType(items []models.Item) string {
	var names []string
	for _, it := range items {
		if !it.IsCardio() {
			names = append(names, it.Name)
		}
	}
	if len(names) == 0 {
		return categorizer.DayMixed
	}
	return s.Categorize(names).DayType
}
