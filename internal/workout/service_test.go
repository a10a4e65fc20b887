package workout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claude/gymlog/internal/catalog"
	"github.com/claude/gymlog/internal/catalog/catalogtest"
	"github.com/claude/gymlog/internal/categorizer"
	"github.com/claude/gymlog/internal/extract"
	"github.com/claude/gymlog/internal/models"
	"github.com/claude/gymlog/internal/storage"
)

type fakeLLM struct {
	reply string
	err   error
}

func (f *fakeLLM) Complete(context.Context, string, string) (string, error) {
	return f.reply, f.err
}

type fakeStore struct {
	mu      sync.Mutex
	snap    *catalog.Snapshot
	loadErr error
	saved   []models.WorkoutLogRow
	items   [][]models.Item
}

func (f *fakeStore) LoadCatalog(context.Context) (*catalog.Snapshot, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.snap, nil
}

func (f *fakeStore) SaveWorkout(_ context.Context, log models.WorkoutLogRow, items []models.Item) (*storage.SaveResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, log)
	f.items = append(f.items, items)
	res := &storage.SaveResult{ID: uuid.New()}
	for _, it := range items {
		if it.IsCardio() {
			res.Cardio++
		} else {
			res.Lifts++
		}
	}
	return res, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(t *testing.T, llm extract.Completer, store Store) *Service {
	t.Helper()
	log := quietLogger()
	return New(catalogtest.Snapshot(t), store, extract.New(llm, log), log, 60)
}

func TestPreviewOffline(t *testing.T) {
	s := newService(t, nil, nil)

	p, err := s.Preview(context.Background(), "bench, OHP, lateral raises, rope pushdown, totally unrelated gibberish xyz123")
	require.NoError(t, err)

	assert.Equal(t, "PUSH", p.DayType)
	require.Len(t, p.Lifts, 4)
	assert.Equal(t, "Barbell Bench Press", p.Lifts[0].Name)
	assert.Equal(t, "bench", p.Lifts[0].Input)
	assert.Equal(t, 100, p.Lifts[0].Score)
	assert.Equal(t, "Chest", p.Lifts[0].Group)
	assert.Equal(t, catalog.CategoryPush, p.Lifts[0].Category)
	assert.Equal(t, "Lateral Raise", p.Lifts[2].Name)
	assert.Equal(t, []string{"totally unrelated gibberish xyz123"}, p.Unmatched)
	assert.Empty(t, p.Cardio)

	require.Len(t, p.Items, 4)
	for _, it := range p.Items {
		_, ok := s.Snapshot().Entry(it.Name)
		assert.True(t, ok, "item %q is not canonical", it.Name)
	}
}

func TestPreviewWithLLM(t *testing.T) {
	llm := &fakeLLM{reply: `[
		{"type": "lift", "name": "back squats", "sets": 5, "reps": "5", "weight": "120kg"},
		{"type": "lift", "name": "RDL", "sets": 3, "reps": "8"},
		{"type": "cardio", "name": "Stairmaster", "duration": "15 mins"}
	]`}
	s := newService(t, llm, nil)

	p, err := s.Preview(context.Background(), "squats 5x5 120, rdl 3x8, stairs 15 min")
	require.NoError(t, err)

	assert.Equal(t, "LEGS", p.DayType)
	require.Len(t, p.Lifts, 2)
	assert.Equal(t, "Barbell Back Squat", p.Lifts[0].Name)
	assert.Equal(t, 5, p.Lifts[0].Sets)
	assert.Equal(t, "120kg", p.Lifts[0].Weight)
	assert.Equal(t, "Romanian Deadlift", p.Lifts[1].Name)

	require.Len(t, p.Cardio, 1)
	assert.Equal(t, "Stairmaster", p.Cardio[0].Name)
	assert.Len(t, p.Items, 3)
	assert.Empty(t, p.Unmatched)
}

func TestPreviewEmpty(t *testing.T) {
	s := newService(t, nil, nil)

	p, err := s.Preview(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, categorizer.DayUnknown, p.DayType)
	assert.Empty(t, p.Items)
}

func TestQuickLog(t *testing.T) {
	store := &fakeStore{}
	s := newService(t, nil, store)
	date := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)

	res, err := s.QuickLog(context.Background(), date, "pulldown, cable row, curls")
	require.NoError(t, err)
	require.NotNil(t, res.Saved)
	assert.Equal(t, 3, res.Saved.Lifts)

	require.Len(t, store.saved, 1)
	assert.Equal(t, "PULL", store.saved[0].DayType)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), store.saved[0].Date)
	assert.Equal(t, "pulldown, cable row, curls", store.saved[0].Raw)
}

func TestQuickLogCardioOnlyIsMixed(t *testing.T) {
	llm := &fakeLLM{reply: `[{"type": "cardio", "name": "Treadmill", "duration": "30 mins"}]`}
	store := &fakeStore{}
	s := newService(t, llm, store)

	_, err := s.QuickLog(context.Background(), time.Now(), "30 min treadmill")
	require.NoError(t, err)
	require.Len(t, store.saved, 1)
	assert.Equal(t, categorizer.DayMixed, store.saved[0].DayType)
}

func TestPreviewThenConfirmCardioOnlyIsMixed(t *testing.T) {
	llm := &fakeLLM{reply: `[{"type": "cardio", "name": "Treadmill", "duration": "30 mins"}]`}
	store := &fakeStore{}
	s := newService(t, llm, store)

	p, err := s.Preview(context.Background(), "30 min treadmill")
	require.NoError(t, err)
	assert.Equal(t, categorizer.DayUnknown, p.DayType)
	assert.Equal(t, categorizer.DayMixed, p.SessionDayType())

	_, err = s.Confirm(context.Background(), time.Now(), p.SessionDayType(), p.Raw, p.Items)
	require.NoError(t, err)
	require.Len(t, store.saved, 1)
	assert.Equal(t, categorizer.DayMixed, store.saved[0].DayType)
}

func TestSessionDayTypeWithLifts(t *testing.T) {
	s := newService(t, nil, &fakeStore{})

	p, err := s.Preview(context.Background(), "lat pulldown, seated cable row")
	require.NoError(t, err)
	assert.Equal(t, "PULL", p.DayType)
	assert.Equal(t, "PULL", p.SessionDayType())
}

func TestQuickLogNothingMatched(t *testing.T) {
	store := &fakeStore{}
	s := newService(t, nil, store)

	res, err := s.QuickLog(context.Background(), time.Now(), "totally unrelated gibberish xyz123")
	assert.ErrorIs(t, err, ErrNothingMatched)
	require.NotNil(t, res)
	assert.Equal(t, []string{"totally unrelated gibberish xyz123"}, res.Preview.Unmatched)
	assert.Empty(t, store.saved)
}

func TestConfirmRecomputesDayType(t *testing.T) {
	store := &fakeStore{}
	s := newService(t, nil, store)

	items := []models.Item{
		{Type: models.ItemLift, Name: "Barbell Back Squat"},
		{Type: models.ItemLift, Name: "Romanian Deadlift"},
		{Type: models.ItemLift, Name: "Lat Pulldown"},
	}
	_, err := s.Confirm(context.Background(), time.Time{}, "", "legs", items)
	require.NoError(t, err)
	require.Len(t, store.saved, 1)
	assert.Equal(t, "LEGS", store.saved[0].DayType)
	assert.False(t, store.saved[0].Date.IsZero())

	_, err = s.Confirm(context.Background(), time.Now(), "PUSH", "as given", items)
	require.NoError(t, err)
	assert.Equal(t, "PUSH", store.saved[1].DayType)
}

func TestWithoutStore(t *testing.T) {
	s := newService(t, nil, nil)

	_, err := s.Confirm(context.Background(), time.Now(), "", "", []models.Item{{Name: "Barbell Curl"}})
	assert.ErrorIs(t, err, ErrNoStore)
	_, err = s.QuickLog(context.Background(), time.Now(), "curls")
	assert.ErrorIs(t, err, ErrNoStore)
	_, err = s.Reload(context.Background())
	assert.ErrorIs(t, err, ErrNoStore)
}

func TestReload(t *testing.T) {
	smaller, err := catalog.NewSnapshot(catalogtest.Groups, catalogtest.Muscles, catalogtest.Entries[:3])
	require.NoError(t, err)

	store := &fakeStore{snap: smaller}
	s := newService(t, nil, store)
	_, ok := s.Resolve("pulldown")
	require.True(t, ok)

	n, err := s.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Same(t, smaller, s.Snapshot())
	_, ok = s.Resolve("pulldown")
	assert.False(t, ok, "reloaded catalog no longer has Lat Pulldown")

	store.loadErr = errors.New("db down")
	_, err = s.Reload(context.Background())
	assert.Error(t, err)
	assert.Same(t, smaller, s.Snapshot(), "failed reload keeps current snapshot")
}

func TestAnalyze(t *testing.T) {
	s := newService(t, &fakeLLM{reply: "- Add more rear delt work."}, nil)

	p, err := s.Preview(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, extract.AnalysisUnavailable, s.Analyze(context.Background(), p))

	p = &Preview{Report: s.Categorize(catalogtest.PushDay)}
	assert.Equal(t, "- Add more rear delt work.", s.Analyze(context.Background(), p))
}

func TestConcurrentResolveDuringReload(t *testing.T) {
	store := &fakeStore{snap: catalogtest.Snapshot(t)}
	s := newService(t, nil, store)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				r, ok := s.Resolve("ohp")
				if !ok || r.Name != "Overhead Press" {
					t.Errorf("Resolve(ohp) = %+v, %v", r, ok)
					return
				}
			}
		}()
	}
	for i := 0; i < 5; i++ {
		_, err := s.Reload(context.Background())
		require.NoError(t, err)
	}
	wg.Wait()
}

func TestMatch(t *testing.T) {
	s := newService(t, nil, nil)

	m := s.Match("OHP", -1)
	assert.Equal(t, Match{Query: "OHP", Matched: true, Name: "Overhead Press", Score: 100, Threshold: 60}, m)

	m = s.Match("totally unrelated gibberish xyz123", -1)
	assert.False(t, m.Matched)
	assert.Empty(t, m.Name)

	m = s.Match("lateral raises", 100)
	assert.False(t, m.Matched, "fuzzy hit below an explicit threshold of 100")
	assert.Equal(t, 100, m.Threshold)
}
