package mcp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/gymlog/internal/catalog"
	"github.com/claude/gymlog/internal/catalog/catalogtest"
	"github.com/claude/gymlog/internal/categorizer"
	"github.com/claude/gymlog/internal/extract"
	"github.com/claude/gymlog/internal/models"
	"github.com/claude/gymlog/internal/storage"
	"github.com/claude/gymlog/internal/workout"
)

// fakeSource records the arguments tools pass to the data layer.
type fakeSource struct {
	threshold int
	names     []string
	limit     int
	date      time.Time
	bucket    string
	err       error
}

func (f *fakeSource) ResolveExercise(_ context.Context, query string, threshold int) (workout.Match, error) {
	f.threshold = threshold
	return workout.Match{Query: query, Matched: true, Name: "Lat Pulldown", Score: 100}, f.err
}

func (f *fakeSource) CategorizeSession(_ context.Context, names []string) (categorizer.Report, error) {
	f.names = names
	return categorizer.Report{DayType: "PULL"}, f.err
}

func (f *fakeSource) ListExercises(context.Context) ([]catalog.Entry, error) {
	return catalogtest.Entries, f.err
}

func (f *fakeSource) QueryReport(_ context.Context, limit int) ([]models.ReportRow, error) {
	f.limit = limit
	return []models.ReportRow{}, f.err
}

func (f *fakeSource) RecentWorkouts(_ context.Context, limit int) ([]models.WorkoutLogRow, error) {
	f.limit = limit
	return []models.WorkoutLogRow{}, f.err
}

func (f *fakeSource) RecentDietLogs(_ context.Context, limit int) ([]models.DietLogRow, error) {
	f.limit = limit
	return []models.DietLogRow{}, f.err
}

func (f *fakeSource) DailyMacros(_ context.Context, date time.Time) (models.Macros, error) {
	f.date = date
	return models.Macros{Calories: 2100}, f.err
}

func (f *fakeSource) GetTrainingSummary(_ context.Context, _, _ time.Time, bucket string) ([]storage.TrainingSummaryPeriod, error) {
	f.bucket = bucket
	return []storage.TrainingSummaryPeriod{}, f.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func callReq(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

// TestDefaultTimeRange verifies time range defaults (last 6 months) and parsing.
func TestDefaultTimeRange(t *testing.T) {
	// Both empty → defaults to last 6 months
	start, end, err := defaultTimeRange("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !start.Equal(end.AddDate(0, -6, 0)) {
		t.Errorf("default range = %v..%v, want 6 months", start, end)
	}

	// Explicit dates
	start, end, err = defaultTimeRange("2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Year() != 2024 || start.Month() != 1 || start.Day() != 1 {
		t.Errorf("start = %v, want 2024-01-01", start)
	}
	if end.Year() != 2024 || end.Month() != 1 || end.Day() != 31 {
		t.Errorf("end = %v, want 2024-01-31", end)
	}

	// RFC3339
	start, _, err = defaultTimeRange("2024-06-15T10:30:00Z", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Hour() != 10 || start.Minute() != 30 {
		t.Errorf("start = %v, want 10:30", start)
	}

	// Invalid
	_, _, err = defaultTimeRange("not-a-date", "")
	if err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestSplitNames(t *testing.T) {
	got := splitNames(" Lat Pulldown, ,Barbell Curl ,")
	if len(got) != 2 || got[0] != "Lat Pulldown" || got[1] != "Barbell Curl" {
		t.Errorf("splitNames = %q", got)
	}
	if got := splitNames(""); len(got) != 0 {
		t.Errorf("splitNames(empty) = %q", got)
	}
}

// TestResolveExerciseTool verifies argument handling of resolve_exercise.
func TestResolveExerciseTool(t *testing.T) {
	ds := &fakeSource{}
	h := &handlers{ds: ds, log: quietLogger()}

	res, err := h.resolveExercise(context.Background(), callReq(map[string]any{"name": "pulldown"}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatal("unexpected tool error")
	}
	if ds.threshold != -1 {
		t.Errorf("threshold = %d, want -1 (configured default)", ds.threshold)
	}

	if _, err := h.resolveExercise(context.Background(), callReq(map[string]any{"name": "pulldown", "threshold": float64(80)})); err != nil {
		t.Fatal(err)
	}
	if ds.threshold != 80 {
		t.Errorf("threshold = %d, want 80", ds.threshold)
	}

	res, _ = h.resolveExercise(context.Background(), callReq(map[string]any{}))
	if !res.IsError {
		t.Error("missing name should be a tool error")
	}
	res, _ = h.resolveExercise(context.Background(), callReq(map[string]any{"name": "x", "threshold": float64(101)}))
	if !res.IsError {
		t.Error("threshold above 100 should be a tool error")
	}
}

func TestCategorizeSessionTool(t *testing.T) {
	ds := &fakeSource{}
	h := &handlers{ds: ds, log: quietLogger()}

	res, err := h.categorizeSession(context.Background(), callReq(map[string]any{"names": "Lat Pulldown, Barbell Curl"}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatal("unexpected tool error")
	}
	if len(ds.names) != 2 || ds.names[1] != "Barbell Curl" {
		t.Errorf("names = %q", ds.names)
	}
}

func TestQueryToolsPassArguments(t *testing.T) {
	ds := &fakeSource{}
	h := &handlers{ds: ds, log: quietLogger()}
	ctx := context.Background()

	if _, err := h.getWorkoutReport(ctx, callReq(map[string]any{"limit": float64(20)})); err != nil {
		t.Fatal(err)
	}
	if ds.limit != 20 {
		t.Errorf("report limit = %d, want 20", ds.limit)
	}

	if _, err := h.getRecentWorkouts(ctx, callReq(map[string]any{})); err != nil {
		t.Fatal(err)
	}
	if ds.limit != 0 {
		t.Errorf("recent workouts limit = %d, want 0 (storage default)", ds.limit)
	}

	if _, err := h.getDailyMacros(ctx, callReq(map[string]any{"date": "2026-02-03"})); err != nil {
		t.Fatal(err)
	}
	if ds.date.Format(time.DateOnly) != "2026-02-03" {
		t.Errorf("macros date = %v", ds.date)
	}
	res, _ := h.getDailyMacros(ctx, callReq(map[string]any{"date": "yesterday"}))
	if !res.IsError {
		t.Error("invalid date should be a tool error")
	}

	if _, err := h.getTrainingSummary(ctx, callReq(map[string]any{})); err != nil {
		t.Fatal(err)
	}
	if ds.bucket != "1 month" {
		t.Errorf("bucket = %q, want '1 month'", ds.bucket)
	}
}

func TestToolErrorsAreResults(t *testing.T) {
	ds := &fakeSource{err: errors.New("db down")}
	h := &handlers{ds: ds, log: quietLogger()}

	res, err := h.getDietLog(context.Background(), callReq(map[string]any{}))
	if err != nil {
		t.Fatalf("handler returned protocol error: %v", err)
	}
	if !res.IsError {
		t.Error("data source failure should be a tool error")
	}
}

// TestLocalDataSource verifies Local answers catalog tools from the service.
func TestLocalDataSource(t *testing.T) {
	log := quietLogger()
	svc := workout.New(catalogtest.Snapshot(t), nil, extract.New(nil, log), log, 60)
	l := &Local{Workouts: svc}
	ctx := context.Background()

	m, err := l.ResolveExercise(ctx, "military press", -1)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Matched || m.Name != "Overhead Press" {
		t.Errorf("match = %+v", m)
	}

	report, err := l.CategorizeSession(ctx, catalogtest.PushDay)
	if err != nil {
		t.Fatal(err)
	}
	if report.DayType != "PUSH" {
		t.Errorf("day type = %q, want PUSH", report.DayType)
	}

	entries, err := l.ListExercises(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(catalogtest.Entries) {
		t.Errorf("got %d entries, want %d", len(entries), len(catalogtest.Entries))
	}
}

func TestNewRegistersServer(t *testing.T) {
	if s := New(&fakeSource{}, "test", quietLogger()); s == nil {
		t.Fatal("New returned nil")
	}
}
