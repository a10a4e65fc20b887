package mcp

import (
	"context"
	"time"

	"github.com/claude/gymlog/internal/catalog"
	"github.com/claude/gymlog/internal/categorizer"
	"github.com/claude/gymlog/internal/models"
	"github.com/claude/gymlog/internal/storage"
	"github.com/claude/gymlog/internal/workout"
)

// DataSource abstracts the data layer for MCP tools. Both Local (database
// plus in-process catalog) and HTTPClient (remote via REST API) satisfy it.
type DataSource interface {
	ResolveExercise(ctx context.Context, query string, threshold int) (workout.Match, error)
	CategorizeSession(ctx context.Context, names []string) (categorizer.Report, error)
	ListExercises(ctx context.Context) ([]catalog.Entry, error)
	QueryReport(ctx context.Context, limit int) ([]models.ReportRow, error)
	RecentWorkouts(ctx context.Context, limit int) ([]models.WorkoutLogRow, error)
	RecentDietLogs(ctx context.Context, limit int) ([]models.DietLogRow, error)
	DailyMacros(ctx context.Context, date time.Time) (models.Macros, error)
	GetTrainingSummary(ctx context.Context, start, end time.Time, bucket string) ([]storage.TrainingSummaryPeriod, error)
}

// Local serves tools from the database and the loaded catalog snapshot.
type Local struct {
	*storage.DB
	Workouts *workout.Service
}

// Compile-time check: *Local satisfies DataSource.
var _ DataSource = (*Local)(nil)

// ResolveExercise matches query against the loaded catalog.
func (l *Local) ResolveExercise(_ context.Context, query string, threshold int) (workout.Match, error) {
	return l.Workouts.Match(query, threshold), nil
}

// CategorizeSession classifies canonical exercise names.
func (l *Local) CategorizeSession(_ context.Context, names []string) (categorizer.Report, error) {
	return l.Workouts.Categorize(names), nil
}

// ListExercises returns the entries of the loaded snapshot rather than
// re-reading the table, so tools see the same catalog the resolver uses.
func (l *Local) ListExercises(_ context.Context) ([]catalog.Entry, error) {
	return l.Workouts.Snapshot().Entries(), nil
}
