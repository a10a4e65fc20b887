package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/claude/gymlog/internal/extract"
	"github.com/claude/gymlog/internal/models"
	"github.com/claude/gymlog/internal/storage"
	"github.com/claude/gymlog/internal/workout"
)

// Store is the database surface the handlers use. *storage.DB satisfies it.
type Store interface {
	GetWorkout(ctx context.Context, id uuid.UUID) (*models.WorkoutDetail, error)
	RecentWorkouts(ctx context.Context, limit int) ([]models.WorkoutLogRow, error)
	QueryReport(ctx context.Context, limit int) ([]models.ReportRow, error)
	GetTrainingSummary(ctx context.Context, start, end time.Time, bucket string) ([]storage.TrainingSummaryPeriod, error)
	InsertDietLogs(ctx context.Context, date time.Time, items []models.DietItem) (int64, error)
	RecentDietLogs(ctx context.Context, limit int) ([]models.DietLogRow, error)
	DailyMacros(ctx context.Context, date time.Time) (models.Macros, error)
	GetDashboard(ctx context.Context, date time.Time) (*models.Dashboard, error)
	GetDataStats(ctx context.Context) (*storage.DataStats, error)
}

var _ Store = (*storage.DB)(nil)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db       Store
	workouts *workout.Service
	ext      *extract.Extractor
	log      *slog.Logger
	apiKey   string
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(db Store, workouts *workout.Service, ext *extract.Extractor, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:       db,
		workouts: workouts,
		ext:      ext,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(chimw.RequestID)
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "exercises": s.workouts.Snapshot().Len()})
	})

	s.router.Route("/api/v1", func(r chi.Router) {
		// Read endpoints (no auth; tsnet handles access)
		r.Get("/exercises", s.handleListExercises)
		r.Get("/exercises/resolve", s.handleResolve)
		r.Post("/categorize", s.handleCategorize)
		r.Post("/workouts/preview", s.handlePreviewWorkout)
		r.Get("/workouts", s.handleRecentWorkouts)
		r.Get("/workouts/{id}", s.handleGetWorkout)
		r.Get("/report", s.handleReport)
		r.Get("/training/summary", s.handleTrainingSummary)
		r.Post("/diet/preview", s.handlePreviewDiet)
		r.Get("/diet", s.handleRecentDiet)
		r.Get("/diet/macros", s.handleDailyMacros)
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/stats", s.handleStats)

		// Writes (API key required)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/workouts", s.handleConfirmWorkout)
			r.Post("/workouts/quick", s.handleQuickLog)
			r.Post("/diet", s.handleLogDiet)
			r.Post("/catalog/reload", s.handleReloadCatalog)
			r.Post("/import/alpha", s.handleAlphaImport)
		})
	})
}

// MountMCP serves an MCP handler under /mcp.
func (s *Server) MountMCP(h http.Handler) {
	s.router.Handle("/mcp", h)
	s.router.Handle("/mcp/*", h)
}
