package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claude/gymlog/internal/categorizer"
	"github.com/claude/gymlog/internal/models"
	"github.com/claude/gymlog/internal/storage"
	"github.com/claude/gymlog/internal/workout"
)

// newTestServer creates an httptest server that routes requests to handler functions
// keyed by path. Verifies the HTTP client sends correct paths and query params.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestResolveExercise verifies the name and threshold query params.
func TestResolveExercise(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/exercises/resolve": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("name"); got != "lat raises" {
				t.Errorf("name=%q, want 'lat raises'", got)
			}
			if got := r.URL.Query().Get("threshold"); got != "75" {
				t.Errorf("threshold=%q, want 75", got)
			}
			writeTestJSON(t, w, workout.Match{Query: "lat raises", Matched: true, Name: "Lateral Raise", Score: 91, Threshold: 75})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL + "/")
	m, err := client.ResolveExercise(context.Background(), "lat raises", 75)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "Lateral Raise" || m.Score != 91 {
		t.Errorf("match = %+v", m)
	}
}

// TestResolveExerciseDefaultThreshold verifies a negative threshold is not sent.
func TestResolveExerciseDefaultThreshold(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/exercises/resolve": func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Has("threshold") {
				t.Errorf("threshold sent: %q", r.URL.Query().Get("threshold"))
			}
			writeTestJSON(t, w, workout.Match{Query: "xyz"})
		},
	})
	defer ts.Close()

	m, err := NewHTTPClient(ts.URL).ResolveExercise(context.Background(), "xyz", -1)
	if err != nil {
		t.Fatal(err)
	}
	if m.Matched {
		t.Error("expected no match")
	}
}

// TestCategorizeSession verifies the POST body and report decoding.
func TestCategorizeSession(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/categorize": func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("method=%s, want POST", r.Method)
			}
			var body struct {
				Names []string `json:"names"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if len(body.Names) != 2 {
				t.Errorf("names=%q", body.Names)
			}
			writeTestJSON(t, w, categorizer.Report{DayType: "LEGS", CategoryCounts: map[string]int{"LEGS": 2}})
		},
	})
	defer ts.Close()

	report, err := NewHTTPClient(ts.URL).CategorizeSession(context.Background(), []string{"Barbell Back Squat", "Romanian Deadlift"})
	if err != nil {
		t.Fatal(err)
	}
	if report.DayType != "LEGS" || report.CategoryCounts["LEGS"] != 2 {
		t.Errorf("report = %+v", report)
	}
}

// TestLimitParams verifies limit is only sent when positive.
func TestLimitParams(t *testing.T) {
	var gotLimit string
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/report": func(w http.ResponseWriter, r *http.Request) {
			gotLimit = r.URL.Query().Get("limit")
			writeTestJSON(t, w, []models.ReportRow{{ItemName: "Barbell Curl", Type: "lift"}})
		},
		"/api/v1/workouts": func(w http.ResponseWriter, r *http.Request) {
			gotLimit = r.URL.Query().Get("limit")
			writeTestJSON(t, w, []models.WorkoutLogRow{{DayType: "PULL"}})
		},
		"/api/v1/diet": func(w http.ResponseWriter, r *http.Request) {
			gotLimit = r.URL.Query().Get("limit")
			writeTestJSON(t, w, []models.DietLogRow{{MealType: "Lunch"}})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	ctx := context.Background()

	rows, err := client.QueryReport(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if gotLimit != "10" || len(rows) != 1 || rows[0].ItemName != "Barbell Curl" {
		t.Errorf("report limit=%q rows=%+v", gotLimit, rows)
	}

	workouts, err := client.RecentWorkouts(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if gotLimit != "" || len(workouts) != 1 {
		t.Errorf("workouts limit=%q rows=%+v", gotLimit, workouts)
	}

	diet, err := client.RecentDietLogs(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if gotLimit != "3" || diet[0].MealType != "Lunch" {
		t.Errorf("diet limit=%q rows=%+v", gotLimit, diet)
	}
}

// TestDailyMacros verifies the date param format.
func TestDailyMacros(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/diet/macros": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("date"); got != "2026-05-01" {
				t.Errorf("date=%q, want 2026-05-01", got)
			}
			writeTestJSON(t, w, models.Macros{Calories: 1800, Protein: 150})
		},
	})
	defer ts.Close()

	m, err := NewHTTPClient(ts.URL).DailyMacros(context.Background(), time.Date(2026, 5, 1, 13, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if m.Calories != 1800 || m.Protein != 150 {
		t.Errorf("macros = %+v", m)
	}
}

// TestGetTrainingSummary verifies bucket and range params.
func TestGetTrainingSummary(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/training/summary": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("bucket"); got != "1 week" {
				t.Errorf("bucket=%q, want '1 week'", got)
			}
			if got := r.URL.Query().Get("start"); got != "2026-01-01T00:00:00Z" {
				t.Errorf("start=%q", got)
			}
			writeTestJSON(t, w, []storage.TrainingSummaryPeriod{
				{Period: "2026-01-05", Sessions: []storage.DayTypePeriodSummary{{DayType: "PUSH", Count: 2}}},
			})
		},
	})
	defer ts.Close()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	periods, err := NewHTTPClient(ts.URL).GetTrainingSummary(context.Background(), start, start.AddDate(0, 1, 0), "1 week")
	if err != nil {
		t.Fatal(err)
	}
	if len(periods) != 1 || periods[0].Sessions[0].Count != 2 {
		t.Errorf("periods = %+v", periods)
	}
}

// TestHTTPError verifies non-200 responses surface as errors.
func TestHTTPError(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/exercises": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
	})
	defer ts.Close()

	if _, err := NewHTTPClient(ts.URL).ListExercises(context.Background()); err == nil {
		t.Error("expected error for 500 response")
	}
}
