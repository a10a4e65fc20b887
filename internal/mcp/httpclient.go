package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claude/gymlog/internal/catalog"
	"github.com/claude/gymlog/internal/categorizer"
	"github.com/claude/gymlog/internal/models"
	"github.com/claude/gymlog/internal/storage"
	"github.com/claude/gymlog/internal/workout"
)

// HTTPClient implements DataSource by calling the gymlog REST API.
// Used for stdio MCP mode where the binary runs locally but the data lives
// on the server (reached over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, params url.Values, body io.Reader) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, data)
	}

	return data, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, v any) error {
	data, err := c.do(ctx, http.MethodGet, path, params, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func limitParams(limit int) url.Values {
	v := url.Values{}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	return v
}

func (c *HTTPClient) ResolveExercise(ctx context.Context, query string, threshold int) (workout.Match, error) {
	params := url.Values{}
	params.Set("name", query)
	if threshold >= 0 {
		params.Set("threshold", strconv.Itoa(threshold))
	}

	var m workout.Match
	if err := c.get(ctx, "/api/v1/exercises/resolve", params, &m); err != nil {
		return workout.Match{}, err
	}
	return m, nil
}

func (c *HTTPClient) CategorizeSession(ctx context.Context, names []string) (categorizer.Report, error) {
	payload, err := json.Marshal(map[string][]string{"names": names})
	if err != nil {
		return categorizer.Report{}, err
	}

	data, err := c.do(ctx, http.MethodPost, "/api/v1/categorize", nil, bytes.NewReader(payload))
	if err != nil {
		return categorizer.Report{}, err
	}

	var report categorizer.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return categorizer.Report{}, fmt.Errorf("httpclient: decode categorize: %w", err)
	}
	return report, nil
}

func (c *HTTPClient) ListExercises(ctx context.Context) ([]catalog.Entry, error) {
	var entries []catalog.Entry
	if err := c.get(ctx, "/api/v1/exercises", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *HTTPClient) QueryReport(ctx context.Context, limit int) ([]models.ReportRow, error) {
	var rows []models.ReportRow
	if err := c.get(ctx, "/api/v1/report", limitParams(limit), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *HTTPClient) RecentWorkouts(ctx context.Context, limit int) ([]models.WorkoutLogRow, error) {
	var rows []models.WorkoutLogRow
	if err := c.get(ctx, "/api/v1/workouts", limitParams(limit), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *HTTPClient) RecentDietLogs(ctx context.Context, limit int) ([]models.DietLogRow, error) {
	var rows []models.DietLogRow
	if err := c.get(ctx, "/api/v1/diet", limitParams(limit), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *HTTPClient) DailyMacros(ctx context.Context, date time.Time) (models.Macros, error) {
	params := url.Values{}
	params.Set("date", date.Format(time.DateOnly))

	var m models.Macros
	if err := c.get(ctx, "/api/v1/diet/macros", params, &m); err != nil {
		return models.Macros{}, err
	}
	return m, nil
}

func (c *HTTPClient) GetTrainingSummary(ctx context.Context, start, end time.Time, bucket string) ([]storage.TrainingSummaryPeriod, error) {
	params := url.Values{}
	params.Set("start", start.Format(time.RFC3339))
	params.Set("end", end.Format(time.RFC3339))
	params.Set("bucket", bucket)

	var periods []storage.TrainingSummaryPeriod
	if err := c.get(ctx, "/api/v1/training/summary", params, &periods); err != nil {
		return nil, err
	}
	return periods, nil
}
