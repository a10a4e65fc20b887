package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// defaultTimeRange returns start/end defaulting to the last 6 months.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, -6, 0)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse(time.DateOnly, s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// splitNames splits a comma-separated list, dropping empty pieces.
func splitNames(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// --- Tool definitions ---

var toolResolveExercise = mcp.NewTool("resolve_exercise",
	mcp.WithDescription("Map a free-text exercise name (e.g. 'incline db press', 'lat raises') to its canonical catalog name. Exact alias hits score 100; otherwise the best fuzzy token-set score is used if it reaches the threshold."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Exercise name as written by the user")),
	mcp.WithNumber("threshold", mcp.Description("Minimum fuzzy score 0-100. Defaults to the server's configured threshold (60).")),
)

var toolCategorizeSession = mcp.NewTool("categorize_session",
	mcp.WithDescription("Classify a session as PUSH, PULL, LEGS or CORE by majority vote over the exercises' primary muscle groups. Returns UNKNOWN when no name is in the catalog."),
	mcp.WithString("names", mcp.Required(), mcp.Description("Comma-separated canonical exercise names (resolve them first)")),
)

var toolGetWorkoutReport = mcp.NewTool("get_workout_report",
	mcp.WithDescription("Flat list of logged lifts and cardio, newest first, with sets/reps/weight or duration/distance/speed."),
	mcp.WithNumber("limit", mcp.Description("Maximum rows. Defaults to 100.")),
)

var toolGetRecentWorkouts = mcp.NewTool("get_recent_workouts",
	mcp.WithDescription("Most recent logged sessions with date, day type and the raw log text."),
	mcp.WithNumber("limit", mcp.Description("Maximum sessions. Defaults to 5.")),
)

var toolGetDietLog = mcp.NewTool("get_diet_log",
	mcp.WithDescription("Most recent meal entries with estimated calories and macros."),
	mcp.WithNumber("limit", mcp.Description("Maximum entries. Defaults to 50.")),
)

var toolGetDailyMacros = mcp.NewTool("get_daily_macros",
	mcp.WithDescription("Total calories, protein, carbs and fats logged on one day."),
	mcp.WithString("date", mcp.Description("Day (YYYY-MM-DD). Defaults to today.")),
)

var toolGetTrainingSummary = mcp.NewTool("get_training_summary",
	mcp.WithDescription("Weekly/monthly session counts per day type plus lifting volume (lifts, sets, sets per muscle group)."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 6 months ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
	mcp.WithString("bucket", mcp.Description("Aggregation period. Defaults to '1 month'."), mcp.Enum("1 week", "1 month")),
)

// --- Tool handlers ---

func (h *handlers) resolveExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	threshold := req.GetInt("threshold", -1)
	if threshold > 100 {
		return mcp.NewToolResultError("threshold must be between 0 and 100"), nil
	}

	match, err := h.ds.ResolveExercise(ctx, name, threshold)
	if err != nil {
		h.log.Error("mcp resolve_exercise", "error", err)
		return mcp.NewToolResultError("resolve failed: " + err.Error()), nil
	}
	return jsonResult(match)
}

func (h *handlers) categorizeSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("names")
	if err != nil {
		return mcp.NewToolResultError("names parameter is required"), nil
	}

	report, err := h.ds.CategorizeSession(ctx, splitNames(raw))
	if err != nil {
		h.log.Error("mcp categorize_session", "error", err)
		return mcp.NewToolResultError("categorize failed: " + err.Error()), nil
	}
	return jsonResult(report)
}

func (h *handlers) getWorkoutReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows, err := h.ds.QueryReport(ctx, req.GetInt("limit", 0))
	if err != nil {
		h.log.Error("mcp get_workout_report", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(rows)
}

func (h *handlers) getRecentWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows, err := h.ds.RecentWorkouts(ctx, req.GetInt("limit", 0))
	if err != nil {
		h.log.Error("mcp get_recent_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(rows)
}

func (h *handlers) getDietLog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows, err := h.ds.RecentDietLogs(ctx, req.GetInt("limit", 0))
	if err != nil {
		h.log.Error("mcp get_diet_log", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(rows)
}

func (h *handlers) getDailyMacros(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date := time.Now()
	if s := req.GetString("date", ""); s != "" {
		d, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
		}
		date = d
	}

	macros, err := h.ds.DailyMacros(ctx, date)
	if err != nil {
		h.log.Error("mcp get_daily_macros", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(map[string]any{
		"date":   date.Format(time.DateOnly),
		"macros": macros,
	})
}

func (h *handlers) getTrainingSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	bucket := req.GetString("bucket", "1 month")

	periods, err := h.ds.GetTrainingSummary(ctx, start, end, bucket)
	if err != nil {
		h.log.Error("mcp get_training_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(periods)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
