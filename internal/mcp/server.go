package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("gymlog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("gymlog training log server. Resolve free-text exercise names against the exercise catalog, categorize sessions into PUSH/PULL/LEGS/CORE days, and query logged workouts and meals."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolResolveExercise, Handler: h.resolveExercise},
		server.ServerTool{Tool: toolCategorizeSession, Handler: h.categorizeSession},
		server.ServerTool{Tool: toolGetWorkoutReport, Handler: h.getWorkoutReport},
		server.ServerTool{Tool: toolGetRecentWorkouts, Handler: h.getRecentWorkouts},
		server.ServerTool{Tool: toolGetDietLog, Handler: h.getDietLog},
		server.ServerTool{Tool: toolGetDailyMacros, Handler: h.getDailyMacros},
		server.ServerTool{Tool: toolGetTrainingSummary, Handler: h.getTrainingSummary},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resExerciseCatalog, Handler: h.exerciseCatalog},
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resExerciseCatalog = mcp.NewResource(
	"gymlog://exercise_catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("Every catalog exercise with aliases, primary and secondary muscles, and kind"),
	mcp.WithMIMEType("application/json"),
)

var resRecentWorkouts = mcp.NewResource(
	"gymlog://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("The 14 most recent logged sessions with their day types"),
	mcp.WithMIMEType("application/json"),
)
