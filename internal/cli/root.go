// Package cli implements the gymlog-cli commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/claude/gymlog/internal/config"
	"github.com/claude/gymlog/internal/extract"
	"github.com/claude/gymlog/internal/storage"
	"github.com/claude/gymlog/internal/workout"
)

var (
	configPath string
	formatFlag string
	verbose    bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "gymlog-cli",
	Short: "Log workouts and meals from the terminal",
	Long:  "Terminal client for gymlog. Free-text workout logs are resolved against the exercise catalog, categorized into a day type and stored in PostgreSQL.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to config file")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: text or json")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// env bundles what most commands need.
type env struct {
	cfg      *config.Config
	log      *slog.Logger
	db       *storage.DB
	ext      *extract.Extractor
	workouts *workout.Service
}

func (e *env) Close() {
	if e.db != nil {
		e.db.Close()
	}
}

// openDB loads the config and connects to the database.
func openDB(ctx context.Context) *env {
	log := newLogger()
	cfg, err := config.Load(configPath)
	if err != nil {
		exitErr("load config", err)
	}
	db, err := storage.New(ctx, cfg.Database.DSN())
	if err != nil {
		exitErr("connect database", err)
	}
	return &env{cfg: cfg, log: log, db: db}
}

// openService connects to the database and loads the catalog snapshot.
func openService(ctx context.Context) *env {
	e := openDB(ctx)
	snap, err := e.db.LoadCatalog(ctx)
	if err != nil {
		e.Close()
		exitErr("load catalog", err)
	}
	e.ext = extract.New(extract.NewCompleter(e.cfg.LLM), e.log)
	e.workouts = workout.New(snap, e.db, e.ext, e.log, e.cfg.Catalog.MatchThreshold)
	return e
}

func jsonOutput() bool { return formatFlag == "json" }

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

// parseDay parses a YYYY-MM-DD flag value, defaulting to today.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return d, nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
