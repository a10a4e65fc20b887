package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"tailscale.com/tsnet"

	"github.com/claude/gymlog/internal/catalog"
	"github.com/claude/gymlog/internal/config"
	"github.com/claude/gymlog/internal/extract"
	"github.com/claude/gymlog/internal/mcp"
	"github.com/claude/gymlog/internal/seed"
	"github.com/claude/gymlog/internal/server"
	"github.com/claude/gymlog/internal/storage"
	"github.com/claude/gymlog/internal/workout"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("gymlog starting", "version", Version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.RequireAPIKey(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.Database.DSN()
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	if *migrateOnly {
		log.Info("migrate-only: exiting")
		return
	}

	ctx := context.Background()
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	snap, err := db.LoadCatalog(ctx)
	if err != nil {
		log.Error("failed to load exercise catalog", "error", err)
		os.Exit(1)
	}
	if snap.Len() == 0 {
		log.Info("exercise catalog is empty, seeding", "file", cfg.Catalog.SeedFile)
		if snap, err = seedCatalog(ctx, db, cfg.Catalog.SeedFile, log); err != nil {
			log.Error("failed to seed exercise catalog", "error", err)
			os.Exit(1)
		}
	}
	// The resolver cannot run without a catalog.
	if snap.Len() == 0 {
		log.Error("exercise catalog is empty", "seed_file", cfg.Catalog.SeedFile)
		os.Exit(1)
	}
	log.Info("catalog loaded", "exercises", snap.Len())

	ext := extract.New(extract.NewCompleter(cfg.LLM), log)
	if !ext.Available() {
		log.Warn("no LLM configured; free text will be parsed offline")
	}
	svc := workout.New(snap, db, ext, log, cfg.Catalog.MatchThreshold)

	srv := server.New(db, svc, ext, cfg.Auth.APIKey, log)
	srv.MountMCP(mcpserver.NewStreamableHTTPServer(mcp.New(&mcp.Local{DB: db, Workouts: svc}, Version, log)))

	var listener net.Listener
	if cfg.Tailscale.Enabled {
		tsServer := &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}

// seedCatalog inserts the seed file into an empty catalog and reloads it.
func seedCatalog(ctx context.Context, db *storage.DB, path string, log *slog.Logger) (*catalog.Snapshot, error) {
	file, err := seed.ParseFile(path)
	if err != nil {
		return nil, err
	}
	if _, err := seed.New(db, log, false).Seed(ctx, file); err != nil {
		return nil, err
	}
	return db.LoadCatalog(ctx)
}
