package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bena618/Armageddon-Chess-Backend/config"
	"github.com/bena618/Armageddon-Chess-Backend/server"
	"github.com/bena618/Armageddon-Chess-Backend/store"
	"github.com/labstack/echo/v4"
	_ "modernc.org/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	dbconn, err := sql.Open("sqlite", cfg.SQLitePath)
	if err != nil {
		slog.Error("failed to open sqlite database", "error", err)
		os.Exit(1)
	}
	defer dbconn.Close()

	st, err := store.NewSQLiteStore(ctx, dbconn)
	if err != nil {
		slog.Error("failed to initialize store schema", "error", err)
		os.Exit(1)
	}

	srv := server.New(ctx, cfg, st)

	e := echo.New()
	e.HideBanner = true
	srv.RegisterRoutes(e)

	go runStaleQueueSweeper(ctx, srv)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			slog.Error("server shutdown", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

// runStaleQueueSweeper periodically drops queue entries whose heartbeat
// has gone quiet. This is the "optional low-frequency background
// sweeper" the concurrency model allows for pushing state forward
// without being required for correctness — every handler still re-derives
// its own deadline transitions regardless of whether this loop runs.
func runStaleQueueSweeper(ctx context.Context, srv *server.Server) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := srv.Index.CleanupStale(); err != nil {
				slog.Warn("stale queue cleanup failed", "error", err)
			}
		}
	}
}
