// Command worker runs the build-job pool without an HTTP listener, for
// operators who want dedicated worker processes instead of the all-in-one
// cmd/server. The queue itself stays in-process (§6.2's hand-rolled
// goroutine+channel design, not a shared broker), so a standalone worker
// only drains jobs enqueued within its own process — it exists for
// deployments that want the pool isolated from request handling on the same
// host's resources, not for horizontal fan-out across hosts. Running
// cmd/server alone is sufficient for every behavior this engine implements.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aoe4tourney/engine/bootstrap"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	app, err := bootstrap.New(logger)
	if err != nil {
		logger.Error("failed to start", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go app.Hub.Run()
	app.Pool.Start(ctx)
	logger.Info("worker pool started", slog.Int("workers", app.Config.JobPoolWorkers))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("shutdown signal received", slog.String("signal", sig.String()))

	app.Pool.Stop()
	logger.Info("worker exited")
}
