package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/Scrumease/Scrum-Ease-Web-API/pkg/standup"
)

const (
	TICK_INTERVAL = time.Minute
)

func main() {
	slog.Info("Starting daily notifier job")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runTick(ctx)

	ticker := time.NewTicker(TICK_INTERVAL)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping daily notifier job")
			return
		case <-ticker.C:
			runTick(ctx)
		}
	}
}

func runTick(ctx context.Context) {
	receivedAt := time.Now()

	// decided up front: a reminder scan that outlasts the sweep minute
	// must not cost us that day's sweep
	sweepDue, err := standup.SweepDue(receivedAt)
	if err != nil {
		slog.Error("failed to resolve sweep timezone", slog.String("error", err.Error()))
	}

	standup.OnReminderTick(ctx)
	slog.Debug("reminder tick completed", slog.String("duration", time.Since(receivedAt).String()))

	if sweepDue {
		slog.Info("starting end of day sweep")
		standup.OnEndOfDaySweepAt(ctx, receivedAt)
		slog.Info("end of day sweep completed", slog.String("duration", time.Since(receivedAt).String()))
	}
}
