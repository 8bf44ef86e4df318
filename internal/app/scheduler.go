package app

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// startScheduler runs the background refresh loop: on each tick every stale
// category is refreshed independently. The schedule comes from config
// (default "@every 5m"); fast categories go stale and refresh on their own
// freshness windows, slow ones are no-ops until their window elapses.
func (a *App) startScheduler() error {
	c := cron.New()

	_, err := c.AddFunc(a.Config.Refresh.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		if err := a.SyncService.RefreshStale(ctx); err != nil {
			a.Logger.Warn().Err(err).Msg("Scheduled refresh completed with failures")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", a.Config.Refresh.Schedule, err)
	}

	c.Start()
	a.schedulerStop = func() {
		stopCtx := c.Stop()
		<-stopCtx.Done()
	}

	a.Logger.Info().Str("schedule", a.Config.Refresh.Schedule).Msg("Refresh scheduler started")
	return nil
}
