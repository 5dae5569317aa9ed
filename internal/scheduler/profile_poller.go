package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/nutrileaf/nutrileaf-client/internal/session"
	"github.com/nutrileaf/nutrileaf-client/pkg/logger"
)

// ProfilePoller is the low-frequency fallback behind the broadcaster: it
// re-checks the cached profile against the backend on a schedule, catching
// writes made by another application bypassing the gateway entirely.
// In-process mutations never wait for it.
type ProfilePoller struct {
	cron     *cron.Cron
	cache    *session.Cache
	schedule string
}

// NewProfilePoller creates the poller with a cron schedule such as
// "@every 5m".
func NewProfilePoller(cache *session.Cache, schedule string) *ProfilePoller {
	return &ProfilePoller{
		cron:     cron.New(),
		cache:    cache,
		schedule: schedule,
	}
}

// Start registers the poll job and starts the cron runner.
func (p *ProfilePoller) Start() error {
	_, err := p.cron.AddFunc(p.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := p.cache.Reconcile(ctx); err != nil {
			if err == session.ErrNoSession {
				logger.Debug("Profile poll skipped, nobody signed in", nil)
				return
			}
			logger.Error("Scheduled profile refresh failed", err)
			return
		}

		logger.Debug("Scheduled profile refresh completed", nil)
	})

	if err != nil {
		logger.Error("Failed to register profile refresh job", err)
		return err
	}

	p.cron.Start()
	logger.Info("Profile refresh poller started", map[string]interface{}{
		"schedule": p.schedule,
	})

	return nil
}

// Stop halts the cron runner.
func (p *ProfilePoller) Stop() {
	p.cron.Stop()
	logger.Info("Profile refresh poller stopped", nil)
}
