package playvault

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
)

// AutosaveScheduler periodically flushes every active account to durable
// storage without evicting anyone. It runs for the lifetime of the process;
// Stop exists for orderly teardown in tests.
type AutosaveScheduler struct {
	service *Service
	runner  *cron.Cron
}

func NewAutosaveScheduler(service *Service) *AutosaveScheduler {
	return &AutosaveScheduler{
		service: service,
		runner:  cron.New(),
	}
}

func (a *AutosaveScheduler) Start() {
	spec := fmt.Sprintf("@every %ds", a.service.config.AutosaveIntervalSec)
	if _, err := a.runner.AddFunc(spec, func() {
		a.SweepOnce(context.Background())
	}); err != nil {
		a.service.logger.Error("Failed to schedule autosave: %v", err)
		return
	}
	a.runner.Start()
}

func (a *AutosaveScheduler) Stop() {
	a.runner.Stop()
}

// SweepOnce saves a snapshot of every currently active account. One account's
// storage trouble never touches another: a dropped save is reported through
// the observer and the sweep moves on.
func (a *AutosaveScheduler) SweepOnce(ctx context.Context) {
	s := a.service
	for actorID, session := range s.sessions.Active() {
		s.saveSession(ctx, s.logger, s.nk, actorID, session)
	}
}
