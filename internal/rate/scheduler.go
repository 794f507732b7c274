package rate

import (
	"context"
	"time"

	"shopfx/internal/adapters"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultUpdateInterval = 24 * time.Hour

// Scheduler runs the exchange rate update job periodically. Overlapping
// runs are prevented by singleton mode, and duplicate-date inserts are
// no-ops anyway, so a missed or doubled tick is harmless.
type Scheduler struct {
	registry adapters.CurrencyRegistry
	store    adapters.RateRecorder
	provider adapters.RateProvider
	notifier adapters.Notifier
	interval time.Duration
	// -----
	sched gocron.Scheduler
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	s.sched = scheduler

	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		updated, updErr := UpdateExchangeRates(jobCtx, execID, s.registry, s.store, s.provider)
		if updErr != nil {
			logrus.Errorf("Update exchange rates job %s failed: %v", execID, updErr)
			return
		}
		if notifyErr := NotifyUpdateSummary(jobCtx, s.notifier, updated); notifyErr != nil {
			logrus.Errorf("Update summary notification for job %s failed: %v", execID, notifyErr)
		}
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)

	if err != nil {
		return err
	}

	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (s *Scheduler) Shutdown() error {
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}

func NewScheduler(registry adapters.CurrencyRegistry, store adapters.RateRecorder, provider adapters.RateProvider, notifier adapters.Notifier, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = defaultUpdateInterval
	}
	return &Scheduler{
		registry: registry,
		store:    store,
		provider: provider,
		notifier: notifier,
		interval: interval,
	}
}
