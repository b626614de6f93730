package rate

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultWarmUpInterval = 4 * time.Minute

// Scheduler keeps the latest-rates cache warm for a fixed set of bases.
// Runs never overlap; a run still in progress when the next is due pushes it back.
type Scheduler struct {
	fetcher  LatestRatesFetcher
	bases    []string
	interval time.Duration

	mu    sync.Mutex
	sched gocron.Scheduler
}

func (s *Scheduler) Start(ctx context.Context) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.run),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = sched.Shutdown()
		return err
	}

	s.mu.Lock()
	s.sched = sched
	s.mu.Unlock()
	sched.Start()
	logrus.WithFields(logrus.Fields{"bases": s.bases, "interval": s.interval}).Info("Warm-up scheduled")

	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

// run is one warm-up pass; gocron passes the job context, which ends on shutdown.
func (s *Scheduler) run(ctx context.Context) {
	execID := uuid.NewString()
	start := time.Now()
	refreshed := WarmUpLatestRates(ctx, execID, s.fetcher, s.bases)
	logrus.WithFields(logrus.Fields{
		"correlation_id": execID,
		"refreshed":      refreshed,
		"elapsed_ms":     time.Since(start).Milliseconds(),
	}).Debug("Warm-up run finished")
}

// Shutdown stops the scheduler; calling it again is a no-op.
func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	sched := s.sched
	s.sched = nil
	s.mu.Unlock()

	if sched == nil {
		return nil
	}
	return sched.Shutdown()
}

func (s *Scheduler) running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched != nil
}

func NewScheduler(fetcher LatestRatesFetcher, bases []string, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = defaultWarmUpInterval
	}
	return &Scheduler{fetcher: fetcher, bases: bases, interval: interval}
}
