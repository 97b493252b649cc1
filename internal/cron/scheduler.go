package cronjob

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Warmer reloads a cache and reports how many entries it stored.
type Warmer interface {
	Warm(ctx context.Context) (int, error)
}

type Scheduler struct {
	spec    string
	warmer  Warmer
	timeout time.Duration
	log     *logrus.Entry
	c       *cron.Cron
}

// NewScheduler runs warmer on spec, a six-field cron expression with
// seconds.
func NewScheduler(spec string, warmer Warmer, log *logrus.Entry) *Scheduler {
	return &Scheduler{
		spec:    spec,
		warmer:  warmer,
		timeout: 30 * time.Second,
		log:     log.WithField("component", "cron"),
		c:       cron.New(cron.WithSeconds()),
	}
}

// Start registers the job and starts the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.c.AddFunc(s.spec, func() { _ = s.RunOnce(ctx) })
	if err != nil {
		return fmt.Errorf("failed to create cron job %q: %w", s.spec, err)
	}

	s.log.WithField("spec", s.spec).Info("cron scheduler started")
	s.c.Start()
	return nil
}

// Stop halts the loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.c.Stop().Done()
}

// RunOnce warms the cache a single time. Failures are logged and
// returned.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	jobCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	n, err := s.warmer.Warm(jobCtx)
	if err != nil {
		s.log.WithError(err).Error("employee cache warm-up failed")
		return err
	}
	s.log.WithFields(logrus.Fields{
		"employees": n,
		"took":      time.Since(start).String(),
	}).Info("employee cache warmed")
	return nil
}
