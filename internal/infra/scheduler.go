package infra

import (
	"context"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Job is a unit of scheduled work
type Job interface {
	Run(ctx context.Context) (int, error)
}

// Scheduler manages scheduled tasks
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler creates a new scheduler evaluating specs in the market location
func NewScheduler(opts ...cron.Option) *Scheduler {
	return &Scheduler{
		cron: cron.New(opts...),
	}
}

// Register adds a job under a standard five-field cron spec
func (s *Scheduler) Register(name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		if _, err := job.Run(context.Background()); err != nil {
			log.WithError(err).WithField("job", name).Error("Scheduled job failed")
		}
	})
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"job":      name,
		"schedule": spec,
	}).Info("Scheduled job registered")
	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info("Scheduler started")
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop(ctx context.Context) {
	log.Info("Stopping scheduler...")
	select {
	case <-s.cron.Stop().Done():
		log.Info("Scheduler stopped")
	case <-ctx.Done():
		log.Warn("Scheduler stop timed out, abandoning running jobs")
	}
}
