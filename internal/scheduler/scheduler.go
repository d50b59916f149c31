package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const jobTimeout = time.Minute

// ReminderRunner is the job run on every tick with the tick time.
type ReminderRunner interface {
	Run(ctx context.Context, now time.Time) error
}

// ReminderScheduler drives a ReminderRunner from a cron spec evaluated in a
// fixed location.
type ReminderScheduler struct {
	cronEngine *cron.Cron
	runner     ReminderRunner
	spec       string
	log        *logrus.Logger
	now        func() time.Time
}

func NewReminderScheduler(runner ReminderRunner, spec string, location *time.Location, log *logrus.Logger) *ReminderScheduler {
	if location == nil {
		location = time.UTC
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ReminderScheduler{
		cronEngine: cron.New(cron.WithLocation(location)),
		runner:     runner,
		spec:       spec,
		log:        log,
		now:        time.Now,
	}
}

// ValidateSpec reports whether spec is a standard five-field cron expression.
func ValidateSpec(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid reminder cron %q: %w", spec, err)
	}
	return nil
}

func (s *ReminderScheduler) Start() error {
	if _, err := s.cronEngine.AddFunc(s.spec, s.runOnce); err != nil {
		return fmt.Errorf("register reminder job: %w", err)
	}
	s.cronEngine.Start()
	s.log.WithField("spec", s.spec).Info("reminder scheduler started")
	return nil
}

// Stop halts the cron engine and waits for a running job to finish.
func (s *ReminderScheduler) Stop() {
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.log.Info("reminder scheduler stopped")
}

func (s *ReminderScheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.runner.Run(ctx, s.now()); err != nil {
		s.log.WithError(err).Error("reminder job failed")
	}
}
