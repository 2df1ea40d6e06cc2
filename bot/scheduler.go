package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"worldboss-bot/model"
	"worldboss-bot/tasks"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"
	"go.uber.org/multierr"
)

// DefaultInterval is the time between two reminders.
const DefaultInterval = 2 * time.Hour

var (
	ErrAlreadyRunning = errors.New("timer is already running")
	ErrNotRunning     = errors.New("timer is not running")
)

// TickReport aggregates the deliveries of one tick.
type TickReport struct {
	Started    time.Time
	Deliveries []tasks.Delivery
	// ListErr is set when the targets could not be read at all.
	ListErr error
}

// Sent returns how many reminders went out.
func (r TickReport) Sent() int {
	n := 0
	for _, d := range r.Deliveries {
		if d.Outcome == tasks.OutcomeSent {
			n++
		}
	}
	return n
}

// Failures returns the deliveries that did not go out.
func (r TickReport) Failures() []tasks.Delivery {
	var failed []tasks.Delivery
	for _, d := range r.Deliveries {
		if d.Outcome != tasks.OutcomeSent {
			failed = append(failed, d)
		}
	}
	return failed
}

// Err combines every failure of the tick, each tagged with its server.
func (r TickReport) Err() error {
	var err error
	if r.ListErr != nil {
		err = multierr.Append(err, fmt.Errorf("could not list timers: %w", r.ListErr))
	}
	for _, d := range r.Failures() {
		err = multierr.Append(err, fmt.Errorf("%s (%s): %w", d.Target.Label(), d.Outcome, d.Err))
	}
	return err
}

// Scheduler posts the reminder to every target on a fixed interval.
// It is either stopped or running; Start and Stop move between the two.
type Scheduler struct {
	rt       model.Runtime
	source   model.TargetSource
	interval time.Duration

	// OnReport, when set, receives the report of every tick.
	OnReport func(TickReport)

	mu   sync.Mutex
	cron *gocron.Scheduler
	job  *gocron.Job

	// tickMu serializes passes, including those of an instance started while
	// the previous one is still draining.
	tickMu sync.Mutex
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(rt model.Runtime, source model.TargetSource, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		rt:       rt,
		source:   source,
		interval: interval,
	}
}

// Start schedules the reminder job. The first tick fires right away, the
// next ones every interval after the previous fire.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return ErrAlreadyRunning
	}

	cron := gocron.NewScheduler(time.UTC)
	job, err := cron.Every(s.interval).SingletonMode().Do(s.run)
	if err != nil {
		return fmt.Errorf("could not schedule reminder job: %w", err)
	}
	cron.StartAsync()

	s.cron = cron
	s.job = job
	log.Info().Dur("interval", s.interval).Msg("Timer loop started")
	return nil
}

// Stop prevents future ticks and returns once a tick in progress has
// finished its pass.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	cron := s.cron
	if cron == nil {
		s.mu.Unlock()
		return ErrNotRunning
	}
	s.cron = nil
	s.job = nil
	s.mu.Unlock()

	cron.Stop()
	log.Info().Msg("Timer loop stopped")
	return nil
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cron != nil
}

// NextRun returns when the next tick fires. ok is false while stopped.
func (s *Scheduler) NextRun() (next time.Time, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.job == nil {
		return time.Time{}, false
	}
	return s.job.NextRun(), true
}

func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()
	s.Tick(ctx)
}

// Tick sends one reminder per target. A failing target never stops the
// others; all outcomes are logged once at the end. Two ticks never run at
// the same time.
func (s *Scheduler) Tick(ctx context.Context) TickReport {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	report := TickReport{Started: time.Now()}

	targets, err := s.source.ListTargets(ctx)
	if err != nil {
		report.ListErr = err
	} else {
		for _, target := range targets {
			report.Deliveries = append(report.Deliveries, tasks.SendWorldBossReminder(s.rt, target))
		}
	}

	logReport(report)
	if s.OnReport != nil {
		s.OnReport(report)
	}
	return report
}

func logReport(report TickReport) {
	failed := len(report.Failures())
	if err := report.Err(); err != nil {
		log.Warn().
			Err(err).
			Int("sent", report.Sent()).
			Int("failed", failed).
			Dur("took", time.Since(report.Started)).
			Msg("Reminder tick finished with failures")
		return
	}
	log.Info().
		Int("sent", report.Sent()).
		Dur("took", time.Since(report.Started)).
		Msg("Reminder tick finished")
}
