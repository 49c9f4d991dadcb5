package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/example/terve/pkg/models"
	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
)

// Default notification hours (UTC)
const (
	DefaultNotificationStartHour = 8
	DefaultNotificationEndHour   = 20
)

// PurgeInterval is how often abandoned exam instances are removed
const PurgeInterval = 15 * time.Minute

// SweepInterval is how often idle client state is dropped
const SweepInterval = 5 * time.Minute

// Notifier interface for sending notifications
type Notifier interface {
	NotifyDue(ctx context.Context, chatID int64, due int) error
}

// Users lists the learners the jobs work on
type Users interface {
	ListIDs(ctx context.Context) ([]int64, error)
	ListWithTelegram(ctx context.Context) ([]models.User, error)
}

// Flashcards is the spaced repetition side of the jobs
type Flashcards interface {
	DueCount(ctx context.Context, userID int64) (int, error)
	TopUp(ctx context.Context, userID int64) (int, error)
}

// ExamPurger removes exam instances that can no longer be submitted
type ExamPurger interface {
	PurgeAbandoned(ctx context.Context) (int, error)
}

// IdleSweeper drops per-client state of clients that went quiet
type IdleSweeper interface {
	SweepIdle() int
}

// Config holds the notification window, in UTC hours inclusive
type Config struct {
	StartHour int
	EndHour   int
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	users     Users
	cards     Flashcards
	exams     ExamPurger
	notifier  Notifier
	sweeper   IdleSweeper
	config    Config
	now       func() time.Time
}

// Option customizes a Scheduler
type Option func(*Scheduler)

// WithIdleSweeper schedules sw every SweepInterval
func WithIdleSweeper(sw IdleSweeper) Option {
	return func(s *Scheduler) { s.sweeper = sw }
}

// New creates a new scheduler instance. notifier may be nil when reminders are disabled.
func New(users Users, cards Flashcards, exams ExamPurger, notifier Notifier, config Config, opts ...Option) *Scheduler {
	s := &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		users:     users,
		cards:     cards,
		exams:     exams,
		notifier:  notifier,
		config:    config,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start(ctx context.Context) error {
	if s.notifier != nil {
		if _, err := s.scheduler.Every(1).Hour().Do(s.SendReminders, ctx); err != nil {
			return errors.Wrap(err, "failed to schedule reminders")
		}
	}
	if _, err := s.scheduler.Every(1).Hour().Do(s.TopUpPools, ctx); err != nil {
		return errors.Wrap(err, "failed to schedule pool top-up")
	}
	if _, err := s.scheduler.Every(PurgeInterval).Do(s.PurgeExams, ctx); err != nil {
		return errors.Wrap(err, "failed to schedule exam purge")
	}
	if s.sweeper != nil {
		if _, err := s.scheduler.Every(SweepInterval).Do(s.SweepIdleClients); err != nil {
			return errors.Wrap(err, "failed to schedule client sweep")
		}
	}

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
	slog.Info("scheduler started", slog.Int("jobs", len(s.scheduler.Jobs())))
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// InNotificationHours reports whether hour lies in the configured window
func (s *Scheduler) InNotificationHours(hour int) bool {
	return hour >= s.config.StartHour && hour <= s.config.EndHour
}

// SendReminders tells every learner with a linked chat how many learning cards are due
func (s *Scheduler) SendReminders(ctx context.Context) {
	currentHour := s.now().Hour()
	if !s.InNotificationHours(currentHour) {
		slog.Debug("outside notification hours, skipping reminders",
			slog.Int("hour", currentHour), slog.Int("start", s.config.StartHour), slog.Int("end", s.config.EndHour))
		return
	}

	users, err := s.users.ListWithTelegram(ctx)
	if err != nil {
		slog.Error("failed to get users for notification", slog.String("error", err.Error()))
		return
	}

	sent := 0
	for _, user := range users {
		if user.TelegramChatID == nil {
			continue
		}
		due, err := s.cards.DueCount(ctx, user.ID)
		if err != nil {
			slog.Warn("failed to count due cards", slog.Int64("user", user.ID), slog.String("error", err.Error()))
			continue
		}
		if due == 0 {
			continue
		}
		if err := s.notifier.NotifyDue(ctx, *user.TelegramChatID, due); err != nil {
			slog.Warn("failed to send reminder", slog.Int64("user", user.ID), slog.String("error", err.Error()))
			continue
		}
		sent++
	}
	slog.Info("reminders sent", slog.Int("count", sent))
}

// TopUpPools refills the learning pool of every learner
func (s *Scheduler) TopUpPools(ctx context.Context) {
	ids, err := s.users.ListIDs(ctx)
	if err != nil {
		slog.Error("failed to list users", slog.String("error", err.Error()))
		return
	}

	total := 0
	for _, id := range ids {
		added, err := s.cards.TopUp(ctx, id)
		if err != nil {
			slog.Warn("failed to top up pool", slog.Int64("user", id), slog.String("error", err.Error()))
			continue
		}
		total += added
	}
	if total > 0 {
		slog.Info("pools topped up", slog.Int("users", len(ids)), slog.Int("added", total))
	}
}

// PurgeExams removes abandoned exam instances
func (s *Scheduler) PurgeExams(ctx context.Context) {
	n, err := s.exams.PurgeAbandoned(ctx)
	if err != nil {
		slog.Error("failed to purge abandoned exams", slog.String("error", err.Error()))
		return
	}
	if n > 0 {
		slog.Info("purged abandoned exams", slog.Int("count", n))
	}
}

// SweepIdleClients drops the state of idle clients
func (s *Scheduler) SweepIdleClients() {
	if n := s.sweeper.SweepIdle(); n > 0 {
		slog.Debug("dropped idle clients", slog.Int("count", n))
	}
}
