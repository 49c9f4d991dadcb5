package exam

import (
	"time"

	apperrors "github.com/example/terve/internal/errors"
	"github.com/example/terve/pkg/models"
)

// State is the lifecycle position of an exam session
type State int

const (
	NotStarted State = iota
	InProgress
	Submitted
	Abandoned
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case InProgress:
		return "in_progress"
	case Submitted:
		return "submitted"
	case Abandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Session identifies the exam a learner is taking. It travels with the learner
// between begin and submit and is cleared once the exam is graded.
type Session struct {
	ExamID      string       `json:"exam_id"`
	TargetLevel models.Level `json:"target_level"`
	StartedAt   time.Time    `json:"started_at"`
}

// Active reports whether every field of the session is present
func (s *Session) Active() bool {
	return s != nil && s.ExamID != "" && s.TargetLevel != "" && !s.StartedAt.IsZero()
}

// Elapsed is the time since the exam started, never negative
func (s *Session) Elapsed(now time.Time) time.Duration {
	d := now.Sub(s.StartedAt)
	if d < 0 {
		return 0
	}
	return d
}

// State derives the lifecycle state. A session past its limit plus grace is abandoned.
// Submitted is never derived; a submitted session no longer exists.
func (s *Session) State(now time.Time, limit, grace time.Duration) State {
	if !s.Active() {
		return NotStarted
	}
	if s.Elapsed(now) > limit+grace {
		return Abandoned
	}
	return InProgress
}

// Validate returns an invalid session error unless the session is in progress
func (s *Session) Validate(now time.Time, limit, grace time.Duration) error {
	switch s.State(now, limit, grace) {
	case InProgress:
		return nil
	case Abandoned:
		return apperrors.InvalidSession("exam time limit exceeded")
	default:
		return apperrors.InvalidSession("no active exam session")
	}
}

// TimeSpentMinutes rounds the elapsed time to whole minutes
func (s *Session) TimeSpentMinutes(now time.Time) int {
	return int(s.Elapsed(now).Round(time.Minute) / time.Minute)
}
