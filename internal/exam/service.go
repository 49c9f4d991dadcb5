package exam

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"math"
	"time"

	"github.com/example/terve/internal/database"
	apperrors "github.com/example/terve/internal/errors"
	"github.com/example/terve/internal/random"
	"github.com/example/terve/pkg/models"
	"github.com/pkg/errors"
)

const (
	// RecentLimit is the number of results shown on the exam overview
	RecentLimit = 5
	// HistoryPageSize is the number of results per history page
	HistoryPageSize = 20
	// DefaultGrace is added to the time limit before a session counts as abandoned
	DefaultGrace = time.Minute
)

// InstanceStore keeps generated exams between begin and submit
type InstanceStore interface {
	Create(ctx context.Context, inst *models.ExamInstance) error
	Get(ctx context.Context, id string) (*models.ExamInstance, error)
	Delete(ctx context.Context, id string) error
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// ResultStore persists graded exams
type ResultStore interface {
	Create(ctx context.Context, result *models.ExamResult) error
	GetByID(ctx context.Context, id int64) (*models.ExamResult, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.ExamResult, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	AveragesByLevel(ctx context.Context, userID int64) ([]database.LevelAverage, error)
}

// Service runs mock exams for learners
type Service struct {
	gen       *Generator
	instances InstanceStore
	results   ResultStore
	now       func() time.Time
	grace     time.Duration
}

// Option customizes a Service
type Option func(*Service)

// WithRandom replaces the random source of the generator
func WithRandom(rnd random.Source) Option {
	return func(s *Service) { s.gen = NewGenerator(rnd) }
}

// WithClock replaces the wall clock
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithGrace sets how long after the time limit a submission is still accepted
func WithGrace(grace time.Duration) Option {
	return func(s *Service) { s.grace = grace }
}

// NewService creates an exam service
func NewService(instances InstanceStore, results ResultStore, opts ...Option) *Service {
	s := &Service{
		gen:       NewGenerator(nil),
		instances: instances,
		results:   results,
		now:       func() time.Time { return time.Now().UTC() },
		grace:     DefaultGrace,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Outcome is a graded and stored exam
type Outcome struct {
	ResultID         int64        `json:"id"`
	Result           GradedResult `json:"result"`
	Percentage       int          `json:"percentage"`
	Passed           bool         `json:"passed"`
	TimeSpentMinutes int          `json:"timeSpent"`
}

// HistoryPage is one page of a learner's results, newest first
type HistoryPage struct {
	Results  []models.ExamResult `json:"results"`
	Page     int                 `json:"page"`
	PerPage  int                 `json:"perPage"`
	Total    int                 `json:"total"`
	LastPage int                 `json:"lastPage"`
}

// Begin generates and stores an exam and returns the session the learner must present on submit
func (s *Service) Begin(ctx context.Context, userID int64, level models.Level) (*Instance, *Session, error) {
	inst := s.gen.Generate(level)
	questions, err := json.Marshal(inst.Questions)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to encode exam questions")
	}

	startedAt := s.now()
	stored := &models.ExamInstance{
		ID:               inst.ID,
		UserID:           userID,
		TargetLevel:      inst.TargetLevel,
		TimeLimitMinutes: inst.TimeLimit,
		Questions:        string(questions),
		StartedAt:        startedAt,
		ExpiresAt:        startedAt.Add(inst.TimeLimitDuration()),
	}
	if err := s.instances.Create(ctx, stored); err != nil {
		return nil, nil, err
	}

	slog.Info("exam started", "user", userID, "exam", inst.ID, "level", inst.TargetLevel)
	return inst, &Session{ExamID: inst.ID, TargetLevel: inst.TargetLevel, StartedAt: startedAt}, nil
}

// Submit grades the answers of the session's exam and stores the result.
// A missing, foreign or expired session fails with an invalid session error and grants nothing.
func (s *Service) Submit(ctx context.Context, userID int64, sess *Session, examID string, answers map[int]string) (*Outcome, error) {
	now := s.now()
	if !sess.Active() {
		return nil, apperrors.InvalidSession("no active exam session")
	}
	if examID != "" && examID != sess.ExamID {
		return nil, apperrors.InvalidSession("exam does not match the active session")
	}

	stored, err := s.instances.Get(ctx, sess.ExamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.InvalidSession("exam expired or already submitted")
		}
		return nil, err
	}
	if stored.UserID != userID {
		return nil, apperrors.InvalidSession("no active exam session")
	}

	inst, err := decodeInstance(stored)
	if err != nil {
		return nil, err
	}
	if err := sess.Validate(now, inst.TimeLimitDuration(), s.grace); err != nil {
		s.discard(ctx, inst.ID)
		return nil, err
	}

	graded := Grade(inst, answers)
	sections, err := json.Marshal(graded.sectionScoreMap())
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode section scores")
	}
	record := &models.ExamResult{
		UserID:           userID,
		ExamType:         models.ExamTypeMockCEFR,
		TargetLevel:      sess.TargetLevel,
		Score:            graded.Score,
		MaxScore:         graded.MaxScore,
		QuestionsCorrect: graded.QuestionsCorrect,
		TotalQuestions:   graded.TotalQuestions,
		TimeSpentMinutes: sess.TimeSpentMinutes(now),
		Sections:         string(sections),
		CreatedAt:        now,
	}
	if err := s.results.Create(ctx, record); err != nil {
		return nil, err
	}
	s.discard(ctx, inst.ID)

	slog.Info("exam graded", "user", userID, "exam", inst.ID, "score", graded.Score, "max", graded.MaxScore)
	return &Outcome{
		ResultID:         record.ID,
		Result:           graded,
		Percentage:       record.Percentage(),
		Passed:           record.Passed(),
		TimeSpentMinutes: record.TimeSpentMinutes,
	}, nil
}

func (s *Service) discard(ctx context.Context, examID string) {
	if err := s.instances.Delete(ctx, examID); err != nil {
		slog.Warn("failed to discard exam", "exam", examID, "error", err)
	}
}

// Recent returns the learner's latest results
func (s *Service) Recent(ctx context.Context, userID int64, limit int) ([]models.ExamResult, error) {
	return s.results.ListByUser(ctx, userID, limit, 0)
}

// History returns a page of results. Pages start at 1, pages past the end return the last page.
func (s *Service) History(ctx context.Context, userID int64, page int) (*HistoryPage, error) {
	total, err := s.results.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	lastPage := int(math.Ceil(float64(total) / HistoryPageSize))
	if lastPage < 1 {
		lastPage = 1
	}
	if page < 1 {
		page = 1
	}
	if page > lastPage {
		page = lastPage
	}
	results, err := s.results.ListByUser(ctx, userID, HistoryPageSize, (page-1)*HistoryPageSize)
	if err != nil {
		return nil, err
	}
	return &HistoryPage{Results: results, Page: page, PerPage: HistoryPageSize, Total: total, LastPage: lastPage}, nil
}

// Result returns one of the learner's results. Results of other learners are not found.
func (s *Service) Result(ctx context.Context, userID, id int64) (*models.ExamResult, error) {
	result, err := s.results.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("exam result", id)
		}
		return nil, err
	}
	if result.UserID != userID {
		return nil, apperrors.NotFound("exam result", id)
	}
	return result, nil
}

// AverageScores returns the rounded average raw score and attempts per target level
func (s *Service) AverageScores(ctx context.Context, userID int64) (map[models.Level]LevelAverage, error) {
	rows, err := s.results.AveragesByLevel(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make(map[models.Level]LevelAverage, len(rows))
	for _, row := range rows {
		out[row.TargetLevel] = LevelAverage{Average: int(math.Round(row.AvgScore)), Attempts: row.Attempts}
	}
	return out, nil
}

// DetailedStats summarizes every result of the learner
func (s *Service) DetailedStats(ctx context.Context, userID int64) (Stats, error) {
	results, err := s.results.ListByUser(ctx, userID, 0, 0)
	if err != nil {
		return Stats{}, err
	}
	return Summarize(results), nil
}

// PurgeAbandoned deletes stored exams whose time limit and grace have passed
func (s *Service) PurgeAbandoned(ctx context.Context) (int, error) {
	return s.instances.DeleteExpiredBefore(ctx, s.now().Add(-s.grace))
}

func decodeInstance(stored *models.ExamInstance) (*Instance, error) {
	var questions []Question
	if err := json.Unmarshal([]byte(stored.Questions), &questions); err != nil {
		return nil, errors.Wrapf(err, "failed to decode exam %s", stored.ID)
	}
	return &Instance{
		ID:          stored.ID,
		TargetLevel: stored.TargetLevel,
		Questions:   questions,
		TimeLimit:   stored.TimeLimitMinutes,
		Sections:    append([]Section(nil), Sections...),
	}, nil
}
