package spaced_repetition

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/example/terve/internal/database"
	apperrors "github.com/example/terve/internal/errors"
	"github.com/example/terve/internal/random"
	"github.com/example/terve/pkg/models"
	"github.com/pkg/errors"
)

const (
	// PoolFloor is the minimum size of a learner's learning category
	PoolFloor = 100
	// TopUpBatch is the most words added by a single top-up
	TopUpBatch = 10
	// RecentWindow is how many recently added words drive the top-up complexity
	RecentWindow = 10
	// SeedSize is the number of A1 words a new learner starts with
	SeedSize = 100
)

// WordStore is the read side of the word catalog
type WordStore interface {
	GetByID(ctx context.Context, id int64) (*models.Word, error)
	MostCommon(ctx context.Context, level models.Level, limit int) ([]models.Word, error)
	FindForPool(ctx context.Context, f database.WordFilter) ([]models.Word, error)
}

// ProgressStore persists learner words
type ProgressStore interface {
	Get(ctx context.Context, userID, wordID int64) (*models.LearnerWord, error)
	Exists(ctx context.Context, userID, wordID int64) (bool, error)
	AddMany(ctx context.Context, userID int64, wordIDs []int64, category models.Category) (int, error)
	Update(ctx context.Context, lw *models.LearnerWord) error
	ListDue(ctx context.Context, userID int64, category models.Category, now time.Time) ([]models.LearnerWord, error)
	CountDue(ctx context.Context, userID int64, category models.Category, now time.Time) (int, error)
	CountByCategory(ctx context.Context, userID int64, category models.Category) (int, error)
	Stats(ctx context.Context, userID int64) (models.FlashcardStats, error)
	OwnedWordIDs(ctx context.Context, userID int64) ([]int64, error)
	RecentWords(ctx context.Context, userID int64, limit int) ([]models.Word, error)
	Flashcard(ctx context.Context, userID, wordID int64) (*models.Flashcard, error)
}

// ExampleWriter writes an example sentence for a word that has none
type ExampleWriter interface {
	ExampleSentence(ctx context.Context, finnish, english string) (string, error)
}

// Service runs the flashcard workflow of a learner
type Service struct {
	words    WordStore
	progress ProgressStore
	rule     *Rule
	rnd      random.Source
	now      func() time.Time
	examples ExampleWriter
}

// Option customizes a Service
type Option func(*Service)

// WithRandom replaces the random source used to pick due cards
func WithRandom(rnd random.Source) Option {
	return func(s *Service) { s.rnd = rnd }
}

// WithClock replaces the wall clock
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithExampleWriter enables example sentences for words without context
func WithExampleWriter(w ExampleWriter) Option {
	return func(s *Service) { s.examples = w }
}

// NewService creates a flashcard service
func NewService(words WordStore, progress ProgressStore, opts ...Option) *Service {
	s := &Service{
		words:    words,
		progress: progress,
		rule:     NewRule(),
		rnd:      random.Default(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NextDueCard picks a random due record of the category, or nil when none is due
func (s *Service) NextDueCard(ctx context.Context, userID int64, category models.Category) (*models.LearnerWord, error) {
	if !category.Valid() {
		return nil, apperrors.InvalidInput("unknown category %q", category)
	}
	now := s.now()
	records, err := s.progress.ListDue(ctx, userID, category, now)
	if err != nil {
		return nil, err
	}
	lw, ok := PickDue(records, category, now, s.rnd)
	if !ok {
		return nil, nil
	}
	return &lw, nil
}

// Practice returns the next due card of the category joined with its catalog entry, or nil
func (s *Service) Practice(ctx context.Context, userID int64, category models.Category) (*models.Flashcard, error) {
	lw, err := s.NextDueCard(ctx, userID, category)
	if err != nil || lw == nil {
		return nil, err
	}
	card, err := s.progress.Flashcard(ctx, userID, lw.WordID)
	if err != nil {
		return nil, err
	}
	if card.Context == "" && s.examples != nil {
		example, err := s.examples.ExampleSentence(ctx, card.Finnish, card.English)
		if err != nil {
			slog.Warn("failed to write example sentence", slog.String("word", card.Finnish), slog.String("error", err.Error()))
		} else {
			card.Context = example
		}
	}
	return card, nil
}

// Answer records a review of a word the learner owns
func (s *Service) Answer(ctx context.Context, userID, wordID int64, correct bool) (*models.LearnerWord, error) {
	lw, err := s.owned(ctx, userID, wordID)
	if err != nil {
		return nil, err
	}
	updated := s.rule.RecordAnswer(*lw, correct, s.now())
	if err := s.progress.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// MoveCategory changes the category of an owned word. Leaving learning tops the pool up.
func (s *Service) MoveCategory(ctx context.Context, userID, wordID int64, category models.Category) error {
	if !category.Valid() {
		return apperrors.InvalidInput("unknown category %q", category)
	}
	lw, err := s.owned(ctx, userID, wordID)
	if err != nil {
		return err
	}
	previous := lw.Category
	lw.Category = category
	if err := s.progress.Update(ctx, lw); err != nil {
		return err
	}
	if previous == models.CategoryLearning && category != models.CategoryLearning {
		if _, err := s.TopUp(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to top up learning words")
		}
	}
	return nil
}

// AddWord puts a catalog word into the learner's learning category
func (s *Service) AddWord(ctx context.Context, userID, wordID int64) error {
	if _, err := s.words.GetByID(ctx, wordID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("word", wordID)
		}
		return err
	}
	exists, err := s.progress.Exists(ctx, userID, wordID)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.InvalidInput("word already in your collection")
	}
	_, err = s.progress.AddMany(ctx, userID, []int64{wordID}, models.CategoryLearning)
	return err
}

// TopUp refills the learning category toward PoolFloor and returns the number of words added
func (s *Service) TopUp(ctx context.Context, userID int64) (int, error) {
	count, err := s.progress.CountByCategory(ctx, userID, models.CategoryLearning)
	if err != nil {
		return 0, err
	}
	if count >= PoolFloor {
		return 0, nil
	}
	want := PoolFloor - count
	if want > TopUpBatch {
		want = TopUpBatch
	}

	recent, err := s.progress.RecentWords(ctx, userID, RecentWindow)
	if err != nil {
		return 0, err
	}
	level, difficulty := TargetComplexity(recent)
	minDifficulty, maxDifficulty := DifficultyWindow(difficulty)

	owned, err := s.progress.OwnedWordIDs(ctx, userID)
	if err != nil {
		return 0, err
	}
	candidates, err := s.words.FindForPool(ctx, database.WordFilter{
		Level:         level,
		MinDifficulty: minDifficulty,
		MaxDifficulty: maxDifficulty,
		ExcludeIDs:    owned,
		Limit:         want,
	})
	if err != nil {
		return 0, err
	}

	added, err := s.progress.AddMany(ctx, userID, wordIDs(candidates), models.CategoryLearning)
	if err != nil {
		return 0, err
	}
	slog.Debug("topped up learning words",
		slog.Int64("user", userID), slog.String("level", string(level)),
		slog.Int("difficulty", difficulty), slog.Int("added", added))
	return added, nil
}

// SeedNewLearner gives a new learner the most common A1 words
func (s *Service) SeedNewLearner(ctx context.Context, userID int64) (int, error) {
	words, err := s.words.MostCommon(ctx, models.A1, SeedSize)
	if err != nil {
		return 0, err
	}
	return s.progress.AddMany(ctx, userID, wordIDs(words), models.CategoryLearning)
}

// Stats counts the learner's words per category
func (s *Service) Stats(ctx context.Context, userID int64) (models.FlashcardStats, error) {
	return s.progress.Stats(ctx, userID)
}

// DueCount counts the learning words due now
func (s *Service) DueCount(ctx context.Context, userID int64) (int, error) {
	return s.progress.CountDue(ctx, userID, models.CategoryLearning, s.now())
}

func (s *Service) owned(ctx context.Context, userID, wordID int64) (*models.LearnerWord, error) {
	lw, err := s.progress.Get(ctx, userID, wordID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("word in collection", wordID)
		}
		return nil, err
	}
	return lw, nil
}

func wordIDs(words []models.Word) []int64 {
	ids := make([]int64, 0, len(words))
	for _, w := range words {
		ids = append(ids, w.ID)
	}
	return ids
}
