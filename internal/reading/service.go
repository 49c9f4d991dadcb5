package reading

import (
	"context"
	"log/slog"

	"github.com/example/terve/internal/random"
	"github.com/example/terve/pkg/models"
)

// VocabularyLimit is the most catalog words suggested per story
const VocabularyLimit = 10

// WordFinder looks up catalog words a learner does not own yet
type WordFinder interface {
	FindUnownedByFinnish(ctx context.Context, userID int64, forms []string, limit int) ([]models.Word, error)
}

// Service generates stories for learners
type Service struct {
	gen   *Generator
	words WordFinder
}

// Option customizes a Service
type Option func(*Service)

// WithRandom replaces the random source of the generator
func WithRandom(rnd random.Source) Option {
	return func(s *Service) { s.gen = NewGenerator(rnd) }
}

// NewService creates a reading service
func NewService(words WordFinder, opts ...Option) *Service {
	s := &Service{gen: NewGenerator(nil), words: words}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reading is a story with the new words it contains
type Reading struct {
	Story      *Story        `json:"story"`
	Vocabulary []models.Word `json:"vocabulary"`
}

// Generate builds a story at the learner's level. An empty length uses the learner's preference.
func (s *Service) Generate(ctx context.Context, user *models.User, length string, keywords []string) (*Reading, error) {
	fallback := user.PreferredStoryLength
	if fallback == "" {
		fallback = models.StoryMedium
	}
	storyLength, err := ParseLength(length, fallback)
	if err != nil {
		return nil, err
	}
	if err := ValidateKeywords(keywords); err != nil {
		return nil, err
	}

	story, err := s.gen.Generate(Request{Level: user.CEFRLevel, Length: storyLength, Keywords: keywords})
	if err != nil {
		return nil, err
	}

	vocabulary, err := s.Vocabulary(ctx, user.ID, story.Content)
	if err != nil {
		return nil, err
	}

	slog.Debug("story generated", "user", user.ID, "story", story.ID, "words", story.WordCount)
	return &Reading{Story: story, Vocabulary: vocabulary}, nil
}

// Vocabulary returns catalog words found in content that the learner does not own
func (s *Service) Vocabulary(ctx context.Context, userID int64, content string) ([]models.Word, error) {
	words, err := s.words.FindUnownedByFinnish(ctx, userID, ExtractVocabulary(content), VocabularyLimit)
	if err != nil {
		return nil, err
	}
	if words == nil {
		words = []models.Word{}
	}
	return words, nil
}
