package drills

import (
	"context"
	"database/sql"

	apperrors "github.com/example/terve/internal/errors"
	"github.com/example/terve/internal/random"
	"github.com/example/terve/pkg/models"
	"github.com/pkg/errors"
)

// NounStore reads the noun catalog
type NounStore interface {
	GetByID(ctx context.Context, id int64) (*models.Noun, error)
	IDsAtLevels(ctx context.Context, levels []models.Level) ([]int64, error)
}

// VerbStore reads the verb catalog
type VerbStore interface {
	GetByID(ctx context.Context, id int64) (*models.Verb, error)
	IDsAtLevels(ctx context.Context, levels []models.Level) ([]int64, error)
}

// Service picks drill items at or below a learner's level and checks answers
type Service struct {
	nouns NounStore
	verbs VerbStore
	rnd   random.Source
}

// NewService creates a drill service. A nil source uses the shared default.
func NewService(nouns NounStore, verbs VerbStore, rnd random.Source) *Service {
	if rnd == nil {
		rnd = random.Default()
	}
	return &Service{nouns: nouns, verbs: verbs, rnd: rnd}
}

// NounPractice picks a noun and builds an exercise. Case and number may be "random".
func (s *Service) NounPractice(ctx context.Context, level models.Level, caseName, number string) (*NounExercise, error) {
	c, err := ParseCase(caseName, s.rnd)
	if err != nil {
		return nil, err
	}
	num, err := ParseNumber(number, s.rnd)
	if err != nil {
		return nil, err
	}

	ids, err := s.nouns.IDsAtLevels(ctx, models.LevelsUpTo(level))
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, apperrors.NotFound("noun at level", level)
	}
	noun, err := s.nouns.GetByID(ctx, ids[s.rnd.Intn(len(ids))])
	if err != nil {
		return nil, err
	}

	exercise := NewNounExercise(noun, c, num)
	return &exercise, nil
}

// CheckNoun grades a declension answer. Case and number must be explicit.
func (s *Service) CheckNoun(ctx context.Context, nounID int64, caseName, number, answer string) (*CheckResult, error) {
	c, num, err := explicitCase(caseName, number)
	if err != nil {
		return nil, err
	}
	noun, err := s.nouns.GetByID(ctx, nounID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("noun", nounID)
		}
		return nil, err
	}
	result := CheckDeclension(noun, c, num, answer)
	return &result, nil
}

// VerbPractice picks a verb and builds an exercise. Tense defaults to present; person may be "random".
func (s *Service) VerbPractice(ctx context.Context, level models.Level, tense, person string) (*VerbExercise, error) {
	t, err := ParseTense(tense, s.rnd)
	if err != nil {
		return nil, err
	}
	p, err := ParsePerson(person, s.rnd)
	if err != nil {
		return nil, err
	}

	ids, err := s.verbs.IDsAtLevels(ctx, models.LevelsUpTo(level))
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, apperrors.NotFound("verb at level", level)
	}
	verb, err := s.verbs.GetByID(ctx, ids[s.rnd.Intn(len(ids))])
	if err != nil {
		return nil, err
	}

	exercise := NewVerbExercise(verb, t, p)
	return &exercise, nil
}

// CheckVerb grades a conjugation answer. Tense and person must be explicit.
func (s *Service) CheckVerb(ctx context.Context, verbID int64, tense, person, answer string) (*CheckResult, error) {
	t, p, err := explicitTense(tense, person)
	if err != nil {
		return nil, err
	}
	verb, err := s.verbs.GetByID(ctx, verbID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("verb", verbID)
		}
		return nil, err
	}
	result := CheckConjugation(verb, t, p, answer)
	return &result, nil
}

// explicitCase rejects random and empty values, which would make a check meaningless
func explicitCase(caseName, number string) (Case, Number, error) {
	caseName, number = normalize(caseName), normalize(number)
	if caseName == "" || caseName == Random || number == "" || number == Random {
		return "", "", apperrors.InvalidInput("case and number are required")
	}
	c, err := ParseCase(caseName, nil)
	if err != nil {
		return "", "", err
	}
	num, err := ParseNumber(number, nil)
	if err != nil {
		return "", "", err
	}
	return c, num, nil
}

func explicitTense(tense, person string) (Tense, Person, error) {
	tense, person = normalize(tense), normalize(person)
	if tense == "" || tense == Random || person == "" || person == Random {
		return "", "", apperrors.InvalidInput("tense and person are required")
	}
	t, err := ParseTense(tense, nil)
	if err != nil {
		return "", "", err
	}
	p, err := ParsePerson(person, nil)
	if err != nil {
		return "", "", err
	}
	return t, p, nil
}
