package spaced_repetition

import (
	"math"
	"time"

	"github.com/example/terve/internal/random"
	"github.com/example/terve/pkg/models"
)

// Rule maps a word's mastery rate to the wait before its next review
type Rule struct {
	// Mastery rate above which the long interval applies
	HighThreshold float64
	// Mastery rate above which the medium interval applies
	MediumThreshold float64
	HighInterval    time.Duration
	MediumInterval  time.Duration
	LowInterval     time.Duration
}

// NewRule returns the rule with the default tiers: >0.8 waits a day, >0.6 half a day, otherwise four hours
func NewRule() *Rule {
	return &Rule{
		HighThreshold:   0.8,
		MediumThreshold: 0.6,
		HighInterval:    24 * time.Hour,
		MediumInterval:  12 * time.Hour,
		LowInterval:     4 * time.Hour,
	}
}

// Interval returns the wait for a mastery rate. Thresholds are exclusive.
func (r *Rule) Interval(masteryRate float64) time.Duration {
	switch {
	case masteryRate > r.HighThreshold:
		return r.HighInterval
	case masteryRate > r.MediumThreshold:
		return r.MediumInterval
	default:
		return r.LowInterval
	}
}

// RecordAnswer applies one review outcome at now and returns the updated record
func (r *Rule) RecordAnswer(lw models.LearnerWord, correct bool, now time.Time) models.LearnerWord {
	lw.ReviewCount++
	if correct {
		lw.CorrectCount++
	}
	reviewed := now
	next := now.Add(r.Interval(lw.MasteryRate()))
	lw.LastReviewedAt = &reviewed
	lw.NextReviewAt = &next
	return lw
}

// PickDue chooses uniformly among the records of category that are due at now.
// ok is false when nothing is eligible.
func PickDue(records []models.LearnerWord, category models.Category, now time.Time, rnd random.Source) (models.LearnerWord, bool) {
	var eligible []models.LearnerWord
	for _, lw := range records {
		if lw.Category == category && lw.IsDue(now) {
			eligible = append(eligible, lw)
		}
	}
	if len(eligible) == 0 {
		return models.LearnerWord{}, false
	}
	return eligible[rnd.Intn(len(eligible))], true
}

// TargetComplexity derives the level and difficulty new pool words should have from the
// learner's recently added words: the most frequent level and the rounded mean difficulty.
// Ties between levels go to the easier one. No recent words yields A1 and difficulty 1.
func TargetComplexity(recent []models.Word) (models.Level, int) {
	if len(recent) == 0 {
		return models.DefaultLevel, models.MinDifficulty
	}

	counts := make(map[models.Level]int)
	total := 0
	for _, w := range recent {
		counts[w.CEFRLevel]++
		total += w.Difficulty
	}

	level := models.DefaultLevel
	best := 0
	for _, l := range models.Levels {
		if counts[l] > best {
			level, best = l, counts[l]
		}
	}

	difficulty := int(math.Round(float64(total) / float64(len(recent))))
	return level, clampDifficulty(difficulty)
}

// DifficultyWindow returns the inclusive difficulty range around d, clamped to the catalog scale
func DifficultyWindow(d int) (int, int) {
	return clampDifficulty(d - 1), clampDifficulty(d + 1)
}

func clampDifficulty(d int) int {
	if d < models.MinDifficulty {
		return models.MinDifficulty
	}
	if d > models.MaxDifficulty {
		return models.MaxDifficulty
	}
	return d
}
