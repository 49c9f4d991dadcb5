package models

import (
	"math"
	"time"
)

// Category is the learner-chosen bucket of a word
type Category string

const (
	CategoryLearning      Category = "learning"
	CategoryWellKnown     Category = "well_known"
	CategoryTodo          Category = "todo"
	CategoryNotInterested Category = "not_interested"
)

// Categories lists every category in display order
var Categories = []Category{CategoryLearning, CategoryWellKnown, CategoryTodo, CategoryNotInterested}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// LearnerWord tracks a learner's review history for a single catalog word
type LearnerWord struct {
	ID             int64      `json:"id" db:"id"`
	UserID         int64      `json:"user_id" db:"user_id"`
	WordID         int64      `json:"word_id" db:"word_id"`
	Category       Category   `json:"category" db:"category"`
	ReviewCount    int        `json:"review_count" db:"review_count"`
	CorrectCount   int        `json:"correct_count" db:"correct_count"` // Never exceeds ReviewCount
	LastReviewedAt *time.Time `json:"last_reviewed_at" db:"last_reviewed_at"`
	NextReviewAt   *time.Time `json:"next_review_at" db:"next_review_at"` // nil means due immediately
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// MasteryRate is the share of correct answers, 0 before the first review
func (lw LearnerWord) MasteryRate() float64 {
	if lw.ReviewCount == 0 {
		return 0
	}
	return float64(lw.CorrectCount) / float64(lw.ReviewCount)
}

// MasteryPercentage is the mastery rate as a rounded percentage in [0, 100]
func (lw LearnerWord) MasteryPercentage() int {
	pct := int(math.Round(lw.MasteryRate() * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// IsDue reports whether the word may be reviewed at now
func (lw LearnerWord) IsDue(now time.Time) bool {
	return lw.NextReviewAt == nil || !lw.NextReviewAt.After(now)
}

// Flashcard is a learner word joined with its catalog entry, as shown during practice
type Flashcard struct {
	ID                int64    `json:"id" db:"id"`
	WordID            int64    `json:"word_id" db:"word_id"`
	Finnish           string   `json:"finnish" db:"finnish"`
	English           string   `json:"english" db:"english"`
	PartOfSpeech      string   `json:"part_of_speech" db:"part_of_speech"`
	Context           string   `json:"context" db:"context"`
	Category          Category `json:"category" db:"category"`
	MasteryPercentage int      `json:"mastery_percentage" db:"-"`
	ReviewCount       int      `json:"review_count" db:"review_count"`
}
