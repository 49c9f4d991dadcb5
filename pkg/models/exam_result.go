package models

import (
	"encoding/json"
	"math"
	"time"
)

// ExamTypeMockCEFR is the only exam type produced by the exam service
const ExamTypeMockCEFR = "mock_cefr"

// PassPercentage is the minimum percentage of a passed exam
const PassPercentage = 70

// SectionScore is the points earned and available in one exam section
type SectionScore struct {
	Score    int `json:"score"`
	MaxScore int `json:"maxScore"`
}

// ExamResult is a persisted, graded exam attempt
type ExamResult struct {
	ID               int64     `json:"id" db:"id"`
	UserID           int64     `json:"user_id" db:"user_id"`
	ExamType         string    `json:"exam_type" db:"exam_type"`
	TargetLevel      Level     `json:"target_level" db:"target_level"`
	Score            int       `json:"score" db:"score"`
	MaxScore         int       `json:"max_score" db:"max_score"`
	QuestionsCorrect int       `json:"questions_correct" db:"questions_correct"`
	TotalQuestions   int       `json:"total_questions" db:"total_questions"`
	TimeSpentMinutes int       `json:"time_spent_minutes" db:"time_spent_minutes"`
	Sections         string    `json:"-" db:"sections"` // JSON object of section name to SectionScore
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// Percentage is the rounded share of points earned, 0 when nothing was scorable
func (r ExamResult) Percentage() int {
	if r.MaxScore <= 0 {
		return 0
	}
	return int(math.Round(float64(r.Score) / float64(r.MaxScore) * 100))
}

// Passed reports whether the attempt reached PassPercentage
func (r ExamResult) Passed() bool {
	return r.Percentage() >= PassPercentage
}

// SectionScores decodes Sections. A malformed column yields an empty map.
func (r ExamResult) SectionScores() map[string]SectionScore {
	scores := make(map[string]SectionScore)
	if r.Sections == "" {
		return scores
	}
	if err := json.Unmarshal([]byte(r.Sections), &scores); err != nil {
		return make(map[string]SectionScore)
	}
	return scores
}

// MarshalJSON adds the derived fields to the stored ones
func (r ExamResult) MarshalJSON() ([]byte, error) {
	type plain ExamResult
	return json.Marshal(struct {
		plain
		Percentage    int                     `json:"percentage"`
		Passed        bool                    `json:"passed"`
		SectionScores map[string]SectionScore `json:"section_scores"`
	}{plain(r), r.Percentage(), r.Passed(), r.SectionScores()})
}
