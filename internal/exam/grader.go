package exam

import (
	"math"
	"strconv"
	"strings"

	"github.com/example/terve/pkg/models"
)

// Feedback reports how one question was answered
type Feedback struct {
	QuestionID     int    `json:"questionId"`
	Correct        bool   `json:"correct"`
	SubmittedValue string `json:"submittedValue"`
	CorrectAnswer  string `json:"correctAnswer"`
	Explanation    string `json:"explanation"`
}

// GradedResult is the outcome of grading an exam
type GradedResult struct {
	Score            int                             `json:"score"`
	MaxScore         int                             `json:"maxScore"`
	QuestionsCorrect int                             `json:"questionsCorrect"`
	TotalQuestions   int                             `json:"totalQuestions"`
	SectionScores    map[Section]models.SectionScore `json:"sectionScores"`
	Feedback         []Feedback                      `json:"feedback"`
}

// Percentage is the rounded share of points earned
func (r GradedResult) Percentage() int {
	if r.MaxScore <= 0 {
		return 0
	}
	return int(math.Round(float64(r.Score) / float64(r.MaxScore) * 100))
}

// Passed reports whether the percentage reaches the pass mark
func (r GradedResult) Passed() bool {
	return r.Percentage() >= models.PassPercentage
}

// Grade scores answers keyed by question ID. Unanswered questions are incorrect.
func Grade(inst *Instance, answers map[int]string) GradedResult {
	result := GradedResult{
		TotalQuestions: len(inst.Questions),
		SectionScores:  make(map[Section]models.SectionScore),
		Feedback:       make([]Feedback, 0, len(inst.Questions)),
	}

	for _, q := range inst.Questions {
		submitted, answered := answers[q.ID]
		correct := answered && IsCorrect(q, submitted)

		section := result.SectionScores[q.Section]
		section.MaxScore += q.Points
		result.MaxScore += q.Points
		if correct {
			section.Score += q.Points
			result.Score += q.Points
			result.QuestionsCorrect++
		}
		result.SectionScores[q.Section] = section

		result.Feedback = append(result.Feedback, Feedback{
			QuestionID:     q.ID,
			Correct:        correct,
			SubmittedValue: submitted,
			CorrectAnswer:  q.CorrectAnswer,
			Explanation:    q.Explanation,
		})
	}

	return result
}

// IsCorrect checks one submitted value against a question
func IsCorrect(q Question, submitted string) bool {
	switch q.Type {
	case MultipleChoice:
		got, err := strconv.Atoi(strings.TrimSpace(submitted))
		if err != nil {
			return false
		}
		want, err := strconv.Atoi(q.CorrectAnswer)
		return err == nil && got == want
	case TrueFalse:
		got, err := strconv.ParseBool(strings.TrimSpace(submitted))
		if err != nil {
			return false
		}
		want, err := strconv.ParseBool(q.CorrectAnswer)
		return err == nil && got == want
	case FillBlank:
		return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(q.CorrectAnswer))
	default:
		return false
	}
}

// sectionScoreMap converts section keys for storage
func (r GradedResult) sectionScoreMap() map[string]models.SectionScore {
	out := make(map[string]models.SectionScore, len(r.SectionScores))
	for section, score := range r.SectionScores {
		out[string(section)] = score
	}
	return out
}
