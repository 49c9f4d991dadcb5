package reading

import (
	"math"
	"strconv"
	"strings"

	"github.com/example/terve/pkg/models"
)

// QuestionType of a comprehension question
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	OpenEnded      QuestionType = "open_ended"
)

// Question checks understanding of a story. Open ended questions carry a sample answer instead of a key.
type Question struct {
	ID            int          `json:"id"`
	Type          QuestionType `json:"type"`
	Prompt        string       `json:"question"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"-"`
	Explanation   string       `json:"explanation,omitempty"`
	SampleAnswer  string       `json:"sampleAnswer,omitempty"`
}

// ComprehensionQuestions returns the questions for a story
func (s *Story) ComprehensionQuestions() []Question {
	return ComprehensionQuestionsFor(s.Level)
}

// ComprehensionQuestionsFor returns the questions asked about a story of the level.
// A1 and A2 get a true/false question, the other levels an open ended one.
func ComprehensionQuestionsFor(level models.Level) []Question {
	questions := []Question{{
		ID:            1,
		Type:          MultipleChoice,
		Prompt:        "Mikä on tarinan pääajatus?",
		Options:       []string{"Henkilökohtainen kasvu", "Matkailu", "Perhe", "Työ"},
		CorrectAnswer: "0",
		Explanation:   "Tarina keskittyy päähenkilön henkilökohtaiseen kasvuun ja oppimiseen.",
	}}

	switch level.OrDefault() {
	case models.A1, models.A2:
		questions = append(questions, Question{
			ID:            2,
			Type:          TrueFalse,
			Prompt:        "Päähenkilö oli tyytyväinen tilanteeseen.",
			Options:       []string{"true", "false"},
			CorrectAnswer: "true",
			Explanation:   "Tekstistä käy ilmi, että päähenkilö oli tyytyväinen.",
		})
	default:
		questions = append(questions, Question{
			ID:           2,
			Type:         OpenEnded,
			Prompt:       "Analysoi päähenkilön motivaatioita ja päätöksentekoa.",
			SampleAnswer: "Päähenkilön toiminta perustui syvälliseen pohdintaan ja henkilökohtaisiin arvoihin.",
		})
	}
	return questions
}

// ComprehensionFeedback reports one answered question
type ComprehensionFeedback struct {
	QuestionID   int    `json:"question"`
	Correct      bool   `json:"correct"`
	Graded       bool   `json:"graded"`
	Explanation  string `json:"explanation,omitempty"`
	SampleAnswer string `json:"sampleAnswer,omitempty"`
}

// ComprehensionResult is the outcome of a comprehension check
type ComprehensionResult struct {
	Score    int                     `json:"score"` // percentage
	Correct  int                     `json:"correct"`
	Total    int                     `json:"total"`
	Feedback []ComprehensionFeedback `json:"feedback"`
}

// CheckComprehension grades answers keyed by question ID. Open ended questions
// count toward the total but are never marked correct.
func CheckComprehension(level models.Level, answers map[int]string) ComprehensionResult {
	questions := ComprehensionQuestionsFor(level)
	result := ComprehensionResult{
		Total:    len(questions),
		Feedback: make([]ComprehensionFeedback, 0, len(questions)),
	}
	for _, q := range questions {
		fb := ComprehensionFeedback{QuestionID: q.ID, Explanation: q.Explanation, SampleAnswer: q.SampleAnswer}
		if q.Type != OpenEnded {
			fb.Graded = true
			fb.Correct = answerMatches(q, answers[q.ID])
		}
		if fb.Correct {
			result.Correct++
		}
		result.Feedback = append(result.Feedback, fb)
	}
	if result.Total > 0 {
		result.Score = int(math.Round(float64(result.Correct) / float64(result.Total) * 100))
	}
	return result
}

func answerMatches(q Question, submitted string) bool {
	submitted = strings.TrimSpace(submitted)
	switch q.Type {
	case MultipleChoice:
		got, err := strconv.Atoi(submitted)
		return err == nil && strconv.Itoa(got) == q.CorrectAnswer
	case TrueFalse:
		got, err := strconv.ParseBool(submitted)
		return err == nil && strconv.FormatBool(got) == q.CorrectAnswer
	default:
		return false
	}
}
