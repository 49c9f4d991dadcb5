package exam

import (
	"time"

	"github.com/example/terve/pkg/models"
)

// QuestionType determines how an answer is graded
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	FillBlank      QuestionType = "fill_blank"
	Matching       QuestionType = "matching"
	TrueFalse      QuestionType = "true_false"
)

// Section is one of the four parts of a mock exam
type Section string

const (
	Grammar    Section = "grammar"
	Vocabulary Section = "vocabulary"
	Reading    Section = "reading"
	Listening  Section = "listening"
)

// Sections lists the sections in exam order
var Sections = []Section{Grammar, Vocabulary, Reading, Listening}

// SectionWeights is the nominal share of each section. Scores are not weighted by it.
var SectionWeights = map[Section]float64{
	Grammar:    0.3,
	Vocabulary: 0.25,
	Reading:    0.25,
	Listening:  0.2,
}

// sectionSizes is the number of questions generated per section
var sectionSizes = map[Section]int{
	Grammar:    15,
	Vocabulary: 12,
	Reading:    12,
	Listening:  10,
}

// QuestionCount is the total number of questions of every exam
const QuestionCount = 49

// Question is a single exam question. CorrectAnswer holds the option index for
// multiple choice, "true" or "false" for true/false and the expected text otherwise.
type Question struct {
	ID            int          `json:"id"`
	Type          QuestionType `json:"type"`
	Section       Section      `json:"section"`
	Difficulty    models.Level `json:"difficulty"`
	Passage       string       `json:"passage,omitempty"`
	Prompt        string       `json:"question"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer"`
	Explanation   string       `json:"explanation"`
	Points        int          `json:"points"`
}

// PublicQuestion is a question as shown to the learner, without its answer
type PublicQuestion struct {
	ID         int          `json:"id"`
	Type       QuestionType `json:"type"`
	Section    Section      `json:"section"`
	Difficulty models.Level `json:"difficulty"`
	Passage    string       `json:"passage,omitempty"`
	Prompt     string       `json:"question"`
	Options    []string     `json:"options,omitempty"`
	Points     int          `json:"points"`
}

// Public strips the answer and explanation
func (q Question) Public() PublicQuestion {
	return PublicQuestion{
		ID:         q.ID,
		Type:       q.Type,
		Section:    q.Section,
		Difficulty: q.Difficulty,
		Passage:    q.Passage,
		Prompt:     q.Prompt,
		Options:    q.Options,
		Points:     q.Points,
	}
}

// Instance is a generated exam
type Instance struct {
	ID          string       `json:"id"`
	TargetLevel models.Level `json:"target_level"`
	Questions   []Question   `json:"questions"`
	TimeLimit   int          `json:"time_limit"` // minutes
	Sections    []Section    `json:"sections"`
}

// TimeLimitDuration returns the time limit as a duration
func (i *Instance) TimeLimitDuration() time.Duration {
	return time.Duration(i.TimeLimit) * time.Minute
}

// PublicQuestions returns every question without answers
func (i *Instance) PublicQuestions() []PublicQuestion {
	out := make([]PublicQuestion, 0, len(i.Questions))
	for _, q := range i.Questions {
		out = append(out, q.Public())
	}
	return out
}

// MaxScore sums the points of all questions
func (i *Instance) MaxScore() int {
	total := 0
	for _, q := range i.Questions {
		total += q.Points
	}
	return total
}
