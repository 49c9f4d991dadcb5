package exam

import (
	"testing"

	"github.com/example/terve/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCorrect(t *testing.T) {
	mc := Question{Type: MultipleChoice, CorrectAnswer: "2"}
	tf := Question{Type: TrueFalse, CorrectAnswer: "false"}
	fill := Question{Type: FillBlank, CorrectAnswer: "Seitsemän"}
	matching := Question{Type: Matching, CorrectAnswer: "a-1"}

	tests := []struct {
		name      string
		question  Question
		submitted string
		want      bool
	}{
		{"choice index", mc, "2", true},
		{"choice index with spaces", mc, " 2 ", true},
		{"wrong choice", mc, "1", false},
		{"choice not a number", mc, "kaksi", false},
		{"boolean", tf, "false", true},
		{"boolean other spelling", tf, "F", true},
		{"wrong boolean", tf, "true", false},
		{"boolean garbage", tf, "maybe", false},
		{"fill blank folds case", fill, "  SEITSEMÄN ", true},
		{"fill blank mismatch", fill, "kuusi", false},
		{"matching never graded", matching, "a-1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCorrect(tt.question, tt.submitted))
		})
	}
}

func TestGrade(t *testing.T) {
	inst := &Instance{Questions: []Question{
		{ID: 1, Type: MultipleChoice, Section: Grammar, CorrectAnswer: "0", Points: 2, Explanation: "e1"},
		{ID: 2, Type: FillBlank, Section: Grammar, CorrectAnswer: "talo", Points: 2},
		{ID: 3, Type: TrueFalse, Section: Reading, CorrectAnswer: "true", Points: 2},
		{ID: 4, Type: MultipleChoice, Section: Listening, CorrectAnswer: "3", Points: 2},
	}}

	result := Grade(inst, map[int]string{1: "0", 2: "Talo", 3: "false"})

	assert.Equal(t, 4, result.Score)
	assert.Equal(t, 8, result.MaxScore)
	assert.Equal(t, 2, result.QuestionsCorrect)
	assert.Equal(t, 4, result.TotalQuestions)
	assert.Equal(t, 50, result.Percentage())
	assert.False(t, result.Passed())
	assert.Equal(t, models.SectionScore{Score: 4, MaxScore: 4}, result.SectionScores[Grammar])
	assert.Equal(t, models.SectionScore{Score: 0, MaxScore: 2}, result.SectionScores[Reading])
	assert.Equal(t, models.SectionScore{Score: 0, MaxScore: 2}, result.SectionScores[Listening])

	require.Len(t, result.Feedback, 4)
	assert.Equal(t, Feedback{QuestionID: 1, Correct: true, SubmittedValue: "0", CorrectAnswer: "0", Explanation: "e1"}, result.Feedback[0])
	assert.False(t, result.Feedback[3].Correct)
	assert.Empty(t, result.Feedback[3].SubmittedValue)
}

func TestGradeGeneratedExamWithAnswerKey(t *testing.T) {
	inst := NewGenerator(nil).Generate(models.B1)
	answers := make(map[int]string, len(inst.Questions))
	for _, q := range inst.Questions {
		answers[q.ID] = q.CorrectAnswer
	}

	result := Grade(inst, answers)
	assert.Equal(t, inst.MaxScore(), result.Score)
	assert.Equal(t, QuestionCount, result.QuestionsCorrect)
	assert.Equal(t, 100, result.Percentage())
	assert.True(t, result.Passed())
	assert.Len(t, result.SectionScores, len(Sections))
}

func TestGradeEmptyExam(t *testing.T) {
	result := Grade(&Instance{}, nil)
	assert.Zero(t, result.MaxScore)
	assert.Zero(t, result.Percentage())
}
