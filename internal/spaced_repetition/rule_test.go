package spaced_repetition

import (
	"testing"
	"time"

	"github.com/example/terve/internal/random"
	"github.com/example/terve/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleInterval(t *testing.T) {
	rule := NewRule()
	tests := []struct {
		rate float64
		want time.Duration
	}{
		{0, 4 * time.Hour},
		{0.5, 4 * time.Hour},
		{0.6, 4 * time.Hour},
		{0.61, 12 * time.Hour},
		{0.8, 12 * time.Hour},
		{0.81, 24 * time.Hour},
		{1, 24 * time.Hour},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rule.Interval(tt.rate), "rate %v", tt.rate)
	}
}

func TestRecordAnswer(t *testing.T) {
	rule := NewRule()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		in          models.LearnerWord
		correct     bool
		wantReviews int
		wantCorrect int
		wantRate    float64
		wantWait    time.Duration
	}{
		{"first correct answer", models.LearnerWord{}, true, 1, 1, 1.0, 24 * time.Hour},
		{"first wrong answer", models.LearnerWord{}, false, 1, 0, 0, 4 * time.Hour},
		{"perfect record stays perfect", models.LearnerWord{ReviewCount: 4, CorrectCount: 4}, true, 5, 5, 1.0, 24 * time.Hour},
		{"exactly eighty percent", models.LearnerWord{ReviewCount: 4, CorrectCount: 3}, true, 5, 4, 0.8, 12 * time.Hour},
		{"exactly sixty percent", models.LearnerWord{ReviewCount: 4, CorrectCount: 2}, true, 5, 3, 0.6, 4 * time.Hour},
		{"wrong answer drops below sixty", models.LearnerWord{ReviewCount: 4, CorrectCount: 3}, false, 5, 3, 0.6, 4 * time.Hour},
		{"two thirds", models.LearnerWord{ReviewCount: 2, CorrectCount: 1}, true, 3, 2, 2.0 / 3.0, 12 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lw := rule.RecordAnswer(tt.in, tt.correct, now)
			assert.Equal(t, tt.wantReviews, lw.ReviewCount)
			assert.Equal(t, tt.wantCorrect, lw.CorrectCount)
			assert.InDelta(t, tt.wantRate, lw.MasteryRate(), 1e-9)
			require.NotNil(t, lw.LastReviewedAt)
			assert.True(t, lw.LastReviewedAt.Equal(now))
			require.NotNil(t, lw.NextReviewAt)
			assert.Equal(t, tt.wantWait, lw.NextReviewAt.Sub(now))
		})
	}

	t.Run("does not mutate the input", func(t *testing.T) {
		in := models.LearnerWord{ReviewCount: 2, CorrectCount: 1}
		_ = rule.RecordAnswer(in, true, now)
		assert.Equal(t, 2, in.ReviewCount)
		assert.Nil(t, in.NextReviewAt)
	})
}

func TestCorrectNeverExceedsReviews(t *testing.T) {
	rule := NewRule()
	rnd := random.Seeded(11)
	lw := models.LearnerWord{}
	now := time.Now()
	for i := 0; i < 200; i++ {
		lw = rule.RecordAnswer(lw, rnd.Intn(2) == 1, now)
		assert.LessOrEqual(t, lw.CorrectCount, lw.ReviewCount)
		pct := lw.MasteryPercentage()
		assert.True(t, pct >= 0 && pct <= 100)
	}
}

func TestPickDue(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	records := []models.LearnerWord{
		{WordID: 1, Category: models.CategoryLearning, NextReviewAt: &future},
		{WordID: 2, Category: models.CategoryLearning},
		{WordID: 3, Category: models.CategoryLearning, NextReviewAt: &past},
		{WordID: 4, Category: models.CategoryTodo},
		{WordID: 5, Category: models.CategoryLearning, NextReviewAt: &now},
	}

	picked := map[int64]bool{}
	seq := random.NewSequence(0, 1, 2, 3)
	for i := 0; i < 4; i++ {
		lw, ok := PickDue(records, models.CategoryLearning, now, seq)
		require.True(t, ok)
		picked[lw.WordID] = true
	}
	assert.Equal(t, map[int64]bool{2: true, 3: true, 5: true}, picked)

	lw, ok := PickDue(records, models.CategoryTodo, now, seq)
	require.True(t, ok)
	assert.Equal(t, int64(4), lw.WordID)

	_, ok = PickDue(records, models.CategoryWellKnown, now, seq)
	assert.False(t, ok)
	_, ok = PickDue(nil, models.CategoryLearning, now, seq)
	assert.False(t, ok)
}

func TestTargetComplexity(t *testing.T) {
	word := func(level models.Level, difficulty int) models.Word {
		return models.Word{CEFRLevel: level, Difficulty: difficulty}
	}
	tests := []struct {
		name           string
		recent         []models.Word
		wantLevel      models.Level
		wantDifficulty int
	}{
		{"no history", nil, models.A1, 1},
		{"majority level", []models.Word{word(models.A2, 2), word(models.A2, 3), word(models.B1, 3)}, models.A2, 3},
		{"tie goes to easier level", []models.Word{word(models.B1, 2), word(models.A2, 2)}, models.A2, 2},
		{"half rounds up", []models.Word{word(models.A1, 2), word(models.A1, 3)}, models.A1, 3},
		{"unknown levels fall back", []models.Word{word("X9", 4)}, models.A1, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, difficulty := TargetComplexity(tt.recent)
			assert.Equal(t, tt.wantLevel, level)
			assert.Equal(t, tt.wantDifficulty, difficulty)
		})
	}
}

func TestDifficultyWindow(t *testing.T) {
	lo, hi := DifficultyWindow(1)
	assert.Equal(t, []int{1, 2}, []int{lo, hi})
	lo, hi = DifficultyWindow(3)
	assert.Equal(t, []int{2, 4}, []int{lo, hi})
	lo, hi = DifficultyWindow(5)
	assert.Equal(t, []int{4, 5}, []int{lo, hi})
}
