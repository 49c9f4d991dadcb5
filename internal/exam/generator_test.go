package exam

import (
	"strconv"
	"testing"

	"github.com/example/terve/internal/random"
	"github.com/example/terve/pkg/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionOf(t *testing.T, inst *Instance, section Section) []Question {
	t.Helper()
	var out []Question
	for _, q := range inst.Questions {
		if q.Section == section {
			out = append(out, q)
		}
	}
	return out
}

func TestGenerateLayout(t *testing.T) {
	inst := NewGenerator(random.Seeded(1)).Generate(models.B1)

	require.Len(t, inst.Questions, QuestionCount)
	_, err := uuid.Parse(inst.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.B1, inst.TargetLevel)
	assert.Equal(t, 75, inst.TimeLimit)
	assert.Equal(t, Sections, inst.Sections)

	wantSections := make([]Section, 0, QuestionCount)
	for _, s := range Sections {
		for i := 0; i < sectionSizes[s]; i++ {
			wantSections = append(wantSections, s)
		}
	}
	for i, q := range inst.Questions {
		assert.Equal(t, i+1, q.ID)
		assert.Equal(t, wantSections[i], q.Section, "question %d", q.ID)
		assert.Equal(t, models.B1, q.Difficulty)
		assert.NotEmpty(t, q.Prompt)
		assert.Positive(t, q.Points)
	}
}

func TestGenerateTimeLimits(t *testing.T) {
	gen := NewGenerator(random.Seeded(1))
	want := map[models.Level]int{
		models.A1: 45, models.A2: 60, models.B1: 75,
		models.B2: 90, models.C1: 105, models.C2: 120,
		models.Level("Z9"): 60,
	}
	for level, limit := range want {
		assert.Equal(t, limit, gen.Generate(level).TimeLimit, string(level))
	}
}

func TestGenerateUnknownLevelUsesDefaultPools(t *testing.T) {
	gen := NewGenerator(random.Seeded(1))
	unknown := gen.Generate(models.Level("Z9"))
	a1 := gen.Generate(models.A1)

	for i, q := range sectionOf(t, unknown, Grammar) {
		assert.Equal(t, sectionOf(t, a1, Grammar)[i].Prompt, q.Prompt)
	}
	reading := sectionOf(t, unknown, Reading)
	assert.Contains(t, reading[0].Passage, "Esittely")
}

func TestGrammarCyclesTopicsWithFallback(t *testing.T) {
	inst := NewGenerator(random.Seeded(1)).Generate(models.C2)
	grammar := sectionOf(t, inst, Grammar)

	// archaic_forms has no template of its own
	fallback := grammarTemplates[defaultGrammarTopic].Prompt
	assert.Equal(t, fallback, grammar[0].Prompt)
	assert.Equal(t, grammarTemplates["dialectal_features"].Prompt, grammar[1].Prompt)
	assert.Equal(t, grammarTemplates["literary_language"].Prompt, grammar[2].Prompt)
	assert.Equal(t, fallback, grammar[3].Prompt)
}

func TestVocabularyUsesInjectedRandom(t *testing.T) {
	inst := NewGenerator(random.NewSequence(1)).Generate(models.A2)
	for _, q := range sectionOf(t, inst, Vocabulary) {
		assert.Equal(t, vocabularyTemplates[1].Prompt, q.Prompt)
		assert.Equal(t, 1, q.Points)
	}
}

func TestReadingCyclesPassageQuestions(t *testing.T) {
	inst := NewGenerator(random.Seeded(1)).Generate(models.A1)
	reading := sectionOf(t, inst, Reading)
	require.Len(t, reading, 12)

	templates := readingPassages[models.A1][0].readingQuestions()
	for i, q := range reading {
		assert.Equal(t, templates[i%len(templates)].Prompt, q.Prompt)
		assert.Contains(t, q.Passage, "Minun nimeni on Anna")
	}
	assert.Equal(t, MultipleChoice, reading[0].Type)
	assert.Equal(t, 3, reading[0].Points)
	assert.Equal(t, TrueFalse, reading[1].Type)
	assert.Equal(t, 2, reading[1].Points)
}

func TestListeningAnswersRotate(t *testing.T) {
	inst := NewGenerator(random.Seeded(1)).Generate(models.A1)
	listening := sectionOf(t, inst, Listening)
	require.Len(t, listening, 10)
	for i, q := range listening {
		assert.Equal(t, strconv.Itoa(i%4), q.CorrectAnswer)
		assert.Equal(t, 2, q.Points)
		assert.Len(t, q.Options, 4)
	}
}

func TestGeneratedQuestionsDoNotShareTemplateOptions(t *testing.T) {
	inst := NewGenerator(random.Seeded(1)).Generate(models.A1)
	inst.Questions[0].Options[0] = "changed"
	assert.Equal(t, "on", grammarTemplates["present_tense"].Options[0])
}

func TestPublicQuestionsHideAnswers(t *testing.T) {
	inst := NewGenerator(random.Seeded(1)).Generate(models.A1)
	public := inst.PublicQuestions()
	require.Len(t, public, QuestionCount)
	assert.Equal(t, inst.Questions[0].Prompt, public[0].Prompt)
	assert.Equal(t, inst.Questions[0].Options, public[0].Options)
}

func TestLevelInfoFor(t *testing.T) {
	info := LevelInfoFor(models.B2)
	assert.Equal(t, "Upper Intermediate", info.Name)
	assert.Equal(t, 90, info.TimeLimit)

	fallback := LevelInfoFor(models.Level("nope"))
	assert.Equal(t, models.A1, fallback.Level)
	assert.Equal(t, "Beginner", fallback.Name)

	fallback.Skills[0] = "changed"
	assert.NotEqual(t, "changed", LevelInfoFor(models.A1).Skills[0])
	assert.Len(t, AllLevelInfo(), len(models.Levels))
}
