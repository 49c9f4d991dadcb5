package exam

import (
	"fmt"
	"strconv"

	"github.com/example/terve/internal/random"
	"github.com/example/terve/pkg/models"
	"github.com/google/uuid"
)

// Generator builds mock exams from the level tables
type Generator struct {
	rnd   random.Source
	newID func() string
}

// NewGenerator creates a generator. A nil source uses the shared default.
func NewGenerator(rnd random.Source) *Generator {
	if rnd == nil {
		rnd = random.Default()
	}
	return &Generator{rnd: rnd, newID: uuid.NewString}
}

// Generate builds an exam for the target level. Unknown levels use the A1 pools
// and the default time limit.
func (g *Generator) Generate(level models.Level) *Instance {
	questions := make([]Question, 0, QuestionCount)
	questions = append(questions, g.grammar(level, sectionSizes[Grammar])...)
	questions = append(questions, g.vocabulary(level, sectionSizes[Vocabulary])...)
	questions = append(questions, g.reading(level, sectionSizes[Reading])...)
	questions = append(questions, g.listening(level, sectionSizes[Listening])...)

	// IDs follow section order
	for i := range questions {
		questions[i].ID = i + 1
	}

	return &Instance{
		ID:          g.newID(),
		TargetLevel: level,
		Questions:   questions,
		TimeLimit:   TimeLimitFor(level),
		Sections:    append([]Section(nil), Sections...),
	}
}

// grammar cycles through the level's topics
func (g *Generator) grammar(level models.Level, count int) []Question {
	topics := topicsFor(level)
	out := make([]Question, 0, count)
	for i := 0; i < count; i++ {
		tpl := grammarTemplateFor(topics[i%len(topics)])
		out = append(out, tpl.question(Grammar, level))
	}
	return out
}

func (g *Generator) vocabulary(level models.Level, count int) []Question {
	out := make([]Question, 0, count)
	for i := 0; i < count; i++ {
		tpl := vocabularyTemplates[g.rnd.Intn(len(vocabularyTemplates))]
		out = append(out, tpl.question(Vocabulary, level))
	}
	return out
}

// reading walks the level's passages round robin, asking the next question of each passage per round
func (g *Generator) reading(level models.Level, count int) []Question {
	passages := passagesFor(level)
	out := make([]Question, 0, count)
	for i := 0; i < count; i++ {
		p := passages[i%len(passages)]
		templates := p.readingQuestions()
		q := templates[(i/len(passages))%len(templates)].question(Reading, level)
		q.Passage = p.Title + "\n\n" + p.Text
		out = append(out, q)
	}
	return out
}

// listening has no audio yet; the prompts reference numbered recordings
func (g *Generator) listening(level models.Level, count int) []Question {
	out := make([]Question, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, Question{
			Type:          MultipleChoice,
			Section:       Listening,
			Difficulty:    level,
			Prompt:        fmt.Sprintf("Kuuntele äänitiedosto %d ja vastaa: Mistä puhuja keskustelee?", i+1),
			Options:       []string{"Työstä", "Perheestä", "Matkustamisesta", "Ruoasta"},
			CorrectAnswer: strconv.Itoa(i % 4),
			Explanation:   "Kuuntele tarkasti avainsanoja.",
			Points:        2,
		})
	}
	return out
}

func (t questionTemplate) question(section Section, level models.Level) Question {
	return Question{
		Type:          t.Type,
		Section:       section,
		Difficulty:    level,
		Prompt:        t.Prompt,
		Options:       append([]string(nil), t.Options...),
		CorrectAnswer: t.CorrectAnswer,
		Explanation:   t.Explanation,
		Points:        t.Points,
	}
}
