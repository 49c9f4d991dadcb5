package drills

import (
	"fmt"

	apperrors "github.com/example/terve/internal/errors"
	"github.com/example/terve/internal/random"
	"github.com/example/terve/pkg/models"
)

// Person is a grammatical person by its pronoun
type Person string

const (
	Mina Person = "minä"
	Sina Person = "sinä"
	Han  Person = "hän"
	Me   Person = "me"
	Te   Person = "te"
	He   Person = "he"
)

var Persons = []Person{Mina, Sina, Han, Me, Te, He}

// Tense covers the drilled tenses and the conditional mood
type Tense string

const (
	Present     Tense = "present"
	Past        Tense = "past"
	Conditional Tense = "conditional"
)

var Tenses = []Tense{Present, Past, Conditional}

// ParsePerson parses a pronoun. Random or empty picks one from rnd.
func ParsePerson(s string, rnd random.Source) (Person, error) {
	s = normalize(s)
	if s == "" || s == Random {
		return Persons[rnd.Intn(len(Persons))], nil
	}
	for _, p := range Persons {
		if string(p) == s {
			return p, nil
		}
	}
	return "", apperrors.InvalidInput("unknown person %q", s)
}

// ParseTense parses a tense. Empty means present; random picks one from rnd.
func ParseTense(s string, rnd random.Source) (Tense, error) {
	s = normalize(s)
	switch s {
	case "":
		return Present, nil
	case Random:
		return Tenses[rnd.Intn(len(Tenses))], nil
	}
	for _, t := range Tenses {
		if string(t) == s {
			return t, nil
		}
	}
	return "", apperrors.InvalidInput("unknown tense %q", s)
}

// VerbExercise asks for one conjugated form of a verb
type VerbExercise struct {
	VerbID     int64  `json:"verbId"`
	Infinitive string `json:"infinitive"`
	English    string `json:"english"`
	Person     Person `json:"person"`
	Tense      Tense  `json:"tense"`
	VerbType   int    `json:"verbType"`
	Prompt     string `json:"prompt"`
}

// NewVerbExercise builds the exercise for a verb form
func NewVerbExercise(v *models.Verb, t Tense, p Person) VerbExercise {
	return VerbExercise{
		VerbID:     v.ID,
		Infinitive: v.Infinitive,
		English:    v.English,
		Person:     p,
		Tense:      t,
		VerbType:   v.VerbType,
		Prompt:     fmt.Sprintf(`Conjugate "%s" (%s) for "%s" in %s tense:`, v.Infinitive, v.English, p, t),
	}
}

// Conjugation returns the stored form of a verb, or "" for an unknown tense or person
func Conjugation(v *models.Verb, t Tense, p Person) string {
	forms := map[Tense][6]string{
		Present:     {v.PresentMina, v.PresentSina, v.PresentHan, v.PresentMe, v.PresentTe, v.PresentHe},
		Past:        {v.PastMina, v.PastSina, v.PastHan, v.PastMe, v.PastTe, v.PastHe},
		Conditional: {v.ConditionalMina, v.ConditionalSina, v.ConditionalHan, v.ConditionalMe, v.ConditionalTe, v.ConditionalHe},
	}
	row, ok := forms[t]
	if !ok {
		return ""
	}
	for i, person := range Persons {
		if person == p {
			return row[i]
		}
	}
	return ""
}

var endings = map[Tense]map[Person]string{
	Present: {
		Sina: "The second person singular adds -t to the stem.",
		Han:  "Third person singular uses the basic stem form with a lengthened vowel.",
		Me:   "First person plural adds -mme.",
		Te:   "Second person plural adds -tte.",
		He:   "Third person plural adds -vat/-vät.",
	},
	Past: {
		Mina: "Past tense first person adds -in.",
		Sina: "Past tense second person adds -it.",
		Han:  "Past tense third person adds -i.",
		Me:   "Past tense first person plural adds -imme.",
		Te:   "Past tense second person plural adds -itte.",
		He:   "Past tense third person plural adds -ivat/-ivät.",
	},
	Conditional: {
		Mina: "Conditional first person adds -isin.",
		Sina: "Conditional second person adds -isit.",
		Han:  "Conditional third person adds -isi.",
		Me:   "Conditional first person plural adds -isimme.",
		Te:   "Conditional second person plural adds -isitte.",
		He:   "Conditional third person plural adds -isivat/-isivät.",
	},
}

// VerbExplanation explains how a form is built
func VerbExplanation(v *models.Verb, t Tense, p Person) string {
	if t == Present && p == Mina {
		return fmt.Sprintf("For type %d verbs, the first person singular present form adds -n to the present stem.", v.VerbType)
	}
	if explanation, ok := endings[t][p]; ok {
		return explanation
	}
	return "Conjugation follows standard Finnish verb patterns."
}

// CheckConjugation compares an answer with the stored form, ignoring case and surrounding space
func CheckConjugation(v *models.Verb, t Tense, p Person, answer string) CheckResult {
	want := Conjugation(v, t, p)
	return CheckResult{
		Correct:       matches(answer, want),
		CorrectAnswer: want,
		Explanation:   VerbExplanation(v, t, p),
	}
}
