// Package drills builds noun declension and verb conjugation exercises.
package drills

import (
	"fmt"
	"strings"

	apperrors "github.com/example/terve/internal/errors"
	"github.com/example/terve/internal/random"
	"github.com/example/terve/pkg/models"
)

// Random asks for a randomly chosen case, number, tense or person
const Random = "random"

// Case is a drilled grammatical case
type Case string

const (
	Nominative Case = "nominative"
	Genitive   Case = "genitive"
	Partitive  Case = "partitive"
	Illative   Case = "illative"
	Inessive   Case = "inessive"
	Elative    Case = "elative"
	Allative   Case = "allative"
	Adessive   Case = "adessive"
	Ablative   Case = "ablative"
)

// Cases lists the drilled cases in textbook order
var Cases = []Case{Nominative, Genitive, Partitive, Illative, Inessive, Elative, Allative, Adessive, Ablative}

// Number is singular or plural
type Number string

const (
	Singular Number = "singular"
	Plural   Number = "plural"
)

var Numbers = []Number{Singular, Plural}

// ParseCase parses a case name. Random or empty picks one from rnd.
func ParseCase(s string, rnd random.Source) (Case, error) {
	s = normalize(s)
	if s == "" || s == Random {
		return Cases[rnd.Intn(len(Cases))], nil
	}
	for _, c := range Cases {
		if string(c) == s {
			return c, nil
		}
	}
	return "", apperrors.InvalidInput("unknown case %q", s)
}

// ParseNumber parses a grammatical number. Random or empty picks one from rnd.
func ParseNumber(s string, rnd random.Source) (Number, error) {
	s = normalize(s)
	if s == "" || s == Random {
		return Numbers[rnd.Intn(len(Numbers))], nil
	}
	for _, n := range Numbers {
		if string(n) == s {
			return n, nil
		}
	}
	return "", apperrors.InvalidInput("unknown number %q", s)
}

// NounExercise asks for one form of a noun
type NounExercise struct {
	NounID     int64  `json:"nounId"`
	Nominative string `json:"nominative"`
	English    string `json:"english"`
	Case       Case   `json:"case"`
	Number     Number `json:"number"`
	Prompt     string `json:"prompt"`
}

// NewNounExercise builds the exercise for a noun form
func NewNounExercise(n *models.Noun, c Case, num Number) NounExercise {
	return NounExercise{
		NounID:     n.ID,
		Nominative: n.Nominative,
		English:    n.English,
		Case:       c,
		Number:     num,
		Prompt:     fmt.Sprintf(`Decline "%s" (%s) to %s %s:`, n.Nominative, n.English, c, num),
	}
}

// Declension returns the stored form of a noun, or "" for an unknown case
func Declension(n *models.Noun, c Case, num Number) string {
	singular := map[Case]string{
		Nominative: n.Nominative,
		Genitive:   n.GenitiveSg,
		Partitive:  n.PartitiveSg,
		Illative:   n.IllativeSg,
		Inessive:   n.InessiveSg,
		Elative:    n.ElativeSg,
		Allative:   n.AllativeSg,
		Adessive:   n.AdessiveSg,
		Ablative:   n.AblativeSg,
	}
	plural := map[Case]string{
		Nominative: n.NominativePl,
		Genitive:   n.GenitivePl,
		Partitive:  n.PartitivePl,
		Illative:   n.IllativePl,
		Inessive:   n.InessivePl,
		Elative:    n.ElativePl,
		Allative:   n.AllativePl,
		Adessive:   n.AdessivePl,
		Ablative:   n.AblativePl,
	}
	if num == Plural {
		return plural[c]
	}
	return singular[c]
}

var caseExplanations = map[Case]string{
	Nominative: "The nominative case is the basic form, used for the subject of a sentence.",
	Genitive:   "The genitive case shows possession or is used after numbers and certain prepositions.",
	Partitive:  "The partitive case is used for incomplete amounts, direct objects of negative sentences, and after certain verbs.",
	Illative:   "The illative case indicates motion into something (where to).",
	Inessive:   "The inessive case indicates location inside something (where).",
	Elative:    "The elative case indicates motion out of something (where from).",
	Allative:   "The allative case indicates motion onto a surface (where to).",
	Adessive:   "The adessive case indicates location on a surface (where).",
	Ablative:   "The ablative case indicates motion away from a surface (where from).",
}

// NounExplanation explains a case, noting plural forms
func NounExplanation(c Case, num Number) string {
	explanation, ok := caseExplanations[c]
	if !ok {
		explanation = "This is a Finnish grammatical case."
	}
	if num == Plural {
		explanation += " The plural form adds specific endings."
	}
	return explanation
}

// CheckResult is the verdict on a drill answer
type CheckResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
}

// CheckDeclension compares an answer with the stored form, ignoring case and surrounding space
func CheckDeclension(n *models.Noun, c Case, num Number, answer string) CheckResult {
	want := Declension(n, c, num)
	return CheckResult{
		Correct:       matches(answer, want),
		CorrectAnswer: want,
		Explanation:   NounExplanation(c, num),
	}
}

// CaseInfo is a row of the case reference table
type CaseInfo struct {
	Name     string `json:"name"`
	Finnish  string `json:"finnish"`
	Usage    string `json:"usage"`
	Question string `json:"question"`
	Example  string `json:"example"`
}

// CaseTable returns the reference table of the drilled cases
func CaseTable() []CaseInfo {
	return []CaseInfo{
		{"Nominative", "Nominatiivi", "Subject of sentence", "Mikä? Kuka? (What? Who?)", "Kissa juoksee (The cat runs)"},
		{"Genitive", "Genetiivi", "Possession, after numbers", "Kenen? Minkä? (Whose? What of?)", "Kissan häntä (The cat's tail)"},
		{"Partitive", "Partitiivi", "Incomplete amount, negative object", "Mitä? Ketä? (What? Whom?)", "Juo maitoa (Drink milk)"},
		{"Illative", "Illatiivi", "Motion into", "Mihin? Keneen? (Into what? Into whom?)", "Menen taloon (I go into the house)"},
		{"Inessive", "Inessiivi", "Location inside", "Missä? Kenessä? (In what? In whom?)", "Olen talossa (I am in the house)"},
		{"Elative", "Elatiivi", "Motion out of", "Mistä? Kenestä? (Out of what? Out of whom?)", "Tulen talosta (I come from the house)"},
		{"Allative", "Allatiivi", "Motion onto surface", "Mille? Kenelle? (Onto what? To whom?)", "Menen pöydälle (I go onto the table)"},
		{"Adessive", "Adessiivi", "Location on surface", "Millä? Kenellä? (On what? On whom?)", "Olen pöydällä (I am on the table)"},
		{"Ablative", "Ablatiivi", "Motion from surface", "Miltä? Keneltä? (From what? From whom?)", "Tulen pöydältä (I come from the table)"},
	}
}

func matches(answer, want string) bool {
	return want != "" && normalize(answer) == strings.ToLower(want)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
