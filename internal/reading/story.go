// Package reading generates level-appropriate short stories and the
// questions and vocabulary that go with them.
package reading

import (
	"fmt"
	"strings"
	"unicode"

	apperrors "github.com/example/terve/internal/errors"
	"github.com/example/terve/internal/random"
	"github.com/example/terve/pkg/models"
	"github.com/lithammer/shortuuid/v4"
)

// MaxKeywords is the most keywords a story request may carry
const MaxKeywords = 3

// Band is an inclusive word count range
type Band struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

var bands = map[models.StoryLength]Band{
	models.StoryShort:  {Min: 100, Max: 200},
	models.StoryMedium: {Min: 200, Max: 400},
	models.StoryLong:   {Min: 400, Max: 600},
}

// BandFor returns the word count range of a story length
func BandFor(length models.StoryLength) (Band, bool) {
	b, ok := bands[length]
	return b, ok
}

// ParseLength parses a story length. An empty value yields fallback.
func ParseLength(s string, fallback models.StoryLength) (models.StoryLength, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		s = string(fallback)
	}
	length := models.StoryLength(s)
	if _, ok := bands[length]; !ok {
		return "", apperrors.InvalidInput("unknown story length %q", s)
	}
	return length, nil
}

// ParseKeywords splits a comma separated keyword list
func ParseKeywords(raw string) ([]string, error) {
	keywords := make([]string, 0, MaxKeywords)
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	if err := ValidateKeywords(keywords); err != nil {
		return nil, err
	}
	return keywords, nil
}

// ValidateKeywords rejects more than MaxKeywords keywords
func ValidateKeywords(keywords []string) error {
	if len(keywords) > MaxKeywords {
		return apperrors.InvalidInput("please provide at most %d keywords", MaxKeywords)
	}
	return nil
}

// Request describes the story to generate
type Request struct {
	Level    models.Level
	Length   models.StoryLength
	Keywords []string
}

// Story is a generated text. Stories are not stored.
type Story struct {
	ID                      string       `json:"id"`
	Title                   string       `json:"title"`
	Content                 string       `json:"content"`
	Level                   models.Level `json:"difficulty"`
	WordCount               int          `json:"wordCount"`
	EstimatedReadingMinutes int          `json:"estimatedReadingTime"`
	Keywords                []string     `json:"keywords"`
}

// Generator assembles stories from the level templates
type Generator struct {
	rnd   random.Source
	newID func() string
}

// NewGenerator creates a generator. A nil source uses the shared default.
func NewGenerator(rnd random.Source) *Generator {
	if rnd == nil {
		rnd = random.Default()
	}
	return &Generator{rnd: rnd, newID: shortuuid.New}
}

// Generate builds a story for the request. Keyword count is checked by the caller.
func (g *Generator) Generate(req Request) (*Story, error) {
	band, ok := BandFor(req.Length)
	if !ok {
		return nil, apperrors.InvalidInput("unknown story length %q", req.Length)
	}

	templates := templatesFor(req.Level)
	tpl := templates[g.rnd.Intn(len(templates))]
	title, content := tpl.Title, tpl.Content

	if len(req.Keywords) > 0 {
		content = incorporateKeywords(content, req.Keywords)
		title = fmt.Sprintf("%s - %s", title, req.Keywords[0])
	}

	content = g.fit(content, band, fillersFor(req.Level))
	count := WordCount(content)

	return &Story{
		ID:                      g.newID(),
		Title:                   title,
		Content:                 content,
		Level:                   req.Level,
		WordCount:               count,
		EstimatedReadingMinutes: ReadingMinutes(count, req.Level),
		Keywords:                append([]string{}, req.Keywords...),
	}, nil
}

func incorporateKeywords(content string, keywords []string) string {
	for _, k := range keywords {
		if !strings.Contains(strings.ToLower(content), strings.ToLower(k)) {
			content += fmt.Sprintf(" %s oli tärkeä osa tarinaa.", k)
		}
	}
	return content
}

// fit pads a short story with fillers or truncates a long one
func (g *Generator) fit(content string, band Band, pool []string) string {
	count := WordCount(content)
	switch {
	case count < band.Min:
		return g.expand(content, count, band.Min, pool)
	case count > band.Max:
		return Truncate(content, band.Max)
	default:
		return content
	}
}

// expand draws fillers without replacement, refilling the bag when it runs dry.
// Only an empty pool stops it short of target.
func (g *Generator) expand(content string, count, target int, pool []string) string {
	var bag []string
	var b strings.Builder
	b.WriteString(content)
	for count < target && len(pool) > 0 {
		if len(bag) == 0 {
			bag = append(bag, pool...)
			random.Shuffle(g.rnd, len(bag), func(i, j int) { bag[i], bag[j] = bag[j], bag[i] })
		}
		sentence := bag[len(bag)-1]
		bag = bag[:len(bag)-1]
		b.WriteString(" ")
		b.WriteString(sentence)
		count += WordCount(sentence)
	}
	return b.String()
}

// Truncate keeps the first limit words and ends the text with a period
func Truncate(content string, limit int) string {
	if limit <= 0 {
		return ""
	}
	words := strings.Fields(content)
	if len(words) <= limit {
		return content
	}
	words = words[:limit]
	words[limit-1] = strings.TrimRightFunc(words[limit-1], unicode.IsPunct) + "."
	return strings.Join(words, " ")
}

// WordCount counts whitespace separated tokens
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// ReadingMinutes estimates reading time, rounding up
func ReadingMinutes(words int, level models.Level) int {
	wpm := ReadingSpeed(level)
	return (words + wpm - 1) / wpm
}
