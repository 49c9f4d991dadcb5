package reading

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minVocabularyRunes excludes short function words
const minVocabularyRunes = 4

// ExtractVocabulary returns the unique lowercase words of a text in order of appearance.
// Anything that is not a letter separates words.
func ExtractVocabulary(content string) []string {
	fields := strings.FieldsFunc(strings.ToLower(content), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	seen := make(map[string]bool, len(fields))
	words := make([]string, 0, len(fields))
	for _, w := range fields {
		if utf8.RuneCountInString(w) < minVocabularyRunes || seen[w] {
			continue
		}
		seen[w] = true
		words = append(words, w)
	}
	return words
}
