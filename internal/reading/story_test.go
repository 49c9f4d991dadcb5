package reading

import (
	"strings"
	"testing"

	apperrors "github.com/example/terve/internal/errors"
	"github.com/example/terve/internal/random"
	"github.com/example/terve/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStaysWithinBand(t *testing.T) {
	for _, level := range append(models.Levels, models.Level("X1")) {
		for length, band := range bands {
			story, err := NewGenerator(random.Seeded(42)).Generate(Request{Level: level, Length: length})
			require.NoError(t, err)

			assert.Equal(t, WordCount(story.Content), story.WordCount)
			assert.GreaterOrEqual(t, story.WordCount, band.Min, "%s %s", level, length)
			assert.LessOrEqual(t, story.WordCount, band.Max, "%s %s", level, length)
			assert.Equal(t, ReadingMinutes(story.WordCount, level), story.EstimatedReadingMinutes)
			assert.NotEmpty(t, story.ID)
		}
	}
}

func TestGenerateTemplateChoiceUsesInjectedRandom(t *testing.T) {
	story, err := NewGenerator(random.NewSequence(1)).Generate(Request{Level: models.A1, Length: models.StoryShort})
	require.NoError(t, err)
	assert.Equal(t, "Koulu alkaa", story.Title)

	story, err = NewGenerator(random.NewSequence(0)).Generate(Request{Level: models.A1, Length: models.StoryShort})
	require.NoError(t, err)
	assert.Equal(t, "Päivä kaupungissa", story.Title)
}

func TestGenerateUnknownLevelUsesDefaultTemplates(t *testing.T) {
	story, err := NewGenerator(random.NewSequence(0)).Generate(Request{Level: models.Level("Q7"), Length: models.StoryMedium})
	require.NoError(t, err)
	assert.Equal(t, "Päivä kaupungissa", story.Title)
	assert.Equal(t, ReadingMinutes(story.WordCount, models.A1), story.EstimatedReadingMinutes)
}

func TestGenerateIncorporatesKeywords(t *testing.T) {
	story, err := NewGenerator(random.NewSequence(0)).Generate(Request{
		Level:    models.A1,
		Length:   models.StoryShort,
		Keywords: []string{"LIISA", "kahvi"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Päivä kaupungissa - LIISA", story.Title)
	assert.Equal(t, 1, strings.Count(story.Content, "kahvi oli tärkeä osa tarinaa."))
	assert.NotContains(t, story.Content, "LIISA oli tärkeä")
	assert.Equal(t, []string{"LIISA", "kahvi"}, story.Keywords)
}

func TestGenerateTruncatesLongStories(t *testing.T) {
	keyword := strings.TrimSpace(strings.Repeat("sana ", 250))
	story, err := NewGenerator(random.NewSequence(0)).Generate(Request{
		Level:    models.A1,
		Length:   models.StoryShort,
		Keywords: []string{keyword},
	})
	require.NoError(t, err)
	assert.Equal(t, 200, story.WordCount)
	assert.True(t, strings.HasSuffix(story.Content, "."))
}

func TestGenerateRejectsUnknownLength(t *testing.T) {
	_, err := NewGenerator(nil).Generate(Request{Level: models.A1, Length: "epic"})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestExpandDrawsEachFillerBeforeRepeating(t *testing.T) {
	g := NewGenerator(random.Seeded(3))
	pool := fillersFor(models.A1)

	content := g.expand("", 0, 12, pool)
	for _, sentence := range pool {
		assert.Equal(t, 1, strings.Count(content, sentence), sentence)
	}

	content = g.expand("", 0, 24, pool)
	for _, sentence := range pool {
		assert.Equal(t, 2, strings.Count(content, sentence), sentence)
	}
}

func TestExpandWithEmptyPoolStopsShort(t *testing.T) {
	g := NewGenerator(random.Seeded(3))
	assert.Equal(t, "kaksi sanaa", g.expand("kaksi sanaa", 2, 100, nil))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Yksi kaksi.", Truncate("Yksi kaksi, kolme neljä!", 2))
	assert.Equal(t, "Yksi kaksi.", Truncate("Yksi   kaksi kolme", 2))
	assert.Equal(t, "Lyhyt teksti.", Truncate("Lyhyt teksti.", 5))
	assert.Equal(t, "", Truncate("mitä tahansa", 0))
}

func TestParseLength(t *testing.T) {
	length, err := ParseLength("", models.StoryLong)
	require.NoError(t, err)
	assert.Equal(t, models.StoryLong, length)

	length, err = ParseLength(" Short ", models.StoryLong)
	require.NoError(t, err)
	assert.Equal(t, models.StoryShort, length)

	_, err = ParseLength("epic", models.StoryMedium)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestParseKeywords(t *testing.T) {
	keywords, err := ParseKeywords(" sauna, ,järvi ,metsä")
	require.NoError(t, err)
	assert.Equal(t, []string{"sauna", "järvi", "metsä"}, keywords)

	keywords, err = ParseKeywords("")
	require.NoError(t, err)
	assert.Empty(t, keywords)

	_, err = ParseKeywords("a,b,c,d")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestReadingMinutes(t *testing.T) {
	assert.Equal(t, 3, ReadingMinutes(101, models.A1))
	assert.Equal(t, 2, ReadingMinutes(200, models.B1))
	assert.Equal(t, 4, ReadingMinutes(600, models.C2))
	assert.Equal(t, 50, ReadingSpeed(models.Level("??")))
}
