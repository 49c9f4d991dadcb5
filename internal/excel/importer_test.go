package excel

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/terve/internal/database"
	"github.com/example/terve/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type stores struct {
	words *database.WordRepository
	nouns *database.NounRepository
	verbs *database.VerbRepository
}

func newImporter(t *testing.T) (*Importer, stores) {
	t.Helper()
	db, err := database.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := stores{
		words: database.NewWordRepository(db),
		nouns: database.NewNounRepository(db),
		verbs: database.NewVerbRepository(db),
	}
	return NewImporter(s.words, s.nouns, s.verbs), s
}

func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet("words")
	require.NoError(t, err)
	words := [][]interface{}{
		{"finnish", "english", "part_of_speech", "cefr_level", "commonality_rank", "difficulty", "context"},
		{"talo", "house", "noun", "A1", 3, 1, "Talo on iso."},
		{"mennä (meni, mennyt)", "to go", "verb", "A1", 1, 2, ""},
		{"", "empty", "noun", "A1", 4, 1, ""},
		{"kirja", "book", "noun", "Z9", 5, 1, ""},
	}
	for i, row := range words {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("words", cellName, &row))
	}

	_, err = f.NewSheet("nouns")
	require.NoError(t, err)
	nouns := [][]interface{}{
		{"nominative", "english", "cefr_level", "noun_type"},
		{"talo", "house", "A1", "strong",
			"talon", "taloa", "taloon", "talossa", "talosta", "talolle", "talolla", "talolta",
			"talot", "talojen", "taloja", "taloihin", "taloissa", "taloista", "taloille", "taloilla", "taloilta"},
	}
	for i, row := range nouns {
		cellName, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow("nouns", cellName, &row))
	}

	_, err = f.NewSheet("verbs")
	require.NoError(t, err)
	verbs := [][]interface{}{
		{"infinitive", "english", "verb_type", "cefr_level"},
		{"puhua", "to speak", 1, "A1",
			"puhun", "puhut", "puhuu", "puhumme", "puhutte", "puhuvat",
			"puhuin", "puhuit", "puhui", "puhuimme", "puhuitte", "puhuivat",
			"puhuisin", "puhuisit", "puhuisi", "puhuisimme", "puhuisitte", "puhuisivat"},
		{"olla", "to be", 9, "A1"},
	}
	for i, row := range verbs {
		cellName, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow("verbs", cellName, &row))
	}

	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportWorkbook(t *testing.T) {
	ctx := context.Background()
	im, s := newImporter(t)

	config := DefaultImportConfig()
	config.FilePath = writeWorkbook(t)

	summary, err := im.Import(ctx, config)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Words.TotalProcessed)
	assert.Equal(t, 2, summary.Words.Created)
	assert.Equal(t, 2, summary.Words.Skipped)
	require.Len(t, summary.Words.Errors, 2)
	assert.Contains(t, summary.Words.Errors[0], "words row 4")
	assert.Contains(t, summary.Words.Errors[1], "words row 5")

	word, err := s.words.GetByTranslation(ctx, "mennä", "to go")
	require.NoError(t, err)
	assert.Equal(t, 1, word.CommonalityRank)
	assert.Equal(t, 2, word.Difficulty)

	assert.Equal(t, 1, summary.Nouns.Created)
	noun, err := s.nouns.GetByNominative(ctx, "talo")
	require.NoError(t, err)
	assert.Equal(t, "talossa", noun.InessiveSg)
	assert.Equal(t, "taloilta", noun.AblativePl)

	assert.Equal(t, 1, summary.Verbs.Created)
	assert.Equal(t, 1, summary.Verbs.Skipped)
	verb, err := s.verbs.GetByInfinitive(ctx, "puhua")
	require.NoError(t, err)
	assert.Equal(t, "puhuisivat", verb.ConditionalHe)

	t.Run("second import updates", func(t *testing.T) {
		summary, err := im.Import(ctx, config)
		require.NoError(t, err)
		assert.Equal(t, 0, summary.Words.Created)
		assert.Equal(t, 2, summary.Words.Updated)
		assert.Equal(t, 1, summary.Nouns.Updated)

		count, err := s.words.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}

func TestImportWordsCSV(t *testing.T) {
	ctx := context.Background()
	im, s := newImporter(t)

	data := strings.Join([]string{
		"finnish,english,part_of_speech,cefr_level,commonality_rank,difficulty,context",
		"B1,,",
		"ympäristö,environment,noun,,10,4",
		"kissa,cat,noun,A1,2,9,\"Kissa nukkuu.\"",
		",missing,noun,A1",
	}, "\n")

	result, err := im.ImportWordsCSV(ctx, strings.NewReader(data), 2)
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalProcessed)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "csv row 5")

	word, err := s.words.GetByTranslation(ctx, "ympäristö", "environment")
	require.NoError(t, err)
	assert.Equal(t, models.B1, word.CEFRLevel)

	cat, err := s.words.GetByTranslation(ctx, "kissa", "cat")
	require.NoError(t, err)
	assert.Equal(t, models.MaxDifficulty, cat.Difficulty)
	assert.Equal(t, "Kissa nukkuu.", cat.Context)
}

func TestImportCSVFile(t *testing.T) {
	im, _ := newImporter(t)
	path := filepath.Join(t.TempDir(), "words.csv")
	require.NoError(t, os.WriteFile(path, []byte("finnish,english\nhei,hi\n"), 0o600))

	config := DefaultImportConfig()
	config.FilePath = path
	summary, err := im.Import(context.Background(), config)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Words.Created)
	assert.Zero(t, summary.Nouns.TotalProcessed)
}

func TestImportMissingFile(t *testing.T) {
	im, _ := newImporter(t)
	config := DefaultImportConfig()
	config.FilePath = filepath.Join(t.TempDir(), "nope.xlsx")
	_, err := im.Import(context.Background(), config)
	assert.Error(t, err)
}

func TestCleanWord(t *testing.T) {
	assert.Equal(t, "mennä", cleanWord("mennä (meni, mennyt)"))
	assert.Equal(t, "talo", cleanWord("  talo "))
	assert.Equal(t, "(x)", cleanWord("(x)"))
}

func TestParseIntOrDefault(t *testing.T) {
	assert.Equal(t, 3, parseIntOrDefault("", 1, 5, 3))
	assert.Equal(t, 5, parseIntOrDefault("9", 1, 5, 3))
	assert.Equal(t, 1, parseIntOrDefault("-2", 1, 5, 3))
	assert.Equal(t, 4, parseIntOrDefault(" 4 ", 1, 5, 3))
}
