package excel

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/terve/pkg/models"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath   string // Path to the Excel or CSV file
	WordsSheet string // Sheet with catalog words
	NounsSheet string // Sheet with noun declensions
	VerbsSheet string // Sheet with verb conjugations
	StartRow   int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		WordsSheet: "words",
		NounsSheet: "nouns",
		VerbsSheet: "verbs",
		StartRow:   2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of importing one kind of record
type ImportResult struct {
	TotalProcessed int      `json:"totalProcessed"`
	Created        int      `json:"created"`
	Updated        int      `json:"updated"`
	Skipped        int      `json:"skipped"`
	Errors         []string `json:"errors"`
}

func (r *ImportResult) fail(sheet string, row int, err error) {
	r.Errors = append(r.Errors, fmt.Sprintf("%s row %d: %v", sheet, row, err))
}

// Summary collects the results of an import
type Summary struct {
	Words ImportResult `json:"words"`
	Nouns ImportResult `json:"nouns"`
	Verbs ImportResult `json:"verbs"`
}

// WordStore upserts catalog words
type WordStore interface {
	GetByTranslation(ctx context.Context, finnish, english string) (*models.Word, error)
	Create(ctx context.Context, word *models.Word) error
	Update(ctx context.Context, word *models.Word) error
}

// NounStore upserts nouns
type NounStore interface {
	GetByNominative(ctx context.Context, nominative string) (*models.Noun, error)
	Create(ctx context.Context, noun *models.Noun) error
	Update(ctx context.Context, noun *models.Noun) error
}

// VerbStore upserts verbs
type VerbStore interface {
	GetByInfinitive(ctx context.Context, infinitive string) (*models.Verb, error)
	Create(ctx context.Context, verb *models.Verb) error
	Update(ctx context.Context, verb *models.Verb) error
}

// Importer loads the word, noun and verb catalogs from spreadsheets
type Importer struct {
	words WordStore
	nouns NounStore
	verbs VerbStore
}

// NewImporter creates an importer
func NewImporter(words WordStore, nouns NounStore, verbs VerbStore) *Importer {
	return &Importer{words: words, nouns: nouns, verbs: verbs}
}

// Import reads an Excel workbook or a CSV file of words. Invalid rows are
// reported in the result and do not stop the import.
func (im *Importer) Import(ctx context.Context, config ImportConfig) (*Summary, error) {
	if config.StartRow < 1 {
		config.StartRow = 1
	}

	if strings.ToLower(filepath.Ext(config.FilePath)) == ".csv" {
		file, err := os.Open(config.FilePath)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open CSV file")
		}
		defer file.Close()

		words, err := im.ImportWordsCSV(ctx, file, config.StartRow)
		if err != nil {
			return nil, err
		}
		return &Summary{Words: *words}, nil
	}

	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open Excel file")
	}
	defer f.Close()

	return im.ImportWorkbook(ctx, f, config)
}

// ImportWorkbook imports every configured sheet present in the workbook
func (im *Importer) ImportWorkbook(ctx context.Context, f *excelize.File, config ImportConfig) (*Summary, error) {
	summary := &Summary{}
	present := make(map[string]bool)
	for _, name := range f.GetSheetList() {
		present[name] = true
	}
	sheets := []struct {
		name   string
		result *ImportResult
		row    func(ctx context.Context, row []string, rowNum int) (bool, error)
	}{
		{config.WordsSheet, &summary.Words, im.wordRow},
		{config.NounsSheet, &summary.Nouns, im.nounRow},
		{config.VerbsSheet, &summary.Verbs, im.verbRow},
	}

	for _, sheet := range sheets {
		if !present[sheet.name] {
			continue
		}
		rows, err := f.GetRows(sheet.name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get rows of %s", sheet.name)
		}
		for i, row := range rows {
			// Skip header rows
			if i < config.StartRow-1 {
				continue
			}
			if blank(row) {
				continue
			}
			sheet.result.TotalProcessed++
			created, err := sheet.row(ctx, row, i+1)
			sheet.result.count(created, err, sheet.name, i+1)
		}
	}
	return summary, nil
}

// ImportWordsCSV imports words from CSV with the same columns as the words sheet.
// A row holding only a CEFR level sets the level of the rows below it.
func (im *Importer) ImportWordsCSV(ctx context.Context, r io.Reader, startRow int) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	result := &ImportResult{Errors: make([]string, 0)}
	currentLevel := models.DefaultLevel
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "error reading CSV")
		}

		rowNum++
		if rowNum < startRow || blank(row) {
			continue
		}

		if level, ok := levelHeader(row); ok {
			currentLevel = level
			continue
		}
		if cell(row, colLevel) == "" {
			row = withCell(row, colLevel, string(currentLevel))
		}

		result.TotalProcessed++
		created, err := im.wordRow(ctx, row, rowNum)
		result.count(created, err, "csv", rowNum)
	}
	return result, nil
}

func (r *ImportResult) count(created bool, err error, sheet string, row int) {
	switch {
	case err != nil:
		r.Skipped++
		r.fail(sheet, row, err)
	case created:
		r.Created++
	default:
		r.Updated++
	}
}

// Word columns: finnish, english, part of speech, level, commonality rank, difficulty, context
const (
	colFinnish = iota
	colEnglish
	colPartOfSpeech
	colLevel
	colRank
	colDifficulty
	colContext
)

func (im *Importer) wordRow(ctx context.Context, row []string, rowNum int) (bool, error) {
	finnish := cleanWord(cell(row, colFinnish))
	english := cleanWord(cell(row, colEnglish))
	if finnish == "" {
		return false, errors.New("word cannot be empty")
	}
	if english == "" {
		return false, errors.New("translation cannot be empty")
	}
	level, err := parseLevel(cell(row, colLevel))
	if err != nil {
		return false, err
	}
	rank := parseIntOrDefault(cell(row, colRank), 1, 1<<30, rowNum)
	difficulty := parseIntOrDefault(cell(row, colDifficulty), models.MinDifficulty, models.MaxDifficulty, 3)

	existing, err := im.words.GetByTranslation(ctx, finnish, english)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}
	word := existing
	if word == nil {
		word = &models.Word{Finnish: finnish, English: english}
	}
	word.PartOfSpeech = cell(row, colPartOfSpeech)
	word.CEFRLevel = level
	word.CommonalityRank = rank
	word.Difficulty = difficulty
	word.Context = cell(row, colContext)

	if existing != nil {
		return false, im.words.Update(ctx, word)
	}
	return true, im.words.Create(ctx, word)
}

// Noun columns: nominative, english, level, noun type, eight singular cases, nine plural cases
func (im *Importer) nounRow(ctx context.Context, row []string, _ int) (bool, error) {
	nominative := cleanWord(cell(row, 0))
	if nominative == "" {
		return false, errors.New("nominative cannot be empty")
	}
	if cell(row, 1) == "" {
		return false, errors.New("translation cannot be empty")
	}
	level, err := parseLevel(cell(row, 2))
	if err != nil {
		return false, err
	}

	existing, err := im.nouns.GetByNominative(ctx, nominative)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}
	noun := existing
	if noun == nil {
		noun = &models.Noun{Nominative: nominative}
	}
	noun.English = cell(row, 1)
	noun.CEFRLevel = level
	noun.NounType = cell(row, 3)
	forms := []*string{
		&noun.GenitiveSg, &noun.PartitiveSg, &noun.IllativeSg, &noun.InessiveSg,
		&noun.ElativeSg, &noun.AllativeSg, &noun.AdessiveSg, &noun.AblativeSg,
		&noun.NominativePl, &noun.GenitivePl, &noun.PartitivePl, &noun.IllativePl, &noun.InessivePl,
		&noun.ElativePl, &noun.AllativePl, &noun.AdessivePl, &noun.AblativePl,
	}
	for i, form := range forms {
		*form = cell(row, 4+i)
	}

	if existing != nil {
		return false, im.nouns.Update(ctx, noun)
	}
	return true, im.nouns.Create(ctx, noun)
}

// Verb columns: infinitive, english, verb type, level, then present, past and conditional for minä..he
func (im *Importer) verbRow(ctx context.Context, row []string, _ int) (bool, error) {
	infinitive := cleanWord(cell(row, 0))
	if infinitive == "" {
		return false, errors.New("infinitive cannot be empty")
	}
	if cell(row, 1) == "" {
		return false, errors.New("translation cannot be empty")
	}
	verbType, err := strconv.Atoi(cell(row, 2))
	if err != nil || verbType < 1 || verbType > 6 {
		return false, errors.Errorf("invalid verb type %q", cell(row, 2))
	}
	level, err := parseLevel(cell(row, 3))
	if err != nil {
		return false, err
	}

	existing, err := im.verbs.GetByInfinitive(ctx, infinitive)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}
	verb := existing
	if verb == nil {
		verb = &models.Verb{Infinitive: infinitive}
	}
	verb.English = cell(row, 1)
	verb.VerbType = verbType
	verb.CEFRLevel = level
	forms := []*string{
		&verb.PresentMina, &verb.PresentSina, &verb.PresentHan, &verb.PresentMe, &verb.PresentTe, &verb.PresentHe,
		&verb.PastMina, &verb.PastSina, &verb.PastHan, &verb.PastMe, &verb.PastTe, &verb.PastHe,
		&verb.ConditionalMina, &verb.ConditionalSina, &verb.ConditionalHan,
		&verb.ConditionalMe, &verb.ConditionalTe, &verb.ConditionalHe,
	}
	for i, form := range forms {
		*form = cell(row, 4+i)
	}

	if existing != nil {
		return false, im.verbs.Update(ctx, verb)
	}
	return true, im.verbs.Create(ctx, verb)
}

// cell returns the trimmed value of a column, or "" when the row is short
func cell(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func withCell(row []string, idx int, value string) []string {
	for len(row) <= idx {
		row = append(row, "")
	}
	row[idx] = value
	return row
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// levelHeader recognizes a row like "B1,,"
func levelHeader(row []string) (models.Level, bool) {
	level, ok := models.ParseLevel(cell(row, 0))
	if !ok {
		return "", false
	}
	for i := 1; i < len(row); i++ {
		if cell(row, i) != "" {
			return "", false
		}
	}
	return level, true
}

func parseLevel(s string) (models.Level, error) {
	if s == "" {
		return models.DefaultLevel, nil
	}
	level, ok := models.ParseLevel(s)
	if !ok {
		return "", errors.Errorf("unknown CEFR level %q", s)
	}
	return level, nil
}

// cleanWord removes extra information in parentheses, as in "mennä (meni, mennyt)"
func cleanWord(word string) string {
	if i := strings.Index(word, "("); i > 0 {
		return strings.TrimSpace(word[:i])
	}
	return strings.TrimSpace(word)
}

// parseIntOrDefault parses an integer clamped to [min, max], or returns defaultVal
func parseIntOrDefault(s string, min, max, defaultVal int) int {
	val, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return defaultVal
	}
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
