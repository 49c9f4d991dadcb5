package database

import (
	"context"
	"time"

	"github.com/example/terve/pkg/models"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const wordColumns = `id, finnish, english, part_of_speech, cefr_level, commonality_rank, difficulty, context, created_at, updated_at`

// WordRepository handles database operations for catalog words
type WordRepository struct {
	db *sqlx.DB
}

// NewWordRepository creates a new repository instance
func NewWordRepository(db *sqlx.DB) *WordRepository {
	return &WordRepository{db: db}
}

// WordFilter selects catalog words for a learner's pool
type WordFilter struct {
	Level         models.Level
	MinDifficulty int
	MaxDifficulty int
	ExcludeIDs    []int64
	Limit         int
}

// GetByID returns a word by ID
func (r *WordRepository) GetByID(ctx context.Context, id int64) (*models.Word, error) {
	var word models.Word
	err := r.db.GetContext(ctx, &word, r.db.Rebind(`SELECT `+wordColumns+` FROM words WHERE id = ?`), id)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get word %d", id)
	}
	return &word, nil
}

// GetByTranslation returns the word with the given Finnish and English forms
func (r *WordRepository) GetByTranslation(ctx context.Context, finnish, english string) (*models.Word, error) {
	var word models.Word
	query := r.db.Rebind(`SELECT ` + wordColumns + ` FROM words WHERE finnish = ? AND english = ?`)
	if err := r.db.GetContext(ctx, &word, query, finnish, english); err != nil {
		return nil, errors.Wrapf(err, "failed to get word %q", finnish)
	}
	return &word, nil
}

// Create inserts a new word
func (r *WordRepository) Create(ctx context.Context, word *models.Word) error {
	now := time.Now().UTC()
	query := r.db.Rebind(`
		INSERT INTO words (finnish, english, part_of_speech, cefr_level, commonality_rank, difficulty, context, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)
	err := r.db.QueryRowxContext(ctx, query,
		word.Finnish, word.English, word.PartOfSpeech, word.CEFRLevel,
		word.CommonalityRank, word.Difficulty, word.Context, now, now,
	).Scan(&word.ID)
	if err != nil {
		return errors.Wrapf(err, "failed to create word %q", word.Finnish)
	}
	word.CreatedAt, word.UpdatedAt = now, now
	return nil
}

// Update modifies an existing word
func (r *WordRepository) Update(ctx context.Context, word *models.Word) error {
	word.UpdatedAt = time.Now().UTC()
	query := r.db.Rebind(`
		UPDATE words SET
			finnish = ?, english = ?, part_of_speech = ?, cefr_level = ?,
			commonality_rank = ?, difficulty = ?, context = ?, updated_at = ?
		WHERE id = ?`)
	_, err := r.db.ExecContext(ctx, query,
		word.Finnish, word.English, word.PartOfSpeech, word.CEFRLevel,
		word.CommonalityRank, word.Difficulty, word.Context, word.UpdatedAt, word.ID,
	)
	if err != nil {
		return errors.Wrapf(err, "failed to update word %d", word.ID)
	}
	return nil
}

// MostCommon returns the most common words of a level
func (r *WordRepository) MostCommon(ctx context.Context, level models.Level, limit int) ([]models.Word, error) {
	var words []models.Word
	query := r.db.Rebind(`SELECT ` + wordColumns + ` FROM words WHERE cefr_level = ? ORDER BY commonality_rank ASC, id ASC LIMIT ?`)
	if err := r.db.SelectContext(ctx, &words, query, level, limit); err != nil {
		return nil, errors.Wrapf(err, "failed to get most common %s words", level)
	}
	return words, nil
}

// FindForPool returns words matching the filter ordered by commonality
func (r *WordRepository) FindForPool(ctx context.Context, f WordFilter) ([]models.Word, error) {
	if f.Limit <= 0 {
		return nil, nil
	}

	query := `SELECT ` + wordColumns + ` FROM words WHERE cefr_level = ? AND difficulty >= ? AND difficulty <= ?`
	args := []interface{}{f.Level, f.MinDifficulty, f.MaxDifficulty}
	if len(f.ExcludeIDs) > 0 {
		query += ` AND id NOT IN (?)`
		args = append(args, f.ExcludeIDs)
	}
	query += ` ORDER BY commonality_rank ASC, id ASC LIMIT ?`
	args = append(args, f.Limit)

	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build pool query")
	}

	var words []models.Word
	if err := r.db.SelectContext(ctx, &words, r.db.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "failed to find words for pool")
	}
	return words, nil
}

// FindUnownedByFinnish returns words whose Finnish form is in forms and that userID doesn't own yet
func (r *WordRepository) FindUnownedByFinnish(ctx context.Context, userID int64, forms []string, limit int) ([]models.Word, error) {
	if len(forms) == 0 || limit <= 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`
		SELECT `+wordColumns+` FROM words
		WHERE finnish IN (?)
		AND id NOT IN (SELECT word_id FROM user_words WHERE user_id = ?)
		ORDER BY commonality_rank ASC, id ASC
		LIMIT ?`, forms, userID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build vocabulary query")
	}

	var words []models.Word
	if err := r.db.SelectContext(ctx, &words, r.db.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "failed to find vocabulary")
	}
	return words, nil
}

// Count returns the catalog size
func (r *WordRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM words`); err != nil {
		return 0, errors.Wrap(err, "failed to count words")
	}
	return count, nil
}
