package database

import (
	"context"
	"time"

	"github.com/example/terve/pkg/models"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const learnerWordColumns = `id, user_id, word_id, category, review_count, correct_count, last_reviewed_at, next_review_at, created_at, updated_at`

// LearnerWordRepository handles database operations for the words a learner owns
type LearnerWordRepository struct {
	db *sqlx.DB
}

// NewLearnerWordRepository creates a new repository instance
func NewLearnerWordRepository(db *sqlx.DB) *LearnerWordRepository {
	return &LearnerWordRepository{db: db}
}

// Get returns the record of a word owned by a learner
func (r *LearnerWordRepository) Get(ctx context.Context, userID, wordID int64) (*models.LearnerWord, error) {
	var lw models.LearnerWord
	query := r.db.Rebind(`SELECT ` + learnerWordColumns + ` FROM user_words WHERE user_id = ? AND word_id = ?`)
	if err := r.db.GetContext(ctx, &lw, query, userID, wordID); err != nil {
		return nil, errors.Wrapf(err, "failed to get word %d of user %d", wordID, userID)
	}
	return &lw, nil
}

// Exists reports whether a learner owns a word
func (r *LearnerWordRepository) Exists(ctx context.Context, userID, wordID int64) (bool, error) {
	var count int
	query := r.db.Rebind(`SELECT COUNT(*) FROM user_words WHERE user_id = ? AND word_id = ?`)
	if err := r.db.GetContext(ctx, &count, query, userID, wordID); err != nil {
		return false, errors.Wrap(err, "failed to check user word")
	}
	return count > 0, nil
}

// AddMany gives the learner the listed words in the given category.
// Words the learner already owns are left untouched. Returns the number of words added.
func (r *LearnerWordRepository) AddMany(ctx context.Context, userID int64, wordIDs []int64, category models.Category) (int, error) {
	if len(wordIDs) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	query := tx.Rebind(`
		INSERT INTO user_words (user_id, word_id, category, review_count, correct_count, created_at, updated_at)
		VALUES (?, ?, ?, 0, 0, ?, ?)
		ON CONFLICT (user_id, word_id) DO NOTHING`)
	now := time.Now().UTC()
	added := 0
	for _, wordID := range wordIDs {
		res, err := tx.ExecContext(ctx, query, userID, wordID, category, now, now)
		if err != nil {
			return 0, errors.Wrapf(err, "failed to add word %d", wordID)
		}
		if n, err := res.RowsAffected(); err == nil {
			added += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "failed to commit user words")
	}
	return added, nil
}

// Update stores the review statistics and category of a record
func (r *LearnerWordRepository) Update(ctx context.Context, lw *models.LearnerWord) error {
	lw.UpdatedAt = time.Now().UTC()
	query := r.db.Rebind(`
		UPDATE user_words SET
			category = ?, review_count = ?, correct_count = ?,
			last_reviewed_at = ?, next_review_at = ?, updated_at = ?
		WHERE id = ?`)
	_, err := r.db.ExecContext(ctx, query,
		lw.Category, lw.ReviewCount, lw.CorrectCount,
		utcPtr(lw.LastReviewedAt), utcPtr(lw.NextReviewAt), lw.UpdatedAt, lw.ID,
	)
	if err != nil {
		return errors.Wrapf(err, "failed to update user word %d", lw.ID)
	}
	return nil
}

// ListDue returns the learner's records of a category that are due at now
func (r *LearnerWordRepository) ListDue(ctx context.Context, userID int64, category models.Category, now time.Time) ([]models.LearnerWord, error) {
	var records []models.LearnerWord
	query := r.db.Rebind(`
		SELECT ` + learnerWordColumns + ` FROM user_words
		WHERE user_id = ? AND category = ? AND (next_review_at IS NULL OR next_review_at <= ?)
		ORDER BY id ASC`)
	if err := r.db.SelectContext(ctx, &records, query, userID, category, now.UTC()); err != nil {
		return nil, errors.Wrap(err, "failed to get due words")
	}
	return records, nil
}

// CountDue counts the learner's due records of a category
func (r *LearnerWordRepository) CountDue(ctx context.Context, userID int64, category models.Category, now time.Time) (int, error) {
	var count int
	query := r.db.Rebind(`
		SELECT COUNT(*) FROM user_words
		WHERE user_id = ? AND category = ? AND (next_review_at IS NULL OR next_review_at <= ?)`)
	if err := r.db.GetContext(ctx, &count, query, userID, category, now.UTC()); err != nil {
		return 0, errors.Wrap(err, "failed to count due words")
	}
	return count, nil
}

// CountByCategory counts the learner's records in one category
func (r *LearnerWordRepository) CountByCategory(ctx context.Context, userID int64, category models.Category) (int, error) {
	var count int
	query := r.db.Rebind(`SELECT COUNT(*) FROM user_words WHERE user_id = ? AND category = ?`)
	if err := r.db.GetContext(ctx, &count, query, userID, category); err != nil {
		return 0, errors.Wrap(err, "failed to count user words")
	}
	return count, nil
}

// Stats counts the learner's records per category
func (r *LearnerWordRepository) Stats(ctx context.Context, userID int64) (models.FlashcardStats, error) {
	var rows []struct {
		Category models.Category `db:"category"`
		Total    int             `db:"total"`
	}
	var stats models.FlashcardStats
	query := r.db.Rebind(`SELECT category, COUNT(*) AS total FROM user_words WHERE user_id = ? GROUP BY category`)
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return stats, errors.Wrap(err, "failed to get flashcard statistics")
	}
	for _, row := range rows {
		stats.Add(row.Category, row.Total)
	}
	return stats, nil
}

// OwnedWordIDs returns every word ID the learner owns, regardless of category
func (r *LearnerWordRepository) OwnedWordIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	query := r.db.Rebind(`SELECT word_id FROM user_words WHERE user_id = ? ORDER BY word_id`)
	if err := r.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, errors.Wrap(err, "failed to get owned words")
	}
	return ids, nil
}

// RecentWords returns the catalog entries of the learner's most recently added words
func (r *LearnerWordRepository) RecentWords(ctx context.Context, userID int64, limit int) ([]models.Word, error) {
	var words []models.Word
	query := r.db.Rebind(`
		SELECT w.id, w.finnish, w.english, w.part_of_speech, w.cefr_level, w.commonality_rank,
			w.difficulty, w.context, w.created_at, w.updated_at
		FROM user_words uw
		JOIN words w ON w.id = uw.word_id
		WHERE uw.user_id = ?
		ORDER BY uw.created_at DESC, uw.id DESC
		LIMIT ?`)
	if err := r.db.SelectContext(ctx, &words, query, userID, limit); err != nil {
		return nil, errors.Wrap(err, "failed to get recent words")
	}
	return words, nil
}

// Flashcard returns a learner's word joined with its catalog entry
func (r *LearnerWordRepository) Flashcard(ctx context.Context, userID, wordID int64) (*models.Flashcard, error) {
	var card struct {
		models.Flashcard
		CorrectCount int `db:"correct_count"`
	}
	query := r.db.Rebind(`
		SELECT uw.id, uw.word_id, w.finnish, w.english, w.part_of_speech, w.context,
			uw.category, uw.review_count, uw.correct_count
		FROM user_words uw
		JOIN words w ON w.id = uw.word_id
		WHERE uw.user_id = ? AND uw.word_id = ?`)
	if err := r.db.GetContext(ctx, &card, query, userID, wordID); err != nil {
		return nil, errors.Wrapf(err, "failed to get flashcard %d", wordID)
	}
	lw := models.LearnerWord{ReviewCount: card.ReviewCount, CorrectCount: card.CorrectCount}
	card.MasteryPercentage = lw.MasteryPercentage()
	return &card.Flashcard, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
