package database

import (
	"context"
	"time"

	"github.com/example/terve/pkg/models"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const verbFormColumns = `present_mina, present_sina, present_han, present_me, present_te, present_he,
	past_mina, past_sina, past_han, past_me, past_te, past_he,
	conditional_mina, conditional_sina, conditional_han, conditional_me, conditional_te, conditional_he`

const verbFormParams = `:present_mina, :present_sina, :present_han, :present_me, :present_te, :present_he,
	:past_mina, :past_sina, :past_han, :past_me, :past_te, :past_he,
	:conditional_mina, :conditional_sina, :conditional_han, :conditional_me, :conditional_te, :conditional_he`

// VerbRepository handles database operations for conjugation verbs
type VerbRepository struct {
	db *sqlx.DB
}

// NewVerbRepository creates a new repository instance
func NewVerbRepository(db *sqlx.DB) *VerbRepository {
	return &VerbRepository{db: db}
}

// GetByID returns a verb by ID
func (r *VerbRepository) GetByID(ctx context.Context, id int64) (*models.Verb, error) {
	var verb models.Verb
	if err := r.db.GetContext(ctx, &verb, r.db.Rebind(`SELECT * FROM verbs WHERE id = ?`), id); err != nil {
		return nil, errors.Wrapf(err, "failed to get verb %d", id)
	}
	return &verb, nil
}

// GetByInfinitive returns a verb by its infinitive
func (r *VerbRepository) GetByInfinitive(ctx context.Context, infinitive string) (*models.Verb, error) {
	var verb models.Verb
	if err := r.db.GetContext(ctx, &verb, r.db.Rebind(`SELECT * FROM verbs WHERE infinitive = ?`), infinitive); err != nil {
		return nil, errors.Wrapf(err, "failed to get verb %q", infinitive)
	}
	return &verb, nil
}

// Create inserts a new verb
func (r *VerbRepository) Create(ctx context.Context, verb *models.Verb) error {
	now := time.Now().UTC()
	verb.CreatedAt, verb.UpdatedAt = now, now
	rows, err := r.db.NamedQueryContext(ctx, `
		INSERT INTO verbs (infinitive, english, verb_type, cefr_level, `+verbFormColumns+`, created_at, updated_at)
		VALUES (:infinitive, :english, :verb_type, :cefr_level, `+verbFormParams+`, :created_at, :updated_at)
		RETURNING id`, verb)
	if err != nil {
		return errors.Wrapf(err, "failed to create verb %q", verb.Infinitive)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&verb.ID); err != nil {
			return errors.Wrapf(err, "failed to read id of verb %q", verb.Infinitive)
		}
	}
	return rows.Err()
}

// Update modifies an existing verb
func (r *VerbRepository) Update(ctx context.Context, verb *models.Verb) error {
	verb.UpdatedAt = time.Now().UTC()
	_, err := r.db.NamedExecContext(ctx, `
		UPDATE verbs SET
			english = :english, verb_type = :verb_type, cefr_level = :cefr_level,
			present_mina = :present_mina, present_sina = :present_sina, present_han = :present_han,
			present_me = :present_me, present_te = :present_te, present_he = :present_he,
			past_mina = :past_mina, past_sina = :past_sina, past_han = :past_han,
			past_me = :past_me, past_te = :past_te, past_he = :past_he,
			conditional_mina = :conditional_mina, conditional_sina = :conditional_sina, conditional_han = :conditional_han,
			conditional_me = :conditional_me, conditional_te = :conditional_te, conditional_he = :conditional_he,
			updated_at = :updated_at
		WHERE id = :id`, verb)
	if err != nil {
		return errors.Wrapf(err, "failed to update verb %d", verb.ID)
	}
	return nil
}

// IDsAtLevels returns the IDs of verbs of the given levels
func (r *VerbRepository) IDsAtLevels(ctx context.Context, levels []models.Level) ([]int64, error) {
	if len(levels) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT id FROM verbs WHERE cefr_level IN (?) ORDER BY id`, levels)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build verb query")
	}
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, r.db.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "failed to list verbs")
	}
	return ids, nil
}
