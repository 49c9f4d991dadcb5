package database

import (
	"context"
	"time"

	"github.com/example/terve/pkg/models"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const nounFormColumns = `genitive_sg, partitive_sg, illative_sg, inessive_sg, elative_sg, allative_sg, adessive_sg, ablative_sg,
	nominative_pl, genitive_pl, partitive_pl, illative_pl, inessive_pl, elative_pl, allative_pl, adessive_pl, ablative_pl`

const nounFormParams = `:genitive_sg, :partitive_sg, :illative_sg, :inessive_sg, :elative_sg, :allative_sg, :adessive_sg, :ablative_sg,
	:nominative_pl, :genitive_pl, :partitive_pl, :illative_pl, :inessive_pl, :elative_pl, :allative_pl, :adessive_pl, :ablative_pl`

// NounRepository handles database operations for declension nouns
type NounRepository struct {
	db *sqlx.DB
}

// NewNounRepository creates a new repository instance
func NewNounRepository(db *sqlx.DB) *NounRepository {
	return &NounRepository{db: db}
}

// GetByID returns a noun by ID
func (r *NounRepository) GetByID(ctx context.Context, id int64) (*models.Noun, error) {
	var noun models.Noun
	if err := r.db.GetContext(ctx, &noun, r.db.Rebind(`SELECT * FROM nouns WHERE id = ?`), id); err != nil {
		return nil, errors.Wrapf(err, "failed to get noun %d", id)
	}
	return &noun, nil
}

// GetByNominative returns a noun by its basic form
func (r *NounRepository) GetByNominative(ctx context.Context, nominative string) (*models.Noun, error) {
	var noun models.Noun
	if err := r.db.GetContext(ctx, &noun, r.db.Rebind(`SELECT * FROM nouns WHERE nominative = ?`), nominative); err != nil {
		return nil, errors.Wrapf(err, "failed to get noun %q", nominative)
	}
	return &noun, nil
}

// Create inserts a new noun
func (r *NounRepository) Create(ctx context.Context, noun *models.Noun) error {
	now := time.Now().UTC()
	noun.CreatedAt, noun.UpdatedAt = now, now
	rows, err := r.db.NamedQueryContext(ctx, `
		INSERT INTO nouns (nominative, english, cefr_level, noun_type, `+nounFormColumns+`, created_at, updated_at)
		VALUES (:nominative, :english, :cefr_level, :noun_type, `+nounFormParams+`, :created_at, :updated_at)
		RETURNING id`, noun)
	if err != nil {
		return errors.Wrapf(err, "failed to create noun %q", noun.Nominative)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&noun.ID); err != nil {
			return errors.Wrapf(err, "failed to read id of noun %q", noun.Nominative)
		}
	}
	return rows.Err()
}

// Update modifies an existing noun
func (r *NounRepository) Update(ctx context.Context, noun *models.Noun) error {
	noun.UpdatedAt = time.Now().UTC()
	_, err := r.db.NamedExecContext(ctx, `
		UPDATE nouns SET
			english = :english, cefr_level = :cefr_level, noun_type = :noun_type,
			genitive_sg = :genitive_sg, partitive_sg = :partitive_sg, illative_sg = :illative_sg,
			inessive_sg = :inessive_sg, elative_sg = :elative_sg, allative_sg = :allative_sg,
			adessive_sg = :adessive_sg, ablative_sg = :ablative_sg,
			nominative_pl = :nominative_pl, genitive_pl = :genitive_pl, partitive_pl = :partitive_pl,
			illative_pl = :illative_pl, inessive_pl = :inessive_pl, elative_pl = :elative_pl,
			allative_pl = :allative_pl, adessive_pl = :adessive_pl, ablative_pl = :ablative_pl,
			updated_at = :updated_at
		WHERE id = :id`, noun)
	if err != nil {
		return errors.Wrapf(err, "failed to update noun %d", noun.ID)
	}
	return nil
}

// IDsAtLevels returns the IDs of nouns of the given levels
func (r *NounRepository) IDsAtLevels(ctx context.Context, levels []models.Level) ([]int64, error) {
	if len(levels) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT id FROM nouns WHERE cefr_level IN (?) ORDER BY id`, levels)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build noun query")
	}
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, r.db.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "failed to list nouns")
	}
	return ids, nil
}
