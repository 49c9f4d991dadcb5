package database

import (
	"context"
	"time"

	"github.com/example/terve/pkg/models"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// ExamInstanceRepository stores generated exams until they are submitted or abandoned
type ExamInstanceRepository struct {
	db *sqlx.DB
}

// NewExamInstanceRepository creates a new repository instance
func NewExamInstanceRepository(db *sqlx.DB) *ExamInstanceRepository {
	return &ExamInstanceRepository{db: db}
}

// Create inserts a generated exam
func (r *ExamInstanceRepository) Create(ctx context.Context, inst *models.ExamInstance) error {
	query := r.db.Rebind(`
		INSERT INTO exam_instances (id, user_id, target_level, time_limit_minutes, questions, started_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		inst.ID, inst.UserID, inst.TargetLevel, inst.TimeLimitMinutes, inst.Questions,
		inst.StartedAt.UTC(), inst.ExpiresAt.UTC(),
	)
	if err != nil {
		return errors.Wrapf(err, "failed to create exam %s", inst.ID)
	}
	return nil
}

// Get returns a stored exam by ID
func (r *ExamInstanceRepository) Get(ctx context.Context, id string) (*models.ExamInstance, error) {
	var inst models.ExamInstance
	query := r.db.Rebind(`
		SELECT id, user_id, target_level, time_limit_minutes, questions, started_at, expires_at
		FROM exam_instances WHERE id = ?`)
	if err := r.db.GetContext(ctx, &inst, query, id); err != nil {
		return nil, errors.Wrapf(err, "failed to get exam %s", id)
	}
	return &inst, nil
}

// Delete removes a stored exam
func (r *ExamInstanceRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM exam_instances WHERE id = ?`), id); err != nil {
		return errors.Wrapf(err, "failed to delete exam %s", id)
	}
	return nil
}

// DeleteExpiredBefore removes every exam that expired before cutoff and returns how many were removed
func (r *ExamInstanceRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM exam_instances WHERE expires_at < ?`), cutoff.UTC())
	if err != nil {
		return 0, errors.Wrap(err, "failed to purge abandoned exams")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "failed to count purged exams")
	}
	return int(n), nil
}
