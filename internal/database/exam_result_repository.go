package database

import (
	"context"
	"time"

	"github.com/example/terve/pkg/models"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const examResultColumns = `id, user_id, exam_type, target_level, score, max_score, questions_correct, total_questions, time_spent_minutes, sections, created_at, updated_at`

// ExamResultRepository handles database operations for graded exams
type ExamResultRepository struct {
	db *sqlx.DB
}

// NewExamResultRepository creates a new repository instance
func NewExamResultRepository(db *sqlx.DB) *ExamResultRepository {
	return &ExamResultRepository{db: db}
}

// LevelAverage is the mean raw score and attempt count of one target level
type LevelAverage struct {
	TargetLevel models.Level `db:"target_level"`
	AvgScore    float64      `db:"avg_score"`
	Attempts    int          `db:"attempts"`
}

// Create inserts a new exam result
func (r *ExamResultRepository) Create(ctx context.Context, result *models.ExamResult) error {
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now().UTC()
	}
	result.CreatedAt = result.CreatedAt.UTC()
	result.UpdatedAt = result.CreatedAt
	if result.Sections == "" {
		result.Sections = "{}"
	}
	query := r.db.Rebind(`
		INSERT INTO exam_results (
			user_id, exam_type, target_level, score, max_score, questions_correct,
			total_questions, time_spent_minutes, sections, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)
	err := r.db.QueryRowxContext(ctx, query,
		result.UserID, result.ExamType, result.TargetLevel, result.Score, result.MaxScore,
		result.QuestionsCorrect, result.TotalQuestions, result.TimeSpentMinutes, result.Sections,
		result.CreatedAt, result.UpdatedAt,
	).Scan(&result.ID)
	if err != nil {
		return errors.Wrap(err, "failed to create exam result")
	}
	return nil
}

// GetByID returns an exam result by ID
func (r *ExamResultRepository) GetByID(ctx context.Context, id int64) (*models.ExamResult, error) {
	var result models.ExamResult
	query := r.db.Rebind(`SELECT ` + examResultColumns + ` FROM exam_results WHERE id = ?`)
	if err := r.db.GetContext(ctx, &result, query, id); err != nil {
		return nil, errors.Wrapf(err, "failed to get exam result %d", id)
	}
	return &result, nil
}

// ListByUser returns a page of a user's results, newest first. limit <= 0 returns all of them.
func (r *ExamResultRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.ExamResult, error) {
	var results []models.ExamResult
	query := `SELECT ` + examResultColumns + ` FROM exam_results WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	args := []interface{}{userID}
	if limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, offset)
	}
	if err := r.db.SelectContext(ctx, &results, r.db.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "failed to get exam results")
	}
	return results, nil
}

// CountByUser returns the number of results of a user
func (r *ExamResultRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(`SELECT COUNT(*) FROM exam_results WHERE user_id = ?`), userID); err != nil {
		return 0, errors.Wrap(err, "failed to count exam results")
	}
	return count, nil
}

// AveragesByLevel groups a user's raw scores by target level
func (r *ExamResultRepository) AveragesByLevel(ctx context.Context, userID int64) ([]LevelAverage, error) {
	var rows []LevelAverage
	query := r.db.Rebind(`
		SELECT target_level, AVG(score) AS avg_score, COUNT(*) AS attempts
		FROM exam_results
		WHERE user_id = ?
		GROUP BY target_level
		ORDER BY target_level`)
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, errors.Wrap(err, "failed to get average scores")
	}
	return rows, nil
}
