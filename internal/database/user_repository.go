package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/terve/pkg/models"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const userColumns = `id, email, name, oauth_provider, oauth_id, cefr_level, preferred_story_length, telegram_chat_id, created_at, updated_at`

// ErrChatLinked is returned when a Telegram chat already belongs to another user
var ErrChatLinked = errors.New("telegram chat is already linked to another user")

// UserRepository handles database operations for users
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new repository instance
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID returns a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, r.db.Rebind(`SELECT `+userColumns+` FROM users WHERE id = ?`), id); err != nil {
		return nil, errors.Wrapf(err, "failed to get user %d", id)
	}
	return &user, nil
}

// GetByOAuth returns the user linked to an OAuth account
func (r *UserRepository) GetByOAuth(ctx context.Context, provider, oauthID string) (*models.User, error) {
	var user models.User
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE oauth_provider = ? AND oauth_id = ?`)
	if err := r.db.GetContext(ctx, &user, query, provider, oauthID); err != nil {
		return nil, errors.Wrapf(err, "failed to get %s user", provider)
	}
	return &user, nil
}

// GetByTelegramChatID returns the user that linked the chat
func (r *UserRepository) GetByTelegramChatID(ctx context.Context, chatID int64) (*models.User, error) {
	var user models.User
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE telegram_chat_id = ?`)
	if err := r.db.GetContext(ctx, &user, query, chatID); err != nil {
		return nil, errors.Wrapf(err, "failed to get user of chat %d", chatID)
	}
	return &user, nil
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	if user.CEFRLevel == "" {
		user.CEFRLevel = models.DefaultLevel
	}
	if user.PreferredStoryLength == "" {
		user.PreferredStoryLength = models.StoryMedium
	}
	query := r.db.Rebind(`
		INSERT INTO users (email, name, oauth_provider, oauth_id, cefr_level, preferred_story_length, telegram_chat_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)
	err := r.db.QueryRowxContext(ctx, query,
		user.Email, user.Name, user.OAuthProvider, user.OAuthID, user.CEFRLevel,
		user.PreferredStoryLength, user.TelegramChatID, now, now,
	).Scan(&user.ID)
	if err != nil {
		return errors.Wrapf(err, "failed to create user %s", user.Email)
	}
	user.CreatedAt, user.UpdatedAt = now, now
	return nil
}

// Update modifies the profile fields of a user
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	query := r.db.Rebind(`
		UPDATE users SET
			email = ?, name = ?, cefr_level = ?, preferred_story_length = ?, telegram_chat_id = ?, updated_at = ?
		WHERE id = ?`)
	_, err := r.db.ExecContext(ctx, query,
		user.Email, user.Name, user.CEFRLevel, user.PreferredStoryLength, user.TelegramChatID, user.UpdatedAt, user.ID,
	)
	if err != nil {
		return errors.Wrapf(err, "failed to update user %d", user.ID)
	}
	return nil
}

// ListIDs returns the ID of every user
func (r *UserRepository) ListIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, `SELECT id FROM users ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}
	return ids, nil
}

// ListWithTelegram returns the users that linked a Telegram chat
func (r *UserRepository) ListWithTelegram(ctx context.Context) ([]models.User, error) {
	var users []models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE telegram_chat_id IS NOT NULL ORDER BY id`
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, errors.Wrap(err, "failed to get users for notification")
	}
	return users, nil
}

// SetTelegramLinkCode stores the one-time code the user sends to the bot to link a chat
func (r *UserRepository) SetTelegramLinkCode(ctx context.Context, userID int64, code string, expiresAt time.Time) error {
	query := r.db.Rebind(`UPDATE users SET telegram_link_code = ?, telegram_link_expires_at = ? WHERE id = ?`)
	if _, err := r.db.ExecContext(ctx, query, code, expiresAt.UTC(), userID); err != nil {
		return errors.Wrapf(err, "failed to store link code of user %d", userID)
	}
	return nil
}

// LinkTelegram binds the chat to the user holding the unexpired code and consumes the code.
// Unknown or expired codes yield sql.ErrNoRows, a chat of another user yields ErrChatLinked.
func (r *UserRepository) LinkTelegram(ctx context.Context, code string, chatID int64, now time.Time) (*models.User, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	var userID int64
	query := tx.Rebind(`SELECT id FROM users WHERE telegram_link_code = ? AND telegram_link_expires_at > ?`)
	if err := tx.GetContext(ctx, &userID, query, code, now.UTC()); err != nil {
		return nil, errors.Wrap(err, "failed to find link code")
	}

	var owner int64
	err = tx.GetContext(ctx, &owner, tx.Rebind(`SELECT id FROM users WHERE telegram_chat_id = ?`), chatID)
	switch {
	case err == nil && owner != userID:
		return nil, ErrChatLinked
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return nil, errors.Wrapf(err, "failed to check chat %d", chatID)
	}

	query = tx.Rebind(`
		UPDATE users SET
			telegram_chat_id = ?, telegram_link_code = NULL, telegram_link_expires_at = NULL, updated_at = ?
		WHERE id = ?`)
	if _, err := tx.ExecContext(ctx, query, chatID, now.UTC(), userID); err != nil {
		return nil, errors.Wrapf(err, "failed to link chat %d", chatID)
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "failed to commit chat link")
	}
	return r.GetByID(ctx, userID)
}
