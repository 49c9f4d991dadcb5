package models

import "time"

// StoryLength is the preferred length band of generated stories
type StoryLength string

const (
	StoryShort  StoryLength = "short"
	StoryMedium StoryLength = "medium"
	StoryLong   StoryLength = "long"
)

// User is an authenticated learner
type User struct {
	ID                   int64       `json:"id" db:"id"`
	Email                string      `json:"email" db:"email"`
	Name                 string      `json:"name" db:"name"`
	OAuthProvider        string      `json:"oauth_provider" db:"oauth_provider"` // google or github
	OAuthID              string      `json:"-" db:"oauth_id"`
	CEFRLevel            Level       `json:"cefr_level" db:"cefr_level"`
	PreferredStoryLength StoryLength `json:"preferred_story_length" db:"preferred_story_length"`
	TelegramChatID       *int64      `json:"telegram_chat_id,omitempty" db:"telegram_chat_id"` // Reminders are sent only when set
	CreatedAt            time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at" db:"updated_at"`
}
