package models

import "time"

// ExamInstance is a generated exam stored between begin and submit
type ExamInstance struct {
	ID               string    `json:"id" db:"id"`
	UserID           int64     `json:"user_id" db:"user_id"`
	TargetLevel      Level     `json:"target_level" db:"target_level"`
	TimeLimitMinutes int       `json:"time_limit_minutes" db:"time_limit_minutes"`
	Questions        string    `json:"-" db:"questions"` // JSON encoded question list
	StartedAt        time.Time `json:"started_at" db:"started_at"`
	ExpiresAt        time.Time `json:"expires_at" db:"expires_at"` // StartedAt plus the time limit
}
