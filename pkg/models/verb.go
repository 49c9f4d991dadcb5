package models

import "time"

// Verb holds the present, past and conditional forms for all six persons
type Verb struct {
	ID              int64     `json:"id" db:"id"`
	Infinitive      string    `json:"infinitive" db:"infinitive"`
	English         string    `json:"english" db:"english"`
	VerbType        int       `json:"verb_type" db:"verb_type"` // Finnish verb type 1-6
	CEFRLevel       Level     `json:"cefr_level" db:"cefr_level"`
	PresentMina     string    `json:"present_mina" db:"present_mina"`
	PresentSina     string    `json:"present_sina" db:"present_sina"`
	PresentHan      string    `json:"present_han" db:"present_han"`
	PresentMe       string    `json:"present_me" db:"present_me"`
	PresentTe       string    `json:"present_te" db:"present_te"`
	PresentHe       string    `json:"present_he" db:"present_he"`
	PastMina        string    `json:"past_mina" db:"past_mina"`
	PastSina        string    `json:"past_sina" db:"past_sina"`
	PastHan         string    `json:"past_han" db:"past_han"`
	PastMe          string    `json:"past_me" db:"past_me"`
	PastTe          string    `json:"past_te" db:"past_te"`
	PastHe          string    `json:"past_he" db:"past_he"`
	ConditionalMina string    `json:"conditional_mina" db:"conditional_mina"`
	ConditionalSina string    `json:"conditional_sina" db:"conditional_sina"`
	ConditionalHan  string    `json:"conditional_han" db:"conditional_han"`
	ConditionalMe   string    `json:"conditional_me" db:"conditional_me"`
	ConditionalTe   string    `json:"conditional_te" db:"conditional_te"`
	ConditionalHe   string    `json:"conditional_he" db:"conditional_he"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
