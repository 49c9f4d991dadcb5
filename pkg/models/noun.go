package models

import "time"

// Noun holds every singular and plural case form drilled by the declension exercise
type Noun struct {
	ID           int64     `json:"id" db:"id"`
	Nominative   string    `json:"nominative" db:"nominative"`
	English      string    `json:"english" db:"english"`
	CEFRLevel    Level     `json:"cefr_level" db:"cefr_level"`
	NounType     string    `json:"noun_type" db:"noun_type"` // Strong/weak stem type
	GenitiveSg   string    `json:"genitive_sg" db:"genitive_sg"`
	PartitiveSg  string    `json:"partitive_sg" db:"partitive_sg"`
	IllativeSg   string    `json:"illative_sg" db:"illative_sg"`
	InessiveSg   string    `json:"inessive_sg" db:"inessive_sg"`
	ElativeSg    string    `json:"elative_sg" db:"elative_sg"`
	AllativeSg   string    `json:"allative_sg" db:"allative_sg"`
	AdessiveSg   string    `json:"adessive_sg" db:"adessive_sg"`
	AblativeSg   string    `json:"ablative_sg" db:"ablative_sg"`
	NominativePl string    `json:"nominative_pl" db:"nominative_pl"`
	GenitivePl   string    `json:"genitive_pl" db:"genitive_pl"`
	PartitivePl  string    `json:"partitive_pl" db:"partitive_pl"`
	IllativePl   string    `json:"illative_pl" db:"illative_pl"`
	InessivePl   string    `json:"inessive_pl" db:"inessive_pl"`
	ElativePl    string    `json:"elative_pl" db:"elative_pl"`
	AllativePl   string    `json:"allative_pl" db:"allative_pl"`
	AdessivePl   string    `json:"adessive_pl" db:"adessive_pl"`
	AblativePl   string    `json:"ablative_pl" db:"ablative_pl"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
