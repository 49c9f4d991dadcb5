package models

import "time"

// Word is a catalog entry of the Finnish vocabulary
type Word struct {
	ID              int64     `json:"id" db:"id"`
	Finnish         string    `json:"finnish" db:"finnish"`
	English         string    `json:"english" db:"english"`
	PartOfSpeech    string    `json:"part_of_speech" db:"part_of_speech"`
	CEFRLevel       Level     `json:"cefr_level" db:"cefr_level"`
	CommonalityRank int       `json:"commonality_rank" db:"commonality_rank"` // 1 is the most common word
	Difficulty      int       `json:"difficulty" db:"difficulty"`             // 1-5 scale of difficulty
	Context         string    `json:"context" db:"context"`                   // Example sentence, may be empty
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

const (
	MinDifficulty = 1
	MaxDifficulty = 5
)
