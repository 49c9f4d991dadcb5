package models

// FlashcardStats counts a learner's words per category
type FlashcardStats struct {
	Learning      int `json:"learning"`
	WellKnown     int `json:"well_known"`
	Todo          int `json:"todo"`
	NotInterested int `json:"not_interested"`
	Total         int `json:"total"`
}

// Add records count words in category c
func (s *FlashcardStats) Add(c Category, count int) {
	switch c {
	case CategoryLearning:
		s.Learning += count
	case CategoryWellKnown:
		s.WellKnown += count
	case CategoryTodo:
		s.Todo += count
	case CategoryNotInterested:
		s.NotInterested += count
	default:
		return
	}
	s.Total += count
}
