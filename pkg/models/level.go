package models

import "strings"

// Level is a CEFR proficiency level
type Level string

const (
	A1 Level = "A1"
	A2 Level = "A2"
	B1 Level = "B1"
	B2 Level = "B2"
	C1 Level = "C1"
	C2 Level = "C2"
)

// DefaultLevel is used by every level-keyed table when a level is unknown
const DefaultLevel = A1

// Levels lists all levels from easiest to hardest
var Levels = []Level{A1, A2, B1, B2, C1, C2}

// ParseLevel parses a level case-insensitively
func ParseLevel(s string) (Level, bool) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	return l, l.Valid()
}

// Valid reports whether l is one of the six CEFR levels
func (l Level) Valid() bool {
	return l.index() >= 0
}

// OrDefault returns l, or DefaultLevel when l is unknown
func (l Level) OrDefault() Level {
	if l.Valid() {
		return l
	}
	return DefaultLevel
}

func (l Level) index() int {
	for i, lvl := range Levels {
		if lvl == l {
			return i
		}
	}
	return -1
}

// LevelsUpTo returns every level at or below l. Unknown levels yield only DefaultLevel.
func LevelsUpTo(l Level) []Level {
	idx := l.index()
	if idx < 0 {
		return []Level{DefaultLevel}
	}
	out := make([]Level, idx+1)
	copy(out, Levels[:idx+1])
	return out
}
