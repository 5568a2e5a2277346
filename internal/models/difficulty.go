package models

import "strings"

// Difficulty is the canonical difficulty level of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) String() string { return string(d) }

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ParseDifficulty normalizes a raw difficulty value to its canonical level.
// Matching is case-insensitive and accepts the historical aliases
// beginner/intermediate/advanced, which older catalog snapshots used for
// the same three levels. The second return value is false for anything
// else; callers choose their own fallback (the HTTP layer returns the
// unfiltered list, the filter pipeline matches nothing).
func ParseDifficulty(raw string) (Difficulty, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "easy", "beginner":
		return DifficultyEasy, true
	case "medium", "intermediate":
		return DifficultyMedium, true
	case "hard", "advanced":
		return DifficultyHard, true
	}
	return "", false
}
