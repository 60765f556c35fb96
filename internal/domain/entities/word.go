// Package entities contains domain entities used across the application.
package entities

import "strconv"

// Difficulty is the catalog tier of a word.
type Difficulty int

const (
	DifficultyEasy   Difficulty = 1
	DifficultyMedium Difficulty = 2
	DifficultyHard   Difficulty = 3
)

// Difficulties lists every tier in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Valid reports whether d is one of the known tiers.
func (d Difficulty) Valid() bool {
	return d >= DifficultyEasy && d <= DifficultyHard
}

// Mode returns the quiz mode name of the tier ("easy", "medium", "hard").
func (d Difficulty) Mode() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return "difficulty_" + strconv.Itoa(int(d))
	}
}

// ParseMode maps a quiz mode name to its difficulty.
func ParseMode(mode string) (Difficulty, bool) {
	switch mode {
	case "easy":
		return DifficultyEasy, true
	case "medium":
		return DifficultyMedium, true
	case "hard":
		return DifficultyHard, true
	default:
		return 0, false
	}
}

// Word is a catalog entry: a source-language text and its target-language translation.
type Word struct {
	ID         int64      `db:"word_id" json:"word_id"`
	Source     string     `db:"text_source" json:"source"`
	Target     string     `db:"text_target" json:"target"`
	Difficulty Difficulty `db:"difficulty" json:"difficulty"`
}
