package entities

// WordPick is the word chosen by the adaptive selector.
type WordPick struct {
	WordID      int64  `json:"word_id"`
	Source      string `json:"text_source"`
	Target      string `json:"text_target"`
	WasInRepeat bool   `json:"was_in_repeat"` // true only when drawn from the repeat pool
}

// Round is a single multiple-choice question of a difficulty mode.
type Round struct {
	WordID     int64      `json:"word_id"`
	Source     string     `json:"text_source"`
	Options    []string   `json:"options"`
	Difficulty Difficulty `json:"-"`
}
