package entities

import "strconv"

// CategoryKind distinguishes the repeat pool from the fresh difficulty pools.
type CategoryKind string

const (
	CategoryRepeat CategoryKind = "repeat"
	CategoryFresh  CategoryKind = "difficulty"
)

// Category is one eligible pool of the first-stage draw.
type Category struct {
	Kind        CategoryKind
	Difficulty  Difficulty // zero for the repeat pool
	Weight      float64    // raw weight
	Probability float64    // weight normalized over the eligible set
	Size        int        // number of words in the pool when it was counted
}

func (c Category) String() string {
	if c.Kind == CategoryRepeat {
		return string(CategoryRepeat)
	}
	return string(CategoryFresh) + "_" + strconv.Itoa(int(c.Difficulty))
}

// Stats summarizes a user's progress.
type Stats struct {
	StudiedCount int `json:"studied_count"`
	RepeatCount  int `json:"repeat_count"`
}
