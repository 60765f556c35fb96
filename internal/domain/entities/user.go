package entities

import "time"

// User represents a quiz participant.
type User struct {
	ID         int64     // internal user ID
	ExternalID int64     // stable identity supplied by the client (Telegram user ID)
	CreatedAt  time.Time // first time the user was seen
}

// RepeatDigest is a user together with the size of their repeat pool.
type RepeatDigest struct {
	UserID      int64
	ExternalID  int64
	RepeatCount int
}
