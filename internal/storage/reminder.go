// Package storage holds small in-process state of the delivery layer.
package storage

import "sync"

// ReminderMessages remembers the last repeat reminder sent to each user, so a
// new reminder can replace the old one instead of piling up in the chat.
type ReminderMessages struct {
	mu       sync.Mutex
	messages map[int64]int // external id -> message id
}

func NewReminderMessages() *ReminderMessages {
	return &ReminderMessages{messages: make(map[int64]int)}
}

// Swap records messageID as the current reminder and returns the previous one.
func (s *ReminderMessages) Swap(externalID int64, messageID int) (prev int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok = s.messages[externalID]
	s.messages[externalID] = messageID
	return prev, ok
}

// Take removes and returns the current reminder of the user.
func (s *ReminderMessages) Take(externalID int64) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.messages[externalID]
	delete(s.messages, externalID)
	return id, ok
}
