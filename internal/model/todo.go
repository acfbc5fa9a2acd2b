package model

import "time"

// Todo is a single todo item as known to the remote service.
// The ID and both timestamps are server-assigned; the ID never changes
// after creation, and UpdatedAt is reassigned by the server on every
// successful mutation.
type Todo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
