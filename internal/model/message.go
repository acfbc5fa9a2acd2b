package model

import "github.com/google/uuid"

// MessageKind distinguishes success notices from error notices.
type MessageKind int

const (
	MessageSuccess MessageKind = iota
	MessageError
)

// StatusMessage is a transient notice shown in the status bar. Each
// message carries a unique ID so the auto-clear timer of a superseded
// message can be told apart from the timer of the current one.
type StatusMessage struct {
	ID   string
	Kind MessageKind
	Text string
}

// NewStatusMessage creates a status message with a fresh identity.
func NewStatusMessage(kind MessageKind, text string) StatusMessage {
	return StatusMessage{
		ID:   uuid.New().String(),
		Kind: kind,
		Text: text,
	}
}
