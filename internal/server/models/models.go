// Package models contains the server-side data model: persisted entities
// (User, Session, Message) and views derived from them.
package models

import "time"

// User is an identity record. LoginHandle is unique and case-sensitive;
// DisplayName is not required to be unique. PasswordHash is a bcrypt hash
// and must never leave the service layer.
type User struct {
	ID           string
	LoginHandle  string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
}

// Session is proof of authentication: an opaque high-entropy token bound to
// one user and one validity window. An expired or deleted session is
// indistinguishable from a nonexistent one to callers.
type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Message is one directed unit of communication. Messages are immutable and
// never deleted.
type Message struct {
	ID          string
	SenderID    string
	RecipientID string
	Content     string
	CreatedAt   time.Time
}

// DirectoryEntry is the public projection of a user returned by the
// directory search. Login handles are deliberately absent.
type DirectoryEntry struct {
	ID          string
	DisplayName string
}

// Conversation is a derived view: one row per distinct counterpart the user
// has exchanged messages with, annotated with that pair's most recent
// message. It is computed on demand, never stored.
type Conversation struct {
	CounterpartID          string
	CounterpartDisplayName string
	LastMessageID          string
	LastMessageContent     string
	LastMessageTime        time.Time
}
