package model

import "time"

// Star is a user's bookmark on a snippet.
//
// At most one Star exists per (UserID, SnippetID) pair — the toggle
// operation flips membership, and a UNIQUE constraint in the database backs
// the invariant up against racing toggles.
type Star struct {
	ID        string    `json:"id"        db:"id"`
	UserID    string    `json:"userId"    db:"user_id"` // Clerk subject ID
	SnippetID string    `json:"snippetId" db:"snippet_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
