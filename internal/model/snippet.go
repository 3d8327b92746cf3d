// Package model defines the data structures used throughout the application.
package model

import "time"

// Snippet represents a shared code snippet.
//
// UserID is the owner's Clerk subject ID, fixed at creation time — it is the
// value every ownership check compares against. UserName is the owner's
// display name copied ("denormalized") at creation so listings don't need a
// join; it is accepted as potentially stale if the user later renames.
//
// A snippet owns its comments and stars in a lifecycle sense: deleting a
// snippet must take every dependent comment and star with it.
type Snippet struct {
	ID        string    `json:"id"        db:"id"`
	UserID    string    `json:"userId"    db:"user_id"`   // Owner's Clerk subject ID, immutable
	UserName  string    `json:"userName"  db:"user_name"` // Owner display name at creation time
	Title     string    `json:"title"     db:"title"`
	Language  string    `json:"language"  db:"language"`
	Code      string    `json:"code"      db:"code"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
