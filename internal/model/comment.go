package model

import "time"

// Comment is a user's comment on a snippet. The referenced snippet must
// exist at creation time; comments die with their snippet (cascade) or
// individually at their author's hand.
type Comment struct {
	ID        string    `json:"id"        db:"id"`
	SnippetID string    `json:"snippetId" db:"snippet_id"`
	UserID    string    `json:"userId"    db:"user_id"`   // Author's Clerk subject ID
	UserName  string    `json:"userName"  db:"user_name"` // Author display name at creation time
	Content   string    `json:"content"   db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
