// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other
// languages, but without inheritance. Go favours composition over inheritance.
package model

import "time"

// User represents a local account record mirrored from the identity provider.
//
// We use Clerk as the identity provider, so the primary external identifier
// is the Clerk user ID (e.g. "user_2abc..."). We still generate our own
// internal string ID (xid) for consistency with Snippet and to avoid tying
// our primary keys to a third-party's numbering scheme.
//
// WHY IS ClerkID THE OWNERSHIP KEY (not ID)?
// Every request carries the caller's Clerk subject in its session token, and
// every ownership check compares that subject against a record's stored
// user_id. Snippets, comments, and stars therefore all reference users by
// ClerkID. The internal ID never leaves the users table. Mixing the two would
// silently break every later ownership comparison.
//
// The UNIQUE constraint on clerk_id in the DB ensures one provider account
// maps to exactly one local row — which is also what makes redelivery of a
// "user.created" webhook harmless.
//
// Users are created by the webhook sync path and never deleted by this layer.
type User struct {
	ID        string     `json:"id"        db:"id"`
	ClerkID   string     `json:"clerkId"   db:"clerk_id"` // Identity-provider subject, immutable
	Name      string     `json:"name"      db:"name"`
	Email     string     `json:"email"     db:"email"`
	IsPro     bool       `json:"isPro"     db:"is_pro"`
	ProSince  *time.Time `json:"proSince,omitempty" db:"pro_since"` // nil until upgraded
	CustomerID string    `json:"-"         db:"customer_id"` // Billing provider customer ref (may be empty)
	OrderID   string     `json:"-"         db:"order_id"`    // Billing provider order ref (may be empty)
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}
