// Package repository declares the storage interfaces the service layer
// programs against. The sqlite subpackage is the concrete implementation;
// service tests substitute in-memory mocks.
//
// One *sqlite.DB satisfies all four interfaces, so methods carry their
// aggregate in the name (CreateSnippet, CreateComment, ...) rather than
// colliding on a generic Create.
package repository

import (
	"context"

	"github.com/prajyots60/CODE-CRAFT/internal/model"
)

// UserRepository persists local user records mirrored from the identity
// provider. Users are never deleted by this layer.
type UserRepository interface {
	// CreateUser inserts the user, generating ID and timestamps. If a user
	// with the same ClerkID already exists (webhook redelivery), the insert
	// is a no-op and the existing record's values are loaded back into user.
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByClerkID(ctx context.Context, clerkID string) (*model.User, error)
	// MarkPro sets the pro flag, pro-since timestamp, and billing references.
	MarkPro(ctx context.Context, clerkID, customerID, orderID string) error
}

// SnippetRepository persists snippets.
type SnippetRepository interface {
	CreateSnippet(ctx context.Context, snippet *model.Snippet) error
	GetSnippetByID(ctx context.Context, id string) (*model.Snippet, error)
	// ListSnippets returns all snippets, newest first.
	ListSnippets(ctx context.Context) ([]model.Snippet, error)
	DeleteSnippet(ctx context.Context, id string) error
}

// CommentRepository persists comments scoped to a snippet.
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetCommentByID(ctx context.Context, id string) (*model.Comment, error)
	// ListCommentsBySnippet returns a snippet's comments, newest first.
	ListCommentsBySnippet(ctx context.Context, snippetID string) ([]model.Comment, error)
	DeleteComment(ctx context.Context, id string) error
	// DeleteCommentsBySnippet removes every comment referencing the snippet.
	// Used only by the cascade in SnippetService.Delete.
	DeleteCommentsBySnippet(ctx context.Context, snippetID string) error
}

// StarRepository persists star membership.
//
// InsertStar and RemoveStar are each a single conditional statement so a
// toggle never has a read-then-write window: racing toggles resolve at the
// database's UNIQUE(user_id, snippet_id) constraint instead of duplicating.
type StarRepository interface {
	// InsertStar stars the snippet for the user. Returns false (and no
	// error) if the star already existed — "already starred" is a no-op,
	// not a failure.
	InsertStar(ctx context.Context, userID, snippetID string) (bool, error)
	// RemoveStar un-stars the snippet for the user. Returns false if there
	// was no star to remove.
	RemoveStar(ctx context.Context, userID, snippetID string) (bool, error)
	StarExists(ctx context.Context, userID, snippetID string) (bool, error)
	CountStarsBySnippet(ctx context.Context, snippetID string) (int, error)
	// StarredSnippetsByUser returns the snippets the user has starred,
	// most recently starred first.
	StarredSnippetsByUser(ctx context.Context, userID string) ([]model.Snippet, error)
	// DeleteStarsBySnippet removes every star referencing the snippet.
	// Used only by the cascade in SnippetService.Delete.
	DeleteStarsBySnippet(ctx context.Context, snippetID string) error
}
