package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prajyots60/CODE-CRAFT/internal/apperror"
	"github.com/prajyots60/CODE-CRAFT/internal/auth"
	"github.com/prajyots60/CODE-CRAFT/internal/model"
	"github.com/prajyots60/CODE-CRAFT/internal/repository"
)

// StarService handles star membership: the toggle mutation and the
// membership/count/listing reads.
type StarService struct {
	stars  repository.StarRepository
	logger *slog.Logger
}

func NewStarService(stars repository.StarRepository, logger *slog.Logger) *StarService {
	return &StarService{stars: stars, logger: logger}
}

// Toggle flips the caller's star on a snippet and reports the resulting
// membership: true = now starred, false = now un-starred.
//
// TOGGLE UNDER CONCURRENCY:
// There is no read-then-write here. Remove is tried first — a single
// conditional DELETE. If it removed nothing, Insert runs — a single
// INSERT OR IGNORE backed by the unique (user, snippet) index. Two racing
// toggles therefore settle at the database: one wins each conditional
// statement, the loser's insert becomes "already starred, no-op", and the
// pair can never hold more than one star. Toggling twice in sequence
// always returns the pair to its original state.
func (s *StarService) Toggle(ctx context.Context, snippetID string) (bool, error) {
	clerkID, err := auth.RequireIdentity(ctx)
	if err != nil {
		return false, err
	}

	snippetID = strings.TrimSpace(snippetID)
	if snippetID == "" {
		return false, apperror.ValidationFailed("id", "snippet ID is required")
	}

	removed, err := s.stars.RemoveStar(ctx, clerkID, snippetID)
	if err != nil {
		return false, fmt.Errorf("toggling star: %w", err)
	}
	if removed {
		s.logger.Info("snippet un-starred",
			slog.String("snippetID", snippetID),
			slog.String("userID", clerkID),
		)
		return false, nil
	}

	if _, err := s.stars.InsertStar(ctx, clerkID, snippetID); err != nil {
		return false, fmt.Errorf("toggling star: %w", err)
	}
	s.logger.Info("snippet starred",
		slog.String("snippetID", snippetID),
		slog.String("userID", clerkID),
	)
	return true, nil
}

// IsStarred reports whether the caller has starred the snippet.
// Guarded: anonymous callers get ErrUnauthenticated.
func (s *StarService) IsStarred(ctx context.Context, snippetID string) (bool, error) {
	clerkID, err := auth.RequireIdentity(ctx)
	if err != nil {
		return false, err
	}
	return s.stars.StarExists(ctx, clerkID, snippetID)
}

// Count returns the snippet's star count. Unauthenticated read.
func (s *StarService) Count(ctx context.Context, snippetID string) (int, error) {
	return s.stars.CountStarsBySnippet(ctx, snippetID)
}

// StarredSnippets returns the snippets the caller has starred.
//
// Deliberately NOT guarded: an anonymous caller gets an empty list, not an
// error — "nothing starred" is the truthful answer for someone who isn't
// logged in.
func (s *StarService) StarredSnippets(ctx context.Context) ([]model.Snippet, error) {
	clerkID, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return []model.Snippet{}, nil
	}
	return s.stars.StarredSnippetsByUser(ctx, clerkID)
}
