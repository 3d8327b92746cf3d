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

// Validation constants.
const (
	MaxTitleLength    = 100
	MaxLanguageLength = 30
	MaxCodeLength     = 100000 // ~100KB of code
)

// Cascade phases, in execution order. Dependent records go first so no
// comment or star ever outlives its snippet on the happy path.
const (
	CascadePhaseComments = "comments"
	CascadePhaseStars    = "stars"
	CascadePhaseSnippet  = "snippet"
)

// CascadeError reports a snippet deletion that failed partway through its
// cascade. Phase names the step that failed; every phase BEFORE it has
// already committed and will not be rolled back (the store has no
// cross-call transactions). Re-running the delete is safe — completed
// phases are no-ops the second time.
type CascadeError struct {
	SnippetID string
	Phase     string
	Err       error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("deleting snippet %s: cascade failed at %s phase: %v", e.SnippetID, e.Phase, e.Err)
}

func (e *CascadeError) Unwrap() error {
	return e.Err
}

// SnippetService handles snippet creation, deletion (with cascade), and the
// read-only listings.
type SnippetService struct {
	snippets repository.SnippetRepository
	comments repository.CommentRepository
	stars    repository.StarRepository
	users    repository.UserRepository
	logger   *slog.Logger
}

func NewSnippetService(
	snippets repository.SnippetRepository,
	comments repository.CommentRepository,
	stars repository.StarRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) *SnippetService {
	return &SnippetService{
		snippets: snippets,
		comments: comments,
		stars:    stars,
		users:    users,
		logger:   logger,
	}
}

// Create validates and saves a new snippet owned by the caller.
//
// The caller's local User record must already exist — it is where the
// denormalized display name comes from. A missing record means the
// identity-provider account exists but its webhook hasn't been processed
// yet; that surfaces as ErrNotFound("user") and resolves itself once the
// sync catches up.
func (s *SnippetService) Create(ctx context.Context, title, language, code string) (*model.Snippet, error) {
	clerkID, err := auth.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	language = strings.TrimSpace(language)

	if title == "" {
		return nil, apperror.ValidationFailed("title", "snippet title is required")
	}
	if len(title) > MaxTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("snippet title must be %d characters or less", MaxTitleLength))
	}
	if language == "" {
		return nil, apperror.ValidationFailed("language", "snippet language is required")
	}
	if len(language) > MaxLanguageLength {
		return nil, apperror.ValidationFailed("language",
			fmt.Sprintf("language must be %d characters or less", MaxLanguageLength))
	}
	if len(code) > MaxCodeLength {
		return nil, apperror.ValidationFailed("code",
			fmt.Sprintf("code must be %d characters or less", MaxCodeLength))
	}

	user, err := s.users.GetUserByClerkID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	snippet := &model.Snippet{
		UserID:   clerkID, // the external subject, NOT user.ID
		UserName: user.Name,
		Title:    title,
		Language: language,
		Code:     code,
	}

	if err := s.snippets.CreateSnippet(ctx, snippet); err != nil {
		s.logger.Error("failed to create snippet",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating snippet: %w", err)
	}

	s.logger.Info("snippet created",
		slog.String("id", snippet.ID),
		slog.String("owner", clerkID),
	)

	return snippet, nil
}

// Delete removes a snippet and everything referencing it.
//
// Authorization first: the snippet must exist and the caller's subject must
// equal its stored owner id — a Forbidden result leaves everything intact.
//
// Then the cascade, as an explicit three-phase sequence:
//
//	comments → stars → snippet
//
// The phases are separate statements, not a transaction, so a failure
// between them can strand the later phases. That is reported as a
// *CascadeError naming the failed phase rather than a generic error:
// completed phases are already durable, and re-issuing the delete resumes
// harmlessly (phase deletes are idempotent).
func (s *SnippetService) Delete(ctx context.Context, snippetID string) error {
	clerkID, err := auth.RequireIdentity(ctx)
	if err != nil {
		return err
	}

	snippetID = strings.TrimSpace(snippetID)
	if snippetID == "" {
		return apperror.ValidationFailed("id", "snippet ID is required")
	}

	snippet, err := s.snippets.GetSnippetByID(ctx, snippetID)
	if err != nil {
		return err
	}
	if snippet.UserID != clerkID {
		return apperror.Forbidden("you can only delete your own snippets")
	}

	if err := s.comments.DeleteCommentsBySnippet(ctx, snippetID); err != nil {
		return s.cascadeFailed(snippetID, CascadePhaseComments, err)
	}
	if err := s.stars.DeleteStarsBySnippet(ctx, snippetID); err != nil {
		return s.cascadeFailed(snippetID, CascadePhaseStars, err)
	}
	if err := s.snippets.DeleteSnippet(ctx, snippetID); err != nil {
		return s.cascadeFailed(snippetID, CascadePhaseSnippet, err)
	}

	s.logger.Info("snippet deleted",
		slog.String("id", snippetID),
		slog.String("owner", clerkID),
	)
	return nil
}

func (s *SnippetService) cascadeFailed(snippetID, phase string, err error) error {
	s.logger.Error("snippet delete cascade failed",
		slog.String("id", snippetID),
		slog.String("phase", phase),
		slog.String("error", err.Error()),
	)
	return &CascadeError{SnippetID: snippetID, Phase: phase, Err: err}
}

// GetByID retrieves a snippet. Unauthenticated read; ErrNotFound if absent.
func (s *SnippetService) GetByID(ctx context.Context, id string) (*model.Snippet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "snippet ID is required")
	}
	return s.snippets.GetSnippetByID(ctx, id)
}

// List returns all snippets, newest first. Unauthenticated read.
func (s *SnippetService) List(ctx context.Context) ([]model.Snippet, error) {
	snippets, err := s.snippets.ListSnippets(ctx)
	if err != nil {
		s.logger.Error("failed to list snippets", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing snippets: %w", err)
	}
	return snippets, nil
}
