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

const MaxCommentLength = 10000

// CommentService handles comments scoped to a snippet.
type CommentService struct {
	comments repository.CommentRepository
	snippets repository.SnippetRepository
	users    repository.UserRepository
	logger   *slog.Logger
}

func NewCommentService(
	comments repository.CommentRepository,
	snippets repository.SnippetRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) *CommentService {
	return &CommentService{
		comments: comments,
		snippets: snippets,
		users:    users,
		logger:   logger,
	}
}

// Add creates a comment on a snippet.
//
// The referenced snippet must exist at creation time — commenting on a
// deleted snippet is ErrNotFound, not a silent orphan. The author's User
// record must exist too, for the display-name denormalization.
func (c *CommentService) Add(ctx context.Context, snippetID, content string) (*model.Comment, error) {
	clerkID, err := auth.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	snippetID = strings.TrimSpace(snippetID)
	if snippetID == "" {
		return nil, apperror.ValidationFailed("snippetId", "snippet ID is required")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.ValidationFailed("content", "comment content is required")
	}
	if len(content) > MaxCommentLength {
		return nil, apperror.ValidationFailed("content",
			fmt.Sprintf("comment must be %d characters or less", MaxCommentLength))
	}

	if _, err := c.snippets.GetSnippetByID(ctx, snippetID); err != nil {
		return nil, err
	}

	user, err := c.users.GetUserByClerkID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		SnippetID: snippetID,
		UserID:    clerkID,
		UserName:  user.Name,
		Content:   content,
	}

	if err := c.comments.CreateComment(ctx, comment); err != nil {
		c.logger.Error("failed to create comment",
			slog.String("snippetID", snippetID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	c.logger.Info("comment added",
		slog.String("id", comment.ID),
		slog.String("snippetID", snippetID),
	)
	return comment, nil
}

// Delete removes a single comment. Only its author may do so; the parent
// snippet's owner removes comments via the snippet cascade instead.
func (c *CommentService) Delete(ctx context.Context, commentID string) error {
	clerkID, err := auth.RequireIdentity(ctx)
	if err != nil {
		return err
	}

	commentID = strings.TrimSpace(commentID)
	if commentID == "" {
		return apperror.ValidationFailed("id", "comment ID is required")
	}

	comment, err := c.comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != clerkID {
		return apperror.Forbidden("you can only delete your own comments")
	}

	if err := c.comments.DeleteComment(ctx, commentID); err != nil {
		return fmt.Errorf("deleting comment %s: %w", commentID, err)
	}

	c.logger.Info("comment deleted", slog.String("id", commentID))
	return nil
}

// ListBySnippet returns a snippet's comments, newest first.
// Unauthenticated read.
func (c *CommentService) ListBySnippet(ctx context.Context, snippetID string) ([]model.Comment, error) {
	snippetID = strings.TrimSpace(snippetID)
	if snippetID == "" {
		return nil, apperror.ValidationFailed("id", "snippet ID is required")
	}
	return c.comments.ListCommentsBySnippet(ctx, snippetID)
}
