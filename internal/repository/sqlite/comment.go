package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/prajyots60/CODE-CRAFT/internal/apperror"
	"github.com/prajyots60/CODE-CRAFT/internal/model"
	"github.com/prajyots60/CODE-CRAFT/internal/repository"
)

// compile-time check that *DB implements repository.CommentRepository
var _ repository.CommentRepository = (*DB)(nil)

// CreateComment inserts a comment. The service layer has already confirmed the
// referenced snippet exists and resolved the author's display name.
func (db *DB) CreateComment(ctx context.Context, comment *model.Comment) error {
	comment.ID = xid.New().String()
	comment.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO snippet_comments (id, snippet_id, user_id, user_name, content, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		comment.ID,
		comment.SnippetID,
		comment.UserID,
		comment.UserName,
		comment.Content,
		comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating comment: %w", err)
	}

	return nil
}

// GetCommentByID retrieves a single comment.
func (db *DB) GetCommentByID(ctx context.Context, id string) (*model.Comment, error) {
	var c model.Comment

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, snippet_id, user_id, user_name, content, created_at
		 FROM snippet_comments WHERE id = ?`,
		id,
	).Scan(&c.ID, &c.SnippetID, &c.UserID, &c.UserName, &c.Content, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("comment", id)
		}
		return nil, fmt.Errorf("sqlite: getting comment %s: %w", id, err)
	}

	return &c, nil
}

// ListCommentsBySnippet returns a snippet's comments, newest first.
func (db *DB) ListCommentsBySnippet(ctx context.Context, snippetID string) ([]model.Comment, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, snippet_id, user_id, user_name, content, created_at
		 FROM snippet_comments
		 WHERE snippet_id = ?
		 ORDER BY created_at DESC, id DESC`,
		snippetID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing comments for snippet %s: %w", snippetID, err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.SnippetID, &c.UserID, &c.UserName, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning comment row: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating comments: %w", err)
	}

	return comments, nil
}

// DeleteComment removes a single comment by id.
func (db *DB) DeleteComment(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM snippet_comments WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting comment %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("comment", id)
	}

	return nil
}

// DeleteCommentsBySnippet removes every comment referencing the snippet —
// phase one of the snippet-delete cascade. Zero rows is fine (a snippet
// with no comments), so RowsAffected is not checked.
func (db *DB) DeleteCommentsBySnippet(ctx context.Context, snippetID string) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM snippet_comments WHERE snippet_id = ?`,
		snippetID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting comments for snippet %s: %w", snippetID, err)
	}
	return nil
}
