package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/prajyots60/CODE-CRAFT/internal/model"
	"github.com/prajyots60/CODE-CRAFT/internal/repository"
)

// compile-time check that *DB implements repository.StarRepository
var _ repository.StarRepository = (*DB)(nil)

// InsertStar stars a snippet for a user.
//
// RACE SAFETY:
// INSERT OR IGNORE is a single atomic statement. Two concurrent toggles that
// both decide to insert cannot both succeed: the second lands on the
// UNIQUE(user_id, snippet_id) index and is ignored. RowsAffected tells us
// which side we were on — 1 means we starred, 0 means someone (possibly a
// racing duplicate of ourselves) already had. Either way the invariant
// "at most one star per pair" holds without a read-then-write window.
func (db *DB) InsertStar(ctx context.Context, userID, snippetID string) (bool, error) {
	result, err := db.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO stars (id, user_id, snippet_id, created_at)
		 VALUES (?, ?, ?, ?)`,
		xid.New().String(), userID, snippetID, time.Now(),
	)
	if err != nil {
		return false, fmt.Errorf("sqlite: starring snippet %s for %s: %w", snippetID, userID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	return rowsAffected == 1, nil
}

// RemoveStar un-stars a snippet for a user. Also a single atomic statement;
// of two racing removals only one sees rowsAffected == 1.
func (db *DB) RemoveStar(ctx context.Context, userID, snippetID string) (bool, error) {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM stars WHERE user_id = ? AND snippet_id = ?`,
		userID, snippetID,
	)
	if err != nil {
		return false, fmt.Errorf("sqlite: un-starring snippet %s for %s: %w", snippetID, userID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	return rowsAffected >= 1, nil
}

// StarExists answers the membership question for one (user, snippet) pair.
func (db *DB) StarExists(ctx context.Context, userID, snippetID string) (bool, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM stars WHERE user_id = ? AND snippet_id = ?`,
		userID, snippetID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("sqlite: checking star for snippet %s: %w", snippetID, err)
	}
	return count > 0, nil
}

// CountStarsBySnippet returns how many users starred the snippet.
func (db *DB) CountStarsBySnippet(ctx context.Context, snippetID string) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM stars WHERE snippet_id = ?`,
		snippetID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting stars for snippet %s: %w", snippetID, err)
	}
	return count, nil
}

// StarredSnippetsByUser joins the user's stars to their snippets, most
// recently starred first. Stars whose snippet has since been cascade-deleted
// simply don't join — the dangling rows never surface.
func (db *DB) StarredSnippetsByUser(ctx context.Context, userID string) ([]model.Snippet, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT s.id, s.user_id, s.user_name, s.title, s.language, s.code, s.created_at, s.updated_at
		 FROM stars st
		 JOIN snippets s ON s.id = st.snippet_id
		 WHERE st.user_id = ?
		 ORDER BY st.created_at DESC, st.id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing starred snippets for %s: %w", userID, err)
	}
	defer rows.Close()

	return scanSnippets(rows)
}

// DeleteStarsBySnippet removes every star referencing the snippet — phase
// two of the snippet-delete cascade. Zero rows is fine.
func (db *DB) DeleteStarsBySnippet(ctx context.Context, snippetID string) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM stars WHERE snippet_id = ?`,
		snippetID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting stars for snippet %s: %w", snippetID, err)
	}
	return nil
}
