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

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// CreateUser inserts a user synced from an identity-provider webhook.
//
// DUPLICATE DELIVERY:
// Webhook providers redeliver — a "user.created" event can arrive twice.
// Instead of a SELECT-then-INSERT (which races with itself on concurrent
// deliveries), we lean on the clerk_id UNIQUE constraint:
// INSERT ... ON CONFLICT DO NOTHING, then read the canonical row back.
// First delivery inserts; any later one quietly resolves to the existing
// record. Either way the caller ends up with the stored id.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	now := time.Now()
	user.ID = xid.New().String()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, clerk_id, name, email, is_pro, customer_id, order_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(clerk_id) DO NOTHING`,
		user.ID,
		user.ClerkID,
		user.Name,
		user.Email,
		user.IsPro,
		user.CustomerID,
		user.OrderID,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting user (clerkID=%s): %w", user.ClerkID, err)
	}

	// Read back the canonical row. On a fresh insert this is what we just
	// wrote; on a conflict it is the pre-existing user, whose id and
	// timestamps replace our speculative ones.
	stored, err := db.GetUserByClerkID(ctx, user.ClerkID)
	if err != nil {
		return fmt.Errorf("sqlite: reading back user (clerkID=%s): %w", user.ClerkID, err)
	}
	*user = *stored

	return nil
}

// GetUserByClerkID retrieves a user by their identity-provider subject id.
// Returns apperror.ErrNotFound if no user exists for that subject.
func (db *DB) GetUserByClerkID(ctx context.Context, clerkID string) (*model.User, error) {
	var u model.User
	var proSince sql.NullTime

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, clerk_id, name, email, is_pro, pro_since, customer_id, order_id, created_at, updated_at
		 FROM users WHERE clerk_id = ?`,
		clerkID,
	).Scan(
		&u.ID,
		&u.ClerkID,
		&u.Name,
		&u.Email,
		&u.IsPro,
		&proSince,
		&u.CustomerID,
		&u.OrderID,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", clerkID)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", clerkID, err)
	}

	if proSince.Valid {
		u.ProSince = &proSince.Time
	}

	return &u, nil
}

// MarkPro flips the user to pro and records the billing references.
// Idempotent: marking an already-pro user just refreshes the references.
func (db *DB) MarkPro(ctx context.Context, clerkID, customerID, orderID string) error {
	now := time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE users
		 SET is_pro = 1,
		     pro_since = COALESCE(pro_since, ?),
		     customer_id = ?,
		     order_id = ?,
		     updated_at = ?
		 WHERE clerk_id = ?`,
		now, customerID, orderID, now, clerkID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: marking user %s pro: %w", clerkID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("user", clerkID)
	}

	return nil
}
