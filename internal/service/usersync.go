// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → guards identity, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes the database
//
// Services accept primitives plus a context — never *http.Request — so the
// same logic serves the webhook path, the REST handlers, and the tests
// without change. They return domain errors (apperror), never status codes.
//
// IDENTITY DISCIPLINE:
// Every mutating operation starts with auth.RequireIdentity(ctx). Nothing is
// read and nothing is written before the guard passes, and every ownership
// check compares the guard's subject against the record's stored user_id
// (the Clerk subject), never against an internal row id.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prajyots60/CODE-CRAFT/internal/apperror"
	"github.com/prajyots60/CODE-CRAFT/internal/auth"
	"github.com/prajyots60/CODE-CRAFT/internal/model"
	"github.com/prajyots60/CODE-CRAFT/internal/repository"
)

// UserSyncService reconciles identity-provider account events into local
// user records. It is driven by the webhook dispatcher, not by interactive
// requests.
type UserSyncService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

func NewUserSyncService(users repository.UserRepository, logger *slog.Logger) *UserSyncService {
	return &UserSyncService{users: users, logger: logger}
}

// SyncUser creates the local record for a provider account, returning the
// storage-assigned id.
//
// The display name is the provider's first/last names joined with single
// trailing-space separators — "Ada" + "Lovelace" → "Ada Lovelace " — kept
// byte-for-byte stable because it is denormalized onto snippets and
// comments at creation time.
//
// Webhook providers redeliver: the repository treats a clerk_id conflict as
// "already synced" and hands back the existing record, so redelivery
// returns the same id instead of failing (and instead of forking the user).
// A real storage failure propagates so the webhook response reflects it and
// the provider retries.
func (s *UserSyncService) SyncUser(ctx context.Context, clerkID, email, firstName, lastName string) (string, error) {
	if clerkID == "" {
		return "", apperror.ValidationFailed("id", "account id is required")
	}

	user := &model.User{
		ClerkID: clerkID,
		Name:    firstName + " " + lastName + " ",
		Email:   email,
		IsPro:   false,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		s.logger.Error("failed to sync user",
			slog.String("clerkID", clerkID),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("syncing user %s: %w", clerkID, err)
	}

	s.logger.Info("user synced",
		slog.String("clerkID", clerkID),
		slog.String("userID", user.ID),
	)

	return user.ID, nil
}

// MarkPro records a completed checkout: flips the pro flag and stores the
// billing provider's customer/order references. Idempotent — re-marking an
// already-pro user only refreshes the references.
func (s *UserSyncService) MarkPro(ctx context.Context, clerkID, customerID, orderID string) error {
	if clerkID == "" {
		return apperror.ValidationFailed("id", "account id is required")
	}

	if err := s.users.MarkPro(ctx, clerkID, customerID, orderID); err != nil {
		return fmt.Errorf("marking user %s pro: %w", clerkID, err)
	}

	s.logger.Info("user upgraded to pro", slog.String("clerkID", clerkID))
	return nil
}

// CurrentUser returns the caller's own user record. Guarded: an anonymous
// caller gets ErrUnauthenticated, a caller whose account has not been
// synced yet gets ErrNotFound.
func (s *UserSyncService) CurrentUser(ctx context.Context) (*model.User, error) {
	clerkID, err := auth.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.users.GetUserByClerkID(ctx, clerkID)
}
