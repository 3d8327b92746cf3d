package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/prajyots60/CODE-CRAFT/internal/apperror"
)

// UserSyncer is the slice of the user-sync service the dispatcher needs.
// Declaring the interface HERE (at the consumer) rather than next to the
// implementation is the Go convention — the dispatcher states what it
// requires, and service.UserSyncService happens to satisfy it.
type UserSyncer interface {
	SyncUser(ctx context.Context, clerkID, email, firstName, lastName string) (string, error)
}

// Dispatcher routes verified events to their handlers.
//
// FORWARD-COMPATIBILITY POLICY:
// Clerk adds event types over time (user.updated, session.created, ...).
// Unrecognized types are acknowledged as no-ops rather than errors — if we
// returned an error, Clerk would retry the delivery forever and eventually
// disable the endpoint. Only types we explicitly handle can fail.
type Dispatcher struct {
	users  UserSyncer
	logger *slog.Logger
}

// NewDispatcher creates a Dispatcher. All dependencies are injected.
func NewDispatcher(users UserSyncer, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{users: users, logger: logger}
}

// Dispatch routes a verified event by its type discriminant.
//
// The only mutating route today is "user.created" → UserSyncService.
// A storage failure there propagates to the caller so the webhook response
// reflects it (500) and Clerk redelivers.
func (d *Dispatcher) Dispatch(ctx context.Context, evt *Event) error {
	switch evt.Type {
	case "user.created":
		return d.handleUserCreated(ctx, evt.Data)
	default:
		// Accepted, not processed.
		d.logger.Debug("ignoring webhook event", slog.String("type", evt.Type))
		return nil
	}
}

func (d *Dispatcher) handleUserCreated(ctx context.Context, data json.RawMessage) error {
	var payload UserCreatedData
	if err := json.Unmarshal(data, &payload); err != nil {
		return apperror.ValidationFailed("data", "malformed user.created payload")
	}

	id, err := d.users.SyncUser(ctx, payload.ID, payload.PrimaryEmail(), payload.FirstName, payload.LastName)
	if err != nil {
		return fmt.Errorf("webhook: syncing user %s: %w", payload.ID, err)
	}

	d.logger.Info("user synced from webhook",
		slog.String("clerkID", payload.ID),
		slog.String("userID", id),
	)
	return nil
}
