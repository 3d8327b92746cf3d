package auth

import (
	"context"

	"github.com/prajyots60/CODE-CRAFT/internal/apperror"
)

// RequireIdentity resolves the caller's Clerk subject from the context, or
// fails closed with apperror.ErrUnauthenticated if no identity is attached.
//
// Every mutating service operation calls this FIRST, before any read or
// write — an unauthenticated mutation must touch nothing. The returned
// subject is the value ownership checks compare against a record's stored
// user_id.
func RequireIdentity(ctx context.Context) (string, error) {
	clerkID, ok := IdentityFromContext(ctx)
	if !ok {
		return "", apperror.Unauthenticated("you must be logged in")
	}
	return clerkID, nil
}
