package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prajyots60/CODE-CRAFT/internal/apperror"
)

func newStarService(t *testing.T) (*StarService, *mockStore) {
	t.Helper()
	store := newMockStore()
	svc := NewStarService(store, testLogger())
	return svc, store
}

func TestStarToggle_OnThenOff(t *testing.T) {
	svc, store := newStarService(t)
	ctx := authedCtx("usr_1")

	starred, err := svc.Toggle(ctx, "snip-1")
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if !starred {
		t.Error("first toggle should star the snippet")
	}
	if count, _ := store.CountStarsBySnippet(context.Background(), "snip-1"); count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	starred, err = svc.Toggle(ctx, "snip-1")
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if starred {
		t.Error("second toggle should un-star the snippet")
	}
	if count, _ := store.CountStarsBySnippet(context.Background(), "snip-1"); count != 0 {
		t.Errorf("count = %d, want 0 — toggling twice must return to the original state", count)
	}
}

func TestStarToggle_Unauthenticated(t *testing.T) {
	svc, store := newStarService(t)

	_, err := svc.Toggle(context.Background(), "snip-1")
	if !errors.Is(err, apperror.ErrUnauthenticated) {
		t.Errorf("error = %v, want ErrUnauthenticated", err)
	}
	if len(store.stars) != 0 {
		t.Error("unauthenticated toggle must not persist anything")
	}
}

func TestStarToggle_EmptyID(t *testing.T) {
	svc, _ := newStarService(t)

	_, err := svc.Toggle(authedCtx("usr_1"), "  ")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestStarToggle_IndependentPerUser(t *testing.T) {
	svc, store := newStarService(t)

	if _, err := svc.Toggle(authedCtx("usr_a"), "snip-1"); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if _, err := svc.Toggle(authedCtx("usr_b"), "snip-1"); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if count, _ := store.CountStarsBySnippet(context.Background(), "snip-1"); count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}

	// usr_a un-stars; usr_b's star survives.
	if starred, _ := svc.Toggle(authedCtx("usr_a"), "snip-1"); starred {
		t.Error("usr_a's second toggle should un-star")
	}
	if exists, _ := svc.IsStarred(authedCtx("usr_b"), "snip-1"); !exists {
		t.Error("usr_b's star must survive usr_a's toggle")
	}
}

func TestStarIsStarred_Unauthenticated(t *testing.T) {
	svc, _ := newStarService(t)

	_, err := svc.IsStarred(context.Background(), "snip-1")
	if !errors.Is(err, apperror.ErrUnauthenticated) {
		t.Errorf("error = %v, want ErrUnauthenticated", err)
	}
}

func TestStarCount_AnonymousAllowed(t *testing.T) {
	svc, _ := newStarService(t)

	if _, err := svc.Toggle(authedCtx("usr_1"), "snip-1"); err != nil {
		t.Fatalf("setup: Toggle() error = %v", err)
	}

	count, err := svc.Count(context.Background(), "snip-1")
	if err != nil {
		t.Fatalf("Count() should not require authentication: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestStarredSnippets_AnonymousGetsEmptyList(t *testing.T) {
	svc, _ := newStarService(t)

	snippets, err := svc.StarredSnippets(context.Background())
	if err != nil {
		t.Fatalf("StarredSnippets() error = %v", err)
	}
	if snippets == nil {
		t.Fatal("anonymous caller should get an empty list, not nil")
	}
	if len(snippets) != 0 {
		t.Errorf("returned %d items, want 0", len(snippets))
	}
}

func TestStarredSnippets_ReturnsCallersStars(t *testing.T) {
	svc, store := newStarService(t)

	snippet := seedSnippet(t, store, "usr_owner", "starred one")
	seedSnippet(t, store, "usr_owner", "not starred")

	if _, err := svc.Toggle(authedCtx("usr_1"), snippet.ID); err != nil {
		t.Fatalf("setup: Toggle() error = %v", err)
	}

	snippets, err := svc.StarredSnippets(authedCtx("usr_1"))
	if err != nil {
		t.Fatalf("StarredSnippets() error = %v", err)
	}
	if len(snippets) != 1 {
		t.Fatalf("returned %d items, want 1", len(snippets))
	}
	if snippets[0].ID != snippet.ID {
		t.Errorf("ID = %q, want %q", snippets[0].ID, snippet.ID)
	}
}
