package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/prajyots60/CODE-CRAFT/internal/apperror"
	"github.com/prajyots60/CODE-CRAFT/internal/auth"
	"github.com/prajyots60/CODE-CRAFT/internal/model"
)

// =========================================================================
// MOCK STORE
// =========================================================================
//
// A single in-memory fake implements all four repository interfaces, the
// same shape as the real sqlite.DB. The services don't know the difference
// — that's the point of programming against the interfaces.
//
// The err* fields inject failures that a real database rarely produces on
// demand, which is how the cascade tests stop the delete mid-sequence.

type starKey struct {
	userID    string
	snippetID string
}

type mockStore struct {
	users    map[string]*model.User // keyed by clerk id
	snippets map[string]*model.Snippet
	comments map[string]*model.Comment
	stars    map[starKey]time.Time
	nextID   int

	errDeleteComments error
	errDeleteStars    error
	errDeleteSnippet  error
}

func newMockStore() *mockStore {
	return &mockStore{
		users:    make(map[string]*model.User),
		snippets: make(map[string]*model.Snippet),
		comments: make(map[string]*model.Comment),
		stars:    make(map[starKey]time.Time),
	}
}

func (m *mockStore) newID() string {
	m.nextID++
	return fmt.Sprintf("mock-%d", m.nextID)
}

// --- UserRepository ---

func (m *mockStore) CreateUser(_ context.Context, user *model.User) error {
	if existing, ok := m.users[user.ClerkID]; ok {
		*user = *existing // redelivery: hand back the canonical row
		return nil
	}
	user.ID = m.newID()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	m.users[user.ClerkID] = &stored
	return nil
}

func (m *mockStore) GetUserByClerkID(_ context.Context, clerkID string) (*model.User, error) {
	user, ok := m.users[clerkID]
	if !ok {
		return nil, apperror.NotFound("user", clerkID)
	}
	result := *user
	return &result, nil
}

func (m *mockStore) MarkPro(_ context.Context, clerkID, customerID, orderID string) error {
	user, ok := m.users[clerkID]
	if !ok {
		return apperror.NotFound("user", clerkID)
	}
	user.IsPro = true
	if user.ProSince == nil {
		now := time.Now().UTC()
		user.ProSince = &now
	}
	user.CustomerID = customerID
	user.OrderID = orderID
	return nil
}

// --- SnippetRepository ---

func (m *mockStore) CreateSnippet(_ context.Context, snippet *model.Snippet) error {
	snippet.ID = m.newID()
	snippet.CreatedAt = time.Now().UTC()
	snippet.UpdatedAt = snippet.CreatedAt
	stored := *snippet
	m.snippets[snippet.ID] = &stored
	return nil
}

func (m *mockStore) GetSnippetByID(_ context.Context, id string) (*model.Snippet, error) {
	snippet, ok := m.snippets[id]
	if !ok {
		return nil, apperror.NotFound("snippet", id)
	}
	result := *snippet
	return &result, nil
}

func (m *mockStore) ListSnippets(_ context.Context) ([]model.Snippet, error) {
	result := make([]model.Snippet, 0, len(m.snippets))
	for _, s := range m.snippets {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockStore) DeleteSnippet(_ context.Context, id string) error {
	if m.errDeleteSnippet != nil {
		return m.errDeleteSnippet
	}
	if _, ok := m.snippets[id]; !ok {
		return apperror.NotFound("snippet", id)
	}
	delete(m.snippets, id)
	return nil
}

// --- CommentRepository ---

func (m *mockStore) CreateComment(_ context.Context, comment *model.Comment) error {
	comment.ID = m.newID()
	comment.CreatedAt = time.Now().UTC()
	stored := *comment
	m.comments[comment.ID] = &stored
	return nil
}

func (m *mockStore) GetCommentByID(_ context.Context, id string) (*model.Comment, error) {
	comment, ok := m.comments[id]
	if !ok {
		return nil, apperror.NotFound("comment", id)
	}
	result := *comment
	return &result, nil
}

func (m *mockStore) ListCommentsBySnippet(_ context.Context, snippetID string) ([]model.Comment, error) {
	result := []model.Comment{}
	for _, c := range m.comments {
		if c.SnippetID == snippetID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockStore) DeleteComment(_ context.Context, id string) error {
	if _, ok := m.comments[id]; !ok {
		return apperror.NotFound("comment", id)
	}
	delete(m.comments, id)
	return nil
}

func (m *mockStore) DeleteCommentsBySnippet(_ context.Context, snippetID string) error {
	if m.errDeleteComments != nil {
		return m.errDeleteComments
	}
	for id, c := range m.comments {
		if c.SnippetID == snippetID {
			delete(m.comments, id)
		}
	}
	return nil
}

// --- StarRepository ---

func (m *mockStore) InsertStar(_ context.Context, userID, snippetID string) (bool, error) {
	key := starKey{userID, snippetID}
	if _, ok := m.stars[key]; ok {
		return false, nil
	}
	m.stars[key] = time.Now().UTC()
	return true, nil
}

func (m *mockStore) RemoveStar(_ context.Context, userID, snippetID string) (bool, error) {
	key := starKey{userID, snippetID}
	if _, ok := m.stars[key]; !ok {
		return false, nil
	}
	delete(m.stars, key)
	return true, nil
}

func (m *mockStore) StarExists(_ context.Context, userID, snippetID string) (bool, error) {
	_, ok := m.stars[starKey{userID, snippetID}]
	return ok, nil
}

func (m *mockStore) CountStarsBySnippet(_ context.Context, snippetID string) (int, error) {
	count := 0
	for key := range m.stars {
		if key.snippetID == snippetID {
			count++
		}
	}
	return count, nil
}

func (m *mockStore) StarredSnippetsByUser(_ context.Context, userID string) ([]model.Snippet, error) {
	result := []model.Snippet{}
	for key := range m.stars {
		if key.userID != userID {
			continue
		}
		if snippet, ok := m.snippets[key.snippetID]; ok {
			result = append(result, *snippet)
		}
	}
	return result, nil
}

func (m *mockStore) DeleteStarsBySnippet(_ context.Context, snippetID string) error {
	if m.errDeleteStars != nil {
		return m.errDeleteStars
	}
	for key := range m.stars {
		if key.snippetID == snippetID {
			delete(m.stars, key)
		}
	}
	return nil
}

// =========================================================================
// SHARED HELPERS
// =========================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// authedCtx returns a context carrying the given Clerk subject, as if the
// request had passed the auth middleware.
func authedCtx(clerkID string) context.Context {
	return auth.WithIdentity(context.Background(), clerkID)
}

// seedUser plants a synced user record so the denormalization lookups in
// snippet/comment creation succeed.
func seedUser(t *testing.T, store *mockStore, clerkID, name string) {
	t.Helper()
	user := &model.User{ClerkID: clerkID, Name: name, Email: clerkID + "@example.com"}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("setup: CreateUser() error = %v", err)
	}
}

// seedSnippet plants a snippet directly in the store, bypassing service
// validation.
func seedSnippet(t *testing.T, store *mockStore, ownerClerkID, title string) *model.Snippet {
	t.Helper()
	snippet := &model.Snippet{
		UserID:   ownerClerkID,
		UserName: "Seeded ",
		Title:    title,
		Language: "go",
		Code:     "package main",
	}
	if err := store.CreateSnippet(context.Background(), snippet); err != nil {
		t.Fatalf("setup: CreateSnippet() error = %v", err)
	}
	return snippet
}
