package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prajyots60/CODE-CRAFT/internal/apperror"
)

func TestRequireIdentity_FailsClosed(t *testing.T) {
	_, err := RequireIdentity(context.Background())
	if !errors.Is(err, apperror.ErrUnauthenticated) {
		t.Errorf("error = %v, want ErrUnauthenticated", err)
	}
}

func TestRequireIdentity_ResolvesSubject(t *testing.T) {
	ctx := WithIdentity(context.Background(), "user_2abc")

	clerkID, err := RequireIdentity(ctx)
	if err != nil {
		t.Fatalf("RequireIdentity() error = %v", err)
	}
	if clerkID != "user_2abc" {
		t.Errorf("subject = %q, want %q", clerkID, "user_2abc")
	}
}

func TestRequireAuth_BlocksAnonymous(t *testing.T) {
	ts := newTestTokenService(t)

	handler := RequireAuth(ts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run for anonymous requests")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/snippets", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuth_PassesIdentityThrough(t *testing.T) {
	ts := newTestTokenService(t)
	token, _ := ts.Generate("user_2abc")

	var got string
	handler := RequireAuth(ts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = IdentityFromContext(r.Context())
	}))

	t.Run("cookie", func(t *testing.T) {
		got = ""
		req := httptest.NewRequest(http.MethodPost, "/api/snippets", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
		handler.ServeHTTP(httptest.NewRecorder(), req)
		if got != "user_2abc" {
			t.Errorf("identity = %q, want user_2abc", got)
		}
	})

	t.Run("bearer header", func(t *testing.T) {
		got = ""
		req := httptest.NewRequest(http.MethodPost, "/api/snippets", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		handler.ServeHTTP(httptest.NewRecorder(), req)
		if got != "user_2abc" {
			t.Errorf("identity = %q, want user_2abc", got)
		}
	})
}

func TestOptionalAuth_AnonymousContinues(t *testing.T) {
	ts := newTestTokenService(t)

	ran := false
	handler := OptionalAuth(ts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
		if _, ok := IdentityFromContext(r.Context()); ok {
			t.Error("anonymous request should carry no identity")
		}
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/me/starred", nil))
	if !ran {
		t.Fatal("OptionalAuth must not block anonymous requests")
	}
}
