package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prajyots60/CODE-CRAFT/internal/apperror"
)

func newUserSyncService(t *testing.T) (*UserSyncService, *mockStore) {
	t.Helper()
	store := newMockStore()
	svc := NewUserSyncService(store, testLogger())
	return svc, store
}

func TestSyncUser_Success(t *testing.T) {
	svc, store := newUserSyncService(t)

	id, err := svc.SyncUser(context.Background(), "usr_1", "ada@example.com", "Ada", "Lovelace")
	if err != nil {
		t.Fatalf("SyncUser() error = %v", err)
	}
	if id == "" {
		t.Fatal("expected a storage-assigned id")
	}

	user, err := store.GetUserByClerkID(context.Background(), "usr_1")
	if err != nil {
		t.Fatalf("GetUserByClerkID() error = %v", err)
	}
	// Single-space join with a trailing space, byte-for-byte: the value is
	// denormalized onto snippets and comments, so its exact form matters.
	if user.Name != "Ada Lovelace " {
		t.Errorf("Name = %q, want %q", user.Name, "Ada Lovelace ")
	}
	if user.Email != "ada@example.com" {
		t.Errorf("Email = %q, want %q", user.Email, "ada@example.com")
	}
	if user.IsPro {
		t.Error("new users must not start as pro")
	}
}

func TestSyncUser_EmptyNames(t *testing.T) {
	svc, store := newUserSyncService(t)

	if _, err := svc.SyncUser(context.Background(), "usr_2", "x@example.com", "", ""); err != nil {
		t.Fatalf("SyncUser() error = %v", err)
	}

	user, _ := store.GetUserByClerkID(context.Background(), "usr_2")
	if user.Name != "  " {
		t.Errorf("Name = %q, want the two bare separators %q", user.Name, "  ")
	}
}

func TestSyncUser_MissingID(t *testing.T) {
	svc, _ := newUserSyncService(t)

	_, err := svc.SyncUser(context.Background(), "", "a@b.com", "A", "B")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

// Webhook providers redeliver. The second sync for the same subject must
// return the same id and must not fork the user.
func TestSyncUser_Redelivery(t *testing.T) {
	svc, store := newUserSyncService(t)

	first, err := svc.SyncUser(context.Background(), "usr_1", "a@b.com", "Ada", "Lovelace")
	if err != nil {
		t.Fatalf("SyncUser() error = %v", err)
	}
	second, err := svc.SyncUser(context.Background(), "usr_1", "a@b.com", "Ada", "Lovelace")
	if err != nil {
		t.Fatalf("redelivered SyncUser() error = %v", err)
	}
	if first != second {
		t.Errorf("redelivery returned id %q, want the original %q", second, first)
	}
	if len(store.users) != 1 {
		t.Errorf("store holds %d users, want 1", len(store.users))
	}
}

func TestMarkPro_SetsFlagAndReferences(t *testing.T) {
	svc, store := newUserSyncService(t)
	seedUser(t, store, "usr_1", "Ada ")

	if err := svc.MarkPro(context.Background(), "usr_1", "cus_9", "ord_7"); err != nil {
		t.Fatalf("MarkPro() error = %v", err)
	}

	user, _ := store.GetUserByClerkID(context.Background(), "usr_1")
	if !user.IsPro {
		t.Error("IsPro = false, want true")
	}
	if user.ProSince == nil {
		t.Error("ProSince should be set")
	}
	if user.CustomerID != "cus_9" || user.OrderID != "ord_7" {
		t.Errorf("billing refs = (%q, %q), want (cus_9, ord_7)", user.CustomerID, user.OrderID)
	}
}

func TestMarkPro_UnknownUser(t *testing.T) {
	svc, _ := newUserSyncService(t)

	err := svc.MarkPro(context.Background(), "usr_missing", "cus", "ord")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestCurrentUser_Guarded(t *testing.T) {
	svc, _ := newUserSyncService(t)

	_, err := svc.CurrentUser(context.Background())
	if !errors.Is(err, apperror.ErrUnauthenticated) {
		t.Errorf("error = %v, want ErrUnauthenticated", err)
	}
}

func TestCurrentUser_ReturnsOwnRecord(t *testing.T) {
	svc, store := newUserSyncService(t)
	seedUser(t, store, "usr_1", "Ada ")
	seedUser(t, store, "usr_2", "Grace ")

	user, err := svc.CurrentUser(authedCtx("usr_1"))
	if err != nil {
		t.Fatalf("CurrentUser() error = %v", err)
	}
	if user.ClerkID != "usr_1" {
		t.Errorf("ClerkID = %q, want %q", user.ClerkID, "usr_1")
	}
}
