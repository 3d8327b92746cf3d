package handler

import (
	"log/slog"
	"net/http"

	"github.com/prajyots60/CODE-CRAFT/internal/service"
)

// UserHandler exposes the caller's own account record.
type UserHandler struct {
	users  *service.UserSyncService
	logger *slog.Logger
}

func NewUserHandler(users *service.UserSyncService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// HandleMe returns the caller's user record, including pro status.
//
// HTTP: GET /api/me
//
// A 404 here means the session token is valid but the account's webhook
// hasn't been processed yet — the client should treat it as "still syncing".
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.CurrentUser(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
