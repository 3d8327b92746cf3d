package handler

import (
	"log/slog"
	"net/http"

	"github.com/prajyots60/CODE-CRAFT/internal/service"
)

// StarHandler exposes star membership over HTTP.
type StarHandler struct {
	stars  *service.StarService
	logger *slog.Logger
}

func NewStarHandler(stars *service.StarService, logger *slog.Logger) *StarHandler {
	return &StarHandler{stars: stars, logger: logger}
}

// starStateResponse reports the caller's membership after a toggle or query.
type starStateResponse struct {
	Starred bool `json:"starred"`
}

type starCountResponse struct {
	Count int `json:"count"`
}

// HandleToggle flips the caller's star on a snippet.
//
// HTTP: POST /api/snippets/{id}/star
//
// No request body: the snippet id in the path and the caller's identity are
// all a toggle needs. The response says which side the star landed on.
func (h *StarHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	starred, err := h.stars.Toggle(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, starStateResponse{Starred: starred})
}

// HandleIsStarred reports whether the caller has starred the snippet.
//
// HTTP: GET /api/snippets/{id}/star
func (h *StarHandler) HandleIsStarred(w http.ResponseWriter, r *http.Request) {
	starred, err := h.stars.IsStarred(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, starStateResponse{Starred: starred})
}

// HandleCount returns a snippet's star count. Public.
//
// HTTP: GET /api/snippets/{id}/stars/count
func (h *StarHandler) HandleCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.stars.Count(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, starCountResponse{Count: count})
}

// HandleStarred returns the snippets the caller has starred. Anonymous
// callers get an empty list, not a 401 — the route sits behind OptionalAuth.
//
// HTTP: GET /api/me/starred
func (h *StarHandler) HandleStarred(w http.ResponseWriter, r *http.Request) {
	snippets, err := h.stars.StarredSnippets(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snippets)
}
