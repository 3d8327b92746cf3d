package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prajyots60/CODE-CRAFT/internal/service"
)

// SnippetHandler exposes snippet CRUD over HTTP.
//
// Handlers do three things: decode the request, call the service, encode
// the response. Authorization and business rules live in the service —
// a handler never checks ownership itself.
type SnippetHandler struct {
	snippets *service.SnippetService
	validate *AppValidator
	logger   *slog.Logger
}

func NewSnippetHandler(snippets *service.SnippetService, validate *AppValidator, logger *slog.Logger) *SnippetHandler {
	return &SnippetHandler{snippets: snippets, validate: validate, logger: logger}
}

// createSnippetRequest is the JSON body for POST /api/snippets.
// The validate tags mirror the service's own limits so obviously bad
// requests are rejected before they reach it.
type createSnippetRequest struct {
	Title    string `json:"title"    validate:"required,max=100"`
	Language string `json:"language" validate:"required,max=30"`
	Code     string `json:"code"     validate:"max=100000"`
}

// HandleList returns all snippets, newest first.
//
// HTTP: GET /api/snippets
func (h *SnippetHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	snippets, err := h.snippets.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snippets)
}

// HandleGet returns one snippet.
//
// HTTP: GET /api/snippets/{id}
func (h *SnippetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	snippet, err := h.snippets.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snippet)
}

// HandleCreate saves a new snippet owned by the caller.
//
// HTTP: POST /api/snippets
// BODY: {"title": "hello", "language": "python", "code": "print('hi')"}
func (h *SnippetHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createSnippetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid snippet JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}
	if err := h.validate.Validate(req); err != nil {
		writeError(w, err)
		return
	}

	snippet, err := h.snippets.Create(r.Context(), req.Title, req.Language, req.Code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snippet)
}

// HandleDelete removes a snippet and everything hanging off it. Owner only.
//
// HTTP: DELETE /api/snippets/{id}
func (h *SnippetHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.snippets.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
