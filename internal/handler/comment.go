package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prajyots60/CODE-CRAFT/internal/service"
)

// CommentHandler exposes snippet comments over HTTP.
type CommentHandler struct {
	comments *service.CommentService
	validate *AppValidator
	logger   *slog.Logger
}

func NewCommentHandler(comments *service.CommentService, validate *AppValidator, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, validate: validate, logger: logger}
}

type addCommentRequest struct {
	Content string `json:"content" validate:"required,max=10000"`
}

// HandleList returns a snippet's comments, newest first.
//
// HTTP: GET /api/snippets/{id}/comments
func (h *CommentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.ListBySnippet(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// HandleCreate adds a comment to a snippet.
//
// HTTP: POST /api/snippets/{id}/comments
// BODY: {"content": "nice one"}
func (h *CommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req addCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid comment JSON", slog.String("error", err.Error()))
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

	comment, err := h.comments.Add(r.Context(), r.PathValue("id"), req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

// HandleDelete removes a comment. Author only.
//
// HTTP: DELETE /api/comments/{id}
func (h *CommentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.comments.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
