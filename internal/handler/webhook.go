package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/prajyots60/CODE-CRAFT/internal/webhook"
)

// maxWebhookBody caps how much of a webhook request we are willing to read.
// Clerk payloads are small; anything near this size is not a user event.
const maxWebhookBody = 1 << 20 // 1MB

// WebhookHandler receives identity-provider events.
//
// This endpoint is NOT behind the session middleware — the provider is not
// a logged-in user. Its authentication is the signature over the raw body,
// which is why the body must be read verbatim before any parsing: the
// signature covers the exact bytes on the wire.
type WebhookHandler struct {
	verifier   *webhook.Verifier
	dispatcher *webhook.Dispatcher
	logger     *slog.Logger
}

func NewWebhookHandler(verifier *webhook.Verifier, dispatcher *webhook.Dispatcher, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		verifier:   verifier,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// HandleClerkWebhook processes a signed identity event.
//
// HTTP: POST /clerk-webhook
//
// Status codes drive the provider's retry behavior:
//   - 200: processed (including redeliveries and event types we ignore) —
//     the provider stops retrying.
//   - 400: verification or payload failure — retrying the same request
//     can never succeed, so don't invite retries.
//   - 500: our storage failed — the event was genuine, retry it later.
func (h *WebhookHandler) HandleClerkWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		h.logger.Warn("webhook: failed to read body", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "could not read request body",
		})
		return
	}

	evt, err := h.verifier.Verify(body, r.Header)
	if err != nil {
		h.logger.Warn("webhook: verification failed",
			slog.String("svixID", r.Header.Get(webhook.HeaderID)),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	if err := h.dispatcher.Dispatch(r.Context(), evt); err != nil {
		h.logger.Error("webhook: dispatch failed",
			slog.String("type", evt.Type),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("webhook processed"))
}
