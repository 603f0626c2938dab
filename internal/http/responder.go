package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

// slackMessage is the inline webhook reply shape: a response type plus text.
// Immediate help/error answers and the unauthorized reply all use it.
type slackMessage struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeEphemeral answers the webhook inline with an ephemeral text message.
// The channel expects HTTP 200 even for error texts; the error is data in the
// payload, not a transport failure.
func (r responder) writeEphemeral(ctx context.Context, w http.ResponseWriter, text string) {
	r.writeJSON(ctx, w, http.StatusOK, slackMessage{
		ResponseType: "ephemeral",
		Text:         text,
	})
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}
