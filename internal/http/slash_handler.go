// Package http exposes the service over HTTP: the inbound slash-command
// webhook, the asynchronous reply poster, and the operational endpoints.
package http

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/roomtimes/internal/command"
	"github.com/example/roomtimes/internal/r25ws"
	"github.com/example/roomtimes/internal/schedule"
)

const (
	unauthorizedText = "Error: unauthorized, token invalid, check app configuration\n"
	serviceDownText  = "Error: the reservation service is not responding. Please try again in a few minutes.\n"

	defaultDeliveryTimeout = 30 * time.Second
)

// Interpreter parses raw query text into a structured query.
type Interpreter interface {
	Interpret(rawText string) command.Query
}

// ReservationSource fetches the ordered event list for one space and day
// offset, or fails with r25ws.ErrUnavailable.
type ReservationSource interface {
	Reservations(ctx context.Context, spaceID, dayOffset string) ([]schedule.Event, error)
}

// ResultFormatter renders an event list according to the query mode.
type ResultFormatter interface {
	Schedule(events []schedule.Event, query command.Query) schedule.Result
	Breaks(events []schedule.Event, query command.Query) schedule.Result
}

// ReplyPoster delivers a formatted result to the webhook's response URL.
type ReplyPoster interface {
	Post(ctx context.Context, responseURL string, result schedule.Result) error
}

// SlashHandlerConfig wires the collaborators of the slash-command endpoint.
type SlashHandlerConfig struct {
	// Token is the shared secret the channel sends with every webhook.
	Token        string
	Interpreter  Interpreter
	Reservations ReservationSource
	Formatter    ResultFormatter
	Poster       ReplyPoster
	// DeliveryTimeout bounds the whole fetch-format-post pipeline of one
	// query. Zero means the default thirty seconds.
	DeliveryTimeout time.Duration
	Logger          *slog.Logger
}

// SlashHandler answers slash-command webhooks. Help and error outcomes are
// answered inline; resolvable room queries are acknowledged immediately and
// the reply is delivered asynchronously to the response URL.
type SlashHandler struct {
	token           string
	interpreter     Interpreter
	reservations    ReservationSource
	formatter       ResultFormatter
	poster          ReplyPoster
	deliveryTimeout time.Duration
	responder       responder
	logger          *slog.Logger

	// schedule runs the delivery pipeline; tests replace it to run inline.
	schedule func(func())
}

// NewSlashHandler constructs the webhook handler.
func NewSlashHandler(cfg SlashHandlerConfig) *SlashHandler {
	timeout := cfg.DeliveryTimeout
	if timeout <= 0 {
		timeout = defaultDeliveryTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SlashHandler{
		token:           cfg.Token,
		interpreter:     cfg.Interpreter,
		reservations:    cfg.Reservations,
		formatter:       cfg.Formatter,
		poster:          cfg.Poster,
		deliveryTimeout: timeout,
		responder:       newResponder(logger),
		logger:          logger,
		schedule:        func(fn func()) { go fn() },
	}
}

// HandleCommand processes one webhook POST.
func (h *SlashHandler) HandleCommand(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.interpreter == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	token := r.PostFormValue("token")
	if subtle.ConstantTimeCompare([]byte(token), []byte(h.token)) != 1 {
		h.responder.loggerFor(ctx).WarnContext(ctx, "webhook token mismatch")
		h.responder.writeEphemeral(ctx, w, unauthorizedText)
		return
	}

	query := h.interpreter.Interpret(r.PostFormValue("text"))
	if query.Mode == command.ModeHelp || query.Mode == command.ModeError {
		h.responder.writeEphemeral(ctx, w, query.ModeText)
		return
	}

	responseURL := r.PostFormValue("response_url")

	// Acknowledge before the upstream round trip; the channel expects a
	// fast 200 and the real answer on the response URL.
	w.WriteHeader(http.StatusOK)

	deliveryCtx := context.WithoutCancel(ctx)
	h.schedule(func() {
		h.deliver(deliveryCtx, query, responseURL)
	})
}

// deliver runs the fetch-format-post pipeline for one acknowledged query.
func (h *SlashHandler) deliver(ctx context.Context, query command.Query, responseURL string) {
	ctx, cancel := context.WithTimeout(ctx, h.deliveryTimeout)
	defer cancel()

	logger := h.responder.loggerFor(ctx).With(
		"room_query", query.RoomQuery,
		"room_id", query.RoomID,
		"mode", string(query.Mode),
	)

	result, err := h.buildResult(ctx, query)
	if err != nil {
		logger.ErrorContext(ctx, "failed to build reply", "error", err)
		return
	}

	if h.poster == nil {
		return
	}
	if err := h.poster.Post(ctx, responseURL, result); err != nil {
		logger.ErrorContext(ctx, "failed to deliver reply", "error", err)
		return
	}
	logger.InfoContext(ctx, "reply delivered")
}

func (h *SlashHandler) buildResult(ctx context.Context, query command.Query) (schedule.Result, error) {
	events, err := h.reservations.Reservations(ctx, query.RoomID, query.DayOffset)
	if err != nil {
		if errors.Is(err, r25ws.ErrUnavailable) {
			// An unreachable upstream and an empty day are different
			// answers; this one never reaches the formatters.
			return schedule.Result{
				ResponseType: schedule.ResponseEphemeral,
				Text:         serviceDownText,
			}, nil
		}
		return schedule.Result{}, err
	}

	if query.Mode == command.ModeBreaks {
		return h.formatter.Breaks(events, query), nil
	}
	return h.formatter.Schedule(events, query), nil
}
