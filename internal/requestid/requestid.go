// Package requestid carries a per-request identifier through the context.
//
// Mutating requests arrive with a client-generated X-Request-ID; the server
// echoes it back in broadcast payloads so the originating browser can
// recognise its own event. Requests without one get a server-generated ID.
package requestid

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// MaxLen bounds accepted client-supplied IDs. UUIDs are 36 characters;
// anything longer is replaced with a fresh server-side ID.
const MaxLen = 64

type contextKey struct{}

// New generates a fresh request ID.
func New() string {
	return uuid.NewString()
}

// Sanitize returns id if it is usable as a request ID, or a fresh one.
func Sanitize(id string) string {
	if id == "" || len(id) > MaxLen {
		return New()
	}
	return id
}

// WithID returns a new context carrying the given request ID.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// ID extracts the request ID from ctx, returning ("", false) if not present.
func ID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	return id, ok && id != ""
}

// Handler wraps an existing slog.Handler to automatically inject a
// "request_id" attribute when the context carries one.
type Handler struct {
	inner slog.Handler
}

// NewHandler creates a request-ID-aware handler wrapping the given handler.
func NewHandler(inner slog.Handler) *Handler {
	return &Handler{inner: inner}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	if id, ok := ID(ctx); ok {
		r.AddAttrs(slog.String("request_id", id))
	}
	if err := h.inner.Handle(ctx, r); err != nil {
		return fmt.Errorf("request id handler: %w", err)
	}
	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{inner: h.inner.WithAttrs(attrs)}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{inner: h.inner.WithGroup(name)}
}
