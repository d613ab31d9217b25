package session

import (
	"context"
	"log/slog"

	"github.com/mmynk/weekgoal/internal/money"
)

// EventKind classifies a user-facing event.
type EventKind string

const (
	EventNone      EventKind = ""
	EventOvershoot EventKind = "overshoot"
	EventSaved     EventKind = "saved"
	EventError     EventKind = "error"
)

// Event is the zero-or-one notification produced by a session operation.
type Event struct {
	Kind EventKind

	// Amount is the excess over the goal, for overshoot events.
	Amount money.Amount

	// Message describes an error event.
	Message string
}

// Sink receives the events of a session. The session does not render or format them.
type Sink interface {
	Emit(ctx context.Context, userID string, e Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, userID string, e Event)

func (f SinkFunc) Emit(ctx context.Context, userID string, e Event) {
	f(ctx, userID, e)
}

// LogSink logs every event.
func LogSink(logger *slog.Logger) Sink {
	return SinkFunc(func(ctx context.Context, userID string, e Event) {
		switch e.Kind {
		case EventError:
			logger.WarnContext(ctx, "Session event", "user_id", userID, "kind", e.Kind, "message", e.Message)
		case EventOvershoot:
			logger.InfoContext(ctx, "Session event", "user_id", userID, "kind", e.Kind, "amount", e.Amount.String())
		default:
			logger.DebugContext(ctx, "Session event", "user_id", userID, "kind", e.Kind)
		}
	})
}
