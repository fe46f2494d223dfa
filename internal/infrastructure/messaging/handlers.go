package messaging

import (
	"log/slog"

	"github.com/examdesk/exam-scheduler/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// DIAGNOSTIC HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// NewLoggingHandler returns a handler that writes every event to the given
// slog logger. It is the default diagnostic sink for schedule runs.
func NewLoggingHandler(logger *slog.Logger) shared.EventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(event shared.Event) error {
		attrs := []any{
			"event_type", string(event.EventType()),
			"aggregate_id", event.AggregateID(),
			"occurred_at", event.OccurredAt(),
		}
		for k, v := range event.Payload() {
			attrs = append(attrs, k, v)
		}
		switch event.EventType() {
		case shared.EventViolationsDetected, shared.EventStudentUnassigned:
			logger.Warn("schedule diagnostic", attrs...)
		default:
			logger.Info("schedule event", attrs...)
		}
		return nil
	}
}

// SubscribeDiagnostics attaches the logging handler to every event on the bus.
func SubscribeDiagnostics(bus shared.EventSubscriber, logger *slog.Logger) error {
	return bus.SubscribeAll(NewLoggingHandler(logger))
}
