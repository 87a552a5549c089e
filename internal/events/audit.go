package events

import (
	"context"
	"log/slog"

	"github.com/phrazzld/patient-api/internal/platform/logger"
)

// AuditLogHandler writes one log line per record change. Record contents are
// never logged.
type AuditLogHandler struct {
	logger *slog.Logger
}

// NewAuditLogHandler creates an AuditLogHandler. The request-scoped logger in
// the event context is preferred over l when present.
func NewAuditLogHandler(l *slog.Logger) *AuditLogHandler {
	if l == nil {
		l = slog.Default()
	}
	return &AuditLogHandler{logger: l.With("component", "audit")}
}

// HandleEvent implements EventHandler.
func (h *AuditLogHandler) HandleEvent(ctx context.Context, event *RecordEvent) error {
	logger.FromContextOrDefault(ctx, h.logger).Info("record changed",
		slog.String("event_id", event.ID.String()),
		slog.String("entity", event.Entity),
		slog.String("action", string(event.Action)),
		slog.Int("record_id", event.RecordID),
		slog.Uint64("sequence", event.Sequence))
	return nil
}
