package logging

import (
	"context"
	"log/slog"

	"ticketsweep/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldTicket is the standardized structured logging key for ticket identifiers.
	FieldTicket = "ticket"
	// FieldCycleID is the standardized structured logging key for evaluation cycle
	// correlation identifiers.
	FieldCycleID = "cycle_id"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := services.CycleIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCycleID, id))
	}
	if number, ok := services.TicketFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldTicket, number))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from
// the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
