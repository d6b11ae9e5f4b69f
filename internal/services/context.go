package services

import "context"

type contextKey string

const (
	cycleIDKey contextKey = "cycle_id"
	ticketKey  contextKey = "ticket"
)

// WithCycleID annotates context with the evaluation cycle correlation identifier.
func WithCycleID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, cycleIDKey, id)
}

// CycleIDFromContext extracts the cycle correlation identifier if present.
func CycleIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(cycleIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithTicket annotates context with the ticket identifier being evaluated.
func WithTicket(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, ticketKey, id)
}

// TicketFromContext returns the ticket identifier if present.
func TicketFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(ticketKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
