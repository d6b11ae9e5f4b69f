// Package notifications publishes sweep outcomes to an ntfy topic. A noop
// implementation is returned when no topic is configured, so callers never
// branch on whether notifications are enabled.
package notifications
