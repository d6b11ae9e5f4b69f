// Package retention decides whether a ticket's backup folder is old enough
// to move into deletion staging.
package retention
