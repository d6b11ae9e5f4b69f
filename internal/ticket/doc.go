// Package ticket defines ticket identifiers and the per-ticket record
// produced by an evaluation cycle.
package ticket
