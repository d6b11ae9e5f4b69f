// Package pipeline orchestrates one evaluation cycle: scan the backups
// location, fan out one evaluation per discovered ticket, and collect the
// fully resolved records behind a fan-in barrier.
package pipeline
