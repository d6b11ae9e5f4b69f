// Package mover relocates backup folders into the deletion staging
// directory. Moves are best-effort per folder: one failure never aborts the
// rest of the batch, and re-moving an already absent folder is a no-op.
package mover
