// Package services holds the shared error taxonomy and context helpers used
// by the remote client, pipeline, and mover.
package services
