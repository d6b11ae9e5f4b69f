package ticket

import (
	"fmt"
	"regexp"
	"time"
)

// ID identifies a ticket in the remote ticketing system: three uppercase
// letters followed by exactly seven digits, e.g. TKT0001234.
type ID string

// UnknownCloser is the sentinel closer name used when the closing actor
// cannot be resolved.
const UnknownCloser = "unknown"

var idPattern = regexp.MustCompile(`[A-Z]{3}[0-9]{7}`)

// Extract returns the first ticket identifier embedded in name, if any.
func Extract(name string) (ID, bool) {
	match := idPattern.FindString(name)
	if match == "" {
		return "", false
	}
	return ID(match), true
}

// Parse validates that raw is exactly one ticket identifier. Unlike Extract
// it rejects surrounding text, so CLI arguments cannot smuggle extra input.
func Parse(raw string) (ID, error) {
	if match := idPattern.FindString(raw); match == raw && raw != "" {
		return ID(raw), nil
	}
	return "", fmt.Errorf("invalid ticket id %q: expected three uppercase letters followed by seven digits", raw)
}

func (id ID) String() string {
	return string(id)
}

// Record is the per-ticket aggregate built once per evaluation cycle. It is
// never mutated after construction; a new cycle replaces the whole set.
type Record struct {
	ID               ID
	RemoteID         string
	ClosedAt         *time.Time // in the policy zone; nil while the ticket is open
	ClosedBy         string
	HasRetentionHold bool
	FolderSizeBytes  uint64
	ReadyForDeletion bool
	DeepLink         string
}
