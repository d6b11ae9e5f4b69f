package retention

import (
	"fmt"
	"time"

	"ticketsweep/internal/config"
)

// Policy holds the retention constants for one process lifetime.
type Policy struct {
	// MinAge is how long a ticket must have been closed.
	MinAge time.Duration
	// Location is the zone closure timestamps are interpreted and aged in.
	Location *time.Location
	// HoldTag is the remote label sys_id that exempts a ticket.
	HoldTag string
}

// NewPolicy builds a Policy from configuration.
func NewPolicy(cfg config.Retention) (Policy, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return Policy{}, fmt.Errorf("load retention zone %q: %w", cfg.Timezone, err)
	}
	return Policy{
		MinAge:   time.Duration(cfg.Days) * 24 * time.Hour,
		Location: loc,
		HoldTag:  cfg.HoldTag,
	}, nil
}

// Ready reports whether a backup may be moved to deletion staging. Open
// tickets (nil closedAt) and held tickets are never ready; a ticket closed
// exactly MinAge ago is not ready either, the age must strictly exceed it.
func (p Policy) Ready(closedAt *time.Time, hasHold bool, now time.Time) bool {
	if closedAt == nil || hasHold {
		return false
	}
	return now.Sub(*closedAt) > p.MinAge
}

// Now returns the current time in the policy zone.
func (p Policy) Now() time.Time {
	return time.Now().In(p.Location)
}
