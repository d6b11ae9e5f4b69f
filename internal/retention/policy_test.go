package retention

import (
	"testing"
	"time"

	"ticketsweep/internal/config"
)

func testPolicy(t *testing.T) Policy {
	t.Helper()
	policy, err := NewPolicy(config.Default().Retention)
	if err != nil {
		t.Fatalf("NewPolicy returned error: %v", err)
	}
	return policy
}

func TestReady(t *testing.T) {
	policy := testPolicy(t)
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, policy.Location)

	closed := func(age time.Duration) *time.Time {
		ts := now.Add(-age)
		return &ts
	}

	tests := []struct {
		name     string
		closedAt *time.Time
		hasHold  bool
		want     bool
	}{
		{"open ticket never ready", nil, false, false},
		{"open ticket with hold never ready", nil, true, false},
		{"closed 20 days ago", closed(20 * 24 * time.Hour), false, true},
		{"closed 20 days ago with hold", closed(20 * 24 * time.Hour), true, false},
		{"closed exactly 14 days ago", closed(14 * 24 * time.Hour), false, false},
		{"closed 14 days and a second ago", closed(14*24*time.Hour + time.Second), false, true},
		{"closed yesterday", closed(24 * time.Hour), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.Ready(tt.closedAt, tt.hasHold, now); got != tt.want {
				t.Fatalf("Ready = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadyIsPure(t *testing.T) {
	policy := testPolicy(t)
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, policy.Location)
	closedAt := now.Add(-30 * 24 * time.Hour)

	first := policy.Ready(&closedAt, false, now)
	for i := 0; i < 100; i++ {
		if policy.Ready(&closedAt, false, now) != first {
			t.Fatal("identical inputs produced different verdicts")
		}
	}
}

func TestNewPolicyRejectsUnknownZone(t *testing.T) {
	retention := config.Default().Retention
	retention.Timezone = "Nowhere/Special"
	if _, err := NewPolicy(retention); err == nil {
		t.Fatal("expected error for unknown zone")
	}
}
