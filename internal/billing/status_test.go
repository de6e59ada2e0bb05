package billing

import (
	"testing"
	"time"
)

// TestOverdueAt verifies the lazy overdue boundary: an invoice stays payable
// through its entire due day and flips at the start of the next one, and a
// paid invoice never flips.
func TestOverdueAt(t *testing.T) {
	due := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		status  string
		now     time.Time
		overdue bool
	}{
		{
			name: "pending before the due day", status: StatusPending,
			now: due.Add(-time.Hour), overdue: false,
		},
		{
			name: "pending during the due day", status: StatusPending,
			now: due.Add(23*time.Hour + 59*time.Minute), overdue: false,
		},
		{
			name: "pending at start of the next day", status: StatusPending,
			now: due.AddDate(0, 0, 1), overdue: true,
		},
		{
			name: "pending well past due", status: StatusPending,
			now: due.AddDate(0, 1, 0), overdue: true,
		},
		{
			name: "paid never flips", status: StatusPaid,
			now: due.AddDate(0, 1, 0), overdue: false,
		},
		{
			name: "already overdue does not re-flip", status: StatusOverdue,
			now: due.AddDate(0, 1, 0), overdue: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			invoice := Invoice{Status: tc.status, DueDate: due}
			if got := overdueAt(invoice, tc.now); got != tc.overdue {
				t.Errorf("overdueAt at %v with status %s: want %v, got %v", tc.now, tc.status, tc.overdue, got)
			}
		})
	}
}
