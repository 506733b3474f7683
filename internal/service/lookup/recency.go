// internal/service/lookup/recency.go
package lookup

import (
	"time"

	"customer-lookup-service/internal/domain/customer"
)

// RecentMonths is the width of the recency window in calendar months.
const RecentMonths = 3

// RecentCutoff is the first calendar date inside the window ending at now.
func RecentCutoff(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, -RecentMonths, 0)
}

// FilterRecent returns results unchanged when enabled is false, otherwise the
// records dated on or after RecentCutoff(now).
func FilterRecent(results []customer.CustomerRecord, enabled bool, now time.Time) []customer.CustomerRecord {
	if !enabled {
		return results
	}
	cutoff := RecentCutoff(now)
	out := make([]customer.CustomerRecord, 0, len(results))
	for _, rec := range results {
		if !rec.SaleDate.Before(cutoff) {
			out = append(out, rec)
		}
	}
	return out
}
