// internal/service/lookup/history.go
package lookup

import (
	"sort"

	"customer-lookup-service/internal/domain/customer"
)

// History returns every record whose phone equals phone exactly, newest sale
// first. Records sharing a date keep their ingestion order.
func History(records []customer.CustomerRecord, phone string) []customer.CustomerRecord {
	out := make([]customer.CustomerRecord, 0)
	for _, rec := range records {
		if rec.Phone == phone {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SaleDate.After(out[j].SaleDate)
	})
	return out
}
