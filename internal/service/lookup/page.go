// internal/service/lookup/page.go
package lookup

import "customer-lookup-service/internal/domain/customer"

// PageSize is the fixed number of records per history page.
const PageSize = 20

// TotalPages is ceil(n / PageSize).
func TotalPages(n int) int {
	return (n + PageSize - 1) / PageSize
}

// ValidPage reports whether page is inside [1, TotalPages(n)].
func ValidPage(page, n int) bool {
	return page >= 1 && page <= TotalPages(n)
}

// Page slices one 1-based page out of records. Pages past the end are empty.
func Page(records []customer.CustomerRecord, page int) *customer.HistoryPage {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start > len(records) {
		start = len(records)
	}
	end := start + PageSize
	if end > len(records) {
		end = len(records)
	}
	return &customer.HistoryPage{
		Records:    records[start:end],
		Page:       page,
		PageSize:   PageSize,
		TotalPages: TotalPages(len(records)),
		Total:      len(records),
	}
}
