// internal/service/lookup/summary.go
package lookup

import (
	"strings"

	"customer-lookup-service/internal/domain/customer"
)

// NoProduct is reported when nothing in the filtered set names a product.
const NoProduct = "-"

// Summarize reduces a customer's result set. Identity and address come from
// the most recent record of results; totals and the favourite product are
// computed over filtered. It returns nil when results is empty.
func Summarize(results, filtered []customer.CustomerRecord) *customer.CustomerSummaryData {
	latest := MostRecent(results)
	if latest == nil {
		return nil
	}

	summary := &customer.CustomerSummaryData{
		Name:                latest.RecipientName,
		Phone:               latest.Phone,
		FullAddress:         FullAddress(*latest),
		PurchaseCount:       len(filtered),
		MostFrequentProduct: MostFrequentProduct(filtered),
	}
	for _, rec := range filtered {
		if rec.Price > 0 {
			summary.TotalSpent += rec.Price
		}
	}
	return summary
}

// MostRecent returns the first record carrying the latest sale date.
func MostRecent(records []customer.CustomerRecord) *customer.CustomerRecord {
	if len(records) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(records); i++ {
		if records[i].SaleDate.After(records[best].SaleDate) {
			best = i
		}
	}
	rec := records[best]
	return &rec
}

// FullAddress joins the non-empty address components with single spaces.
func FullAddress(rec customer.CustomerRecord) string {
	parts := make([]string, 0, 5)
	for _, p := range []string{rec.Address, rec.SubDistrict, rec.District, rec.Province, rec.PostalCode} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// MostFrequentProduct sums quantity per trimmed product name. The highest
// total wins; among equal totals the product seen first wins.
func MostFrequentProduct(records []customer.CustomerRecord) customer.ProductCount {
	totals := make(map[string]float64)
	order := make([]string, 0)
	for _, rec := range records {
		name := strings.TrimSpace(rec.Product)
		if name == "" {
			continue
		}
		if _, ok := totals[name]; !ok {
			order = append(order, name)
		}
		totals[name] += rec.Quantity
	}

	top := customer.ProductCount{Name: NoProduct}
	for i, name := range order {
		if i == 0 || totals[name] > top.Count {
			top = customer.ProductCount{Name: name, Count: totals[name]}
		}
	}
	return top
}
