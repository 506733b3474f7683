// internal/domain/customer/entity.go
package customer

import "time"

// CustomerRecord is one purchase line item ingested from a source.
// ID is the 1-based row position within the source and is not stable across reloads.
type CustomerRecord struct {
	ID            int       `json:"id"`
	SaleDate      time.Time `json:"saleDate"`
	Channel       string    `json:"channel"`
	Payment       string    `json:"payment"`
	FacebookName  string    `json:"facebookName"`
	Salesperson   string    `json:"salesperson"`
	Product       string    `json:"product"`
	Quantity      float64   `json:"quantity"`
	Price         float64   `json:"price"`
	RecipientName string    `json:"recipientName"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	SubDistrict   string    `json:"subDistrict"`
	District      string    `json:"district"`
	Province      string    `json:"province"`
	PostalCode    string    `json:"postalCode"`
}

// ProductCount is the accumulated quantity for one product name.
type ProductCount struct {
	Name  string  `json:"name"`
	Count float64 `json:"count"`
}

// CustomerSummaryData is the reduction of one customer's active result set.
type CustomerSummaryData struct {
	Name                string       `json:"name"`
	Phone               string       `json:"phone"`
	FullAddress         string       `json:"fullAddress"`
	TotalSpent          float64      `json:"totalSpent"`
	PurchaseCount       int          `json:"purchaseCount"`
	MostFrequentProduct ProductCount `json:"mostFrequentProduct"`
}

// Suggestion is a deduplicated candidate customer shown while typing.
type Suggestion struct {
	Phone         string `json:"phone"`
	RecipientName string `json:"recipientName"`
	RecordID      int    `json:"recordId"`
}

// SourceKind tells which parser produced a dataset.
type SourceKind string

const (
	SourceKindText        SourceKind = "text"
	SourceKindSpreadsheet SourceKind = "spreadsheet"
)

// Dataset is the full record set of one successful load. It is replaced wholesale on every load.
type Dataset struct {
	LoadID   string
	Source   string
	Kind     SourceKind
	LoadedAt time.Time
	Records  []CustomerRecord
	Rejected int
}

// Count returns the number of accepted records.
func (d *Dataset) Count() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}
