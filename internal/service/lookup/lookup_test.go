package lookup

import (
	"fmt"
	"testing"
	"time"

	"customer-lookup-service/internal/domain/customer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rec(id int, phone, name string, date time.Time) customer.CustomerRecord {
	return customer.CustomerRecord{ID: id, Phone: phone, RecipientName: name, SaleDate: date}
}

func TestSuggest_CapsAndDeduplicates(t *testing.T) {
	var records []customer.CustomerRecord
	for i := 0; i < 8; i++ {
		phone := fmt.Sprintf("08100000%02d", i)
		records = append(records,
			rec(2*i+1, phone, "Customer", day(2024, time.January, 1)),
			rec(2*i+2, phone, "Customer", day(2024, time.January, 2)),
		)
	}

	got := Suggest(records, "0810")

	require.Len(t, got, MaxSuggestions)
	seen := map[string]bool{}
	for i, s := range got {
		assert.False(t, seen[s.Phone], "duplicate phone %s", s.Phone)
		seen[s.Phone] = true
		assert.Equal(t, fmt.Sprintf("08100000%02d", i), s.Phone, "first-match order")
	}
	assert.Equal(t, 1, got[0].RecordID)
}

func TestSuggest_Matching(t *testing.T) {
	records := []customer.CustomerRecord{
		rec(1, "0812345678", "Somchai Jaidee", day(2024, 1, 1)),
		rec(2, "A-100", "Mali", day(2024, 1, 1)),
		rec(3, "0899999999", "SOMSRI", day(2024, 1, 1)),
	}

	byName := Suggest(records, "  som ")
	require.Len(t, byName, 2)
	assert.Equal(t, "0812345678", byName[0].Phone)
	assert.Equal(t, "0899999999", byName[1].Phone)

	assert.Len(t, Suggest(records, "345"), 1)
	assert.Empty(t, Suggest(records, "a-1"), "phone matching is case-sensitive")
	assert.Len(t, Suggest(records, "A-1"), 1)
	assert.Empty(t, Suggest(records, "   "))
	assert.Empty(t, Suggest(records, ""))
}

func TestHistory_NewestFirstStable(t *testing.T) {
	records := []customer.CustomerRecord{
		rec(1, "081", "A", day(2024, 1, 1)),
		rec(2, "0812", "B", day(2024, 6, 1)),
		rec(3, "081", "A", day(2024, 3, 1)),
		rec(4, "081", "A", day(2024, 3, 1)),
		rec(5, "081", "A", day(2024, 5, 1)),
	}

	got := History(records, "081")

	ids := make([]int, len(got))
	for i, r := range got {
		ids[i] = r.ID
	}
	assert.Equal(t, []int{5, 3, 4, 1}, ids)
	assert.Empty(t, History(records, "999"))
}

func TestFilterRecent(t *testing.T) {
	now := time.Date(2024, time.June, 15, 14, 30, 0, 0, time.UTC)
	results := []customer.CustomerRecord{
		rec(1, "081", "A", day(2024, 6, 1)),
		rec(2, "081", "A", day(2024, 3, 15)),
		rec(3, "081", "A", day(2024, 3, 14)),
	}

	assert.Equal(t, results, FilterRecent(results, false, now))

	got := FilterRecent(results, true, now)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[1].ID, "boundary date is inside the window")
}

func TestRecentCutoff_CalendarMonths(t *testing.T) {
	assert.Equal(t, day(2024, 3, 15), RecentCutoff(time.Date(2024, 6, 15, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, day(2023, 12, 31), RecentCutoff(day(2024, 3, 31)))
}

func TestSummarize(t *testing.T) {
	latest := customer.CustomerRecord{
		ID: 9, Phone: "081", RecipientName: "Somchai", SaleDate: day(2024, 6, 1),
		Address: "12/3", SubDistrict: "", District: "Khlong Toei", Province: "Bangkok", PostalCode: "10110",
		Product: "Soap", Quantity: 1, Price: 100,
	}
	older := customer.CustomerRecord{
		ID: 2, Phone: "081", RecipientName: "Old Name", SaleDate: day(2023, 1, 1),
		Address: "Old address", Product: "Shampoo", Quantity: 5, Price: 500,
	}
	results := []customer.CustomerRecord{latest, older}

	s := Summarize(results, []customer.CustomerRecord{older})

	require.NotNil(t, s)
	assert.Equal(t, "Somchai", s.Name)
	assert.Equal(t, "081", s.Phone)
	assert.Equal(t, "12/3 Khlong Toei Bangkok 10110", s.FullAddress)
	assert.Equal(t, 500.0, s.TotalSpent)
	assert.Equal(t, 1, s.PurchaseCount)
	assert.Equal(t, customer.ProductCount{Name: "Shampoo", Count: 5}, s.MostFrequentProduct)
}

func TestSummarize_EmptyFilteredAndEmptyResults(t *testing.T) {
	results := []customer.CustomerRecord{rec(1, "081", "A", day(2020, 1, 1))}

	s := Summarize(results, nil)
	require.NotNil(t, s)
	assert.Equal(t, 0, s.PurchaseCount)
	assert.Equal(t, 0.0, s.TotalSpent)
	assert.Equal(t, customer.ProductCount{Name: NoProduct, Count: 0}, s.MostFrequentProduct)

	assert.Nil(t, Summarize(nil, nil))
}

func TestMostFrequentProduct_TieGoesToFirstSeen(t *testing.T) {
	records := []customer.CustomerRecord{
		{Product: "A", Quantity: 3},
		{Product: "B", Quantity: 1},
		{Product: "  ", Quantity: 50},
		{Product: "B ", Quantity: 2},
	}

	assert.Equal(t, customer.ProductCount{Name: "A", Count: 3}, MostFrequentProduct(records))

	records = append(records, customer.CustomerRecord{Product: "B", Quantity: 1})
	assert.Equal(t, customer.ProductCount{Name: "B", Count: 4}, MostFrequentProduct(records))
}

func TestPage(t *testing.T) {
	records := make([]customer.CustomerRecord, 45)
	for i := range records {
		records[i].ID = i + 1
	}

	assert.Equal(t, 3, TotalPages(45))
	assert.Equal(t, 0, TotalPages(0))
	assert.True(t, ValidPage(3, 45))
	assert.False(t, ValidPage(4, 45))
	assert.False(t, ValidPage(0, 45))

	p := Page(records, 3)
	assert.Len(t, p.Records, 5)
	assert.Equal(t, 41, p.Records[0].ID)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 45, p.Total)

	assert.Empty(t, Page(records, 9).Records)
}
