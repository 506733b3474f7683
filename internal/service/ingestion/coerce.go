// internal/service/ingestion/coerce.go
package ingestion

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Cell is one raw source value: a string from text sources, or a float64 for
// numeric spreadsheet cells.
type Cell = any

const (
	// serialUnixEpoch is the spreadsheet serial day of 1970-01-01 (serial 0 is 1899-12-30).
	serialUnixEpoch = 25569
	secondsPerDay   = 86400
	minSourceYear   = 1000
)

// dateStrategy is one way of turning a raw cell into a calendar date.
type dateStrategy struct {
	name  string
	parse func(raw Cell) (time.Time, bool)
}

// dateStrategies are tried in order; the first success wins.
var dateStrategies = []dateStrategy{
	{name: "native", parse: dateFromTime},
	{name: "serial", parse: dateFromSerial},
	{name: "calendar", parse: dateFromCalendarString},
	{name: "day-month-year", parse: dateFromDayMonthYear},
	{name: "month-day-year", parse: dateFromMonthDayYear},
}

// calendarLayouts are the unambiguous textual forms accepted before the DD/MM/YYYY fallback.
var calendarLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"2 Jan 2006",
	"02 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"January 2, 2006",
	"Mon Jan 2 2006",
	"Mon, 02 Jan 2006",
}

// CoerceDate resolves a sale date, reporting which strategy matched.
// ok is false when every strategy failed.
func CoerceDate(raw Cell) (date time.Time, strategy string, ok bool) {
	for _, s := range dateStrategies {
		if d, ok := s.parse(raw); ok {
			return d, s.name, true
		}
	}
	return time.Time{}, "", false
}

func dateFromTime(raw Cell) (time.Time, bool) {
	t, ok := raw.(time.Time)
	if !ok || t.IsZero() {
		return time.Time{}, false
	}
	return calendarDate(t), true
}

func dateFromSerial(raw Cell) (time.Time, bool) {
	serial, ok := nativeNumber(raw)
	if !ok || math.IsNaN(serial) || math.IsInf(serial, 0) || serial <= 0 {
		return time.Time{}, false
	}
	secs := math.Round((serial - serialUnixEpoch) * secondsPerDay)
	return calendarDate(time.Unix(int64(secs), 0).UTC()), true
}

func dateFromCalendarString(raw Cell) (time.Time, bool) {
	s, ok := raw.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range calendarLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return calendarDate(t), true
		}
	}
	return time.Time{}, false
}

func dateFromDayMonthYear(raw Cell) (time.Time, bool) {
	nums, ok := slashedDate(raw)
	if !ok {
		return time.Time{}, false
	}
	return strictDate(nums[2], nums[1], nums[0])
}

// dateFromMonthDayYear only sees what DD/MM/YYYY rejected, so 01/02/2021 stays 1 Feb.
func dateFromMonthDayYear(raw Cell) (time.Time, bool) {
	nums, ok := slashedDate(raw)
	if !ok {
		return time.Time{}, false
	}
	return strictDate(nums[2], nums[0], nums[1])
}

func slashedDate(raw Cell) ([3]int, bool) {
	var nums [3]int
	s, ok := raw.(string)
	if !ok {
		return nums, false
	}
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return nums, false
	}
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nums, false
		}
		nums[i] = n
	}
	return nums, true
}

func strictDate(year, month, day int) (time.Time, bool) {
	if year < minSourceYear || month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalises 31/02 into March; reject instead.
	if d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

// calendarDate drops the time of day, keeping the date as written.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CoerceNumber parses a price or quantity. Grouping commas are ignored and
// anything unparseable, negative or non-finite becomes 0.
func CoerceNumber(raw Cell) float64 {
	var v float64
	if n, ok := nativeNumber(raw); ok {
		v = n
	} else {
		s := strings.ReplaceAll(CoerceString(raw), ",", "")
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0
		}
		v = n
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// CoerceString renders any cell as trimmed text with one surrounding quote pair removed.
func CoerceString(raw Cell) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(stripQuotes(strings.TrimSpace(v)))
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return ""
	}
}

func nativeNumber(raw Cell) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// stripQuotes removes one leading and one trailing double quote.
func stripQuotes(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}

func isBlank(raw Cell) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(stripQuotes(strings.TrimSpace(v))) == ""
	default:
		return false
	}
}
