// internal/service/ingestion/schema.go
package ingestion

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Field is a canonical record attribute, independent of how a source spells its header.
type Field int

const (
	FieldNone Field = iota
	FieldID
	FieldSaleDate
	FieldChannel
	FieldPayment
	FieldFacebookName
	FieldSalesperson
	FieldProduct
	FieldQuantity
	FieldPrice
	FieldRecipientName
	FieldPhone
	FieldAddress
	FieldSubDistrict
	FieldDistrict
	FieldProvince
	FieldPostalCode
)

var fieldNames = map[Field]string{
	FieldID:            "id",
	FieldSaleDate:      "saleDate",
	FieldChannel:       "channel",
	FieldPayment:       "payment",
	FieldFacebookName:  "facebookName",
	FieldSalesperson:   "salesperson",
	FieldProduct:       "product",
	FieldQuantity:      "quantity",
	FieldPrice:         "price",
	FieldRecipientName: "recipientName",
	FieldPhone:         "phone",
	FieldAddress:       "address",
	FieldSubDistrict:   "subDistrict",
	FieldDistrict:      "district",
	FieldProvince:      "province",
	FieldPostalCode:    "postalCode",
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return "none"
}

// headerLabels maps the Thai export headers to canonical fields.
// Both spellings of the postal code header occur in real exports.
var headerLabels = map[string]Field{
	"ลำดับ":          FieldID,
	"วันที่ขาย":      FieldSaleDate,
	"ช่องทางขาย":     FieldChannel,
	"ชำระเงิน":       FieldPayment,
	"ชื่อ Facebook":  FieldFacebookName,
	"พนักงานขาย":     FieldSalesperson,
	"สินค้า":         FieldProduct,
	"จำนวน":          FieldQuantity,
	"ราคา":           FieldPrice,
	"ชื่อผู้รับ":     FieldRecipientName,
	"เบอร์โทร":       FieldPhone,
	"ที่อยู่":        FieldAddress,
	"ตำบล":           FieldSubDistrict,
	"อำเภอ":          FieldDistrict,
	"จังหวัด":        FieldProvince,
	"รหัสไปรษณีย์":   FieldPostalCode,
	"รหัสไปรษณี":     FieldPostalCode,
}

// canonicalAliases lets English exports use the canonical identifiers as headers.
var canonicalAliases = func() map[string]Field {
	m := make(map[string]Field, len(fieldNames))
	for f, name := range fieldNames {
		m[strings.ToLower(name)] = f
	}
	return m
}()

func init() {
	// Table keys are compared in NFC form.
	normalized := make(map[string]Field, len(headerLabels))
	for label, f := range headerLabels {
		normalized[norm.NFC.String(label)] = f
	}
	headerLabels = normalized
}

// CleanHeader trims a raw header cell, drops a UTF-8 BOM and one surrounding quote pair,
// and returns it in NFC form.
func CleanHeader(raw string) string {
	h := strings.TrimPrefix(raw, "\ufeff")
	h = stripQuotes(strings.TrimSpace(h))
	return norm.NFC.String(strings.TrimSpace(h))
}

// MapHeader returns the canonical field for a source header, or FieldNone if it is not recognised.
func MapHeader(raw string) Field {
	h := CleanHeader(raw)
	if h == "" {
		return FieldNone
	}
	if f, ok := headerLabels[h]; ok {
		return f
	}
	if f, ok := canonicalAliases[strings.ToLower(h)]; ok {
		return f
	}
	return FieldNone
}

// ColumnMap holds the canonical field of every source column, by position.
type ColumnMap []Field

// BuildColumnMap is computed once per load from the header row.
func BuildColumnMap(headers []string) ColumnMap {
	cols := make(ColumnMap, len(headers))
	for i, h := range headers {
		cols[i] = MapHeader(h)
	}
	return cols
}

// Mapped reports how many columns resolved to a canonical field.
func (c ColumnMap) Mapped() int {
	n := 0
	for _, f := range c {
		if f != FieldNone {
			n++
		}
	}
	return n
}

// Has reports whether some column maps to f.
func (c ColumnMap) Has(f Field) bool {
	for _, got := range c {
		if got == f {
			return true
		}
	}
	return false
}

// Missing lists required fields that no column maps to.
func (c ColumnMap) Missing() []string {
	var missing []string
	for _, f := range []Field{FieldSaleDate, FieldRecipientName, FieldPhone} {
		if !c.Has(f) {
			missing = append(missing, f.String())
		}
	}
	return missing
}
