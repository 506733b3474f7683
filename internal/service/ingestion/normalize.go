// internal/service/ingestion/normalize.go
package ingestion

import (
	"customer-lookup-service/internal/domain/customer"
)

// RejectReason explains why a row did not become a record.
type RejectReason string

const (
	RejectNone         RejectReason = ""
	RejectBlankRow     RejectReason = "blank_row"
	RejectMissingDate  RejectReason = "missing_sale_date"
	RejectMissingName  RejectReason = "missing_recipient_name"
	RejectMissingPhone RejectReason = "missing_phone"
)

// NormalizeRow turns one raw row into a validated record. position is the
// 1-based index of the row after the header and becomes the record ID.
// Cells beyond the header width are ignored; missing trailing cells are empty.
func NormalizeRow(position int, cells []Cell, columns ColumnMap) (customer.CustomerRecord, RejectReason) {
	if rowIsBlank(cells) {
		return customer.CustomerRecord{}, RejectBlankRow
	}

	rec := customer.CustomerRecord{ID: position}
	hasDate := false

	for i, field := range columns {
		if field == FieldNone || i >= len(cells) {
			continue
		}
		raw := cells[i]

		switch field {
		case FieldSaleDate:
			if d, _, ok := CoerceDate(raw); ok {
				rec.SaleDate = d
				hasDate = true
			} else {
				hasDate = false
			}
		case FieldQuantity:
			rec.Quantity = CoerceNumber(raw)
		case FieldPrice:
			rec.Price = CoerceNumber(raw)
		case FieldChannel:
			rec.Channel = CoerceString(raw)
		case FieldPayment:
			rec.Payment = CoerceString(raw)
		case FieldFacebookName:
			rec.FacebookName = CoerceString(raw)
		case FieldSalesperson:
			rec.Salesperson = CoerceString(raw)
		case FieldProduct:
			rec.Product = CoerceString(raw)
		case FieldRecipientName:
			rec.RecipientName = CoerceString(raw)
		case FieldPhone:
			rec.Phone = CoerceString(raw)
		case FieldAddress:
			rec.Address = CoerceString(raw)
		case FieldSubDistrict:
			rec.SubDistrict = CoerceString(raw)
		case FieldDistrict:
			rec.District = CoerceString(raw)
		case FieldProvince:
			rec.Province = CoerceString(raw)
		case FieldPostalCode:
			rec.PostalCode = CoerceString(raw)
		case FieldID:
			// The source's own sequence column is not trusted; ID stays the row position.
		}
	}

	switch {
	case !hasDate:
		return customer.CustomerRecord{}, RejectMissingDate
	case rec.RecipientName == "":
		return customer.CustomerRecord{}, RejectMissingName
	case rec.Phone == "":
		return customer.CustomerRecord{}, RejectMissingPhone
	}
	return rec, RejectNone
}

func rowIsBlank(cells []Cell) bool {
	for _, c := range cells {
		if !isBlank(c) {
			return false
		}
	}
	return true
}
