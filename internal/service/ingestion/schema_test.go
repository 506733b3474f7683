package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapHeader(t *testing.T) {
	tests := []struct {
		header string
		want   Field
	}{
		{"วันที่ขาย", FieldSaleDate},
		{"ชื่อผู้รับ", FieldRecipientName},
		{"เบอร์โทร", FieldPhone},
		{"รหัสไปรษณีย์", FieldPostalCode},
		{"รหัสไปรษณี", FieldPostalCode},
		{"ชื่อ Facebook", FieldFacebookName},
		{` "สินค้า" `, FieldProduct},
		{"\ufeffลำดับ", FieldID},
		{"Phone", FieldPhone},
		{"saledate", FieldSaleDate},
		{"หมายเหตุ", FieldNone},
		{"", FieldNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MapHeader(tt.header), "header %q", tt.header)
	}
}

func TestBuildColumnMap(t *testing.T) {
	cols := BuildColumnMap([]string{"วันที่ขาย", "หมายเหตุ", "ชื่อผู้รับ"})

	assert.Equal(t, ColumnMap{FieldSaleDate, FieldNone, FieldRecipientName}, cols)
	assert.Equal(t, 2, cols.Mapped())
	assert.Equal(t, []string{"phone"}, cols.Missing())
}
