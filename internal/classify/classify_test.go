package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chainsight/internal/classify"
	"chainsight/internal/domain"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    domain.DataType
	}{
		{"po number header", []string{"PO #", "Vendor", "# Ordered"}, domain.DataTypePurchaseOrders},
		{"ordered quantity header", []string{"Product", "# Ordered"}, domain.DataTypePurchaseOrders},
		{"invoice header", []string{"Invoice #", "Amount"}, domain.DataTypeSalesData},
		{"sales substring", []string{"Total Sales", "Date"}, domain.DataTypeSalesData},
		{"on hand header", []string{"Product", "On Hand"}, domain.DataTypeInventory},
		{"in stock header", []string{"SKU", "In Stock"}, domain.DataTypeInventory},
		{"no vocabulary match", []string{"Foo", "Bar"}, domain.DataTypeUnknown},
		{"empty headers", nil, domain.DataTypeUnknown},
		{"case sensitive", []string{"po #", "on hand"}, domain.DataTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify.Detect(tt.headers))
		})
	}
}

func TestDetect_PurchaseOrderRuleWinsOverSales(t *testing.T) {
	// Rule order is significant: a file carrying both vocabularies is
	// classified by the first matching rule.
	headers := []string{"PO #", "Sales Rep"}
	assert.Equal(t, domain.DataTypePurchaseOrders, classify.Detect(headers))
}

func TestDetectFromRows(t *testing.T) {
	rows := domain.RowSet{
		{"On Hand": 12, "Product": "iPhone 14 Pro"},
	}
	assert.Equal(t, domain.DataTypeInventory, classify.DetectFromRows(rows))

	assert.Equal(t, domain.DataTypeUnknown, classify.DetectFromRows(domain.RowSet{}))
}
