// Package classify assigns a semantic DataType to uploaded tabular data by
// inspecting its column headers.
package classify

import (
	"strings"

	"chainsight/internal/domain"
)

// rule pairs a header vocabulary with the type it implies. Rules are checked
// in order; the first match wins.
type rule struct {
	vocabulary []string
	dataType   domain.DataType
}

var rules = []rule{
	{[]string{"PO #", "# Ordered", "Purchase Order"}, domain.DataTypePurchaseOrders},
	{[]string{"Invoice #", "Sale By", "Sales"}, domain.DataTypeSalesData},
	{[]string{"On Hand", "In Stock", "Inventory"}, domain.DataTypeInventory},
}

// Detect returns the DataType implied by the given column headers. Matching
// is case-sensitive substring presence. Returns DataTypeUnknown when no rule
// matches; never fails.
func Detect(headers []string) domain.DataType {
	for _, r := range rules {
		for _, header := range headers {
			for _, word := range r.vocabulary {
				if strings.Contains(header, word) {
					return r.dataType
				}
			}
		}
	}
	return domain.DataTypeUnknown
}

// DetectFromRows classifies a RowSet by the columns of its first row.
func DetectFromRows(rows domain.RowSet) domain.DataType {
	return Detect(rows.Columns())
}
