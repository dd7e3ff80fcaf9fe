package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chainsight/internal/domain"
	"chainsight/internal/stats"
)

func TestCompute_EmptyRowSet(t *testing.T) {
	req := &domain.AnalysisRequest{Type: domain.DataTypeSalesData, Data: domain.RowSet{}}
	b := stats.Compute(req)

	assert.Equal(t, 0, b.RecordCount)
	assert.Empty(t, b.ColumnNames)
	assert.False(t, b.HasSales)
	assert.Empty(t, b.TopProducts)
}

func TestCompute_SalesAggregates(t *testing.T) {
	req := &domain.AnalysisRequest{
		Type: domain.DataTypeSalesData,
		Data: domain.RowSet{
			{"Revenue": 100.0, "Product": "iPhone 14 Pro"},
			{"Revenue": "250.5", "Product": "USB-C Cable"},
			{"Revenue": "n/a", "Product": "iPhone 14 Pro"},
			{"Revenue": 49.5, "Product": "Wall Charger"},
		},
	}
	b := stats.Compute(req)

	assert.Equal(t, 4, b.RecordCount)
	assert.True(t, b.HasSales)
	assert.InDelta(t, 400.0, b.TotalSales, 0.001)
	assert.InDelta(t, 100.0, b.AvgSale, 0.001)
}

func TestCompute_NonNumericCellsCoerceToZero(t *testing.T) {
	req := &domain.AnalysisRequest{
		Type: domain.DataTypeSalesData,
		Data: domain.RowSet{
			{"Total Amount": "abc"},
			{"Total Amount": ""},
		},
	}
	b := stats.Compute(req)
	assert.True(t, b.HasSales)
	assert.Zero(t, b.TotalSales)
}

func TestCompute_TopProducts(t *testing.T) {
	rows := domain.RowSet{}
	add := func(name string, times int) {
		for i := 0; i < times; i++ {
			rows = append(rows, domain.Row{"Item": name})
		}
	}
	add("cable", 5)
	add("charger", 3)
	add("case", 3)
	add("screen protector", 2)
	add("stand", 1)
	add("dock", 1)

	req := &domain.AnalysisRequest{Type: domain.DataTypeInventory, Data: rows}
	b := stats.Compute(req)

	assert.Len(t, b.TopProducts, 5)
	assert.Equal(t, stats.ProductCount{Name: "cable", Count: 5}, b.TopProducts[0])
	// Equal counts keep first-encountered order.
	assert.Equal(t, "charger", b.TopProducts[1].Name)
	assert.Equal(t, "case", b.TopProducts[2].Name)
}

func TestCompute_Combined(t *testing.T) {
	req := &domain.AnalysisRequest{
		Type: domain.DataTypeCombined,
		Files: []domain.FilePayload{
			{
				FileName: "po.xlsx",
				Type:     domain.DataTypePurchaseOrders,
				Data:     domain.RowSet{{"PO #": "1001"}, {"PO #": "1002"}},
			},
			{
				FileName: "inv.xlsx",
				Type:     domain.DataTypeInventory,
				Data:     domain.RowSet{{"On Hand": 4}},
			},
		},
	}
	b := stats.Compute(req)

	assert.Equal(t, 3, b.RecordCount)
	assert.Len(t, b.FileStats, 2)
	assert.Equal(t, "po.xlsx", b.FileStats[0].FileName)
	assert.Equal(t, 2, b.FileStats[0].RecordCount)
	assert.Equal(t, []string{"PO #"}, b.FileStats[0].ColumnNames)
	// No cross-file aggregation for combined requests.
	assert.False(t, b.HasSales)
	assert.Empty(t, b.TopProducts)
}

func TestCompute_NoMatchingColumnsOmitsStats(t *testing.T) {
	req := &domain.AnalysisRequest{
		Type: domain.DataTypePurchaseOrders,
		Data: domain.RowSet{{"Vendor": "Apple", "Qty": 3}},
	}
	b := stats.Compute(req)
	assert.False(t, b.HasSales)
	assert.Empty(t, b.TopProducts)
	assert.Equal(t, []string{"Qty", "Vendor"}, b.ColumnNames)
}
