// Package stats computes lightweight aggregate statistics over a dataset so
// the prompt can carry pre-computed numbers the model does not need to derive.
package stats

import (
	"sort"
	"strconv"
	"strings"

	"chainsight/internal/domain"
)

// Column vocabularies for loose (case-insensitive substring) matching.
var (
	salesColumnWords   = []string{"sales", "amount", "revenue", "total"}
	productColumnWords = []string{"product", "item", "sku"}
)

const topProductLimit = 5

// ProductCount is one entry in the top-products frequency table.
type ProductCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// FileStat summarizes one file inside a combined request.
type FileStat struct {
	FileName    string          `json:"fileName"`
	Type        domain.DataType `json:"type"`
	RecordCount int             `json:"recordCount"`
	ColumnNames []string        `json:"columnNames"`
}

// Block is the derived, read-only enrichment of an AnalysisRequest. Computed
// fresh per request and discarded with the prompt; never cached.
type Block struct {
	RecordCount int            `json:"recordCount"`
	ColumnNames []string       `json:"columnNames,omitempty"`
	TotalSales  float64        `json:"totalSales,omitempty"`
	AvgSale     float64        `json:"avgSale,omitempty"`
	HasSales    bool           `json:"-"`
	TopProducts []ProductCount `json:"topProducts,omitempty"`
	FileStats   []FileStat     `json:"fileStats,omitempty"`
}

// Compute derives a stats Block from the request. Total function: an empty
// or column-less dataset simply omits the corresponding stats.
func Compute(req *domain.AnalysisRequest) Block {
	if req.Type == domain.DataTypeCombined {
		b := Block{FileStats: make([]FileStat, 0, len(req.Files))}
		for _, f := range req.Files {
			b.FileStats = append(b.FileStats, FileStat{
				FileName:    f.FileName,
				Type:        f.Type,
				RecordCount: len(f.Data),
				ColumnNames: f.Data.Columns(),
			})
			b.RecordCount += len(f.Data)
		}
		return b
	}

	b := Block{
		RecordCount: len(req.Data),
		ColumnNames: req.Data.Columns(),
	}
	if len(req.Data) == 0 {
		return b
	}

	if col, ok := findColumn(req.Data[0], salesColumnWords); ok {
		for _, row := range req.Data {
			b.TotalSales += toNumber(row[col])
		}
		b.AvgSale = b.TotalSales / float64(len(req.Data))
		b.HasSales = true
	}

	if col, ok := findColumn(req.Data[0], productColumnWords); ok {
		b.TopProducts = topValues(req.Data, col, topProductLimit)
	}

	return b
}

// findColumn returns the first column whose lowercased name contains any of
// the vocabulary words.
func findColumn(row domain.Row, words []string) (string, bool) {
	cols := make([]string, 0, len(row))
	for k := range row {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	for _, col := range cols {
		lower := strings.ToLower(col)
		for _, w := range words {
			if strings.Contains(lower, w) {
				return col, true
			}
		}
	}
	return "", false
}

// topValues counts distinct values of the column and keeps the top n by
// descending count. Ties keep first-encountered order.
func topValues(rows domain.RowSet, col string, n int) []ProductCount {
	counts := map[string]int{}
	var order []string
	for _, row := range rows {
		v := toString(row[col])
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	result := make([]ProductCount, 0, len(order))
	for _, name := range order {
		result = append(result, ProductCount{Name: name, Count: counts[name]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	if len(result) > n {
		result = result[:n]
	}
	return result
}

// toNumber coerces a cell value to a float64, treating anything non-numeric
// as zero.
func toNumber(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	default:
		return ""
	}
}
