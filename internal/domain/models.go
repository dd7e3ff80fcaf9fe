package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Row is one decoded spreadsheet record: column name to cell value. Blank
// cells decode to the empty string; missing columns are treated as empty.
type Row map[string]any

// RowSet is an ordered collection of rows sharing a nominal column set.
type RowSet []Row

// Columns returns the column names of the first row, sorted for determinism.
// An empty RowSet has no columns.
func (rs RowSet) Columns() []string {
	if len(rs) == 0 {
		return nil
	}
	cols := make([]string, 0, len(rs[0]))
	for k := range rs[0] {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// FilePayload is one uploaded file's decoded rows plus its classification,
// as carried inside a combined analysis request.
type FilePayload struct {
	FileName string   `json:"fileName"`
	Type     DataType `json:"type"`
	Data     RowSet   `json:"data"`
}

// AnalysisRequest describes one analysis unit. Exactly one of Data or Files
// is populated: Files for the combined type, Data otherwise. Immutable once
// constructed; one request maps to one prompt and one completion call.
type AnalysisRequest struct {
	Type     DataType      `json:"type"`
	Location string        `json:"location,omitempty"`
	Data     RowSet        `json:"data,omitempty"`
	Files    []FilePayload `json:"files,omitempty"`
}

// RecordCount returns the total number of rows carried by the request,
// summed across files for the combined type.
func (r *AnalysisRequest) RecordCount() int {
	if r.Type == DataTypeCombined {
		total := 0
		for _, f := range r.Files {
			total += len(f.Data)
		}
		return total
	}
	return len(r.Data)
}

// Sections holds the seven fixed analysis categories extracted from the
// completion text. Values are HTML-ish text and may be empty.
type Sections struct {
	KeyInsights              string `json:"keyInsights"`
	InventoryAnalysis        string `json:"inventoryAnalysis"`
	InventoryRecommendations string `json:"inventoryRecommendations"`
	VendorAnalysis           string `json:"vendorAnalysis"`
	VendorRecommendations    string `json:"vendorRecommendations"`
	SalesTrends              string `json:"salesTrends"`
	SalesForecasts           string `json:"salesForecasts"`
}

// Empty reports whether no section captured any text.
func (s *Sections) Empty() bool {
	return s.KeyInsights == "" && s.InventoryAnalysis == "" &&
		s.InventoryRecommendations == "" && s.VendorAnalysis == "" &&
		s.VendorRecommendations == "" && s.SalesTrends == "" &&
		s.SalesForecasts == ""
}

// Metrics holds headline figures scanned out of the completion text. When a
// metric is not mentioned, the literal documented default is substituted;
// callers must not treat defaults as ground truth.
type Metrics struct {
	InventoryTurnover string `json:"inventoryTurnover"`
	FulfillmentRate   string `json:"fulfillmentRate"`
	AvgDaysOnOrder    string `json:"avgDaysOnOrder"`
	StockoutRate      string `json:"stockoutRate"`
	TopCategory       string `json:"topCategory"`
	TopProduct        string `json:"topProduct"`
}

// TurnoverPoint is one bar in the inventory turnover chart.
type TurnoverPoint struct {
	Product  string  `json:"product"`
	Turnover float64 `json:"turnover"`
}

// CategoryPoint is one slice in the category performance chart.
type CategoryPoint struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

// VendorPoint is one vendor's scorecard entry.
type VendorPoint struct {
	Vendor           string  `json:"vendor"`
	OnTimeDelivery   float64 `json:"onTimeDelivery"`
	OrderFulfillment float64 `json:"orderFulfillment"`
}

// MonthlyPoint is one month in the sales-vs-purchases chart.
type MonthlyPoint struct {
	Month     string  `json:"month"`
	Sales     float64 `json:"sales"`
	Purchases float64 `json:"purchases"`
}

// Charts holds chart-ready series. These are fixed illustrative defaults,
// not derived from the completion text or the source dataset.
type Charts struct {
	InventoryTurnover   []TurnoverPoint `json:"inventoryTurnover"`
	CategoryPerformance []CategoryPoint `json:"categoryPerformance"`
	VendorPerformance   []VendorPoint   `json:"vendorPerformance"`
	SalesVsPurchases    []MonthlyPoint  `json:"salesVsPurchases"`
}

// AnalysisResult is the terminal artifact of the pipeline. Sections are
// flattened into the top level of the JSON encoding, matching the shape the
// chart and panel components consume.
type AnalysisResult struct {
	Sections
	Metrics Metrics `json:"metrics"`
	Charts  Charts  `json:"charts"`
}

// AnalysisRun is one persisted analysis invocation, kept for history.
type AnalysisRun struct {
	ID          uuid.UUID `db:"id" json:"id"`
	DataType    DataType  `db:"data_type" json:"dataType"`
	Location    string    `db:"location" json:"location,omitempty"`
	RecordCount int       `db:"record_count" json:"recordCount"`
	Model       string    `db:"model" json:"model"`
	Result      []byte    `db:"result" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// Dataset is a decoded, classified upload returned to the caller.
type Dataset struct {
	ID       uuid.UUID `json:"id"`
	FileName string    `json:"fileName"`
	Type     DataType  `json:"type"`
	Rows     RowSet    `json:"rows"`
}
