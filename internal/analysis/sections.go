// Package analysis recovers a structured AnalysisResult from the free-text,
// non-deterministic completion response. Extraction is heuristic: heading
// matching with multi-format fallback, regex metric scanning with literal
// defaults, and fixed placeholder chart series.
package analysis

// SectionKey identifies one of the seven fixed analysis categories.
type SectionKey string

const (
	KeyInsights              SectionKey = "keyInsights"
	InventoryAnalysis        SectionKey = "inventoryAnalysis"
	InventoryRecommendations SectionKey = "inventoryRecommendations"
	VendorAnalysis           SectionKey = "vendorAnalysis"
	VendorRecommendations    SectionKey = "vendorRecommendations"
	SalesTrends              SectionKey = "salesTrends"
	SalesForecasts           SectionKey = "salesForecasts"
)

// SectionDef binds a section key to its canonical heading and the ordered
// list of heading variants the parser accepts. The prompt builder renders
// headings from this same table so the two stay in lock-step: changing a
// heading here changes both what is requested and what is parsed.
type SectionDef struct {
	Key      SectionKey
	Heading  string
	Synonyms []string
}

// SectionDefs is the parsing contract, in the order sections are requested.
var SectionDefs = []SectionDef{
	{KeyInsights, "Key Insights", []string{"Key Insights", "KEY INSIGHTS", "Important Insights", "Summary"}},
	{InventoryAnalysis, "Inventory Analysis", []string{"Inventory Analysis", "INVENTORY ANALYSIS"}},
	{InventoryRecommendations, "Inventory Recommendations", []string{"Inventory Recommendations", "INVENTORY RECOMMENDATIONS"}},
	{VendorAnalysis, "Vendor Analysis", []string{"Vendor Analysis", "VENDOR ANALYSIS", "Vendor Performance"}},
	{VendorRecommendations, "Vendor Recommendations", []string{"Vendor Recommendations", "VENDOR RECOMMENDATIONS"}},
	{SalesTrends, "Sales Trends", []string{"Sales Trends", "SALES TRENDS"}},
	{SalesForecasts, "Sales Forecasts", []string{"Sales Forecasts", "SALES FORECASTS", "Sales Forecast", "Forecasting"}},
}

// Headings returns the canonical section headings in request order.
func Headings() []string {
	out := make([]string, len(SectionDefs))
	for i, d := range SectionDefs {
		out[i] = d.Heading
	}
	return out
}
