// Package prompt turns a tagged, stats-enriched analysis request into one of
// five natural-language templates for the completion backend. Templates embed
// a bounded sample of the data, never the full dataset.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"chainsight/internal/analysis"
	"chainsight/internal/domain"
	"chainsight/internal/stats"
)

const (
	// SampleLimit caps the rows embedded in a single-type prompt.
	SampleLimit = 10
	// CombinedSampleLimit caps the rows embedded per file in a combined
	// prompt. The tighter cap keeps multi-file prompts inside the output
	// token budget.
	CombinedSampleLimit = 3
)

// Build selects the template for the request's type and renders it. Never
// fails: absent optional fields degrade to omitted text.
func Build(req *domain.AnalysisRequest, st stats.Block) string {
	switch req.Type {
	case domain.DataTypeCombined:
		return buildCombined(req, st)
	case domain.DataTypePurchaseOrders:
		return buildPurchaseOrders(req, st)
	case domain.DataTypeSalesData:
		return buildSalesData(req, st)
	case domain.DataTypeInventory:
		return buildInventory(req, st)
	default:
		return buildGeneral(req, st)
	}
}

func buildPurchaseOrders(req *domain.AnalysisRequest, st stats.Block) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I have purchase order data for a mobile retail store%s.\n\n", locationClause(req.Location))
	writeSample(&b, req.Data, st)
	b.WriteString(`As a senior supply chain expert, provide a detailed analysis of this purchase order data, including:

1. KEY INSIGHTS:
   - Identify the top 3-5 most important patterns or issues in the purchase order data
   - Highlight specific products or vendors that stand out (positively or negatively)
   - Note any critical supply chain risks or opportunities

2. ORDER PATTERN ANALYSIS:
   - Analyze order frequency and volume patterns
   - Identify any seasonality or cyclical ordering
   - Evaluate order sizes and their efficiency

3. VENDOR PERFORMANCE:
   - Assess lead times by vendor
   - Evaluate fill rates and order accuracy
   - Compare vendor pricing and terms

4. INVENTORY IMPLICATIONS:
   - How do these purchase orders align with optimal inventory levels?
   - Are there signs of reactive ordering or strategic planning?
   - Identify potential stockout or overstock risks

5. COST OPTIMIZATION:
   - Identify opportunities for order consolidation
   - Suggest optimal order quantities
   - Recommend changes to ordering frequency

6. SPECIFIC RECOMMENDATIONS:
   - Provide 5-7 specific, actionable recommendations
   - Prioritize recommendations by potential impact
   - Include expected outcomes for each recommendation

Be specific and data-driven in your analysis. Mention actual product names, categories, and vendors from the data. Provide concrete numbers and percentages whenever possible.`)
	return b.String()
}

// salesQuestions pairs each canonical section heading with the question the
// sales template asks under it.
var salesQuestions = []string{
	"What are the most important patterns or issues in this data?",
	"What does this tell us about our inventory management?",
	"What specific actions should we take to improve?",
	"What does this tell us about our product mix?",
	"How can we optimize our product mix?",
	"What patterns do you see in the sales data?",
	"What should we expect in the coming months?",
}

func buildSalesData(req *domain.AnalysisRequest, st stats.Block) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I have sales data for a mobile retail store%s.\n\n", locationClause(req.Location))
	writeSample(&b, req.Data, st)
	b.WriteString("Provide a comprehensive analysis of this sales data from a supply chain perspective, including:\n\n")
	for i, heading := range analysis.Headings() {
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, heading, salesQuestions[i])
	}
	b.WriteString("\nPlease be specific and actionable in your recommendations.")
	return b.String()
}

func buildInventory(req *domain.AnalysisRequest, st stats.Block) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I have inventory data for a mobile retail store%s.\n\n", locationClause(req.Location))
	writeSample(&b, req.Data, st)
	b.WriteString("Provide a comprehensive analysis of this inventory data from a supply chain perspective, including:\n\n")
	headings := analysis.Headings()
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, headings[i], salesQuestions[i])
	}
	// The inventory variant closes with inference-oriented sections instead
	// of the sales trend/forecast pair.
	b.WriteString("6. Sales Implications: What can we infer about sales patterns?\n")
	b.WriteString("7. Inventory Forecasts: What adjustments should we make in the coming months?\n")
	b.WriteString("\nPlease be specific and actionable in your recommendations.")
	return b.String()
}

func buildGeneral(req *domain.AnalysisRequest, st stats.Block) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I have retail data for a mobile store%s.\n\n", locationClause(req.Location))
	writeSample(&b, req.Data, st)
	b.WriteString("Provide a comprehensive analysis of this data from a supply chain perspective, including any actionable insights and recommendations.")
	return b.String()
}

func buildCombined(req *domain.AnalysisRequest, st stats.Block) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I have multiple retail data files for a mobile store%s.\n\n", locationClause(req.Location))
	fmt.Fprintf(&b, "The dataset includes %s.\n\n", describeFileTypes(req.Files))
	fmt.Fprintf(&b, "Here's a sample from each type of data (limited to %d rows per file):\n", CombinedSampleLimit)
	for _, f := range req.Files {
		fmt.Fprintf(&b, "\n--- %s DATA (%s) ---\n", strings.ToUpper(string(f.Type)), f.FileName)
		b.WriteString(serializeRows(f.Data, CombinedSampleLimit))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nTotal files: %d\n", len(req.Files))
	fmt.Fprintf(&b, "Total records across all files: %d\n\n", req.RecordCount())
	writeFileStats(&b, st)
	b.WriteString(`Provide a comprehensive cross-analysis of this data from a supply chain perspective. Your analysis should include:

1. KEY INSIGHTS:
   - Identify the top 3-5 most important patterns or issues across these datasets
   - Highlight specific products or categories that stand out (positively or negatively)
   - Note any critical supply chain risks or opportunities

2. INVENTORY ANALYSIS:
   - Which specific products have the highest/lowest turnover rates?
   - Are there any products that appear overstocked or understocked?
   - How well is inventory aligned with sales velocity?
   - Identify any seasonal patterns in inventory levels

3. INVENTORY RECOMMENDATIONS:
   - Provide 3-5 specific, actionable steps to optimize inventory levels
   - Suggest specific reorder points or safety stock adjustments for key products
   - Recommend inventory management policy changes with expected outcomes

4. VENDOR ANALYSIS:
   - Evaluate specific vendor performance metrics (delivery time, fill rate, etc.)
   - Compare vendors on key performance indicators
   - Identify any vendor-related bottlenecks or risks

5. VENDOR RECOMMENDATIONS:
   - Suggest specific changes to vendor relationships or terms
   - Recommend consolidation or diversification strategies if appropriate
   - Provide a framework for ongoing vendor performance management

6. SALES TRENDS:
   - Identify the best and worst performing products/categories
   - Highlight any emerging trends or declining product lines
   - Note correlations between marketing activities and sales performance

7. SALES FORECASTS & ORDERING STRATEGY:
   - Provide specific forecasts for key product categories
   - Recommend order timing and quantity adjustments
   - Suggest ways to better align purchasing with sales cycles

Be specific and data-driven in your analysis. Mention actual product names, categories, and vendors from the data. Provide concrete numbers and percentages whenever possible. Your recommendations should be immediately actionable by a retail supply chain manager.

IMPORTANT: Format your response with clear section headings (e.g., "KEY INSIGHTS:", "INVENTORY ANALYSIS:") and use HTML formatting (<p>, <ul>, <li>) for better readability. Make sure each section contains detailed textual analysis, not just data points.`)
	return b.String()
}

// locationClause renders " in <location>" or nothing, so an absent location
// leaves no artifact in the prompt.
func locationClause(location string) string {
	if location == "" {
		return ""
	}
	return " in " + location
}

// writeSample embeds the bounded row sample, the true total record count,
// and the pre-computed statistics block.
func writeSample(b *strings.Builder, rows domain.RowSet, st stats.Block) {
	b.WriteString("Here's a sample of the data:\n")
	b.WriteString(serializeRows(rows, SampleLimit))
	fmt.Fprintf(b, "\n\nTotal records: %d\n\n", len(rows))
	writeStats(b, st)
}

// writeStats renders the pre-computed aggregates so the model does not have
// to derive them from the sample.
func writeStats(b *strings.Builder, st stats.Block) {
	if len(st.ColumnNames) > 0 {
		fmt.Fprintf(b, "Columns: %s\n", strings.Join(st.ColumnNames, ", "))
	}
	if st.HasSales {
		fmt.Fprintf(b, "Pre-computed total sales: %.2f (average per record: %.2f)\n", st.TotalSales, st.AvgSale)
	}
	if len(st.TopProducts) > 0 {
		names := make([]string, len(st.TopProducts))
		for i, p := range st.TopProducts {
			names[i] = fmt.Sprintf("%s (%d)", p.Name, p.Count)
		}
		fmt.Fprintf(b, "Top products by record count: %s\n", strings.Join(names, ", "))
	}
	if len(st.ColumnNames) > 0 || st.HasSales || len(st.TopProducts) > 0 {
		b.WriteString("\n")
	}
}

func writeFileStats(b *strings.Builder, st stats.Block) {
	if len(st.FileStats) == 0 {
		return
	}
	b.WriteString("Per-file statistics:\n")
	for _, f := range st.FileStats {
		fmt.Fprintf(b, "- %s (%s): %d records, columns: %s\n",
			f.FileName, f.Type, f.RecordCount, strings.Join(f.ColumnNames, ", "))
	}
	b.WriteString("\n")
}

// serializeRows renders at most limit rows as indented JSON.
func serializeRows(rows domain.RowSet, limit int) string {
	if len(rows) > limit {
		rows = rows[:limit]
	}
	if rows == nil {
		rows = domain.RowSet{}
	}
	out, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(out)
}

// describeFileTypes renders a census line like "2 purchase order files,
// 1 sales file".
func describeFileTypes(files []domain.FilePayload) string {
	counts := map[domain.DataType]int{}
	var order []domain.DataType
	for _, f := range files {
		if counts[f.Type] == 0 {
			order = append(order, f.Type)
		}
		counts[f.Type]++
	}

	parts := make([]string, 0, len(order))
	for _, t := range order {
		name := string(t)
		switch t {
		case domain.DataTypePurchaseOrders:
			name = "purchase order"
		case domain.DataTypeSalesData:
			name = "sales"
		case domain.DataTypeInventory:
			name = "inventory"
		}
		plural := "files"
		if counts[t] == 1 {
			plural = "file"
		}
		parts = append(parts, fmt.Sprintf("%d %s %s", counts[t], name, plural))
	}
	return strings.Join(parts, ", ")
}
