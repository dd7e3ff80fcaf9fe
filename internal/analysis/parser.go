package analysis

import (
	"regexp"
	"strings"

	"chainsight/internal/domain"
)

// Boundary patterns for section capture: content runs until the next
// numbered heading ("2. VENDOR...") or, for unnumbered headings, also until
// the next all-caps heading with a trailing colon.
var (
	nextNumberedHeading = regexp.MustCompile(`\d+\.\s+[A-Z]`)
	nextUppercaseLabel  = regexp.MustCompile(`[A-Z][A-Z\s]+:`)
)

// headingPatterns holds the two compiled match attempts for one synonym.
type headingPatterns struct {
	numbered   *regexp.Regexp
	unnumbered *regexp.Regexp
}

var headingRes = func() map[string]headingPatterns {
	m := make(map[string]headingPatterns)
	for _, d := range SectionDefs {
		for _, syn := range d.Synonyms {
			quoted := regexp.QuoteMeta(syn)
			m[syn] = headingPatterns{
				numbered:   regexp.MustCompile(`\d+\.\s*` + quoted + `[:\s]+`),
				unnumbered: regexp.MustCompile(quoted + `[:\s]+`),
			}
		}
	}
	return m
}()

// Parse splits the raw completion text into the fixed section set, scans the
// headline metrics, and attaches the placeholder chart series. It never
// fails: unmatched sections are empty, unmatched metrics take their literal
// defaults, and a response with no recognizable heading at all lands whole
// in keyInsights so the analysis is not silently lost.
func Parse(text string, dataType domain.DataType) *domain.AnalysisResult {
	_ = dataType // same heading vocabulary applies to every type today

	sections := domain.Sections{
		KeyInsights:              extractSection(text, synonymsFor(KeyInsights)),
		InventoryAnalysis:        extractSection(text, synonymsFor(InventoryAnalysis)),
		InventoryRecommendations: extractSection(text, synonymsFor(InventoryRecommendations)),
		VendorAnalysis:           extractSection(text, synonymsFor(VendorAnalysis)),
		VendorRecommendations:    extractSection(text, synonymsFor(VendorRecommendations)),
		SalesTrends:              extractSection(text, synonymsFor(SalesTrends)),
		SalesForecasts:           extractSection(text, synonymsFor(SalesForecasts)),
	}

	if sections.Empty() && len(text) > 0 {
		sections.KeyInsights = text
	}

	return &domain.AnalysisResult{
		Sections: sections,
		Metrics:  extractMetrics(text),
		Charts:   DefaultCharts(),
	}
}

func synonymsFor(key SectionKey) []string {
	for _, d := range SectionDefs {
		if d.Key == key {
			return d.Synonyms
		}
	}
	return nil
}

// extractSection tries each heading synonym in order, first as a numbered
// heading ("3. Inventory Recommendations:") and then unnumbered ("INVENTORY
// RECOMMENDATIONS:"). The first synonym yielding non-empty trimmed content
// wins. Heading matching is case-sensitive; the synonym lists carry the case
// variants the templates request.
func extractSection(text string, synonyms []string) string {
	for _, heading := range synonyms {
		if s := matchNumbered(text, heading); s != "" {
			return s
		}
		if s := matchUnnumbered(text, heading); s != "" {
			return s
		}
	}
	return ""
}

// matchNumbered captures content after "N. <heading>:" up to the next
// numbered heading or end of text. Content spans newlines.
func matchNumbered(text, heading string) string {
	loc := headingRes[heading].numbered.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	rest := text[loc[1]:]
	end := len(rest)
	if next := nextNumberedHeading.FindStringIndex(rest); next != nil {
		end = next[0]
	}
	return strings.TrimSpace(rest[:end])
}

// matchUnnumbered captures content after "<heading>:" up to the next
// numbered heading, the next all-caps label, or end of text.
func matchUnnumbered(text, heading string) string {
	loc := headingRes[heading].unnumbered.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	rest := text[loc[1]:]
	end := len(rest)
	if next := nextNumberedHeading.FindStringIndex(rest); next != nil && next[0] < end {
		end = next[0]
	}
	if next := nextUppercaseLabel.FindStringIndex(rest); next != nil && next[0] < end {
		end = next[0]
	}
	return strings.TrimSpace(rest[:end])
}
