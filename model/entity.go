package model

// CompanyInfo is the canonical representation of a single company row
// from the companies dimension table.
type CompanyInfo struct {
	CompanyID string `json:"company_id"`
	CIKInt    int    `json:"cik_int"` // integer CIK, primary for filters
	CIKStr    string `json:"cik_str"` // zero-padded string "0000320193"
	Ticker    string `json:"ticker,omitempty"`
	Name      string `json:"name"`
}

// SectionInfo is one row of the SEC sections dimension table.
type SectionInfo struct {
	SectionID          string `json:"section_id"`
	SecItemCanonical   string `json:"sec_item_canonical"` // "ITEM_7", "ITEM_1A", ...
	SectionCode        string `json:"section_code,omitempty"`
	SectionName        string `json:"section_name,omitempty"`
	SectionDescription string `json:"section_description,omitempty"`
	SectionCategory    string `json:"section_category,omitempty"`
	PartNumber         int    `json:"part_number,omitempty"`
	Priority           int    `json:"priority,omitempty"`
	HasSubItems        bool   `json:"has_sub_items,omitempty"`
}

// CompanyMatches is the result of running company extraction on a query.
type CompanyMatches struct {
	CIKsInt []int    `json:"ciks_int"` // distinct integer CIKs, sorted
	CIKsStr []string `json:"ciks_str"` // distinct zero-padded CIK strings
	Tickers []string `json:"tickers"`  // distinct tickers, uppercased
	Names   []string `json:"names"`    // distinct canonical company names
}

// IsEmpty reports whether no company signal was found at all.
func (m CompanyMatches) IsEmpty() bool {
	return len(m.CIKsInt) == 0 && len(m.CIKsStr) == 0 && len(m.Tickers) == 0 && len(m.Names) == 0
}

// YearMatches is the result of running year extraction on a query.
// All distinct years are reported; the caller decides how to handle
// current and future years.
type YearMatches struct {
	Years        []int  `json:"years"`         // all distinct years, sorted ascending
	PastYears    []int  `json:"past_years"`    // years before the current calendar year
	CurrentYears []int  `json:"current_years"` // [] or [currentYear]
	FutureYears  []int  `json:"future_years"`  // years after the current calendar year
	Warning      string `json:"warning,omitempty"`
}

// HasAny reports whether any year was found.
func (m YearMatches) HasAny() bool { return len(m.Years) > 0 }

// HasPast reports whether any past year was found.
func (m YearMatches) HasPast() bool { return len(m.PastYears) > 0 }

// MetricMatches holds the canonical metric IDs found in a query, e.g.
// ["income_stmt_Revenue", "income_stmt_Net Income"]. Deduplicated and sorted.
type MetricMatches struct {
	Metrics []string `json:"metrics"`
}

// HasAny reports whether any metric was found.
func (m MetricMatches) HasAny() bool { return len(m.Metrics) > 0 }

// SectionMatches is the result of running section extraction on a query.
type SectionMatches struct {
	// Items holds distinct canonical section codes, e.g. "ITEM_7".
	Items []string `json:"items"`
	// Primary is the best single section to use for strict filters,
	// empty when nothing matched.
	Primary string `json:"primary,omitempty"`
}

// HasAny reports whether any section was found.
func (m SectionMatches) HasAny() bool { return len(m.Items) > 0 }

// RiskMatches holds the risk-topic buckets found in a query, e.g.
// ["liquidity_credit", "regulatory"], in discovery order.
type RiskMatches struct {
	Topics []string `json:"topics"`
}

// HasAny reports whether any risk topic was found.
func (m RiskMatches) HasAny() bool { return len(m.Topics) > 0 }

// EntityExtractionResult is the unified view of everything extracted from
// a user query. This is what the retrieval layer consumes.
type EntityExtractionResult struct {
	Query string `json:"query"`

	Companies CompanyMatches `json:"companies"`
	Years     YearMatches    `json:"years"`
	Metrics   MetricMatches  `json:"metrics"`

	Sections       []string `json:"sections"`
	PrimarySection string   `json:"primary_section,omitempty"`

	RiskTopics []string `json:"risk_topics"`
}

// IsEmpty reports whether no entity of any kind was extracted. Used by the
// query guardrails to reject out-of-scope queries.
func (r *EntityExtractionResult) IsEmpty() bool {
	hasCompanies := len(r.Companies.CIKsInt) > 0 || len(r.Companies.Tickers) > 0
	hasYears := len(r.Years.Years) > 0
	hasMetrics := len(r.Metrics.Metrics) > 0
	hasSections := len(r.Sections) > 0 || r.PrimarySection != ""
	hasRisks := len(r.RiskTopics) > 0
	return !(hasCompanies || hasYears || hasMetrics || hasSections || hasRisks)
}
