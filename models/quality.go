package models

// Quality levels ordered from worst to best.
const (
	QualityPoor      = "poor"
	QualityFair      = "fair"
	QualityGood      = "good"
	QualityExcellent = "excellent"
)

// SubScore is the 0-100 score of a single article field plus its issues.
type SubScore struct {
	Score  int      `json:"score"`
	Issues []string `json:"issues,omitempty"`
}

// QualityAnalysis is the deterministic quality report for one article.
// Derived on demand, never persisted as a whole.
type QualityAnalysis struct {
	WordCount        int      `json:"word_count"`
	ReadabilityScore float64  `json:"readability_score"`
	HasQuotes        bool     `json:"has_quotes"`
	HasNumbers       bool     `json:"has_numbers"`
	HasLinks         bool     `json:"has_links"`
	TitleQuality     SubScore `json:"title_quality"`
	SummaryQuality   SubScore `json:"summary_quality"`
	OverallScore     int      `json:"overall_score"`
	QualityLevel     string   `json:"quality_level"`
	Issues           []string `json:"issues,omitempty"`
}
