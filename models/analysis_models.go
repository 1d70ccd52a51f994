package models

// Severity levels for individual risks
const (
	SeverityLow    = "Low"
	SeverityMedium = "Medium"
	SeverityHigh   = "High"
)

// Overall risk levels for a document
const (
	RiskLevelLow    = "low"
	RiskLevelMedium = "medium"
	RiskLevelHigh   = "high"
)

// QAResult is the structured answer to a question about a document
type QAResult struct {
	Answer     string   `json:"answer"`
	Confidence float64  `json:"confidence"`
	Sources    []string `json:"sources"`
}

// SummaryResult is the structured summary of a document
type SummaryResult struct {
	Summary      string   `json:"summary"`
	KeyPoints    []string `json:"key_points"`
	DocumentType string   `json:"document_type"`
}

// Risk is a single identified risk in a document
type Risk struct {
	Type           string `json:"type"`
	Description    string `json:"description"`
	Severity       string `json:"severity"`
	Recommendation string `json:"recommendation"`
}

// RiskResult is the structured risk assessment of a document
type RiskResult struct {
	RiskLevel string `json:"risk_level"`
	Risks     []Risk `json:"risks"`
}
