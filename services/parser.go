package services

import (
	"encoding/json"
	"log"
	"strings"

	"legaldoc/models"
)

// genericKeyPoints fills the summary fallback when the reply contains no
// bullet points at all.
var genericKeyPoints = []string{
	"Document establishes legal obligations",
	"Contains standard terms and conditions",
	"Defines rights and responsibilities",
	"Includes dispute resolution procedures",
}

// genericRisks fills the risk fallback when the reply could not be parsed
var genericRisks = []models.Risk{
	{
		Type:           "General Compliance",
		Description:    "Document contains standard legal terms that require careful review",
		Severity:       models.SeverityMedium,
		Recommendation: "Conduct thorough legal review before signing",
	},
	{
		Type:           "Liability",
		Description:    "Standard liability clauses present in the document",
		Severity:       models.SeverityMedium,
		Recommendation: "Review liability limits and ensure they are acceptable",
	},
}

// ParseQAResponse recovers a QAResult from raw model output. It never fails:
// output that defeats every strategy degrades to a fixed error result.
func ParseQAResponse(raw string) models.QAResult {
	if data, ok := extractJSON(raw); ok {
		var result models.QAResult
		if err := json.Unmarshal(data, &result); err == nil {
			if result.Sources == nil {
				result.Sources = []string{}
			}
			if result.Confidence < 0 {
				result.Confidence = 0
			}
			if result.Confidence > 1 {
				result.Confidence = 1
			}
			return result
		}
	}

	log.Printf("QA response was not valid JSON, returning parse failure result")
	return models.QAResult{
		Answer:     "Error: Could not parse model response as JSON.",
		Confidence: 0.0,
		Sources:    []string{},
	}
}

// ParseSummaryResponse recovers a SummaryResult from raw model output,
// falling back to line-based extraction when the reply is not JSON
func ParseSummaryResponse(raw string) models.SummaryResult {
	if data, ok := extractJSON(raw); ok {
		var result models.SummaryResult
		if err := json.Unmarshal(data, &result); err == nil {
			if result.KeyPoints == nil {
				result.KeyPoints = []string{}
			}
			if result.DocumentType == "" {
				result.DocumentType = "Unknown Document"
			}
			return result
		}
	}

	log.Printf("Summary response was not valid JSON, extracting from plain text")
	return summaryFromPlainText(raw)
}

// ParseRiskResponse recovers a RiskResult from raw model output, falling back
// to keyword scanning when the reply is not JSON
func ParseRiskResponse(raw string) models.RiskResult {
	if data, ok := extractJSON(raw); ok {
		var result models.RiskResult
		if err := json.Unmarshal(data, &result); err == nil {
			if result.RiskLevel == "" {
				result.RiskLevel = models.RiskLevelMedium
			}
			if result.Risks == nil {
				result.Risks = []models.Risk{}
			}
			return result
		}
	}

	log.Printf("Risk response was not valid JSON, extracting from plain text")
	return riskFromPlainText(raw)
}

// extractJSON runs the recovery chain shared by all structured tasks: strip
// code fence markers and take the remainder if it is a valid JSON object,
// otherwise try the substring between the first "{" and the last "}".
func extractJSON(raw string) ([]byte, bool) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)
	if strings.HasPrefix(cleaned, "{") && json.Valid([]byte(cleaned)) {
		return []byte(cleaned), true
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		candidate := raw[start : end+1]
		if json.Valid([]byte(candidate)) {
			return []byte(candidate), true
		}
	}

	return nil, false
}

// summaryFromPlainText treats the first non-empty line as the summary and
// scans the remaining lines for bullet points
func summaryFromPlainText(raw string) models.SummaryResult {
	lines := strings.Split(raw, "\n")

	summary := "Unable to generate summary"
	rest := lines
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			summary = strings.TrimSpace(line)
			rest = lines[i+1:]
			break
		}
	}
	if len(summary) > 500 {
		summary = summary[:500]
	}

	var keyPoints []string
	for _, line := range rest {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "•") || strings.HasPrefix(trimmed, "*") {
			keyPoints = append(keyPoints, strings.TrimLeft(trimmed, "-•* "))
		}
	}
	if len(keyPoints) == 0 {
		keyPoints = append(keyPoints, genericKeyPoints...)
	}
	if len(keyPoints) > 4 {
		keyPoints = keyPoints[:4]
	}

	return models.SummaryResult{
		Summary:      summary,
		KeyPoints:    keyPoints,
		DocumentType: "Legal Document",
	}
}

// riskFromPlainText derives the overall risk level from keywords in the reply
// and substitutes generic risk entries
func riskFromPlainText(raw string) models.RiskResult {
	lowered := strings.ToLower(raw)

	level := models.RiskLevelMedium
	switch {
	case strings.Contains(lowered, "high risk") || strings.Contains(lowered, "significant risk"):
		level = models.RiskLevelHigh
	case strings.Contains(lowered, "low risk") || strings.Contains(lowered, "minimal risk"):
		level = models.RiskLevelLow
	}

	risks := make([]models.Risk, len(genericRisks))
	copy(risks, genericRisks)

	return models.RiskResult{
		RiskLevel: level,
		Risks:     risks,
	}
}
