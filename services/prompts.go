package services

import (
	"fmt"
	"strings"

	"legaldoc/models"
)

// promptTextLimit caps how much document text is embedded in the summary and
// risk prompts to stay inside the model's context window.
const promptTextLimit = 8000

// Sampling temperatures per task
const (
	TemperatureQA        = 0.1
	TemperatureSummarize = 0.1
	TemperatureRisk      = 0.2
	TemperatureChat      = 0.3
)

// BuildQAPrompt renders the question-answering prompt over the retrieved
// context. The model must answer strictly from the context and reply with one
// of two JSON shapes.
func BuildQAPrompt(context, query string) string {
	return fmt.Sprintf(`You are an expert legal analyst answering questions strictly based on the provided document context.

DOCUMENT CONTEXT:
---
%s
---

USER QUESTION:
%s

INSTRUCTIONS:
1. Provide a logical, factual, and focused answer using only information from the document.
2. Support your answer with references to specific sections, clauses, or paragraphs wherever possible.
3. Limit the total length of the cited sources (references themselves) to approximately 150-200 words.
4. Do not include any information that is not in the document. If the answer cannot be found in the document, clearly indicate that.
5. Assign a confidence score (between 0.0 and 1.0) to indicate how certain you are that the answer is correct.
6. Return your response strictly in the following JSON format:

{
    "answer": "<detailed answer based on the document>",
    "confidence": <float between 0.0 and 1.0>,
    "sources": ["Section 4.2...", "Clause 7.1...", "..."]
}

7. If no information is available in the document, return:

{
    "answer": "No relevant information found in the document for this question.",
    "confidence": 0.0,
    "sources": []
}

8. Ensure the JSON is valid and contains no extra text outside of the JSON object.`, context, query)
}

// BuildSummaryPrompt renders the summarization prompt over the document text
func BuildSummaryPrompt(fullText string) string {
	return fmt.Sprintf(`You are an expert legal analyst summarizing documents.
DOCUMENT TEXT:
---
%s
---

INSTRUCTIONS: Provide a response in the following JSON format:
{
    "summary": "A concise 100-word summary covering the document's main purpose, parties involved, and key obligations",
    "key_points": [
        "First key point about the document",
        "Second key point about the document",
        "Third key point about the document",
        "Fourth key point about the document"
    ],
    "document_type": "The type of legal document (e.g., 'Service Agreement', 'Privacy Policy', 'Terms of Service', 'Employment Contract', etc.)"
}

Make sure to:
1. Keep the summary under 100 words
2. Include exactly 4 key points
3. Identify the document type accurately
4. Focus on the most important legal aspects`, truncateText(fullText, promptTextLimit))
}

// BuildRiskPrompt renders the risk analysis prompt over the document text
func BuildRiskPrompt(fullText string) string {
	return fmt.Sprintf(`You are an expert legal risk analyst reviewing this document.

DOCUMENT TEXT:
---
%s
---

INSTRUCTIONS:
Analyze the document and return a JSON object with the following structure:

{
    "risk_level": "low" | "medium" | "high",
    "risks": [
        {
            "type": "Category of risk (flexible, e.g., Liability, Termination, Intellectual Property, Compliance, Financial, Confidentiality, Data Privacy, Jurisdiction, etc.)",
            "description": "Short, clear summary of the risk (1-2 sentences)",
            "severity": "Low" | "Medium" | "High",
            "recommendation": "Concise practical step to reduce or mitigate this risk"
        }
    ]
}

GUIDELINES:
- Identify the 3-5 most relevant risks in the document.
- Keep descriptions and recommendations brief and to the point.
- Severity should reflect realistic impact but be slightly generous (avoid marking everything 'High').
- Ensure valid JSON output with no additional text or commentary.`, truncateText(fullText, promptTextLimit))
}

// BuildChatPrompt renders the conversational prompt over the full turn
// history, including system turns carrying document previews. The reply is
// plain text, not JSON.
func BuildChatPrompt(turns []models.ChatMessage) string {
	var conversation strings.Builder
	for _, turn := range turns {
		conversation.WriteString(strings.ToUpper(turn.Role))
		conversation.WriteString(": ")
		conversation.WriteString(turn.Content)
		conversation.WriteString("\n")
	}

	return fmt.Sprintf(`You are an expert legal assistant.
Your job is to answer based only on the provided document context and conversation so far.

STRICT RULES:
1. Ground every answer in the document. If citing, reference sections, clauses, or paragraphs (e.g., "Section 4.2" or "Clause 7").
2. If the document does not contain relevant information, clearly state: "No relevant information found in the document."
3. Keep responses precise, factual, and logically structured (2-3 sentences unless the user asks for more detail).
4. Use plain English while preserving legal accuracy.
5. Avoid speculation, assumptions, or hallucinations.
6. If listing points, summarize in 3-5 crisp bullets.
7. Maintain a professional but approachable tone at all times.

---
Conversation so far:
%s
ASSISTANT:`, conversation.String())
}

// truncateText cuts text to at most limit bytes
func truncateText(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}
