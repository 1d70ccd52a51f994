package services

import (
	"context"
	"log"
	"strings"

	"legaldoc/models"
)

// notFoundAnswer is returned when retrieval produces no relevant context
const notFoundAnswer = "No relevant information found in the document for this question."

// Analyzer sequences the analysis pipeline for each task type. It is the only
// component aware of task dispatch; everything below it is task-agnostic.
type Analyzer struct {
	loader    DocumentLoader
	splitter  *RecursiveSplitter
	retriever *Retriever
	model     ChatModel
	sessions  *SessionStore
}

// NewAnalyzer creates a new analyzer wired to the given collaborators
func NewAnalyzer(loader DocumentLoader, splitter *RecursiveSplitter, retriever *Retriever, model ChatModel, sessions *SessionStore) *Analyzer {
	return &Analyzer{
		loader:    loader,
		splitter:  splitter,
		retriever: retriever,
		model:     model,
		sessions:  sessions,
	}
}

// AnswerQuestion answers a question strictly from the uploaded document:
// chunk, retrieve the most relevant chunks, and ask the model over them
func (a *Analyzer) AnswerQuestion(ctx context.Context, data []byte, query string) (models.QAResult, error) {
	doc, err := a.loader.Load(data)
	if err != nil {
		return models.QAResult{}, err
	}

	chunks := a.splitter.SplitDocument(doc)
	hits, err := a.retriever.Retrieve(ctx, chunks, query)
	if err != nil {
		return models.QAResult{}, err
	}
	if len(hits) == 0 {
		return models.QAResult{
			Answer:     notFoundAnswer,
			Confidence: 0.0,
			Sources:    []string{},
		}, nil
	}

	contextParts := make([]string, len(hits))
	for i, hit := range hits {
		contextParts[i] = hit.Text
	}

	prompt := BuildQAPrompt(strings.Join(contextParts, "\n\n"), query)
	raw, err := a.model.Complete(ctx, prompt, TemperatureQA)
	if err != nil {
		return models.QAResult{}, err
	}

	log.Printf("Answered question using %d of %d chunks", len(hits), len(chunks))
	return ParseQAResponse(raw), nil
}

// Summarize produces a structured summary of the uploaded document
func (a *Analyzer) Summarize(ctx context.Context, data []byte) (models.SummaryResult, error) {
	doc, err := a.loader.Load(data)
	if err != nil {
		return models.SummaryResult{}, err
	}

	prompt := BuildSummaryPrompt(doc.FullText())
	raw, err := a.model.Complete(ctx, prompt, TemperatureSummarize)
	if err != nil {
		return models.SummaryResult{}, err
	}

	log.Printf("Summarized document with %d pages", len(doc.Pages))
	return ParseSummaryResponse(raw), nil
}

// AssessRisk produces a structured risk assessment of the uploaded document
func (a *Analyzer) AssessRisk(ctx context.Context, data []byte) (models.RiskResult, error) {
	doc, err := a.loader.Load(data)
	if err != nil {
		return models.RiskResult{}, err
	}

	prompt := BuildRiskPrompt(doc.FullText())
	raw, err := a.model.Complete(ctx, prompt, TemperatureRisk)
	if err != nil {
		return models.RiskResult{}, err
	}

	log.Printf("Assessed risks for document with %d pages", len(doc.Pages))
	return ParseRiskResponse(raw), nil
}

// Chat runs one turn of a session-scoped conversation, optionally grounding it
// with a freshly uploaded document. It returns the assistant's reply and the
// visible conversation history.
func (a *Analyzer) Chat(ctx context.Context, sessionID, message string, fileData []byte, filename string) (string, []models.ChatMessage, error) {
	sess := a.sessions.GetOrCreate(sessionID)

	if len(fileData) > 0 {
		doc, err := a.loader.Load(fileData)
		if err != nil {
			return "", nil, err
		}
		if err := a.sessions.AppendDocumentPreview(sess.ID, filename, doc.FullText()); err != nil {
			return "", nil, err
		}
	}

	if err := a.sessions.AppendTurn(sess.ID, models.RoleUser, message); err != nil {
		return "", nil, err
	}

	history, err := a.sessions.History(sess.ID)
	if err != nil {
		return "", nil, err
	}

	prompt := BuildChatPrompt(history)
	reply, err := a.model.Complete(ctx, prompt, TemperatureChat)
	if err != nil {
		return "", nil, err
	}

	if err := a.sessions.AppendTurn(sess.ID, models.RoleAssistant, reply); err != nil {
		return "", nil, err
	}

	visible, err := a.sessions.VisibleHistory(sess.ID)
	if err != nil {
		return "", nil, err
	}
	return reply, visible, nil
}

// GetStatus returns the status of the analysis pipeline
func (a *Analyzer) GetStatus() map[string]interface{} {
	status := map[string]interface{}{
		"status":        "active",
		"chunk_size":    a.splitter.chunkSize,
		"chunk_overlap": a.splitter.chunkOverlap,
		"top_k":         a.retriever.topK,
		"sessions":      a.sessions.Count(),
	}

	if client, ok := a.model.(*GeminiClient); ok {
		status["model"] = client.GetStatus()
	}

	return status
}
