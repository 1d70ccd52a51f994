package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/philippgille/chromem-go"

	"legaldoc/models"
)

// ChatModel generates a completion for a rendered prompt. Temperature is a
// per-call parameter because each analysis task uses its own.
type ChatModel interface {
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)
}

// GeminiClient handles communication with the Google Generative Language API
type GeminiClient struct {
	apiKey          string
	baseURL         string
	completionModel string
	embeddingModel  string
	httpClient      *http.Client
}

// geminiRequest represents a generateContent request
type geminiRequest struct {
	Contents         []geminiContent   `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

// geminiResponse represents a generateContent response
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *geminiError `json:"error,omitempty"`
}

// geminiError represents an error payload from the API
type geminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// embedRequest represents an embedContent request
type embedRequest struct {
	Content geminiContent `json:"content"`
}

// embedResponse represents an embedContent response
type embedResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
	Error *geminiError `json:"error,omitempty"`
}

// NewGeminiClient creates a new Gemini client instance
func NewGeminiClient(apiKey, baseURL, completionModel, embeddingModel string, timeout time.Duration) *GeminiClient {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if completionModel == "" {
		completionModel = "gemini-1.5-flash"
	}
	if embeddingModel == "" {
		embeddingModel = "text-embedding-004"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &GeminiClient{
		apiKey:          apiKey,
		baseURL:         strings.TrimSuffix(baseURL, "/"),
		completionModel: completionModel,
		embeddingModel:  embeddingModel,
		httpClient:      &http.Client{Timeout: timeout},
	}
}

// Complete sends a prompt to the completion model and returns its raw text reply
func (g *GeminiClient) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	if !g.IsAvailable() {
		return "", fmt.Errorf("%w: API key not configured", models.ErrConfiguration)
	}

	request := geminiRequest{
		Contents:         []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: &generationConfig{Temperature: temperature},
	}

	body, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal request: %v", models.ErrModelCall, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.completionModel, g.apiKey)
	raw, err := g.post(ctx, url, body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrModelCall, err)
	}

	var response geminiResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", models.ErrModelCall, err)
	}
	if response.Error != nil {
		return "", fmt.Errorf("%w: API error %d: %s", models.ErrModelCall, response.Error.Code, response.Error.Message)
	}
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", models.ErrModelCall)
	}

	var reply strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		reply.WriteString(part.Text)
	}
	return reply.String(), nil
}

// Embed returns the embedding vector for one text
func (g *GeminiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if !g.IsAvailable() {
		return nil, fmt.Errorf("%w: API key not configured", models.ErrConfiguration)
	}

	request := embedRequest{Content: geminiContent{Parts: []geminiPart{{Text: text}}}}
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", models.ErrRetrieval, err)
	}

	url := fmt.Sprintf("%s/models/%s:embedContent?key=%s", g.baseURL, g.embeddingModel, g.apiKey)
	raw, err := g.post(ctx, url, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrRetrieval, err)
	}

	var response embedResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", models.ErrRetrieval, err)
	}
	if response.Error != nil {
		return nil, fmt.Errorf("%w: API error %d: %s", models.ErrRetrieval, response.Error.Code, response.Error.Message)
	}
	if len(response.Embedding.Values) == 0 {
		return nil, fmt.Errorf("%w: empty embedding in response", models.ErrRetrieval)
	}

	return response.Embedding.Values, nil
}

// EmbeddingFunc adapts the client to the vector index's embedding interface
func (g *GeminiClient) EmbeddingFunc() chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		return g.Embed(ctx, text)
	}
}

// post sends a JSON body and returns the raw response bytes. Non-200 statuses
// are reported with the API's error message when one can be decoded.
func (g *GeminiClient) post(ctx context.Context, url string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		var payload struct {
			Error *geminiError `json:"error"`
		}
		if json.Unmarshal(raw, &payload) == nil && payload.Error != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, payload.Error.Message)
		}
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	return raw, nil
}

// IsAvailable checks whether the client has an API key configured
func (g *GeminiClient) IsAvailable() bool {
	return g.apiKey != ""
}

// GetStatus returns the status of the Gemini client
func (g *GeminiClient) GetStatus() map[string]interface{} {
	status := map[string]interface{}{
		"base_url":         g.baseURL,
		"completion_model": g.completionModel,
		"embedding_model":  g.embeddingModel,
		"timeout":          g.httpClient.Timeout.String(),
	}

	if g.IsAvailable() {
		status["status"] = "available"
		// Mask API key for security
		if len(g.apiKey) > 8 {
			status["api_key"] = g.apiKey[:4] + "..." + g.apiKey[len(g.apiKey)-4:]
		} else {
			status["api_key"] = "***"
		}
	} else {
		status["status"] = "unavailable"
		status["error"] = "API_KEY not set"
	}

	return status
}
