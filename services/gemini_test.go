package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"legaldoc/models"
)

func TestCompleteParsesCandidates(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-1.5-flash:generateContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}

		var request geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if request.GenerationConfig == nil || request.GenerationConfig.Temperature != 0.2 {
			t.Errorf("request temperature = %+v, want 0.2", request.GenerationConfig)
		}
		if len(request.Contents) != 1 || request.Contents[0].Parts[0].Text != "analyze this" {
			t.Errorf("request contents = %+v", request.Contents)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": "part one "}, {"text": "part two"}},
				}},
			},
		})
	}))
	defer server.Close()

	client := NewGeminiClient("test-key", server.URL, "", "", time.Second)
	got, err := client.Complete(context.Background(), "analyze this", 0.2)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "part one part two" {
		t.Errorf("Complete() = %q, want concatenated parts", got)
	}
}

func TestCompleteAPIError(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"code": 400, "message": "invalid model", "status": "INVALID_ARGUMENT"},
		})
	}))
	defer server.Close()

	client := NewGeminiClient("test-key", server.URL, "", "", time.Second)
	_, err := client.Complete(context.Background(), "prompt", 0.1)
	if !errors.Is(err, models.ErrModelCall) {
		t.Fatalf("error = %v, want ErrModelCall", err)
	}
	if !strings.Contains(err.Error(), "invalid model") {
		t.Errorf("error %q does not carry the API message", err)
	}
}

func TestCompleteNoCandidates(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	}))
	defer server.Close()

	client := NewGeminiClient("test-key", server.URL, "", "", time.Second)
	_, err := client.Complete(context.Background(), "prompt", 0.1)
	if !errors.Is(err, models.ErrModelCall) {
		t.Fatalf("error = %v, want ErrModelCall", err)
	}
}

func TestCompleteWithoutAPIKey(t *testing.T) {
	t.Parallel()
	client := NewGeminiClient("", "http://localhost:0", "", "", time.Second)

	_, err := client.Complete(context.Background(), "prompt", 0.1)
	if !errors.Is(err, models.ErrConfiguration) {
		t.Fatalf("error = %v, want ErrConfiguration", err)
	}
	if client.IsAvailable() {
		t.Error("IsAvailable() = true without an API key")
	}
}

func TestEmbedParsesValues(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "text-embedding-004:embedContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"embedding": map[string]interface{}{"values": []float32{0.1, 0.2, 0.3}},
		})
	}))
	defer server.Close()

	client := NewGeminiClient("test-key", server.URL, "", "", time.Second)
	got, err := client.Embed(context.Background(), "some text")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if !reflect.DeepEqual(got, []float32{0.1, 0.2, 0.3}) {
		t.Errorf("Embed() = %v", got)
	}
}

func TestEmbedServerFailure(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewGeminiClient("test-key", server.URL, "", "", time.Second)
	_, err := client.Embed(context.Background(), "some text")
	if !errors.Is(err, models.ErrRetrieval) {
		t.Fatalf("error = %v, want ErrRetrieval", err)
	}
}

func TestGetStatusMasksAPIKey(t *testing.T) {
	t.Parallel()
	client := NewGeminiClient("secret-api-key-1234", "http://localhost:0", "", "", time.Second)

	status := client.GetStatus()
	if status["status"] != "available" {
		t.Errorf("status = %v, want available", status["status"])
	}
	masked, _ := status["api_key"].(string)
	if strings.Contains(masked, "api-key") {
		t.Errorf("api_key %q is not masked", masked)
	}
	if !strings.HasPrefix(masked, "secr") || !strings.HasSuffix(masked, "1234") {
		t.Errorf("api_key %q does not keep the edge characters", masked)
	}
}
