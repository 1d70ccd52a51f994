package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"legaldoc/models"
)

func TestGetOrCreateIsIdempotent(t *testing.T) {
	t.Parallel()
	store := NewSessionStore(0, 0)

	first := store.GetOrCreate("s1")
	second := store.GetOrCreate("s1")
	if first != second {
		t.Fatal("GetOrCreate returned different sessions for the same id")
	}
	if store.Count() != 1 {
		t.Errorf("Count() = %d, want 1", store.Count())
	}
}

func TestNewSessionSeededWithSystemTurn(t *testing.T) {
	t.Parallel()
	store := NewSessionStore(0, 0)
	store.GetOrCreate("s1")

	turns, err := store.History("s1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(turns) != 1 {
		t.Fatalf("new session has %d turns, want 1", len(turns))
	}
	if turns[0].Role != models.RoleSystem {
		t.Errorf("first turn role = %q, want system", turns[0].Role)
	}
}

func TestVisibleHistoryExcludesSystemTurns(t *testing.T) {
	t.Parallel()
	store := NewSessionStore(0, 0)
	store.GetOrCreate("s1")

	if err := store.AppendTurn("s1", models.RoleUser, "Hello"); err != nil {
		t.Fatalf("AppendTurn: %v", err)
	}
	if err := store.AppendTurn("s1", models.RoleAssistant, "Hi there."); err != nil {
		t.Fatalf("AppendTurn: %v", err)
	}

	visible, err := store.VisibleHistory("s1")
	if err != nil {
		t.Fatalf("VisibleHistory: %v", err)
	}
	want := []models.ChatMessage{
		{Role: models.RoleUser, Content: "Hello"},
		{Role: models.RoleAssistant, Content: "Hi there."},
	}
	if len(visible) != len(want) {
		t.Fatalf("visible history has %d turns, want %d", len(visible), len(want))
	}
	for i := range want {
		if visible[i] != want[i] {
			t.Errorf("visible[%d] = %+v, want %+v", i, visible[i], want[i])
		}
	}
}

func TestVisibleHistoryOrdering(t *testing.T) {
	t.Parallel()
	store := NewSessionStore(0, 0)
	store.GetOrCreate("s1")

	const pairs = 5
	for i := 0; i < pairs; i++ {
		if err := store.AppendTurn("s1", models.RoleUser, fmt.Sprintf("question %d", i)); err != nil {
			t.Fatalf("AppendTurn: %v", err)
		}
		if err := store.AppendTurn("s1", models.RoleAssistant, fmt.Sprintf("answer %d", i)); err != nil {
			t.Fatalf("AppendTurn: %v", err)
		}
	}

	visible, err := store.VisibleHistory("s1")
	if err != nil {
		t.Fatalf("VisibleHistory: %v", err)
	}
	if len(visible) != 2*pairs {
		t.Fatalf("visible history has %d turns, want %d", len(visible), 2*pairs)
	}
	for i := 0; i < pairs; i++ {
		if visible[2*i].Content != fmt.Sprintf("question %d", i) {
			t.Errorf("turn %d out of order: %q", 2*i, visible[2*i].Content)
		}
		if visible[2*i+1].Content != fmt.Sprintf("answer %d", i) {
			t.Errorf("turn %d out of order: %q", 2*i+1, visible[2*i+1].Content)
		}
	}
}

func TestAppendTurnUnknownSession(t *testing.T) {
	t.Parallel()
	store := NewSessionStore(0, 0)

	err := store.AppendTurn("missing", models.RoleUser, "Hello")
	if !errors.Is(err, models.ErrSessionNotFound) {
		t.Fatalf("error = %v, want ErrSessionNotFound", err)
	}
}

func TestDocumentPreviewTruncation(t *testing.T) {
	t.Parallel()
	store := NewSessionStore(0, 0)
	store.GetOrCreate("s1")

	longText := strings.Repeat("a", 6000)
	if err := store.AppendDocumentPreview("s1", "contract.pdf", longText); err != nil {
		t.Fatalf("AppendDocumentPreview: %v", err)
	}

	turns, err := store.History("s1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	preview := turns[len(turns)-1]
	if preview.Role != models.RoleSystem {
		t.Errorf("preview role = %q, want system", preview.Role)
	}
	if !strings.Contains(preview.Content, "contract.pdf") {
		t.Errorf("preview does not mention the filename: %q", preview.Content[:80])
	}
	if !strings.HasSuffix(preview.Content, "...") {
		t.Error("truncated preview does not end with the ellipsis marker")
	}
	if !strings.Contains(preview.Content, strings.Repeat("a", 5000)) {
		t.Error("preview does not contain the first 5000 characters")
	}
	if strings.Contains(preview.Content, strings.Repeat("a", 5001)) {
		t.Error("preview contains more than 5000 characters of document text")
	}
}

func TestDocumentPreviewShortTextVerbatim(t *testing.T) {
	t.Parallel()
	store := NewSessionStore(0, 0)
	store.GetOrCreate("s1")

	if err := store.AppendDocumentPreview("s1", "short.pdf", "brief contents"); err != nil {
		t.Fatalf("AppendDocumentPreview: %v", err)
	}

	turns, err := store.History("s1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	preview := turns[len(turns)-1]
	if !strings.HasSuffix(preview.Content, "brief contents") {
		t.Errorf("short preview was altered: %q", preview.Content)
	}
	if strings.Contains(preview.Content, "...") {
		t.Error("short preview should not carry an ellipsis marker")
	}
}

func TestEvictionKeepsMostRecentSessions(t *testing.T) {
	t.Parallel()
	store := NewSessionStore(0, 2)

	store.GetOrCreate("a")
	time.Sleep(time.Millisecond)
	store.GetOrCreate("b")
	time.Sleep(time.Millisecond)
	store.GetOrCreate("c")

	if store.Count() != 2 {
		t.Fatalf("Count() = %d, want 2 after eviction", store.Count())
	}
	if err := store.AppendTurn("a", models.RoleUser, "still there?"); !errors.Is(err, models.ErrSessionNotFound) {
		t.Errorf("oldest session should have been evicted, got err = %v", err)
	}
	if err := store.AppendTurn("c", models.RoleUser, "hello"); err != nil {
		t.Errorf("newest session should survive, got err = %v", err)
	}
}
