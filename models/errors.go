package models

import "errors"

// Sentinel errors for the analysis pipeline. Services wrap these with
// fmt.Errorf("...: %w", err) so that controllers can map them to HTTP status
// codes with errors.Is.
var (
	// ErrConfiguration indicates a missing or placeholder API key or invalid settings.
	ErrConfiguration = errors.New("configuration error")

	// ErrLoad indicates the uploaded document could not be parsed.
	ErrLoad = errors.New("document load error")

	// ErrRetrieval indicates the embedding model or vector index failed.
	ErrRetrieval = errors.New("retrieval error")

	// ErrModelCall indicates the chat model was unreachable or returned an error.
	ErrModelCall = errors.New("model call error")

	// ErrSessionNotFound indicates an append against a session that was never created.
	ErrSessionNotFound = errors.New("session not found")
)
