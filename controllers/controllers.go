package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"legaldoc/models"
	"legaldoc/services"
)

// maxUploadBytes caps in-memory multipart uploads
const maxUploadBytes = 32 << 20

// Controller wires HTTP requests to the analyzer service
type Controller struct {
	analyzer *services.Analyzer
}

// NewController creates a new controller instance
func NewController(analyzer *services.Analyzer) *Controller {
	return &Controller{analyzer: analyzer}
}

// readUpload reads the named multipart file part into memory. The bool
// reports whether the part was present at all.
func (c *Controller) readUpload(r *http.Request, field string) ([]byte, string, bool, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", false, nil
		}
		return nil, "", false, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", false, err
	}
	return data, header.Filename, true, nil
}

// writeJSON writes a JSON response with the given status code
func (c *Controller) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeBadRequest rejects a request before it reaches the analyzer
func (c *Controller) writeBadRequest(w http.ResponseWriter, message string) {
	c.writeJSON(w, http.StatusBadRequest, models.BaseResponse{
		Status:    models.StatusError,
		Error:     message,
		Timestamp: time.Now(),
	})
}

// writeError maps pipeline errors to HTTP status codes
func (c *Controller) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrLoad):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrModelCall), errors.Is(err, models.ErrRetrieval):
		status = http.StatusBadGateway
	}

	log.Printf("Request failed: %v", err)
	c.writeJSON(w, status, models.BaseResponse{
		Status:    models.StatusError,
		Error:     err.Error(),
		Timestamp: time.Now(),
	})
}

// generateSessionID creates a session id for clients that did not send one
func (c *Controller) generateSessionID() string {
	return uuid.NewString()
}
