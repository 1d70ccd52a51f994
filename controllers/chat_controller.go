package controllers

import (
	"net/http"
	"strings"
	"time"

	"legaldoc/models"
)

// ChatHandler runs one turn of a session-scoped conversation. The document
// upload is optional; when present it grounds the rest of the session.
func (c *Controller) ChatHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		c.writeBadRequest(w, "Expected multipart form data")
		return
	}

	message := strings.TrimSpace(r.FormValue("message"))
	if message == "" {
		c.writeBadRequest(w, "Message cannot be empty")
		return
	}

	sessionID := strings.TrimSpace(r.FormValue("session_id"))
	if sessionID == "" {
		sessionID = c.generateSessionID()
	}

	data, filename, _, err := c.readUpload(r, "file")
	if err != nil {
		c.writeBadRequest(w, "Could not read the uploaded file")
		return
	}

	reply, history, err := c.analyzer.Chat(r.Context(), sessionID, message, data, filename)
	if err != nil {
		c.writeError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, models.ChatResponse{
		BaseResponse: models.BaseResponse{
			Status:    models.StatusSuccess,
			Timestamp: time.Now(),
		},
		Reply:     reply,
		SessionID: sessionID,
		History:   history,
	})
}
