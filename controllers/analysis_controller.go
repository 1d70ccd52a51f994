package controllers

import (
	"net/http"
	"strings"
)

// QAHandler answers a question against an uploaded document
func (c *Controller) QAHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		c.writeBadRequest(w, "Expected multipart form data with a file upload")
		return
	}

	query := strings.TrimSpace(r.FormValue("query"))
	if query == "" {
		c.writeBadRequest(w, "Query cannot be empty")
		return
	}

	data, _, ok, err := c.readUpload(r, "file")
	if err != nil || !ok {
		c.writeBadRequest(w, "A PDF file upload is required")
		return
	}

	result, err := c.analyzer.AnswerQuestion(r.Context(), data, query)
	if err != nil {
		c.writeError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, result)
}

// SummarizeHandler produces a structured summary of an uploaded document
func (c *Controller) SummarizeHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		c.writeBadRequest(w, "Expected multipart form data with a file upload")
		return
	}

	data, _, ok, err := c.readUpload(r, "file")
	if err != nil || !ok {
		c.writeBadRequest(w, "A PDF file upload is required")
		return
	}

	result, err := c.analyzer.Summarize(r.Context(), data)
	if err != nil {
		c.writeError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, result)
}

// RiskHandler produces a structured risk assessment of an uploaded document
func (c *Controller) RiskHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		c.writeBadRequest(w, "Expected multipart form data with a file upload")
		return
	}

	data, _, ok, err := c.readUpload(r, "file")
	if err != nil || !ok {
		c.writeBadRequest(w, "A PDF file upload is required")
		return
	}

	result, err := c.analyzer.AssessRisk(r.Context(), data)
	if err != nil {
		c.writeError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, result)
}
