package controllers

import "net/http"

// HealthHandler provides a health check endpoint
func (c *Controller) HealthHandler(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":    "healthy",
		"service":   "legal-document-analyzer",
		"endpoints": []string{"/qa", "/summarize", "/risk", "/chat", "/health", "/status"},
	}
	c.writeJSON(w, http.StatusOK, health)
}

// StatusHandler reports the status of the analysis pipeline and its model
func (c *Controller) StatusHandler(w http.ResponseWriter, r *http.Request) {
	c.writeJSON(w, http.StatusOK, c.analyzer.GetStatus())
}
