package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"legaldoc/config"
	"legaldoc/controllers"
	"legaldoc/services"
	"legaldoc/utils"
)

// Server wires the router, middleware and controllers
type Server struct {
	router         *mux.Router
	port           string
	controller     *controllers.Controller
	allowedOrigins []string
}

// NewServer creates a new server instance
func NewServer(port string, controller *controllers.Controller, allowedOrigins []string) *Server {
	return &Server{
		router:         mux.NewRouter(),
		port:           port,
		controller:     controller,
		allowedOrigins: allowedOrigins,
	}
}

// setupRoutes configures all endpoints
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/qa", s.controller.QAHandler).Methods("POST")
	s.router.HandleFunc("/summarize", s.controller.SummarizeHandler).Methods("POST")
	s.router.HandleFunc("/risk", s.controller.RiskHandler).Methods("POST")
	s.router.HandleFunc("/chat", s.controller.ChatHandler).Methods("POST")
	s.router.HandleFunc("/health", s.controller.HealthHandler).Methods("GET")
	s.router.HandleFunc("/status", s.controller.StatusHandler).Methods("GET")
}

// Start configures and starts the HTTP server
func (s *Server) Start() error {
	s.setupRoutes()

	// CORS for the browser extension frontend
	c := cors.New(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	handler := c.Handler(s.router)

	if !strings.HasPrefix(s.port, ":") {
		s.port = ":" + s.port
	}

	log.Printf("Server starting on port %s", s.port)
	return http.ListenAndServe(s.port, handler)
}

func main() {
	utils.LoadEnv()

	cfg, err := config.Load(utils.GetEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// A missing key is reported per request so the server can still start and
	// serve health checks.
	apiKey, err := utils.GetAPIKey()
	if err != nil {
		log.Printf("Warning: %v", err)
	}

	gemini := services.NewGeminiClient(
		apiKey,
		cfg.LLM.BaseURL,
		cfg.LLM.CompletionModel,
		cfg.LLM.EmbeddingModel,
		time.Duration(cfg.LLM.TimeoutSecs)*time.Second,
	)

	splitter, err := services.NewRecursiveSplitter(cfg.Chunker.ChunkSize, cfg.Chunker.ChunkOverlap)
	if err != nil {
		log.Fatalf("Invalid chunker configuration: %v", err)
	}

	retriever := services.NewRetriever(gemini.EmbeddingFunc(), cfg.Chunker.TopK)
	sessions := services.NewSessionStore(cfg.Chat.PreviewLimit, cfg.Chat.MaxSessions)
	analyzer := services.NewAnalyzer(services.NewPDFLoader(), splitter, retriever, gemini, sessions)
	controller := controllers.NewController(analyzer)

	port := utils.GetEnv("PORT", cfg.Server.Port)
	server := NewServer(port, controller, cfg.Server.AllowedOrigins)
	log.Printf("Legal document analyzer API (model: %s, available: %v)", cfg.LLM.CompletionModel, gemini.IsAvailable())

	if err := server.Start(); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
