package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LLMConfig configures the Gemini client
type LLMConfig struct {
	BaseURL         string `yaml:"base_url"`
	CompletionModel string `yaml:"completion_model"`
	EmbeddingModel  string `yaml:"embedding_model"`
	TimeoutSecs     int    `yaml:"timeout_secs"`
}

// ChunkerConfig configures how documents are split and retrieved for Q&A
type ChunkerConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
	TopK         int `yaml:"top_k"`
}

// ChatConfig configures the session store
type ChatConfig struct {
	PreviewLimit int `yaml:"preview_limit"`
	MaxSessions  int `yaml:"max_sessions"`
}

// Config is the root application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	LLM     LLMConfig     `yaml:"llm"`
	Chunker ChunkerConfig `yaml:"chunker"`
	Chat    ChatConfig    `yaml:"chat"`
}

// Load reads a config from the given path. If the file does not exist,
// defaults are returned.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			return cfg, nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"*"}
	}
	if cfg.LLM.CompletionModel == "" {
		cfg.LLM.CompletionModel = "gemini-1.5-flash"
	}
	if cfg.LLM.EmbeddingModel == "" {
		cfg.LLM.EmbeddingModel = "text-embedding-004"
	}
	if cfg.LLM.TimeoutSecs == 0 {
		cfg.LLM.TimeoutSecs = 60
	}
	if cfg.Chunker.ChunkSize == 0 {
		cfg.Chunker.ChunkSize = 4000
	}
	if cfg.Chunker.ChunkOverlap == 0 {
		cfg.Chunker.ChunkOverlap = 400
	}
	if cfg.Chunker.TopK == 0 {
		cfg.Chunker.TopK = 5
	}
	if cfg.Chat.PreviewLimit == 0 {
		cfg.Chat.PreviewLimit = 5000
	}
	if cfg.Chat.MaxSessions == 0 {
		cfg.Chat.MaxSessions = 1000
	}
}
