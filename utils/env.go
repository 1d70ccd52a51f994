package utils

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"legaldoc/models"
)

// apiKeyPlaceholder is the value shipped in .env.example; it is treated the
// same as an unset key.
const apiKeyPlaceholder = "YOUR_API_KEY_HERE"

// LoadEnv loads environment variables from the first .env file found in the
// standard locations. A missing file is okay; values already present in the
// system environment are kept.
func LoadEnv() {
	locations := []string{
		".env",        // Current directory
		".env.local",  // Local override
		"config/.env", // Config directory
	}

	for _, location := range locations {
		if _, err := os.Stat(location); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(location); err != nil {
			log.Printf("Could not load %s: %v", location, err)
			continue
		}
		log.Printf("Loaded environment variables from %s", location)
		return
	}

	log.Printf("No .env files found in standard locations, using system environment only")
}

// GetAPIKey returns the Google API key from the environment. An unset key or
// the placeholder value is a configuration error.
func GetAPIKey() (string, error) {
	key := strings.TrimSpace(os.Getenv("API_KEY"))
	if key == "" || key == apiKeyPlaceholder {
		return "", fmt.Errorf("%w: set API_KEY to your actual Google API key", models.ErrConfiguration)
	}
	return key, nil
}

// GetEnv returns the named environment variable, or fallback if it is unset
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
