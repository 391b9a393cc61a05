package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/dipu67/analyzer/internal/config"
)

// Exchange represents a prompt/response pair for caching
type Exchange struct {
	Timestamp time.Time `json:"timestamp"`
	Provider  string    `json:"provider"` // e.g. "openai"
	Model     string    `json:"model"`
	Prompt    string    `json:"prompt"`
	Response  string    `json:"response"`
	Error     string    `json:"error,omitempty"`
}

// ExchangeCacheDir returns the path to the inference exchange cache directory.
func ExchangeCacheDir() (string, error) {
	cacheDir, err := config.CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "exchanges"), nil
}

// SaveExchange serializes an inference exchange to JSON and writes it to a
// timestamped file. Returns the path to the saved file.
func SaveExchange(exchange Exchange) (string, error) {
	dir, err := ExchangeCacheDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	// Dashes instead of colons for filesystem compatibility
	filename := time.Now().Format("2006-01-02T15-04-05") + ".json"
	path := filepath.Join(dir, filename)

	data, err := json.MarshalIndent(exchange, "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}

	return path, nil
}
