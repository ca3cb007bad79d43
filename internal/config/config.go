package config

import (
	"os"
	"path/filepath"
)

// Config holds everything the planner reads from the environment: the AI
// service endpoints, the product backend, and local file locations.
type Config struct {
	AnalysisURL string
	ChatURL     string
	SearchURL   string
	ProductURL  string
	CDNBaseURL  string

	DataDir     string
	CatalogPath string

	// PendingProductFile is written by the catalog front-end when the user
	// picks "try in my room"; it holds a single product id to place on start.
	PendingProductFile string
}

// Load builds the configuration from environment variables, falling back to
// defaults that work for local development.
func Load() Config {
	dataDir := getEnv("ROOMPLANNER_DATA_DIR", defaultDataDir())
	return Config{
		AnalysisURL: getEnv("ROOMPLANNER_ANALYSIS_URL", "http://localhost:8080/api/analyze-room"),
		ChatURL:     getEnv("ROOMPLANNER_CHAT_URL", "http://localhost:8080/api/chat"),
		SearchURL:   getEnv("ROOMPLANNER_SEARCH_URL", "http://localhost:8080/api/search-furniture"),
		ProductURL:  getEnv("ROOMPLANNER_PRODUCT_URL", "http://localhost:8080/api/products"),
		CDNBaseURL:  getEnv("ROOMPLANNER_CDN_BASE_URL", "http://localhost:8080/cdn"),

		DataDir:     dataDir,
		CatalogPath: getEnv("ROOMPLANNER_CATALOG_PATH", ""),

		PendingProductFile: getEnv("ROOMPLANNER_PENDING_PRODUCT_FILE", filepath.Join(dataDir, "pending_product")),
	}
}

// DatabasePath is where the arrangement snapshot database lives.
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "arrangement.db")
}

// ModelCacheDir is where downloaded product models are cached.
func (c Config) ModelCacheDir() string {
	return filepath.Join(c.DataDir, "models")
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".roomplanner")
	}
	return ".roomplanner"
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}
