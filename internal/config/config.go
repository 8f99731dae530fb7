package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config carries the runtime options for the client.
type Config struct {
	ServerURL string
	ThemePath string
	LogPath   string
}

// Load reads a .env file when present, then the environment, with defaults
// suitable for local development.
func Load() *Config {
	_ = godotenv.Load()

	stateDir := defaultStateDir()
	return &Config{
		ServerURL: getEnv("INSIGHTPDF_SERVER_URL", "http://localhost:8000"),
		ThemePath: getEnv("INSIGHTPDF_THEME_PATH", filepath.Join(stateDir, "theme.json")),
		LogPath:   getEnv("INSIGHTPDF_LOG_PATH", filepath.Join(stateDir, "insightpdf.log")),
	}
}

func defaultStateDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, "insightpdf")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
