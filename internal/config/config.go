package config

import (
	"os"

	"github.com/freddy0077/chapelstack-backend-sub002/internal/analytics"
)

type Config struct {
	ServerPort   string
	DatabaseURL  string
	SettingsFile string
	Analytics    analytics.Settings
}

// Load reads the environment and, when SETTINGS_FILE is set, the engine
// settings file it points at.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		DatabaseURL:  getEnv("DATABASE_URL", "./ledger.db"),
		SettingsFile: getEnv("SETTINGS_FILE", ""),
	}

	settings, err := analytics.LoadSettings(cfg.SettingsFile)
	if err != nil {
		return nil, err
	}
	cfg.Analytics = settings
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
