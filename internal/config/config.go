package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App struct {
		Port string
	}
	Storage struct {
		Path string
	}
	Export struct {
		Delimiter   rune
		BOM         bool
		ItemColumns bool
	}
}

// Load reads configuration from the environment, optionally seeded from a
// .env file. Everything has a local-friendly default; the only way to fail is
// an unusable CSV delimiter.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{}
	cfg.App.Port = getenv("APP_PORT", "8080")
	cfg.Storage.Path = getenv("DATA_PATH", "ssanjae.db")

	switch d := getenv("CSV_DELIMITER", "comma"); d {
	case "comma":
		cfg.Export.Delimiter = ','
	case "semicolon":
		cfg.Export.Delimiter = ';'
	default:
		return nil, fmt.Errorf("CSV_DELIMITER must be comma or semicolon, got %q", d)
	}

	cfg.Export.BOM = getenv("CSV_BOM", "true") != "false"
	cfg.Export.ItemColumns = getenv("CSV_ITEM_COLUMNS", "true") != "false"

	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
