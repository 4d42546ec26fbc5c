package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DataFile     string
	BackupDir    string
	Port         string
	IsProduction bool
	RateLimit    string
}

// LoadConfig loads configuration from environment variables and .env file if
// present. Environment variables override .env values, which override the
// defaults.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("DATA_FILE", "delicias_de_la_wera.xlsx")
	viper.SetDefault("BACKUP_DIR", "backups")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("RATE_LIMIT", "120-M")

	viper.AutomaticEnv()

	cfg := &Config{
		DataFile:     viper.GetString("DATA_FILE"),
		BackupDir:    viper.GetString("BACKUP_DIR"),
		Port:         viper.GetString("PORT"),
		IsProduction: viper.GetBool("IS_PRODUCTION"),
		RateLimit:    viper.GetString("RATE_LIMIT"),
	}

	if cfg.DataFile == "" {
		cfg.DataFile = "delicias_de_la_wera.xlsx"
		log.Printf("Warning: DATA_FILE environment variable not set. Defaulting to %s\n", cfg.DataFile)
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	return cfg, nil
}
