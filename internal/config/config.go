package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Session
	SecretKey        string
	SessionExpiresIn time.Duration

	// Database
	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Uploads
	UploadDir         string
	AllowedExtensions map[string]bool
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Session
		SecretKey: getEnv("SECRET_KEY", "super-secret-key"),

		// Database
		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		DBPath:     getEnv("DB_PATH", "hisabkitab.db"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "hisabkitab"),
		DBPassword: getEnv("DB_PASSWORD", "hisabkitab"),
		DBName:     getEnv("DB_NAME", "hisabkitab"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Uploads
		UploadDir:         getEnv("UPLOAD_DIR", "static/uploads"),
		AllowedExtensions: parseExtensions(getEnv("ALLOWED_EXTENSIONS", "png,jpg,jpeg,gif")),
	}

	// Parse session expiration duration
	expStr := getEnv("SESSION_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid SESSION_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.SessionExpiresIn = expDur

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// parseExtensions turns a comma-separated extension list into a lookup set.
// Extensions are stored lowercase without a leading dot.
func parseExtensions(raw string) map[string]bool {
	exts := make(map[string]bool)
	for _, ext := range strings.Split(raw, ",") {
		ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
		if ext != "" {
			exts[ext] = true
		}
	}
	return exts
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
