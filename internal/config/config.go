package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI   string
	DBName     string
	RedisURL   string
	ListenAddr string

	MapboxToken string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string

	GoogleClientID string

	SessionTTL time.Duration
}

// Load reads configuration from the environment, preferring a .env file
// when present. Startup fails fast on missing critical values.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := Config{
		MongoURI:            mustEnv("MONGO_URI"),
		DBName:              envOrDefault("DB_NAME", "campwild"),
		RedisURL:            mustEnv("REDIS_URL"),
		ListenAddr:          envOrDefault("LISTEN_ADDR", "localhost:8080"),
		MapboxToken:         mustEnv("MAPBOX_TOKEN"),
		CloudinaryCloudName: mustEnv("CLOUDINARY_CLOUDNAME"),
		CloudinaryAPIKey:    mustEnv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: mustEnv("CLOUDINARY_API_SECRET"),
		CloudinaryFolder:    envOrDefault("CLOUDINARY_UPLOAD_FOLDER", "CampWild"),
		GoogleClientID:      os.Getenv("GOOGLE_CLIENT_ID"),
		SessionTTL:          durationEnv("SESSION_TTL_HOURS", 24*7, time.Hour),
	}

	return cfg
}

func mustEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		log.Fatalf("missing required environment variable %s", key)
	}
	return value
}

func envOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func durationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
