package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	Environment     string
	FirebaseProject string
	DatabaseURL     string

	// Media upload provider: "host" posts to an external image host,
	// "gcs" writes straight to a Cloud Storage bucket.
	MediaProvider  string
	MediaEndpoint  string
	MediaUploadKey string
	StorageBucket  string

	// Reversibly encoded WhatsApp number for the contact deep link.
	ContactPhoneEncoded string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		Environment:         getEnv("ENVIRONMENT", "development"),
		FirebaseProject:     getEnv("FIREBASE_PROJECT_ID", ""),
		DatabaseURL:         getEnv("FIREBASE_DATABASE_URL", ""),
		MediaProvider:       getEnv("MEDIA_UPLOAD_PROVIDER", "host"),
		MediaEndpoint:       getEnv("MEDIA_UPLOAD_ENDPOINT", ""),
		MediaUploadKey:      getEnv("MEDIA_UPLOAD_KEY", ""),
		StorageBucket:       getEnv("STORAGE_BUCKET", ""),
		ContactPhoneEncoded: getEnv("CONTACT_PHONE_ENCODED", ""),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
