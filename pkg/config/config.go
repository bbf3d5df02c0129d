package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every runtime setting, populated from the environment.
type Config struct {
	Port        string
	Env         string
	MongoURI    string
	MongoDBName string

	CorsOrigin    string // frontend origin allowed by CORS and used in redirects
	CurrentOrigin string // public origin of this server, used for OAuth callbacks

	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	LoginCookieDays    int

	FirebaseCredentialsPath string
	FirebaseStorageBucket   string

	OAuthClientID     string
	OAuthClientSecret string
}

// Load reads the configuration from the environment, loading a .env
// file first when one is present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		MongoURI:    getEnv("MONGODB_URI", ""),
		MongoDBName: getEnv("MONGODB_NAME", "datalist"),

		CorsOrigin:    getEnv("CORS_ORIGIN", "http://localhost:3000"),
		CurrentOrigin: getEnv("CURRENT_ORIGIN", "http://localhost:8080"),

		AccessTokenSecret:  getEnv("ACCESS_TOKEN_SECRET", ""),
		RefreshTokenSecret: getEnv("REFRESH_TOKEN_SECRET", ""),
		AccessTokenExpiry:  getEnvDuration("ACCESS_TOKEN_EXPIRY", 24*time.Hour),
		RefreshTokenExpiry: getEnvDuration("REFRESH_TOKEN_EXPIRY", 10*24*time.Hour),
		LoginCookieDays:    getEnvInt("LOG_COOKIE_EXPIRY", 10),

		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebaseServiceKey.json"),
		FirebaseStorageBucket:   getEnv("FIREBASE_STORAGE_BUCKET", "inkflows-cloud.appspot.com"),

		OAuthClientID:     getEnv("OAUTH_CLIENT_ID", ""),
		OAuthClientSecret: getEnv("OAUTH_CLIENT_SECRET", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
