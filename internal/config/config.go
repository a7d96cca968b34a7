package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr             string
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	DatabaseURL string
	DBPoolMax   int
	DBPoolWait  bool

	SMTPHost  string
	SMTPPort  int
	EmailUser string
	EmailPass string
	EmailTo   string

	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	UploadDir string
}

// Load reads the environment (plus an optional .env file). Mail credentials,
// the database URL and the JWT secrets are required; startup panics without them.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:             getenv("HTTP_ADDR", ":5000"),
		CORSAllowCredentials: getenv("CORS_ALLOW_CREDENTIALS", "true") == "true",

		DatabaseURL: mustGetenv("DATABASE_URL"),
		DBPoolMax:   getenvInt("DB_POOL_MAX", 10),
		DBPoolWait:  getenv("DB_POOL_WAIT", "true") == "true",

		SMTPHost:  getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:  getenvInt("SMTP_PORT", 587),
		EmailUser: mustGetenv("EMAIL_USER"),
		EmailPass: mustGetenv("EMAIL_PASS"),
		EmailTo:   mustGetenv("EMAIL_TO"),

		AccessSecret:  mustGetenv("ACCESS_TOKEN_SECRET"),
		RefreshSecret: mustGetenv("REFRESH_TOKEN_SECRET"),
		AccessTTL:     getenvDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTTL:    getenvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		UploadDir: getenv("UPLOAD_DIR", "uploads"),
	}

	origins := strings.Split(getenv("CORS_ALLOWED_ORIGINS", ""), ",")
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	return cfg, nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func mustGetenv(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		panic("missing env: " + key)
	}
	return v
}
