package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Settings struct {
	Port string
	Env  string

	PostgresURI string
	RedisAddr   string
	MongoURI    string
	MongoDB     string

	JWTSecret         string
	JWTIssuer         string
	AccessTokenTTL    time.Duration
	FirebaseProjectID string

	// LLMProvider is one of vertex, gemini, static or none.
	LLMProvider     string
	GCPProjectID    string
	GCPLocation     string
	VertexModel     string
	GeminiAPIKey    string
	CredentialsFile string

	GCSBucket string

	// GCSPublicRead grants allUsers read on published PDFs. Leave off for
	// buckets with uniform bucket-level access.
	GCSPublicRead bool

	// Renderer is fpdf (default) or chromedp.
	Renderer   string
	ChromePath string

	CORSAllowOrigins []string
	RunMigrations    bool
}

// Load reads .env (when present) and the process environment.
func Load() *Settings {
	_ = godotenv.Load()

	ttl := getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)

	s := &Settings{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("ENV", "development"),
		PostgresURI:       firstEnv("POSTGRES_URI", "DATABASE_URL"),
		RedisAddr:         firstEnv("REDIS_ADDR", "REDIS_URI", "REDIS_URL"),
		MongoURI:          os.Getenv("MONGO_URI"),
		MongoDB:           getEnv("MONGO_DB", "maplepath"),
		JWTSecret:         firstEnv("JWT_SECRET", "SECRET_KEY"),
		JWTIssuer:         getEnv("JWT_ISSUER", "maplepath-api"),
		AccessTokenTTL:    time.Duration(ttl) * time.Minute,
		FirebaseProjectID: firstEnv("FIREBASE_PROJECT_ID", "GCP_PROJECT_ID"),
		LLMProvider:       strings.ToLower(getEnv("LLM_PROVIDER", "vertex")),
		GCPProjectID:      os.Getenv("GCP_PROJECT_ID"),
		GCPLocation:       getEnv("GCP_LOCATION", "us-central1"),
		VertexModel:       getEnv("VERTEX_AI_MODEL", "gemini-1.5-flash"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		CredentialsFile:   os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		GCSBucket:         firstEnv("GCS_BUCKET_NAME", "GCS_BUCKET"),
		GCSPublicRead:     getEnv("GCS_PUBLIC_READ", "false") == "true",
		Renderer:          strings.ToLower(getEnv("RENDERER", "fpdf")),
		ChromePath:        os.Getenv("CHROME_PATH"),
		CORSAllowOrigins:  splitList(os.Getenv("CORS_ALLOW_ORIGINS")),
		RunMigrations:     getEnv("RUN_MIGRATIONS", "true") == "true",
	}
	return s
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func getEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
