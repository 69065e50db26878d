package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/amityadav/studybuddy/internal/ai/models"
)

// Config holds all application configuration
type Config struct {
	GeminiAPIKey    string
	GeminiTextModel string
	GeminiTTSModel  string
	GeminiChatModel string
	GeminiVoice     string
	YouTubeAPIKey   string
	TavilyAPIKey    string
	SerpAPIKey      string
	SupadataAPIKey  string

	StorageBackend   string // sqlite, postgres, redis or memory
	SQLitePath       string
	DatabaseURL      string
	RedisAddr        string
	StorageNamespace string
	CascadeDelete    bool

	FirebaseCredPath string
	FCMTopic         string
	RedisSyncChannel string
	ReminderCron     string
	Timezone         string

	HTTPAddr string
	APIKey   string
	LogMode  string
	Tracing  string

	ExpandLinks     bool
	MaxContentChars int
	MaxContextChars int
}

// Load loads configuration from environment variables
func Load() Config {
	return Config{
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiTextModel:  getEnv("GEMINI_TEXT_MODEL", models.TaskGenerationModel),
		GeminiTTSModel:   getEnv("GEMINI_TTS_MODEL", models.TaskSpeechModel),
		GeminiChatModel:  getEnv("GEMINI_CHAT_MODEL", models.TaskTutorModel),
		GeminiVoice:      getEnv("GEMINI_VOICE", models.DefaultVoice),
		YouTubeAPIKey:    os.Getenv("YOUTUBE_API_KEY"),
		TavilyAPIKey:     os.Getenv("TAVILY_API_KEY"),
		SerpAPIKey:       os.Getenv("SERPAPI_API_KEY"),
		SupadataAPIKey:   os.Getenv("SUPADATA_API_KEY"),
		StorageBackend:   strings.ToLower(getEnv("STORAGE_BACKEND", "sqlite")),
		SQLitePath:       getEnv("SQLITE_PATH", "studybuddy.db"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		StorageNamespace: getEnv("STORAGE_NAMESPACE", "studybuddy"),
		CascadeDelete:    getEnvBool("CASCADE_DELETE", false),
		FirebaseCredPath: getEnv("FIREBASE_CRED_PATH", "firebase/service-account.json"),
		FCMTopic:         getEnv("FCM_TOPIC", "study-widget"),
		RedisSyncChannel: os.Getenv("REDIS_SYNC_CHANNEL"),
		ReminderCron:     getEnv("REMINDER_CRON", "0 9 * * *"),
		Timezone:         getEnv("TIMEZONE", "UTC"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		APIKey:           os.Getenv("API_KEY"),
		LogMode:          getEnv("LOG_MODE", "dev"),
		Tracing:          os.Getenv("TRACING"),
		ExpandLinks:      getEnvBool("EXPAND_LINKS", false),
		MaxContentChars:  getEnvInt("MAX_CONTENT_CHARS", 30000),
		MaxContextChars:  getEnvInt("MAX_CONTEXT_CHARS", 10000),
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
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
