package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Ai       AIConfig
	Engine   EngineConfig
	Keys     TopicNames
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type AIConfig struct {
	LLMProvider       string // "ollama" or "huggingface"
	LLMModel          string // e.g. "llama3", "qwen2.5"
	OllamaBaseURL     string
	HuggingFaceURL    string
	HuggingFaceAPIKey string
}

// EngineConfig carries the memory and context tunables. Defaults match how
// the concierge behaves in production; override per environment.
type EngineConfig struct {
	// ImportanceFloor is the minimum importance a memory needs to enter
	// AI context.
	ImportanceFloor int
	// ContextCharBudget caps the assembled context block size.
	ContextCharBudget int
	// ContextTopMemories / ContextTopRatings bound the reads feeding the
	// context builder.
	ContextTopMemories int
	ContextTopRatings  int
	// TraitScoreThreshold and TraitMaxTags control personality tagging.
	TraitScoreThreshold int
	TraitMaxTags        int
	// ContextCacheTTLSeconds is how long an assembled context block may be
	// reused before a rebuild.
	ContextCacheTTLSeconds int
	// RateLimitPerMinute bounds chat requests per client.
	RateLimitPerMinute int
}

type TopicNames struct {
	AnalyticsTopic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Tobago Concierge"),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			HuggingFaceURL:    getEnv("HUGGINGFACE_BASE_URL", ""),
			HuggingFaceAPIKey: getEnv("HUGGINGFACE_API_KEY", ""),
		},
		Engine: EngineConfig{
			ImportanceFloor:        getEnvAsInt("MEMORY_IMPORTANCE_FLOOR", 4),
			ContextCharBudget:      getEnvAsInt("CONTEXT_CHAR_BUDGET", 2000),
			ContextTopMemories:     getEnvAsInt("CONTEXT_TOP_MEMORIES", 8),
			ContextTopRatings:      getEnvAsInt("CONTEXT_TOP_RATINGS", 5),
			TraitScoreThreshold:    getEnvAsInt("TRAIT_SCORE_THRESHOLD", 2),
			TraitMaxTags:           getEnvAsInt("TRAIT_MAX_TAGS", 4),
			ContextCacheTTLSeconds: getEnvAsInt("CONTEXT_CACHE_TTL_SECONDS", 120),
			RateLimitPerMinute:     getEnvAsInt("CHAT_RATE_LIMIT_PER_MINUTE", 20),
		},
		Keys: TopicNames{
			AnalyticsTopic: getEnv("ANALYTICS_EVENT_TOPIC_NAME", "ANALYTICS_EVENT"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
