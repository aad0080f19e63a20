package config

import (
	"os"
	"strconv"
	"time"

	"echolearn/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// LLM backend for flashcard generation and the chat assistant.
	// Empty URL disables the client; rule-based fallbacks take over.
	LLMAPIURL string
	LLMAPIKey string
	LLMModel  string

	// SMTP for feedback mail. Empty host disables delivery.
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPassword  string
	FeedbackEmail string
	FromEmail     string

	// Simulated gift card processing delay before a redemption completes.
	GiftCardProcessingDelay time.Duration

	APIRateLimit   int
	APIRateWindow  time.Duration
	AuthRateLimit  int
	AuthRateWindow time.Duration

	LogLevel string
	LogJSON  bool
}

// Load reads configuration from the environment (.env is honored in dev).
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	smtpPort := 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			smtpPort = n
		}
	}

	llmModel := os.Getenv("LLM_MODEL")
	if llmModel == "" {
		llmModel = "claude-3-haiku-20240307"
	}

	processingDelay := 3 * time.Second
	if v := os.Getenv("GIFT_CARD_PROCESSING_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			processingDelay = time.Duration(n) * time.Second
		}
	}

	return &Config{
		AppPort:     port,
		DatabaseURL: dbURL,
		JWTSecret:   jwtSecret,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		LLMAPIURL: os.Getenv("LLM_API_URL"),
		LLMAPIKey: os.Getenv("LLM_API_KEY"),
		LLMModel:  llmModel,

		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      smtpPort,
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		FeedbackEmail: os.Getenv("FEEDBACK_EMAIL"),
		FromEmail:     os.Getenv("EMAIL_FROM"),

		GiftCardProcessingDelay: processingDelay,

		APIRateLimit:   intEnv("API_RATE_LIMIT", 60),
		APIRateWindow:  durationEnv("API_RATE_WINDOW_SECONDS", time.Minute),
		AuthRateLimit:  intEnv("AUTH_RATE_LIMIT", 5),
		AuthRateWindow: durationEnv("AUTH_RATE_WINDOW_SECONDS", time.Minute),

		LogLevel: os.Getenv("LOG_LEVEL"),
		LogJSON:  os.Getenv("LOG_JSON") == "true",
	}
}

func intEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func durationEnv(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return def
}
