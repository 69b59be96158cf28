package config

import (
	"os"
	"strconv"
)

type Config struct {
	APIPort  string
	LogLevel string

	// PostgresDSN has no usable default. Bootstrap refuses to start
	// without it rather than silently pointing at localhost.
	PostgresDSN string

	NATSURL     string
	NATSSubject string

	OpenAIAPIKey     string
	OpenAIBaseURL    string
	OpenAIChatModel  string
	OpenAIEmbedModel string

	QdrantURL        string
	QdrantCollection string

	UploadDir string

	ChunkSize           int
	ChunkOverlap        int
	SummaryTargetChunks int
	SummaryMinChunkSize int
	QueryTopK           int
	SimilarityThreshold float64

	APIRateLimitRPS   float64
	APIRateLimitBurst int

	WorkerMetricsPort     string
	ProcessTimeoutSeconds int
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		PostgresDSN: mustEnv("POSTGRES_DSN", ""),

		NATSURL:     mustEnv("NATS_URL", "nats://localhost:4222"),
		NATSSubject: mustEnv("NATS_SUBJECT", "documents.process"),

		OpenAIAPIKey:     mustEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:    mustEnv("OPENAI_BASE_URL", ""),
		OpenAIChatModel:  mustEnv("OPENAI_CHAT_MODEL", "gpt-3.5-turbo"),
		OpenAIEmbedModel: mustEnv("OPENAI_EMBED_MODEL", "text-embedding-3-small"),

		QdrantURL:        mustEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection: mustEnv("QDRANT_COLLECTION", "document_chunks"),

		UploadDir: mustEnv("UPLOAD_DIR", "./temp_uploads"),

		ChunkSize:           mustEnvInt("CHUNK_SIZE", 1000),
		ChunkOverlap:        mustEnvInt("CHUNK_OVERLAP", 100),
		SummaryTargetChunks: mustEnvInt("SUMMARY_TARGET_CHUNKS", 20),
		SummaryMinChunkSize: mustEnvInt("SUMMARY_MIN_CHUNK_SIZE", 1000),
		QueryTopK:           mustEnvInt("QUERY_TOP_K", 3),
		SimilarityThreshold: mustEnvFloat("SIMILARITY_THRESHOLD", 0),

		APIRateLimitRPS:   mustEnvFloat("API_RATE_LIMIT_RPS", 0),
		APIRateLimitBurst: mustEnvInt("API_RATE_LIMIT_BURST", 0),

		WorkerMetricsPort:     mustEnv("WORKER_METRICS_PORT", "9090"),
		ProcessTimeoutSeconds: mustEnvInt("PROCESS_TIMEOUT_SECONDS", 300),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
