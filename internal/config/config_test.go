package config

import "testing"

func TestLoadPipelineDefaults(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "")
	t.Setenv("CHUNK_OVERLAP", "")
	t.Setenv("QUERY_TOP_K", "")
	t.Setenv("SIMILARITY_THRESHOLD", "")
	t.Setenv("NATS_SUBJECT", "")

	cfg := Load()
	if cfg.ChunkSize != 1000 {
		t.Fatalf("expected default chunk size 1000, got %d", cfg.ChunkSize)
	}
	if cfg.ChunkOverlap != 100 {
		t.Fatalf("expected default chunk overlap 100, got %d", cfg.ChunkOverlap)
	}
	if cfg.QueryTopK != 3 {
		t.Fatalf("expected default top k 3, got %d", cfg.QueryTopK)
	}
	if cfg.SimilarityThreshold != 0 {
		t.Fatalf("expected similarity threshold disabled by default, got %f", cfg.SimilarityThreshold)
	}
	if cfg.NATSSubject != "documents.process" {
		t.Fatalf("expected default subject documents.process, got %q", cfg.NATSSubject)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "500")
	t.Setenv("SIMILARITY_THRESHOLD", "0.35")
	t.Setenv("API_RATE_LIMIT_RPS", "25")
	t.Setenv("OPENAI_CHAT_MODEL", "gpt-4o-mini")

	cfg := Load()
	if cfg.ChunkSize != 500 {
		t.Fatalf("expected chunk size override, got %d", cfg.ChunkSize)
	}
	if cfg.SimilarityThreshold != 0.35 {
		t.Fatalf("expected threshold override, got %f", cfg.SimilarityThreshold)
	}
	if cfg.APIRateLimitRPS != 25 {
		t.Fatalf("expected rate limit override, got %f", cfg.APIRateLimitRPS)
	}
	if cfg.OpenAIChatModel != "gpt-4o-mini" {
		t.Fatalf("expected chat model override, got %q", cfg.OpenAIChatModel)
	}
}

func TestLoadPostgresDSNHasNoDefault(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")

	cfg := Load()
	if cfg.PostgresDSN != "" {
		t.Fatalf("expected empty DSN without env, got %q", cfg.PostgresDSN)
	}
}

func TestLoadMalformedIntFallsBack(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "not-a-number")

	cfg := Load()
	if cfg.ChunkSize != 1000 {
		t.Fatalf("expected fallback on malformed int, got %d", cfg.ChunkSize)
	}
}
