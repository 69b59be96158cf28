package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/inscribe-ai/docprocessor/internal/core/domain"
	"github.com/inscribe-ai/docprocessor/internal/core/ports"
)

type IndexChunksUseCase struct {
	chunker    ports.Chunker
	embedder   ports.Embedder
	chunkStore ports.ChunkStore
}

func NewIndexChunksUseCase(
	chunker ports.Chunker,
	embedder ports.Embedder,
	chunkStore ports.ChunkStore,
) *IndexChunksUseCase {
	return &IndexChunksUseCase{
		chunker:    chunker,
		embedder:   embedder,
		chunkStore: chunkStore,
	}
}

// Index splits text into retrieval chunks, embeds them in one batched call
// and persists the whole set. The returned flag is the document's qna_ready
// value: false means the document completes without question answering, it
// does not fail the run. Only a store write error is a hard failure.
func (uc *IndexChunksUseCase) Index(ctx context.Context, doc *domain.Document, text string) (bool, error) {
	chunks := uc.chunker.Split(text)
	if len(chunks) == 0 {
		// Nothing to index is not a failure.
		return true, nil
	}

	vectors, err := uc.embedder.EmbedBatch(ctx, chunks)
	if err != nil {
		if domain.IsKind(err, domain.ErrModelNotConfigured) {
			slog.Warn("embedding_skipped_model_not_configured", "document_id", doc.ID)
			return false, nil
		}
		return false, fmt.Errorf("embed chunks: %w", err)
	}

	// A misaligned batch would silently pair chunk text with the wrong
	// vector and corrupt all future retrieval; refuse to persist anything.
	if len(vectors) != len(chunks) {
		slog.Error("embedding_count_mismatch",
			"document_id", doc.ID,
			"chunks", len(chunks),
			"vectors", len(vectors),
		)
		return false, nil
	}

	if err := uc.chunkStore.IndexChunks(ctx, doc, chunks, vectors); err != nil {
		return false, fmt.Errorf("store chunks: %w", err)
	}
	return true, nil
}
