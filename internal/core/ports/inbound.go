package ports

import (
	"context"
	"io"

	"github.com/inscribe-ai/docprocessor/internal/core/domain"
)

// DocumentIngestor is the inbound contract for document upload.
type DocumentIngestor interface {
	Upload(ctx context.Context, userID, fileName string, body io.Reader) (*domain.Document, error)
}

// DocumentProcessor is the inbound contract for the asynchronous pipeline.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) error
}

// TextSummarizer condenses arbitrarily large text into a short summary.
type TextSummarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// ChunkIndexer chunks and embeds document text for retrieval. The returned
// flag reports whether the document is ready for question answering.
type ChunkIndexer interface {
	Index(ctx context.Context, doc *domain.Document, text string) (bool, error)
}

// DocumentQueryService answers questions grounded in an indexed document.
type DocumentQueryService interface {
	Answer(ctx context.Context, documentID, question string) (*domain.Answer, error)
}

// StatusReader is the inbound read model for polling clients.
type StatusReader interface {
	Status(ctx context.Context, documentID string) (*domain.StatusView, error)
}

// DocumentManager covers user-initiated rename and cascading delete.
type DocumentManager interface {
	Rename(ctx context.Context, documentID, userID, newName string) error
	Delete(ctx context.Context, documentID, userID string) error
}
