package ports

import (
	"context"
	"io"

	"github.com/inscribe-ai/docprocessor/internal/core/domain"
)

// DocumentRepository persists and reads document state.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
	Rename(ctx context.Context, id, userID, newName string) error
	Delete(ctx context.Context, id, userID string) error
}

// AnalysisRepository persists the per-document summarization result.
type AnalysisRepository interface {
	Insert(ctx context.Context, analysis *domain.Analysis) error
	GetByDocumentID(ctx context.Context, documentID string) (*domain.Analysis, error)
	DeleteByDocument(ctx context.Context, documentID, userID string) error
}

// ObjectStorage holds the temporary upload files owned by a pipeline run.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
}

// TaskQueue detaches document processing from the upload request.
type TaskQueue interface {
	PublishDocumentUploaded(ctx context.Context, documentID string) error
	SubscribeDocumentUploaded(ctx context.Context, handler func(context.Context, string) error) error
}

// TextExtractor produces plain text and a page count from a stored document.
type TextExtractor interface {
	Extract(ctx context.Context, storageKey string) (text string, pages int, err error)
}

// Embedder builds vectors for chunks and query text. Both sides of retrieval
// must share one embedding space, so the same implementation serves both.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// ChatModel generates completions for summarization and grounded answering.
type ChatModel interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Chunker splits text into ordered, overlapping segments.
type Chunker interface {
	Split(text string) []string
}

// ChunkStore indexes embedded chunks and performs similarity search.
type ChunkStore interface {
	IndexChunks(ctx context.Context, doc *domain.Document, chunks []string, vectors [][]float32) error
	Search(ctx context.Context, queryVector []float32, limit int, threshold float64, filter domain.SearchFilter) ([]domain.RetrievedChunk, error)
	DeleteByDocument(ctx context.Context, documentID, userID string) error
}
