package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/inscribe-ai/docprocessor/internal/core/domain"
)

func TestIndexHappyPath(t *testing.T) {
	store := &fakeChunkStore{}
	embedder := &fakeEmbedder{}
	uc := NewIndexChunksUseCase(&fakeChunker{chunks: []string{"a", "b", "c"}}, embedder, store)

	ready, err := uc.Index(context.Background(), testDocument(), "text")
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if !ready {
		t.Fatal("ready = false, want true")
	}
	if len(embedder.batchCalls) != 1 {
		t.Fatalf("embed batches = %d, want a single batched call", len(embedder.batchCalls))
	}
	if len(store.indexed) != 1 || len(store.indexed[0].chunks) != 3 {
		t.Fatalf("unexpected indexed batches: %+v", store.indexed)
	}
}

func TestIndexEmptyTextIsReady(t *testing.T) {
	store := &fakeChunkStore{}
	embedder := &fakeEmbedder{}
	uc := NewIndexChunksUseCase(&fakeChunker{chunks: nil}, embedder, store)

	ready, err := uc.Index(context.Background(), testDocument(), "")
	if err != nil || !ready {
		t.Fatalf("Index = (%v, %v), want (true, nil)", ready, err)
	}
	if len(embedder.batchCalls) != 0 || len(store.indexed) != 0 {
		t.Fatal("zero-chunk document must not touch embedder or store")
	}
}

func TestIndexEmbedderNotConfigured(t *testing.T) {
	store := &fakeChunkStore{}
	embedder := &fakeEmbedder{batchFn: func([]string) ([][]float32, error) {
		return nil, domain.WrapError(domain.ErrModelNotConfigured, "embed", errors.New("no api key"))
	}}
	uc := NewIndexChunksUseCase(&fakeChunker{chunks: []string{"a"}}, embedder, store)

	ready, err := uc.Index(context.Background(), testDocument(), "text")
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if ready {
		t.Fatal("ready = true with no embedder configured")
	}
	if len(store.indexed) != 0 {
		t.Fatal("chunks persisted despite missing embeddings")
	}
}

func TestIndexVectorCountMismatch(t *testing.T) {
	store := &fakeChunkStore{}
	embedder := &fakeEmbedder{batchFn: func(texts []string) ([][]float32, error) {
		return [][]float32{{1}}, nil // fewer vectors than chunks
	}}
	uc := NewIndexChunksUseCase(&fakeChunker{chunks: []string{"a", "b"}}, embedder, store)

	ready, err := uc.Index(context.Background(), testDocument(), "text")
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if ready {
		t.Fatal("ready = true on misaligned batch")
	}
	if len(store.indexed) != 0 {
		t.Fatal("misaligned batch was persisted")
	}
}

func TestIndexStoreFailureIsHard(t *testing.T) {
	store := &fakeChunkStore{indexErr: errors.New("store down")}
	uc := NewIndexChunksUseCase(&fakeChunker{chunks: []string{"a"}}, &fakeEmbedder{}, store)

	ready, err := uc.Index(context.Background(), testDocument(), "text")
	if err == nil {
		t.Fatal("expected error")
	}
	if ready {
		t.Fatal("ready = true on store failure")
	}
}
