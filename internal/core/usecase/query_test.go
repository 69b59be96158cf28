package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/inscribe-ai/docprocessor/internal/core/domain"
)

func readyAnalysis() *domain.Analysis {
	return &domain.Analysis{
		DocumentID: "doc-1",
		UserID:     "user-1",
		Summary:    "the stored summary",
		QnAReady:   true,
	}
}

func TestQueryAnswersFromRetrievedChunks(t *testing.T) {
	store := &fakeChunkStore{searchHits: []domain.RetrievedChunk{
		{DocumentID: "doc-1", Text: "first chunk", Order: 0, Score: 0.9},
		{DocumentID: "doc-1", Text: "second chunk", Order: 4, Score: 0.7},
	}}
	chat := &fakeChatModel{replyFn: func(chatCall) (string, error) { return "grounded answer", nil }}
	embedder := &fakeEmbedder{queryVec: []float32{0.1, 0.2}}

	uc := NewQueryDocumentUseCase(newFakeAnalysisRepo(readyAnalysis()), embedder, store, chat, 3, 0)

	answer, err := uc.Answer(context.Background(), "doc-1", "what is this about?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if answer.Text != "grounded answer" {
		t.Fatalf("answer = %q", answer.Text)
	}
	if len(answer.Previews) != 2 || answer.Previews[0] != "first chunk" {
		t.Fatalf("previews = %v", answer.Previews)
	}

	if len(chat.calls) != 1 {
		t.Fatalf("model called %d times", len(chat.calls))
	}
	prompt := chat.calls[0].user
	if !strings.Contains(prompt, "first chunk\n---\nsecond chunk") {
		t.Fatalf("context not joined with separator: %q", prompt)
	}
	if !strings.Contains(prompt, "what is this about?") {
		t.Fatal("prompt does not carry the question")
	}
	if !strings.Contains(chat.calls[0].system, "strictly based on the provided context") {
		t.Fatal("system prompt does not enforce grounding")
	}

	if len(store.searches) != 1 {
		t.Fatalf("searches = %d", len(store.searches))
	}
	filter := store.searches[0]
	if filter.DocumentID != "doc-1" || filter.UserID != "user-1" {
		t.Fatalf("search filter = %+v, want document and owner scoping", filter)
	}
}

func TestQueryLongChunkPreviewTruncated(t *testing.T) {
	long := strings.Repeat("x", 250)
	store := &fakeChunkStore{searchHits: []domain.RetrievedChunk{{Text: long}}}
	uc := NewQueryDocumentUseCase(newFakeAnalysisRepo(readyAnalysis()), &fakeEmbedder{queryVec: []float32{1}}, store, &fakeChatModel{}, 3, 0)

	answer, err := uc.Answer(context.Background(), "doc-1", "q")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	want := strings.Repeat("x", 100) + "..."
	if answer.Previews[0] != want {
		t.Fatalf("preview = %q, want 100-rune prefix", answer.Previews[0])
	}
}

func TestQueryFallsBackToSummaryOnZeroHits(t *testing.T) {
	store := &fakeChunkStore{searchHits: nil}
	chat := &fakeChatModel{}
	uc := NewQueryDocumentUseCase(newFakeAnalysisRepo(readyAnalysis()), &fakeEmbedder{queryVec: []float32{1}}, store, chat, 3, 0)

	answer, err := uc.Answer(context.Background(), "doc-1", "q")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if answer.Text != "the stored summary" {
		t.Fatalf("answer = %q, want the stored summary verbatim", answer.Text)
	}
	if len(answer.Previews) != 0 {
		t.Fatalf("previews = %v, want none", answer.Previews)
	}
	if len(chat.calls) != 0 {
		t.Fatal("model called on the summary fallback path")
	}
}

func TestQueryRejectsNotIndexedDocument(t *testing.T) {
	analysis := readyAnalysis()
	analysis.QnAReady = false
	uc := NewQueryDocumentUseCase(newFakeAnalysisRepo(analysis), &fakeEmbedder{}, &fakeChunkStore{}, &fakeChatModel{}, 3, 0)

	_, err := uc.Answer(context.Background(), "doc-1", "q")
	if !domain.IsKind(err, domain.ErrNotReady) {
		t.Fatalf("error = %v, want ErrNotReady", err)
	}
}

func TestQueryRejectsUnknownDocument(t *testing.T) {
	uc := NewQueryDocumentUseCase(newFakeAnalysisRepo(), &fakeEmbedder{}, &fakeChunkStore{}, &fakeChatModel{}, 3, 0)

	_, err := uc.Answer(context.Background(), "missing", "q")
	if !domain.IsKind(err, domain.ErrNotReady) {
		t.Fatalf("error = %v, want ErrNotReady for a document without analysis", err)
	}
}

func TestQueryRejectsEmptyQuestion(t *testing.T) {
	uc := NewQueryDocumentUseCase(newFakeAnalysisRepo(readyAnalysis()), &fakeEmbedder{}, &fakeChunkStore{}, &fakeChatModel{}, 3, 0)

	_, err := uc.Answer(context.Background(), "doc-1", "   ")
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}

func TestQuerySearchFailure(t *testing.T) {
	store := &fakeChunkStore{searchErr: errors.New("vector store down")}
	uc := NewQueryDocumentUseCase(newFakeAnalysisRepo(readyAnalysis()), &fakeEmbedder{queryVec: []float32{1}}, store, &fakeChatModel{}, 3, 0)

	if _, err := uc.Answer(context.Background(), "doc-1", "q"); err == nil {
		t.Fatal("expected error")
	}
}
