package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/inscribe-ai/docprocessor/internal/core/domain"
	"github.com/inscribe-ai/docprocessor/internal/core/ports"
)

const answerSystemPrompt = "You are a helpful assistant. Answer strictly based on the provided context. " +
	"If the context does not contain the information needed, respond with 'I do not have enough information.'"

const previewRunes = 100

// QueryDocumentUseCase answers questions about a single processed document
// using retrieval-augmented generation, falling back to the stored summary
// when retrieval produces nothing usable.
type QueryDocumentUseCase struct {
	analyses   ports.AnalysisRepository
	embedder   ports.Embedder
	chunkStore ports.ChunkStore
	chat       ports.ChatModel

	topK      int
	threshold float64
}

func NewQueryDocumentUseCase(
	analyses ports.AnalysisRepository,
	embedder ports.Embedder,
	chunkStore ports.ChunkStore,
	chat ports.ChatModel,
	topK int,
	threshold float64,
) *QueryDocumentUseCase {
	if topK <= 0 {
		topK = 3
	}
	return &QueryDocumentUseCase{
		analyses:   analyses,
		embedder:   embedder,
		chunkStore: chunkStore,
		chat:       chat,
		topK:       topK,
		threshold:  threshold,
	}
}

func (uc *QueryDocumentUseCase) Answer(ctx context.Context, documentID, question string) (*domain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "query document", fmt.Errorf("question is empty"))
	}

	analysis, err := uc.analyses.GetByDocumentID(ctx, documentID)
	if err != nil {
		if domain.IsKind(err, domain.ErrDocumentNotFound) {
			return nil, domain.WrapError(domain.ErrNotReady, "query document", fmt.Errorf("no analysis for document %s", documentID))
		}
		return nil, fmt.Errorf("load analysis: %w", err)
	}
	if !analysis.QnAReady {
		return nil, domain.WrapError(domain.ErrNotReady, "query document", fmt.Errorf("document %s is not indexed for Q&A", documentID))
	}

	vector, err := uc.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	chunks, err := uc.chunkStore.Search(ctx, vector, uc.topK, uc.threshold, domain.SearchFilter{
		DocumentID: documentID,
		UserID:     analysis.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("search chunks: %w", err)
	}

	if len(chunks) == 0 {
		// Nothing relevant retrieved: the summary is returned verbatim
		// without spending a model call on an empty context.
		return &domain.Answer{Text: analysis.Summary}, nil
	}

	parts := make([]string, 0, len(chunks))
	previews := make([]string, 0, len(chunks))
	for _, c := range chunks {
		parts = append(parts, c.Text)
		previews = append(previews, preview(c.Text))
	}

	userPrompt := fmt.Sprintf("Context:\n%s\n\nQuestion: %s", strings.Join(parts, "\n---\n"), question)
	answer, err := uc.chat.Complete(ctx, answerSystemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &domain.Answer{Text: answer, Previews: previews}, nil
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewRunes {
		return text
	}
	return string(runes[:previewRunes]) + "..."
}
