package usecase

import (
	"context"
	"fmt"

	"github.com/inscribe-ai/docprocessor/internal/core/domain"
	"github.com/inscribe-ai/docprocessor/internal/core/ports"
	"github.com/inscribe-ai/docprocessor/internal/infrastructure/chunking"
)

// NotConfiguredSummary is stored in place of a real summary when no model
// client is available. The pipeline keeps running: a missing model credential
// degrades the summary, it does not fail the document.
const NotConfiguredSummary = "Error: LLM client not configured."

type SummarizeUseCase struct {
	chat         ports.ChatModel
	targetChunks int
	minChunkSize int
}

func NewSummarizeUseCase(chat ports.ChatModel, targetChunks, minChunkSize int) *SummarizeUseCase {
	if targetChunks <= 0 {
		targetChunks = 20
	}
	if minChunkSize <= 0 {
		minChunkSize = 1000
	}
	return &SummarizeUseCase{
		chat:         chat,
		targetChunks: targetChunks,
		minChunkSize: minChunkSize,
	}
}

// Summarize condenses text of any size with a bounded number of model calls.
// The text is split into roughly targetChunks overlapping segments, then
// folded through a refine reduction: each segment revises the running summary
// instead of being summarized independently, so every call's input stays
// bounded regardless of total document size.
func (uc *SummarizeUseCase) Summarize(ctx context.Context, text string) (string, error) {
	segments := chunking.NewSummarySplitter(len([]rune(text)), uc.targetChunks, uc.minChunkSize).Split(text)
	if len(segments) == 0 {
		return "", nil
	}

	running := ""
	for i, segment := range segments {
		var prompt string
		if i == 0 {
			prompt = buildInitialSummaryPrompt(segment)
		} else {
			prompt = buildRefinePrompt(running, segment)
		}

		out, err := uc.chat.Complete(ctx, summarySystemPrompt, prompt)
		if err != nil {
			if domain.IsKind(err, domain.ErrModelNotConfigured) {
				return NotConfiguredSummary, nil
			}
			return "", fmt.Errorf("summarize segment %d/%d: %w", i+1, len(segments), err)
		}
		running = out
	}
	return running, nil
}

const summarySystemPrompt = "You are a precise document summarizer. Produce a concise summary of the provided material. Respond with the summary text only."

func buildInitialSummaryPrompt(segment string) string {
	return fmt.Sprintf("Summarize the following document excerpt:\n\n%s", segment)
}

func buildRefinePrompt(running, segment string) string {
	return fmt.Sprintf(
		"Existing summary:\n%s\n\nRefine the existing summary with the additional excerpt below. Keep it concise and do not drop earlier facts unless contradicted.\n\nAdditional excerpt:\n%s",
		running,
		segment,
	)
}
