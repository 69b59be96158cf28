package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/inscribe-ai/docprocessor/internal/core/domain"
)

func TestSummarizeEmptyTextSkipsModel(t *testing.T) {
	chat := &fakeChatModel{}
	uc := NewSummarizeUseCase(chat, 20, 1000)

	summary, err := uc.Summarize(context.Background(), "")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary != "" {
		t.Fatalf("summary = %q, want empty", summary)
	}
	if len(chat.calls) != 0 {
		t.Fatalf("model called %d times for empty text", len(chat.calls))
	}
}

func TestSummarizeShortTextSingleCall(t *testing.T) {
	chat := &fakeChatModel{replyFn: func(chatCall) (string, error) { return "final summary", nil }}
	uc := NewSummarizeUseCase(chat, 20, 1000)

	summary, err := uc.Summarize(context.Background(), "a short document body")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary != "final summary" {
		t.Fatalf("summary = %q", summary)
	}
	if len(chat.calls) != 1 {
		t.Fatalf("model called %d times, want 1", len(chat.calls))
	}
	if !strings.Contains(chat.calls[0].user, "a short document body") {
		t.Fatal("prompt does not carry the document text")
	}
}

func TestSummarizeRefinesThroughSegments(t *testing.T) {
	chat := &fakeChatModel{}
	n := 0
	chat.replyFn = func(call chatCall) (string, error) {
		n++
		if n > 1 && !strings.Contains(call.user, fmt.Sprintf("summary %d", n-1)) {
			return "", fmt.Errorf("refine call %d does not carry the running summary", n)
		}
		return fmt.Sprintf("summary %d", n), nil
	}

	// 40k runes with min chunk 1000 and target 20 → 2000-rune segments,
	// so the reduction must take multiple refine passes.
	text := strings.Repeat("word ", 8000)
	uc := NewSummarizeUseCase(chat, 20, 1000)

	summary, err := uc.Summarize(context.Background(), text)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if len(chat.calls) < 2 {
		t.Fatalf("model called %d times, want a multi-segment reduction", len(chat.calls))
	}
	if summary != fmt.Sprintf("summary %d", len(chat.calls)) {
		t.Fatalf("summary %q is not the last refine output", summary)
	}
}

func TestSummarizeCallCountBounded(t *testing.T) {
	chat := &fakeChatModel{}
	uc := NewSummarizeUseCase(chat, 20, 1000)

	if _, err := uc.Summarize(context.Background(), strings.Repeat("x", 400000)); err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	// Overlap adds segments beyond the target, but the count must stay in
	// the same order of magnitude no matter how large the input.
	if len(chat.calls) > 30 {
		t.Fatalf("model called %d times for 400k runes", len(chat.calls))
	}
}

func TestSummarizeModelNotConfigured(t *testing.T) {
	chat := &fakeChatModel{replyFn: func(chatCall) (string, error) {
		return "", domain.WrapError(domain.ErrModelNotConfigured, "complete", errors.New("no api key"))
	}}
	uc := NewSummarizeUseCase(chat, 20, 1000)

	summary, err := uc.Summarize(context.Background(), "some text")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary != NotConfiguredSummary {
		t.Fatalf("summary = %q, want sentinel", summary)
	}
}

func TestSummarizeModelFailure(t *testing.T) {
	chat := &fakeChatModel{replyFn: func(chatCall) (string, error) {
		return "", errors.New("rate limited")
	}}
	uc := NewSummarizeUseCase(chat, 20, 1000)

	if _, err := uc.Summarize(context.Background(), "some text"); err == nil {
		t.Fatal("expected error")
	}
}
