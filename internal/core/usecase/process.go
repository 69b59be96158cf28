package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/inscribe-ai/docprocessor/internal/core/domain"
	"github.com/inscribe-ai/docprocessor/internal/core/ports"
)

// ProcessDocumentUseCase drives one document through the processing pipeline:
// parsing -> analyzing -> a terminal status. Stage transitions are strictly
// sequential and never move backward; a failed stage is terminal for the run
// and surfaces only through the document's status field.
type ProcessDocumentUseCase struct {
	repo       ports.DocumentRepository
	analyses   ports.AnalysisRepository
	storage    ports.ObjectStorage
	extractor  ports.TextExtractor
	summarizer ports.TextSummarizer
	indexer    ports.ChunkIndexer

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewProcessDocumentUseCase(
	repo ports.DocumentRepository,
	analyses ports.AnalysisRepository,
	storage ports.ObjectStorage,
	extractor ports.TextExtractor,
	summarizer ports.TextSummarizer,
	indexer ports.ChunkIndexer,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		repo:       repo,
		analyses:   analyses,
		storage:    storage,
		extractor:  extractor,
		summarizer: summarizer,
		indexer:    indexer,
		inFlight:   make(map[string]struct{}),
	}
}

func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) error {
	release, ok := uc.claim(documentID)
	if !ok {
		// The upload contract triggers each document once; a duplicate
		// submission must not interleave status writes with the active run.
		return fmt.Errorf("document %s is already being processed", documentID)
	}
	defer release()

	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("fetch document by id: %w", err)
	}

	// The temp file is owned by this run and released on every exit path.
	// Cleanup must survive a cancelled context.
	defer func() {
		if err := uc.storage.Remove(context.WithoutCancel(ctx), doc.StoragePath); err != nil {
			slog.Warn("temp_file_cleanup_failed", "document_id", doc.ID, "storage_key", doc.StoragePath, "error", err)
		}
	}()

	if err := uc.runStages(ctx, doc); err != nil {
		uc.markFailed(ctx, doc.ID, err)
		return err
	}
	return nil
}

func (uc *ProcessDocumentUseCase) runStages(ctx context.Context, doc *domain.Document) error {
	if err := uc.repo.UpdateStatus(ctx, doc.ID, domain.StatusParsing, ""); err != nil {
		return fmt.Errorf("set status=parsing: %w", err)
	}

	text, pages, err := uc.extractor.Extract(ctx, doc.StoragePath)
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}
	slog.Info("document_extracted", "document_id", doc.ID, "pages", pages, "chars", len(text))

	if err := uc.repo.UpdateStatus(ctx, doc.ID, domain.StatusAnalyzing, ""); err != nil {
		return fmt.Errorf("set status=analyzing: %w", err)
	}

	summary, err := uc.summarizer.Summarize(ctx, text)
	if err != nil {
		return fmt.Errorf("summarize document: %w", err)
	}

	qnaReady, err := uc.indexer.Index(ctx, doc, text)
	if err != nil {
		return fmt.Errorf("index document: %w", err)
	}

	analysis := &domain.Analysis{
		DocumentID: doc.ID,
		UserID:     doc.UserID,
		Summary:    summary,
		QnAReady:   qnaReady,
		CreatedAt:  time.Now().UTC(),
	}
	if err := uc.analyses.Insert(ctx, analysis); err != nil {
		return fmt.Errorf("persist analysis: %w", err)
	}

	final := domain.StatusCompleted
	if !qnaReady {
		final = domain.StatusCompletedNoQnA
	}
	if err := uc.repo.UpdateStatus(ctx, doc.ID, final, ""); err != nil {
		return fmt.Errorf("set final status: %w", err)
	}
	return nil
}

// markFailed is a compensating write after an already-failed run. If it fails
// too the document stays stuck in its last successful status; that is logged
// and dropped, never raised, so the degradation remains observable through
// polling rather than hidden behind a second error.
func (uc *ProcessDocumentUseCase) markFailed(ctx context.Context, documentID string, cause error) {
	if err := uc.repo.UpdateStatus(context.WithoutCancel(ctx), documentID, domain.StatusFailed, cause.Error()); err != nil {
		slog.Error("mark_failed_status_write_failed",
			"document_id", documentID,
			"cause", cause,
			"error", err,
		)
	}
}

func (uc *ProcessDocumentUseCase) claim(documentID string) (func(), bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if _, busy := uc.inFlight[documentID]; busy {
		return nil, false
	}
	uc.inFlight[documentID] = struct{}{}
	return func() {
		uc.mu.Lock()
		defer uc.mu.Unlock()
		delete(uc.inFlight, documentID)
	}, true
}
