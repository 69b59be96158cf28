package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inscribe-ai/docprocessor/internal/core/domain"
	"github.com/inscribe-ai/docprocessor/internal/core/ports"
)

type UploadDocumentUseCase struct {
	repo    ports.DocumentRepository
	storage ports.ObjectStorage
	queue   ports.TaskQueue
}

func NewUploadDocumentUseCase(
	repo ports.DocumentRepository,
	storage ports.ObjectStorage,
	queue ports.TaskQueue,
) *UploadDocumentUseCase {
	return &UploadDocumentUseCase{
		repo:    repo,
		storage: storage,
		queue:   queue,
	}
}

// Upload stores the uploaded file, creates the document record in `uploaded`
// status and schedules the processing pipeline. It returns as soon as the
// task is enqueued; pipeline progress is observable only via the status
// endpoint.
func (uc *UploadDocumentUseCase) Upload(
	ctx context.Context,
	userID, fileName string,
	body io.Reader,
) (*domain.Document, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload", fmt.Errorf("user id is required"))
	}

	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s_%s", id, sanitizeFileName(fileName))
	now := time.Now().UTC()

	if err := uc.storage.Save(ctx, storageKey, body); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	doc := &domain.Document{
		ID:          id,
		UserID:      userID,
		FileName:    fileName,
		StoragePath: storageKey,
		Status:      domain.StatusUploaded,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.repo.Create(ctx, doc); err != nil {
		uc.discardUpload(ctx, storageKey)
		return nil, fmt.Errorf("create document record: %w", err)
	}

	if err := uc.queue.PublishDocumentUploaded(ctx, doc.ID); err != nil {
		// Without a task the row would sit in `uploaded` forever. Discard
		// the file and flip the row to failed so polling clients see a
		// terminal state; the flip itself is best-effort.
		uc.discardUpload(ctx, storageKey)
		failMsg := fmt.Sprintf("schedule document processing: %v", err)
		if updErr := uc.repo.UpdateStatus(ctx, doc.ID, domain.StatusFailed, failMsg); updErr != nil {
			slog.Warn("mark_failed_after_publish_error", "document_id", doc.ID, "error", updErr)
		}
		return nil, fmt.Errorf("schedule document processing: %w", err)
	}

	return doc, nil
}

func (uc *UploadDocumentUseCase) discardUpload(ctx context.Context, storageKey string) {
	if err := uc.storage.Remove(ctx, storageKey); err != nil {
		slog.Warn("discard_upload_failed", "storage_key", storageKey, "error", err)
	}
}

func sanitizeFileName(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." || base == ".." {
		return "document.pdf"
	}
	return base
}
