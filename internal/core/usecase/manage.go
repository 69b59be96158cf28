package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/inscribe-ai/docprocessor/internal/core/domain"
	"github.com/inscribe-ai/docprocessor/internal/core/ports"
)

// ManageDocumentUseCase covers owner-scoped mutations on stored documents:
// renaming and full deletion including derived data.
type ManageDocumentUseCase struct {
	repo       ports.DocumentRepository
	analyses   ports.AnalysisRepository
	chunkStore ports.ChunkStore
}

func NewManageDocumentUseCase(
	repo ports.DocumentRepository,
	analyses ports.AnalysisRepository,
	chunkStore ports.ChunkStore,
) *ManageDocumentUseCase {
	return &ManageDocumentUseCase{repo: repo, analyses: analyses, chunkStore: chunkStore}
}

func (uc *ManageDocumentUseCase) Rename(ctx context.Context, documentID, userID, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return domain.WrapError(domain.ErrInvalidInput, "rename document", fmt.Errorf("new name is empty"))
	}
	if userID == "" {
		return domain.WrapError(domain.ErrInvalidInput, "rename document", fmt.Errorf("user id is empty"))
	}
	if err := uc.repo.Rename(ctx, documentID, userID, newName); err != nil {
		return fmt.Errorf("rename document: %w", err)
	}
	return nil
}

// Delete removes derived data before the parent row so that a partial
// failure leaves the document visible rather than orphaning chunks or
// analyses behind a deleted parent.
func (uc *ManageDocumentUseCase) Delete(ctx context.Context, documentID, userID string) error {
	if userID == "" {
		return domain.WrapError(domain.ErrInvalidInput, "delete document", fmt.Errorf("user id is empty"))
	}
	if _, err := uc.repo.GetByID(ctx, documentID); err != nil {
		return fmt.Errorf("fetch document: %w", err)
	}
	if err := uc.chunkStore.DeleteByDocument(ctx, documentID, userID); err != nil {
		return fmt.Errorf("delete chunks: %w", err)
	}
	if err := uc.analyses.DeleteByDocument(ctx, documentID, userID); err != nil {
		return fmt.Errorf("delete analysis: %w", err)
	}
	if err := uc.repo.Delete(ctx, documentID, userID); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}
