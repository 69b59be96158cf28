package usecase

import (
	"context"
	"fmt"

	"github.com/inscribe-ai/docprocessor/internal/core/domain"
	"github.com/inscribe-ai/docprocessor/internal/core/ports"
)

// StatusUseCase assembles the polling view of a document: the lifecycle
// status always, joined with analysis results only once a terminal success
// status has been reached.
type StatusUseCase struct {
	repo     ports.DocumentRepository
	analyses ports.AnalysisRepository
}

func NewStatusUseCase(repo ports.DocumentRepository, analyses ports.AnalysisRepository) *StatusUseCase {
	return &StatusUseCase{repo: repo, analyses: analyses}
}

func (uc *StatusUseCase) Status(ctx context.Context, documentID string) (*domain.StatusView, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}

	view := &domain.StatusView{
		DocumentID: doc.ID,
		Status:     doc.Status,
		Error:      doc.Error,
	}

	if !doc.Status.IsTerminalSuccess() {
		return view, nil
	}

	analysis, err := uc.analyses.GetByDocumentID(ctx, documentID)
	if err != nil {
		// A terminal document without an analysis row is a transient
		// replication gap, not a client error; the bare status is
		// still a correct response.
		if domain.IsKind(err, domain.ErrDocumentNotFound) {
			return view, nil
		}
		return nil, fmt.Errorf("fetch analysis: %w", err)
	}

	view.Summary = analysis.Summary
	view.KeyFindings = analysis.KeyFindings
	view.QnAReady = analysis.QnAReady
	return view, nil
}
