package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/inscribe-ai/docprocessor/internal/core/domain"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

func (r *AnalysisRepository) Insert(ctx context.Context, analysis *domain.Analysis) error {
	var findings any
	if analysis.KeyFindings != nil {
		raw, err := json.Marshal(analysis.KeyFindings)
		if err != nil {
			return fmt.Errorf("marshal key findings: %w", err)
		}
		findings = raw
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO document_analyses (document_id, user_id, summary_short, key_findings, qna_ready, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`,
		analysis.DocumentID, analysis.UserID, analysis.Summary, findings, analysis.QnAReady, analysis.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

func (r *AnalysisRepository) GetByDocumentID(ctx context.Context, documentID string) (*domain.Analysis, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT document_id, user_id, summary_short, key_findings, qna_ready, created_at
FROM document_analyses
WHERE document_id = $1
`, documentID)

	var analysis domain.Analysis
	var findingsRaw []byte

	err := row.Scan(
		&analysis.DocumentID, &analysis.UserID, &analysis.Summary, &findingsRaw, &analysis.QnAReady, &analysis.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDocumentNotFound, "fetch analysis", err)
		}
		return nil, fmt.Errorf("scan analysis: %w", err)
	}

	if len(findingsRaw) > 0 {
		if err := json.Unmarshal(findingsRaw, &analysis.KeyFindings); err != nil {
			return nil, fmt.Errorf("unmarshal key findings: %w", err)
		}
	}
	return &analysis, nil
}

// DeleteByDocument removes the analysis row scoped to (document_id, user_id).
// Zero affected rows is not an error: a document that never reached the
// summarize stage has no analysis to delete.
func (r *AnalysisRepository) DeleteByDocument(ctx context.Context, documentID, userID string) error {
	_, err := r.db.ExecContext(ctx, `
DELETE FROM document_analyses
WHERE document_id = $1 AND user_id = $2
`, documentID, userID)
	if err != nil {
		return fmt.Errorf("delete analysis: %w", err)
	}
	return nil
}
