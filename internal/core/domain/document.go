package domain

import "time"

type DocumentStatus string

const (
	StatusUploaded        DocumentStatus = "uploaded"
	StatusParsing         DocumentStatus = "parsing"
	StatusAnalyzing       DocumentStatus = "analyzing"
	StatusCompleted       DocumentStatus = "completed"
	StatusCompletedNoQnA  DocumentStatus = "completed_no_qna"
	StatusCompletedErrors DocumentStatus = "completed_with_errors"
	StatusFailed          DocumentStatus = "failed"
)

// IsTerminalSuccess reports whether analysis fields may be exposed for this
// status. While a run is still advancing, the analysis row may not exist or
// may be stale, so the status view joins it only on the completed variants.
func (s DocumentStatus) IsTerminalSuccess() bool {
	switch s {
	case StatusCompleted, StatusCompletedNoQnA, StatusCompletedErrors:
		return true
	default:
		return false
	}
}

type Document struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	FileName    string         `json:"file_name"`
	StoragePath string         `json:"storage_path"`
	Status      DocumentStatus `json:"processing_status"`
	Error       string         `json:"error_message,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Analysis is the zero-or-one summarization result per document. Its
// existence implies the summarizer stage completed; QnAReady implies the
// embedding stage reported success (possibly trivially, with zero chunks).
type Analysis struct {
	DocumentID  string    `json:"document_id"`
	UserID      string    `json:"user_id"`
	Summary     string    `json:"summary_short"`
	KeyFindings []string  `json:"key_findings,omitempty"`
	QnAReady    bool      `json:"qna_ready"`
	CreatedAt   time.Time `json:"created_at"`
}

// StatusView is the polling read model for a document.
type StatusView struct {
	DocumentID  string         `json:"document_db_id"`
	Status      DocumentStatus `json:"status"`
	Summary     string         `json:"summary_short,omitempty"`
	KeyFindings []string       `json:"key_findings,omitempty"`
	Error       string         `json:"error_message,omitempty"`
	QnAReady    bool           `json:"qna_ready"`
}
