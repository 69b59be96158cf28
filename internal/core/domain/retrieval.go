package domain

// SearchFilter restricts similarity search to a single document. UserID is an
// opaque partition key matched by equality, not an identity check.
type SearchFilter struct {
	DocumentID string
	UserID     string
}

type RetrievedChunk struct {
	DocumentID string  `json:"document_id"`
	Text       string  `json:"chunk_text"`
	Order      int     `json:"chunk_order"`
	Score      float64 `json:"score"`
}

type Answer struct {
	Text     string   `json:"answer"`
	Previews []string `json:"relevant_chunks_preview,omitempty"`
}
