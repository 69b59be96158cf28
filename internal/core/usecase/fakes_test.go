package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/inscribe-ai/docprocessor/internal/core/domain"
)

type statusChange struct {
	status domain.DocumentStatus
	errMsg string
}

type fakeDocumentRepo struct {
	docs          map[string]*domain.Document
	statusChanges []statusChange

	createErr error
	getErr    error
	updateErr func(status domain.DocumentStatus) error
	renameErr error
	deleteErr error

	renamed map[string]string
	deleted []string
}

func newFakeDocumentRepo(docs ...*domain.Document) *fakeDocumentRepo {
	r := &fakeDocumentRepo{docs: make(map[string]*domain.Document), renamed: make(map[string]string)}
	for _, d := range docs {
		r.docs[d.ID] = d
	}
	return r
}

func (r *fakeDocumentRepo) Create(_ context.Context, doc *domain.Document) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeDocumentRepo) GetByID(_ context.Context, id string) (*domain.Document, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	doc, ok := r.docs[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrDocumentNotFound, "fetch document", fmt.Errorf("id %s", id))
	}
	return doc, nil
}

func (r *fakeDocumentRepo) UpdateStatus(_ context.Context, id string, status domain.DocumentStatus, errMessage string) error {
	if r.updateErr != nil {
		if err := r.updateErr(status); err != nil {
			return err
		}
	}
	r.statusChanges = append(r.statusChanges, statusChange{status: status, errMsg: errMessage})
	if doc, ok := r.docs[id]; ok {
		doc.Status = status
		doc.Error = errMessage
	}
	return nil
}

func (r *fakeDocumentRepo) Rename(_ context.Context, id, userID, newName string) error {
	if r.renameErr != nil {
		return r.renameErr
	}
	doc, ok := r.docs[id]
	if !ok || doc.UserID != userID {
		return domain.WrapError(domain.ErrDocumentNotFound, "rename document", fmt.Errorf("id %s", id))
	}
	doc.FileName = newName
	r.renamed[id] = newName
	return nil
}

func (r *fakeDocumentRepo) Delete(_ context.Context, id, userID string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	doc, ok := r.docs[id]
	if !ok || doc.UserID != userID {
		return domain.WrapError(domain.ErrDocumentNotFound, "delete document", fmt.Errorf("id %s", id))
	}
	delete(r.docs, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeAnalysisRepo struct {
	analyses map[string]*domain.Analysis

	insertErr error
	getErr    error
	deleteErr error

	inserted []*domain.Analysis
	deleted  []string
}

func newFakeAnalysisRepo(analyses ...*domain.Analysis) *fakeAnalysisRepo {
	r := &fakeAnalysisRepo{analyses: make(map[string]*domain.Analysis)}
	for _, a := range analyses {
		r.analyses[a.DocumentID] = a
	}
	return r
}

func (r *fakeAnalysisRepo) Insert(_ context.Context, analysis *domain.Analysis) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.analyses[analysis.DocumentID] = analysis
	r.inserted = append(r.inserted, analysis)
	return nil
}

func (r *fakeAnalysisRepo) GetByDocumentID(_ context.Context, documentID string) (*domain.Analysis, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	analysis, ok := r.analyses[documentID]
	if !ok {
		return nil, domain.WrapError(domain.ErrDocumentNotFound, "fetch analysis", fmt.Errorf("document %s", documentID))
	}
	return analysis, nil
}

func (r *fakeAnalysisRepo) DeleteByDocument(_ context.Context, documentID, _ string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.analyses, documentID)
	r.deleted = append(r.deleted, documentID)
	return nil
}

type fakeStorage struct {
	saved   map[string][]byte
	removed []string

	saveErr   error
	removeErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{saved: make(map[string][]byte)}
}

func (s *fakeStorage) Save(_ context.Context, key string, data io.Reader) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	s.saved[key] = raw
	return nil
}

func (s *fakeStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	raw, ok := s.saved[key]
	if !ok {
		return nil, fmt.Errorf("no object %s", key)
	}
	return io.NopCloser(bytes.NewReader(raw)), nil
}

func (s *fakeStorage) Remove(_ context.Context, key string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	s.removed = append(s.removed, key)
	delete(s.saved, key)
	return nil
}

type fakeQueue struct {
	published  []string
	publishErr error
}

func (q *fakeQueue) PublishDocumentUploaded(_ context.Context, documentID string) error {
	if q.publishErr != nil {
		return q.publishErr
	}
	q.published = append(q.published, documentID)
	return nil
}

func (q *fakeQueue) SubscribeDocumentUploaded(context.Context, func(context.Context, string) error) error {
	return nil
}

type fakeExtractor struct {
	text  string
	pages int
	err   error
}

func (e *fakeExtractor) Extract(context.Context, string) (string, int, error) {
	return e.text, e.pages, e.err
}

type fakeSummarizer struct {
	summary string
	err     error
	calls   int
}

func (s *fakeSummarizer) Summarize(context.Context, string) (string, error) {
	s.calls++
	return s.summary, s.err
}

type fakeIndexer struct {
	ready bool
	err   error
	calls int
}

func (i *fakeIndexer) Index(context.Context, *domain.Document, string) (bool, error) {
	i.calls++
	return i.ready, i.err
}

type fakeEmbedder struct {
	batchFn  func(texts []string) ([][]float32, error)
	queryVec []float32
	queryErr error

	batchCalls [][]string
	queries    []string
}

func (e *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	e.batchCalls = append(e.batchCalls, texts)
	if e.batchFn != nil {
		return e.batchFn(texts)
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{float32(i)}
	}
	return vectors, nil
}

func (e *fakeEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	e.queries = append(e.queries, text)
	if e.queryErr != nil {
		return nil, e.queryErr
	}
	return e.queryVec, nil
}

type chatCall struct {
	system string
	user   string
}

type fakeChatModel struct {
	replyFn func(call chatCall) (string, error)
	calls   []chatCall
}

func (c *fakeChatModel) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	call := chatCall{system: systemPrompt, user: userPrompt}
	c.calls = append(c.calls, call)
	if c.replyFn != nil {
		return c.replyFn(call)
	}
	return "ok", nil
}

type fakeChunker struct {
	chunks []string
}

func (c *fakeChunker) Split(string) []string {
	return c.chunks
}

type indexedBatch struct {
	doc     *domain.Document
	chunks  []string
	vectors [][]float32
}

type fakeChunkStore struct {
	indexed  []indexedBatch
	indexErr error

	searchHits []domain.RetrievedChunk
	searchErr  error
	searches   []domain.SearchFilter

	deleted   []string
	deleteErr error
}

func (s *fakeChunkStore) IndexChunks(_ context.Context, doc *domain.Document, chunks []string, vectors [][]float32) error {
	if s.indexErr != nil {
		return s.indexErr
	}
	s.indexed = append(s.indexed, indexedBatch{doc: doc, chunks: chunks, vectors: vectors})
	return nil
}

func (s *fakeChunkStore) Search(_ context.Context, _ []float32, _ int, _ float64, filter domain.SearchFilter) ([]domain.RetrievedChunk, error) {
	s.searches = append(s.searches, filter)
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return s.searchHits, nil
}

func (s *fakeChunkStore) DeleteByDocument(_ context.Context, documentID, _ string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, documentID)
	return nil
}
