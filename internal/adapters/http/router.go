package httpadapter

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/inscribe-ai/docprocessor/internal/core/ports"
	"github.com/inscribe-ai/docprocessor/internal/observability/metrics"
)

const serviceName = "docprocessor-api"

type Router struct {
	uploader ports.DocumentIngestor
	status   ports.StatusReader
	query    ports.DocumentQueryService
	manager  ports.DocumentManager
	metrics  *metrics.HTTPServerMetrics

	rateLimitRPS   float64
	rateLimitBurst int
}

func NewRouter(
	uploader ports.DocumentIngestor,
	status ports.StatusReader,
	query ports.DocumentQueryService,
	manager ports.DocumentManager,
	m *metrics.HTTPServerMetrics,
	rateLimitRPS float64,
	rateLimitBurst int,
) *Router {
	return &Router{
		uploader:       uploader,
		status:         status,
		query:          query,
		manager:        manager,
		metrics:        m,
		rateLimitRPS:   rateLimitRPS,
		rateLimitBurst: rateLimitBurst,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.Handle("/metrics", rt.metrics.Handler())
	mux.HandleFunc("/upload-and-process-pdf/", rt.uploadDocument)
	mux.HandleFunc("/analysis-status/", rt.analysisStatus)
	mux.HandleFunc("/query-document/", rt.queryDocument)
	mux.HandleFunc("/rename-document/", rt.renameDocument)
	mux.HandleFunc("/delete-document/", rt.deleteDocument)

	var handler http.Handler = mux
	handler = rateLimitMiddleware(handler, rt.rateLimitRPS, rt.rateLimitBurst)
	handler = rt.metrics.Middleware(serviceName, handler)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	userID := strings.TrimSpace(r.FormValue("user_id"))
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "form field 'user_id' is required"})
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	if !isPDF(fileHeader.Header.Get("Content-Type")) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "only PDF files are accepted"})
		return
	}

	doc, err := rt.uploader.Upload(r.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	rt.metrics.RecordUpload(serviceName)

	writeJSON(w, http.StatusAccepted, map[string]string{
		"document_db_id": doc.ID,
		"file_name":      doc.FileName,
		"message":        "document accepted for processing",
	})
}

func (rt *Router) analysisStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/analysis-status/")
	if id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return
	}

	view, err := rt.status.Status(r.Context(), id)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	// Polling endpoint: stale cached statuses would freeze clients on an
	// intermediate state.
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	writeJSON(w, http.StatusOK, view)
}

func (rt *Router) queryDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/query-document/")
	if id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return
	}

	var req struct {
		QueryText string `json:"query_text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	start := time.Now()
	answer, err := rt.query.Answer(r.Context(), id, req.QueryText)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	rt.metrics.RecordQuery(serviceName, len(answer.Previews), time.Since(start))

	writeJSON(w, http.StatusOK, answer)
}

func (rt *Router) renameDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		ID      string `json:"id"`
		UserID  string `json:"user_id"`
		NewName string `json:"new_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.ID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id is required"})
		return
	}

	if err := rt.manager.Rename(r.Context(), req.ID, req.UserID, req.NewName); err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "document renamed"})
}

func (rt *Router) deleteDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		ID     string `json:"id"`
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.ID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id is required"})
		return
	}

	if err := rt.manager.Delete(r.Context(), req.ID, req.UserID); err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "document deleted"})
}

// isPDF requires the client to declare the PDF content type; an undeclared
// type is rejected rather than inferred from the filename.
func isPDF(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/pdf"
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
