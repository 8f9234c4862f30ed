package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmaycock/structdoc/internal/chunker"
	"github.com/dmaycock/structdoc/internal/document"
	"github.com/dmaycock/structdoc/internal/render"
	"github.com/dmaycock/structdoc/internal/store"
)

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	metas, err := s.store.List(r.Context())
	if err != nil {
		s.log.Error("list documents failed", "error", err)
		jsonError(w, "failed to list documents", http.StatusInternalServerError)
		return
	}
	if metas == nil {
		metas = []store.Meta{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"documents": metas,
		"count":     len(metas),
	})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, meta, ok := s.loadDocument(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"doc_id":   meta.DocID,
		"filename": meta.Filename,
		"title":    meta.Title,
		"document": doc,
	})
}

func (s *Server) handleDocumentSummary(w http.ResponseWriter, r *http.Request) {
	doc, meta, ok := s.loadDocument(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"doc_id":   meta.DocID,
		"metadata": doc.Metadata,
		"sections": doc.SectionSummary(),
	})
}

func (s *Server) handleDocumentSection(w http.ResponseWriter, r *http.Request) {
	doc, meta, ok := s.loadDocument(w, r)
	if !ok {
		return
	}
	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	filtered := doc.FilterBySection(name)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"doc_id":  meta.DocID,
		"section": name,
		"results": filtered,
	})
}

func (s *Server) handleDocumentChunks(w http.ResponseWriter, r *http.Request) {
	doc, meta, ok := s.loadDocument(w, r)
	if !ok {
		return
	}

	cfg := s.cfg.Chunk
	if v := r.URL.Query().Get("chunk_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ChunkSize = n
		}
	}
	if v := r.URL.Query().Get("overlap"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.ChunkOverlap = n
		}
	}

	chunks := chunker.ChunkDocument(doc, cfg)
	tokens := 0
	for _, c := range chunks {
		tokens += chunker.EstimateTokens(c.Text)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"doc_id":           meta.DocID,
		"chunks":           chunks,
		"count":            len(chunks),
		"estimated_tokens": tokens,
	})
}

func (s *Server) handleDocumentView(w http.ResponseWriter, r *http.Request) {
	doc, meta, ok := s.loadDocument(w, r)
	if !ok {
		return
	}
	title := meta.Title
	if title == "" {
		title = render.PageTitle(meta.Filename)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.WriteHTML(w, doc, title); err != nil {
		s.log.Error("render failed", "doc_id", meta.DocID, "error", err)
	}
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	deleted, err := s.store.Delete(r.Context(), docID)
	if err != nil {
		s.log.Error("delete document failed", "doc_id", docID, "error", err)
		jsonError(w, "failed to delete document", http.StatusInternalServerError)
		return
	}
	if !deleted {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"doc_id": docID, "deleted": true})
}

// loadDocument resolves the docID route param; on failure it writes the
// error response and returns ok=false.
func (s *Server) loadDocument(w http.ResponseWriter, r *http.Request) (*document.Document, store.Meta, bool) {
	docID := chi.URLParam(r, "docID")
	doc, meta, err := s.store.Get(r.Context(), docID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, "document not found", http.StatusNotFound)
			return nil, store.Meta{}, false
		}
		s.log.Error("load document failed", "doc_id", docID, "error", err)
		jsonError(w, "failed to load document", http.StatusInternalServerError)
		return nil, store.Meta{}, false
	}
	return doc, meta, true
}
