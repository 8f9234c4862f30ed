// Package store persists finished structured documents in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dmaycock/structdoc/internal/document"
)

// ErrNotFound is returned when a document ID has no stored row.
var ErrNotFound = errors.New("document not found")

// Store wraps the documents database.
type Store struct {
	db *sql.DB
}

// Meta is the stored per-document header row.
type Meta struct {
	DocID       string    `json:"doc_id"`
	Filename    string    `json:"filename"`
	Title       string    `json:"title"`
	TotalItems  int       `json:"total_items"`
	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Open opens (and creates if needed) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Single-writer workload; WAL keeps readers unblocked during writes.
	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	schema := `
		CREATE TABLE IF NOT EXISTS documents (
			doc_id       TEXT PRIMARY KEY,
			filename     TEXT NOT NULL,
			title        TEXT,
			total_items  INTEGER NOT NULL,
			content_hash TEXT NOT NULL DEFAULT '',
			created_at   INTEGER NOT NULL,
			payload      TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_documents_created ON documents(created_at);
		CREATE INDEX IF NOT EXISTS idx_documents_hash ON documents(content_hash);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Put stores a finished document, replacing any previous version.
func (s *Store) Put(ctx context.Context, meta Meta, doc *document.Document) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (doc_id, filename, title, total_items, content_hash, created_at, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(doc_id) DO UPDATE SET
			filename = excluded.filename,
			title = excluded.title,
			total_items = excluded.total_items,
			content_hash = excluded.content_hash,
			created_at = excluded.created_at,
			payload = excluded.payload`,
		meta.DocID, meta.Filename, meta.Title, doc.Metadata.TotalItems,
		meta.ContentHash, meta.CreatedAt.Unix(), string(payload))
	if err != nil {
		return fmt.Errorf("store document %s: %w", meta.DocID, err)
	}
	return nil
}

// Get loads a stored document and its header row.
func (s *Store) Get(ctx context.Context, docID string) (*document.Document, Meta, error) {
	var (
		meta    Meta
		created int64
		payload string
	)
	row := s.db.QueryRowContext(ctx, `
		SELECT doc_id, filename, title, total_items, content_hash, created_at, payload
		FROM documents WHERE doc_id = ?`, docID)
	if err := row.Scan(&meta.DocID, &meta.Filename, &meta.Title, &meta.TotalItems, &meta.ContentHash, &created, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, Meta{}, ErrNotFound
		}
		return nil, Meta{}, fmt.Errorf("load document %s: %w", docID, err)
	}
	meta.CreatedAt = time.Unix(created, 0).UTC()

	var doc document.Document
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, Meta{}, fmt.Errorf("unmarshal document %s: %w", docID, err)
	}
	return &doc, meta, nil
}

// List returns header rows for all stored documents, newest first.
func (s *Store) List(ctx context.Context) ([]Meta, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT doc_id, filename, title, total_items, content_hash, created_at
		FROM documents ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var metas []Meta
	for rows.Next() {
		var (
			meta    Meta
			created int64
		)
		if err := rows.Scan(&meta.DocID, &meta.Filename, &meta.Title, &meta.TotalItems, &meta.ContentHash, &created); err != nil {
			return nil, fmt.Errorf("scan document row: %w", err)
		}
		meta.CreatedAt = time.Unix(created, 0).UTC()
		metas = append(metas, meta)
	}
	return metas, rows.Err()
}

// FindByHash returns the ID of a stored document with the given content
// hash, or "" when none exists.
func (s *Store) FindByHash(ctx context.Context, hash string) (string, error) {
	if hash == "" {
		return "", nil
	}
	var docID string
	row := s.db.QueryRowContext(ctx,
		`SELECT doc_id FROM documents WHERE content_hash = ? LIMIT 1`, hash)
	if err := row.Scan(&docID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("hash lookup: %w", err)
	}
	return docID, nil
}

// Delete removes a stored document. Returns false when no row matched.
func (s *Store) Delete(ctx context.Context, docID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE doc_id = ?`, docID)
	if err != nil {
		return false, fmt.Errorf("delete document %s: %w", docID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
