// Package store persists generated instance documents so the result
// page can re-serve downloads. Only serialized output is stored; the
// in-memory instance itself is discarded after generation.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Record is one generated document with its validation outcome.
type Record struct {
	ID            int64     `json:"id"`
	EntityID      string    `json:"entityId"`
	Regulation    string    `json:"regulation"`
	Perspective   string    `json:"perspective"`
	ReportingDate string    `json:"reportingDate"`
	Filename      string    `json:"filename"`
	Document      string    `json:"-"`
	Valid         bool      `json:"isValid"`
	Errors        []string  `json:"errors,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// DB wraps a SQLite connection holding the document history.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at path and initializes tables.
func New(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.createTables(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) createTables() error {
	documentsSQL := `
		CREATE TABLE IF NOT EXISTS documents (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			entity_id TEXT NOT NULL,
			regulation TEXT NOT NULL,
			perspective TEXT NOT NULL,
			reporting_date TEXT NOT NULL,
			filename TEXT NOT NULL,
			document BLOB NOT NULL,
			valid INTEGER NOT NULL,
			errors BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
	if _, err := db.conn.Exec(documentsSQL); err != nil {
		return fmt.Errorf("failed to create documents table: %w", err)
	}

	indexSQL := `CREATE INDEX IF NOT EXISTS idx_documents_entity ON documents(entity_id);`
	if _, err := db.conn.Exec(indexSQL); err != nil {
		return fmt.Errorf("failed to create entity index: %w", err)
	}

	return nil
}

// StoreDocument inserts a generated document and returns its id.
func (db *DB) StoreDocument(rec *Record) (int64, error) {
	errsJSON, err := json.Marshal(rec.Errors)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal validation errors: %w", err)
	}

	query := `
		INSERT INTO documents (entity_id, regulation, perspective, reporting_date, filename, document, valid, errors)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	res, err := db.conn.Exec(query,
		rec.EntityID, rec.Regulation, rec.Perspective, rec.ReportingDate,
		rec.Filename, []byte(rec.Document), rec.Valid, errsJSON)
	if err != nil {
		return 0, fmt.Errorf("failed to store document: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}
	rec.ID = id
	return id, nil
}

// GetDocument retrieves one stored document by id.
func (db *DB) GetDocument(id int64) (*Record, error) {
	query := `
		SELECT id, entity_id, regulation, perspective, reporting_date, filename, document, valid, errors, created_at
		FROM documents WHERE id = ?
	`
	rec, err := scanRecord(db.conn.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("document %d not found", id)
		}
		return nil, fmt.Errorf("failed to query document: %w", err)
	}
	return rec, nil
}

// ListDocuments returns the most recent documents, newest first.
func (db *DB) ListDocuments(limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, entity_id, regulation, perspective, reporting_date, filename, document, valid, errors, created_at
		FROM documents ORDER BY created_at DESC, id DESC LIMIT ?
	`
	rows, err := db.conn.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*Record, error) {
	var rec Record
	var document, errsJSON []byte
	if err := s.Scan(&rec.ID, &rec.EntityID, &rec.Regulation, &rec.Perspective,
		&rec.ReportingDate, &rec.Filename, &document, &rec.Valid, &errsJSON, &rec.CreatedAt); err != nil {
		return nil, err
	}
	rec.Document = string(document)
	if err := json.Unmarshal(errsJSON, &rec.Errors); err != nil {
		return nil, fmt.Errorf("failed to unmarshal validation errors: %w", err)
	}
	return &rec, nil
}
