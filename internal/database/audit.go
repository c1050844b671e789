package database

import (
	"database/sql"
	"fmt"

	"flight_panel/internal/models"
)

type AuditRepository interface {
	InsertBatch(entries []*models.AuditEntry) error
	ListBySession(sessionID string) ([]*models.AuditEntry, error)
}

type auditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) AuditRepository {
	return &auditRepository{db: db}
}

// InsertBatch inserts one or more audit entries in a single transaction
func (r *auditRepository) InsertBatch(entries []*models.AuditEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO audit_entries (
		session_id, title, body, flight_count, created_at
	) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(
			e.SessionID,
			e.Title,
			e.Body,
			e.FlightCount,
			e.CreatedAt.UTC(),
		); err != nil {
			return fmt.Errorf("failed to insert audit entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListBySession returns a session's entries in the order they were recorded
func (r *auditRepository) ListBySession(sessionID string) ([]*models.AuditEntry, error) {
	rows, err := r.db.Query(`SELECT session_id, title, body, flight_count, created_at
		FROM audit_entries WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.AuditEntry
	for rows.Next() {
		e := &models.AuditEntry{}
		if err := rows.Scan(&e.SessionID, &e.Title, &e.Body, &e.FlightCount, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit entries: %w", err)
	}

	return entries, nil
}
