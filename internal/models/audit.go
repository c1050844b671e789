package models

import "time"

// AuditEntry is one block of the session audit log
type AuditEntry struct {
	SessionID   string    // Identifies the panel session that produced the block
	Title       string    // Operation heading, e.g. "ALL FLIGHTS"
	Body        string    // Re-flowed text exactly as appended to the log file
	FlightCount int       // Number of flights listed in the block
	CreatedAt   time.Time // When the block was recorded
}
