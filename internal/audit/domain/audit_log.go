package domain

import "time"

// AuditLog is one recorded security-relevant event (registration, login,
// claim creation). Rows are written best-effort and never read on a request
// path; they exist for the out-of-band administrative process.
type AuditLog struct {
	ID        string
	UserID    string // empty for events with no resolved user (e.g. failed login)
	Action    string
	Resource  string
	IP        string
	Metadata  string
	CreatedAt time.Time
}
