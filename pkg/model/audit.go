package model

import "time"

// AuditEntry captures a write operation against the console API.
type AuditEntry struct {
	Actor     string    `json:"actor"`
	Action    string    `json:"action"` // annotation_upsert/annotation_delete/status_report
	Target    string    `json:"target"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
