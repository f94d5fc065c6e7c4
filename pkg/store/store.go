package store

import "rulewatch/pkg/model"

// RecordStore defines the persistence layer for rule statuses, annotations
// and the audit trail. Backed by memory, sqlite or Consul KV.
type RecordStore interface {
	AppendStatus(model.StatusRecord) error
	TopStatuses(ruleID string, limit int) ([]model.StatusRecord, error)
	SearchAnnotations(model.AnnotationSearch) ([]model.Annotation, error)
	GetAnnotation(id string) (model.Annotation, bool, error)
	UpsertAnnotation(model.Annotation) (model.Annotation, error)
	DeleteAnnotation(id string) error
	AnnotationsReady() (bool, error)
	AppendAudit(model.AuditEntry) error
	ListAudit(limit int) ([]model.AuditEntry, error)
	Ping() error
}

// NewMemory is a helper to construct the in-memory implementation without importing it directly.
func NewMemory() RecordStore {
	return NewMemoryStore()
}
