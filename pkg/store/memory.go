package store

import (
	"sort"
	"sync"
	"time"

	"rulewatch/pkg/httperr"
	"rulewatch/pkg/model"
)

// statusHistoryCap bounds the per-rule history kept in memory.
const statusHistoryCap = 50

// MemoryStore is a simple in-memory implementation, intended for dev/demo.
type MemoryStore struct {
	mu          sync.RWMutex
	statuses    map[string][]model.StatusRecord // ruleID -> ascending by insert time
	annotations map[string]model.Annotation
	audit       []model.AuditEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		statuses:    make(map[string][]model.StatusRecord),
		annotations: make(map[string]model.Annotation),
	}
}

func (m *MemoryStore) AppendStatus(r model.StatusRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}
	list := append(m.statuses[r.RuleID], r)
	if len(list) > statusHistoryCap {
		list = list[len(list)-statusHistoryCap:]
	}
	m.statuses[r.RuleID] = list
	return nil
}

func (m *MemoryStore) TopStatuses(ruleID string, limit int) ([]model.StatusRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	hist := m.statuses[ruleID]
	out := append([]model.StatusRecord(nil), hist...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) SearchAnnotations(q model.AnnotationSearch) ([]model.Annotation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	jobs := make(map[string]bool, len(q.JobIDs))
	for _, id := range q.JobIDs {
		jobs[id] = true
	}
	var out []model.Annotation
	for _, a := range m.annotations {
		if len(jobs) > 0 && !jobs[a.JobID] {
			continue
		}
		if q.EarliestMs > 0 && a.StartTime < q.EarliestMs {
			continue
		}
		if q.LatestMs > 0 && a.StartTime > q.LatestMs {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	if q.MaxAnnotations > 0 && len(out) > q.MaxAnnotations {
		out = out[:q.MaxAnnotations]
	}
	return out, nil
}

func (m *MemoryStore) GetAnnotation(id string) (model.Annotation, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.annotations[id]
	return a, ok, nil
}

func (m *MemoryStore) UpsertAnnotation(a model.Annotation) (model.Annotation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.annotations[a.ID] = a
	return a, nil
}

func (m *MemoryStore) DeleteAnnotation(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.annotations[id]; !ok {
		return httperr.ErrNotFound
	}
	delete(m.annotations, id)
	return nil
}

// AnnotationsReady always holds for the memory store; the maps are created up front.
func (m *MemoryStore) AnnotationsReady() (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.annotations != nil, nil
}

func (m *MemoryStore) AppendAudit(entry model.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.audit = append(m.audit, entry)
	return nil
}

func (m *MemoryStore) ListAudit(limit int) ([]model.AuditEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if limit <= 0 || limit > len(m.audit) {
		limit = len(m.audit)
	}
	out := make([]model.AuditEntry, 0, limit)
	start := len(m.audit) - limit
	for i := start; i < len(m.audit); i++ {
		out = append(out, m.audit[i])
	}
	return out, nil
}

// Ping reports readiness for health/info endpoints.
func (m *MemoryStore) Ping() error { return nil }
