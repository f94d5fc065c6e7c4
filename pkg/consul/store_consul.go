//go:build consul

package consul

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	consulapi "github.com/hashicorp/consul/api"

	"rulewatch/pkg/httperr"
	"rulewatch/pkg/model"
)

// Store is a Consul KV backed RecordStore implementation.
type Store struct {
	cli *consulapi.Client
}

const (
	statusPrefix     = "rulewatch/statuses/"
	annotationPrefix = "rulewatch/annotations/"
	auditPrefix      = "rulewatch/audit/"
)

func NewStore(addr string) *Store {
	cfg := consulapi.DefaultConfig()
	if addr != "" {
		cfg.Address = addr
	}
	cli, _ := consulapi.NewClient(cfg) // ignore error for build; runtime will report
	return &Store{cli: cli}
}

func (s *Store) AppendStatus(r model.StatusRecord) error {
	if s.cli == nil {
		return fmt.Errorf("consul client not configured")
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("%s%s/%d", statusPrefix, r.RuleID, r.Timestamp.UnixNano())
	_, err = s.cli.KV().Put(&consulapi.KVPair{Key: key, Value: b}, nil)
	return err
}

func (s *Store) TopStatuses(ruleID string, limit int) ([]model.StatusRecord, error) {
	if s.cli == nil {
		return nil, fmt.Errorf("consul client not configured")
	}
	pairs, _, err := s.cli.KV().List(statusPrefix+ruleID+"/", nil)
	if err != nil {
		return nil, err
	}
	var out []model.StatusRecord
	for _, p := range pairs {
		var r model.StatusRecord
		if err := json.Unmarshal(p.Value, &r); err == nil {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) SearchAnnotations(q model.AnnotationSearch) ([]model.Annotation, error) {
	if s.cli == nil {
		return nil, fmt.Errorf("consul client not configured")
	}
	pairs, _, err := s.cli.KV().List(annotationPrefix, nil)
	if err != nil {
		return nil, err
	}
	jobs := make(map[string]bool, len(q.JobIDs))
	for _, id := range q.JobIDs {
		jobs[id] = true
	}
	var out []model.Annotation
	for _, p := range pairs {
		var a model.Annotation
		if err := json.Unmarshal(p.Value, &a); err != nil {
			continue
		}
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

func (s *Store) GetAnnotation(id string) (model.Annotation, bool, error) {
	if s.cli == nil {
		return model.Annotation{}, false, fmt.Errorf("consul client not configured")
	}
	kv, _, err := s.cli.KV().Get(annotationPrefix+id, nil)
	if err != nil || kv == nil {
		return model.Annotation{}, false, err
	}
	var a model.Annotation
	if err := json.Unmarshal(kv.Value, &a); err != nil {
		return model.Annotation{}, false, err
	}
	return a, true, nil
}

func (s *Store) UpsertAnnotation(a model.Annotation) (model.Annotation, error) {
	if s.cli == nil {
		return a, fmt.Errorf("consul client not configured")
	}
	b, err := json.Marshal(a)
	if err != nil {
		return a, err
	}
	_, err = s.cli.KV().Put(&consulapi.KVPair{Key: annotationPrefix + a.ID, Value: b}, nil)
	return a, err
}

func (s *Store) DeleteAnnotation(id string) error {
	if s.cli == nil {
		return fmt.Errorf("consul client not configured")
	}
	kv, _, err := s.cli.KV().Get(annotationPrefix+id, nil)
	if err != nil {
		return err
	}
	if kv == nil {
		return httperr.ErrNotFound
	}
	_, err = s.cli.KV().Delete(annotationPrefix+id, nil)
	return err
}

// AnnotationsReady probes the annotation prefix; an unreachable Consul means
// the feature is unavailable.
func (s *Store) AnnotationsReady() (bool, error) {
	if s.cli == nil {
		return false, fmt.Errorf("consul client not configured")
	}
	_, _, err := s.cli.KV().List(annotationPrefix, nil)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) AppendAudit(entry model.AuditEntry) error {
	if s.cli == nil {
		return fmt.Errorf("consul client not configured")
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	b, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("%s%d-%s", auditPrefix, entry.Timestamp.UnixNano(), entry.Target)
	_, err = s.cli.KV().Put(&consulapi.KVPair{Key: key, Value: b}, nil)
	return err
}

func (s *Store) ListAudit(limit int) ([]model.AuditEntry, error) {
	if s.cli == nil {
		return nil, fmt.Errorf("consul client not configured")
	}
	pairs, _, err := s.cli.KV().List(auditPrefix, nil)
	if err != nil {
		return nil, err
	}
	var out []model.AuditEntry
	for _, p := range pairs {
		var e model.AuditEntry
		if err := json.Unmarshal(p.Value, &e); err == nil {
			out = append(out, e)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (s *Store) Ping() error {
	if s.cli == nil {
		return fmt.Errorf("consul client not configured")
	}
	_, err := s.cli.Status().Leader()
	return err
}
