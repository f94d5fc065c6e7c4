package annotation

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"rulewatch/pkg/httperr"
	"rulewatch/pkg/model"
	"rulewatch/pkg/store"
)

// UnknownUser is recorded when the acting user cannot be resolved.
const UnknownUser = "<user unknown>"

// ErrFeatureUnavailable is returned when annotation storage has not been
// initialized or is not reachable for the requesting identity.
var ErrFeatureUnavailable = httperr.New(http.StatusBadRequest,
	"storage required for the annotations feature has not been created or is not accessible")

// Service handles annotation reads and writes against the record store.
type Service struct {
	Store store.RecordStore
}

func NewService(st store.RecordStore) *Service {
	return &Service{Store: st}
}

// SearchResult groups matching annotations by job ID.
type SearchResult struct {
	Annotations map[string][]model.Annotation `json:"annotations"`
	TotalCount  int                           `json:"totalCount"`
}

func (s *Service) Search(q model.AnnotationSearch) (SearchResult, error) {
	items, err := s.Store.SearchAnnotations(q)
	if err != nil {
		return SearchResult{}, httperr.Wrap(err, http.StatusInternalServerError)
	}
	res := SearchResult{Annotations: make(map[string][]model.Annotation), TotalCount: len(items)}
	for _, a := range items {
		res.Annotations[a.JobID] = append(res.Annotations[a.JobID], a)
	}
	return res, nil
}

// Upsert creates or updates an annotation. actor is the resolved username of
// the caller; nil records the unknown-user sentinel instead of failing.
func (s *Service) Upsert(a model.Annotation, actor *string) (model.Annotation, error) {
	if err := s.checkAvailable(); err != nil {
		return model.Annotation{}, err
	}
	username := UnknownUser
	if actor != nil {
		username = *actor
	}
	now := time.Now()
	if a.ID == "" {
		a.ID = uuid.NewString()
		a.CreatedBy = username
		a.CreatedAt = now
	} else if existing, ok, err := s.Store.GetAnnotation(a.ID); err != nil {
		return model.Annotation{}, httperr.Wrap(err, http.StatusInternalServerError)
	} else if ok {
		a.CreatedBy = existing.CreatedBy
		a.CreatedAt = existing.CreatedAt
	} else {
		a.CreatedBy = username
		a.CreatedAt = now
	}
	a.ModifiedBy = username
	a.ModifiedAt = now
	saved, err := s.Store.UpsertAnnotation(a)
	if err != nil {
		return model.Annotation{}, httperr.Wrap(err, http.StatusInternalServerError)
	}
	return saved, nil
}

func (s *Service) Delete(id string) error {
	if err := s.checkAvailable(); err != nil {
		return err
	}
	if err := s.Store.DeleteAnnotation(id); err != nil {
		return httperr.Wrap(err, http.StatusInternalServerError)
	}
	return nil
}

func (s *Service) checkAvailable() error {
	ok, err := s.Store.AnnotationsReady()
	if err != nil || !ok {
		return ErrFeatureUnavailable
	}
	return nil
}
