package annotation

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rulewatch/pkg/httperr"
	"rulewatch/pkg/model"
	"rulewatch/pkg/store"
)

// brokenStore wraps the memory store so individual operations can be failed.
type brokenStore struct {
	store.RecordStore
	notReady  bool
	searchErr error
}

func (b *brokenStore) AnnotationsReady() (bool, error) {
	if b.notReady {
		return false, nil
	}
	return b.RecordStore.AnnotationsReady()
}

func (b *brokenStore) SearchAnnotations(q model.AnnotationSearch) ([]model.Annotation, error) {
	if b.searchErr != nil {
		return nil, b.searchErr
	}
	return b.RecordStore.SearchAnnotations(q)
}

func strptr(s string) *string { return &s }

func TestUpsertFeatureUnavailable(t *testing.T) {
	svc := NewService(&brokenStore{RecordStore: store.NewMemoryStore(), notReady: true})

	_, err := svc.Upsert(model.Annotation{JobID: "job-a", Text: "note", StartTime: 1000}, strptr("alice"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFeatureUnavailable)
	assert.Equal(t, http.StatusBadRequest, httperr.Wrap(err, 0).StatusCode)

	// content is irrelevant; the check fires first
	_, err = svc.Upsert(model.Annotation{}, nil)
	assert.ErrorIs(t, err, ErrFeatureUnavailable)

	assert.ErrorIs(t, svc.Delete("ann-1"), ErrFeatureUnavailable)
}

func TestUpsertUnknownUserSentinel(t *testing.T) {
	svc := NewService(store.NewMemoryStore())

	saved, err := svc.Upsert(model.Annotation{JobID: "job-a", Text: "note", StartTime: 1000}, nil)
	require.NoError(t, err)
	assert.Equal(t, UnknownUser, saved.CreatedBy)
	assert.Equal(t, UnknownUser, saved.ModifiedBy)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())
}

func TestUpsertPreservesCreator(t *testing.T) {
	svc := NewService(store.NewMemoryStore())

	saved, err := svc.Upsert(model.Annotation{JobID: "job-a", Text: "v1", StartTime: 1000}, strptr("alice"))
	require.NoError(t, err)

	saved.Text = "v2"
	updated, err := svc.Upsert(saved, strptr("bob"))
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)
	assert.Equal(t, "alice", updated.CreatedBy)
	assert.Equal(t, "bob", updated.ModifiedBy)
	assert.Equal(t, saved.CreatedAt, updated.CreatedAt)
}

func TestSearchGroupsByJob(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewService(st)
	for i, jobID := range []string{"job-a", "job-a", "job-b"} {
		_, err := svc.Upsert(model.Annotation{JobID: jobID, Text: "note", StartTime: int64(1000 * (i + 1))}, strptr("alice"))
		require.NoError(t, err)
	}

	res, err := svc.Search(model.AnnotationSearch{JobIDs: []string{"job-a", "job-b", "job-c"}})
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalCount)
	assert.Len(t, res.Annotations["job-a"], 2)
	assert.Len(t, res.Annotations["job-b"], 1)
	assert.NotContains(t, res.Annotations, "job-c")
}

func TestSearchDelegateErrorWrapped(t *testing.T) {
	svc := NewService(&brokenStore{
		RecordStore: store.NewMemoryStore(),
		searchErr:   errors.New("backend timeout"),
	})
	_, err := svc.Search(model.AnnotationSearch{JobIDs: []string{"job-a"}})
	require.Error(t, err)
	he := httperr.Wrap(err, 0)
	assert.Equal(t, http.StatusInternalServerError, he.StatusCode)
	assert.Equal(t, "backend timeout", he.Message)
}

func TestDeleteUnknownAnnotation(t *testing.T) {
	svc := NewService(store.NewMemoryStore())
	err := svc.Delete("nope")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httperr.Wrap(err, 0).StatusCode)
}
