package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rulewatch/pkg/httperr"
	"rulewatch/pkg/model"
)

func TestMemoryTopStatusesDescending(t *testing.T) {
	st := NewMemoryStore()
	base := time.Now()
	for i := 0; i < 8; i++ {
		require.NoError(t, st.AppendStatus(model.StatusRecord{
			RuleID:    "rule-1",
			Status:    model.StatusFailed,
			Message:   fmt.Sprintf("run %d", i),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	top, err := st.TopStatuses("rule-1", 6)
	require.NoError(t, err)
	require.Len(t, top, 6)
	assert.Equal(t, "run 7", top[0].Message)
	assert.Equal(t, "run 2", top[5].Message)
	for i := 1; i < len(top); i++ {
		assert.True(t, top[i].Timestamp.Before(top[i-1].Timestamp))
	}
}

func TestMemoryStatusHistoryCapped(t *testing.T) {
	st := NewMemoryStore()
	for i := 0; i < statusHistoryCap+20; i++ {
		require.NoError(t, st.AppendStatus(model.StatusRecord{RuleID: "rule-1", Status: model.StatusSucceeded}))
	}
	all, err := st.TopStatuses("rule-1", 0)
	require.NoError(t, err)
	assert.Len(t, all, statusHistoryCap)
}

func TestMemoryTopStatusesUnknownRule(t *testing.T) {
	st := NewMemoryStore()
	top, err := st.TopStatuses("missing", 6)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestMemoryAnnotationSearchFilters(t *testing.T) {
	st := NewMemoryStore()
	for i, jobID := range []string{"job-a", "job-a", "job-b", "job-c"} {
		_, err := st.UpsertAnnotation(model.Annotation{
			ID:        fmt.Sprintf("ann-%d", i),
			JobID:     jobID,
			Text:      "note",
			StartTime: int64(1000 * (i + 1)),
		})
		require.NoError(t, err)
	}

	out, err := st.SearchAnnotations(model.AnnotationSearch{JobIDs: []string{"job-a", "job-b"}})
	require.NoError(t, err)
	assert.Len(t, out, 3)

	out, err = st.SearchAnnotations(model.AnnotationSearch{
		JobIDs:     []string{"job-a", "job-b"},
		EarliestMs: 1500,
		LatestMs:   2500,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "ann-1", out[0].ID)

	out, err = st.SearchAnnotations(model.AnnotationSearch{JobIDs: []string{"job-a"}, MaxAnnotations: 1})
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestMemoryDeleteAnnotation(t *testing.T) {
	st := NewMemoryStore()
	_, err := st.UpsertAnnotation(model.Annotation{ID: "ann-1", JobID: "job-a", Text: "note"})
	require.NoError(t, err)

	require.NoError(t, st.DeleteAnnotation("ann-1"))
	assert.ErrorIs(t, st.DeleteAnnotation("ann-1"), httperr.ErrNotFound)
}

func TestMemoryAuditTail(t *testing.T) {
	st := NewMemoryStore()
	for i := 0; i < 5; i++ {
		require.NoError(t, st.AppendAudit(model.AuditEntry{Action: fmt.Sprintf("a%d", i)}))
	}
	entries, err := st.ListAudit(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a3", entries[0].Action)
	assert.Equal(t, "a4", entries[1].Action)
}
