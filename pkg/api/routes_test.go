package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rulewatch/pkg/model"
	"rulewatch/pkg/store"
)

func TestHealthz(t *testing.T) {
	mux := http.NewServeMux()
	RegisterRoutes(mux, store.NewMemoryStore(), "")

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestVersionEndpoint(t *testing.T) {
	mux := http.NewServeMux()
	RegisterRoutes(mux, store.NewMemoryStore(), "")

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/version", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "dev", resp["build"])
}

func TestAuditEndpoint(t *testing.T) {
	st := store.NewMemoryStore()
	for i := 0; i < 3; i++ {
		require.NoError(t, st.AppendAudit(model.AuditEntry{
			Actor:     "alice",
			Action:    "annotation_upsert",
			Target:    "ann-1",
			Timestamp: time.Now(),
		}))
	}
	mux := http.NewServeMux()
	RegisterRoutes(mux, st, "tok")

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/audit", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/audit?limit=2", nil)
	req.Header.Set("X-Auth-Token", "tok")
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var entries []model.AuditEntry
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&entries))
	assert.Len(t, entries, 2)
}
