package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"rulewatch/pkg/auth"
	"rulewatch/pkg/model"
	"rulewatch/pkg/status"
	"rulewatch/pkg/store"
)

// RegisterRuleRoutes exposes the rule-status lookup and ingestion endpoints.
func RegisterRuleRoutes(mux *http.ServeMux, st store.RecordStore, authed func(r *http.Request) bool, hub *WSHub) {
	mux.HandleFunc("/api/v1/rules/_find_statuses", func(w http.ResponseWriter, r *http.Request) {
		if !authed(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req FindStatusesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}
		if err := requestValidate.Struct(&req); err != nil {
			writeError(w, validationError(err))
			return
		}
		fetch := func(_ context.Context, ruleID string, n int) ([]model.StatusRecord, error) {
			return st.TopStatuses(ruleID, n)
		}
		resp, err := status.Aggregate(r.Context(), req.IDs, fetch)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	})

	mux.HandleFunc("/api/v1/rules/statuses", func(w http.ResponseWriter, r *http.Request) {
		if !authed(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req StatusReportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}
		if err := requestValidate.Struct(&req); err != nil {
			writeError(w, validationError(err))
			return
		}
		record := model.StatusRecord{
			RuleID:           req.RuleID,
			Status:           req.Status,
			Message:          req.Message,
			Gap:              req.Gap,
			SearchDurationMs: req.SearchDurationMs,
			IndexDurationMs:  req.IndexDurationMs,
			Timestamp:        time.Now(),
		}
		if err := st.AppendStatus(record); err != nil {
			writeError(w, err)
			return
		}
		_ = st.AppendAudit(model.AuditEntry{
			Actor:     actorName(r),
			Action:    "status_report",
			Target:    record.RuleID,
			Detail:    record.Status,
			Timestamp: record.Timestamp,
		})
		if hub != nil {
			hub.Broadcast(WSMessage{Type: "status", RuleID: record.RuleID, Payload: record})
		}
		log.Printf("status recorded rule=%s status=%s", record.RuleID, record.Status)
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

// actorName resolves the caller for audit purposes; token-only callers show
// up as the executor itself.
func actorName(r *http.Request) string {
	if claims := auth.ResolveUser(r); claims != nil {
		return claims.Username
	}
	return "executor"
}
