package api

import (
	"encoding/json"
	"net/http"
	"time"

	"rulewatch/pkg/annotation"
	"rulewatch/pkg/auth"
	"rulewatch/pkg/model"
	"rulewatch/pkg/store"
)

// RegisterAnnotationRoutes exposes annotation search/upsert/delete.
func RegisterAnnotationRoutes(mux *http.ServeMux, svc *annotation.Service, st store.RecordStore, authed func(r *http.Request) bool) {
	mux.HandleFunc("/api/v1/annotations/_search", func(w http.ResponseWriter, r *http.Request) {
		if !authed(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req AnnotationSearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}
		if err := requestValidate.Struct(&req); err != nil {
			writeError(w, validationError(err))
			return
		}
		res, err := svc.Search(model.AnnotationSearch{
			JobIDs:         req.JobIDs,
			EarliestMs:     req.EarliestMs,
			LatestMs:       req.LatestMs,
			MaxAnnotations: req.MaxAnnotations,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	})

	mux.HandleFunc("/api/v1/annotations", func(w http.ResponseWriter, r *http.Request) {
		if !authed(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		switch r.Method {
		case http.MethodPut:
			var req AnnotationUpsertRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "invalid payload", http.StatusBadRequest)
				return
			}
			if err := requestValidate.Struct(&req); err != nil {
				writeError(w, validationError(err))
				return
			}
			var actor *string
			if claims := auth.ResolveUser(r); claims != nil {
				actor = &claims.Username
			}
			saved, err := svc.Upsert(model.Annotation{
				ID:        req.ID,
				JobID:     req.JobID,
				Text:      req.Text,
				Event:     req.Event,
				StartTime: req.StartTime,
				EndTime:   req.EndTime,
			}, actor)
			if err != nil {
				writeError(w, err)
				return
			}
			_ = st.AppendAudit(model.AuditEntry{
				Actor:     saved.ModifiedBy,
				Action:    "annotation_upsert",
				Target:    saved.ID,
				Detail:    "job " + saved.JobID,
				Timestamp: time.Now(),
			})
			writeJSON(w, http.StatusOK, saved)
		case http.MethodDelete:
			id := r.URL.Query().Get("id")
			if id == "" {
				http.Error(w, "id is required", http.StatusBadRequest)
				return
			}
			if err := svc.Delete(id); err != nil {
				writeError(w, err)
				return
			}
			_ = st.AppendAudit(model.AuditEntry{
				Actor:     actorName(r),
				Action:    "annotation_delete",
				Target:    id,
				Timestamp: time.Now(),
			})
			writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
}
