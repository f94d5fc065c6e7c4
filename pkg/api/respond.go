package api

import (
	"encoding/json"
	"log"
	"net/http"

	"rulewatch/pkg/httperr"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

// writeError serializes any failure as {message, status_code} using the
// central classification in pkg/httperr.
func writeError(w http.ResponseWriter, err error) {
	he := httperr.Wrap(err, http.StatusInternalServerError)
	writeJSON(w, he.StatusCode, he)
}

// validationError turns a failed schema check into a client-visible 400.
func validationError(err error) error {
	return httperr.New(http.StatusBadRequest, err.Error())
}
