package api

import (
	"encoding/json"
	"net/http"

	"github.com/hearthvale/house-ledger/app/shared/results"
)

type errorBody struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorBody{Error: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeResult maps an operation envelope to a response: infrastructure
// errors to 500, domain failures to 422, success payloads to 200.
func writeResult[S, F any](w http.ResponseWriter, res results.OperationResult[S, F], err error) {
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if res.IsFailure() {
		respondJSON(w, http.StatusUnprocessableEntity, res.Failure)
		return
	}
	respondJSON(w, http.StatusOK, res.Success)
}
