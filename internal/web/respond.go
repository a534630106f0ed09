package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"taskdeck/internal/backend"
)

type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
	Detail  string            `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// writeError maps backend errors to the wire shapes clients rely on:
// 400 with per-field messages, 404, 409 on version conflicts, 500 with
// the underlying error string otherwise.
func writeError(w http.ResponseWriter, err error) {
	var ve *backend.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: "validation failed", Errors: ve.Fields})
		return
	}
	var nf *backend.NotFoundError
	if errors.As(err, &nf) {
		writeJSON(w, http.StatusNotFound, errorBody{Message: nf.Error()})
		return
	}
	if errors.Is(err, backend.ErrVersionConflict) {
		writeJSON(w, http.StatusConflict, errorBody{Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorBody{Message: "internal server error", Detail: err.Error()})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Message: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return false
	}
	return true
}
