package httpx

import (
	"encoding/json"
	"net/http"

	apperr "github.com/campusmatch/backend/internal/errors"
)

// WriteJSON serializes v with the given status. Encoding failures are
// unrecoverable at this point; the header is already out.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps err through the error taxonomy and writes the standard
// {"message": ...} failure body.
func WriteError(w http.ResponseWriter, err error) {
	mapped := apperr.Map(err)
	WriteJSON(w, apperr.Status(mapped), map[string]string{"message": mapped.Error()})
}

// DecodeJSON parses the request body into v.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Invalid("invalid request body")
	}
	return nil
}
