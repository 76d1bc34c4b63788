package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tecknovice/blogapi/internal/errs"
)

// JSON writes a JSON response with status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// JSONError writes {"error": "..."} with a given status.
func JSONError(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// DecodeJSON parses the JSON body into v and handles invalid JSON.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil {
		JSONError(w, http.StatusBadRequest, "empty request body")
		return http.ErrBodyNotAllowed
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		JSONError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return err
	}

	return nil
}

// Boundary messages. Unauthenticated and Forbidden are textually and
// status-code distinct, and neither reveals whether a resource exists.
const (
	MsgUnauthenticated = "You need to sign in before continuing."
	MsgForbidden       = "You are not authorized to perform this action"
)

// RespondError maps the service error taxonomy to a fixed status and
// body shape. Anything outside the taxonomy becomes an opaque 500.
func RespondError(w http.ResponseWriter, err error) {
	var ve *errs.ValidationError
	switch {
	case errors.As(err, &ve):
		JSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": ve.Fields})
	case errors.Is(err, errs.ErrInvalidCredentials):
		JSONError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, errs.ErrUnauthenticated):
		JSONError(w, http.StatusUnauthorized, MsgUnauthenticated)
	case errors.Is(err, errs.ErrForbidden):
		JSONError(w, http.StatusForbidden, MsgForbidden)
	case errors.Is(err, errs.ErrNotFound):
		JSONError(w, http.StatusNotFound, "Not found")
	default:
		JSONError(w, http.StatusInternalServerError, "internal error")
	}
}
