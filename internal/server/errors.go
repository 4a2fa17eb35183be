package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	perrors "github.com/matzehuels/pseudoloc/pkg/errors"
)

// errorBody is the JSON error envelope.
type errorBody struct {
	Code    perrors.Code `json:"code"`
	Message string       `json:"message"`
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}

	switch perrors.GetCode(err) {
	case perrors.ErrCodeInvalidDocument:
		return http.StatusUnprocessableEntity
	case perrors.ErrCodeInvalidInput, perrors.ErrCodeInvalidTransform, perrors.ErrCodeInvalidFormat,
		perrors.ErrCodeInvalidCulture, perrors.ErrCodeInvalidConfig, perrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case perrors.ErrCodeNotFound, perrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case perrors.ErrCodeUnsupported:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err as a JSON error envelope. Uncoded errors and
// internal failures are reported without their details.
func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	body := errorBody{Code: perrors.GetCode(err), Message: perrors.UserMessage(err)}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		body.Code = perrors.ErrCodeInvalidInput
	case status == http.StatusServiceUnavailable:
		body.Code = perrors.ErrCodeInternal
		body.Message = "request cancelled"
	case status == http.StatusInternalServerError:
		body.Code = perrors.ErrCodeInternal
		body.Message = "internal server error"
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errNotFound(r *http.Request) error {
	return perrors.New(perrors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path)
}

func errMethodNotAllowed(r *http.Request) error {
	return perrors.New(perrors.ErrCodeUnsupported, "method %s not allowed for %s", r.Method, r.URL.Path)
}
