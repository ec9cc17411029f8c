package utils

import (
	"encoding/json"
	"net/http"
	"time"

	"movie-booking/pkg/apperror"
)

// TimestampLayout renders instants the way clients expect them:
// UTC with millisecond precision, e.g. 2025-02-14T11:47:46.125Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Timestamp  string   `json:"timestamp"`
	Path       string   `json:"path"`
	Errors     []string `json:"errors,omitempty"`
}

// ResponseJSON writes data as JSON with the given status code
func ResponseJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

// ------------- Success responses -------------

// returns 200 OK with a JSON body
func ResponseSuccess(w http.ResponseWriter, data any) {
	ResponseJSON(w, http.StatusOK, data)
}

// returns 200 OK with an empty body
func ResponseEmpty(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

// ------------- Error responses -------------

// ResponseError translates err and writes the error envelope.
func ResponseError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperror.From(err)

	ResponseJSON(w, appErr.Status(), ErrorResponse{
		StatusCode: appErr.Status(),
		Message:    appErr.Message,
		Timestamp:  time.Now().UTC().Format(TimestampLayout),
		Path:       r.URL.RequestURI(),
		Errors:     appErr.Errors,
	})
}

// ResponseStatus writes the error envelope for failures raised outside the
// services, such as routing misses and rate limiting.
func ResponseStatus(w http.ResponseWriter, r *http.Request, code int, message string) {
	ResponseJSON(w, code, ErrorResponse{
		StatusCode: code,
		Message:    message,
		Timestamp:  time.Now().UTC().Format(TimestampLayout),
		Path:       r.URL.RequestURI(),
	})
}

// returns 400 Bad Request with per-field messages
func ResponseValidationError(w http.ResponseWriter, r *http.Request, errors []string) {
	ResponseError(w, r, apperror.Validation(errors))
}
