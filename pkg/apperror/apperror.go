// Package apperror defines the error taxonomy shared by services and the HTTP
// boundary. Services return *Error values; the boundary calls From once to
// turn any error into a status code and a client-safe message.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
)

// SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

type Error struct {
	Kind    Kind
	Message string
	Errors  []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status maps the kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Validation reports malformed input together with per-field messages.
func Validation(errs []string) *Error {
	return &Error{Kind: KindValidation, Message: "Validation failed", Errors: errs}
}

// BadRequest reports input that is well formed but breaks a business rule.
func BadRequest(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal server error", Err: err}
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	if isUniqueViolation(err) {
		return KindConflict
	}
	return KindInternal
}

// From converts any error into an *Error. Unique-constraint violations raised
// by the database become conflicts named after the entity they hit.
func From(err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &Error{Kind: KindConflict, Message: uniqueViolationMessage(pgErr), Err: err}
	}

	return Internal(err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// Booking constraints mention the showtime column, so bookings are matched first.
func uniqueViolationMessage(pgErr *pgconn.PgError) string {
	subject := strings.ToLower(pgErr.ConstraintName + " " + pgErr.TableName + " " + pgErr.Message)

	switch {
	case strings.Contains(subject, "booking"):
		return "This seat is already booked for the selected showtime"
	case strings.Contains(subject, "movie"):
		return "A movie with this title already exists"
	case strings.Contains(subject, "showtime"):
		return "A showtime with these details already exists"
	default:
		return "A record with the same unique values already exists"
	}
}
