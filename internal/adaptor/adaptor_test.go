package adaptor

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"movie-booking/pkg/apperror"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		path    string
		want    int64
		wantErr bool
	}{
		{"/showtimes/42", 42, false},
		{"/showtimes/abc", 0, true},
		{"/showtimes/0", 0, true},
		{"/showtimes/-3", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var (
				got  int64
				errs []string
			)
			r := chi.NewRouter()
			r.Get("/showtimes/{id}", func(w http.ResponseWriter, req *http.Request) {
				got, errs = parseID(req, "id")
			})
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			if (errs != nil) != tt.wantErr || got != tt.want {
				t.Errorf("got (%d, %v), want %d (err %v)", got, errs, tt.want, tt.wantErr)
			}
		})
	}
}

func TestHandleServiceErrorStatus(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		want  int
		level string
	}{
		{"not found", apperror.NotFound("Movie with ID %d not found", 1), http.StatusNotFound, "warn"},
		{"business rule", apperror.BadRequest("End time must be after start time"), http.StatusBadRequest, "warn"},
		{"seat race", &pgconn.PgError{Code: "23505", ConstraintName: "uq_booking_showtime_seat"}, http.StatusConflict, "warn"},
		{"storage", errors.New("connection refused"), http.StatusInternalServerError, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.DebugLevel)
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/bookings", nil)

			handleServiceError(w, r, zap.New(core), tt.err, "create booking")

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
			entries := logs.All()
			if len(entries) != 1 || entries[0].Level.String() != tt.level {
				t.Errorf("log entries = %v", entries)
			}
		})
	}
}
