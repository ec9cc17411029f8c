package database

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
)

func TestSchemaDeclaresUniqueConstraints(t *testing.T) {
	for _, want := range []string{
		"CONSTRAINT uq_movie_title UNIQUE (title)",
		"CONSTRAINT uq_booking_showtime_seat UNIQUE (showtime_id, seat_number)",
		"REFERENCES movies (id)",
		"REFERENCES showtimes (id)",
	} {
		if !strings.Contains(schema, want) {
			t.Errorf("schema is missing %q", want)
		}
	}
}

func TestMigrate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS movies").
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

	if err := Migrate(context.Background(), mock); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestMigrateWrapsErrors(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	boom := errors.New("permission denied for schema public")
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS movies").WillReturnError(boom)

	err = Migrate(context.Background(), mock)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
}
