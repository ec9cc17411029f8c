package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"movie-booking/internal/data/repository/repotest"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/queue"
	"movie-booking/pkg/apperror"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingPublisher struct {
	events []queue.BookingCreatedEvent
	err    error
}

func (p *recordingPublisher) PublishBookingCreated(_ context.Context, event queue.BookingCreatedEvent) error {
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func intPtr(v int) *int { return &v }

func int64Ptr(v int64) *int64 { return &v }

func floatPtr(v float64) *float64 { return &v }

func newStack() (*Service, *repotest.Store, *recordingPublisher) {
	store := repotest.NewStore()
	pub := &recordingPublisher{}
	return NewService(store.Repository(), pub, zap.NewNop()), store, pub
}

func movieReq(title string) *request.MovieRequest {
	return &request.MovieRequest{
		Title:       title,
		Genre:       "Comedy",
		Duration:    intPtr(90),
		Rating:      floatPtr(7.5),
		ReleaseYear: intPtr(2024),
	}
}

func showtimeReq(movieID int64, theater, start, end string) *request.ShowtimeRequest {
	return &request.ShowtimeRequest{
		MovieID:   int64Ptr(movieID),
		Price:     floatPtr(20.2),
		Theater:   theater,
		StartTime: start,
		EndTime:   end,
	}
}

func assertKind(t *testing.T, err error, want apperror.Kind) *apperror.Error {
	t.Helper()
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("err = %v, want *apperror.Error", err)
	}
	if appErr.Kind != want {
		t.Fatalf("kind = %v, want %v (%v)", appErr.Kind, want, err)
	}
	return appErr
}

func TestCreateMovieAssignsIDAndRejectsDuplicates(t *testing.T) {
	svc, _, _ := newStack()
	ctx := context.Background()

	movie, err := svc.Movie.CreateMovie(ctx, movieReq("New Movie"))
	if err != nil {
		t.Fatal(err)
	}
	if movie.ID == 0 || movie.Title != "New Movie" || movie.Duration != 90 {
		t.Errorf("movie = %+v", movie)
	}

	_, err = svc.Movie.CreateMovie(ctx, movieReq("New Movie"))
	appErr := assertKind(t, err, apperror.KindConflict)
	if appErr.Message != `Movie with title "New Movie" already exists` {
		t.Errorf("message = %q", appErr.Message)
	}
}

func TestCreateMovieValidation(t *testing.T) {
	svc, _, _ := newStack()

	req := movieReq("")
	req.Rating = floatPtr(11)
	_, err := svc.Movie.CreateMovie(context.Background(), req)
	appErr := assertKind(t, err, apperror.KindValidation)
	if len(appErr.Errors) != 2 {
		t.Errorf("errors = %v", appErr.Errors)
	}
}

func TestGetMoviesOrderedByID(t *testing.T) {
	svc, _, _ := newStack()
	ctx := context.Background()

	empty, err := svc.Movie.GetMovies(ctx)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("got (%v, %v), want empty list", empty, err)
	}

	for _, title := range []string{"B", "A", "C"} {
		if _, err := svc.Movie.CreateMovie(ctx, movieReq(title)); err != nil {
			t.Fatal(err)
		}
	}
	movies, err := svc.Movie.GetMovies(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(movies) != 3 || movies[0].Title != "B" || movies[2].Title != "C" {
		t.Errorf("movies = %+v", movies)
	}

	_, err = svc.Movie.GetMovie(ctx, 42)
	appErr := assertKind(t, err, apperror.KindNotFound)
	if appErr.Message != "Movie with ID 42 not found" {
		t.Errorf("message = %q", appErr.Message)
	}
}

func TestUpdateMovie(t *testing.T) {
	svc, _, _ := newStack()
	ctx := context.Background()

	if _, err := svc.Movie.CreateMovie(ctx, movieReq("Old")); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Movie.CreateMovie(ctx, movieReq("Taken")); err != nil {
		t.Fatal(err)
	}

	err := svc.Movie.UpdateMovie(ctx, "Missing", movieReq("Anything"))
	appErr := assertKind(t, err, apperror.KindNotFound)
	if appErr.Message != "Movie with title Missing not found" {
		t.Errorf("message = %q", appErr.Message)
	}

	assertKind(t, svc.Movie.UpdateMovie(ctx, "Old", movieReq("Taken")), apperror.KindConflict)

	same := movieReq("Old")
	same.Genre = "Drama"
	if err := svc.Movie.UpdateMovie(ctx, "Old", same); err != nil {
		t.Fatalf("update keeping title: %v", err)
	}

	if err := svc.Movie.UpdateMovie(ctx, "Old", movieReq("Renamed")); err != nil {
		t.Fatal(err)
	}
	movie, err := svc.Movie.GetMovie(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if movie.Title != "Renamed" || movie.Genre != "Comedy" {
		t.Errorf("movie = %+v", movie)
	}
}

func TestDeleteMovie(t *testing.T) {
	svc, _, _ := newStack()
	ctx := context.Background()

	assertKind(t, svc.Movie.DeleteMovie(ctx, "Nope"), apperror.KindNotFound)

	if _, err := svc.Movie.CreateMovie(ctx, movieReq("Gone")); err != nil {
		t.Fatal(err)
	}
	if err := svc.Movie.DeleteMovie(ctx, "Gone"); err != nil {
		t.Fatal(err)
	}
	assertKind(t, svc.Movie.DeleteMovie(ctx, "Gone"), apperror.KindNotFound)
}

func TestCreateShowtimeRules(t *testing.T) {
	svc, _, _ := newStack()
	ctx := context.Background()

	movie, err := svc.Movie.CreateMovie(ctx, movieReq("New Movie"))
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.Showtime.CreateShowtime(ctx, showtimeReq(99, "Theater 1", "2025-02-14T11:00:00Z", "2025-02-14T13:00:00Z"))
	appErr := assertKind(t, err, apperror.KindNotFound)
	if appErr.Message != "Movie with ID 99 not found" {
		t.Errorf("message = %q", appErr.Message)
	}

	_, err = svc.Showtime.CreateShowtime(ctx, showtimeReq(movie.ID, "Theater 1", "2025-02-14T13:00:00Z", "2025-02-14T13:00:00Z"))
	appErr = assertKind(t, err, apperror.KindValidation)
	if appErr.Message != "End time must be after start time" {
		t.Errorf("message = %q", appErr.Message)
	}

	first, err := svc.Showtime.CreateShowtime(ctx, showtimeReq(movie.ID, "Theater 1", "2025-02-14T11:47:46.125Z", "2025-02-14T14:47:46.125Z"))
	if err != nil {
		t.Fatal(err)
	}
	if first.StartTime != "2025-02-14T11:47:46.125Z" || first.Price != 20.2 {
		t.Errorf("showtime = %+v", first)
	}

	// Touching the end of the first showtime still counts as an overlap.
	_, err = svc.Showtime.CreateShowtime(ctx, showtimeReq(movie.ID, "Theater 1", "2025-02-14T14:47:46.125Z", "2025-02-14T16:00:00Z"))
	appErr = assertKind(t, err, apperror.KindValidation)
	if appErr.Message != "There is already a showtime in theater Theater 1 during this time period" {
		t.Errorf("message = %q", appErr.Message)
	}

	// Ending exactly when the first showtime starts collides as well.
	_, err = svc.Showtime.CreateShowtime(ctx, showtimeReq(movie.ID, "Theater 1", "2025-02-14T10:00:00Z", "2025-02-14T11:47:46.125Z"))
	assertKind(t, err, apperror.KindValidation)

	if _, err := svc.Showtime.CreateShowtime(ctx, showtimeReq(movie.ID, "Theater 1", "2025-02-14T10:00:00Z", "2025-02-14T11:47:46.124Z")); err != nil {
		t.Errorf("showtime ending a millisecond early rejected: %v", err)
	}

	if _, err := svc.Showtime.CreateShowtime(ctx, showtimeReq(movie.ID, "Theater 2", "2025-02-14T12:00:00Z", "2025-02-14T13:00:00Z")); err != nil {
		t.Errorf("other theater rejected: %v", err)
	}
	if _, err := svc.Showtime.CreateShowtime(ctx, showtimeReq(movie.ID, "Theater 1", "2025-02-14T17:00:00+01:00", "2025-02-14T18:00:00+01:00")); err != nil {
		t.Errorf("later showtime rejected: %v", err)
	}
}

func TestCreateShowtimeRejectsInvalidDates(t *testing.T) {
	svc, _, _ := newStack()

	_, err := svc.Showtime.CreateShowtime(context.Background(), showtimeReq(1, "Theater 1", "2025-02-14", "2025-13-40T10:00:00Z"))
	appErr := assertKind(t, err, apperror.KindValidation)
	if len(appErr.Errors) != 1 || !strings.HasPrefix(appErr.Errors[0], "startTime:") {
		t.Errorf("errors = %v", appErr.Errors)
	}

	_, err = svc.Showtime.CreateShowtime(context.Background(), showtimeReq(1, "Theater 1", "2025-02-14T10:00:00Z", "2025-13-40T10:00:00Z"))
	appErr = assertKind(t, err, apperror.KindValidation)
	if len(appErr.Errors) != 1 || !strings.HasPrefix(appErr.Errors[0], "endTime:") {
		t.Errorf("errors = %v", appErr.Errors)
	}
}

func TestUpdateShowtimeExcludesItself(t *testing.T) {
	svc, _, _ := newStack()
	ctx := context.Background()

	movie, _ := svc.Movie.CreateMovie(ctx, movieReq("New Movie"))
	first, err := svc.Showtime.CreateShowtime(ctx, showtimeReq(movie.ID, "Theater 1", "2025-02-14T10:00:00Z", "2025-02-14T12:00:00Z"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Showtime.CreateShowtime(ctx, showtimeReq(movie.ID, "Theater 1", "2025-02-14T13:00:00Z", "2025-02-14T15:00:00Z"))
	if err != nil {
		t.Fatal(err)
	}

	shifted := showtimeReq(movie.ID, "Theater 1", "2025-02-14T10:30:00Z", "2025-02-14T12:30:00Z")
	if err := svc.Showtime.UpdateShowtime(ctx, first.ID, shifted); err != nil {
		t.Fatalf("shifting within own slot: %v", err)
	}

	clash := showtimeReq(movie.ID, "Theater 1", "2025-02-14T11:00:00Z", "2025-02-14T13:30:00Z")
	assertKind(t, svc.Showtime.UpdateShowtime(ctx, second.ID, clash), apperror.KindValidation)

	appErr := assertKind(t, svc.Showtime.UpdateShowtime(ctx, 77, shifted), apperror.KindNotFound)
	if appErr.Message != "Showtime with ID 77 not found" {
		t.Errorf("message = %q", appErr.Message)
	}

	assertKind(t, svc.Showtime.UpdateShowtime(ctx, first.ID, showtimeReq(99, "Theater 1", "2025-02-14T10:00:00Z", "2025-02-14T11:00:00Z")), apperror.KindNotFound)

	got, err := svc.Showtime.GetShowtime(ctx, first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.StartTime != "2025-02-14T10:30:00.000Z" {
		t.Errorf("start = %q", got.StartTime)
	}
}

func TestDeleteShowtime(t *testing.T) {
	svc, _, _ := newStack()
	ctx := context.Background()

	assertKind(t, svc.Showtime.DeleteShowtime(ctx, 1), apperror.KindNotFound)

	movie, _ := svc.Movie.CreateMovie(ctx, movieReq("New Movie"))
	st, err := svc.Showtime.CreateShowtime(ctx, showtimeReq(movie.ID, "Theater 1", "2025-02-14T10:00:00Z", "2025-02-14T12:00:00Z"))
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Showtime.DeleteShowtime(ctx, st.ID); err != nil {
		t.Fatal(err)
	}
	assertKind(t, svc.Showtime.DeleteShowtime(ctx, st.ID), apperror.KindNotFound)
}

func TestCreateBooking(t *testing.T) {
	svc, store, pub := newStack()
	ctx := context.Background()

	_, err := svc.Booking.CreateBooking(ctx, &request.BookingRequest{ShowtimeID: int64Ptr(5), SeatNumber: intPtr(1), UserID: "u1"})
	appErr := assertKind(t, err, apperror.KindNotFound)
	if appErr.Message != "Showtime with ID 5 not found" {
		t.Errorf("message = %q", appErr.Message)
	}

	movie, _ := svc.Movie.CreateMovie(ctx, movieReq("New Movie"))
	st, err := svc.Showtime.CreateShowtime(ctx, showtimeReq(movie.ID, "Theater 1", "2025-02-14T10:00:00Z", "2025-02-14T12:00:00Z"))
	if err != nil {
		t.Fatal(err)
	}

	booking, err := svc.Booking.CreateBooking(ctx, &request.BookingRequest{ShowtimeID: int64Ptr(st.ID), SeatNumber: intPtr(15), UserID: "u1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(pub.events) != 1 || pub.events[0].BookingID != booking.BookingID || pub.events[0].SeatNumber != 15 {
		t.Errorf("events = %+v", pub.events)
	}

	_, err = svc.Booking.CreateBooking(ctx, &request.BookingRequest{ShowtimeID: int64Ptr(st.ID), SeatNumber: intPtr(15), UserID: "u2"})
	appErr = assertKind(t, err, apperror.KindConflict)
	if !strings.Contains(appErr.Message, "already booked") {
		t.Errorf("message = %q", appErr.Message)
	}

	if _, err := svc.Booking.CreateBooking(ctx, &request.BookingRequest{ShowtimeID: int64Ptr(st.ID), SeatNumber: intPtr(16), UserID: "u2"}); err != nil {
		t.Fatal(err)
	}
	other, err := svc.Showtime.CreateShowtime(ctx, showtimeReq(movie.ID, "Theater 2", "2025-02-14T10:00:00Z", "2025-02-14T12:00:00Z"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Booking.CreateBooking(ctx, &request.BookingRequest{ShowtimeID: int64Ptr(other.ID), SeatNumber: intPtr(15), UserID: "u2"}); err != nil {
		t.Fatalf("same seat on another showtime: %v", err)
	}

	if n := len(store.Bookings()); n != 3 {
		t.Errorf("stored %d bookings, want 3", n)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	svc, _, _ := newStack()

	_, err := svc.Booking.CreateBooking(context.Background(), &request.BookingRequest{ShowtimeID: int64Ptr(1), SeatNumber: intPtr(0)})
	appErr := assertKind(t, err, apperror.KindValidation)
	if len(appErr.Errors) != 2 {
		t.Errorf("errors = %v", appErr.Errors)
	}
}

func TestCreateBookingSurvivesPublishFailure(t *testing.T) {
	store := repotest.NewStore()
	pub := &recordingPublisher{err: errors.New("channel closed")}
	core, logs := observer.New(zap.WarnLevel)
	svc := NewService(store.Repository(), pub, zap.New(core))
	ctx := context.Background()

	movie, _ := svc.Movie.CreateMovie(ctx, movieReq("New Movie"))
	st, err := svc.Showtime.CreateShowtime(ctx, showtimeReq(movie.ID, "Theater 1", "2025-02-14T10:00:00Z", "2025-02-14T12:00:00Z"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Booking.CreateBooking(ctx, &request.BookingRequest{ShowtimeID: int64Ptr(st.ID), SeatNumber: intPtr(1), UserID: "u1"}); err != nil {
		t.Fatalf("publish failure leaked: %v", err)
	}
	if logs.FilterMessage("Failed to publish booking event").Len() != 1 {
		t.Error("publish failure was not logged")
	}
}

func TestStorageFailureIsNotDomainError(t *testing.T) {
	svc, store, _ := newStack()
	store.Err = repotest.ErrInjected

	_, err := svc.Movie.GetMovies(context.Background())
	if !errors.Is(err, repotest.ErrInjected) {
		t.Fatalf("err = %v", err)
	}
	if apperror.KindOf(err) != apperror.KindInternal {
		t.Errorf("kind = %v, want internal", apperror.KindOf(err))
	}
}
