// Package repotest provides in-memory repositories that behave like the
// Postgres ones, including unique constraint violations.
package repotest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrInjected can be set on Store.Err to make every call fail.
var ErrInjected = errors.New("injected storage failure")

type Store struct {
	mu        sync.Mutex
	movies    map[int64]*entity.Movie
	showtimes map[int64]*entity.Showtime
	bookings  []*entity.Booking
	movieSeq  int64
	showSeq   int64

	Err error
}

func NewStore() *Store {
	return &Store{
		movies:    map[int64]*entity.Movie{},
		showtimes: map[int64]*entity.Showtime{},
	}
}

// Repository returns a repository.Repository backed by s.
func (s *Store) Repository() *repository.Repository {
	return &repository.Repository{
		Movie:    &movieRepo{s},
		Showtime: &showtimeRepo{s},
		Booking:  &bookingRepo{s},
	}
}

func (s *Store) Bookings() []entity.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, *b)
	}
	return out
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{
		Code:           "23505",
		Message:        "duplicate key value violates unique constraint",
		ConstraintName: constraint,
	}
}

type movieRepo struct{ s *Store }

func (r *movieRepo) titleTaken(title string, except int64) bool {
	for id, m := range r.s.movies {
		if id != except && m.Title == title {
			return true
		}
	}
	return false
}

func (r *movieRepo) Create(_ context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if r.titleTaken(movie.Title, 0) {
		return uniqueViolation("uq_movie_title")
	}
	r.s.movieSeq++
	movie.ID = r.s.movieSeq
	stored := *movie
	r.s.movies[movie.ID] = &stored
	return nil
}

func (r *movieRepo) FindAll(_ context.Context) ([]*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	movies := []*entity.Movie{}
	for _, m := range r.s.movies {
		c := *m
		movies = append(movies, &c)
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].ID < movies[j].ID })
	return movies, nil
}

func (r *movieRepo) FindByID(_ context.Context, id int64) (*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	m, ok := r.s.movies[id]
	if !ok {
		return nil, nil
	}
	c := *m
	return &c, nil
}

func (r *movieRepo) FindByTitle(_ context.Context, title string) (*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, m := range r.s.movies {
		if m.Title == title {
			c := *m
			return &c, nil
		}
	}
	return nil, nil
}

func (r *movieRepo) UpdateByTitle(_ context.Context, title string, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for id, m := range r.s.movies {
		if m.Title != title {
			continue
		}
		if r.titleTaken(movie.Title, id) {
			return uniqueViolation("uq_movie_title")
		}
		updated := *movie
		updated.ID = id
		r.s.movies[id] = &updated
		return nil
	}
	return fmt.Errorf("update movie %q: %w", title, repository.ErrNoRows)
}

func (r *movieRepo) DeleteByTitle(_ context.Context, title string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for id, m := range r.s.movies {
		if m.Title != title {
			continue
		}
		delete(r.s.movies, id)
		for sid, st := range r.s.showtimes {
			if st.MovieID == id {
				r.s.deleteShowtime(sid)
			}
		}
		return nil
	}
	return fmt.Errorf("delete movie %q: %w", title, repository.ErrNoRows)
}

// deleteShowtime cascades to bookings. Callers hold mu.
func (s *Store) deleteShowtime(id int64) {
	delete(s.showtimes, id)
	kept := s.bookings[:0]
	for _, b := range s.bookings {
		if b.ShowtimeID != id {
			kept = append(kept, b)
		}
	}
	s.bookings = kept
}

type showtimeRepo struct{ s *Store }

func (r *showtimeRepo) Create(_ context.Context, showtime *entity.Showtime) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	r.s.showSeq++
	showtime.ID = r.s.showSeq
	stored := *showtime
	r.s.showtimes[showtime.ID] = &stored
	return nil
}

func (r *showtimeRepo) FindByID(_ context.Context, id int64) (*entity.Showtime, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	st, ok := r.s.showtimes[id]
	if !ok {
		return nil, nil
	}
	c := *st
	return &c, nil
}

func (r *showtimeRepo) FindOverlapping(_ context.Context, theater string, start, end time.Time, excludeID int64) ([]*entity.Showtime, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	found := []*entity.Showtime{}
	for id, st := range r.s.showtimes {
		if id == excludeID || st.Theater != theater || !overlaps(st, start, end) {
			continue
		}
		c := *st
		found = append(found, &c)
	}
	sort.Slice(found, func(i, j int) bool { return found[i].StartTime.Before(found[j].StartTime) })
	return found, nil
}

// overlaps mirrors the SQL predicate: both bounds inclusive, so touching
// endpoints count.
func overlaps(st *entity.Showtime, start, end time.Time) bool {
	return !st.StartTime.After(end) && !st.EndTime.Before(start)
}

func (r *showtimeRepo) Update(_ context.Context, showtime *entity.Showtime) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.showtimes[showtime.ID]; !ok {
		return fmt.Errorf("update showtime %d: %w", showtime.ID, repository.ErrNoRows)
	}
	stored := *showtime
	r.s.showtimes[showtime.ID] = &stored
	return nil
}

func (r *showtimeRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.showtimes[id]; !ok {
		return fmt.Errorf("delete showtime %d: %w", id, repository.ErrNoRows)
	}
	r.s.deleteShowtime(id)
	return nil
}

type bookingRepo struct{ s *Store }

func (r *bookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for _, b := range r.s.bookings {
		if b.ShowtimeID == booking.ShowtimeID && b.SeatNumber == booking.SeatNumber {
			return uniqueViolation("uq_booking_showtime_seat")
		}
	}
	stored := *booking
	r.s.bookings = append(r.s.bookings, &stored)
	return nil
}

func (r *bookingRepo) FindBySeat(_ context.Context, showtimeID int64, seatNumber int) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, b := range r.s.bookings {
		if b.ShowtimeID == showtimeID && b.SeatNumber == seatNumber {
			c := *b
			return &c, nil
		}
	}
	return nil, nil
}
