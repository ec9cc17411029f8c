package usecase

import (
	"movie-booking/internal/data/repository"
	"movie-booking/internal/queue"

	"go.uber.org/zap"
)

type Service struct {
	Movie    MovieService
	Showtime ShowtimeService
	Booking  BookingService
}

func NewService(repo *repository.Repository, publisher queue.Publisher, log *zap.Logger) *Service {
	movie := NewMovieService(repo.Movie, log)
	showtime := NewShowtimeService(repo.Showtime, movie, log)

	return &Service{
		Movie:    movie,
		Showtime: showtime,
		Booking:  NewBookingService(repo.Booking, showtime, publisher, log),
	}
}
