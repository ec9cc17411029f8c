package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/internal/queue"
	"movie-booking/pkg/apperror"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req *request.BookingRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	showtimes ShowtimeService
	publisher queue.Publisher
	log       *zap.Logger
}

func NewBookingService(
	repo repository.BookingRepository,
	showtimes ShowtimeService,
	publisher queue.Publisher,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:      repo,
		showtimes: showtimes,
		publisher: publisher,
		log:       log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.BookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Strings("errors", errs))
		return nil, apperror.Validation(errs)
	}

	showtimeID, seat := *req.ShowtimeID, *req.SeatNumber

	if _, err := s.showtimes.GetShowtime(ctx, showtimeID); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindBySeat(ctx, showtimeID, seat)
	if err != nil {
		return nil, fmt.Errorf("check seat availability: %w", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("Seat %d is already booked for showtime %d", seat, showtimeID)
	}

	booking := &entity.Booking{
		ID:         utils.GenerateBookingID(),
		ShowtimeID: showtimeID,
		SeatNumber: seat,
		UserID:     req.UserID,
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.Int64("showtime_id", showtimeID),
		zap.Int("seat_number", seat),
	)

	event := queue.BookingCreatedEvent{
		BookingID:  booking.ID,
		ShowtimeID: booking.ShowtimeID,
		SeatNumber: booking.SeatNumber,
		UserID:     booking.UserID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.publisher.PublishBookingCreated(ctx, event); err != nil {
		s.log.Warn("Failed to publish booking event",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
	}

	return &response.BookingResponse{BookingID: booking.ID}, nil
}
