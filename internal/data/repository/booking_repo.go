package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindBySeat(ctx context.Context, showtimeID int64, seatNumber int) (*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

// Create inserts booking with its caller-assigned ID. A seat taken
// concurrently surfaces as a uq_booking_showtime_seat violation.
func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (booking_id, showtime_id, seat_number, user_id)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.ShowtimeID,
		booking.SeatNumber,
		booking.UserID,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.Int64("showtime_id", booking.ShowtimeID),
			zap.Int("seat_number", booking.SeatNumber),
		)
		return fmt.Errorf("create booking for showtime %d seat %d: %w", booking.ShowtimeID, booking.SeatNumber, err)
	}

	return nil
}

func (r *bookingRepository) FindBySeat(ctx context.Context, showtimeID int64, seatNumber int) (*entity.Booking, error) {
	query := `
		SELECT booking_id, showtime_id, seat_number, user_id
		FROM bookings
		WHERE showtime_id = $1 AND seat_number = $2
	`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, showtimeID, seatNumber).Scan(
		&booking.ID,
		&booking.ShowtimeID,
		&booking.SeatNumber,
		&booking.UserID,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by seat",
			zap.Error(err),
			zap.Int64("showtime_id", showtimeID),
			zap.Int("seat_number", seatNumber),
		)
		return nil, fmt.Errorf("find booking for showtime %d seat %d: %w", showtimeID, seatNumber, err)
	}

	return &booking, nil
}
