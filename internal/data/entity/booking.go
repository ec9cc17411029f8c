package entity

import (
	"github.com/google/uuid"
)

type Booking struct {
	ID         uuid.UUID `db:"booking_id"`
	ShowtimeID int64     `db:"showtime_id"`
	SeatNumber int       `db:"seat_number"`
	UserID     string    `db:"user_id"`
}
