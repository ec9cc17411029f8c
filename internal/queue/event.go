// Package queue publishes booking domain events to RabbitMQ.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// BookingCreatedEvent is emitted once a booking row has been stored.
type BookingCreatedEvent struct {
	BookingID  uuid.UUID `json:"bookingId"`
	ShowtimeID int64     `json:"showtimeId"`
	SeatNumber int       `json:"seatNumber"`
	UserID     string    `json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
}
