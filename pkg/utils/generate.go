package utils

import (
	"github.com/google/uuid"
)

// GenerateBookingID returns a random (v4) identifier for a new booking.
func GenerateBookingID() uuid.UUID {
	return uuid.New()
}
