package response

import "github.com/google/uuid"

type BookingResponse struct {
	BookingID uuid.UUID `json:"bookingId"`
}
