package wire

import (
	"net/http"

	"movie-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, limit func(http.Handler) http.Handler) {
	// POST /bookings - reserve a seat for a showtime
	r.With(limit).Post("/bookings", bookingHandler.CreateBooking)
}
