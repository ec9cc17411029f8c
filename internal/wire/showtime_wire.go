package wire

import (
	"net/http"

	"movie-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireShowtime(r chi.Router, showtimeHandler *adaptor.ShowtimeHandler, limit func(http.Handler) http.Handler) {
	r.Route("/showtimes", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(limit)

			r.Get("/{id}", showtimeHandler.GetShowtime)
			r.Post("/", showtimeHandler.CreateShowtime)
			r.Post("/update/{id}", showtimeHandler.UpdateShowtime)
			r.Delete("/{id}", showtimeHandler.DeleteShowtime)
		})
	})
}
