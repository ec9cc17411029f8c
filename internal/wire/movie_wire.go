package wire

import (
	"net/http"

	"movie-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler, limit func(http.Handler) http.Handler) {
	r.Route("/movies", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(limit)

			r.Get("/all", movieHandler.GetMovies)
			r.Get("/{id}", movieHandler.GetMovieByID)
			r.Post("/", movieHandler.CreateMovie)
			// Titles are the update and delete key.
			r.Post("/update/{title}", movieHandler.UpdateMovie)
			r.Delete("/{title}", movieHandler.DeleteMovie)
		})
	})
}
