package adaptor

import (
	"net/http"
	"net/url"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetMovies handles GET /movies/all
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.GetMovies(r.Context())
	if err != nil {
		handleServiceError(w, r, h.log, err, "get movies")
		return
	}

	utils.ResponseSuccess(w, movies)
}

// GetMovieByID handles GET /movies/{id}
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	id, errs := parseID(r, "id")
	if errs != nil {
		utils.ResponseValidationError(w, r, errs)
		return
	}

	movie, err := h.service.GetMovie(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, h.log, err, "get movie")
		return
	}

	utils.ResponseSuccess(w, movie)
}

// CreateMovie handles POST /movies
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest
	if errs := utils.DecodeJSON(r, &req); errs != nil {
		utils.ResponseValidationError(w, r, errs)
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), &req)
	if err != nil {
		handleServiceError(w, r, h.log, err, "create movie")
		return
	}

	utils.ResponseSuccess(w, movie)
}

// UpdateMovie handles POST /movies/update/{title}
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	title, ok := titleParam(w, r)
	if !ok {
		return
	}

	var req request.MovieRequest
	if errs := utils.DecodeJSON(r, &req); errs != nil {
		utils.ResponseValidationError(w, r, errs)
		return
	}

	if err := h.service.UpdateMovie(r.Context(), title, &req); err != nil {
		handleServiceError(w, r, h.log, err, "update movie")
		return
	}

	utils.ResponseEmpty(w)
}

// DeleteMovie handles DELETE /movies/{title}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	title, ok := titleParam(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteMovie(r.Context(), title); err != nil {
		handleServiceError(w, r, h.log, err, "delete movie")
		return
	}

	h.log.Info("Movie deleted", zap.String("title", title))
	utils.ResponseEmpty(w)
}

// titleParam returns the decoded {title} path segment. chi routes on
// URL.RawPath when it is set, which leaves the segment percent-encoded.
func titleParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	title, err := url.PathUnescape(chi.URLParam(r, "title"))
	if err != nil || title == "" {
		utils.ResponseValidationError(w, r, []string{"title: title is not a valid path segment"})
		return "", false
	}
	return title, true
}
