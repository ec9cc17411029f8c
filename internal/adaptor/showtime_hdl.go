package adaptor

import (
	"net/http"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type ShowtimeHandler struct {
	service usecase.ShowtimeService
	log     *zap.Logger
}

func NewShowtimeHandler(service usecase.ShowtimeService, log *zap.Logger) *ShowtimeHandler {
	return &ShowtimeHandler{
		service: service,
		log:     log.With(zap.String("handler", "showtime")),
	}
}

// GetShowtime handles GET /showtimes/{id}
func (h *ShowtimeHandler) GetShowtime(w http.ResponseWriter, r *http.Request) {
	id, errs := parseID(r, "id")
	if errs != nil {
		utils.ResponseValidationError(w, r, errs)
		return
	}

	showtime, err := h.service.GetShowtime(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, h.log, err, "get showtime")
		return
	}

	utils.ResponseSuccess(w, showtime)
}

// CreateShowtime handles POST /showtimes
func (h *ShowtimeHandler) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	var req request.ShowtimeRequest
	if errs := utils.DecodeJSON(r, &req); errs != nil {
		utils.ResponseValidationError(w, r, errs)
		return
	}

	showtime, err := h.service.CreateShowtime(r.Context(), &req)
	if err != nil {
		handleServiceError(w, r, h.log, err, "create showtime")
		return
	}

	utils.ResponseSuccess(w, showtime)
}

// UpdateShowtime handles POST /showtimes/update/{id}
func (h *ShowtimeHandler) UpdateShowtime(w http.ResponseWriter, r *http.Request) {
	id, errs := parseID(r, "id")
	if errs != nil {
		utils.ResponseValidationError(w, r, errs)
		return
	}

	var req request.ShowtimeRequest
	if errs := utils.DecodeJSON(r, &req); errs != nil {
		utils.ResponseValidationError(w, r, errs)
		return
	}

	if err := h.service.UpdateShowtime(r.Context(), id, &req); err != nil {
		handleServiceError(w, r, h.log, err, "update showtime")
		return
	}

	utils.ResponseEmpty(w)
}

// DeleteShowtime handles DELETE /showtimes/{id}
func (h *ShowtimeHandler) DeleteShowtime(w http.ResponseWriter, r *http.Request) {
	id, errs := parseID(r, "id")
	if errs != nil {
		utils.ResponseValidationError(w, r, errs)
		return
	}

	if err := h.service.DeleteShowtime(r.Context(), id); err != nil {
		handleServiceError(w, r, h.log, err, "delete showtime")
		return
	}

	h.log.Info("Showtime deleted", zap.Int64("showtime_id", id))
	utils.ResponseEmpty(w)
}
