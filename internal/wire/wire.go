package wire

import (
	"net/http"

	"movie-booking/internal/adaptor"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/queue"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/middleware"
	"movie-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// App holds the wired HTTP stack.
type App struct {
	Router  *chi.Mux
	Handler http.Handler
}

// Wiring builds services, handlers and the router. rdb may be nil when rate
// limiting is disabled.
func Wiring(
	repo *repository.Repository,
	publisher queue.Publisher,
	rdb *redis.Client,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, publisher, logger)
	handler := adaptor.NewHandler(service, logger)

	limit := middleware.RateLimit(config.RateLimit, rdb, logger)
	router := setupRouter(handler, limit, logger)

	var h http.Handler = router
	if config.Tracing.Enabled {
		h = otelhttp.NewHandler(router, config.App.Name)
	}

	return &App{
		Router:  router,
		Handler: h,
	}
}

// setupRouter mounts every resource. limit is applied per resource inside
// its routes, after chi has matched the full pattern.
func setupRouter(
	handler *adaptor.Handler,
	limit func(http.Handler) http.Handler,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		utils.ResponseStatus(w, req, http.StatusNotFound, "Cannot "+req.Method+" "+req.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		utils.ResponseStatus(w, req, http.StatusMethodNotAllowed, "Method not allowed")
	})

	wireMovie(r, handler.Movie, limit)
	wireShowtime(r, handler.Showtime, limit)
	wireBooking(r, handler.Booking, limit)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
