package usecase

import (
	"context"
	"errors"
	"fmt"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/pkg/apperror"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type MovieService interface {
	GetMovies(ctx context.Context) ([]response.MovieResponse, error)
	GetMovie(ctx context.Context, id int64) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, title string, req *request.MovieRequest) error
	DeleteMovie(ctx context.Context, title string) error
}

type movieService struct {
	repo repository.MovieRepository
	log  *zap.Logger
}

func NewMovieService(repo repository.MovieRepository, log *zap.Logger) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context) ([]response.MovieResponse, error) {
	movies, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get movies: %w", err)
	}

	return response.MoviesToResponse(movies), nil
}

func (s *movieService) GetMovie(ctx context.Context, id int64) (*response.MovieResponse, error) {
	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie %d: %w", id, err)
	}
	if movie == nil {
		return nil, apperror.NotFound("Movie with ID %d not found", id)
	}

	res := response.MovieToResponse(movie)
	return &res, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create movie validation failed", zap.Strings("errors", errs))
		return nil, apperror.Validation(errs)
	}

	existing, err := s.repo.FindByTitle(ctx, req.Title)
	if err != nil {
		return nil, fmt.Errorf("check movie title: %w", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("Movie with title %q already exists", req.Title)
	}

	movie := movieFromRequest(req)
	if err := s.repo.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.Int64("movie_id", movie.ID),
		zap.String("title", movie.Title),
	)

	res := response.MovieToResponse(movie)
	return &res, nil
}

// UpdateMovie overwrites the movie currently named title. The title itself
// may change as long as no other movie already uses the new one.
func (s *movieService) UpdateMovie(ctx context.Context, title string, req *request.MovieRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update movie validation failed", zap.Strings("errors", errs))
		return apperror.Validation(errs)
	}

	current, err := s.repo.FindByTitle(ctx, title)
	if err != nil {
		return fmt.Errorf("find movie %q: %w", title, err)
	}
	if current == nil {
		return apperror.NotFound("Movie with title %s not found", title)
	}

	if req.Title != title {
		taken, err := s.repo.FindByTitle(ctx, req.Title)
		if err != nil {
			return fmt.Errorf("check movie title: %w", err)
		}
		if taken != nil {
			return apperror.Conflict("Movie with title %q already exists", req.Title)
		}
	}

	err = s.repo.UpdateByTitle(ctx, title, movieFromRequest(req))
	if errors.Is(err, repository.ErrNoRows) {
		return apperror.NotFound("Movie with title %s not found", title)
	}
	if err != nil {
		return fmt.Errorf("update movie: %w", err)
	}

	s.log.Info("Movie updated",
		zap.Int64("movie_id", current.ID),
		zap.String("old_title", title),
		zap.String("title", req.Title),
	)
	return nil
}

func (s *movieService) DeleteMovie(ctx context.Context, title string) error {
	err := s.repo.DeleteByTitle(ctx, title)
	if errors.Is(err, repository.ErrNoRows) {
		return apperror.NotFound("Movie with title %s not found", title)
	}
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}

	return nil
}

func movieFromRequest(req *request.MovieRequest) *entity.Movie {
	return &entity.Movie{
		Title:       req.Title,
		Genre:       req.Genre,
		Duration:    *req.Duration,
		Rating:      *req.Rating,
		ReleaseYear: *req.ReleaseYear,
	}
}
