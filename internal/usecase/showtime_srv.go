package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/pkg/apperror"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type ShowtimeService interface {
	GetShowtime(ctx context.Context, id int64) (*response.ShowtimeResponse, error)
	CreateShowtime(ctx context.Context, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error)
	UpdateShowtime(ctx context.Context, id int64, req *request.ShowtimeRequest) error
	DeleteShowtime(ctx context.Context, id int64) error
}

type showtimeService struct {
	repo   repository.ShowtimeRepository
	movies MovieService
	log    *zap.Logger
}

func NewShowtimeService(repo repository.ShowtimeRepository, movies MovieService, log *zap.Logger) ShowtimeService {
	return &showtimeService{
		repo:   repo,
		movies: movies,
		log:    log.With(zap.String("service", "showtime")),
	}
}

func (s *showtimeService) GetShowtime(ctx context.Context, id int64) (*response.ShowtimeResponse, error) {
	showtime, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get showtime %d: %w", id, err)
	}
	if showtime == nil {
		return nil, apperror.NotFound("Showtime with ID %d not found", id)
	}

	res := response.ShowtimeToResponse(showtime)
	return &res, nil
}

func (s *showtimeService) CreateShowtime(ctx context.Context, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error) {
	showtime, err := s.parseRequest(req)
	if err != nil {
		return nil, err
	}

	if _, err := s.movies.GetMovie(ctx, showtime.MovieID); err != nil {
		return nil, err
	}

	if err := s.checkSchedule(ctx, showtime); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, showtime); err != nil {
		return nil, fmt.Errorf("create showtime: %w", err)
	}

	s.log.Info("Showtime created",
		zap.Int64("showtime_id", showtime.ID),
		zap.Int64("movie_id", showtime.MovieID),
		zap.String("theater", showtime.Theater),
	)

	res := response.ShowtimeToResponse(showtime)
	return &res, nil
}

func (s *showtimeService) UpdateShowtime(ctx context.Context, id int64, req *request.ShowtimeRequest) error {
	showtime, err := s.parseRequest(req)
	if err != nil {
		return err
	}
	showtime.ID = id

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find showtime %d: %w", id, err)
	}
	if current == nil {
		return apperror.NotFound("Showtime with ID %d not found", id)
	}

	if req.MovieID != nil {
		if _, err := s.movies.GetMovie(ctx, showtime.MovieID); err != nil {
			return err
		}
	}

	if err := s.checkSchedule(ctx, showtime); err != nil {
		return err
	}

	err = s.repo.Update(ctx, showtime)
	if errors.Is(err, repository.ErrNoRows) {
		return apperror.NotFound("Showtime with ID %d not found", id)
	}
	if err != nil {
		return fmt.Errorf("update showtime: %w", err)
	}

	s.log.Info("Showtime updated",
		zap.Int64("showtime_id", id),
		zap.String("theater", showtime.Theater),
	)
	return nil
}

func (s *showtimeService) DeleteShowtime(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNoRows) {
		return apperror.NotFound("Showtime with ID %d not found", id)
	}
	if err != nil {
		return fmt.Errorf("delete showtime: %w", err)
	}

	return nil
}

// checkSchedule rejects empty or inverted intervals and any showtime in the
// same theater that touches [start, end]. showtime.ID is excluded when set.
func (s *showtimeService) checkSchedule(ctx context.Context, showtime *entity.Showtime) error {
	if !showtime.StartTime.Before(showtime.EndTime) {
		return apperror.BadRequest("End time must be after start time")
	}

	overlapping, err := s.repo.FindOverlapping(ctx, showtime.Theater, showtime.StartTime, showtime.EndTime, showtime.ID)
	if err != nil {
		return fmt.Errorf("check showtime overlap: %w", err)
	}
	if len(overlapping) > 0 {
		s.log.Info("Showtime overlaps existing schedule",
			zap.String("theater", showtime.Theater),
			zap.Int64("conflicting_id", overlapping[0].ID),
		)
		return apperror.BadRequest("There is already a showtime in theater %s during this time period", showtime.Theater)
	}

	return nil
}

func (s *showtimeService) parseRequest(req *request.ShowtimeRequest) (*entity.Showtime, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Showtime validation failed", zap.Strings("errors", errs))
		return nil, apperror.Validation(errs)
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, apperror.Validation([]string{"startTime: startTime is not a valid date"})
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, apperror.Validation([]string{"endTime: endTime is not a valid date"})
	}

	return &entity.Showtime{
		Price:     *req.Price,
		MovieID:   *req.MovieID,
		Theater:   req.Theater,
		StartTime: start,
		EndTime:   end,
	}, nil
}
