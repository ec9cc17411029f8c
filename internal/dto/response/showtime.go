package response

import (
	"movie-booking/internal/data/entity"
	"movie-booking/pkg/utils"
)

type ShowtimeResponse struct {
	ID        int64   `json:"id"`
	Price     float64 `json:"price"`
	MovieID   int64   `json:"movieId"`
	Theater   string  `json:"theater"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
}

func ShowtimeToResponse(showtime *entity.Showtime) ShowtimeResponse {
	return ShowtimeResponse{
		ID:        showtime.ID,
		Price:     showtime.Price,
		MovieID:   showtime.MovieID,
		Theater:   showtime.Theater,
		StartTime: showtime.StartTime.UTC().Format(utils.TimestampLayout),
		EndTime:   showtime.EndTime.UTC().Format(utils.TimestampLayout),
	}
}
