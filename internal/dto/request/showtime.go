package request

type ShowtimeRequest struct {
	MovieID   *int64   `json:"movieId" validate:"required"`
	Price     *float64 `json:"price" validate:"required,min=0"`
	Theater   string   `json:"theater" validate:"required"`
	StartTime string   `json:"startTime" validate:"required,isotime"`
	EndTime   string   `json:"endTime" validate:"required,isotime"`
}
