package request

// MovieRequest is used for both create and update. Integer fields are
// bounded to the INTEGER columns they are stored in.
type MovieRequest struct {
	Title       string   `json:"title" validate:"required"`
	Genre       string   `json:"genre" validate:"required"`
	Duration    *int     `json:"duration" validate:"required,min=1,max=2147483647"`
	Rating      *float64 `json:"rating" validate:"required,min=0,max=10"`
	ReleaseYear *int     `json:"releaseYear" validate:"required,min=-2147483648,max=2147483647"`
}
