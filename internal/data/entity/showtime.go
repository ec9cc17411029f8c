package entity

import (
	"time"
)

type Showtime struct {
	ID        int64     `db:"id"`
	Price     float64   `db:"price"`
	MovieID   int64     `db:"movie_id"`
	Theater   string    `db:"theater"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
}
