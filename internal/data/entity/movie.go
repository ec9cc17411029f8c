package entity

type Movie struct {
	ID          int64   `db:"id"`
	Title       string  `db:"title"`
	Genre       string  `db:"genre"`
	Duration    int     `db:"duration"` // minutes
	Rating      float64 `db:"rating"`   // 0-10
	ReleaseYear int     `db:"release_year"`
}
