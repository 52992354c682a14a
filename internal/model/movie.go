package model

// GenreSnapshot is the genre value copied into a movie when the movie is
// created or updated. It is owned by the movie outright; renaming the
// genre afterwards does not touch existing movies.
type GenreSnapshot struct {
	ID   uint64 `json:"id"`   // movies.genre_id
	Name string `json:"name"` // movies.genre_name
}

// Movie represents a row in the `movies` table.
//
// NumberInStock is only ever mutated by the rental workflow through
// conditional increment/decrement statements; it must never go negative.
//
// Fields:
//  ID              – primary key identifier.
//  Title           – movie title (5–50 chars).
//  Genre           – embedded genre snapshot.
//  NumberInStock   – copies available to rent (0–255 on input).
//  DailyRentalRate – price per day, fractional allowed (0–255 on input).
type Movie struct {
	ID              uint64        `json:"id"`              // movies.id
	Title           string        `json:"title"`           // movies.title
	Genre           GenreSnapshot `json:"genre"`           // movies.genre_id / genre_name
	NumberInStock   int           `json:"numberInStock"`   // movies.number_in_stock
	DailyRentalRate float64       `json:"dailyRentalRate"` // movies.daily_rental_rate
}
