package domain

import "time"

// Rating represents a single user's score for a movie, unique per
// (user, movie) pair.
type Rating struct {
	ID        string
	UserID    string
	MovieID   string
	Score     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RatingAggregate provides average and count for a movie's ratings. A zero
// Count means the average is undefined and must not be displayed.
type RatingAggregate struct {
	Average float64
	Count   int64
}

// UserRating is one row of a user's rating history, joined with the movie
// title for display.
type UserRating struct {
	MovieID    string
	MovieTitle string
	Score      int
}

// MovieRating is one score a movie has received from a user.
type MovieRating struct {
	UserID string
	Score  int
}
