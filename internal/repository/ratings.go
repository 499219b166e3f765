package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moviegoers/ratings/internal/domain"
)

// RatingsRepository provides helpers for movie ratings.
type RatingsRepository struct {
	pool *pgxpool.Pool
}

// RatingUpsertParams captures the payload required to upsert a rating.
type RatingUpsertParams struct {
	UserID  string
	MovieID string
	Score   int
}

const ratingColumns = `id, user_id, movie_id, score, created_at, updated_at`

// Upsert inserts or updates the unique rating for a (user, movie) pair and
// indicates whether it was newly created.
func (r *RatingsRepository) Upsert(ctx context.Context, params RatingUpsertParams) (domain.Rating, bool, error) {
	if params.Score < 1 || params.Score > 5 {
		return domain.Rating{}, false, ErrInvalidScore
	}

	const query = `
        INSERT INTO ratings (user_id, movie_id, score)
        VALUES ($1,$2,$3)
        ON CONFLICT (user_id, movie_id)
        DO UPDATE SET score = EXCLUDED.score, updated_at = now()
        RETURNING id, user_id, movie_id, score, created_at, updated_at, (xmax = 0) AS inserted
    `

	var rating domain.Rating
	var inserted bool
	err := r.pool.QueryRow(ctx, query, params.UserID, params.MovieID, params.Score).Scan(
		&rating.ID,
		&rating.UserID,
		&rating.MovieID,
		&rating.Score,
		&rating.CreatedAt,
		&rating.UpdatedAt,
		&inserted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Rating{}, false, ErrNotFound
		}
		return domain.Rating{}, false, err
	}

	return rating, inserted, nil
}

// Get retrieves the rating for a specific user/movie combination.
func (r *RatingsRepository) Get(ctx context.Context, userID, movieID string) (domain.Rating, error) {
	const query = `
        SELECT ` + ratingColumns + `
        FROM ratings
        WHERE user_id = $1 AND movie_id = $2
    `
	var rating domain.Rating
	err := r.pool.QueryRow(ctx, query, userID, movieID).Scan(
		&rating.ID,
		&rating.UserID,
		&rating.MovieID,
		&rating.Score,
		&rating.CreatedAt,
		&rating.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Rating{}, ErrNotFound
		}
		return domain.Rating{}, err
	}
	return rating, nil
}

// ByUser returns a user's rating history joined with movie titles, ordered by
// title for display.
func (r *RatingsRepository) ByUser(ctx context.Context, userID string) ([]domain.UserRating, error) {
	const query = `
        SELECT r.movie_id, m.title, r.score
        FROM ratings r
        JOIN movies m ON m.id = r.movie_id
        WHERE r.user_id = $1
        ORDER BY m.title, m.id
    `
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []domain.UserRating
	for rows.Next() {
		var ur domain.UserRating
		if err := rows.Scan(&ur.MovieID, &ur.MovieTitle, &ur.Score); err != nil {
			return nil, err
		}
		history = append(history, ur)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}

// ByMovie returns every score a movie has received.
func (r *RatingsRepository) ByMovie(ctx context.Context, movieID string) ([]domain.MovieRating, error) {
	const query = `
        SELECT user_id, score
        FROM ratings
        WHERE movie_id = $1
    `
	rows, err := r.pool.Query(ctx, query, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []domain.MovieRating
	for rows.Next() {
		var mr domain.MovieRating
		if err := rows.Scan(&mr.UserID, &mr.Score); err != nil {
			return nil, err
		}
		scores = append(scores, mr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return scores, nil
}

// Aggregate returns the rating average and count for a movie. A zero count
// means no ratings exist and the average is undefined.
func (r *RatingsRepository) Aggregate(ctx context.Context, movieID string) (domain.RatingAggregate, error) {
	const query = `
        SELECT COALESCE(AVG(score), 0)::float8 AS average,
               COUNT(*)::int8 AS count
        FROM ratings
        WHERE movie_id = $1
    `

	var agg domain.RatingAggregate
	if err := r.pool.QueryRow(ctx, query, movieID).Scan(&agg.Average, &agg.Count); err != nil {
		return domain.RatingAggregate{}, fmt.Errorf("aggregate ratings: %w", err)
	}
	return agg, nil
}

// HistoriesByMovieRaters returns the full rating history of every user who
// rated the given movie, excluding the target user. The result maps
// user id -> movie id -> score and is the predictor's candidate pool.
func (r *RatingsRepository) HistoriesByMovieRaters(ctx context.Context, movieID, excludeUserID string) (map[string]map[string]int, error) {
	const query = `
        SELECT r.user_id, r.movie_id, r.score
        FROM ratings r
        WHERE r.user_id IN (
            SELECT user_id FROM ratings
            WHERE movie_id = $1 AND user_id <> $2
        )
    `
	rows, err := r.pool.Query(ctx, query, movieID, excludeUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	histories := make(map[string]map[string]int)
	for rows.Next() {
		var userID, ratedMovieID string
		var score int
		if err := rows.Scan(&userID, &ratedMovieID, &score); err != nil {
			return nil, err
		}
		history, ok := histories[userID]
		if !ok {
			history = make(map[string]int)
			histories[userID] = history
		}
		history[ratedMovieID] = score
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return histories, nil
}
