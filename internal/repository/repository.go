package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moviegoers/ratings/internal/store"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("repository: not found")

// ErrDuplicateEmail indicates a user row already exists for the email.
var ErrDuplicateEmail = errors.New("repository: email already registered")

// ErrInvalidScore indicates a rating score outside the 1..5 range.
var ErrInvalidScore = errors.New("repository: score must be between 1 and 5")

// Repository aggregates all domain-specific repositories.
type Repository struct {
	Users   *UsersRepository
	Movies  *MoviesRepository
	Ratings *RatingsRepository
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	return NewWithPool(st.Pool())
}

// NewWithPool allows constructing repositories directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{
		Users:   &UsersRepository{pool: pool},
		Movies:  &MoviesRepository{pool: pool},
		Ratings: &RatingsRepository{pool: pool},
	}
}
