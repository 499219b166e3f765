// Command seed loads MovieLens 100k data files into the ratings database.
// u.item rows are pipe-delimited (id|title|release date|video date|imdb url|...)
// and u.data rows are tab-delimited (user id, movie id, score, timestamp).
// MovieLens ids are mapped to the generated row ids as entities are created.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/moviegoers/ratings/internal/auth"
	"github.com/moviegoers/ratings/internal/repository"
	"github.com/moviegoers/ratings/internal/store"
)

func main() {
	var (
		moviesPath  = flag.String("movies", "seed/u.item", "path to the MovieLens movie file")
		ratingsPath = flag.String("ratings", "seed/u.data", "path to the MovieLens ratings file")
		password    = flag.String("password", "password", "password assigned to every seeded user")
		dbURL       = flag.String("db", os.Getenv("DB_URL"), "database URL (defaults to DB_URL)")
	)
	flag.Parse()

	if *dbURL == "" {
		log.Fatal("database URL required: pass -db or set DB_URL")
	}

	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags)
	ctx := context.Background()

	st, err := store.New(ctx, *dbURL, store.Options{Logger: logger})
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer st.Close()
	repo := repository.New(st)

	// Seeded accounts share one low-cost hash; they exist to exercise the
	// predictor, not to be secure accounts.
	hash, err := auth.HashPassword(*password, bcrypt.MinCost)
	if err != nil {
		log.Fatalf("hash seed password: %v", err)
	}

	movieIDs, err := seedMovies(ctx, repo, *moviesPath, logger)
	if err != nil {
		log.Fatalf("seed movies: %v", err)
	}

	if err := seedRatings(ctx, repo, *ratingsPath, movieIDs, hash, logger); err != nil {
		log.Fatalf("seed ratings: %v", err)
	}
}

// seedMovies inserts every movie row and returns the MovieLens id -> row id
// mapping needed to attach ratings.
func seedMovies(ctx context.Context, repo *repository.Repository, path string, logger *log.Logger) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	start := time.Now()
	movieIDs := make(map[string]string)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		parts := strings.Split(scanner.Text(), "|")
		if len(parts) < 5 || parts[0] == "" || parts[1] == "" {
			continue
		}

		params := repository.MovieCreateParams{Title: parts[1]}
		if released, err := time.Parse("02-Jan-2006", parts[2]); err == nil {
			params.ReleasedAt = &released
		}
		if url := strings.TrimSpace(parts[4]); url != "" {
			params.IMDBURL = &url
		}

		movie, err := repo.Movies.Create(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("create movie %q: %w", parts[1], err)
		}
		movieIDs[parts[0]] = movie.ID
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	logger.Printf("seeded %d movies in %s", len(movieIDs), time.Since(start))
	return movieIDs, nil
}

// seedRatings inserts every rating row, creating a synthetic user account the
// first time each MovieLens user id appears.
func seedRatings(ctx context.Context, repo *repository.Repository, path string, movieIDs map[string]string, passwordHash string, logger *log.Logger) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	start := time.Now()
	userIDs := make(map[string]string)
	var count, skipped int

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 3 {
			continue
		}

		movieID, ok := movieIDs[parts[1]]
		if !ok {
			skipped++
			continue
		}
		score, err := strconv.Atoi(parts[2])
		if err != nil || score < 1 || score > 5 {
			skipped++
			continue
		}

		userID, ok := userIDs[parts[0]]
		if !ok {
			user, err := repo.Users.Create(ctx, repository.UserCreateParams{
				Email:        fmt.Sprintf("user%s@example.com", parts[0]),
				PasswordHash: passwordHash,
			})
			if err != nil {
				return fmt.Errorf("create user %s: %w", parts[0], err)
			}
			userID = user.ID
			userIDs[parts[0]] = userID
		}

		if _, _, err := repo.Ratings.Upsert(ctx, repository.RatingUpsertParams{
			UserID:  userID,
			MovieID: movieID,
			Score:   score,
		}); err != nil {
			return fmt.Errorf("upsert rating user=%s movie=%s: %w", parts[0], parts[1], err)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	logger.Printf("seeded %d ratings for %d users in %s (%d rows skipped)", count, len(userIDs), time.Since(start), skipped)
	return nil
}
