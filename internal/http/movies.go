package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/moviegoers/ratings/internal/recommend"
	"github.com/moviegoers/ratings/internal/repository"
	"github.com/moviegoers/ratings/internal/session"
)

const maxFormBody = 1 << 20 // 1 MiB

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := s.repo.Movies.List(r.Context())
	if err != nil {
		s.logger.Printf("list movies error: %v", err)
		s.renderInternalError(w, r)
		return
	}
	s.render(w, http.StatusOK, "movies.html", moviesPage{
		basePage: s.basePage(w, r, "Movies"),
		Movies:   movies,
	})
}

func (s *Server) handleShowMovie(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieID")
	if _, err := uuid.Parse(movieID); err != nil {
		s.renderNotFound(w, r)
		return
	}

	movie, err := s.repo.Movies.GetByID(r.Context(), movieID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.renderNotFound(w, r)
			return
		}
		s.logger.Printf("fetch movie %s error: %v", movieID, err)
		s.renderInternalError(w, r)
		return
	}

	agg, err := s.repo.Ratings.Aggregate(r.Context(), movie.ID)
	if err != nil {
		s.logger.Printf("aggregate ratings for movie %s error: %v", movieID, err)
		s.renderInternalError(w, r)
		return
	}

	page := moviePage{
		basePage: s.basePage(w, r, movie.Title),
		Movie:    movie,
		Count:    agg.Count,
	}
	if agg.Count > 0 {
		page.Average = formatScore(agg.Average)
	}

	if userID, ok := s.sessions.UserID(r); ok {
		page.CanRate = true
		if err := s.fillViewerRating(r, &page, userID, movie.ID); err != nil {
			s.logger.Printf("viewer rating for movie %s error: %v", movieID, err)
			s.renderInternalError(w, r)
			return
		}
	}

	s.render(w, http.StatusOK, "movie.html", page)
}

// fillViewerRating sets the session user's own score or, failing that, a
// prediction when one is defined.
func (s *Server) fillViewerRating(r *http.Request, page *moviePage, userID, movieID string) error {
	own, err := s.repo.Ratings.Get(r.Context(), userID, movieID)
	if err == nil {
		page.HasOwnScore = true
		page.OwnScore = own.Score
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	history, err := s.repo.Ratings.ByUser(r.Context(), userID)
	if err != nil {
		return err
	}
	target := make(map[string]int, len(history))
	for _, ur := range history {
		target[ur.MovieID] = ur.Score
	}

	raters, err := s.repo.Ratings.HistoriesByMovieRaters(r.Context(), movieID, userID)
	if err != nil {
		return err
	}

	if predicted, ok := recommend.Predict(target, raters, movieID); ok {
		page.Prediction = formatScore(predicted)
	}
	return nil
}

func (s *Server) handleSubmitRating(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieID")
	if _, err := uuid.Parse(movieID); err != nil {
		s.renderNotFound(w, r)
		return
	}

	userID, ok := s.sessions.UserID(r)
	if !ok {
		session.Flash(w, "Please log in to rate movies.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if _, err := s.repo.Movies.GetByID(r.Context(), movieID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.renderNotFound(w, r)
			return
		}
		s.logger.Printf("fetch movie %s for rating error: %v", movieID, err)
		s.renderInternalError(w, r)
		return
	}

	if err := parseForm(w, r); err != nil {
		session.Flash(w, "Could not read the submitted form.")
		http.Redirect(w, r, "/movies/"+movieID, http.StatusSeeOther)
		return
	}

	score, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("movie-rating")))
	if err != nil || score < 1 || score > 5 {
		session.Flash(w, "Please pick a rating between 1 and 5.")
		http.Redirect(w, r, "/movies/"+movieID, http.StatusSeeOther)
		return
	}

	_, _, err = s.repo.Ratings.Upsert(r.Context(), repository.RatingUpsertParams{
		UserID:  userID,
		MovieID: movieID,
		Score:   score,
	})
	if err != nil {
		if errors.Is(err, repository.ErrInvalidScore) {
			session.Flash(w, "Please pick a rating between 1 and 5.")
			http.Redirect(w, r, "/movies/"+movieID, http.StatusSeeOther)
			return
		}
		s.logger.Printf("upsert rating error: %v", err)
		s.renderInternalError(w, r)
		return
	}

	session.Flash(w, "Rating saved.")
	http.Redirect(w, r, "/movies/"+movieID, http.StatusSeeOther)
}

func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
	return r.ParseForm()
}
