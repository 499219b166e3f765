package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/moviegoers/ratings/internal/repository"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "home.html", homePage{
		basePage: s.basePage(w, r, "Ratings"),
	})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.repo.Users.List(r.Context())
	if err != nil {
		s.logger.Printf("list users error: %v", err)
		s.renderInternalError(w, r)
		return
	}
	s.render(w, http.StatusOK, "users.html", usersPage{
		basePage: s.basePage(w, r, "Users"),
		Users:    users,
	})
}

func (s *Server) handleShowUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if _, err := uuid.Parse(userID); err != nil {
		s.renderNotFound(w, r)
		return
	}

	user, err := s.repo.Users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.renderNotFound(w, r)
			return
		}
		s.logger.Printf("fetch user %s error: %v", userID, err)
		s.renderInternalError(w, r)
		return
	}

	history, err := s.repo.Ratings.ByUser(r.Context(), user.ID)
	if err != nil {
		s.logger.Printf("fetch ratings for user %s error: %v", userID, err)
		s.renderInternalError(w, r)
		return
	}

	s.render(w, http.StatusOK, "user.html", userPage{
		basePage: s.basePage(w, r, user.Email),
		User:     user,
		Ratings:  history,
	})
}
