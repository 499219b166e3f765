package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/moviegoers/ratings/internal/auth"
	"github.com/moviegoers/ratings/internal/repository"
	"github.com/moviegoers/ratings/internal/session"
)

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "login.html", loginPage{
		basePage: s.basePage(w, r, "Log in"),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		session.Flash(w, "Could not read the submitted form.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		session.Flash(w, "Email and password are required.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := s.repo.Users.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			session.Flash(w, "Email does not exist. Please try again or register.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		s.logger.Printf("login lookup error: %v", err)
		s.renderInternalError(w, r)
		return
	}

	if !auth.VerifyPassword(user.PasswordHash, password) {
		session.Flash(w, "Password incorrect. Please try again.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := s.sessions.Issue(w, user.ID); err != nil {
		s.logger.Printf("issue session error: %v", err)
		s.renderInternalError(w, r)
		return
	}
	session.Flash(w, "Login successful.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Clear(w)
	session.Flash(w, "Logged out. Thanks for visiting Ratings!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "register.html", registerPage{
		basePage: s.basePage(w, r, "Register"),
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		session.Flash(w, "Could not read the submitted form.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		session.Flash(w, "Email and password are required.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	var age *int
	if raw := strings.TrimSpace(r.PostFormValue("age")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			session.Flash(w, "Age must be a whole number.")
			http.Redirect(w, r, "/register", http.StatusSeeOther)
			return
		}
		age = &parsed
	}

	var zipcode *string
	if raw := strings.TrimSpace(r.PostFormValue("zipcode")); raw != "" {
		zipcode = &raw
	}

	// Pre-check gives the friendly redirect; the unique constraint still
	// backstops concurrent registrations.
	if _, err := s.repo.Users.GetByEmail(r.Context(), email); err == nil {
		session.Flash(w, "You're already in our system. Please log in.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Printf("register lookup error: %v", err)
		s.renderInternalError(w, r)
		return
	}

	hash, err := auth.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		s.logger.Printf("hash password error: %v", err)
		s.renderInternalError(w, r)
		return
	}

	user, err := s.repo.Users.Create(r.Context(), repository.UserCreateParams{
		Email:        email,
		PasswordHash: hash,
		Age:          age,
		Zipcode:      zipcode,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			session.Flash(w, "You're already in our system. Please log in.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		s.logger.Printf("create user error: %v", err)
		s.renderInternalError(w, r)
		return
	}

	if err := s.sessions.Issue(w, user.ID); err != nil {
		s.logger.Printf("issue session error: %v", err)
		s.renderInternalError(w, r)
		return
	}
	session.Flash(w, "Registration successful. Welcome to Ratings!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
