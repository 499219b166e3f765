package httpserver

import (
	"fmt"
	"net/http"

	"github.com/moviegoers/ratings/internal/domain"
	"github.com/moviegoers/ratings/internal/session"
)

// basePage carries the fields every template needs: the page title, the
// pending flash message (popped here so it renders exactly once), and the
// session state.
type basePage struct {
	Title    string
	Flash    string
	LoggedIn bool
}

func (s *Server) basePage(w http.ResponseWriter, r *http.Request, title string) basePage {
	flash, _ := session.PopFlash(w, r)
	_, loggedIn := s.sessions.UserID(r)
	return basePage{
		Title:    title,
		Flash:    flash,
		LoggedIn: loggedIn,
	}
}

type homePage struct {
	basePage
}

type usersPage struct {
	basePage
	Users []domain.User
}

type userPage struct {
	basePage
	User    domain.User
	Ratings []domain.UserRating
}

type moviesPage struct {
	basePage
	Movies []domain.Movie
}

type moviePage struct {
	basePage
	Movie domain.Movie

	// Average is preformatted to one decimal; empty when the movie has no
	// ratings. Count is the number of ratings behind it.
	Average string
	Count   int64

	// OwnScore is the session user's existing rating, when any.
	HasOwnScore bool
	OwnScore    int

	// Prediction is preformatted to one decimal; empty when undefined.
	Prediction string

	// CanRate is true for logged-in viewers, who get the rating form.
	CanRate bool
}

type loginPage struct {
	basePage
}

type registerPage struct {
	basePage
}

type errorPage struct {
	basePage
	Status  int
	Message string
}

// formatScore renders an average or prediction to one decimal place. Purely
// presentation, not a business rule.
func formatScore(value float64) string {
	return fmt.Sprintf("%.1f", value)
}
