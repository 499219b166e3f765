package httpserver

import (
	"net/http"
	"net/url"
	"testing"
)

func BenchmarkSubmitRating(b *testing.B) {
	srv := buildTestServer(b)
	user := registerUser(b, srv, "bench@example.com", "pw")
	movie := mustMovie(b, srv, "Benchmark Movie")
	cookies := sessionCookies(b, srv, user.ID)

	form := url.Values{"movie-rating": {"4"}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rec := postForm(srv, "/movies/"+movie.ID, form, cookies)
		if rec.Code != http.StatusSeeOther {
			b.Fatalf("unexpected status %d", rec.Code)
		}
	}
}

func BenchmarkShowMoviePrediction(b *testing.B) {
	srv := buildTestServer(b)
	target := registerUser(b, srv, "target@example.com", "pw")
	rater := registerUser(b, srv, "rater@example.com", "pw")

	m1 := mustMovie(b, srv, "Movie One")
	m2 := mustMovie(b, srv, "Movie Two")
	m3 := mustMovie(b, srv, "Movie Three")
	mustRate(b, srv, target.ID, m1.ID, 5)
	mustRate(b, srv, target.ID, m2.ID, 3)
	mustRate(b, srv, rater.ID, m1.ID, 4)
	mustRate(b, srv, rater.ID, m2.ID, 2)
	mustRate(b, srv, rater.ID, m3.ID, 5)

	cookies := sessionCookies(b, srv, target.ID)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rec := get(srv, "/movies/"+m3.ID, cookies)
		if rec.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", rec.Code)
		}
	}
}
