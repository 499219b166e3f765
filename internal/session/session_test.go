package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func requestWithCookies(t *testing.T, rec *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range rec.Result().Cookies() {
		req.AddCookie(cookie)
	}
	return req
}

func TestIssueAndUserID(t *testing.T) {
	mgr := NewManager("test-secret", time.Hour)

	rec := httptest.NewRecorder()
	if err := mgr.Issue(rec, "user-123"); err != nil {
		t.Fatalf("Issue: %v", err)
	}

	userID, ok := mgr.UserID(requestWithCookies(t, rec))
	if !ok {
		t.Fatalf("expected a valid session")
	}
	if userID != "user-123" {
		t.Fatalf("UserID = %q, want user-123", userID)
	}
}

func TestUserID_Anonymous(t *testing.T) {
	mgr := NewManager("test-secret", time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := mgr.UserID(req); ok {
		t.Fatalf("request without cookie must be anonymous")
	}
}

func TestUserID_TamperedCookie(t *testing.T) {
	mgr := NewManager("test-secret", time.Hour)

	rec := httptest.NewRecorder()
	if err := mgr.Issue(rec, "user-123"); err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range rec.Result().Cookies() {
		cookie.Value = strings.Replace(cookie.Value, ".", ".x", 1)
		req.AddCookie(cookie)
	}
	if _, ok := mgr.UserID(req); ok {
		t.Fatalf("tampered cookie must be rejected")
	}
}

func TestUserID_WrongSecret(t *testing.T) {
	issuer := NewManager("secret-a", time.Hour)
	verifier := NewManager("secret-b", time.Hour)

	rec := httptest.NewRecorder()
	if err := issuer.Issue(rec, "user-123"); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, ok := verifier.UserID(requestWithCookies(t, rec)); ok {
		t.Fatalf("cookie signed with another secret must be rejected")
	}
}

func TestUserID_Expired(t *testing.T) {
	mgr := NewManager("test-secret", -time.Minute)

	rec := httptest.NewRecorder()
	if err := mgr.Issue(rec, "user-123"); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, ok := mgr.UserID(requestWithCookies(t, rec)); ok {
		t.Fatalf("expired session must be rejected")
	}
}

func TestClear(t *testing.T) {
	mgr := NewManager("test-secret", time.Hour)
	rec := httptest.NewRecorder()
	mgr.Clear(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Fatalf("expected a single expiring cookie, got %+v", cookies)
	}
}

func TestFlashRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	Flash(rec, "Login successful.")

	popRec := httptest.NewRecorder()
	msg, ok := PopFlash(popRec, requestWithCookies(t, rec))
	if !ok {
		t.Fatalf("expected a flash message")
	}
	if msg != "Login successful." {
		t.Fatalf("flash = %q", msg)
	}

	// The pop must expire the cookie.
	cleared := false
	for _, cookie := range popRec.Result().Cookies() {
		if cookie.Name == "ratings_flash" && cookie.MaxAge == -1 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("flash cookie not cleared after pop")
	}
}
