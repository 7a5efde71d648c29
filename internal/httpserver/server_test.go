package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/robalobadob/wordgrid/internal/config"
	"github.com/robalobadob/wordgrid/internal/daily"
	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/store"
	"github.com/robalobadob/wordgrid/internal/words"
)

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*Server, *words.Dictionary) {
	t.Helper()
	d, err := words.New([]string{"apple", "paper", "level", "eerie", "crane", "music", "sleep", "lemon"})
	if err != nil {
		t.Fatalf("words.New returned error: %v", err)
	}
	cfg := config.Config{
		DailySalt:    "test_salt",
		JWTSecret:    "test_secret",
		TokenTTL:     time.Hour,
		ClientOrigin: "http://localhost:5173",
		CookieName:   "wordgrid_session",
		DefaultLang:  "en-US",
	}
	s := New(cfg, d, store.NewMemoryStore())
	s.now = func() time.Time { return testNow }
	return s, d
}

type call struct {
	method, path, body, token string
	header                    map[string]string
}

func do(t *testing.T, s *Server, c call) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if c.body != "" {
		req = httptest.NewRequest(c.method, c.path, strings.NewReader(c.body))
	} else {
		req = httptest.NewRequest(c.method, c.path, nil)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range c.header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func startGame(t *testing.T, s *Server, mode string) newGameRes {
	t.Helper()
	rec := do(t, s, call{method: "POST", path: "/game/new", body: `{"mode":"` + mode + `"}`})
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /game/new status = %d, body %s", rec.Code, rec.Body.String())
	}
	return decode[newGameRes](t, rec)
}

func typeLetters(t *testing.T, s *Server, token, word string) {
	t.Helper()
	for _, r := range word {
		rec := do(t, s, call{method: "POST", path: "/game/letter", body: `{"letter":"` + string(r) + `"}`, token: token})
		if rec.Code != http.StatusOK {
			t.Fatalf("POST /game/letter %q status = %d, body %s", r, rec.Code, rec.Body.String())
		}
	}
}

// TestHealth ensures the diagnostics endpoint answers.
func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, call{method: "GET", path: "/health"})
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Fatalf("GET /health = %d %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("Content-Type = %q", ct)
	}
}

// TestNewGameIssuesSession ensures a new game returns a token, sets the cookie, and starts empty.
func TestNewGameIssuesSession(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, call{method: "POST", path: "/game/new"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	cookie := rec.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, "wordgrid_session=") || !strings.Contains(cookie, "HttpOnly") {
		t.Fatalf("Set-Cookie = %q", cookie)
	}
	res := decode[newGameRes](t, rec)
	if res.Mode != ModeCasual || res.Length != 5 || res.Rows != game.Rows || res.Token == "" || res.GameID == "" {
		t.Fatalf("unexpected response %+v", res)
	}

	rec = do(t, s, call{method: "GET", path: "/game", token: res.Token})
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /game status = %d", rec.Code)
	}
	st := decode[stateRes](t, rec)
	if st.ID != res.GameID || st.Row != 0 || st.Col != 0 || st.Status != game.StatusInProgress {
		t.Fatalf("unexpected state %+v", st)
	}
	if st.Secret != "" {
		t.Fatal("secret leaked while in progress")
	}
}

// TestSessionRoutesRequireToken ensures missing, forged, and expired tokens are rejected.
func TestSessionRoutesRequireToken(t *testing.T) {
	s, _ := newTestServer(t)
	res := startGame(t, s, ModeCasual)

	if rec := do(t, s, call{method: "GET", path: "/game"}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token status = %d, want 401", rec.Code)
	}
	if rec := do(t, s, call{method: "GET", path: "/game", token: res.Token + "x"}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("forged token status = %d, want 401", rec.Code)
	}

	s.now = func() time.Time { return testNow.Add(2 * time.Hour) }
	if rec := do(t, s, call{method: "GET", path: "/game", token: res.Token}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expired token status = %d, want 401", rec.Code)
	}
}

// TestCookieSessionWorks ensures the cookie alone identifies the session.
func TestCookieSessionWorks(t *testing.T) {
	s, _ := newTestServer(t)
	res := startGame(t, s, ModeCasual)

	req := httptest.NewRequest("GET", "/game", nil)
	req.AddCookie(&http.Cookie{Name: "wordgrid_session", Value: res.Token})
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

// TestDailyGameFlow plays a daily game through letters, keys, an invalid word, and a win.
func TestDailyGameFlow(t *testing.T) {
	s, d := newTestServer(t)
	secret := daily.Secret(d, testNow, "test_salt")
	res := startGame(t, s, ModeDaily)
	if res.Date != "2026-10-19" {
		t.Fatalf("Date = %q", res.Date)
	}
	tok := res.Token

	// Incomplete row.
	typeLetters(t, s, tok, "ab")
	rec := do(t, s, call{method: "POST", path: "/game/submit", token: tok})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("incomplete submit status = %d", rec.Code)
	}
	if e := decode[errorRes](t, rec); e.Error != "incomplete_guess" || e.Message != "Not enough letters." {
		t.Fatalf("unexpected error %+v", e)
	}

	// Invalid word, localized, row untouched.
	typeLetters(t, s, tok, "cde")
	rec = do(t, s, call{method: "POST", path: "/game/submit", token: tok, header: map[string]string{"Accept-Language": "pt-BR"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid submit status = %d", rec.Code)
	}
	if e := decode[errorRes](t, rec); e.Error != "invalid_word" || e.Message != "Palavra inválida." {
		t.Fatalf("unexpected error %+v", e)
	}
	st := decode[stateRes](t, do(t, s, call{method: "GET", path: "/game", token: tok}))
	if st.Grid[0] != "ABCDE" || st.Row != 0 || st.Col != 5 {
		t.Fatalf("state changed after invalid word: %+v", st)
	}

	// Clear the row with Backspace through the key route, then type the secret.
	for i := 0; i < 6; i++ {
		if rec := do(t, s, call{method: "POST", path: "/game/key", body: `{"key":"Backspace"}`, token: tok}); rec.Code != http.StatusOK {
			t.Fatalf("Backspace status = %d", rec.Code)
		}
	}
	for _, r := range secret {
		if rec := do(t, s, call{method: "POST", path: "/game/key", body: `{"key":"` + string(r) + `"}`, token: tok}); rec.Code != http.StatusOK {
			t.Fatalf("key %q status = %d", r, rec.Code)
		}
	}
	rec = do(t, s, call{method: "POST", path: "/game/key", body: `{"key":"Enter"}`, token: tok})
	if rec.Code != http.StatusOK {
		t.Fatalf("Enter status = %d, body %s", rec.Code, rec.Body.String())
	}
	st = decode[stateRes](t, rec)
	if st.Result == nil || st.Result.Status != game.StatusWon || st.Status != game.StatusWon {
		t.Fatalf("expected win, got %+v", st)
	}
	if st.Secret != strings.ToUpper(secret) || st.Message != "You got it!" {
		t.Fatalf("unexpected secret/message %q %q", st.Secret, st.Message)
	}

	// Finished games reject moves.
	rec = do(t, s, call{method: "POST", path: "/game/letter", body: `{"letter":"a"}`, token: tok})
	if rec.Code != http.StatusConflict {
		t.Fatalf("move after win status = %d, want 409", rec.Code)
	}
}

// TestLosingRevealsSecret ensures six valid misses end the game with the secret in the message.
func TestLosingRevealsSecret(t *testing.T) {
	s, d := newTestServer(t)
	secret := daily.Secret(d, testNow, "test_salt")
	tok := startGame(t, s, ModeDaily).Token

	var misses []string
	for i := 0; i < d.Len() && len(misses) < game.Rows; i++ {
		if w := d.At(i); w != secret {
			misses = append(misses, w)
		}
	}

	var st stateRes
	for _, w := range misses {
		typeLetters(t, s, tok, w)
		rec := do(t, s, call{method: "POST", path: "/game/submit", token: tok})
		if rec.Code != http.StatusOK {
			t.Fatalf("submit %q status = %d, body %s", w, rec.Code, rec.Body.String())
		}
		st = decode[stateRes](t, rec)
	}
	if st.Status != game.StatusLost {
		t.Fatalf("Status = %q, want lost", st.Status)
	}
	want := "You are out of attempts! The word was " + strings.ToUpper(secret) + "."
	if st.Message != want {
		t.Fatalf("Message = %q, want %q", st.Message, want)
	}
	if len(st.Feedback) != game.Rows {
		t.Fatalf("Feedback rows = %d", len(st.Feedback))
	}

	rec := do(t, s, call{method: "POST", path: "/game/submit", token: tok})
	if rec.Code != http.StatusConflict {
		t.Fatalf("seventh submit status = %d, want 409", rec.Code)
	}
}

// TestInvalidLetterRejected ensures non-letters and multi-character payloads are refused.
func TestInvalidLetterRejected(t *testing.T) {
	s, _ := newTestServer(t)
	tok := startGame(t, s, ModeCasual).Token
	for _, body := range []string{`{"letter":"1"}`, `{"letter":"ab"}`, `{"letter":""}`} {
		rec := do(t, s, call{method: "POST", path: "/game/letter", body: body, token: tok})
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s status = %d, want 422", body, rec.Code)
		}
	}
	if rec := do(t, s, call{method: "POST", path: "/game/letter", body: `{`, token: tok}); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad json status = %d, want 400", rec.Code)
	}
}

// TestNewGameReplacesAndDiscardEnds ensures starting over drops the old session and DELETE ends it.
func TestNewGameReplacesAndDiscardEnds(t *testing.T) {
	s, _ := newTestServer(t)
	first := startGame(t, s, ModeCasual)

	rec := do(t, s, call{method: "POST", path: "/game/new", token: first.Token})
	if rec.Code != http.StatusOK {
		t.Fatalf("second new status = %d", rec.Code)
	}
	second := decode[newGameRes](t, rec)
	if s.store.Len() != 1 {
		t.Fatalf("sessions = %d, want 1", s.store.Len())
	}
	if rec := do(t, s, call{method: "GET", path: "/game", token: first.Token}); rec.Code != http.StatusNotFound {
		t.Fatalf("old session status = %d, want 404", rec.Code)
	}

	if rec := do(t, s, call{method: "DELETE", path: "/game", token: second.Token}); rec.Code != http.StatusOK {
		t.Fatalf("DELETE status = %d", rec.Code)
	}
	if rec := do(t, s, call{method: "GET", path: "/game", token: second.Token}); rec.Code != http.StatusNotFound {
		t.Fatalf("discarded session status = %d, want 404", rec.Code)
	}
}

// TestNewGameRejectsUnknownMode ensures only casual and daily are accepted.
func TestNewGameRejectsUnknownMode(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, call{method: "POST", path: "/game/new", body: `{"mode":"1x1"}`})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
