// internal/httpserver/routes_game.go
//
// HTTP routes that drive one game session.
//   - POST   /game/new     → start a session (casual: random secret, daily: word of the day)
//   - GET    /game         → snapshot of the session
//   - POST   /game/letter  → AddLetter
//   - POST   /game/delete  → RemoveLetter
//   - POST   /game/submit  → SubmitGuess
//   - POST   /game/key     → browser key name, dispatched through the input package
//   - DELETE /game         → discard the session (back to menu)
//
// Engine errors map to statuses:
//   invalid word / incomplete guess / invalid letter → 422 with a localized message,
//   game over → 409, unknown session → 404.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"github.com/robalobadob/wordgrid/internal/daily"
	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/i18n"
	"github.com/robalobadob/wordgrid/internal/input"
	"github.com/robalobadob/wordgrid/internal/store"
)

// Game modes accepted by /game/new.
const (
	ModeCasual = "casual"
	ModeDaily  = "daily"
)

// mountGame registers all /game routes.
func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/game", s.handleState)
		r.Delete("/game", s.handleDiscard)
		r.Post("/game/letter", s.handleLetter)
		r.Post("/game/delete", s.handleRemove)
		r.Post("/game/submit", s.handleSubmit)
		r.Post("/game/key", s.handleKey)
	})
}

// -----------------------------------------------------------------------------
// /game/new

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Mode string `json:"mode"` // "casual" (default) | "daily"
}
type newGameRes struct {
	GameID string `json:"gameId"`
	Token  string `json:"token"`
	Mode   string `json:"mode"`
	Date   string `json:"date,omitempty"` // daily mode only
	Length int    `json:"length"`
	Rows   int    `json:"rows"`
}

// handleNewGame creates a session, discarding the caller's previous one if the request carried it.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json", "")
		return
	}
	if req.Mode == "" {
		req.Mode = ModeCasual
	}

	res := newGameRes{Mode: req.Mode, Length: s.dict.Length(), Rows: game.Rows}
	var g *game.Game
	switch req.Mode {
	case ModeCasual:
		g = game.New(s.dict)
	case ModeDaily:
		now := s.now()
		var err error
		g, err = game.NewWithSecret(s.dict, daily.Secret(s.dict, now, s.cfg.DailySalt))
		if err != nil {
			log.Error().Err(err).Msg("daily secret")
			writeError(w, http.StatusInternalServerError, "daily_failed", "")
			return
		}
		res.Date = daily.DateKey(now)
	default:
		writeError(w, http.StatusBadRequest, "unknown_mode", "")
		return
	}

	if tok := s.bearerOrCookie(r); tok != "" {
		if old, err := s.parseToken(tok); err == nil {
			_ = s.store.Delete(r.Context(), old)
		}
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed", "")
		return
	}

	tok, exp, err := s.signToken(g.ID())
	if err != nil {
		log.Error().Err(err).Msg("sign session token")
		writeError(w, http.StatusInternalServerError, "sign_failed", "")
		return
	}
	s.setSessionCookie(w, tok, exp)

	res.GameID, res.Token = g.ID(), tok
	log.Info().Str("gameId", g.ID()).Str("mode", req.Mode).Msg("game started")
	writeJSON(w, http.StatusOK, res)
}

// -----------------------------------------------------------------------------
// session routes

// stateRes is returned by every session route.
type stateRes struct {
	game.State
	Result  *game.Result `json:"result,omitempty"`  // set after an accepted submit
	Message string       `json:"message,omitempty"` // localized outcome text
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	var res stateRes
	err := s.store.View(r.Context(), gameID(r), func(g *game.Game) error {
		res.State = g.Snapshot()
		return nil
	})
	if err != nil {
		s.writeGameError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleDiscard(w http.ResponseWriter, r *http.Request) {
	_ = s.store.Delete(r.Context(), gameID(r))
	s.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// letterReq is the payload for /game/letter.
type letterReq struct {
	Letter string `json:"letter"`
}

func (s *Server) handleLetter(w http.ResponseWriter, r *http.Request) {
	var req letterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "")
		return
	}
	if utf8.RuneCountInString(req.Letter) != 1 {
		s.writeGameError(w, r, game.ErrInvalidLetter)
		return
	}
	c, _ := utf8.DecodeRuneInString(req.Letter)
	s.dispatch(w, r, input.Command{Kind: input.KindLetter, Letter: c})
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, input.Command{Kind: input.KindDelete})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, input.Command{Kind: input.KindSubmit})
}

// keyReq is the payload for /game/key; Key uses browser key names ("a", "Enter", "Backspace").
type keyReq struct {
	Key string `json:"key"`
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var req keyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "")
		return
	}
	s.dispatch(w, r, input.Parse(req.Key))
}

// dispatch applies one command under the store lock and answers with a fresh snapshot.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, cmd input.Command) {
	res, err := s.apply(r.Context(), gameID(r), cmd, i18n.ResolveTag(r, s.lang))
	if err != nil {
		s.writeGameError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// apply runs cmd against the session's game and localizes the outcome for tag.
func (s *Server) apply(ctx context.Context, id string, cmd input.Command, tag language.Tag) (stateRes, error) {
	var res stateRes
	err := s.store.Update(ctx, id, func(g *game.Game) error {
		out, err := input.Dispatch(g, cmd)
		if err != nil {
			return err
		}
		res.State = g.Snapshot()
		res.Result = out.Result
		return nil
	})
	if err != nil {
		return stateRes{}, err
	}

	if res.Result != nil && res.Result.Status.Terminal() {
		if res.Result.Status == game.StatusWon {
			res.Message = i18n.Text(tag, i18n.Won)
		} else {
			res.Message = i18n.Text(tag, i18n.Lost, res.Result.Secret)
		}
		log.Info().Str("gameId", res.ID).Str("status", string(res.Status)).Int("rows", res.Row).Msg("game finished")
	}
	return res, nil
}

// writeGameError maps engine and store errors onto HTTP statuses.
func (s *Server) writeGameError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := s.gameError(i18n.ResolveTag(r, s.lang), err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("gameId", gameID(r)).Msg("game move")
	}
	writeJSON(w, status, body)
}

func (s *Server) gameError(tag language.Tag, err error) (int, errorRes) {
	switch {
	case errors.Is(err, game.ErrInvalidWord):
		return http.StatusUnprocessableEntity, errorRes{i18n.InvalidWord, i18n.Text(tag, i18n.InvalidWord)}
	case errors.Is(err, game.ErrIncompleteGuess):
		return http.StatusUnprocessableEntity, errorRes{i18n.IncompleteGuess, i18n.Text(tag, i18n.IncompleteGuess)}
	case errors.Is(err, game.ErrInvalidLetter):
		return http.StatusUnprocessableEntity, errorRes{i18n.InvalidLetter, i18n.Text(tag, i18n.InvalidLetter)}
	case errors.Is(err, game.ErrGameOver):
		return http.StatusConflict, errorRes{i18n.GameOver, i18n.Text(tag, i18n.GameOver)}
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, errorRes{Error: "not_found"}
	default:
		return http.StatusInternalServerError, errorRes{Error: "server_error"}
	}
}
