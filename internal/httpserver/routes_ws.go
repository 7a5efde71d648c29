// internal/httpserver/routes_ws.go
//
// GET /game/ws streams key presses for one session over a WebSocket.
// Client → server: {"key":"a"} using browser key names, as in POST /game/key.
// Server → client: {"type":"state","state":{...}} or {"type":"error","status":422,"error":{...}}.
// Messages are localized with the language resolved when the socket opened.

package httpserver

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/i18n"
	"github.com/robalobadob/wordgrid/internal/input"
)

// maxFrameBytes bounds one client frame; a key frame is a few bytes.
const maxFrameBytes = 512

// wsOut is one server → client frame.
type wsOut struct {
	Type   string    `json:"type"` // "state" | "error"
	State  *stateRes `json:"state,omitempty"`
	Status int       `json:"status,omitempty"`
	Error  *errorRes `json:"error,omitempty"`
}

func (s *Server) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{CheckOrigin: func(r *http.Request) bool {
		o := r.Header.Get("Origin")
		return o == "" || o == s.cfg.ClientOrigin
	}}
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	tag := i18n.ResolveTag(r, s.lang)

	// Refuse before upgrading so a dead session gets a plain 404.
	var snap stateRes
	if err := s.store.View(r.Context(), id, func(g *game.Game) error {
		snap.State = g.Snapshot()
		return nil
	}); err != nil {
		s.writeGameError(w, r, err)
		return
	}

	conn, err := s.upgrader().Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("gameId", id).Msg("ws upgrade")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxFrameBytes)
	log.Info().Str("gameId", id).Msg("ws: connect")

	if err := conn.WriteJSON(wsOut{Type: "state", State: &snap}); err != nil {
		return
	}
	for {
		var in keyReq
		if err := conn.ReadJSON(&in); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Str("gameId", id).Msg("ws: read")
			}
			return
		}

		out := wsOut{Type: "state"}
		res, err := s.apply(r.Context(), id, input.Parse(in.Key), tag)
		if err != nil {
			status, body := s.gameError(tag, err)
			if status == http.StatusInternalServerError {
				log.Error().Err(err).Str("gameId", id).Msg("game move")
			}
			out = wsOut{Type: "error", Status: status, Error: &body}
		} else {
			out.State = &res
		}
		if err := conn.WriteJSON(out); err != nil {
			log.Debug().Err(err).Str("gameId", id).Msg("ws: write")
			return
		}
	}
}
