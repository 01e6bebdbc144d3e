// internal/httpserver/ws.go
//
// Live input stream for one session over a websocket.
// The client sends taps and pointer events as JSON frames; the server answers
// each with the resulting event, pushes a snapshot once a match's freeze
// window ends, and ticks the elapsed clock every second.
//
// Notes:
//   - One reader goroutine decodes frames into a channel; the handler goroutine
//     is the only writer on the connection.
//   - Inputs are queued, not applied concurrently; a full queue drops frames.

package httpserver

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/puzzle"
	"github.com/robalobadob/wordsearch/internal/selection"
)

const (
	wsWriteWait    = 5 * time.Second
	wsReadLimit    = 4 << 10
	wsQueue        = 32
	wsTickInterval = time.Second
)

// wsIn is one client frame.
type wsIn struct {
	Type   string            `json:"type"` // tap | down | move | up | snapshot
	Row    int               `json:"row"`
	Col    int               `json:"col"`
	X      float64           `json:"x"`
	Y      float64           `json:"y"`
	Bounds *selection.Bounds `json:"bounds,omitempty"`
}

// wsOut is one server frame.
type wsOut struct {
	Type     string         `json:"type"` // event | snapshot | tick | error
	Event    *game.Event    `json:"event,omitempty"`
	Snapshot *game.Snapshot `json:"snapshot,omitempty"`
	Elapsed  int            `json:"elapsed,omitempty"`
	Error    string         `json:"error,omitempty"`
}

func (s *Server) upgrader() *websocket.Upgrader {
	origin := s.cfg.ClientOrigin
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			o := r.Header.Get("Origin")
			return o == "" || o == origin
		},
	}
}

// handleWS upgrades and serves the live stream for session {id}.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	logger := hlog.FromRequest(r).With().Str("gameId", sess.ID).Logger()

	conn, err := s.upgrader().Upgrade(w, r, nil)
	if err != nil {
		logger.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(wsReadLimit)

	in := make(chan wsIn, wsQueue)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var m wsIn
			if err := conn.ReadJSON(&m); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logger.Debug().Err(err).Msg("websocket read")
				}
				return
			}
			select {
			case in <- m:
			default:
				logger.Warn().Msg("websocket input queue full, dropping frame")
			}
		}
	}()

	send := func(out wsOut) error {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		return conn.WriteJSON(out)
	}

	snap := sess.Snapshot(time.Now())
	if err := send(wsOut{Type: "snapshot", Snapshot: &snap}); err != nil {
		return
	}

	ticker := time.NewTicker(wsTickInterval)
	defer ticker.Stop()
	// settle fires once a match's freeze window has passed.
	settle := time.NewTimer(time.Hour)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return

		case now := <-ticker.C:
			if sess.Finished() {
				continue
			}
			if err := send(wsOut{Type: "tick", Elapsed: int(sess.Elapsed(now) / time.Second)}); err != nil {
				return
			}

		case <-settle.C:
			snap := sess.Snapshot(time.Now())
			if err := send(wsOut{Type: "snapshot", Snapshot: &snap}); err != nil {
				return
			}

		case m := <-in:
			out := s.applyWS(r, sess, m)
			if out.Event != nil && out.Event.Match != nil {
				settle.Reset(game.FreezeDelay)
			}
			if err := send(out); err != nil {
				return
			}
		}
	}
}

// applyWS routes one client frame to the session.
func (s *Server) applyWS(r *http.Request, sess *game.Session, m wsIn) wsOut {
	var ev game.Event
	switch m.Type {
	case "tap":
		ev = sess.Tap(puzzle.Coord{Row: m.Row, Col: m.Col})
	case "down", "move", "up":
		var err error
		ev, err = applyPointer(sess, pointerReq{Type: m.Type, X: m.X, Y: m.Y, Bounds: m.Bounds})
		if err != nil {
			return wsOut{Type: "error", Error: err.Error()}
		}
	case "snapshot":
		snap := sess.Snapshot(time.Now())
		return wsOut{Type: "snapshot", Snapshot: &snap}
	default:
		return wsOut{Type: "error", Error: "unknown_type"}
	}
	s.persistProgress(r.Context(), sess, ev)
	return wsOut{Type: "event", Event: &ev}
}
