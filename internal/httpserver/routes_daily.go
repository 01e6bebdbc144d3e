// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Puzzle" mode.
// Exposes two endpoints under /daily:
//   - POST /daily/new         → start today's puzzle (creates or reuses session)
//   - GET  /daily/leaderboard → fetch top 20 results for today (or a given date)
//
// Every player gets the same theme and grid for a given date: both come from
// an HMAC of the date and the configured salt. Input goes through the regular
// /game/{id}/* endpoints; the result is persisted when the last word is found.
// Each player can finish the daily puzzle once (UNIQUE(user_id, date)).

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/daily"
	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/words"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	salt     string
	date     string            // date the sessions map belongs to
	sessions map[string]string // game id keyed by player|date
	mu       sync.Mutex        // guards date and sessions
	now      func() time.Time
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		salt:     s.cfg.DailySalt,
		sessions: make(map[string]string),
		now:      time.Now,
	}
	s.dailyRoutes = dd
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today returns the date key and theme for the current UTC day.
func (d *dailyServer) today() (string, *words.Theme, error) {
	now := d.now().UTC()
	theme, err := words.At(daily.ThemeIndex(now, d.salt, len(words.Themes())))
	return daily.DateKey(now), theme, err
}

// -----------------------------------------------------------------------------
// /daily/new

// newRes is returned by /daily/new.
type newRes struct {
	GameID   string         `json:"gameId"`
	Date     string         `json:"date"`
	Theme    string         `json:"theme"`
	Played   bool           `json:"played"`
	Snapshot *game.Snapshot `json:"snapshot,omitempty"`
}

// handleNew creates or reuses a daily session for the current date.
// - If the player already has a result for today → return Played=true.
// - Otherwise reuse the live session, or generate today's grid.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	userID, anonID := d.srv.owner(w, r)
	uid := firstNonEmpty(userID, anonID)

	date, theme, err := d.today()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	// Check if already played (persisted in DB).
	if played, err := d.srv.daily.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(newRes{Date: date, Theme: theme.Slug, Played: true})
		return
	}

	// Reuse the session if it is still in memory.
	key := uid + "|" + date
	d.mu.Lock()
	if d.date != date {
		// New day: yesterday's keys can never be looked up again.
		d.date = date
		d.sessions = make(map[string]string)
	}
	id, ok := d.sessions[key]
	d.mu.Unlock()
	if ok {
		sess, err := d.srv.store.Get(r.Context(), id)
		if err == nil {
			snap := sess.Snapshot(d.now())
			_ = json.NewEncoder(w).Encode(newRes{GameID: sess.ID, Date: date, Theme: theme.Slug, Played: snap.Finished, Snapshot: &snap})
			return
		}
		// Swept from the store; forget it and start over.
		d.mu.Lock()
		delete(d.sessions, key)
		d.mu.Unlock()
	}

	seed := daily.Seed(d.now().UTC(), d.salt)
	res, _, err := generate(theme, seed)
	if err != nil {
		log.Error().Err(err).Msg("generate daily grid")
		writeError(w, http.StatusInternalServerError, "generate_failed")
		return
	}
	sess := game.NewSession(theme.Slug, res, game.WithDaily(date), game.WithSeed(seed), game.WithOwner(uid))
	if err := d.srv.store.Save(r.Context(), sess); err != nil {
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	d.srv.insertGameRow(r.Context(), sess, userID, anonID)

	d.mu.Lock()
	if d.date == date {
		d.sessions[key] = sess.ID
	}
	d.mu.Unlock()

	snap := sess.Snapshot(d.now())
	_ = json.NewEncoder(w).Encode(newRes{GameID: sess.ID, Date: date, Theme: theme.Slug, Snapshot: &snap})
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(d.now().UTC())
	}
	rows, err := d.srv.daily.Leaderboard(r.Context(), date, 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if rows == nil {
		rows = []daily.LBRow{}
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
