// internal/httpserver/server.go
//
// HTTP server wiring for the word search backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/themes".
//   - Game endpoints (optional auth): new game, snapshot, tap, pointer, refresh, websocket.
//   - Daily puzzle endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me, /games/mine (see auth.go).
//   - Database persistence for game progress and user stats.
//
// Notes:
//   - Sessions live in the in-memory store; the games table only keeps
//     owner, theme and progress counters for history/stats.
//   - The websocket route is registered outside the request timeout.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/config"
	"github.com/robalobadob/wordsearch/internal/daily"
	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/puzzle"
	"github.com/robalobadob/wordsearch/internal/selection"
	"github.com/robalobadob/wordsearch/internal/store"
	"github.com/robalobadob/wordsearch/internal/words"
)

// Server bundles router, in-memory session store, and DB handle.
type Server struct {
	r     *chi.Mux
	store store.Store
	db    *sql.DB
	daily *daily.Store
	cfg   config.Config

	dailyRoutes *dailyServer
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, db *sql.DB, cfg config.Config) *Server {
	s := &Server{r: chi.NewRouter(), store: st, db: db, daily: daily.NewStore(db), cfg: cfg}

	// --- middleware ---
	s.r.Use(chimw.RequestID)             // add X-Request-ID
	s.r.Use(chimw.RealIP)                // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)             // recover from panics
	s.r.Use(hlog.NewHandler(log.Logger)) // request-scoped logger
	s.r.Use(s.cors)                      // credentials-friendly CORS

	// Live input stream; long-lived, so no request timeout.
	s.r.With(s.withOptionalAuth()).Get("/game/{id}/ws", s.handleWS)

	s.r.Group(func(r chi.Router) {
		r.Use(accessLog)
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
		r.Use(jsonContentType)                 // default JSON responses

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"service":"wordsearch-go","endpoints":["/health","/themes","POST /game/new","POST /game/{id}/tap","POST /game/{id}/pointer","/game/{id}/ws","/daily/*","/auth/*"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/themes", s.handleThemes)

		// Game endpoints — OPTIONAL AUTH (guests can play)
		r.Group(func(r chi.Router) {
			r.Use(s.withOptionalAuth())
			r.Post("/game/new", s.handleNewGame)
			r.Get("/game/{id}", s.handleGetGame)
			r.Post("/game/{id}/tap", s.handleTap)
			r.Post("/game/{id}/pointer", s.handlePointer)
			r.Post("/game/{id}/refresh", s.handleRefresh)

			// Daily puzzle — OPTIONAL AUTH (guests can play; result persisted on finish)
			s.mountDaily(r)
		})

		// Auth + profile/stats
		s.mountAuthRoutes(r)

		// Debug: theme/session counts
		r.Get("/debug/stats", func(w http.ResponseWriter, r *http.Request) {
			t, e := words.Stats()
			_ = json.NewEncoder(w).Encode(map[string]int{"themes": t, "entries": e, "sessions": s.store.Len()})
		})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
// A background sweeper evicts sessions idle longer than the configured TTL.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go s.sweep(ctx)

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// sweep periodically drops idle sessions.
func (s *Server) sweep(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.store.Sweep(ctx, now.Add(-s.cfg.SessionTTL)); n > 0 {
				log.Info().Int("sessions", n).Msg("swept idle sessions")
			}
		}
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ServeHTTP lets the Server be used directly as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one debug line per request.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Debug().
		Str("reqId", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})

// writeError sends a JSON error body with the given status.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// ------------------------------ THEMES -------------------------------------

type themeRes struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Words int    `json:"words"`
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	out := []themeRes{}
	for _, t := range words.Themes() {
		out = append(out, themeRes{Slug: t.Slug, Title: t.Title, Words: len(t.Entries)})
	}
	_ = json.NewEncoder(w).Encode(out)
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Theme string `json:"theme"` // theme slug; empty picks a random theme
	Seed  int64  `json:"seed"`  // optional fixed seed (testing, sharing)
}
type newGameRes struct {
	GameID   string        `json:"gameId"`
	Snapshot game.Snapshot `json:"snapshot"`
}

// inputRes is returned by every input endpoint.
type inputRes struct {
	Event    game.Event    `json:"event"`
	Snapshot game.Snapshot `json:"snapshot"`
}

// generate builds a fresh puzzle for theme; seed 0 picks one.
func generate(theme *words.Theme, seed int64) (*puzzle.Result, int64, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts := puzzle.DefaultOptions()
	opts.Seed = seed
	res, err := puzzle.New(opts).Generate(theme.Entries)
	if err != nil {
		return nil, 0, err
	}
	if len(res.Dropped) > 0 {
		log.Debug().Str("theme", theme.Slug).Int("dropped", len(res.Dropped)).Msg("words left out of grid")
	}
	return res, seed, nil
}

// handleNewGame creates a new in-memory session and persists a DB "owner" row
// (either user_id or anonymous_id) for history/stats.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	theme, err := pickTheme(req.Theme)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, seed, err := generate(theme, req.Seed)
	if err != nil {
		log.Error().Err(err).Msg("generate grid")
		writeError(w, http.StatusInternalServerError, "generate_failed")
		return
	}

	userID, anonID := s.owner(w, r)
	sess := game.NewSession(theme.Slug, res, game.WithSeed(seed), game.WithOwner(firstNonEmpty(userID, anonID)))
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	s.insertGameRow(r.Context(), sess, userID, anonID)

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(newGameRes{GameID: sess.ID, Snapshot: sess.Snapshot(time.Now())})
}

func pickTheme(slug string) (*words.Theme, error) {
	if slug == "" {
		return words.Random()
	}
	return words.Get(slug)
}

// session loads the {id} session or writes a 404.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*game.Session, bool) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	return sess, true
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(sess.Snapshot(time.Now()))
}

// tapReq is the payload for POST /game/{id}/tap.
type tapReq struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// handleTap applies a discrete tap (click adapter).
func (s *Server) handleTap(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req tapReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	ev := sess.Tap(puzzle.Coord{Row: req.Row, Col: req.Col})
	s.persistProgress(r.Context(), sess, ev)
	_ = json.NewEncoder(w).Encode(inputRes{Event: ev, Snapshot: sess.Snapshot(time.Now())})
}

// pointerReq is the payload for POST /game/{id}/pointer.
type pointerReq struct {
	Type   string            `json:"type"` // "down" | "move" | "up"
	X      float64           `json:"x"`
	Y      float64           `json:"y"`
	Bounds *selection.Bounds `json:"bounds,omitempty"` // required on "down"
}

var errBadPointer = errors.New("bad_pointer")

// applyPointer routes a pointer event to the session's drag adapter.
func applyPointer(sess *game.Session, req pointerReq) (game.Event, error) {
	switch req.Type {
	case "down":
		if req.Bounds == nil {
			return game.Event{}, errBadPointer
		}
		return sess.PointerDown(req.X, req.Y, *req.Bounds), nil
	case "move":
		return sess.PointerMove(req.X, req.Y), nil
	case "up":
		return sess.PointerUp(), nil
	}
	return game.Event{}, errBadPointer
}

// handlePointer applies one continuous-drag event (drag adapter).
func (s *Server) handlePointer(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req pointerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	ev, err := applyPointer(sess, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.persistProgress(r.Context(), sess, ev)
	_ = json.NewEncoder(w).Encode(inputRes{Event: ev, Snapshot: sess.Snapshot(time.Now())})
}

// handleRefresh replaces the puzzle with a fresh grid of the same theme.
// The daily puzzle cannot be refreshed.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if sess.Mode == game.ModeDaily {
		writeError(w, http.StatusConflict, "daily_locked")
		return
	}
	theme, err := words.Get(sess.Theme)
	if err != nil {
		writeError(w, http.StatusGone, err.Error())
		return
	}
	res, seed, err := generate(theme, 0)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "generate_failed")
		return
	}
	s.abandonGame(r.Context(), sess)
	sess.Reset(res, seed)
	snap := sess.Snapshot(time.Now())
	if _, err := s.db.ExecContext(r.Context(),
		`UPDATE games SET seed=?, started_at=?, finished_at=NULL, status='playing', found=0, total=? WHERE id=?`,
		seed, time.Now().UTC().Format(time.RFC3339), snap.Total, sess.ID); err != nil {
		log.Warn().Err(err).Str("gameId", sess.ID).Msg("reset game row")
	}
	_ = json.NewEncoder(w).Encode(snap)
}

// ----------------------------- persistence ---------------------------------

// insertGameRow records who started sess. Failures are logged, not fatal.
func (s *Server) insertGameRow(ctx context.Context, sess *game.Session, userID, anonID string) {
	snap := sess.Snapshot(time.Now())
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO games (id, user_id, anonymous_id, theme, mode, seed, started_at, status, found, total)
		 VALUES (?,?,?,?,?,?,?,'playing',0,?)`,
		sess.ID, nullable(userID), nullable(anonID), sess.Theme, string(sess.Mode), sess.Seed,
		time.Now().UTC().Format(time.RFC3339), snap.Total)
	if err != nil {
		log.Warn().Err(err).Str("gameId", sess.ID).Msg("insert game row")
	}
}

// persistProgress stores found counts after a match and, when the puzzle is
// complete, closes the game row, bumps user stats and records daily results.
// Best effort: failures are logged.
func (s *Server) persistProgress(ctx context.Context, sess *game.Session, ev game.Event) {
	if ev.Match == nil {
		return
	}
	now := time.Now()
	snap := sess.Snapshot(now)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Warn().Err(err).Msg("begin progress tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if !ev.Finished {
		if _, err := tx.ExecContext(ctx, `UPDATE games SET found=? WHERE id=?`, snap.FoundCount, sess.ID); err != nil {
			log.Warn().Err(err).Msg("update found")
		}
		_ = tx.Commit()
		return
	}

	if _, err := tx.ExecContext(ctx, `UPDATE games SET found=?, status='completed', finished_at=? WHERE id=?`,
		snap.FoundCount, now.UTC().Format(time.RFC3339), sess.ID); err != nil {
		log.Warn().Err(err).Msg("finish game")
	}
	var uid sql.NullString
	if err := tx.QueryRowContext(ctx, `SELECT user_id FROM games WHERE id=?`, sess.ID).Scan(&uid); err == nil && uid.Valid {
		if err := bumpStats(ctx, tx, uid.String, true); err != nil {
			log.Warn().Err(err).Str("user", uid.String).Msg("bump stats")
		}
	}
	_ = tx.Commit()

	log.Info().Str("gameId", sess.ID).Str("theme", sess.Theme).Int("words", snap.Total).
		Int("elapsedSec", snap.ElapsedSeconds).Msg("puzzle completed")

	if sess.Mode == game.ModeDaily {
		err := s.daily.InsertResult(ctx, daily.Result{
			UserID:    sess.Owner,
			Date:      sess.Date,
			Theme:     sess.Theme,
			Found:     snap.FoundCount,
			Total:     snap.Total,
			ElapsedMs: int(sess.Elapsed(now).Milliseconds()),
		})
		if err != nil {
			log.Warn().Err(err).Msg("insert daily result")
		}
	}
}

// abandonGame counts an unfinished puzzle against its owner's streak.
func (s *Server) abandonGame(ctx context.Context, sess *game.Session) {
	if sess.Finished() {
		return
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return
	}
	defer func() { _ = tx.Rollback() }()
	var uid sql.NullString
	if err := tx.QueryRowContext(ctx, `SELECT user_id FROM games WHERE id=?`, sess.ID).Scan(&uid); err != nil || !uid.Valid {
		return
	}
	if err := bumpStats(ctx, tx, uid.String, false); err != nil {
		log.Warn().Err(err).Str("user", uid.String).Msg("bump stats")
		return
	}
	_ = tx.Commit()
}

// bumpStats increments games played; updates completed and streak (within tx).
func bumpStats(ctx context.Context, tx *sql.Tx, userID string, completed bool) error {
	var gp, done, streak int
	row := tx.QueryRowContext(ctx, `SELECT games_played, completed, streak FROM users WHERE id=?`, userID)
	if err := row.Scan(&gp, &done, &streak); err != nil {
		return err
	}
	gp++
	if completed {
		done++
		streak++
	} else {
		streak = 0
	}
	_, err := tx.ExecContext(ctx, `UPDATE users SET games_played=?, completed=?, streak=? WHERE id=?`, gp, done, streak, userID)
	return err
}

// nullable maps "" to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
