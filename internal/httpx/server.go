// path: internal/httpx/server.go
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shadow_chess_poc/internal/game"
	"shadow_chess_poc/internal/storage"
)

// Server wires the HTTP layer to the battle engine, templates, and the
// stats store.
type Server struct {
	battleMu   sync.Mutex
	battle     *game.Battle
	matchID    string
	matchStart time.Time
	recorded   bool

	store *storage.Store // may be nil: stats endpoints degrade gracefully
	tmpl  *template.Template
	log   *zap.Logger

	srvMu sync.Mutex
	srv   *http.Server
}

const (
	maxJSONBodyBytes int64 = 1 << 20
	htmlCSP                = "default-src 'self'; script-src 'self'; style-src 'self'; img-src 'self' data:; connect-src 'self'; frame-ancestors 'none'; base-uri 'none'; form-action 'self'"
	apiCSP                 = "default-src 'none'; frame-ancestors 'none'; base-uri 'none'"
)

// NewServer builds a Server and parses the index template.
func NewServer(battle *game.Battle, store *storage.Store, log *zap.Logger) (*Server, error) {
	// Expect file at web/templates/index.html with: {{define "index"}}...{{end}}
	t, err := template.ParseFiles("web/templates/index.html")
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		battle:     battle,
		matchID:    uuid.NewString(),
		matchStart: time.Now(),
		store:      store,
		tmpl:       t,
		log:        log,
	}, nil
}

// Listen starts the HTTP server.
func (s *Server) Listen(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	s.srvMu.Lock()
	s.srv = srv
	s.srvMu.Unlock()
	defer func() {
		s.srvMu.Lock()
		s.srv = nil
		s.srvMu.Unlock()
	}()

	s.log.Info("http listening", zap.String("addr", addr))
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close attempts a graceful shutdown of the HTTP server.
func (s *Server) Close(ctx context.Context) error {
	s.srvMu.Lock()
	srv := s.srv
	s.srvMu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// routes configures the ServeMux with UI, JSON APIs, static files.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)

	// JSON APIs
	mux.HandleFunc("/api/state", s.withJSON(s.handleState))
	mux.HandleFunc("/api/select", s.withJSON(s.handleSelect))
	mux.HandleFunc("/api/move", s.withJSON(s.handleMove))
	mux.HandleFunc("/api/enemy-turn", s.withJSON(s.handleEnemyTurn))
	mux.HandleFunc("/api/reset", s.withJSON(s.handleReset))
	mux.HandleFunc("/api/stats", s.withJSON(s.handleStats))

	// Static assets under /static/
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))

	// Health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// ---- UI ----

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	applyHTMLSecurityHeaders(w.Header())
	s.battleMu.Lock()
	state := s.battle.State()
	matchID := s.matchID
	s.battleMu.Unlock()
	init := struct {
		State   game.BattleState `json:"state"`
		MatchID string           `json:"matchId"`
	}{
		State:   state,
		MatchID: matchID,
	}
	data := map[string]any{
		"Init": mustJSON(init),
	}
	if err := s.tmpl.ExecuteTemplate(w, "index", data); err != nil {
		s.log.Error("template exec", zap.Error(err))
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
}

// ---- JSON helpers ----

func (s *Server) withJSON(h func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applyAPISecurityHeaders(w.Header())
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if r.Body != nil && r.Body != http.NoBody {
			r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	writeJSON(w, map[string]string{"error": msg})
}

func mustJSON(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return template.JS(b)
}

func applyHTMLSecurityHeaders(h http.Header) {
	h.Set("Content-Security-Policy", htmlCSP)
	h.Set("Cross-Origin-Opener-Policy", "same-origin")
	h.Set("Cross-Origin-Embedder-Policy", "require-corp")
}

func applyAPISecurityHeaders(h http.Header) {
	h.Set("Content-Security-Policy", apiCSP)
	h.Set("Cross-Origin-Opener-Policy", "same-origin")
	h.Set("Cross-Origin-Embedder-Policy", "require-corp")
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// statePayload must be called with battleMu held.
func (s *Server) statePayload() map[string]any {
	return map[string]any{
		"state":   s.battle.State(),
		"matchId": s.matchID,
	}
}

// recordIfFinished persists the match outcome the first time the battle
// reaches a terminal phase. Called with battleMu held.
func (s *Server) recordIfFinished() {
	if s.recorded || s.store == nil || s.battle.Phase() != game.PhaseFinished {
		return
	}
	rec := storage.MatchRecord{
		ID:       s.matchID,
		Outcome:  s.battle.Outcome().String(),
		Turns:    s.battle.Turn(),
		Duration: time.Since(s.matchStart),
	}
	if err := s.store.RecordMatch(rec); err != nil {
		s.log.Error("record match", zap.Error(err))
		return
	}
	s.recorded = true
}

// ---- API: state ----

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.battleMu.Lock()
	payload := s.statePayload()
	s.battleMu.Unlock()
	writeJSON(w, payload)
}

// ---- API: select ----

type selectBody struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	defer r.Body.Close()
	var body selectBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	s.battleMu.Lock()
	err := s.battle.Select(body.X, body.Y)
	s.recordIfFinished()
	payload := s.statePayload()
	s.battleMu.Unlock()

	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, payload)
}

// ---- API: move ----

type moveBody struct {
	FromX int `json:"fromX"`
	FromY int `json:"fromY"`
	ToX   int `json:"toX"`
	ToY   int `json:"toY"`
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	defer r.Body.Close()
	var body moveBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	s.battleMu.Lock()
	err := s.battle.PlayerMove(body.FromX, body.FromY, body.ToX, body.ToY)
	s.recordIfFinished()
	payload := s.statePayload()
	s.battleMu.Unlock()

	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, payload)
}

// ---- API: enemy turn ----

func (s *Server) handleEnemyTurn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if r.Body != nil {
		r.Body.Close()
	}
	s.battleMu.Lock()
	err := s.battle.EnemyTurn()
	s.recordIfFinished()
	payload := s.statePayload()
	s.battleMu.Unlock()

	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, payload)
}

// ---- API: reset ----

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if r.Body != nil {
		r.Body.Close()
	}
	s.battleMu.Lock()
	s.battle.Reset()
	s.matchID = uuid.NewString()
	s.matchStart = time.Now()
	s.recorded = false
	payload := s.statePayload()
	s.battleMu.Unlock()

	writeJSON(w, payload)
}

// ---- API: stats ----

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "stats storage disabled")
		return
	}
	stats, err := s.store.LoadStats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, map[string]any{"stats": stats})
}
