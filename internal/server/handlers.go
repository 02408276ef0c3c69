// Package server fronts the game engine with a small HTTP API: create
// a session, play it by hand, let a solver tier play it, or spend a
// hint. It is the orchestrator of the core: it owns session lifecycle
// and serialization and adds no game semantics of its own.
package server

import (
	"encoding/json"
	"hash/maphash"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/gorilla/schema"
	"github.com/sirupsen/logrus"

	"github.com/SGrimsley02/sweeper/internal/event"
	"github.com/SGrimsley02/sweeper/internal/game"
	"github.com/SGrimsley02/sweeper/internal/solver"
)

var dec = schema.NewDecoder()

func init() {
	dec.IgnoreUnknownKeys(true)
}

type Handler struct {
	log   *logrus.Logger
	store *Store
}

func New(log *logrus.Logger) *Handler {
	return &Handler{log: log, store: NewStore()}
}

func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/game", h.handleNewGame)
	mux.HandleFunc("GET /v1/game/{id}", h.handleGetGame)
	mux.HandleFunc("POST /v1/game/{id}/open", h.handleOpen)
	mux.HandleFunc("POST /v1/game/{id}/flag", h.handleFlag)
	mux.HandleFunc("POST /v1/game/{id}/step", h.handleStep)
	mux.HandleFunc("POST /v1/game/{id}/hint", h.handleHint)
	mux.HandleFunc("POST /v1/game/{id}/forfeit", h.handleForfeit)
	mux.HandleFunc("POST /v1/game/{id}/reset", h.handleReset)
	mux.HandleFunc("DELETE /v1/game/{id}", h.handleDeleteGame)

	mux.HandleFunc("/v1/game/{id}/watch", h.handleWatch)

	return mux
}

type NewGameParams struct {
	Size      int `schema:"size,required"`
	MineCount int `schema:"mine_count,required"`
}

type PosParams struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

type SessionJSON struct {
	SessionId string `json:"session_id"`
	game.Snapshot
}

type HintJSON struct {
	SessionId string          `json:"session_id"`
	Status    game.HintStatus `json:"status"`
	game.Snapshot
}

// newSessionRand seeds a per-session PCG from maphash, so sessions are
// independent without any global generator.
func newSessionRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(),
		new(maphash.Hash).Sum64(),
	))
}

func (h *Handler) sendJSON(w http.ResponseWriter, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.Error(err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(payload); err != nil {
		h.log.Error(err)
	}
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var params NewGameParams
	if err := dec.Decode(&params, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	sess, err := game.NewSession(
		params.Size, params.MineCount, newSessionRand(),
		game.WithEmitter(event.Log{Logger: h.log}),
	)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(err.Error()))
		return
	}
	id := h.store.Add(sess)
	h.log.WithFields(logrus.Fields{
		"sessionId": id,
		"size":      params.Size,
		"mineCount": params.MineCount,
	}).Info("new game session")
	h.sendJSON(w, SessionJSON{
		SessionId: strconv.Itoa(id),
		Snapshot:  sess.Snapshot(),
	})
}

// withSession looks the session up, runs fn under the per-session lock
// and replies with the resulting snapshot unless fn already replied.
func (h *Handler) withSession(
	w http.ResponseWriter, r *http.Request,
	fn func(sess *game.Session) (respond bool),
) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	entry, ok := h.store.Get(id)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	entry.Lock()
	defer entry.Unlock()
	if fn(entry.Session) {
		h.sendJSON(w, SessionJSON{
			SessionId: strconv.Itoa(id),
			Snapshot:  entry.Session.Snapshot(),
		})
	}
}

func (h *Handler) handleGetGame(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(*game.Session) bool { return true })
}

func (h *Handler) handleOpen(w http.ResponseWriter, r *http.Request) {
	var pos PosParams
	if err := dec.Decode(&pos, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	h.withSession(w, r, func(sess *game.Session) bool {
		if err := sess.Open(pos.Row, pos.Col); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return false
		}
		return true
	})
}

func (h *Handler) handleFlag(w http.ResponseWriter, r *http.Request) {
	var pos PosParams
	if err := dec.Decode(&pos, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	h.withSession(w, r, func(sess *game.Session) bool {
		if err := sess.ToggleFlag(pos.Row, pos.Col); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return false
		}
		return true
	})
}

func (h *Handler) handleStep(w http.ResponseWriter, r *http.Request) {
	tier, err := solver.ParseTier(r.URL.Query().Get("tier"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(err.Error()))
		return
	}
	h.withSession(w, r, func(sess *game.Session) bool {
		sess.Step(tier)
		return true
	})
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	entry, ok := h.store.Get(id)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	entry.Lock()
	defer entry.Unlock()
	status := entry.Session.Hint()
	h.sendJSON(w, HintJSON{
		SessionId: strconv.Itoa(id),
		Status:    status,
		Snapshot:  entry.Session.Snapshot(),
	})
}

func (h *Handler) handleForfeit(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(sess *game.Session) bool {
		sess.Forfeit()
		return true
	})
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(sess *game.Session) bool {
		sess.Reset()
		return true
	})
}

func (h *Handler) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if _, ok := h.store.Get(id); !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	h.store.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}
