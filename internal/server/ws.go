package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/SGrimsley02/sweeper/internal/solver"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// handleWatch streams an autoplay run over a websocket: one solver
// turn per tick, one snapshot per turn, closing once the game reaches
// a terminal state. The per-session lock is held only for the duration
// of each turn, so a watched game can still be poked over HTTP between
// ticks.
func (h *Handler) handleWatch(w http.ResponseWriter, r *http.Request) {
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

	tier := solver.Hard
	if s := r.URL.Query().Get("tier"); s != "" {
		if tier, err = solver.ParseTier(s); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
	}
	interval := 250 * time.Millisecond
	if s := r.URL.Query().Get("interval_ms"); s != "" {
		ms, err := strconv.Atoi(s)
		if err != nil || ms < 50 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		interval = time.Duration(ms) * time.Millisecond
	}

	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("upgrade: ", err)
		return
	}
	defer c.Close()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}

		entry.Lock()
		entry.Session.Step(tier)
		msg := SessionJSON{
			SessionId: strconv.Itoa(id),
			Snapshot:  entry.Session.Snapshot(),
		}
		done := entry.Session.Terminal()
		entry.Unlock()

		if err := c.WriteJSON(msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				h.log.Warn("write: ", err)
			}
			return
		}
		if done {
			return
		}
	}
}
