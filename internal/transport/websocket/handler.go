package websocket

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iamasit07/connect4-cpu/backend/internal/domain"
	"github.com/iamasit07/connect4-cpu/backend/pkg/httputil"
)

// GameReader loads the snapshot a new watcher starts from.
type GameReader interface {
	GetSession(ctx context.Context, gameID string) (domain.GameSession, error)
}

// Handler upgrades /ws requests into read-only game watchers.
type Handler struct {
	ConnManager *ConnectionManager
	Games       GameReader
	Upgrader    websocket.Upgrader
}

// NewHandler accepts any origin when allowedOrigins is empty.
func NewHandler(cm *ConnectionManager, games GameReader, allowedOrigins []string) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &Handler{
		ConnManager: cm,
		Games:       games,
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowed) == 0 || allowed[origin]
			},
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	gameID, err := httputil.GetGameIDFromRequest(r)
	if err != nil {
		http.Error(w, "Game ID is required", http.StatusBadRequest)
		return
	}

	session, err := h.Games.GetSession(r.Context(), gameID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	watcher := newWatcher(gameID, conn)
	watcher.send <- ServerMessage{Type: "game_state", Game: &session}
	h.ConnManager.add(watcher)
	log.Printf("[WATCH] Watcher joined game %s (%d watching)", gameID, h.ConnManager.WatcherCount(gameID))

	go watcher.writePump()
	h.readLoop(watcher)
}

// readLoop only exists to process pongs and notice the peer going away.
func (h *Handler) readLoop(w *Watcher) {
	defer func() {
		h.ConnManager.remove(w)
		log.Printf("[WATCH] Watcher left game %s", w.gameID)
	}()

	w.conn.SetReadLimit(maxMessageSize)
	w.conn.SetReadDeadline(time.Now().Add(pongWait))
	w.conn.SetPongHandler(func(string) error {
		w.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := w.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] Watcher of game %s disconnected unexpectedly: %v", w.gameID, err)
			}
			return
		}
	}
}
