package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iamasit07/connect4-cpu/backend/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 512
	sendBuffer     = 16
)

// ServerMessage is everything a watcher ever receives.
type ServerMessage struct {
	Type    string              `json:"type"`
	Game    *domain.GameSession `json:"game,omitempty"`
	Message string              `json:"message,omitempty"`
}

// Watcher is one websocket following one game.
type Watcher struct {
	gameID string
	conn   *websocket.Conn
	send   chan ServerMessage
	once   sync.Once
}

func newWatcher(gameID string, conn *websocket.Conn) *Watcher {
	return &Watcher{gameID: gameID, conn: conn, send: make(chan ServerMessage, sendBuffer)}
}

func (w *Watcher) close() {
	w.once.Do(func() { close(w.send) })
}

// ConnectionManager tracks watchers per game and fans snapshots out to them.
type ConnectionManager struct {
	mu       sync.RWMutex
	watchers map[string]map[*Watcher]struct{}
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{watchers: make(map[string]map[*Watcher]struct{})}
}

func (cm *ConnectionManager) add(w *Watcher) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	set, ok := cm.watchers[w.gameID]
	if !ok {
		set = make(map[*Watcher]struct{})
		cm.watchers[w.gameID] = set
	}
	set[w] = struct{}{}
}

func (cm *ConnectionManager) remove(w *Watcher) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.removeLocked(w)
}

func (cm *ConnectionManager) removeLocked(w *Watcher) {
	set, ok := cm.watchers[w.gameID]
	if !ok {
		return
	}
	if _, ok := set[w]; !ok {
		return
	}
	delete(set, w)
	if len(set) == 0 {
		delete(cm.watchers, w.gameID)
	}
	w.close()
}

// Publish queues the snapshot for every watcher of the game. A watcher whose
// buffer is full is dropped rather than allowed to stall game requests.
func (cm *ConnectionManager) Publish(session domain.GameSession) {
	msg := ServerMessage{Type: "game_state", Game: &session}

	cm.mu.Lock()
	defer cm.mu.Unlock()

	for w := range cm.watchers[session.ID] {
		select {
		case w.send <- msg:
		default:
			log.Printf("[WATCH] Watcher of game %s is too slow, dropping it", session.ID)
			cm.removeLocked(w)
		}
	}
}

// WatcherCount returns how many sockets follow gameID.
func (cm *ConnectionManager) WatcherCount(gameID string) int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.watchers[gameID])
}

// CloseAll drops every watcher. Used on shutdown.
func (cm *ConnectionManager) CloseAll() {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	for _, set := range cm.watchers {
		for w := range set {
			cm.removeLocked(w)
		}
	}
}

// writePump owns every write to the socket, so gorilla's single-writer rule holds.
func (w *Watcher) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		w.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-w.send:
			w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				w.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := w.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := w.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
