package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/connect4-cpu/backend/internal/domain"
)

type fakeGames struct {
	mu       sync.Mutex
	sessions map[string]domain.GameSession
}

func (f *fakeGames) GetSession(_ context.Context, id string) (domain.GameSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	gs, ok := f.sessions[id]
	if !ok {
		return domain.GameSession{}, domain.ErrSessionMissing
	}
	return gs, nil
}

func startServer(t *testing.T, games GameReader) (*ConnectionManager, string) {
	t.Helper()
	cm := NewConnectionManager()
	srv := httptest.NewServer(NewHandler(cm, games, nil))
	t.Cleanup(func() {
		cm.CloseAll()
		srv.Close()
	})
	return cm, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func readMessage(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg ServerMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestWatcherReceivesSnapshotAndUpdates(t *testing.T) {
	gs := domain.NewGameSession("g1", "random", time.Now())
	cm, url := startServer(t, &fakeGames{sessions: map[string]domain.GameSession{"g1": gs}})

	conn, _, err := websocket.DefaultDialer.Dial(url+"?gameId=g1", nil)
	require.NoError(t, err)
	defer conn.Close()

	first := readMessage(t, conn)
	assert.Equal(t, "game_state", first.Type)
	require.NotNil(t, first.Game)
	assert.Equal(t, "g1", first.Game.ID)
	assert.Equal(t, 0, first.Game.MoveCount)

	require.Eventually(t, func() bool { return cm.WatcherCount("g1") == 1 }, time.Second, 10*time.Millisecond)

	_, err = gs.Play(domain.Player1, 3, time.Now())
	require.NoError(t, err)
	cm.Publish(gs)

	next := readMessage(t, conn)
	require.NotNil(t, next.Game)
	assert.Equal(t, 1, next.Game.MoveCount)
	assert.Equal(t, domain.Player1, next.Game.Board[domain.Rows-1][3])
}

func TestPublishOnlyReachesThatGame(t *testing.T) {
	games := &fakeGames{sessions: map[string]domain.GameSession{
		"a": domain.NewGameSession("a", "random", time.Now()),
		"b": domain.NewGameSession("b", "random", time.Now()),
	}}
	cm, url := startServer(t, games)

	conn, _, err := websocket.DefaultDialer.Dial(url+"?gameId=a", nil)
	require.NoError(t, err)
	defer conn.Close()
	readMessage(t, conn)
	require.Eventually(t, func() bool { return cm.WatcherCount("a") == 1 }, time.Second, 10*time.Millisecond)

	other := games.sessions["b"]
	other.MoveCount = 99
	cm.Publish(other)

	mine := games.sessions["a"]
	mine.Round = 2
	cm.Publish(mine)

	msg := readMessage(t, conn)
	require.NotNil(t, msg.Game)
	assert.Equal(t, "a", msg.Game.ID)
	assert.Equal(t, 2, msg.Game.Round)
}

func TestUnknownGameIsRejected(t *testing.T) {
	_, url := startServer(t, &fakeGames{sessions: map[string]domain.GameSession{}})

	_, resp, err := websocket.DefaultDialer.Dial(url+"?gameId=missing", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWatcherRemovedOnDisconnect(t *testing.T) {
	gs := domain.NewGameSession("g1", "random", time.Now())
	cm, url := startServer(t, &fakeGames{sessions: map[string]domain.GameSession{"g1": gs}})

	conn, _, err := websocket.DefaultDialer.Dial(url+"?gameId=g1", nil)
	require.NoError(t, err)
	readMessage(t, conn)
	require.Eventually(t, func() bool { return cm.WatcherCount("g1") == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return cm.WatcherCount("g1") == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestSlowWatcherIsDropped(t *testing.T) {
	cm := NewConnectionManager()
	w := newWatcher("g1", nil)
	cm.add(w)

	gs := domain.NewGameSession("g1", "random", time.Now())
	for i := 0; i < sendBuffer+1; i++ {
		cm.Publish(gs)
	}

	assert.Equal(t, 0, cm.WatcherCount("g1"))
	drained := 0
	for range w.send {
		drained++
	}
	assert.Equal(t, sendBuffer, drained)
}
