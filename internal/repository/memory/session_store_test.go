package memory

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/connect4-cpu/backend/internal/domain"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestCreateAndGet(t *testing.T) {
	store := NewSessionStore()

	gs := domain.NewGameSession("g1", "random", now)
	require.NoError(t, store.Create("g1", gs))

	got, ok := store.Get("g1")
	require.True(t, ok)
	assert.Equal(t, gs, got)

	_, ok = store.Get("missing")
	assert.False(t, ok)

	err := store.Create("g1", gs)
	assert.ErrorIs(t, err, domain.ErrSessionExists)

	err = store.Create("other", gs)
	assert.ErrorIs(t, err, domain.ErrCorruptSession)
}

func TestGetReturnsCopy(t *testing.T) {
	store := NewSessionStore()
	require.NoError(t, store.Create("g1", domain.NewGameSession("g1", "random", now)))

	got, _ := store.Get("g1")
	got.Board[5][0] = domain.Player1
	got.Scores.Player1 = 9

	again, _ := store.Get("g1")
	assert.Equal(t, domain.Empty, again.Board[5][0])
	assert.Equal(t, 0, again.Scores.Player1)
}

func TestSaveUpserts(t *testing.T) {
	store := NewSessionStore()

	gs := domain.NewGameSession("g1", "random", now)
	require.NoError(t, store.Save(gs))
	assert.Equal(t, 1, store.Len())

	gs.Scores.Player2 = 3
	require.NoError(t, store.Save(gs))
	assert.Equal(t, 1, store.Len())

	got, ok := store.Get("g1")
	require.True(t, ok)
	assert.Equal(t, 3, got.Scores.Player2)

	assert.ErrorIs(t, store.Save(domain.GameSession{}), domain.ErrCorruptSession)
}

func TestUpdateKeepsStoredValueOnError(t *testing.T) {
	store := NewSessionStore()
	require.NoError(t, store.Create("g1", domain.NewGameSession("g1", "random", now)))

	boom := errors.New("boom")
	_, err := store.Update("g1", func(gs *domain.GameSession) error {
		gs.Board[5][3] = domain.Player1
		gs.MoveCount = 1
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, _ := store.Get("g1")
	assert.Equal(t, 0, got.MoveCount)
	assert.Equal(t, domain.Empty, got.Board[5][3])

	_, err = store.Update("g1", func(gs *domain.GameSession) error {
		gs.ID = "changed"
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrCorruptSession)
	_, ok := store.Get("changed")
	assert.False(t, ok)

	_, err = store.Update("missing", func(*domain.GameSession) error { return nil })
	assert.ErrorIs(t, err, domain.ErrSessionMissing)
}

func TestConcurrentMovesOnOneGameAreSerialized(t *testing.T) {
	store := NewSessionStore()
	require.NoError(t, store.Create("g1", domain.NewGameSession("g1", "random", now)))

	const attempts = 64
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update("g1", func(gs *domain.GameSession) error {
				_, err := gs.Play(gs.CurrentPlayer, 0, now)
				return err
			})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, domain.ErrColumnFull)
		}()
	}
	wg.Wait()

	got, _ := store.Get("g1")
	assert.Equal(t, domain.Rows, successes)
	assert.Equal(t, domain.Rows, got.MoveCount)
	require.NoError(t, got.Check())
}

func TestDifferentGamesDoNotBlockEachOther(t *testing.T) {
	store := NewSessionStore()
	require.NoError(t, store.Create("slow", domain.NewGameSession("slow", "random", now)))
	require.NoError(t, store.Create("fast", domain.NewGameSession("fast", "random", now)))

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		store.Update("slow", func(*domain.GameSession) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	finished := make(chan struct{})
	go func() {
		store.Update("fast", func(gs *domain.GameSession) error {
			_, err := gs.Play(domain.Player1, 0, now)
			return err
		})
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("update on another game was blocked")
	}

	close(release)
	<-done
}

func TestListAndClose(t *testing.T) {
	store := NewSessionStore()
	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("g%d", i)
		require.NoError(t, store.Create(id, domain.NewGameSession(id, "random", now.Add(time.Duration(2-i)*time.Minute))))
	}

	list := store.List()
	require.Len(t, list, 3)
	assert.Equal(t, "g2", list[0].ID)
	assert.Equal(t, "g0", list[2].ID)

	store.Close()
	assert.Equal(t, 0, store.Len())
	_, ok := store.Get("g0")
	assert.False(t, ok)
}
