package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/connect4-cpu/backend/internal/domain"
)

type fakeArchive struct {
	results map[string][]domain.RoundResult
	err     error
}

func (f *fakeArchive) ListResults(_ context.Context, gameID string) ([]domain.RoundResult, error) {
	return f.results[gameID], f.err
}

type fakeStats struct {
	totals domain.ResultTotals
	err    error
}

func (f *fakeStats) Totals(context.Context) (domain.ResultTotals, error) {
	return f.totals, f.err
}

type historyView struct {
	GameID string               `json:"gameId"`
	Rounds []domain.RoundResult `json:"rounds"`
}

func TestHistoryWithoutArchive(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w, env := s.do(t, http.MethodGet, "/api/game/history?gameId=abc", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, string(domain.KindNotFound), env.Kind)
}

func TestHistoryListsArchivedRounds(t *testing.T) {
	archive := &fakeArchive{results: map[string][]domain.RoundResult{
		"old-game": {
			{GameID: "old-game", Round: 1, Status: domain.StatusWon, Winner: domain.Player1, TotalMoves: 7},
			{GameID: "old-game", Round: 2, Status: domain.StatusDraw, TotalMoves: 42},
		},
	}}
	s := newTestServer(t, archive, nil)

	w, env := s.do(t, http.MethodGet, "/api/game/history?gameId=old-game", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var v historyView
	require.NoError(t, json.Unmarshal(env.Data, &v))
	assert.Equal(t, "old-game", v.GameID)
	require.Len(t, v.Rounds, 2)
	assert.Equal(t, domain.StatusDraw, v.Rounds[1].Status)
}

func TestHistoryEmptyForLiveGame(t *testing.T) {
	s := newTestServer(t, &fakeArchive{}, nil)
	created := s.create(t, "")

	w, env := s.do(t, http.MethodGet, "/api/game/history?gameId="+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var v historyView
	require.NoError(t, json.Unmarshal(env.Data, &v))
	assert.Empty(t, v.Rounds)

	w, env = s.do(t, http.MethodGet, "/api/game/history?gameId=unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, string(domain.KindNotFound), env.Kind)
}

func TestHistoryArchiveFailure(t *testing.T) {
	s := newTestServer(t, &fakeArchive{err: errors.New("db down")}, nil)

	w, env := s.do(t, http.MethodGet, "/api/game/history?gameId=abc", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", env.Error)
}

func TestStats(t *testing.T) {
	s := newTestServer(t, nil, nil)
	w, _ := s.do(t, http.MethodGet, "/api/stats", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	want := domain.ResultTotals{Rounds: 5, Player1Wins: 2, Player2Wins: 1, Draws: 2}
	s = newTestServer(t, nil, &fakeStats{totals: want})
	w, env := s.do(t, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got domain.ResultTotals
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, want, got)
}
