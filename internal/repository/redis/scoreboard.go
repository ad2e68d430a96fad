package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iamasit07/connect4-cpu/backend/internal/domain"
)

const (
	keyRounds      = "stats:rounds"
	keyPlayer1Wins = "stats:wins:1"
	keyPlayer2Wins = "stats:wins:2"
	keyDraws       = "stats:draws"

	// marks a round as counted so a repeated record does not count twice
	recordedTTL = 24 * time.Hour
)

// commander is the part of *redis.Client the scoreboard uses.
type commander interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
}

// ScoreBoard keeps global win/draw counters across every game.
type ScoreBoard struct {
	client commander
}

func NewScoreBoard(client *redis.Client) *ScoreBoard {
	return &ScoreBoard{client: client}
}

func recordedKey(gameID string, round int) string {
	return fmt.Sprintf("stats:recorded:%s:%d", gameID, round)
}

func (s *ScoreBoard) RecordResult(ctx context.Context, result domain.RoundResult) error {
	fresh, err := s.client.SetNX(ctx, recordedKey(result.GameID, result.Round), 1, recordedTTL).Result()
	if err != nil {
		return fmt.Errorf("failed to mark round recorded: %w", err)
	}
	if !fresh {
		return nil
	}

	keys := []string{keyRounds}
	switch {
	case result.Status == domain.StatusDraw:
		keys = append(keys, keyDraws)
	case result.Winner == domain.Player1:
		keys = append(keys, keyPlayer1Wins)
	case result.Winner == domain.Player2:
		keys = append(keys, keyPlayer2Wins)
	}

	for _, key := range keys {
		if err := s.client.Incr(ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to increment %s: %w", key, err)
		}
	}
	return nil
}

func (s *ScoreBoard) Totals(ctx context.Context) (domain.ResultTotals, error) {
	values, err := s.client.MGet(ctx, keyRounds, keyPlayer1Wins, keyPlayer2Wins, keyDraws).Result()
	if err != nil {
		return domain.ResultTotals{}, fmt.Errorf("failed to read counters: %w", err)
	}

	counts := make([]int64, len(values))
	for i, v := range values {
		if v == nil {
			continue
		}
		str, ok := v.(string)
		if !ok {
			return domain.ResultTotals{}, fmt.Errorf("unexpected counter value %T", v)
		}
		n, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return domain.ResultTotals{}, fmt.Errorf("invalid counter value %q: %w", str, err)
		}
		counts[i] = n
	}

	return domain.ResultTotals{
		Rounds:      counts[0],
		Player1Wins: counts[1],
		Player2Wins: counts[2],
		Draws:       counts[3],
	}, nil
}
