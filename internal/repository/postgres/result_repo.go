package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/iamasit07/connect4-cpu/backend/internal/domain"
)

// ResultRepo archives finished rounds. It never stores live game state.
type ResultRepo struct {
	DB *sql.DB
}

func NewResultRepo(db *sql.DB) *ResultRepo {
	return &ResultRepo{DB: db}
}

// RecordResult inserts the round once. Recording the same (game, round) again is a no-op.
func (r *ResultRepo) RecordResult(ctx context.Context, result domain.RoundResult) error {
	boardJSON, err := json.Marshal(result.Board)
	if err != nil {
		return fmt.Errorf("failed to marshal board state: %w", err)
	}

	query := `
	INSERT INTO round_results (game_id, round, status, winner, total_moves, board_state, finished_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (game_id, round) DO NOTHING;
	`

	_, err = r.DB.ExecContext(ctx, query,
		result.GameID,
		result.Round,
		string(result.Status),
		int(result.Winner),
		result.TotalMoves,
		string(boardJSON),
		result.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert round result: %w", err)
	}
	return nil
}

// ListResults returns every archived round of gameID, oldest round first.
func (r *ResultRepo) ListResults(ctx context.Context, gameID string) ([]domain.RoundResult, error) {
	query := `
	SELECT game_id, round, status, winner, total_moves, board_state, finished_at
	FROM round_results
	WHERE game_id = $1
	ORDER BY round ASC;
	`

	rows, err := r.DB.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query round results: %w", err)
	}
	defer rows.Close()

	results := []domain.RoundResult{}
	for rows.Next() {
		var (
			res    domain.RoundResult
			status string
			winner int
			board  string
		)
		if err := rows.Scan(&res.GameID, &res.Round, &status, &winner, &res.TotalMoves, &board, &res.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan round result: %w", err)
		}

		res.Status = domain.GameStatus(status)
		res.Winner = domain.PlayerID(winner)
		if err := json.Unmarshal([]byte(board), &res.Board); err != nil {
			return nil, fmt.Errorf("failed to decode board of game %s round %d: %w", res.GameID, res.Round, err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// Totals aggregates every archived round.
func (r *ResultRepo) Totals(ctx context.Context) (domain.ResultTotals, error) {
	query := `
	SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE status = $1 AND winner = 1),
		COUNT(*) FILTER (WHERE status = $1 AND winner = 2),
		COUNT(*) FILTER (WHERE status = $2)
	FROM round_results;
	`

	var t domain.ResultTotals
	err := r.DB.QueryRowContext(ctx, query, string(domain.StatusWon), string(domain.StatusDraw)).
		Scan(&t.Rounds, &t.Player1Wins, &t.Player2Wins, &t.Draws)
	if err != nil {
		return domain.ResultTotals{}, fmt.Errorf("failed to aggregate round results: %w", err)
	}
	return t, nil
}
