package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/iamasit07/connect4-cpu/backend/internal/domain"
)

const memoryPath = ":memory:"

// ResultRepo archives finished rounds in a local SQLite file.
type ResultRepo struct {
	db *sql.DB
}

// Open creates the database file (and its directory) when needed. path ":memory:"
// keeps everything in process, on a single connection so every query sees the same data.
func Open(ctx context.Context, path string) (*ResultRepo, error) {
	dsn := path
	if path != memoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == memoryPath {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	repo := &ResultRepo{db: db}
	if err := repo.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	log.Printf("[DB] SQLite archive ready at %s", path)
	return repo, nil
}

func (r *ResultRepo) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS round_results (
		game_id TEXT NOT NULL,
		round INTEGER NOT NULL,
		status TEXT NOT NULL,
		winner INTEGER NOT NULL DEFAULT 0,
		total_moves INTEGER NOT NULL,
		board_state TEXT NOT NULL,
		finished_at INTEGER NOT NULL,
		PRIMARY KEY (game_id, round)
	);
	CREATE INDEX IF NOT EXISTS idx_round_results_finished ON round_results(finished_at);
	`
	_, err := r.db.ExecContext(ctx, query)
	return err
}

func (r *ResultRepo) RecordResult(ctx context.Context, result domain.RoundResult) error {
	boardJSON, err := json.Marshal(result.Board)
	if err != nil {
		return fmt.Errorf("marshal board state: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
	INSERT OR IGNORE INTO round_results (game_id, round, status, winner, total_moves, board_state, finished_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`,
		result.GameID,
		result.Round,
		string(result.Status),
		int(result.Winner),
		result.TotalMoves,
		string(boardJSON),
		result.FinishedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert round result: %w", err)
	}
	return nil
}

func (r *ResultRepo) ListResults(ctx context.Context, gameID string) ([]domain.RoundResult, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT game_id, round, status, winner, total_moves, board_state, finished_at
	FROM round_results
	WHERE game_id = ?
	ORDER BY round ASC`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query round results: %w", err)
	}
	defer rows.Close()

	results := []domain.RoundResult{}
	for rows.Next() {
		var (
			res      domain.RoundResult
			status   string
			winner   int
			board    string
			finished int64
		)
		if err := rows.Scan(&res.GameID, &res.Round, &status, &winner, &res.TotalMoves, &board, &finished); err != nil {
			return nil, fmt.Errorf("scan round result: %w", err)
		}

		res.Status = domain.GameStatus(status)
		res.Winner = domain.PlayerID(winner)
		res.FinishedAt = time.Unix(0, finished).UTC()
		if err := json.Unmarshal([]byte(board), &res.Board); err != nil {
			return nil, fmt.Errorf("decode board of game %s round %d: %w", res.GameID, res.Round, err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// Totals aggregates every archived round. Used for /api/stats when Redis is off.
func (r *ResultRepo) Totals(ctx context.Context) (domain.ResultTotals, error) {
	var t domain.ResultTotals
	err := r.db.QueryRowContext(ctx, `
	SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN status = ? AND winner = 1 THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN status = ? AND winner = 2 THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0)
	FROM round_results`,
		string(domain.StatusWon), string(domain.StatusWon), string(domain.StatusDraw),
	).Scan(&t.Rounds, &t.Player1Wins, &t.Player2Wins, &t.Draws)
	if err != nil {
		return domain.ResultTotals{}, fmt.Errorf("aggregate round results: %w", err)
	}
	return t, nil
}

func (r *ResultRepo) Close() error {
	return r.db.Close()
}
