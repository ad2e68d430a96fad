package domain

import "time"

// RoundResult is what gets archived when a round reaches a terminal state.
type RoundResult struct {
	GameID     string     `json:"gameId"`
	Round      int        `json:"round"`
	Status     GameStatus `json:"status"`
	Winner     PlayerID   `json:"winner"`
	TotalMoves int        `json:"totalMoves"`
	Board      [][]int    `json:"board"`
	FinishedAt time.Time  `json:"finishedAt"`
}

func (gs *GameSession) Result() RoundResult {
	return RoundResult{
		GameID:     gs.ID,
		Round:      gs.Round,
		Status:     gs.Status,
		Winner:     gs.Winner,
		TotalMoves: gs.MoveCount,
		Board:      gs.Board.Rows2D(),
		FinishedAt: gs.UpdatedAt,
	}
}

// ResultTotals aggregates finished rounds across every game.
type ResultTotals struct {
	Rounds      int64 `json:"rounds"`
	Player1Wins int64 `json:"player1Wins"`
	Player2Wins int64 `json:"player2Wins"`
	Draws       int64 `json:"draws"`
}
