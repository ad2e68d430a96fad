package domain

import "time"

// Scores counts rounds won per side. JSON keys follow the player numbers.
type Scores struct {
	Player1 int `json:"1"`
	Player2 int `json:"2"`
}

func (s Scores) Of(p PlayerID) int {
	switch p {
	case Player1:
		return s.Player1
	case Player2:
		return s.Player2
	}
	return 0
}

func (s *Scores) add(p PlayerID) {
	switch p {
	case Player1:
		s.Player1++
	case Player2:
		s.Player2++
	}
}

// GameSession is one independent game against the opponent, keyed by ID.
// It is a plain value: the store hands out copies, and LastMove / WinningLine
// are replaced on change, never written through.
type GameSession struct {
	ID            string     `json:"id"`
	Board         Board      `json:"board"`
	CurrentPlayer PlayerID   `json:"currentPlayer"`
	Status        GameStatus `json:"status"`
	Winner        PlayerID   `json:"winner"`
	WinningLine   []Cell     `json:"winningLine,omitempty"`
	Scores        Scores     `json:"scores"`
	LastMove      *Cell      `json:"lastMove,omitempty"`
	MoveCount     int        `json:"moveCount"`
	Round         int        `json:"round"`
	Opponent      string     `json:"opponent"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func NewGameSession(id, opponent string, now time.Time) GameSession {
	return GameSession{
		ID:            id,
		Board:         NewBoard(),
		CurrentPlayer: StartingPlayer,
		Status:        StatusActive,
		Winner:        Empty,
		Round:         1,
		Opponent:      opponent,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (gs *GameSession) IsFinished() bool {
	return gs.Status.Terminal()
}

func (gs *GameSession) IsDraw() bool {
	return gs.Status == StatusDraw
}
