package domain

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

const (
	// StartingPlayer moves first in every round.
	StartingPlayer = Player1
	HumanPlayer    = Player1
	// OpponentPlayer is the side driven by a bot strategy.
	OpponentPlayer = Player2
)

// Opponent returns the other side. Empty maps to Empty.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

func (p PlayerID) Valid() bool {
	return p == Player1 || p == Player2
}

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

func (s GameStatus) Terminal() bool {
	return s == StatusWon || s == StatusDraw
}

// Cell addresses a single board position.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
