package domain

import (
	"fmt"
	"time"
)

// Play drops a disk for side into column and advances the turn state.
// On error gs is left untouched.
func (gs *GameSession) Play(side PlayerID, column int, now time.Time) (Cell, error) {
	if !side.Valid() {
		return Cell{}, ErrUnknownPlayer
	}
	if column < 0 || column >= Columns {
		return Cell{}, ErrOutOfRange
	}
	if gs.Status.Terminal() {
		return Cell{}, ErrGameOver
	}
	if side != gs.CurrentPlayer {
		return Cell{}, ErrNotYourTurn
	}

	row, err := ValidateMove(gs, column)
	if err != nil {
		return Cell{}, err
	}

	gs.Board[row][column] = side
	gs.MoveCount++
	placed := Cell{Row: row, Col: column}
	gs.LastMove = &placed
	gs.UpdatedAt = now

	if line, won := CheckWin(&gs.Board, row, column, side); won {
		gs.Status = StatusWon
		gs.Winner = side
		gs.WinningLine = line
		gs.Scores.add(side)
		return placed, nil
	}

	if IsDraw(&gs.Board, false) {
		gs.Status = StatusDraw
		return placed, nil
	}

	gs.CurrentPlayer = side.Opponent()
	return placed, nil
}

// Reset starts a fresh round. ID, Scores, Opponent and CreatedAt survive.
func (gs *GameSession) Reset(now time.Time) {
	if gs.MoveCount > 0 {
		gs.Round++
	}
	gs.Board = NewBoard()
	gs.CurrentPlayer = StartingPlayer
	gs.Status = StatusActive
	gs.Winner = Empty
	gs.WinningLine = nil
	gs.LastMove = nil
	gs.MoveCount = 0
	gs.UpdatedAt = now
}

// Check verifies the invariants a stored session must hold before it is played on.
func (gs *GameSession) Check() error {
	if gs.ID == "" {
		return fmt.Errorf("%w: missing id", ErrCorruptSession)
	}
	if !gs.CurrentPlayer.Valid() {
		return fmt.Errorf("%w: current player %d", ErrCorruptSession, gs.CurrentPlayer)
	}

	for c := 0; c < Columns; c++ {
		gap := false
		for r := Rows - 1; r >= 0; r-- {
			cell := gs.Board[r][c]
			if cell != Empty && !cell.Valid() {
				return fmt.Errorf("%w: cell (%d,%d) holds %d", ErrCorruptSession, r, c, cell)
			}
			if cell == Empty {
				gap = true
			} else if gap {
				return fmt.Errorf("%w: floating disk at (%d,%d)", ErrCorruptSession, r, c)
			}
		}
	}

	p1, p2 := gs.Board.CountPieces()
	if p1-p2 != 0 && p1-p2 != 1 {
		return fmt.Errorf("%w: disk counts %d/%d", ErrCorruptSession, p1, p2)
	}
	if gs.MoveCount != p1+p2 {
		return fmt.Errorf("%w: move count %d but %d disks", ErrCorruptSession, gs.MoveCount, p1+p2)
	}

	switch gs.Status {
	case StatusActive:
		if gs.Winner != Empty {
			return fmt.Errorf("%w: active game has a winner", ErrCorruptSession)
		}
		expected := StartingPlayer
		if p1 != p2 {
			expected = StartingPlayer.Opponent()
		}
		if gs.CurrentPlayer != expected {
			return fmt.Errorf("%w: player %d to move after %d disks", ErrCorruptSession, gs.CurrentPlayer, p1+p2)
		}
	case StatusWon:
		if !gs.Winner.Valid() {
			return fmt.Errorf("%w: won game without winner", ErrCorruptSession)
		}
	case StatusDraw:
		if gs.Winner != Empty || !gs.Board.IsFull() {
			return fmt.Errorf("%w: draw on an open board", ErrCorruptSession)
		}
	default:
		return fmt.Errorf("%w: status %q", ErrCorruptSession, gs.Status)
	}

	return nil
}
