package domain

// the four axes, each walked in both directions from the placed disk
var axes = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal \
	{1, -1}, // diagonal /
}

// ValidateMove decides whether column accepts a disk for gs and returns the landing row.
// It never mutates gs.
func ValidateMove(gs *GameSession, column int) (int, error) {
	if column < 0 || column >= Columns {
		return -1, ErrOutOfRange
	}
	if gs.Status.Terminal() {
		return -1, ErrGameOver
	}
	row := gs.Board.LandingRow(column)
	if row < 0 {
		return -1, ErrColumnFull
	}
	return row, nil
}

// CheckWin only looks at lines passing through (row, column), the disk that was just placed.
// It returns the cells of the first axis holding ToWin or more disks of player.
func CheckWin(board *Board, row, column int, player PlayerID) ([]Cell, bool) {
	if !InBounds(row, column) || board[row][column] != player {
		return nil, false
	}

	for _, axis := range axes {
		dRow, dCol := axis[0], axis[1]
		forward := board.CountDiskInDirection(row, column, dRow, dCol, player)
		backward := board.CountDiskInDirection(row, column, -dRow, -dCol, player)
		if forward+backward+1 < ToWin {
			continue
		}

		line := make([]Cell, 0, forward+backward+1)
		for i := backward; i > 0; i-- {
			line = append(line, Cell{Row: row - i*dRow, Col: column - i*dCol})
		}
		line = append(line, Cell{Row: row, Col: column})
		for i := 1; i <= forward; i++ {
			line = append(line, Cell{Row: row + i*dRow, Col: column + i*dCol})
		}
		return line, true
	}

	return nil, false
}

// IsDraw is true once the top row is full and the filling move did not win.
// Disks settle at the lowest free row, so a full top row means a full board.
func IsDraw(board *Board, won bool) bool {
	return !won && board.IsFull()
}
