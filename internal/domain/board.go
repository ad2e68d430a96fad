package domain

// Board is the grid of cells. board[0] is the top row, board[Rows-1] the bottom.
// The array type pins the shape, and copying a Board copies every cell.
type Board [Rows][Columns]PlayerID

func NewBoard() Board {
	return Board{}
}

func InBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Columns
}

// IsColumnOpen reports whether column can still take a disk.
func (b *Board) IsColumnOpen(column int) bool {
	if column < 0 || column >= Columns {
		return false
	}
	// the top cell is the last one to fill
	return b[0][column] == Empty
}

// LandingRow returns the row a disk dropped into column would settle in, or -1.
func (b *Board) LandingRow(column int) int {
	if column < 0 || column >= Columns {
		return -1
	}
	for row := Rows - 1; row >= 0; row-- {
		if b[row][column] == Empty {
			return row
		}
	}
	return -1
}

func (b *Board) DropDisk(column int, player PlayerID) (int, error) {
	if column < 0 || column >= Columns {
		return -1, ErrOutOfRange
	}
	// shifting the disk from top to bottom till it
	// reaches the end or another disk
	row := b.LandingRow(column)
	if row < 0 {
		return -1, ErrColumnFull
	}
	b[row][column] = player
	return row, nil
}

func (b *Board) IsFull() bool {
	for c := 0; c < Columns; c++ {
		if b[0][c] == Empty {
			return false
		}
	}
	return true
}

// ValidMoves lists the columns that still have room, left to right.
func (b *Board) ValidMoves() []int {
	validMoves := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if b.IsColumnOpen(col) {
			validMoves = append(validMoves, col)
		}
	}
	return validMoves
}

// CountPieces returns how many disks each side has on the board.
func (b *Board) CountPieces() (p1, p2 int) {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			switch b[r][c] {
			case Player1:
				p1++
			case Player2:
				p2++
			}
		}
	}
	return p1, p2
}

// this counts the number of disks in a specific direction, not including (row, column)
func (b *Board) CountDiskInDirection(row, column, deltaRow, deltaCol int, player PlayerID) int {
	count := 0
	r, c := row+deltaRow, column+deltaCol
	for InBounds(r, c) && b[r][c] == player {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}

// Rows2D converts the board into nested slices of ints for storage and JSON.
func (b *Board) Rows2D() [][]int {
	out := make([][]int, Rows)
	for r := range b {
		out[r] = make([]int, Columns)
		for c := range b[r] {
			out[r][c] = int(b[r][c])
		}
	}
	return out
}
