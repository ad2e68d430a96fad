package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDropDiskSettlesAtLowestFreeRow(t *testing.T) {
	b := NewBoard()

	row, err := b.DropDisk(3, Player1)
	require.NoError(t, err)
	assert.Equal(t, Rows-1, row)

	row, err = b.DropDisk(3, Player2)
	require.NoError(t, err)
	assert.Equal(t, Rows-2, row)

	assert.Equal(t, Player1, b[Rows-1][3])
	assert.Equal(t, Player2, b[Rows-2][3])
}

func TestDropDiskRejectsFullAndOutOfRangeColumns(t *testing.T) {
	b := NewBoard()
	for i := 0; i < Rows; i++ {
		_, err := b.DropDisk(0, Player1)
		require.NoError(t, err)
	}

	_, err := b.DropDisk(0, Player2)
	assert.ErrorIs(t, err, ErrColumnFull)

	_, err = b.DropDisk(-1, Player1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = b.DropDisk(Columns, Player1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestValidMovesSkipsFullColumns(t *testing.T) {
	b := NewBoard()
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, b.ValidMoves())

	for i := 0; i < Rows; i++ {
		b.DropDisk(2, Player1)
		b.DropDisk(5, Player2)
	}
	assert.Equal(t, []int{0, 1, 3, 4, 6}, b.ValidMoves())
	assert.False(t, b.IsColumnOpen(2))
	assert.False(t, b.IsColumnOpen(-1))
	assert.False(t, b.IsFull())
}

func TestBoardCopyIsIndependent(t *testing.T) {
	b := NewBoard()
	b.DropDisk(0, Player1)

	cp := b
	cp.DropDisk(0, Player2)

	p1, p2 := b.CountPieces()
	assert.Equal(t, 1, p1)
	assert.Equal(t, 0, p2)

	p1, p2 = cp.CountPieces()
	assert.Equal(t, 1, p1)
	assert.Equal(t, 1, p2)
}

func TestRows2D(t *testing.T) {
	b := NewBoard()
	b.DropDisk(6, Player2)

	rows := b.Rows2D()
	require.Len(t, rows, Rows)
	require.Len(t, rows[0], Columns)
	assert.Equal(t, 2, rows[Rows-1][6])
	assert.Equal(t, 0, rows[0][6])
}
