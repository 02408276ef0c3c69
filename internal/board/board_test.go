package board_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SGrimsley02/sweeper/internal/board"
)

func TestPlaceMines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rows, cols int
		count      int
		exclude    board.Point
	}{
		{name: "9x9(10) corner", rows: 9, cols: 9, count: 10, exclude: board.Point{Row: 0, Col: 0}},
		{name: "9x9(10) center", rows: 9, cols: 9, count: 10, exclude: board.Point{Row: 4, Col: 4}},
		{name: "9x9(35)", rows: 9, cols: 9, count: 35, exclude: board.Point{Row: 8, Col: 3}},
		{name: "16x16(99)", rows: 16, cols: 16, count: 99, exclude: board.Point{Row: 15, Col: 15}},
		{name: "10x10 maximal", rows: 10, cols: 10, count: 91, exclude: board.Point{Row: 5, Col: 5}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for seed := range uint64(20) {
				rnd := rand.New(rand.NewPCG(seed, seed+1))
				b := board.New(test.rows, test.cols)
				require.NoError(t, b.PlaceMines(test.count, test.exclude, rnd))

				assert.Equal(t, test.count, b.MineCount())
				for dr := -1; dr <= 1; dr++ {
					for dc := -1; dc <= 1; dc++ {
						r, c := test.exclude.Row+dr, test.exclude.Col+dc
						if b.InBounds(r, c) {
							assert.False(t, b.At(r, c).Mine,
								"mine inside safe zone at %d:%d", r, c)
						}
					}
				}
			}
		})
	}
}

func TestPlaceMinesInfeasible(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewPCG(1, 2))
	b := board.New(3, 3)
	// 3x3 with a center exclusion leaves zero eligible cells
	err := b.PlaceMines(1, board.Point{Row: 1, Col: 1}, rnd)
	assert.Error(t, err)

	b = board.New(10, 10)
	err = b.PlaceMines(92, board.Point{Row: 5, Col: 5}, rnd)
	assert.Error(t, err)
	assert.Equal(t, 0, b.MineCount())
}

func TestComputeAdjacency(t *testing.T) {
	t.Parallel()

	for seed := range uint64(20) {
		rnd := rand.New(rand.NewPCG(seed, 42))
		b := board.New(9, 9)
		require.NoError(t, b.PlaceMines(20, board.Point{Row: 0, Col: 0}, rnd))
		b.ComputeAdjacency()

		for r := range b.Rows {
			for c := range b.Cols {
				cell := b.At(r, c)
				if cell.Mine {
					assert.Equal(t, -1, cell.Adjacent)
					continue
				}
				want := 0
				for _, p := range b.Neighbors(r, c) {
					if b.At(p.Row, p.Col).Mine {
						want++
					}
				}
				assert.Equal(t, want, cell.Adjacent, "at %d:%d", r, c)
			}
		}
	}
}

func TestFloodFill(t *testing.T) {
	t.Parallel()

	t.Run("opens whole empty board", func(t *testing.T) {
		b := board.New(5, 5)
		b.ComputeAdjacency()
		b.FloodFill(2, 2)
		for i := range b.Cells {
			assert.True(t, b.Cells[i].Revealed)
		}
	})

	t.Run("never reveals flagged or mined cells", func(t *testing.T) {
		for seed := range uint64(20) {
			rnd := rand.New(rand.NewPCG(seed, 7))
			b := board.New(9, 9)
			require.NoError(t, b.PlaceMines(10, board.Point{Row: 4, Col: 4}, rnd))
			b.ComputeAdjacency()
			b.At(0, 0).Flagged = true
			b.At(8, 8).Flagged = true

			b.FloodFill(4, 4)

			for i := range b.Cells {
				cell := &b.Cells[i]
				if cell.Mine || cell.Flagged {
					assert.False(t, cell.Revealed, "at %d:%d", cell.Row, cell.Col)
				}
			}
		}
	})

	t.Run("stops at numbered cells", func(t *testing.T) {
		b := board.New(3, 3)
		b.At(0, 2).Mine = true
		b.ComputeAdjacency()
		b.FloodFill(0, 0)
		assert.True(t, b.At(0, 0).Revealed)
		assert.True(t, b.At(0, 1).Revealed)
		assert.False(t, b.At(0, 2).Revealed)
	})
}

func TestClone(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewPCG(3, 4))
	b := board.New(5, 5)
	require.NoError(t, b.PlaceMines(5, board.Point{Row: 0, Col: 0}, rnd))
	b.ComputeAdjacency()

	clone := b.Clone()
	clone.At(0, 0).Revealed = true
	clone.At(1, 1).Flagged = true
	clone.At(2, 2).Mine = !clone.At(2, 2).Mine

	assert.False(t, b.At(0, 0).Revealed)
	assert.False(t, b.At(1, 1).Flagged)
	assert.Equal(t, b.Cells, b.Clone().Cells)
}

func TestWon(t *testing.T) {
	t.Parallel()

	b := board.New(4, 4)
	b.At(0, 3).Mine = true
	b.At(3, 0).Mine = true
	b.ComputeAdjacency()

	assert.False(t, b.Won())

	// flags are irrelevant: reveal every non-mine cell and place none
	for i := range b.Cells {
		if !b.Cells[i].Mine {
			b.Cells[i].Revealed = true
		}
	}
	assert.True(t, b.Won())

	b.At(1, 1).Flagged = true
	assert.True(t, b.Won())

	b.At(0, 3).Revealed = true
	assert.False(t, b.Won())
}

func TestFirstClickSafeZone(t *testing.T) {
	t.Parallel()

	// 3x3 board, one mine, first click at the corner: the corner and
	// all of its neighbors must stay clear.
	for seed := range uint64(50) {
		rnd := rand.New(rand.NewPCG(seed, 0))
		b := board.New(3, 3)
		require.NoError(t, b.PlaceMines(1, board.Point{Row: 0, Col: 0}, rnd))
		assert.False(t, b.At(0, 0).Mine)
		assert.False(t, b.At(0, 1).Mine)
		assert.False(t, b.At(1, 0).Mine)
		assert.False(t, b.At(1, 1).Mine)
		assert.Equal(t, 1, b.MineCount())
	}
}
