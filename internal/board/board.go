package board

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Point addresses a cell by row and column.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type Cell struct {
	Row, Col int
	Mine     bool
	// Adjacent is -1 for mine cells and the exact count of mined
	// 8-neighbors otherwise. It is meaningless until ComputeAdjacency
	// has run after mine placement.
	Adjacent int
	Revealed bool
	Flagged  bool
}

// Board is a rows x cols matrix of cells. A board value is either the
// committed state owned by a session or a working clone owned by a
// single invocation; clones are published wholesale, never piecemeal.
type Board struct {
	Rows, Cols int
	Cells      []Cell
}

func New(rows, cols int) *Board {
	b := &Board{
		Rows:  rows,
		Cols:  cols,
		Cells: make([]Cell, rows*cols),
	}
	for r := range rows {
		for c := range cols {
			cell := b.At(r, c)
			cell.Row, cell.Col = r, c
		}
	}
	return b
}

func (b *Board) At(r, c int) *Cell {
	return &b.Cells[r*b.Cols+c]
}

func (b *Board) InBounds(r, c int) bool {
	return 0 <= r && r < b.Rows && 0 <= c && c < b.Cols
}

// Neighbors returns the up-to-8 in-bounds cells around (r, c).
func (b *Board) Neighbors(r, c int) []Point {
	ps := make([]Point, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if b.InBounds(r+dr, c+dc) {
				ps = append(ps, Point{r + dr, c + dc})
			}
		}
	}
	return ps
}

func chebyshev(a, b Point) int {
	dr := a.Row - b.Row
	if dr < 0 {
		dr = -dr
	}
	dc := a.Col - b.Col
	if dc < 0 {
		dc = -dc
	}
	return max(dr, dc)
}

// PlaceMines scatters count mines over the board by rejection sampling,
// never inside the 3x3 neighborhood of exclude and never on an already
// mined cell. The feasibility check up front is what bounds the loop:
// without it a count close to the number of eligible cells could spin
// forever.
func (b *Board) PlaceMines(count int, exclude Point, rnd *rand.Rand) error {
	if count < 0 {
		return fmt.Errorf("mine count %d is negative", count)
	}
	eligible := 0
	for i := range b.Cells {
		cell := &b.Cells[i]
		if !cell.Mine && chebyshev(Point{cell.Row, cell.Col}, exclude) > 1 {
			eligible++
		}
	}
	if count > eligible {
		return fmt.Errorf(
			"cannot place %d mines: only %d cells outside the safe zone around %d:%d",
			count, eligible, exclude.Row, exclude.Col,
		)
	}
	placed := 0
	for placed < count {
		i := rnd.IntN(len(b.Cells))
		cell := &b.Cells[i]
		if cell.Mine || chebyshev(Point{cell.Row, cell.Col}, exclude) <= 1 {
			continue
		}
		cell.Mine = true
		placed++
	}
	return nil
}

// ComputeAdjacency fills in the Adjacent field of every cell: -1 for
// mines, the exact mined-neighbor count for everything else.
func (b *Board) ComputeAdjacency() {
	for r := range b.Rows {
		for c := range b.Cols {
			cell := b.At(r, c)
			if cell.Mine {
				cell.Adjacent = -1
				continue
			}
			n := 0
			for _, p := range b.Neighbors(r, c) {
				if b.At(p.Row, p.Col).Mine {
					n++
				}
			}
			cell.Adjacent = n
		}
	}
}

// FloodFill reveals the region reachable from (r, c): the cell itself,
// and through zero-adjacency cells every unrevealed non-mine neighbor.
// Flagged cells and mines are never revealed by the expansion; handling
// an explicit click on a mine is the caller's job, before calling this.
func (b *Board) FloodFill(r, c int) {
	stack := []Point{{r, c}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cell := b.At(p.Row, p.Col)
		if cell.Revealed || cell.Flagged {
			continue
		}
		cell.Revealed = true
		if cell.Adjacent != 0 {
			continue
		}
		for _, np := range b.Neighbors(p.Row, p.Col) {
			next := b.At(np.Row, np.Col)
			if !next.Revealed && !next.Mine {
				stack = append(stack, np)
			}
		}
	}
}

// Clone returns an independent copy; mutating it never touches b.
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.Cells))
	copy(cells, b.Cells)
	return &Board{Rows: b.Rows, Cols: b.Cols, Cells: cells}
}

// Won reports whether every mine is still hidden and every other cell
// has been revealed. Flags play no part in the predicate.
func (b *Board) Won() bool {
	for i := range b.Cells {
		cell := &b.Cells[i]
		if cell.Mine == cell.Revealed {
			return false
		}
	}
	return true
}

// RevealMines marks every mine cell revealed. Cosmetic end-of-game
// reveal; it deliberately ignores flags.
func (b *Board) RevealMines() {
	for i := range b.Cells {
		if b.Cells[i].Mine {
			b.Cells[i].Revealed = true
		}
	}
}

func (b *Board) MineCount() (count int) {
	for i := range b.Cells {
		if b.Cells[i].Mine {
			count++
		}
	}
	return
}

func (b *Board) FlagCount() (count int) {
	for i := range b.Cells {
		if b.Cells[i].Flagged {
			count++
		}
	}
	return
}

// HiddenUnflagged lists every cell that is neither revealed nor
// flagged, in row-major order.
func (b *Board) HiddenUnflagged() []Point {
	var ps []Point
	for i := range b.Cells {
		cell := &b.Cells[i]
		if !cell.Revealed && !cell.Flagged {
			ps = append(ps, Point{cell.Row, cell.Col})
		}
	}
	return ps
}

// FlaggedHidden lists every flagged, unrevealed cell in row-major order.
func (b *Board) FlaggedHidden() []Point {
	var ps []Point
	for i := range b.Cells {
		cell := &b.Cells[i]
		if !cell.Revealed && cell.Flagged {
			ps = append(ps, Point{cell.Row, cell.Col})
		}
	}
	return ps
}

// String renders the full truth of the board, mines included. Debug
// helper; the player-facing view lives in the game package.
func (b *Board) String() string {
	var sb strings.Builder
	for r := range b.Rows {
		for c := range b.Cols {
			cell := b.At(r, c)
			var ch string
			switch {
			case cell.Mine:
				ch = "* "
			case cell.Flagged:
				ch = "? "
			case !cell.Revealed:
				ch = "- "
			default:
				ch = fmt.Sprintf("%d ", cell.Adjacent)
			}
			fmt.Fprint(&sb, ch)
		}
		fmt.Fprint(&sb, "\n")
	}
	return sb.String()
}
