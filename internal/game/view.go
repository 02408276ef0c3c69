package game

import (
	"fmt"
	"strconv"
	"strings"
)

// CellView is the player-facing state of one cell.
type CellView int8

const (
	ViewHidden CellView = -2
	ViewFlag   CellView = -1
	// ViewMine marks a mine revealed at game end.
	ViewMine CellView = 9
	// 0-8 for open cells with their surrounding mine count
)

func (v CellView) String() string {
	switch {
	case v == ViewHidden:
		return " "
	case v == ViewFlag:
		return "?"
	case v == ViewMine:
		return "*"
	case 0 <= v && v <= 8:
		return strconv.Itoa(int(v))
	default:
		return "!"
	}
}

// GridView is the row-major player view of the whole board. It never
// contains mine truth for unrevealed cells.
type GridView []CellView

func (g GridView) Render(cols int) string {
	var b strings.Builder
	for r := range len(g) / cols {
		for c := range cols {
			fmt.Fprint(&b, g[r*cols+c].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

// Snapshot is the JSON-facing view of a session.
type Snapshot struct {
	Size      int      `json:"size"`
	MineCount int      `json:"mine_count"`
	Started   bool     `json:"started"`
	Outcome   Outcome  `json:"outcome,omitempty"`
	FlagsLeft int      `json:"flags_left"`
	HintsLeft int      `json:"hints_left"`
	Grid      GridView `json:"grid"`
}

func (s *Session) Snapshot() Snapshot {
	grid := make(GridView, len(s.board.Cells))
	for i := range s.board.Cells {
		cell := &s.board.Cells[i]
		switch {
		case cell.Revealed && cell.Mine:
			grid[i] = ViewMine
		case cell.Revealed:
			grid[i] = CellView(cell.Adjacent)
		case cell.Flagged:
			grid[i] = ViewFlag
		default:
			grid[i] = ViewHidden
		}
	}
	return Snapshot{
		Size:      s.Size,
		MineCount: s.MineCount,
		Started:   s.started,
		Outcome:   s.outcome,
		FlagsLeft: s.FlagsLeft(),
		HintsLeft: s.HintsLeft(),
		Grid:      grid,
	}
}
