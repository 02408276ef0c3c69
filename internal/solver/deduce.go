package solver

import "github.com/SGrimsley02/sweeper/internal/board"

// safeExpansion collects every hidden, unflagged neighbor of a revealed
// zero-adjacency cell. Such neighbors are provably safe.
func safeExpansion(b *board.Board) []board.Point {
	var out []board.Point
	seen := make(map[board.Point]bool)
	for r := range b.Rows {
		for c := range b.Cols {
			cell := b.At(r, c)
			if !cell.Revealed || cell.Adjacent != 0 {
				continue
			}
			for _, p := range b.Neighbors(r, c) {
				n := b.At(p.Row, p.Col)
				if !n.Revealed && !n.Flagged && !seen[p] {
					seen[p] = true
					out = append(out, p)
				}
			}
		}
	}
	return out
}

// numberDeductions applies the two classical per-number rules to every
// revealed numbered cell. With H its hidden unflagged neighbors and F
// its flagged neighbors:
//
//   - if |H| equals the number minus |F|, every cell in H is a mine
//   - if |F| equals the number, every cell in H is safe
//
// Both result sets are deduplicated and in row-major scan order.
func numberDeductions(b *board.Board) (mines, safe []board.Point) {
	seenMine := make(map[board.Point]bool)
	seenSafe := make(map[board.Point]bool)
	for r := range b.Rows {
		for c := range b.Cols {
			cell := b.At(r, c)
			if !cell.Revealed || cell.Adjacent <= 0 {
				continue
			}
			var hidden []board.Point
			flags := 0
			for _, p := range b.Neighbors(r, c) {
				n := b.At(p.Row, p.Col)
				switch {
				case n.Revealed:
				case n.Flagged:
					flags++
				default:
					hidden = append(hidden, p)
				}
			}
			if len(hidden) == 0 {
				continue
			}
			if len(hidden) == cell.Adjacent-flags {
				for _, p := range hidden {
					if !seenMine[p] {
						seenMine[p] = true
						mines = append(mines, p)
					}
				}
			}
			if flags == cell.Adjacent {
				for _, p := range hidden {
					if !seenSafe[p] {
						seenSafe[p] = true
						safe = append(safe, p)
					}
				}
			}
		}
	}
	return mines, safe
}

// pattern121 scans rows and columns for three consecutive revealed
// cells reading 1-2-1. Each outer 1 already accounts for one mine
// shared with the center 2, so when the center has exactly two
// exclusive hidden candidates both must be mines.
func pattern121(b *board.Board) []board.Point {
	var out []board.Point
	seen := make(map[board.Point]bool)
	add := func(ps []board.Point) {
		if len(ps) != 2 {
			return
		}
		for _, p := range ps {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	for r := range b.Rows {
		for c := range b.Cols {
			if b.InBounds(r, c+2) && isRun121(b, board.Point{Row: r, Col: c}, board.Point{Row: r, Col: c + 1}, board.Point{Row: r, Col: c + 2}) {
				add(centerExclusive(b,
					board.Point{Row: r, Col: c + 1},
					board.Point{Row: r, Col: c},
					board.Point{Row: r, Col: c + 2}))
			}
			if b.InBounds(r+2, c) && isRun121(b, board.Point{Row: r, Col: c}, board.Point{Row: r + 1, Col: c}, board.Point{Row: r + 2, Col: c}) {
				add(centerExclusive(b,
					board.Point{Row: r + 1, Col: c},
					board.Point{Row: r, Col: c},
					board.Point{Row: r + 2, Col: c}))
			}
		}
	}
	return out
}

func isRun121(b *board.Board, a, m, z board.Point) bool {
	ac, mc, zc := b.At(a.Row, a.Col), b.At(m.Row, m.Col), b.At(z.Row, z.Col)
	return ac.Revealed && mc.Revealed && zc.Revealed &&
		ac.Adjacent == 1 && mc.Adjacent == 2 && zc.Adjacent == 1
}

// centerExclusive returns the hidden, unflagged cells that touch only
// the center of a 1-2-1 run: its orthogonal neighbors perpendicular to
// the run, i.e. not orthogonally adjacent to either flank. For a run
// along a row these are the cells directly above and below the center.
func centerExclusive(b *board.Board, center, f1, f2 board.Point) []board.Point {
	orthTouches := func(p, q board.Point) bool {
		dr, dc := p.Row-q.Row, p.Col-q.Col
		if dr < 0 {
			dr = -dr
		}
		if dc < 0 {
			dc = -dc
		}
		return dr+dc <= 1
	}
	var out []board.Point
	for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		p := board.Point{Row: center.Row + d[0], Col: center.Col + d[1]}
		if !b.InBounds(p.Row, p.Col) || orthTouches(p, f1) || orthTouches(p, f2) {
			continue
		}
		cell := b.At(p.Row, p.Col)
		if !cell.Revealed && !cell.Flagged {
			out = append(out, p)
		}
	}
	return out
}
