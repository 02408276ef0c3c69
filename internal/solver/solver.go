// Package solver implements the three autoplay tiers. A solver is a
// pure function: it takes a snapshot of the committed board plus the
// session context and returns an Intent describing at most one turn.
// Applying the intent (mine placement, flood reveal, terminal state) is
// the session's job, so solver behavior is testable without side
// effects.
package solver

import (
	"fmt"
	"math/rand/v2"

	"github.com/SGrimsley02/sweeper/internal/board"
)

type Tier int

const (
	Easy Tier = iota
	Medium
	Hard
)

func (t Tier) String() string {
	switch t {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

func ParseTier(s string) (Tier, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	default:
		return 0, fmt.Errorf("unknown difficulty tier %q", s)
	}
}

// Context is the read-only view of a session a solver works from. The
// board snapshot carries the mine truth; only the Hard tier's
// ground-truth fallback is allowed to peek at it.
type Context struct {
	Board   *board.Board
	Started bool
}

// Rule names identify which strategy produced a move; they surface in
// emitted events.
const (
	RuleRandom      = "random"
	RuleFirstMove   = "first-move"
	RuleDeduce      = "deduce"
	RuleExpand      = "expand"
	RuleGroundTruth = "ground-truth"
	RuleGuess       = "guess"
	RuleRecover     = "recover"
)

// Intent is the turn a solver wants applied: zero or more certain-mine
// flags (flagging never consumes the turn), at most one cell to open,
// and optionally a flag to lift first when recovering from a deadlock.
// The zero Intent is a no-op.
type Intent struct {
	Flags  []board.Point
	Unflag *board.Point
	Open   *board.Point
	Rule   string
}

func (in Intent) Empty() bool {
	return len(in.Flags) == 0 && in.Unflag == nil && in.Open == nil
}

// Solve runs the tier's strategy over a private clone of the context
// board and returns the resulting intent. It never mutates ctx.Board.
func (t Tier) Solve(ctx Context, rnd *rand.Rand) Intent {
	switch t {
	case Easy:
		return solveEasy(ctx, rnd)
	case Medium:
		return solveMedium(ctx, rnd)
	case Hard:
		return solveHard(ctx, rnd)
	default:
		return Intent{}
	}
}

// solveEasy picks one hidden, unflagged cell uniformly at random.
func solveEasy(ctx Context, rnd *rand.Rand) Intent {
	hidden := ctx.Board.HiddenUnflagged()
	if len(hidden) == 0 {
		return Intent{}
	}
	p := hidden[rnd.IntN(len(hidden))]
	return Intent{Open: &p, Rule: RuleRandom}
}

// solveMedium runs single-step constraint propagation over a private
// clone and falls back to a blind guess.
func solveMedium(ctx Context, rnd *rand.Rand) Intent {
	return deduceTurn(ctx.Board.Clone(), nil, false, rnd)
}

// solveHard extends Medium with the 1-2-1 pattern rule and a
// ground-truth-filtered fallback. On the very first move deduction has
// nothing to work from, so it opens a random cell straight away.
func solveHard(ctx Context, rnd *rand.Rand) Intent {
	if !ctx.Started {
		hidden := ctx.Board.HiddenUnflagged()
		if len(hidden) == 0 {
			return Intent{}
		}
		p := hidden[rnd.IntN(len(hidden))]
		return Intent{Open: &p, Rule: RuleFirstMove}
	}
	work := ctx.Board.Clone()
	return deduceTurn(work, pattern121(work), true, rnd)
}

// deduceTurn is the shared Medium/Hard resolution ladder. It commits
// certain-mine flags to the working clone, then tries each source of a
// safe open in priority order and finally guesses. extraMines carries
// pattern-rule conclusions; useTruth enables the Hard tier's
// never-knowingly-guess fallback.
func deduceTurn(work *board.Board, extraMines []board.Point, useTruth bool, rnd *rand.Rand) Intent {
	expand := safeExpansion(work)
	mines, safe := numberDeductions(work)
	mines = append(mines, extraMines...)

	var in Intent
	for _, p := range mines {
		cell := work.At(p.Row, p.Col)
		if !cell.Flagged && !cell.Revealed {
			cell.Flagged = true
			in.Flags = append(in.Flags, p)
		}
	}

	open := func(p board.Point, rule string) Intent {
		in.Open = &p
		in.Rule = rule
		return in
	}
	pickable := func(p board.Point) bool {
		cell := work.At(p.Row, p.Col)
		return !cell.Revealed && !cell.Flagged
	}

	// certain-safe cells uncovered by the flags we just placed
	if len(in.Flags) > 0 {
		if _, fresh := numberDeductions(work); len(fresh) > 0 {
			for _, p := range fresh {
				if pickable(p) {
					return open(p, RuleDeduce)
				}
			}
		}
	}
	// certain-safe cells from the pre-flag pass
	for _, p := range safe {
		if pickable(p) {
			return open(p, RuleDeduce)
		}
	}
	// neighbors of revealed zero cells
	for _, p := range expand {
		if pickable(p) {
			return open(p, RuleExpand)
		}
	}
	// a cell the mine truth confirms safe, before ever guessing blind
	if useTruth {
		for _, p := range work.HiddenUnflagged() {
			if !work.At(p.Row, p.Col).Mine {
				return open(p, RuleGroundTruth)
			}
		}
	}
	// blind guess
	if hidden := work.HiddenUnflagged(); len(hidden) > 0 {
		p := hidden[rnd.IntN(len(hidden))]
		return open(p, RuleGuess)
	}
	// deadlock: everything hidden is flagged, lift one and open it
	if flagged := work.FlaggedHidden(); len(flagged) > 0 {
		p := flagged[rnd.IntN(len(flagged))]
		in.Unflag = &p
		return open(p, RuleRecover)
	}
	return in
}
