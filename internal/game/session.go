// Package game owns the committed board and the session state around
// it: started flag, flag counter, terminal outcome, and the rationed
// hint counter. Solvers hand it intents; the session applies them with
// clone-then-publish discipline so a half-evaluated turn can never leak
// into the externally visible board.
package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/SGrimsley02/sweeper/internal/board"
	"github.com/SGrimsley02/sweeper/internal/event"
	"github.com/SGrimsley02/sweeper/internal/solver"
)

type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeLost Outcome = "lost"
	OutcomeWon  Outcome = "won"
)

// MaxHints caps successful hints per session.
const MaxHints = 3

type Session struct {
	Size      int
	MineCount int

	board     *board.Board
	started   bool
	outcome   Outcome
	hintsUsed int

	rnd   *rand.Rand
	emit  event.Emitter
	winFn func(*board.Board) bool
}

type Option func(*Session)

func WithEmitter(e event.Emitter) Option {
	return func(s *Session) { s.emit = e }
}

// WithWinPredicate swaps out the win check, for tests.
func WithWinPredicate(fn func(*board.Board) bool) Option {
	return func(s *Session) { s.winFn = fn }
}

// NewSession creates a session over an empty size x size board. Mines
// are placed lazily, on the first reveal-producing action. The mine
// count is validated against the worst-case first-click safe zone of 9
// cells so placement can never fail later.
func NewSession(size, mineCount int, rnd *rand.Rand, opts ...Option) (*Session, error) {
	if size < 2 {
		return nil, fmt.Errorf("grid size %d is too small", size)
	}
	if mineCount < 1 || mineCount > size*size-9 {
		return nil, fmt.Errorf(
			"mine count %d out of range for a %dx%d grid (1..%d)",
			mineCount, size, size, size*size-9,
		)
	}
	s := &Session{
		Size:      size,
		MineCount: mineCount,
		board:     board.New(size, size),
		rnd:       rnd,
		emit:      event.Discard{},
		winFn:     (*board.Board).Won,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Board returns the committed board. Callers must treat it as
// read-only; every mutation goes through a session operation.
func (s *Session) Board() *board.Board { return s.board }

func (s *Session) Started() bool    { return s.started }
func (s *Session) Outcome() Outcome { return s.outcome }
func (s *Session) Terminal() bool   { return s.outcome != OutcomeNone }
func (s *Session) FlagsLeft() int   { return s.MineCount - s.board.FlagCount() }
func (s *Session) HintsLeft() int   { return MaxHints - s.hintsUsed }

// Reset replaces the board wholesale and clears all session state.
func (s *Session) Reset() {
	s.board = board.New(s.Size, s.Size)
	s.started = false
	s.outcome = OutcomeNone
	s.hintsUsed = 0
}

// Step runs one tier's solver over the committed board and applies the
// resulting intent as a single atomic turn. Already-terminal and
// already-won sessions are left untouched.
func (s *Session) Step(tier solver.Tier) solver.Intent {
	if s.outcome != OutcomeNone || s.winFn(s.board) {
		return solver.Intent{}
	}
	in := tier.Solve(solver.Context{Board: s.board, Started: s.started}, s.rnd)
	s.apply(in)
	return in
}

// Open performs an explicit (human) open of one cell. Unlike flood
// expansion, an explicit open targeting a flagged or revealed cell is
// dropped rather than resolved.
func (s *Session) Open(r, c int) error {
	if !s.board.InBounds(r, c) {
		return fmt.Errorf("cell %d:%d out of bounds", r, c)
	}
	if s.outcome != OutcomeNone {
		return nil
	}
	cell := s.board.At(r, c)
	if cell.Revealed || cell.Flagged {
		return nil
	}
	s.openOn(s.board.Clone(), board.Point{Row: r, Col: c}, "click")
	return nil
}

// ToggleFlag flags or unflags one hidden cell.
func (s *Session) ToggleFlag(r, c int) error {
	if !s.board.InBounds(r, c) {
		return fmt.Errorf("cell %d:%d out of bounds", r, c)
	}
	if s.outcome != OutcomeNone || s.board.At(r, c).Revealed {
		return nil
	}
	work := s.board.Clone()
	cell := work.At(r, c)
	cell.Flagged = !cell.Flagged
	kind := event.CellsFlagged
	if !cell.Flagged {
		kind = event.CellUnflagged
	}
	s.board = work
	s.emit.Emit(event.Event{Kind: kind, Cells: []board.Point{{Row: r, Col: c}}})
	return nil
}

// Forfeit ends the session as lost and exposes the mines.
func (s *Session) Forfeit() {
	if s.outcome != OutcomeNone {
		return
	}
	work := s.board.Clone()
	work.RevealMines()
	s.board = work
	s.outcome = OutcomeLost
	s.emit.Emit(event.Event{Kind: event.GameLost})
}

// apply commits a solver intent: flags first (they never consume the
// turn), then the single open if there is one. A flags-only intent
// still publishes so the flag counter stays visible.
func (s *Session) apply(in solver.Intent) {
	if in.Empty() {
		return
	}
	work := s.board.Clone()
	if len(in.Flags) > 0 {
		for _, p := range in.Flags {
			work.At(p.Row, p.Col).Flagged = true
		}
		s.emit.Emit(event.Event{Kind: event.CellsFlagged, Cells: in.Flags, Rule: in.Rule})
	}
	if in.Unflag != nil {
		work.At(in.Unflag.Row, in.Unflag.Col).Flagged = false
		s.emit.Emit(event.Event{Kind: event.CellUnflagged, Cells: []board.Point{*in.Unflag}, Rule: in.Rule})
	}
	if in.Open == nil {
		s.board = work
		if s.winFn(work) {
			s.finishWon()
		}
		return
	}
	s.openOn(work, *in.Open, in.Rule)
}

// openOn opens one cell on the working clone and publishes the result.
// A mine here is either a direct hit or a failed deduction; both end
// the game the same way.
func (s *Session) openOn(work *board.Board, p board.Point, rule string) {
	if err := s.ensureStarted(work, p); err != nil {
		// session creation validates feasibility, so this is a guard
		// failure: drop the turn without publishing
		return
	}
	cell := work.At(p.Row, p.Col)
	if cell.Mine {
		cell.Revealed = true
		work.RevealMines()
		s.board = work
		s.outcome = OutcomeLost
		s.emit.Emit(event.Event{Kind: event.MineHit, Cells: []board.Point{p}, Rule: rule})
		s.emit.Emit(event.Event{Kind: event.GameLost})
		return
	}
	work.FloodFill(p.Row, p.Col)
	won := s.winFn(work)
	if won {
		work.RevealMines()
	}
	s.board = work
	s.emit.Emit(event.Event{Kind: event.CellOpened, Cells: []board.Point{p}, Rule: rule})
	if won {
		s.finishWon()
	}
}

func (s *Session) finishWon() {
	s.outcome = OutcomeWon
	s.hintsUsed = 0
	s.emit.Emit(event.Event{Kind: event.GameWon})
}

// ensureStarted places the mines on the first reveal-producing action,
// excluding the 3x3 zone around the chosen cell, and computes
// adjacency. Shared by solver turns, hints, and explicit opens.
func (s *Session) ensureStarted(work *board.Board, exclude board.Point) error {
	if s.started {
		return nil
	}
	if err := work.PlaceMines(s.MineCount, exclude, s.rnd); err != nil {
		return err
	}
	work.ComputeAdjacency()
	s.started = true
	s.emit.Emit(event.Event{Kind: event.MinesPlaced})
	return nil
}
