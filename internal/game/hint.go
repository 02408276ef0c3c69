package game

import (
	"github.com/SGrimsley02/sweeper/internal/board"
	"github.com/SGrimsley02/sweeper/internal/event"
)

type HintStatus string

const (
	// HintGood means a safe cell was opened.
	HintGood HintStatus = "good"
	// HintNone means no hidden unflagged cell, or none known safe.
	HintNone HintStatus = "none"
	// HintDone means the hint allowance is spent or the game is over.
	HintDone HintStatus = "done"
)

// Hint opens one cell the mine truth confirms safe, at most MaxHints
// times per session. The counter resets on a new session and on a win.
func (s *Session) Hint() HintStatus {
	if s.hintsUsed >= MaxHints {
		return HintDone
	}
	if s.outcome != OutcomeNone || s.winFn(s.board) {
		return HintDone
	}
	candidates := s.board.HiddenUnflagged()
	if len(candidates) == 0 {
		return HintNone
	}

	work := s.board.Clone()
	var p board.Point
	if !s.started {
		p = candidates[s.rnd.IntN(len(candidates))]
		if err := s.ensureStarted(work, p); err != nil {
			return HintNone
		}
	} else {
		safe := make([]board.Point, 0, len(candidates))
		for _, q := range candidates {
			if !s.board.At(q.Row, q.Col).Mine {
				safe = append(safe, q)
			}
		}
		if len(safe) == 0 {
			return HintNone
		}
		p = safe[s.rnd.IntN(len(safe))]
	}

	work.FloodFill(p.Row, p.Col)
	won := s.winFn(work)
	if won {
		work.RevealMines()
	}
	s.board = work
	s.hintsUsed++
	s.emit.Emit(event.Event{Kind: event.HintGiven, Cells: []board.Point{p}})
	if won {
		s.finishWon()
	}
	return HintGood
}
