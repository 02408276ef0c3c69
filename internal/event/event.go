// Package event carries the structured game events that the engine and
// solvers emit instead of writing diagnostics straight to a console.
// Decision logic stays free of logging concerns and tests can assert on
// the emitted stream.
package event

import (
	"github.com/sirupsen/logrus"

	"github.com/SGrimsley02/sweeper/internal/board"
)

type Kind string

const (
	MinesPlaced   Kind = "mines_placed"
	CellOpened    Kind = "cell_opened"
	CellsFlagged  Kind = "cells_flagged"
	CellUnflagged Kind = "cell_unflagged"
	MineHit       Kind = "mine_hit"
	GameWon       Kind = "game_won"
	GameLost      Kind = "game_lost"
	HintGiven     Kind = "hint_given"
)

type Event struct {
	Kind  Kind
	Cells []board.Point
	// Rule names the solver rule that produced the move, when one did.
	Rule string
}

type Emitter interface {
	Emit(e Event)
}

// Discard swallows every event. The zero-dependency default.
type Discard struct{}

func (Discard) Emit(Event) {}

// Log forwards events to a logrus logger at debug level.
type Log struct {
	Logger *logrus.Logger
}

func (l Log) Emit(e Event) {
	fields := logrus.Fields{"kind": e.Kind}
	if len(e.Cells) > 0 {
		fields["cells"] = e.Cells
	}
	if e.Rule != "" {
		fields["rule"] = e.Rule
	}
	l.Logger.WithFields(fields).Debug("game event")
}

// Recorder keeps every event it sees, for tests.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Emit(e Event) {
	r.Events = append(r.Events, e)
}

// Kinds returns the kinds of all recorded events, in order.
func (r *Recorder) Kinds() []Kind {
	ks := make([]Kind, len(r.Events))
	for i, e := range r.Events {
		ks[i] = e.Kind
	}
	return ks
}
