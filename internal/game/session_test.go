package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SGrimsley02/sweeper/internal/board"
	"github.com/SGrimsley02/sweeper/internal/event"
	"github.com/SGrimsley02/sweeper/internal/solver"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func TestNewSessionValidation(t *testing.T) {
	t.Parallel()

	_, err := NewSession(1, 1, newRand(1))
	assert.Error(t, err)

	_, err = NewSession(9, 0, newRand(1))
	assert.Error(t, err)

	// 9x9 leaves 72 cells outside a worst-case safe zone
	_, err = NewSession(9, 73, newRand(1))
	assert.Error(t, err)

	s, err := NewSession(9, 72, newRand(1))
	require.NoError(t, err)
	assert.Equal(t, 72, s.MineCount)
	assert.False(t, s.Started())
}

func TestStepEasyFirstMove(t *testing.T) {
	t.Parallel()

	rec := &event.Recorder{}
	s, err := NewSession(9, 10, newRand(3), WithEmitter(rec),
		WithWinPredicate(func(*board.Board) bool { return false }))
	require.NoError(t, err)

	in := s.Step(solver.Easy)

	require.NotNil(t, in.Open)
	assert.True(t, s.Started())
	assert.Equal(t, 10, s.Board().MineCount())
	assert.Equal(t, OutcomeNone, s.Outcome())
	assert.True(t, s.Board().At(in.Open.Row, in.Open.Col).Revealed)
	// first-click safety: the opened cell's whole neighborhood is clear
	assert.False(t, s.Board().At(in.Open.Row, in.Open.Col).Mine)
	for _, p := range s.Board().Neighbors(in.Open.Row, in.Open.Col) {
		assert.False(t, s.Board().At(p.Row, p.Col).Mine)
	}
	assert.Contains(t, rec.Kinds(), event.MinesPlaced)
	assert.Contains(t, rec.Kinds(), event.CellOpened)
}

func TestStepIsNoopOnceTerminal(t *testing.T) {
	t.Parallel()

	s, err := NewSession(9, 10, newRand(4))
	require.NoError(t, err)
	s.Forfeit()
	require.Equal(t, OutcomeLost, s.Outcome())

	before := s.Board().Clone()
	in := s.Step(solver.Hard)
	assert.True(t, in.Empty())
	assert.Equal(t, before.Cells, s.Board().Cells)
}

func TestApplyFlagsOnlyStillPublishes(t *testing.T) {
	t.Parallel()

	rec := &event.Recorder{}
	s, err := NewSession(9, 10, newRand(5), WithEmitter(rec))
	require.NoError(t, err)

	s.apply(solver.Intent{
		Flags: []board.Point{{Row: 0, Col: 0}, {Row: 8, Col: 8}},
		Rule:  solver.RuleDeduce,
	})

	assert.True(t, s.Board().At(0, 0).Flagged)
	assert.True(t, s.Board().At(8, 8).Flagged)
	assert.Equal(t, 8, s.FlagsLeft())
	assert.Equal(t, []event.Kind{event.CellsFlagged}, rec.Kinds())
}

func TestApplyUnexpectedMine(t *testing.T) {
	t.Parallel()

	// a cell selected by a (faulty) deduction that is actually a mine
	// must end the game exactly like a direct mine click
	rec := &event.Recorder{}
	s, err := NewSession(5, 3, newRand(6), WithEmitter(rec),
		WithWinPredicate(func(*board.Board) bool { return false }))
	require.NoError(t, err)
	require.NoError(t, s.Open(2, 2))
	require.Equal(t, OutcomeNone, s.Outcome())

	var mine board.Point
	for i := range s.Board().Cells {
		if s.Board().Cells[i].Mine {
			mine = board.Point{Row: s.Board().Cells[i].Row, Col: s.Board().Cells[i].Col}
			break
		}
	}

	s.apply(solver.Intent{Open: &mine, Rule: solver.RuleDeduce})

	assert.Equal(t, OutcomeLost, s.Outcome())
	for i := range s.Board().Cells {
		if s.Board().Cells[i].Mine {
			assert.True(t, s.Board().Cells[i].Revealed)
		}
	}
	assert.Contains(t, rec.Kinds(), event.MineHit)
	assert.Contains(t, rec.Kinds(), event.GameLost)
}

func TestHintAllowance(t *testing.T) {
	t.Parallel()

	// win predicate pinned false so a lucky cascade cannot end the
	// game and reset the counter mid-test
	s, err := NewSession(16, 40, newRand(7),
		WithWinPredicate(func(*board.Board) bool { return false }))
	require.NoError(t, err)

	for i := range 3 {
		assert.Equal(t, HintGood, s.Hint(), "hint %d", i+1)
	}
	assert.Equal(t, 0, s.HintsLeft())

	before := s.Board().Clone()
	assert.Equal(t, HintDone, s.Hint())
	assert.Equal(t, before.Cells, s.Board().Cells)
}

func TestHintOpensOnlySafeCells(t *testing.T) {
	t.Parallel()

	s, err := NewSession(9, 10, newRand(8),
		WithWinPredicate(func(*board.Board) bool { return false }))
	require.NoError(t, err)

	for range 3 {
		// HintNone is possible once floods have exposed every safe
		// cell; what matters is that no hint ever opens a mine
		require.NotEqual(t, HintDone, s.Hint())
	}
	for i := range s.Board().Cells {
		cell := &s.Board().Cells[i]
		if cell.Mine {
			assert.False(t, cell.Revealed)
		}
	}
}

func TestHintDoneWhenAlreadyWon(t *testing.T) {
	t.Parallel()

	s, err := NewSession(9, 10, newRand(9),
		WithWinPredicate(func(*board.Board) bool { return true }))
	require.NoError(t, err)
	assert.Equal(t, HintDone, s.Hint())
}

func TestHintNoneWhenOnlyMinesLeft(t *testing.T) {
	t.Parallel()

	s, err := NewSession(9, 10, newRand(10))
	require.NoError(t, err)
	b := board.New(3, 3)
	b.At(0, 0).Mine = true
	b.ComputeAdjacency()
	for i := range b.Cells {
		if !b.Cells[i].Mine {
			b.Cells[i].Revealed = true
		}
	}
	b.At(1, 1).Revealed = false // keep the game unfinished
	b.At(1, 1).Flagged = true
	s.board = b
	s.started = true

	assert.Equal(t, HintNone, s.Hint())
}

func TestHintCounterResetsOnWin(t *testing.T) {
	t.Parallel()

	s, err := NewSession(9, 10, newRand(11))
	require.NoError(t, err)
	b := board.New(3, 3)
	b.At(0, 0).Mine = true
	b.ComputeAdjacency()
	for i := range b.Cells {
		if !b.Cells[i].Mine {
			b.Cells[i].Revealed = true
		}
	}
	b.At(2, 2).Revealed = false // one safe cell left
	s.board = b
	s.started = true
	s.hintsUsed = 2

	require.Equal(t, HintGood, s.Hint())
	assert.Equal(t, OutcomeWon, s.Outcome())
	assert.Equal(t, MaxHints, s.HintsLeft())
	assert.True(t, s.Board().At(0, 0).Revealed, "mines revealed on win")
}

func TestHintUnstartedPlacesMines(t *testing.T) {
	t.Parallel()

	s, err := NewSession(9, 10, newRand(12))
	require.NoError(t, err)
	require.Equal(t, HintGood, s.Hint())
	assert.True(t, s.Started())
	assert.Equal(t, 10, s.Board().MineCount())
	assert.Equal(t, 2, s.HintsLeft())
}

func TestOpenFlaggedCellIsDropped(t *testing.T) {
	t.Parallel()

	s, err := NewSession(9, 10, newRand(13))
	require.NoError(t, err)
	require.NoError(t, s.ToggleFlag(4, 4))
	require.NoError(t, s.Open(4, 4))
	assert.False(t, s.Board().At(4, 4).Revealed)
	assert.False(t, s.Started())
}

func TestReset(t *testing.T) {
	t.Parallel()

	s, err := NewSession(9, 10, newRand(14))
	require.NoError(t, err)
	require.NoError(t, s.Open(0, 0))
	s.Forfeit()
	for range 3 {
		s.Hint()
	}

	s.Reset()

	assert.False(t, s.Started())
	assert.Equal(t, OutcomeNone, s.Outcome())
	assert.Equal(t, MaxHints, s.HintsLeft())
	assert.Equal(t, 0, s.Board().MineCount())
}

// Autoplay must always finish a session in a bounded number of turns.
func TestHardPlaysGamesToCompletion(t *testing.T) {
	t.Parallel()

	for seed := range uint64(10) {
		s, err := NewSession(9, 10, newRand(seed))
		require.NoError(t, err)
		for steps := 0; !s.Terminal(); steps++ {
			require.Less(t, steps, 9*9*4, "solver made no progress")
			s.Step(solver.Hard)
		}
		assert.NotEqual(t, OutcomeNone, s.Outcome())
	}
}

func TestMediumPlaysGamesToCompletion(t *testing.T) {
	t.Parallel()

	for seed := range uint64(10) {
		s, err := NewSession(9, 10, newRand(seed+100))
		require.NoError(t, err)
		for steps := 0; !s.Terminal(); steps++ {
			require.Less(t, steps, 9*9*4, "solver made no progress")
			s.Step(solver.Medium)
		}
	}
}

func TestSnapshotHidesMineTruth(t *testing.T) {
	t.Parallel()

	s, err := NewSession(9, 10, newRand(15),
		WithWinPredicate(func(*board.Board) bool { return false }))
	require.NoError(t, err)
	require.NoError(t, s.Open(4, 4))

	snap := s.Snapshot()
	assert.Equal(t, 9, snap.Size)
	assert.Equal(t, 10, snap.MineCount)
	assert.True(t, snap.Started)
	assert.Len(t, snap.Grid, 81)
	for i, v := range snap.Grid {
		cell := &s.Board().Cells[i]
		if cell.Mine {
			assert.Equal(t, ViewHidden, v, "unrevealed mine leaked at %d", i)
		}
	}
}
