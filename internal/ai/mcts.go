package ai

import (
	"github.com/hiveproto/hive/internal/hive"
	"github.com/hiveproto/hive/internal/piece"
	"github.com/hiveproto/hive/internal/searchers/mcts"
)

// McState adapts a hive.GameState to the mcts.Searchable capability.
type McState struct {
	gs          *hive.GameState
	lastTurn    hive.Turn
	hasLastTurn bool
}

// NewMcState wraps gs as the root of an MCTS search.
func NewMcState(gs *hive.GameState) McState {
	return McState{gs: gs}
}

var _ mcts.Searchable[McState, hive.Turn, piece.Color] = McState{}

func (s McState) Clone() McState {
	return McState{gs: s.gs.Clone(), lastTurn: s.lastTurn, hasLastTurn: s.hasLastTurn}
}

func (s McState) TerminalValue(maxiPlayer piece.Color) (won bool, known bool) {
	switch s.gs.Status.Kind {
	case hive.Win:
		return s.gs.Status.Winner == maxiPlayer, true
	case hive.Draw:
		return false, true
	default:
		return false, false
	}
}

func (s McState) PossibleActions() []hive.Turn {
	return s.gs.ValidMoves()
}

func (s McState) LastAction() (hive.Turn, bool) {
	return s.lastTurn, s.hasLastTurn
}

func (s McState) ApplyAction(t hive.Turn) McState {
	clone := s.gs.Clone()
	clone.SubmitTurnUnchecked(t)
	return McState{gs: clone, lastTurn: t, hasLastTurn: true}
}

func (s McState) CurrentPlayer() piece.Color {
	return s.gs.CurrentPlayer
}

func (s McState) SelectAction(turns []hive.Turn) hive.Turn {
	return selectAction(s.gs, s.gs.CurrentPlayer, turns)
}

// BestMove2 runs a UCB1 Monte Carlo search from gs, optimizing for maxiPlayer
// (normally whichever color is to move at gs), and returns the move it
// recommends.
func BestMove2(gs *hive.GameState, maxiPlayer piece.Color, opts mcts.Options) hive.Turn {
	tree := mcts.New[McState, hive.Turn, piece.Color](NewMcState(gs), maxiPlayer, opts)
	return tree.FindBestAction()
}
