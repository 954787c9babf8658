package ai

import (
	"fmt"

	"github.com/hiveproto/hive/internal/hive"
	"github.com/hiveproto/hive/internal/piece"
	"github.com/hiveproto/hive/internal/searchers/negamax"
)

// NegamaxNode adapts a hive.GameState to the negamax.Tree capability. The
// raw evaluation is always expressed as Black pieces minus White pieces;
// IsMaximizing reports whether Black is the one to move here, so negamax
// knows whether to read that raw score directly or flip its sign.
type NegamaxNode struct {
	gs          *hive.GameState
	lastTurn    hive.Turn
	hasLastTurn bool
}

// NewNegamaxNode wraps gs as the root of a negamax search.
func NewNegamaxNode(gs *hive.GameState) NegamaxNode {
	return NegamaxNode{gs: gs}
}

var _ negamax.Tree[NegamaxNode, hive.Turn] = NegamaxNode{}

func (n NegamaxNode) Children() []NegamaxNode {
	moves := n.gs.ValidMoves()
	children := make([]NegamaxNode, 0, len(moves))
	for _, t := range moves {
		child := n.gs.Clone()
		child.SubmitTurnUnchecked(t)
		children = append(children, NegamaxNode{gs: child, lastTurn: t, hasLastTurn: true})
	}
	return children
}

func (n NegamaxNode) IsTerminal() bool {
	return n.gs.Status.IsTerminal()
}

func (n NegamaxNode) Evaluate() (float64, string) {
	diff := pieceDiff(n.gs)
	return float64(diff), fmt.Sprintf("black-white piece count = %d", diff)
}

func (n NegamaxNode) LastAction() hive.Turn {
	return n.lastTurn
}

func (n NegamaxNode) IsMaximizing() bool {
	return n.gs.CurrentPlayer == piece.Black
}

// BestMove runs negamax to depth plies from gs and returns the move it
// recommends, along with its score and a short explanation.
func BestMove(gs *hive.GameState, depth int) (hive.Turn, float64, string) {
	return negamax.Search[NegamaxNode, hive.Turn](NewNegamaxNode(gs), depth)
}
