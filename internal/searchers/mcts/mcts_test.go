package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// connectTwoState is a tiny 3-ply toy game tree: each of the three plies
// offers actions 1, 2 and 3, and the winner is decided entirely by the very
// first action taken from the root -- path "2xx" always wins for whoever
// moved first (the maximizing player), paths "1xx" and "3xx" always lose.
// It exists purely to give MCTS's select/expand/simulate/backup loop a
// tree small enough to reason about exactly.
type connectTwoState struct {
	path []int
}

var _ Searchable[connectTwoState, int, bool] = connectTwoState{}

func (s connectTwoState) Clone() connectTwoState {
	return connectTwoState{path: append([]int(nil), s.path...)}
}

func (s connectTwoState) TerminalValue(maxiPlayer bool) (won bool, known bool) {
	if len(s.path) < 3 {
		return false, false
	}
	rootPlayerWon := s.path[0] == 2
	return rootPlayerWon == maxiPlayer, true
}

func (s connectTwoState) PossibleActions() []int {
	if len(s.path) >= 3 {
		return nil
	}
	return []int{1, 2, 3}
}

func (s connectTwoState) LastAction() (int, bool) {
	if len(s.path) == 0 {
		return 0, false
	}
	return s.path[len(s.path)-1], true
}

func (s connectTwoState) ApplyAction(a int) connectTwoState {
	return connectTwoState{path: append(append([]int(nil), s.path...), a)}
}

// CurrentPlayer alternates every ply: the root player (true, "maximizing")
// moves on plies 0 and 2, the opponent on ply 1.
func (s connectTwoState) CurrentPlayer() bool {
	return len(s.path)%2 == 0
}

// SelectAction always prefers the middle action -- a simple stand-in for a
// heuristic rollout policy, strong enough that the tree's true shape (not
// rollout noise) decides this test.
func (s connectTwoState) SelectAction(actions []int) int {
	for _, a := range actions {
		if a == 2 {
			return a
		}
	}
	return actions[0]
}

func TestConnectTwoPrefersTheWinningFirstMove(t *testing.T) {
	opts := Options{MaxDepth: 10, ExplorationCoefficient: 1.4, Iterations: 500}
	tree := New[connectTwoState, int, bool](connectTwoState{}, true, opts)
	best := tree.FindBestAction()
	assert.Equal(t, 2, best)
}

func TestFindBestActionPanicsOnTerminalRoot(t *testing.T) {
	opts := DefaultOptions
	opts.Iterations = 1
	root := connectTwoState{path: []int{2, 1, 3}}
	assert.Panics(t, func() {
		New[connectTwoState, int, bool](root, true, opts).FindBestAction()
	})
}
