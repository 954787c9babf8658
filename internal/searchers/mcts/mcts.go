// Package mcts implements classic UCB1 Monte Carlo Tree Search: an
// arena-allocated tree of integer-indexed nodes, a heuristic (not uniform
// random) rollout policy supplied by the caller, and the standard
// select/expand/simulate/backup loop.
package mcts

import "math"

// Searchable is the capability a game state must expose to be searched. T
// is the state type itself, A is the action type, and P identifies a
// player.
type Searchable[T any, A comparable, P comparable] interface {
	// Clone returns an independent copy of the state, safe to mutate (via
	// ApplyAction) without affecting the receiver.
	Clone() T

	// TerminalValue reports whether the game is over, and if so, whether
	// maxiPlayer won. known is false while the game is still in progress.
	TerminalValue(maxiPlayer P) (won bool, known bool)

	// PossibleActions enumerates every action available to the player to
	// move.
	PossibleActions() []A

	// LastAction returns the action that produced this state, if any.
	LastAction() (A, bool)

	// ApplyAction returns the state resulting from playing action, leaving
	// the receiver untouched.
	ApplyAction(action A) T

	// CurrentPlayer returns whose turn it is to move.
	CurrentPlayer() P

	// SelectAction picks one of actions, e.g. via a heuristic score with a
	// random tie-break. It is used both to choose which unexplored action
	// to expand next and to drive rollouts during simulation.
	SelectAction(actions []A) A
}

// Options configures a search.
type Options struct {
	// MaxDepth bounds how many plies a rollout will simulate before it is
	// scored as a non-win.
	MaxDepth int
	// ExplorationCoefficient is the UCB1 exploration weight.
	ExplorationCoefficient float64
	// Iterations is how many select/expand/simulate/backup rounds FindBestAction runs.
	Iterations int
}

// DefaultOptions caps rollouts well past the length of a typical game, so
// only genuinely drawish lines hit the depth cutoff.
var DefaultOptions = Options{MaxDepth: 170, ExplorationCoefficient: 2.0, Iterations: 100}

type node[T any] struct {
	visits     int
	wins       int
	state      T
	unexplored []int // indices not yet expanded, into the action list captured at creation
	parent     int   // -1 for the root
	children   []int
}

// Tree is a single MCTS search against a fixed root position.
type Tree[T Searchable[T, A, P], A comparable, P comparable] struct {
	arena      []*node[T]
	opts       Options
	maxiPlayer P
	actionsOf  [][]A
}

// New builds a search tree rooted at initial. maxiPlayer is the player UCB1
// optimizes for: child selection maximizes the estimate when it's
// maxiPlayer's turn at the parent, and minimizes it otherwise.
func New[T Searchable[T, A, P], A comparable, P comparable](initial T, maxiPlayer P, opts Options) *Tree[T, A, P] {
	tr := &Tree[T, A, P]{opts: opts, maxiPlayer: maxiPlayer}
	tr.newNode(initial, -1)
	return tr
}

func (tr *Tree[T, A, P]) newNode(state T, parent int) int {
	idx := len(tr.arena)
	actions := state.PossibleActions()
	unexplored := make([]int, len(actions))
	for i := range unexplored {
		unexplored[i] = i
	}
	tr.actionsOf = append(tr.actionsOf, actions)
	tr.arena = append(tr.arena, &node[T]{
		state:      state,
		unexplored: unexplored,
		parent:     parent,
	})
	return idx
}

// FindBestAction runs opts.Iterations rounds of selection, simulation and
// backup, then returns the root child with the most visits -- the standard
// "robust child" choice, more stable than picking the highest win rate.
//
// It panics if the root has no legal actions: callers must not ask for a
// move in an already-finished position.
func (tr *Tree[T, A, P]) FindBestAction() A {
	for i := 0; i < tr.opts.Iterations; i++ {
		v := tr.selectNode(0)
		won, known := tr.arena[v].state.TerminalValue(tr.maxiPlayer)
		score := 0
		if known && won {
			score = 1
		}
		if !known {
			rolloutWon, rolloutKnown := tr.simulate(v)
			if rolloutKnown && rolloutWon {
				score = 1
			}
		}
		tr.backup(v, score)
	}

	root := tr.arena[0]
	if len(root.children) == 0 {
		panic("mcts: FindBestAction called on a position with no legal actions")
	}
	best := root.children[0]
	for _, c := range root.children[1:] {
		if tr.arena[c].visits > tr.arena[best].visits {
			best = c
		}
	}
	action, _ := tr.arena[best].state.LastAction()
	return action
}

// selectNode descends from node, expanding the first unexplored action it
// finds, until it reaches a terminal state or a freshly expanded leaf.
func (tr *Tree[T, A, P]) selectNode(v int) int {
	for {
		if _, known := tr.arena[v].state.TerminalValue(tr.maxiPlayer); known {
			return v
		}
		if len(tr.arena[v].unexplored) > 0 {
			return tr.expand(v)
		}
		v = tr.bestChild(v)
	}
}

// expand picks one unexplored action of v (via the state's heuristic
// SelectAction), applies it to a clone, and links the new node as a child.
func (tr *Tree[T, A, P]) expand(v int) int {
	n := tr.arena[v]
	candidateActions := make([]A, len(n.unexplored))
	for i, ai := range n.unexplored {
		candidateActions[i] = tr.actionsOf[v][ai]
	}
	chosen := n.state.SelectAction(candidateActions)

	chosenIdx := 0
	for i, ai := range n.unexplored {
		if tr.actionsOf[v][ai] == chosen {
			chosenIdx = i
			break
		}
	}
	n.unexplored = append(n.unexplored[:chosenIdx], n.unexplored[chosenIdx+1:]...)

	child := n.state.Clone().ApplyAction(chosen)
	idx := tr.newNode(child, v)
	n.children = append(n.children, idx)
	return idx
}

// simulate runs a heuristic rollout from v to opts.MaxDepth plies, or until
// the game ends.
func (tr *Tree[T, A, P]) simulate(v int) (won bool, known bool) {
	sim := tr.arena[v].state.Clone()
	for n := 0; ; n++ {
		if n > tr.opts.MaxDepth {
			return false, false
		}
		if w, k := sim.TerminalValue(tr.maxiPlayer); k {
			return w, true
		}
		actions := sim.PossibleActions()
		a := sim.SelectAction(actions)
		sim = sim.ApplyAction(a)
	}
}

// backup propagates a rollout's outcome up to every ancestor of v,
// including v itself.
func (tr *Tree[T, A, P]) backup(v, score int) {
	for v >= 0 {
		tr.arena[v].visits++
		tr.arena[v].wins += score
		v = tr.arena[v].parent
	}
}

// bestChild picks the child of v maximizing UCB1 when maxiPlayer is to move
// at v, or minimizing it otherwise.
func (tr *Tree[T, A, P]) bestChild(v int) int {
	children := tr.arena[v].children
	maximize := tr.arena[v].state.CurrentPlayer() == tr.maxiPlayer

	best := children[0]
	bestScore := tr.ucb1(v, best)
	for _, c := range children[1:] {
		score := tr.ucb1(v, c)
		better := score > bestScore
		if !maximize {
			better = score < bestScore
		}
		if better {
			bestScore = score
			best = c
		}
	}
	return best
}

// ucb1 is signed so that a higher value is always "more attractive to
// explore from the maximizing side, less attractive from the minimizing
// side" -- bestChild then picks the max or min accordingly.
func (tr *Tree[T, A, P]) ucb1(parent, child int) float64 {
	p, c := tr.arena[parent], tr.arena[child]
	exploitation := float64(c.wins) / float64(c.visits)
	exploration := math.Sqrt(math.Log(float64(p.visits)) / float64(c.visits+1))
	if p.state.CurrentPlayer() == tr.maxiPlayer {
		return exploitation + tr.opts.ExplorationCoefficient*exploration
	}
	return exploitation - tr.opts.ExplorationCoefficient*exploration
}
