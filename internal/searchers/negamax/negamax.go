// Package negamax implements a fixed-depth negamax search over any type
// satisfying the Tree capability: child enumeration, a terminal test, leaf
// evaluation, and a query for whose perspective the raw evaluation is
// expressed in. No pruning is performed.
package negamax

import "math"

// Tree is the capability a node must expose for Search to operate on it.
// T is the node type itself (so Children can return further nodes of the
// same type), and A is the type of action that produced a node.
type Tree[T any, A any] interface {
	// Children enumerates every node reachable by one action from this one.
	Children() []T

	// IsTerminal reports whether the game is over at this node.
	IsTerminal() bool

	// Evaluate returns a raw heuristic score for this node (higher is
	// better for whichever side Evaluate is scoring) along with a short
	// human-readable explanation, and LastAction returns the action that
	// produced this node (the move the caller should play to reach it).
	Evaluate() (score float64, explanation string)
	LastAction() A

	// IsMaximizing reports whether the raw score from Evaluate should be
	// read directly (true) or negated (false) to get the value from the
	// perspective of the player who is to move at this node.
	IsMaximizing() bool
}

// Search runs negamax to the given depth (number of plies) from root and
// returns the best action along with its score and explanation. depth must
// be at least 1; root itself is never evaluated, only its children.
func Search[T Tree[T, A], A any](root T, depth int) (bestAction A, bestScore float64, explanation string) {
	children := root.Children()
	if len(children) == 0 {
		panic("negamax: Search called on a node with no children")
	}
	bestScore = math.Inf(-1)
	for _, child := range children {
		score, expl := negamax[T, A](child, depth-1)
		score = -score
		if score > bestScore {
			bestScore = score
			bestAction = child.LastAction()
			explanation = expl
		}
	}
	return bestAction, bestScore, explanation
}

// negamax returns the value of node from the perspective of the player to
// move there, searching depth further plies.
func negamax[T Tree[T, A], A any](node T, depth int) (score float64, explanation string) {
	children := node.Children()
	if depth <= 0 || node.IsTerminal() || len(children) == 0 {
		raw, expl := node.Evaluate()
		if !node.IsMaximizing() {
			raw = -raw
		}
		return raw, expl
	}
	best := math.Inf(-1)
	var bestExpl string
	for _, child := range children {
		s, e := negamax[T, A](child, depth-1)
		s = -s
		if s > best {
			best = s
			bestExpl = e
		}
	}
	return best, bestExpl
}
