// Package ai binds hive.GameState to the two generic search algorithms --
// negamax and Monte Carlo tree search -- by supplying the evaluation
// heuristics and rollout policy each one needs.
package ai

import (
	"math/rand/v2"

	"github.com/hiveproto/hive/internal/hex"
	"github.com/hiveproto/hive/internal/hive"
	"github.com/hiveproto/hive/internal/piece"
)

// pieceDiff returns the number of Black pieces on the board minus the
// number of White pieces: a simple material-style heuristic, since every
// piece is otherwise equal in Hive. Positive favors Black.
func pieceDiff(gs *hive.GameState) int {
	diff := 0
	for _, p := range gs.Board {
		if p.Owner == piece.Black {
			diff++
		} else {
			diff--
		}
	}
	for _, stack := range gs.Stacks {
		for _, p := range stack {
			if p.Owner == piece.Black {
				diff++
			} else {
				diff--
			}
		}
	}
	return diff
}

// queenHex locates owner's queen on the board, if it has been placed.
func queenHex(gs *hive.GameState, owner piece.Color) (hex.Hex, bool) {
	for h, p := range gs.Board {
		if p.Kind == piece.Queen && p.Owner == owner {
			return h, true
		}
	}
	return hex.Hex{}, false
}

// occupiedNeighborCount is L in the rollout scoring formula: how many of h's
// six neighbors already carry a piece.
func occupiedNeighborCount(gs *hive.GameState, h hex.Hex) int {
	n := 0
	for _, nb := range h.Neighbors() {
		if _, ok := gs.Board[nb]; ok {
			n++
		}
	}
	return n
}

// scoreTurn scores turn from gs for rollout/expansion ordering: placements
// always score 0, and a Move is scored by how it changes the mover's
// exposure to each queen -- attacking a queen (moving onto or next to it)
// is rewarded in proportion to how surrounded that queen already is,
// retreating from one is penalized the same way. The two queens pull in
// opposite directions: approaching Black's queen lowers the score (good for
// White, who minimizes), approaching White's queen raises it (good for
// Black, who maximizes).
func scoreTurn(gs *hive.GameState, turn hive.Turn) float64 {
	if turn.Kind != hive.Move {
		return 0
	}
	from, _ := gs.HexOf(turn.Piece)
	to := turn.Hex

	var score float64
	if bq, ok := queenHex(gs, piece.Black); ok {
		l := float64(occupiedNeighborCount(gs, bq))
		if to == bq || hex.Adjacent(to, bq) {
			score -= l
		}
		if hex.Adjacent(from, bq) {
			score += l
		}
	}
	if wq, ok := queenHex(gs, piece.White); ok {
		l := float64(occupiedNeighborCount(gs, wq))
		if to == wq || hex.Adjacent(to, wq) {
			score += l
		}
		if hex.Adjacent(from, wq) {
			score -= l
		}
	}
	return score
}

// selectAction scores every candidate turn and returns the one mover
// prefers most: the highest score for Black, the lowest for White (Black's
// attacks on White's queen raise a move's score, so Black maximizes and
// White minimizes). Ties -- including the common case where every
// candidate scores exactly 0, since most positions have no queen-adjacency
// signal at all -- are broken uniformly at random rather than by favoring
// whichever move was enumerated first.
func selectAction(gs *hive.GameState, mover piece.Color, turns []hive.Turn) hive.Turn {
	if len(turns) == 1 {
		return turns[0]
	}
	scores := make([]float64, len(turns))
	for i, t := range turns {
		scores[i] = scoreTurn(gs, t)
	}
	best := scores[0]
	for _, s := range scores[1:] {
		if (mover == piece.Black && s > best) || (mover == piece.White && s < best) {
			best = s
		}
	}
	var tied []int
	for i, s := range scores {
		if s == best {
			tied = append(tied, i)
		}
	}
	return turns[tied[rand.IntN(len(tied))]]
}
