package hive

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hiveproto/hive/internal/hex"
	"github.com/hiveproto/hive/internal/piece"
)

func TestOpeningMoveMustBeAtOrigin(t *testing.T) {
	gs := New(piece.White, Base)
	moves := gs.ValidMoves()
	assert.NotEmpty(t, moves)
	for _, m := range moves {
		assert.Equal(t, Place, m.Kind)
		assert.Equal(t, hex.Origin, m.Hex)
	}
}

func TestSecondPlayerMustPlaceAdjacentToOpeningPiece(t *testing.T) {
	gs := New(piece.White, Base)
	wAnt := piece.Piece{Kind: piece.Ant, Owner: piece.White, ID: 1}
	must(t, gs.SubmitTurn(Turn{Kind: Place, Piece: wAnt, Hex: hex.Origin}))

	// Black's first placement must be adjacent to White's lone piece --
	// every hex on the board other than hex.Origin's six neighbors is
	// simply not reachable yet.
	for _, m := range gs.ValidMoves() {
		assert.Equal(t, Place, m.Kind)
		assert.True(t, hex.Adjacent(m.Hex, hex.Origin))
	}
}

func TestThirdMoveCannotPlaceTouchingEnemy(t *testing.T) {
	gs := New(piece.White, Base)
	wAnt := piece.Piece{Kind: piece.Ant, Owner: piece.White, ID: 1}
	bAnt := piece.Piece{Kind: piece.Ant, Owner: piece.Black, ID: 1}
	must(t, gs.SubmitTurn(Turn{Kind: Place, Piece: wAnt, Hex: hex.Origin}))
	must(t, gs.SubmitTurn(Turn{Kind: Place, Piece: bAnt, Hex: hex.Origin.Add(hex.DirNE)}))

	// It's White's second placement now: every legal destination must be
	// empty, adjacent to a White piece, and not adjacent to any Black one.
	for _, m := range gs.ValidMoves() {
		if m.Kind != Place {
			continue
		}
		touchesEnemy := false
		for _, n := range m.Hex.Neighbors() {
			if p, ok := gs.Board[n]; ok && p.Owner == piece.Black {
				touchesEnemy = true
			}
		}
		assert.False(t, touchesEnemy, "placement at %s touches an enemy piece", m.Hex)
	}
}

func TestQueenMustBePlacedByFourthOwnTurn(t *testing.T) {
	gs := New(piece.White, Base)
	wAnt1 := piece.Piece{Kind: piece.Ant, Owner: piece.White, ID: 1}
	bAnt1 := piece.Piece{Kind: piece.Ant, Owner: piece.Black, ID: 1}
	wAnt2 := piece.Piece{Kind: piece.Ant, Owner: piece.White, ID: 2}
	bAnt2 := piece.Piece{Kind: piece.Ant, Owner: piece.Black, ID: 2}
	wAnt3 := piece.Piece{Kind: piece.Ant, Owner: piece.White, ID: 3}
	bAnt3 := piece.Piece{Kind: piece.Ant, Owner: piece.Black, ID: 3}

	must(t, gs.SubmitTurn(Turn{Kind: Place, Piece: wAnt1, Hex: hex.Origin}))
	must(t, gs.SubmitTurn(Turn{Kind: Place, Piece: bAnt1, Hex: hex.Origin.Add(hex.DirNE)}))
	wAnt2Hex := hex.Origin.Add(hex.DirW)
	must(t, gs.SubmitTurn(Turn{Kind: Place, Piece: wAnt2, Hex: wAnt2Hex}))
	bAnt2Hex := hex.Origin.Add(hex.DirNE).Add(hex.DirNE)
	must(t, gs.SubmitTurn(Turn{Kind: Place, Piece: bAnt2, Hex: bAnt2Hex}))
	wAnt3Hex := wAnt2Hex.Add(hex.DirW)
	must(t, gs.SubmitTurn(Turn{Kind: Place, Piece: wAnt3, Hex: wAnt3Hex}))
	bAnt3Hex := bAnt2Hex.Add(hex.DirNE)
	must(t, gs.SubmitTurn(Turn{Kind: Place, Piece: bAnt3, Hex: bAnt3Hex}))

	// White's fourth placement: the queen is still unplayed, so it must be
	// the only piece offered.
	for _, m := range gs.ValidMoves() {
		assert.Equal(t, Place, m.Kind)
		assert.Equal(t, piece.Queen, m.Piece.Kind)
	}
}

func TestNoMovesAvailableIsExactlyPass(t *testing.T) {
	gs := New(piece.White, Base)
	gs.Status = Status{Kind: InProgress}
	moves := gs.ValidMoves()
	assert.Equal(t, []Turn{PassTurn}, moves)
}

func TestEveryValidMoveSubmitsCleanly(t *testing.T) {
	gs := New(piece.White, Base)
	wSpider := piece.Piece{Kind: piece.Spider, Owner: piece.White, ID: 1}
	bSpider := piece.Piece{Kind: piece.Spider, Owner: piece.Black, ID: 1}
	wQueen := piece.Piece{Kind: piece.Queen, Owner: piece.White, ID: 1}
	bQueen := piece.Piece{Kind: piece.Queen, Owner: piece.Black, ID: 1}
	must(t, gs.SubmitTurn(Turn{Kind: Place, Piece: wSpider, Hex: hex.Origin}))
	must(t, gs.SubmitTurn(Turn{Kind: Place, Piece: bSpider, Hex: hex.Origin.Add(hex.DirNE)}))
	must(t, gs.SubmitTurn(Turn{Kind: Place, Piece: wQueen, Hex: hex.Origin.Add(hex.DirSW)}))
	must(t, gs.SubmitTurn(Turn{Kind: Place, Piece: bQueen, Hex: hex.Origin.Add(hex.DirNE).Add(hex.DirNE)}))

	for _, m := range gs.ValidMoves() {
		clone := gs.Clone()
		err := clone.SubmitTurn(m)
		assert.NoError(t, err, "legal move %s failed to submit", m)
	}
}

func TestPillbugThrowsNeighborEvenWhenFrozenByOneHive(t *testing.T) {
	gs := New(piece.White, Base)
	wPillbug := piece.Piece{Kind: piece.Pillbug, Owner: piece.White, ID: 1}
	bAnt := piece.Piece{Kind: piece.Ant, Owner: piece.Black, ID: 1}
	wSpider := piece.Piece{Kind: piece.Spider, Owner: piece.White, ID: 1}

	// Arrange a line Spider - Pillbug - Ant so lifting the Pillbug would
	// sever the hive, but it can still throw its Ant neighbor.
	gs.Board[hex.Origin] = wSpider
	gs.Board[hex.Origin.Add(hex.DirE)] = wPillbug
	gs.Board[hex.Origin.Add(hex.DirE).Add(hex.DirE)] = bAnt
	gs.CurrentPlayer = piece.White
	gs.Status = Status{Kind: InProgress}

	moves := gs.pillbugThrows(hex.Origin.Add(hex.DirE))
	assert.NotEmpty(t, moves, "pillbug pinned by One Hive should still be able to throw")
	assert.Contains(t, moves, Turn{Kind: Move, Piece: bAnt, Hex: hex.Origin.Add(hex.DirE).Add(hex.DirSE)})
}

func TestBeetleAtopStackReachesAllSixNeighbors(t *testing.T) {
	gs := New(piece.White, Base)
	wQueen := piece.Piece{Kind: piece.Queen, Owner: piece.White, ID: 1}
	wBeetle := piece.Piece{Kind: piece.Beetle, Owner: piece.White, ID: 1}
	bAnt := piece.Piece{Kind: piece.Ant, Owner: piece.Black, ID: 1}

	// The beetle sits on top of the black ant: its hex stays part of the
	// hive while it moves, so it may step down onto any surrounding cell --
	// including ones whose only hive contact is the stack it is leaving.
	antHex := hex.Origin.Add(hex.DirE)
	gs.Board[hex.Origin] = wQueen
	gs.Board[antHex] = wBeetle
	gs.Stacks[antHex] = []piece.Piece{bAnt}
	for _, placed := range []piece.Piece{wQueen, wBeetle, bAnt} {
		gs.removeUnplayed(placed)
	}
	gs.Status = Status{Kind: InProgress}

	var dests []hex.Hex
	for _, m := range gs.ValidMoves() {
		if m.Kind == Move && m.Piece == wBeetle {
			dests = append(dests, m.Hex)
		}
	}
	neighbors := antHex.Neighbors()
	assert.ElementsMatch(t, neighbors[:], dests)
}
