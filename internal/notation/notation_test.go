package notation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hiveproto/hive/internal/hive"
	"github.com/hiveproto/hive/internal/piece"
)

func TestParseFormatPieceRoundTrip(t *testing.T) {
	cases := []piece.Piece{
		{Kind: piece.Queen, Owner: piece.White, ID: 1},
		{Kind: piece.Ant, Owner: piece.Black, ID: 3},
		{Kind: piece.Spider, Owner: piece.White, ID: 2},
	}
	for _, p := range cases {
		s := FormatPiece(p)
		got, err := ParsePiece(s)
		assert.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestParsePieceRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "w", "xQ", "wZ", "wS"} {
		_, err := ParsePiece(s)
		assert.Error(t, err, "expected %q to be rejected", s)
	}
}

func TestTurnNotationRoundTrip(t *testing.T) {
	gs := hive.New(piece.White, hive.Base)
	wSpider := piece.Piece{Kind: piece.Spider, Owner: piece.White, ID: 1}

	opening := hive.Turn{Kind: hive.Place, Piece: wSpider}
	openingStr := FormatTurn(opening, gs)
	assert.Equal(t, "wS1", openingStr)
	parsed, err := ParseTurn(openingStr, gs)
	assert.NoError(t, err)
	assert.Equal(t, hive.Place, parsed.Kind)
	assert.Equal(t, wSpider, parsed.Piece)
	must(t, gs.SubmitTurn(hive.Turn{Kind: hive.Place, Piece: wSpider, Hex: parsed.Hex}))

	for _, m := range gs.ValidMoves() {
		str := FormatTurn(m, gs)
		back, err := ParseTurn(str, gs)
		assert.NoError(t, err)
		assert.True(t, m.Equal(back), "round-trip of %s through %q produced %s", m, str, back)
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGameStringRoundTrip(t *testing.T) {
	gs := hive.New(piece.White, hive.Base)
	wSpider := piece.Piece{Kind: piece.Spider, Owner: piece.White, ID: 1}
	bAnt := piece.Piece{Kind: piece.Ant, Owner: piece.Black, ID: 1}
	wQueen := piece.Piece{Kind: piece.Queen, Owner: piece.White, ID: 1}

	must(t, gs.SubmitTurn(turnFor(t, gs, hive.Turn{Kind: hive.Place, Piece: wSpider})))
	must(t, gs.SubmitTurn(turnFor(t, gs, hive.Turn{Kind: hive.Place, Piece: bAnt})))
	must(t, gs.SubmitTurn(turnFor(t, gs, hive.Turn{Kind: hive.Place, Piece: wQueen})))

	str := FormatGameString(gs)
	replayed, err := ParseGameString(str)
	assert.NoError(t, err)
	assert.Equal(t, gs.Status, replayed.Status)
	assert.Equal(t, gs.CurrentPlayer, replayed.CurrentPlayer)
	assert.Equal(t, gs.Board, replayed.Board)
	assert.Equal(t, FormatGameString(replayed), str)
}

// turnFor picks whichever legal destination ValidMoves offers for placing
// want.Piece, since this test only cares about exercising the notation
// layer, not move legality details.
func turnFor(t *testing.T, gs *hive.GameState, want hive.Turn) hive.Turn {
	t.Helper()
	for _, m := range gs.ValidMoves() {
		if m.Kind == want.Kind && m.Piece == want.Piece {
			return m
		}
	}
	t.Fatalf("no legal move found for %s", want)
	return hive.Turn{}
}

func TestParseGameStringRejectsMismatchedStatus(t *testing.T) {
	_, err := ParseGameString("Base;WhiteWins;Black[1];wS1")
	assert.Error(t, err)
}
