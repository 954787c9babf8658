// Package hive implements the Hive board: piece placement, sliding and
// climbing movement for every bug (including the Pillbug, Ladybug and
// Mosquito expansions), One Hive connectivity, and the win/draw conditions.
package hive

import (
	"github.com/pkg/errors"

	"github.com/hiveproto/hive/internal/generics"
	"github.com/hiveproto/hive/internal/hex"
	"github.com/hiveproto/hive/internal/piece"
)

// ErrGameOver is returned by SubmitTurn once Status is terminal.
var ErrGameOver = errors.New("game is already over")

// ErrIllegalTurn is returned by SubmitTurn when the given Turn is not
// currently one of ValidMoves.
var ErrIllegalTurn = errors.New("turn is not legal in the current position")

// GameState is a complete, mutable Hive position.
type GameState struct {
	GameType GameType

	// Unplayed holds every piece not yet placed on the board, for both
	// colors.
	Unplayed []piece.Piece

	// Board maps an occupied hex to the topmost piece sitting there.
	Board map[hex.Hex]piece.Piece

	// Stacks holds, for every hex with more than one piece, the pieces
	// beneath the topmost one, ordered from the bottom of the stack up.
	Stacks map[hex.Hex][]piece.Piece

	// Turns is the full history of accepted turns, in order.
	Turns []Turn

	// CurrentPlayer is the color to move next.
	CurrentPlayer piece.Color

	Status Status
}

// New returns a fresh GameState, ready for first placement, where
// firstPlayer moves first.
func New(firstPlayer piece.Color, gt GameType) *GameState {
	gs := &GameState{
		GameType:      gt,
		Board:         make(map[hex.Hex]piece.Piece),
		Stacks:        make(map[hex.Hex][]piece.Piece),
		CurrentPlayer: firstPlayer,
		Status:        Status{Kind: NotStarted},
	}
	for _, owner := range []piece.Color{piece.White, piece.Black} {
		for _, kind := range piece.Kinds {
			n := piece.InitialCount(kind, gt.Pillbug, gt.Ladybug, gt.Mosquito)
			for id := 1; id <= n; id++ {
				gs.Unplayed = append(gs.Unplayed, piece.Piece{Kind: kind, Owner: owner, ID: uint8(id)})
			}
		}
	}
	return gs
}

// Clone returns a deep copy, safe to mutate independently of gs.
func (gs *GameState) Clone() *GameState {
	clone := &GameState{
		GameType:      gs.GameType,
		Unplayed:      append([]piece.Piece(nil), gs.Unplayed...),
		Board:         make(map[hex.Hex]piece.Piece, len(gs.Board)),
		Stacks:        make(map[hex.Hex][]piece.Piece, len(gs.Stacks)),
		Turns:         append([]Turn(nil), gs.Turns...),
		CurrentPlayer: gs.CurrentPlayer,
		Status:        gs.Status,
	}
	for h, p := range gs.Board {
		clone.Board[h] = p
	}
	for h, stack := range gs.Stacks {
		clone.Stacks[h] = append([]piece.Piece(nil), stack...)
	}
	return clone
}

// TurnNumber is the 1-based absolute number of the next turn to be played.
func (gs *GameState) TurnNumber() int {
	return len(gs.Turns) + 1
}

// occupied returns the set of hexes currently holding a piece.
func (gs *GameState) occupied() hex.Set {
	return hex.SetWith(generics.KeysSlice(gs.Board)...)
}

// HexOf returns the hex currently holding p, whether on top of the board or
// buried in a stack.
func (gs *GameState) HexOf(p piece.Piece) (hex.Hex, bool) {
	for h, top := range gs.Board {
		if top == p {
			return h, true
		}
	}
	for h, stack := range gs.Stacks {
		for _, buried := range stack {
			if buried == p {
				return h, true
			}
		}
	}
	return hex.Hex{}, false
}

// HeightAt returns how many pieces are stacked at h (0 if empty, 1 if a
// single piece sits there unstacked).
func (gs *GameState) HeightAt(h hex.Hex) int {
	if _, ok := gs.Board[h]; !ok {
		return 0
	}
	return len(gs.Stacks[h]) + 1
}

// lastMovedPiece returns the piece moved by the most recently accepted
// turn, if that turn was a Move; after a Place or a Pass it reports none.
func (gs *GameState) lastMovedPiece() (piece.Piece, bool) {
	if len(gs.Turns) == 0 {
		return piece.Piece{}, false
	}
	last := gs.Turns[len(gs.Turns)-1]
	if last.Kind != Move {
		return piece.Piece{}, false
	}
	return last.Piece, true
}

// SubmitTurn validates t against ValidMoves and, if legal, applies it.
func (gs *GameState) SubmitTurn(t Turn) error {
	if gs.Status.IsTerminal() {
		return ErrGameOver
	}
	// Pass is always accepted; anything else must come from ValidMoves.
	if t.Kind != Pass {
		legal := false
		for _, vm := range gs.ValidMoves() {
			if vm.Equal(t) {
				legal = true
				break
			}
		}
		if !legal {
			return ErrIllegalTurn
		}
	}
	gs.apply(t)
	return nil
}

// SubmitTurnUnchecked applies t without validating it against ValidMoves.
// Callers -- principally AI rollouts, which only ever construct turns by
// enumerating ValidMoves in the first place -- take on the obligation of
// legality themselves.
func (gs *GameState) SubmitTurnUnchecked(t Turn) {
	if gs.Status.IsTerminal() {
		return
	}
	gs.apply(t)
}

// apply performs t unconditionally, trusting the caller has already
// validated it (e.g. during GameString replay).
func (gs *GameState) apply(t Turn) {
	switch t.Kind {
	case Place:
		gs.Board[t.Hex] = t.Piece
		gs.removeUnplayed(t.Piece)
	case Move:
		from, _ := gs.HexOf(t.Piece)
		gs.liftTop(from)
		gs.dropOnTop(t.Hex, t.Piece)
	case Pass:
		// No board change.
	}
	gs.Turns = append(gs.Turns, t)
	gs.CurrentPlayer = gs.CurrentPlayer.Other()
	if gs.Status.Kind == NotStarted {
		gs.Status = Status{Kind: InProgress}
	}
	gs.recomputeStatus()
}

func (gs *GameState) removeUnplayed(p piece.Piece) {
	for i, u := range gs.Unplayed {
		if u == p {
			gs.Unplayed = append(gs.Unplayed[:i], gs.Unplayed[i+1:]...)
			return
		}
	}
}

// liftTop removes the topmost piece at h, promoting whatever was stacked
// below it, if anything.
func (gs *GameState) liftTop(h hex.Hex) {
	if stack := gs.Stacks[h]; len(stack) > 0 {
		gs.Board[h] = stack[len(stack)-1]
		if len(stack) == 1 {
			delete(gs.Stacks, h)
		} else {
			gs.Stacks[h] = stack[:len(stack)-1]
		}
		return
	}
	delete(gs.Board, h)
}

// dropOnTop places p at h, stacking whatever piece already sat there.
func (gs *GameState) dropOnTop(h hex.Hex, p piece.Piece) {
	if existing, ok := gs.Board[h]; ok {
		gs.Stacks[h] = append(gs.Stacks[h], existing)
	}
	gs.Board[h] = p
}

// recomputeStatus checks whether either queen is fully surrounded and
// updates Status accordingly.
func (gs *GameState) recomputeStatus() {
	whiteSurrounded := gs.queenSurrounded(piece.White)
	blackSurrounded := gs.queenSurrounded(piece.Black)
	switch {
	case whiteSurrounded && blackSurrounded:
		gs.Status = Status{Kind: Draw}
	case whiteSurrounded:
		gs.Status = Status{Kind: Win, Winner: piece.Black}
	case blackSurrounded:
		gs.Status = Status{Kind: Win, Winner: piece.White}
	}
}

func (gs *GameState) queenSurrounded(owner piece.Color) bool {
	for h, p := range gs.Board {
		if p.Kind == piece.Queen && p.Owner == owner {
			for _, n := range h.Neighbors() {
				if _, occupied := gs.Board[n]; !occupied {
					return false
				}
			}
			return true
		}
	}
	return false
}
