package hive

import (
	"github.com/hiveproto/hive/internal/generics"
	"github.com/hiveproto/hive/internal/hex"
	"github.com/hiveproto/hive/internal/piece"
)

// ValidMoves enumerates every Turn the current player may legally take.
// Once the game is over it returns nil; otherwise it returns at least one
// Turn: if no placement or move is available, the only legal Turn is Pass.
func (gs *GameState) ValidMoves() []Turn {
	if gs.Status.IsTerminal() {
		return nil
	}
	var turns []Turn
	turns = append(turns, gs.placementMoves()...)
	if !gs.hasUnplayedQueen(gs.CurrentPlayer) {
		turns = append(turns, gs.movementMoves()...)
	}
	if len(turns) == 0 {
		return []Turn{PassTurn}
	}
	return turns
}

func (gs *GameState) hasUnplayedQueen(owner piece.Color) bool {
	for _, p := range gs.Unplayed {
		if p.Owner == owner && p.Kind == piece.Queen {
			return true
		}
	}
	return false
}

// placeablePieces returns, for each kind the current player still has
// unplayed, the single lowest-id representative -- siblings of the same
// kind are interchangeable, so only one needs to be offered.
func (gs *GameState) placeablePieces() []piece.Piece {
	best := make(map[piece.Kind]piece.Piece)
	for _, p := range gs.Unplayed {
		if p.Owner != gs.CurrentPlayer {
			continue
		}
		if cur, ok := best[p.Kind]; !ok || p.ID < cur.ID {
			best[p.Kind] = p
		}
	}
	pieces := make([]piece.Piece, 0, len(best))
	for _, k := range piece.Kinds {
		if p, ok := best[k]; ok {
			pieces = append(pieces, p)
		}
	}
	return pieces
}

func (gs *GameState) placementMoves() []Turn {
	pieces := gs.placeablePieces()
	if len(pieces) == 0 {
		return nil
	}

	turnNo := gs.TurnNumber()
	if turnNo == 7 || turnNo == 8 {
		// Queen-by-turn-4 rule: if the current player's queen is still
		// unplayed on their fourth turn, it is the only piece they may place.
		if gs.hasUnplayedQueen(gs.CurrentPlayer) {
			pieces = []piece.Piece{{Kind: piece.Queen, Owner: gs.CurrentPlayer, ID: 1}}
		}
	} else if turnNo <= 2 {
		filtered := pieces[:0:0]
		for _, p := range pieces {
			if p.Kind != piece.Queen {
				filtered = append(filtered, p)
			}
		}
		pieces = filtered
	}
	if len(pieces) == 0 {
		return nil
	}

	var openHexes hex.Set
	if gs.Status.Kind == NotStarted {
		openHexes = hex.SetWith(hex.Origin)
	} else {
		openHexes = hex.EmptyNeighbors(gs.occupied())
		if turnNo >= 3 {
			openHexes = gs.excludeEnemyAdjacent(openHexes)
		}
	}
	if len(openHexes) == 0 {
		return nil
	}

	var turns []Turn
	for _, p := range pieces {
		for h := range openHexes {
			turns = append(turns, Turn{Kind: Place, Piece: p, Hex: h})
		}
	}
	return turns
}

// excludeEnemyAdjacent drops every hex in hexes that neighbors an opposing
// piece.
func (gs *GameState) excludeEnemyAdjacent(hexes hex.Set) hex.Set {
	filtered := hex.MakeSet(len(hexes))
	for h := range hexes {
		touchesEnemy := false
		for _, n := range h.Neighbors() {
			if p, ok := gs.Board[n]; ok && p.Owner != gs.CurrentPlayer {
				touchesEnemy = true
				break
			}
		}
		if !touchesEnemy {
			filtered.Insert(h)
		}
	}
	return filtered
}

func (gs *GameState) movementMoves() []Turn {
	var turns []Turn
	occupied := gs.occupied()
	removable := removableHexes(occupied)
	lastMoved, hasLastMoved := gs.lastMovedPiece()

	for h, p := range gs.Board {
		if p.Owner != gs.CurrentPlayer {
			continue
		}
		if hasLastMoved && p == lastMoved {
			continue
		}
		turns = append(turns, gs.movesForPieceAt(h, p, occupied, removable)...)
	}
	return turns
}

// movesForPieceAt enumerates the Turns available to the piece p sitting on
// top at h.
func (gs *GameState) movesForPieceAt(h hex.Hex, p piece.Piece, occupied, removable hex.Set) []Turn {
	onHive := len(gs.Stacks[h]) > 0
	if !onHive && !removable.Has(h) {
		// Removing p from the board would sever the hive: p itself is
		// frozen, but it may still throw a neighbor if it is (or
		// imitates) a Pillbug.
		if p.Kind == piece.Pillbug || (p.Kind == piece.Mosquito && gs.hasPillbugNeighbor(h)) {
			return gs.pillbugThrows(h)
		}
		return nil
	}

	// Lifting p off a stack leaves the piece beneath it on the board, so the
	// hex only becomes empty when p sits directly on the ground.
	withoutP := occupied
	if !onHive {
		withoutP = occupied.Sub(hex.SetWith(h))
	}
	walkable := hex.EmptyNeighbors(withoutP)

	var dests hex.Set
	switch p.Kind {
	case piece.Queen:
		dests = stepPathfind(h, walkable, withoutP, 1)
	case piece.Spider:
		dests = stepPathfind(h, walkable, withoutP, 3)
	case piece.Ant:
		dests = hex.Pathfind(h, walkable, withoutP, nil)
	case piece.Grasshopper:
		dests = grasshopperDests(h, withoutP)
	case piece.Beetle:
		dests = beetleDests(h, walkable, withoutP, onHive)
	case piece.Ladybug:
		dests = ladybugDests(h, withoutP)
	case piece.Pillbug:
		dests = stepPathfind(h, walkable, withoutP, 1)
	case piece.Mosquito:
		return gs.mosquitoMoves(h, withoutP, walkable, onHive)
	}

	turns := make([]Turn, 0, len(dests))
	for d := range dests {
		turns = append(turns, Turn{Kind: Move, Piece: p, Hex: d})
	}
	if p.Kind == piece.Pillbug {
		turns = append(turns, gs.pillbugThrows(h)...)
	}
	return turns
}

func stepPathfind(h hex.Hex, walkable, barriers hex.Set, steps int) hex.Set {
	return hex.Pathfind(h, walkable, barriers, &steps)
}

// grasshopperDests slides p in a straight line, jumping over one or more
// consecutive occupied hexes to land on the first empty one beyond them.
func grasshopperDests(h hex.Hex, occupied hex.Set) hex.Set {
	dests := hex.MakeSet()
	for _, d := range [6]hex.Hex{hex.DirNE, hex.DirE, hex.DirSE, hex.DirSW, hex.DirW, hex.DirNW} {
		cur := h.Add(d)
		if !occupied.Has(cur) {
			continue // nothing to jump over in this direction
		}
		for occupied.Has(cur) {
			cur = cur.Add(d)
		}
		dests.Insert(cur)
	}
	return dests
}

// beetleDests is a slide onto an empty neighbor (gated, unless already
// elevated atop the hive) unioned with a climb onto an occupied neighbor
// (never gated).
func beetleDests(h hex.Hex, walkable, occupied hex.Set, onHive bool) hex.Set {
	slideBarriers := occupied
	if onHive {
		slideBarriers = hex.MakeSet()
	}
	slide := stepPathfind(h, walkable, slideBarriers, 1)
	climb := stepPathfind(h, occupied, hex.MakeSet(), 1)
	dests := hex.MakeSet(len(slide) + len(climb))
	dests.Insert(generics.KeysSlice(slide)...)
	dests.Insert(generics.KeysSlice(climb)...)
	return dests
}

// ladybugDests climbs onto two consecutive occupied hexes, then steps down
// onto an empty hex -- never landing back where it started.
func ladybugDests(h hex.Hex, occupied hex.Set) hex.Set {
	firstStep := occupiedNeighbors(h, occupied)
	secondStep := hex.MakeSet()
	for s1 := range firstStep {
		secondStep.Insert(generics.KeysSlice(occupiedNeighbors(s1, occupied))...)
	}
	dest := hex.MakeSet()
	for s2 := range secondStep {
		for _, n := range s2.Neighbors() {
			if n != h && !occupied.Has(n) {
				dest.Insert(n)
			}
		}
	}
	return dest
}

func occupiedNeighbors(h hex.Hex, occupied hex.Set) hex.Set {
	result := hex.MakeSet()
	for _, n := range h.Neighbors() {
		if occupied.Has(n) {
			result.Insert(n)
		}
	}
	return result
}

func (gs *GameState) hasPillbugNeighbor(h hex.Hex) bool {
	for _, n := range h.Neighbors() {
		if p, ok := gs.Board[n]; ok && p.Kind == piece.Pillbug {
			return true
		}
	}
	return false
}

// mosquitoMoves mimics the union of every distinct bug kind adjacent to h,
// or behaves as a Beetle if already elevated atop the hive.
func (gs *GameState) mosquitoMoves(h hex.Hex, withoutP, walkable hex.Set, onHive bool) []Turn {
	self := gs.Board[h]
	if onHive {
		dests := beetleDests(h, walkable, withoutP, true)
		turns := make([]Turn, 0, len(dests))
		for d := range dests {
			turns = append(turns, Turn{Kind: Move, Piece: self, Hex: d})
		}
		return turns
	}

	seenKinds := make(map[piece.Kind]bool)
	hasPillbug := false
	var turns []Turn
	for _, n := range h.Neighbors() {
		np, ok := gs.Board[n]
		if !ok || np.Kind == piece.Mosquito {
			continue
		}
		if np.Kind == piece.Pillbug {
			hasPillbug = true
		}
		if seenKinds[np.Kind] {
			continue
		}
		seenKinds[np.Kind] = true

		var dests hex.Set
		switch np.Kind {
		case piece.Queen:
			dests = stepPathfind(h, walkable, withoutP, 1)
		case piece.Spider:
			dests = stepPathfind(h, walkable, withoutP, 3)
		case piece.Ant:
			dests = hex.Pathfind(h, walkable, withoutP, nil)
		case piece.Grasshopper:
			dests = grasshopperDests(h, withoutP)
		case piece.Beetle:
			dests = beetleDests(h, walkable, withoutP, false)
		case piece.Ladybug:
			dests = ladybugDests(h, withoutP)
		case piece.Pillbug:
			dests = stepPathfind(h, walkable, withoutP, 1)
		}
		for d := range dests {
			turns = append(turns, Turn{Kind: Move, Piece: self, Hex: d})
		}
	}
	if hasPillbug {
		turns = append(turns, gs.pillbugThrows(h)...)
	}
	return turns
}

// pillbugThrows enumerates the moves available to a Pillbug (or a Mosquito
// imitating one) sitting at h: pick up an eligible occupied neighbor and set
// it down on an empty neighbor of h.
func (gs *GameState) pillbugThrows(h hex.Hex) []Turn {
	lastMoved, hasLastMoved := gs.lastMovedPiece()
	occupied := gs.occupied()
	removable := removableHexes(occupied)

	var emptyNeighbors []hex.Hex
	for _, n := range h.Neighbors() {
		if _, ok := gs.Board[n]; !ok {
			emptyNeighbors = append(emptyNeighbors, n)
		}
	}
	if len(emptyNeighbors) == 0 {
		return nil
	}

	var turns []Turn
	for _, n := range h.Neighbors() {
		neighborPiece, ok := gs.Board[n]
		if !ok {
			continue
		}
		if len(gs.Stacks[n]) > 0 {
			continue // only a piece sitting directly on the ground may be thrown
		}
		if hasLastMoved && neighborPiece == lastMoved {
			continue
		}
		if !removable.Has(n) {
			continue // picking it up would break the One Hive rule
		}
		for _, d := range emptyNeighbors {
			turns = append(turns, Turn{Kind: Move, Piece: neighborPiece, Hex: d})
		}
	}
	return turns
}
