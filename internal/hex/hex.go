// Package hex implements the cube-coordinate hexagonal grid the hive is laid
// out on: neighbor enumeration, contiguity, and the gated pathfinding used to
// generate slides for every piece kind.
package hex

import (
	"fmt"

	"github.com/hiveproto/hive/internal/generics"
)

// Hex is a cube coordinate, always satisfying X+Y+Z == 0.
type Hex struct {
	X, Y, Z int8
}

// Origin is where the very first piece of a game is placed.
var Origin = Hex{0, 0, 0}

// Add returns h+o.
func (h Hex) Add(o Hex) Hex {
	return Hex{h.X + o.X, h.Y + o.Y, h.Z + o.Z}
}

// Sub returns h-o.
func (h Hex) Sub(o Hex) Hex {
	return Hex{h.X - o.X, h.Y - o.Y, h.Z - o.Z}
}

// Direction offsets, named after their position on a pointy-side hex.
var (
	DirNE = Hex{1, 0, -1}
	DirE  = Hex{1, -1, 0}
	DirSE = Hex{0, -1, 1}
	DirSW = Hex{-1, 0, 1}
	DirW  = Hex{-1, 1, 0}
	DirNW = Hex{0, 1, -1}
)

// directions lists the six unit offsets in the fixed order neighbors are
// always enumerated in: NE, E, SE, SW, W, NW.
var directions = [6]Hex{DirNE, DirE, DirSE, DirSW, DirW, DirNW}

// Neighbors returns the six hexes surrounding h, in a fixed deterministic
// order (NE, E, SE, SW, W, NW).
func (h Hex) Neighbors() [6]Hex {
	var out [6]Hex
	for i, d := range directions {
		out[i] = h.Add(d)
	}
	return out
}

func abs8(v int8) int8 {
	if v < 0 {
		return -v
	}
	return v
}

// Dist returns the number of steps between a and b.
func Dist(a, b Hex) int {
	d := a.Sub(b)
	return int(abs8(d.X)+abs8(d.Y)+abs8(d.Z)) / 2
}

// Adjacent reports whether a and b are exactly one step apart.
func Adjacent(a, b Hex) bool {
	return Dist(a, b) == 1
}

// Pincers returns the two hexes flanking the edge from a to b: the two cells
// that, taken together, gate whether a piece may slide across that edge. ok
// is false unless a and b are adjacent.
func Pincers(a, b Hex) (p1, p2 Hex, ok bool) {
	if !Adjacent(a, b) {
		return Hex{}, Hex{}, false
	}
	v := b.Sub(a)
	p1 = a.Add(Hex{-v.Z, -v.X, -v.Y})
	p2 = a.Add(Hex{-v.Y, -v.Z, -v.X})
	return p1, p2, true
}

// Set is a set of hexes.
type Set = generics.Set[Hex]

// MakeSet returns an empty hex Set.
func MakeSet(size ...int) Set {
	return generics.MakeSet[Hex](size...)
}

// SetWith returns a Set containing exactly the given hexes.
func SetWith(hs ...Hex) Set {
	return generics.SetWith[Hex](hs...)
}

// EmptyNeighbors returns the unoccupied hexes adjacent to some member of
// occupied.
func EmptyNeighbors(occupied Set) Set {
	result := MakeSet()
	for h := range occupied {
		for _, n := range h.Neighbors() {
			if !occupied.Has(n) {
				result.Insert(n)
			}
		}
	}
	return result
}

// AllContiguous reports whether every hex in occupied can be reached from
// any other by walking through neighbors also in occupied. An empty set is
// not contiguous.
func AllContiguous(occupied Set) bool {
	if len(occupied) == 0 {
		return false
	}
	var start Hex
	for h := range occupied {
		start = h
		break
	}
	visited := MakeSet()
	stack := []Hex{start}
	visited.Insert(start)
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range h.Neighbors() {
			if occupied.Has(n) && !visited.Has(n) {
				visited.Insert(n)
				stack = append(stack, n)
			}
		}
	}
	return len(visited) == len(occupied)
}

// Pathfind enumerates the hexes reachable from start by walking through
// cells in walkable, never stepping on a hex twice along the same path, and
// gated at every step: a step across an edge is blocked unless exactly one
// of the edge's two pincer hexes is occupied (present in barriers). When
// barriers is empty, no step is gated.
//
// If maxSteps is nil, every hex reachable in one or more steps is returned
// (an Ant-style walk). If maxSteps points at 0, {start} is returned. If it
// points at n>0, only hexes reachable in exactly n steps are returned
// (a Queen- or Spider-style walk) -- the same hex may be counted through more
// than one path, so the result is naturally deduplicated by the Set.
func Pathfind(start Hex, walkable, barriers Set, maxSteps *int) Set {
	if maxSteps != nil && *maxSteps == 0 {
		return SetWith(start)
	}
	result := dfsGated(start, walkable, barriers, MakeSet(), 0, maxSteps)
	delete(result, start)
	return result
}

func dfsGated(h Hex, walkable, barriers, visited Set, dist int, maxSteps *int) Set {
	if maxSteps != nil && dist == *maxSteps {
		return SetWith(h)
	}
	visited = cloneSet(visited)
	visited.Insert(h)

	result := MakeSet()
	if maxSteps == nil {
		result.Insert(h)
	}
	for _, n := range h.Neighbors() {
		if !walkable.Has(n) || visited.Has(n) {
			continue
		}
		if len(barriers) > 0 {
			p1, p2, _ := Pincers(h, n)
			if barriers.Has(p1) == barriers.Has(p2) {
				// Both pincers present or both absent: the gate is shut.
				continue
			}
		}
		result.Insert(generics.KeysSlice(dfsGated(n, walkable, barriers, visited, dist+1, maxSteps))...)
	}
	return result
}

func cloneSet(s Set) Set {
	c := MakeSet(len(s))
	c.Insert(generics.KeysSlice(s)...)
	return c
}

// String renders h as "(x,y,z)", mostly for test failure messages.
func (h Hex) String() string {
	return fmt.Sprintf("(%d,%d,%d)", h.X, h.Y, h.Z)
}
