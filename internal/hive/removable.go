package hive

import (
	"github.com/hiveproto/hive/internal/generics"
	"github.com/hiveproto/hive/internal/hex"
)

// articulationState is the scratch space for the linear-time cut-vertex
// search over the graph of occupied hexes connected by adjacency.
type articulationState struct {
	numVertices    int
	isArticulation []bool
	allEdgesTarget []int
	edgesPerNode   [][2]int
	tIn, tLow      []int
}

// removableHexes returns the hexes that could be lifted off the board
// without breaking the One Hive rule -- i.e. every occupied hex except the
// articulation points of the occupied-hex adjacency graph.
//
// It runs the standard linear algorithm for finding cut vertices, see
// https://cp-algorithms.com/graph/cutpoints.html
func removableHexes(occupied hex.Set) hex.Set {
	if len(occupied) <= 1 {
		return cloneHexSet(occupied)
	}

	positions := generics.KeysSlice(occupied)
	nodeOf := make(map[hex.Hex]int, len(positions))
	for idx, h := range positions {
		nodeOf[h] = idx
	}

	as := &articulationState{
		numVertices:    len(positions),
		allEdgesTarget: make([]int, 0, 6*len(positions)),
		edgesPerNode:   make([][2]int, len(positions)),
	}
	for idx, h := range positions {
		as.edgesPerNode[idx][0] = len(as.allEdgesTarget)
		for _, n := range h.Neighbors() {
			if toIdx, found := nodeOf[n]; found {
				as.allEdgesTarget = append(as.allEdgesTarget, toIdx)
			}
		}
		as.edgesPerNode[idx][1] = len(as.allEdgesTarget)
	}
	as.findArticulationPoints(0)

	removable := hex.MakeSet(len(positions))
	for idx, isCut := range as.isArticulation {
		if !isCut {
			removable.Insert(positions[idx])
		}
	}
	return removable
}

func (as *articulationState) findArticulationPoints(root int) {
	as.tIn = make([]int, as.numVertices)
	as.tLow = make([]int, as.numVertices)
	as.isArticulation = make([]bool, as.numVertices)

	t := 1
	as.tIn[root] = 1
	as.tLow[root] = 1
	t++
	children := 0
	for _, n := range as.allEdgesTarget[as.edgesPerNode[root][0]:as.edgesPerNode[root][1]] {
		if as.tIn[n] != 0 {
			continue
		}
		children++
		t = as.dfsVisit(root, n, t)
	}
	// The root is a cut vertex only if the DFS needed more than one child
	// branch to cover the whole graph.
	as.isArticulation[root] = children > 1
}

func (as *articulationState) dfsVisit(from, to, t int) int {
	as.tIn[to] = t
	as.tLow[to] = t
	t++
	for _, n := range as.allEdgesTarget[as.edgesPerNode[to][0]:as.edgesPerNode[to][1]] {
		if n == from {
			continue
		}
		if as.tIn[n] != 0 {
			as.tLow[to] = min(as.tLow[to], as.tIn[n])
			continue
		}
		t = as.dfsVisit(to, n, t)
		as.tLow[to] = min(as.tLow[to], as.tLow[n])
		if as.tLow[n] >= as.tIn[to] {
			as.isArticulation[to] = true
		}
	}
	return t
}

func cloneHexSet(s hex.Set) hex.Set {
	c := hex.MakeSet(len(s))
	c.Insert(generics.KeysSlice(s)...)
	return c
}
