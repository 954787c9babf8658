// Package piece defines the Hive piece kinds, colors, and the pieces each
// side starts a game with.
package piece

import "fmt"

// Kind identifies a bug.
type Kind uint8

const (
	None Kind = iota
	Ant
	Beetle
	Grasshopper
	Ladybug
	Mosquito
	Pillbug
	Queen
	Spider
)

// Kinds lists every playable kind, in a fixed order used for iteration.
var Kinds = []Kind{Ant, Beetle, Grasshopper, Ladybug, Mosquito, Pillbug, Queen, Spider}

var names = map[Kind]string{
	Ant:         "Ant",
	Beetle:      "Beetle",
	Grasshopper: "Grasshopper",
	Ladybug:     "Ladybug",
	Mosquito:    "Mosquito",
	Pillbug:     "Pillbug",
	Queen:       "Queen",
	Spider:      "Spider",
}

var letters = map[Kind]byte{
	Ant:         'A',
	Beetle:      'B',
	Grasshopper: 'G',
	Ladybug:     'L',
	Mosquito:    'M',
	Pillbug:     'P',
	Queen:       'Q',
	Spider:      'S',
}

var lettersToKind = func() map[byte]Kind {
	m := make(map[byte]Kind, len(letters))
	for k, l := range letters {
		m[l] = k
	}
	return m
}()

// ParseLetter returns the Kind for its UHP letter (A, B, G, L, M, P, Q, S).
func ParseLetter(l byte) (Kind, bool) {
	k, ok := lettersToKind[l]
	return k, ok
}

// Letter returns the UHP single-letter code for the kind.
func (k Kind) Letter() byte {
	return letters[k]
}

// String returns the kind's name, e.g. "Grasshopper".
func (k Kind) String() string {
	if n, ok := names[k]; ok {
		return n
	}
	return "None"
}

// Unique reports whether a game ever has at most one piece of this kind per
// side, in which case UHP notation omits the numeric suffix.
func (k Kind) Unique() bool {
	switch k {
	case Queen, Ladybug, Mosquito, Pillbug:
		return true
	default:
		return false
	}
}

// InitialCount returns how many pieces of kind k each player starts a game
// with, given which expansions are in play.
func InitialCount(k Kind, pillbug, ladybug, mosquito bool) int {
	switch k {
	case Queen:
		return 1
	case Spider, Beetle:
		return 2
	case Ant, Grasshopper:
		return 3
	case Pillbug:
		if pillbug {
			return 1
		}
	case Ladybug:
		if ladybug {
			return 1
		}
	case Mosquito:
		if mosquito {
			return 1
		}
	}
	return 0
}

// Color is one of the two sides.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposing color.
func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Letter returns "w" or "b", as used in move notation and GameStrings.
func (c Color) Letter() byte {
	if c == White {
		return 'w'
	}
	return 'b'
}

// ParseColorLetter parses "w"/"b" (case sensitive, as UHP specifies).
func ParseColorLetter(l byte) (Color, bool) {
	switch l {
	case 'w':
		return White, true
	case 'b':
		return Black, true
	}
	return Color(0), false
}

// Piece is a single playable token: a kind, an owner, and -- for non-unique
// kinds -- a 1-based id distinguishing it from its same-kind siblings.
type Piece struct {
	Kind  Kind
	Owner Color
	ID    uint8
}

// String renders the piece in UHP notation, e.g. "wS1" or "bQ".
func (p Piece) String() string {
	if p.Kind.Unique() {
		return fmt.Sprintf("%c%c", p.Owner.Letter(), p.Kind.Letter())
	}
	return fmt.Sprintf("%c%c%d", p.Owner.Letter(), p.Kind.Letter(), p.ID)
}
