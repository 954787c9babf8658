package hive

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/hiveproto/hive/internal/hex"
	"github.com/hiveproto/hive/internal/piece"
)

// GameType records which expansion pieces are in play. The base game alone
// is the zero value.
type GameType struct {
	Pillbug, Ladybug, Mosquito bool
}

// Base is the expansion-free game type.
var Base = GameType{}

func (t GameType) String() string {
	var suffix strings.Builder
	// Fixed P, L, M order, matching the notation every UHP engine emits.
	if t.Pillbug {
		suffix.WriteByte('P')
	}
	if t.Ladybug {
		suffix.WriteByte('L')
	}
	if t.Mosquito {
		suffix.WriteByte('M')
	}
	if suffix.Len() == 0 {
		return "Base"
	}
	return "Base+" + suffix.String()
}

// ParseGameType parses "Base" or "Base+" followed by some subset of P, L, M.
func ParseGameType(s string) (GameType, error) {
	if s == "Base" {
		return Base, nil
	}
	rest, ok := strings.CutPrefix(s, "Base+")
	if !ok || rest == "" {
		return GameType{}, errors.Errorf("invalid game type %q", s)
	}
	var t GameType
	for _, r := range rest {
		switch r {
		case 'P':
			if t.Pillbug {
				return GameType{}, errors.Errorf("duplicate expansion letter in game type %q", s)
			}
			t.Pillbug = true
		case 'L':
			if t.Ladybug {
				return GameType{}, errors.Errorf("duplicate expansion letter in game type %q", s)
			}
			t.Ladybug = true
		case 'M':
			if t.Mosquito {
				return GameType{}, errors.Errorf("duplicate expansion letter in game type %q", s)
			}
			t.Mosquito = true
		default:
			return GameType{}, errors.Errorf("unknown expansion letter %q in game type %q", string(r), s)
		}
	}
	return t, nil
}

// StatusKind distinguishes the phase or outcome of a game.
type StatusKind uint8

const (
	NotStarted StatusKind = iota
	InProgress
	Draw
	Win
)

// Status is the current phase or outcome of a game. Winner is only
// meaningful when Kind == Win.
type Status struct {
	Kind   StatusKind
	Winner piece.Color
}

func (s Status) IsTerminal() bool {
	return s.Kind == Draw || s.Kind == Win
}

func (s Status) String() string {
	switch s.Kind {
	case NotStarted:
		return "NotStarted"
	case InProgress:
		return "InProgress"
	case Draw:
		return "Draw"
	case Win:
		if s.Winner == piece.White {
			return "WhiteWins"
		}
		return "BlackWins"
	}
	return "NotStarted"
}

// ParseStatus parses one of the five GameString status tokens.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "NotStarted":
		return Status{Kind: NotStarted}, nil
	case "InProgress":
		return Status{Kind: InProgress}, nil
	case "Draw":
		return Status{Kind: Draw}, nil
	case "WhiteWins":
		return Status{Kind: Win, Winner: piece.White}, nil
	case "BlackWins":
		return Status{Kind: Win, Winner: piece.Black}, nil
	}
	return Status{}, errors.Errorf("unknown game status %q", s)
}

// TurnKind distinguishes the three things a player may do on their turn.
type TurnKind uint8

const (
	Place TurnKind = iota
	Move
	Pass
)

// Turn is one ply: placing an unplayed piece, sliding a piece already on the
// board, or passing. SubmitTurn accepts a Pass in any unfinished game, even
// when other actions are available.
type Turn struct {
	Kind  TurnKind
	Piece piece.Piece
	Hex   hex.Hex
}

// PassTurn is the single legal Turn when a player has no placements or
// moves available.
var PassTurn = Turn{Kind: Pass}

func (t Turn) Equal(o Turn) bool {
	if t.Kind != o.Kind {
		return false
	}
	if t.Kind == Pass {
		return true
	}
	return t.Piece == o.Piece && t.Hex == o.Hex
}

func (t Turn) String() string {
	switch t.Kind {
	case Place:
		return fmt.Sprintf("Place(%s, %s)", t.Piece, t.Hex)
	case Move:
		return fmt.Sprintf("Move(%s, %s)", t.Piece, t.Hex)
	default:
		return "Pass"
	}
}
