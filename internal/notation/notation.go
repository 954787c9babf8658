// Package notation implements the text forms of the Universal Hive
// Protocol: move strings (e.g. "wS1 bG1-") and the GameString that encodes
// an entire game ("Base;InProgress;White[2];wS1;bG1 wS1-").
package notation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/hiveproto/hive/internal/hex"
	"github.com/hiveproto/hive/internal/hive"
	"github.com/hiveproto/hive/internal/piece"
)

// directional glyphs: a glyph on the west side of a reference piece is
// written before it, one on the east side is written after it.
var (
	westGlyph = map[hex.Hex]byte{hex.DirW: '-', hex.DirNW: '\\', hex.DirSW: '/'}
	eastGlyph = map[hex.Hex]byte{hex.DirE: '-', hex.DirNE: '/', hex.DirSE: '\\'}
)

var glyphToWestDir = invert(westGlyph)
var glyphToEastDir = invert(eastGlyph)

func invert(m map[hex.Hex]byte) map[byte]hex.Hex {
	out := make(map[byte]hex.Hex, len(m))
	for h, g := range m {
		out[g] = h
	}
	return out
}

func isGlyph(b byte) bool {
	return b == '-' || b == '\\' || b == '/'
}

// FormatPiece renders a piece in UHP notation, e.g. "wS1" or "bQ".
func FormatPiece(p piece.Piece) string {
	return p.String()
}

// ParsePiece parses a piece token like "wS1" or "bQ".
func ParsePiece(s string) (piece.Piece, error) {
	if len(s) < 2 {
		return piece.Piece{}, errors.Errorf("invalid piece string %q", s)
	}
	color, ok := piece.ParseColorLetter(s[0])
	if !ok {
		return piece.Piece{}, errors.Errorf("invalid color in piece string %q", s)
	}
	kind, ok := piece.ParseLetter(s[1])
	if !ok {
		return piece.Piece{}, errors.Errorf("invalid piece kind in piece string %q", s)
	}
	p := piece.Piece{Kind: kind, Owner: color}
	if kind.Unique() {
		if len(s) != 2 {
			return piece.Piece{}, errors.Errorf("unique piece %q should not have an id", s)
		}
		p.ID = 1
		return p, nil
	}
	if len(s) < 3 {
		return piece.Piece{}, errors.Errorf("piece string %q is missing its id", s)
	}
	id, err := strconv.Atoi(s[2:])
	if err != nil {
		return piece.Piece{}, errors.Wrapf(err, "invalid id in piece string %q", s)
	}
	p.ID = uint8(id)
	return p, nil
}

// FormatTurn renders t the way it would be typed into a "play" command,
// given gs is the position t is about to be applied to.
func FormatTurn(t hive.Turn, gs *hive.GameState) string {
	if t.Kind == hive.Pass {
		return "pass"
	}
	target := t.Piece.String()
	if existing, ok := gs.Board[t.Hex]; ok {
		return fmt.Sprintf("%s %s", target, existing.String())
	}
	for _, n := range t.Hex.Neighbors() {
		ref, ok := gs.Board[n]
		if !ok {
			continue
		}
		if ref == t.Piece {
			// A piece cannot reference itself. If it sits on a stack the
			// piece beneath it still marks the hex; otherwise look for
			// another neighbor.
			stack := gs.Stacks[n]
			if len(stack) == 0 {
				continue
			}
			ref = stack[len(stack)-1]
		}
		dir := t.Hex.Sub(n)
		if g, ok := westGlyph[dir]; ok {
			return fmt.Sprintf("%s %c%s", target, g, ref.String())
		}
		if g, ok := eastGlyph[dir]; ok {
			return fmt.Sprintf("%s %s%c", target, ref.String(), g)
		}
	}
	// No neighboring reference piece: this is the opening move.
	return target
}

// ParseTurn parses a move string against the current position.
func ParseTurn(s string, gs *hive.GameState) (hive.Turn, error) {
	s = strings.TrimSpace(s)
	if s == "pass" {
		return hive.PassTurn, nil
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return hive.Turn{}, errors.New("empty move string")
	}
	p, err := ParsePiece(fields[0])
	if err != nil {
		return hive.Turn{}, err
	}
	kind := hive.Move
	if _, onBoard := gs.HexOf(p); !onBoard {
		kind = hive.Place
	}

	if len(fields) == 1 {
		// Only legal for the very first placement of the game.
		return hive.Turn{Kind: hive.Place, Piece: p, Hex: hex.Origin}, nil
	}

	ref := fields[1]
	var refPiece piece.Piece
	var dir *hex.Hex
	switch {
	case isGlyph(ref[0]):
		d, ok := glyphToWestDir[ref[0]]
		if !ok {
			return hive.Turn{}, errors.Errorf("unknown direction glyph %q", string(ref[0]))
		}
		dir = &d
		refPiece, err = ParsePiece(ref[1:])
	case isGlyph(ref[len(ref)-1]):
		d, ok := glyphToEastDir[ref[len(ref)-1]]
		if !ok {
			return hive.Turn{}, errors.Errorf("unknown direction glyph %q", string(ref[len(ref)-1]))
		}
		dir = &d
		refPiece, err = ParsePiece(ref[:len(ref)-1])
	default:
		refPiece, err = ParsePiece(ref)
	}
	if err != nil {
		return hive.Turn{}, err
	}

	refHex, ok := gs.HexOf(refPiece)
	if !ok {
		return hive.Turn{}, errors.Errorf("reference piece %s is not on the board", refPiece)
	}
	dest := refHex
	if dir != nil {
		dest = refHex.Add(*dir)
	}
	return hive.Turn{Kind: kind, Piece: p, Hex: dest}, nil
}

// FormatGameString renders gs as a full GameString: the game type, status,
// turn counter, and every move replayed from an empty board (since the same
// destination hex can be described differently depending on when it is
// described).
func FormatGameString(gs *hive.GameState) string {
	header := fmt.Sprintf("%s;%s;%s[%d]", gs.GameType, gs.Status, gs.CurrentPlayer, len(gs.Turns)/2+1)
	if len(gs.Turns) == 0 {
		return header
	}
	// The mover alternates every ply, so the turn-count parity recovers who
	// opened the game (the first turn may be a Pass, which names no piece).
	firstPlayer := gs.CurrentPlayer
	if len(gs.Turns)%2 == 1 {
		firstPlayer = firstPlayer.Other()
	}
	replay := hive.New(firstPlayer, gs.GameType)
	moves := make([]string, 0, len(gs.Turns))
	for _, t := range gs.Turns {
		moves = append(moves, FormatTurn(t, replay))
		replay.SubmitTurn(t)
	}
	return header + ";" + strings.Join(moves, ";")
}

// ParseGameString parses a full GameString, replaying every recorded move.
func ParseGameString(s string) (*hive.GameState, error) {
	parts := strings.Split(s, ";")
	if len(parts) < 3 {
		return nil, errors.Errorf("invalid game string %q", s)
	}
	gt, err := hive.ParseGameType(parts[0])
	if err != nil {
		return nil, err
	}
	status, err := hive.ParseStatus(parts[1])
	if err != nil {
		return nil, err
	}
	toMove, _, err := parseTurnMarker(parts[2])
	if err != nil {
		return nil, err
	}

	moveStrs := parts[3:]
	firstPlayer := toMove
	if len(moveStrs) > 0 {
		// The player to move alternates every ply; walk the parity back to
		// whoever opened the game.
		if len(moveStrs)%2 == 1 {
			firstPlayer = toMove.Other()
		}
	}

	gs := hive.New(firstPlayer, gt)
	for _, ms := range moveStrs {
		t, err := ParseTurn(ms, gs)
		if err != nil {
			return nil, errors.Wrapf(err, "replaying move %q", ms)
		}
		if err := gs.SubmitTurn(t); err != nil {
			return nil, errors.Wrapf(err, "replaying move %q", ms)
		}
	}
	if gs.Status != status {
		return nil, errors.Errorf("game string claims status %s but replaying its moves yields %s", status, gs.Status)
	}
	return gs, nil
}

// parseTurnMarker parses "White[2]" or "Black[1]".
func parseTurnMarker(s string) (piece.Color, int, error) {
	open := strings.IndexByte(s, '[')
	if open < 0 || !strings.HasSuffix(s, "]") {
		return 0, 0, errors.Errorf("invalid turn marker %q", s)
	}
	colorStr := s[:open]
	var color piece.Color
	switch colorStr {
	case "White":
		color = piece.White
	case "Black":
		color = piece.Black
	default:
		return 0, 0, errors.Errorf("invalid color in turn marker %q", s)
	}
	n, err := strconv.Atoi(s[open+1 : len(s)-1])
	if err != nil {
		return 0, 0, errors.Wrapf(err, "invalid turn count in turn marker %q", s)
	}
	return color, n, nil
}
