// Package engine implements the Universal Hive Protocol command dispatcher:
// a single current game plus per-color AI configuration, driven one
// line-oriented command at a time. Reading the commands from a stream and
// writing the responses back out is a host concern left to whatever embeds
// this package (a CLI loop, a matchmaking service, a test harness).
package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/hiveproto/hive/internal/ai"
	"github.com/hiveproto/hive/internal/hive"
	"github.com/hiveproto/hive/internal/notation"
	"github.com/hiveproto/hive/internal/piece"
	"github.com/hiveproto/hive/internal/searchers/mcts"
)

const (
	engineName    = "HiveProto"
	engineVersion = "v1.0"

	// supportedExpansions is static: the rules engine always implements the
	// full Pillbug/Ladybug/Mosquito ruleset, independent of which expansion
	// pieces any particular game was started with.
	supportedExpansions = "Mosquito;Ladybug;Pillbug"
)

// ErrNoGame is returned by any command but newgame when no game has been
// created yet.
var ErrNoGame = errors.New("game not created yet")

// SearchKind selects which of the two search algorithms answers bestmove.
type SearchKind uint8

const (
	MonteCarlo SearchKind = iota
	Negamax
)

// AIConfig configures whichever search bestmove dispatches to for one
// color.
type AIConfig struct {
	Kind         SearchKind
	NegamaxDepth int
	MCTS         mcts.Options
}

// DefaultAIConfig is Monte Carlo tree search with its standard parameters.
var DefaultAIConfig = AIConfig{Kind: MonteCarlo, NegamaxDepth: 2, MCTS: mcts.DefaultOptions}

// Options holds everything an Engine needs besides the game in progress.
type Options struct {
	// FirstPlayer is who newgame (with no game string) hands the opening
	// move to. Follows the Mzinga.Viewer convention of defaulting to White.
	FirstPlayer piece.Color
	WhiteAI     AIConfig
	BlackAI     AIConfig
}

// DefaultOptions is White-first with Monte Carlo tree search for both
// sides.
var DefaultOptions = Options{FirstPlayer: piece.White, WhiteAI: DefaultAIConfig, BlackAI: DefaultAIConfig}

// Engine dispatches UHP commands against a single game in progress.
type Engine struct {
	Game    *hive.GameState
	Options Options
}

// New returns an Engine with no game yet created.
func New() *Engine {
	return &Engine{Options: DefaultOptions}
}

// HandleCommand processes one line of input and returns the full response,
// including its trailing "ok" line. Every command produces a response;
// nothing is ever swallowed silently.
func (e *Engine) HandleCommand(input string) string {
	input = strings.TrimSpace(input)
	switch {
	case input == "newgame" || strings.HasPrefix(input, "newgame "):
		text, err := e.handleNewGame(strings.TrimSpace(strings.TrimPrefix(input, "newgame")))
		return wrap(text, err)
	case strings.HasPrefix(input, "play "):
		text, err := e.handlePlay(strings.TrimPrefix(input, "play "))
		return wrap(text, err)
	case input == "pass":
		text, err := e.handlePlay("pass")
		return wrap(text, err)
	case input == "validmoves":
		text, err := e.handleValidMoves()
		return wrap(text, err)
	case input == "undo":
		text, err := e.handleUndo(1)
		return wrap(text, err)
	case strings.HasPrefix(input, "undo "):
		n, convErr := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(input, "undo ")))
		if convErr != nil {
			return wrap("", errors.Errorf("invalid undo count in %q", input))
		}
		text, err := e.handleUndo(n)
		return wrap(text, err)
	case input == "options":
		return wrap("", nil)
	case input == "info":
		return wrap(e.handleInfo(), nil)
	case input == "bestmove" || strings.HasPrefix(input, "bestmove "):
		text, err := e.handleBestMove()
		return wrap(text, err)
	default:
		return wrap("", errors.Errorf("unrecognized command %q", input))
	}
}

// wrap renders a command's result as UHP expects: the text (if any)
// followed by a final "ok" line, or "err <detail>" followed by "ok" if the
// command failed.
func wrap(text string, err error) string {
	if err != nil {
		return fmt.Sprintf("err %s\nok", err)
	}
	if text == "" {
		return "ok"
	}
	return text + "\nok"
}

func (e *Engine) handleNewGame(arg string) (string, error) {
	switch {
	case arg == "":
		e.Game = hive.New(e.Options.FirstPlayer, hive.Base)
	default:
		if gt, gtErr := hive.ParseGameType(arg); gtErr == nil {
			e.Game = hive.New(e.Options.FirstPlayer, gt)
		} else if gs, gsErr := notation.ParseGameString(arg); gsErr == nil {
			e.Game = gs
		} else {
			return "", errors.Errorf("unrecognized newgame argument %q", arg)
		}
	}
	return notation.FormatGameString(e.Game), nil
}

func (e *Engine) handlePlay(moveStr string) (string, error) {
	if e.Game == nil {
		return "", ErrNoGame
	}
	turn, err := notation.ParseTurn(moveStr, e.Game)
	if err != nil {
		return "", err
	}
	if err := e.Game.SubmitTurn(turn); err != nil {
		return "", err
	}
	return notation.FormatGameString(e.Game), nil
}

func (e *Engine) handleValidMoves() (string, error) {
	if e.Game == nil {
		return "", ErrNoGame
	}
	moves := e.Game.ValidMoves()
	tokens := make([]string, len(moves))
	for i, t := range moves {
		tokens[i] = notation.FormatTurn(t, e.Game)
	}
	return strings.Join(tokens, ";"), nil
}

// handleUndo truncates the last n turns and replays everything before them
// from scratch, since GameState keeps no snapshots of intermediate
// positions.
func (e *Engine) handleUndo(n int) (string, error) {
	if e.Game == nil {
		return "", ErrNoGame
	}
	if n < 0 || n > len(e.Game.Turns) {
		return "", errors.Errorf("cannot undo %d turns, only %d have been played", n, len(e.Game.Turns))
	}
	kept := e.Game.Turns[:len(e.Game.Turns)-n]
	replay := hive.New(firstPlayerOf(e.Game), e.Game.GameType)
	for _, t := range kept {
		if err := replay.SubmitTurn(t); err != nil {
			return "", errors.Wrapf(err, "replaying %s while undoing", t)
		}
	}
	e.Game = replay
	return notation.FormatGameString(e.Game), nil
}

// firstPlayerOf derives who opened gs from its current mover and how many
// turns have been accepted -- the color to move alternates every ply, so
// the parity of the turn count pins down who started.
func firstPlayerOf(gs *hive.GameState) piece.Color {
	if len(gs.Turns)%2 == 0 {
		return gs.CurrentPlayer
	}
	return gs.CurrentPlayer.Other()
}

func (e *Engine) handleInfo() string {
	return fmt.Sprintf("id %s %s\n%s", engineName, engineVersion, supportedExpansions)
}

func (e *Engine) handleBestMove() (string, error) {
	if e.Game == nil {
		return "", ErrNoGame
	}
	if e.Game.Status.IsTerminal() {
		return "", hive.ErrGameOver
	}
	cfg := e.Options.WhiteAI
	if e.Game.CurrentPlayer == piece.Black {
		cfg = e.Options.BlackAI
	}
	var turn hive.Turn
	switch cfg.Kind {
	case Negamax:
		turn, _, _ = ai.BestMove(e.Game, cfg.NegamaxDepth)
	default:
		turn = ai.BestMove2(e.Game, e.Game.CurrentPlayer, cfg.MCTS)
	}
	return notation.FormatTurn(turn, e.Game), nil
}
