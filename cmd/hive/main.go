// Command hive runs the Universal Hive Protocol engine as a line-oriented
// filter over stdin/stdout: every line in is one UHP command, every
// response ends with a line reading exactly "ok".
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"

	"github.com/hiveproto/hive/internal/engine"
	"github.com/hiveproto/hive/internal/parameters"
	"github.com/hiveproto/hive/internal/piece"
	"github.com/hiveproto/hive/internal/profilers"
)

var (
	flagFirst   = flag.String("first", "white", `Who moves first on "newgame" with no explicit game string: "white" or "black".`)
	flagWhiteAI = flag.String("white", "mcts", `White's bestmove search, e.g. "mcts", "mcts,iterations=500,exploration=1.5" or "negamax,depth=3".`)
	flagBlackAI = flag.String("black", "mcts", `Black's bestmove search, same syntax as --white.`)
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	profilers.Setup(ctx)
	defer profilers.OnQuit()

	eng := engine.New()
	eng.Options.FirstPlayer = parseColor(*flagFirst)
	eng.Options.WhiteAI = parseAIConfig(*flagWhiteAI)
	eng.Options.BlackAI = parseAIConfig(*flagBlackAI)

	fmt.Println(eng.HandleCommand("info"))

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fmt.Println(eng.HandleCommand(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		klog.Errorf("reading stdin: %v", err)
	}
}

func parseColor(s string) piece.Color {
	switch strings.ToLower(s) {
	case "black":
		return piece.Black
	default:
		return piece.White
	}
}

// parseAIConfig reads a comma-separated config string --
// "mcts,iterations=500,exploration=1.5" or "negamax,depth=3" -- into an
// engine.AIConfig, starting from the engine's defaults for whichever
// fields are left unspecified.
func parseAIConfig(config string) engine.AIConfig {
	params := parameters.NewFromConfigString(config)
	cfg := engine.DefaultAIConfig
	if _, ok := params["negamax"]; ok {
		cfg.Kind = engine.Negamax
		delete(params, "negamax")
	} else if _, ok := params["mcts"]; ok {
		cfg.Kind = engine.MonteCarlo
		delete(params, "mcts")
	}
	cfg.NegamaxDepth = must.M1(parameters.PopParamOr(params, "depth", cfg.NegamaxDepth))
	cfg.MCTS.Iterations = must.M1(parameters.PopParamOr(params, "iterations", cfg.MCTS.Iterations))
	cfg.MCTS.MaxDepth = must.M1(parameters.PopParamOr(params, "maxdepth", cfg.MCTS.MaxDepth))
	exploration := must.M1(parameters.PopParamOr(params, "exploration", float32(cfg.MCTS.ExplorationCoefficient)))
	cfg.MCTS.ExplorationCoefficient = float64(exploration)
	return cfg
}
