package opt

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nelhage/isolation/ai"
	"github.com/nelhage/isolation/cli"
)

type Minimax struct {
	Seed            int64
	Debug           int
	Depth           int
	Reference       bool
	StopWhenDecided bool
	Weights         string
}

func (o *Minimax) AddFlags(flags *flag.FlagSet) {
	flags.IntVar(&o.Debug, "debug", 1, "debug level")
	flags.Int64Var(&o.Seed, "seed", 0, "specify a seed")
	flags.IntVar(&o.Depth, "depth", 0, "minimax depth")
	flags.BoolVar(&o.Reference, "reference-pruning", false, "prune the way the reference agent does")
	flags.BoolVar(&o.StopWhenDecided, "stop-decided", false, "stop deepening once a win or loss is proven")
	flags.StringVar(&o.Weights, "weights", "", "JSON-encoded evaluation weights")
}

// ParseWeights decodes -weights, falling back to ai.DefaultWeights.
func (o *Minimax) ParseWeights() (*ai.Weights, error) {
	w := ai.DefaultWeights
	if o.Weights != "" {
		if err := json.Unmarshal([]byte(o.Weights), &w); err != nil {
			return nil, fmt.Errorf("parse weights: %w", err)
		}
	}
	return &w, nil
}

func (o *Minimax) BuildConfig() (ai.MinimaxConfig, error) {
	w, err := o.ParseWeights()
	if err != nil {
		return ai.MinimaxConfig{}, err
	}
	cfg := ai.MinimaxConfig{
		Depth:           o.Depth,
		Seed:            o.Seed,
		Debug:           o.Debug,
		StopWhenDecided: o.StopWhenDecided,
		Evaluate:        ai.MakeEvaluator(w),
	}
	if o.Reference {
		cfg.Pruning = ai.Reference
	}
	return cfg, nil
}

// ParsePlayer builds an AI from a player spec:
//
//	random[:SEED]       defaults to base.Seed
//	minimax[:DEPTH]
//	reference[:DEPTH]   minimax with reference pruning
//
// The spec's DEPTH overrides base.Depth.
func ParsePlayer(spec string, base ai.MinimaxConfig) (ai.Player, error) {
	name, arg := spec, ""
	if i := strings.IndexByte(spec, ':'); i >= 0 {
		name, arg = spec[:i], spec[i+1:]
	}
	var n int64
	if arg != "" {
		var err error
		if n, err = strconv.ParseInt(arg, 10, 64); err != nil {
			return nil, fmt.Errorf("player %q: %w", spec, err)
		}
	}
	switch name {
	case "random", "rand":
		if arg == "" {
			n = base.Seed
		}
		return ai.NewRandom(n), nil
	case "minimax", "reference":
		cfg := base
		if arg != "" {
			cfg.Depth = int(n)
		}
		if name == "reference" {
			cfg.Pruning = ai.Reference
		}
		return ai.NewMinimax(cfg), nil
	}
	return nil, fmt.Errorf("unparseable player: %q", spec)
}

// BuildPlayer is ParsePlayer for the command line: "human" reads
// moves from stdin, and AIs get limit per move.
func BuildPlayer(in *bufio.Reader, spec string, base ai.MinimaxConfig, limit time.Duration) (cli.Player, error) {
	if spec == "human" {
		return cli.NewCLIPlayer(os.Stdout, in), nil
	}
	p, err := ParsePlayer(spec, base)
	if err != nil {
		return nil, err
	}
	return &cli.TimedPlayer{Limit: limit, AI: p}, nil
}
