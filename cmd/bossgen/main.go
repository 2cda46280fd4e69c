// Package main provides the bossgen CLI for generating boss encounters.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/cory-johannsen/bossgen/internal/config"
	"github.com/cory-johannsen/bossgen/internal/frontend/console"
	"github.com/cory-johannsen/bossgen/internal/frontend/export"
	"github.com/cory-johannsen/bossgen/internal/game/boss"
	"github.com/cory-johannsen/bossgen/internal/game/dice"
	"github.com/cory-johannsen/bossgen/internal/observability"
)

const usage = `usage:
  bossgen [flags] generate-boss <partyAvgLevel> <playerCount> [difficulty]
  bossgen [flags] generate-boss-group <partyAvgLevel> <playerCount> <groupSize> [difficulty]

difficulties: noob, easy, normal, hard, hardcore (default normal)

flags:
`

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// cliOptions holds flag values; a flag overrides configuration only when set.
type cliOptions struct {
	configPath string
	seed       int64
	format     string
	color      bool
	set        map[string]bool
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bossgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	var opts cliOptions
	fs.StringVar(&opts.configPath, "config", "", "path to configuration file; empty uses defaults")
	fs.Int64Var(&opts.seed, "seed", 0, "random seed for reproducible stats; 0 picks one")
	fs.StringVar(&opts.format, "format", "", "output format: text, json or yaml")
	fs.BoolVar(&opts.color, "color", false, "colorize text output")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	opts.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	cfg, err := config.Read(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "loading config: %v\n", err)
		return exitFailure
	}
	applyFlags(&cfg, opts)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	logger, err := observability.NewLogger("bossgen", cfg.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "initializing logger: %v\n", err)
		return exitFailure
	}
	defer func() { _ = logger.Sync() }()

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return exitUsage
	}

	factory := boss.NewFactory(randomSource(cfg.Generator.Seed, logger), logger,
		boss.WithInputValidation(cfg.Generator.ValidateInputs))

	out := &output{cfg: cfg.Output, stdout: stdout, stderr: stderr}

	switch rest[0] {
	case "generate-boss":
		req, err := parseBossArgs(rest[1:])
		if err != nil {
			fmt.Fprintf(stderr, "%v\n\n", err)
			fs.Usage()
			return exitUsage
		}
		enc, err := factory.CreateBoss(req)
		if err != nil {
			return out.fail(err)
		}
		return out.encounter(enc)
	case "generate-boss-group":
		req, err := parseGroupArgs(rest[1:])
		if err != nil {
			fmt.Fprintf(stderr, "%v\n\n", err)
			fs.Usage()
			return exitUsage
		}
		g, err := factory.CreateGroup(req)
		if err != nil {
			return out.fail(err)
		}
		return out.group(g)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", rest[0])
		fs.Usage()
		return exitUsage
	}
}

// randomSource returns a reproducible source for a fixed seed and a
// crypto/rand source otherwise.
func randomSource(seed int64, logger *zap.Logger) dice.Source {
	if seed == 0 {
		logger.Debug("using crypto random source")
		return dice.NewCryptoSource()
	}
	logger.Debug("random source seeded", zap.Int64("seed", seed))
	return dice.NewSeededSource(seed)
}

func applyFlags(cfg *config.Config, opts cliOptions) {
	if opts.set["seed"] {
		cfg.Generator.Seed = opts.seed
	}
	if opts.set["format"] {
		cfg.Output.Format = opts.format
	}
	if opts.set["color"] {
		cfg.Output.Color = opts.color
	}
}

func parseBossArgs(args []string) (boss.Request, error) {
	if len(args) < 2 || len(args) > 3 {
		return boss.Request{}, errors.New("generate-boss takes <partyAvgLevel> <playerCount> [difficulty]")
	}
	level, err := parseInt(args[0], "partyAvgLevel")
	if err != nil {
		return boss.Request{}, err
	}
	players, err := parseInt(args[1], "playerCount")
	if err != nil {
		return boss.Request{}, err
	}
	req := boss.Request{PartyLevel: level, Players: players}
	if len(args) == 3 {
		req.Difficulty = boss.Difficulty(args[2])
	}
	return req, nil
}

func parseGroupArgs(args []string) (boss.GroupRequest, error) {
	if len(args) < 3 || len(args) > 4 {
		return boss.GroupRequest{}, errors.New("generate-boss-group takes <partyAvgLevel> <playerCount> <groupSize> [difficulty]")
	}
	req, err := parseBossArgs(append([]string{args[0], args[1]}, args[3:]...))
	if err != nil {
		return boss.GroupRequest{}, err
	}
	size, err := parseInt(args[2], "groupSize")
	if err != nil {
		return boss.GroupRequest{}, err
	}
	return boss.GroupRequest{Request: req, Size: size}, nil
}

func parseInt(s, name string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, s)
	}
	return v, nil
}

// output writes results in the configured format.
type output struct {
	cfg    config.OutputConfig
	stdout io.Writer
	stderr io.Writer
}

func (o *output) renderer() (*console.Renderer, error) {
	return console.NewRenderer(o.cfg.Color, o.cfg.Locale)
}

func (o *output) encounter(enc boss.Encounter) int {
	if o.cfg.Format != "text" {
		return o.encode(enc)
	}
	r, err := o.renderer()
	if err != nil {
		fmt.Fprintln(o.stderr, err)
		return exitFailure
	}
	fmt.Fprint(o.stdout, r.RenderEncounter(enc))
	return exitOK
}

func (o *output) group(g boss.Group) int {
	if o.cfg.Format != "text" {
		return o.encode(g)
	}
	r, err := o.renderer()
	if err != nil {
		fmt.Fprintln(o.stderr, err)
		return exitFailure
	}
	fmt.Fprint(o.stdout, r.RenderGroup(g))
	return exitOK
}

func (o *output) encode(v any) int {
	if err := export.Encode(o.stdout, o.cfg.Format, v); err != nil {
		fmt.Fprintln(o.stderr, err)
		return exitFailure
	}
	return exitOK
}

// fail reports a generation error. Text output prints the hint on stdout;
// machine formats keep stdout clean and report uncolored on stderr.
func (o *output) fail(err error) int {
	code := exitFailure
	if errors.Is(err, boss.ErrInvalidRequest) {
		code = exitUsage
	}
	r, rerr := o.renderer()
	if rerr != nil {
		fmt.Fprintln(o.stderr, err)
		return code
	}
	if o.cfg.Format != "text" {
		fmt.Fprint(o.stderr, console.StripANSI(r.RenderError(err)))
		return code
	}
	fmt.Fprint(o.stdout, r.RenderError(err))
	return code
}
