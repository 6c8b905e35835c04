// internal/cli/cli.go
// Package cli is the primerscore command tree.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"golang.org/x/term"

	"primerscore/core/fold"
	"primerscore/core/memo"
	"primerscore/core/oligo"
	"primerscore/core/params"
	"primerscore/core/score"
	"primerscore/core/thermo"
	"primerscore/internal/config"
	"primerscore/internal/logging"
	"primerscore/internal/report"
)

// Set by the linker at release time.
var version = "dev"

// Exit codes.
const (
	ExitOK     = 0
	ExitError  = 1 // evaluation failed
	ExitUsage  = 2 // bad flags, arguments, sequences or configuration
	ExitOutput = 3 // writing results failed

	ExitInterrupted = 130
)

type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

type outputError struct{ error }

func (e outputError) Unwrap() error { return e.error }

// app is the per-invocation state shared by every command.
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	thermo *thermo.Context
	fold   *fold.Engine
	out    io.Writer
	stdout io.Writer // unbuffered, for terminal detection
	errw   io.Writer
	reader *sdkmetric.ManualReader // non-nil with --cache-stats
	closer io.Closer
}

// Run executes argv and returns the process exit code.
func Run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	a := &app{v: viper.New(), out: outw, stdout: stdout, errw: stderr}
	root := a.rootCmd()
	root.SetArgs(argv)
	root.SetOut(outw)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if a.closer != nil {
		_ = a.closer.Close()
	}
	if ferr := outw.Flush(); err == nil && ferr != nil {
		err = outputError{ferr}
	}
	code := ExitCode(err)
	if code != ExitOK {
		_, _ = fmt.Fprintln(stderr, "primerscore:", err)
	}
	return code
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	var ue usageError
	var oe outputError
	switch {
	case err == nil, report.IsBrokenPipe(err):
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.As(err, &oe):
		return ExitOutput
	case errors.As(err, &ue),
		errors.Is(err, oligo.ErrInvalidSequence),
		errors.Is(err, params.ErrInvalidConfiguration):
		return ExitUsage
	default:
		return ExitError
	}
}

// argsRange wraps cobra's arity checks so that mistakes are usage errors.
// A negative max means no upper bound.
func argsRange(min, max int) cobra.PositionalArgs {
	check := cobra.RangeArgs(min, max)
	if max < 0 {
		check = cobra.MinimumNArgs(min)
	}
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "primerscore",
		Short: "Thermodynamic evaluation and scoring of PCR primers.",
		Long: `primerscore computes nearest-neighbor melting temperatures, predicts hairpins
and primer dimers, and fuses them into a single quality score.`,
		Version:            version,
		SilenceErrors:      true,
		SilenceUsage:       true,
		DisableSuggestions: true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })

	pf := root.PersistentFlags()
	pf.String("config", "", "Path to config file (default .primerscore.yaml in . or $HOME)")
	pf.String("params", config.DefaultParams, "Parameter set: legacy or revised")
	pf.String("oligo", config.DefaultOligo, "Total strand concentration (e.g. 250nM)")
	pf.String("na", config.DefaultNa, "Monovalent cation concentration (e.g. 50mM)")
	pf.String("mg", config.DefaultMg, "Mg2+ concentration (used by the revised set)")
	pf.String("dntp", config.DefaultDNTP, "dNTP concentration (chelates Mg2+)")
	pf.Float64("temp", thermo.DefaultTempC, "Temperature for ΔG and folding, °C")
	pf.String("preset", score.DefaultPreset, "Weight preset for scoring")
	pf.String("presets-file", "", "YAML file with additional weight presets")
	pf.StringP("output", "o", string(config.DefaultOutput), "Output format: table or json or jsonl")
	pf.String("color", config.DefaultColor, "Colored labels: auto or yes or no")
	pf.Int("workers", config.DefaultWorkers, "Concurrent workers (0 = number of CPUs)")
	pf.Int("cache-size", 0, "Bound each memo cache to this many entries (0 = unbounded)")
	pf.Bool("cache-stats", false, "Log cache hit/miss counts on exit")
	pf.String("log-level", "", "Log level: debug or info or warn or error")
	pf.String("log-file", "", "Append logs to this file instead of stderr")
	pf.BoolP("quiet", "q", false, "Suppress warnings")
	if err := a.v.BindPFlags(pf); err != nil {
		panic(err)
	}

	root.AddCommand(
		a.tmCmd(), a.foldCmd(), a.dimerCmd(), a.scoreCmd(), a.batchCmd(),
		a.mutagenCmd(), a.gquadCmd(), a.codonCmd(), a.offtargetCmd(),
		a.presetsCmd(), a.paramsCmd(),
	)
	return root
}

// setup resolves configuration and builds the evaluation context.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	config.Init(a.v, configFile)
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	closer, err := logging.Configure(cfg.LogLevel, cfg.LogFile, a.errw)
	if err != nil {
		return usageError{err}
	}
	a.closer = closer
	if cfg.File != "" {
		logging.Logger.Debug("config", "file", cfg.File)
	}

	switch cfg.Color {
	case config.ColorAlways:
		color.NoColor = false
	case config.ColorNever:
		color.NoColor = true
	default:
		if !isTerminal(a.stdout) {
			color.NoColor = true
		}
	}

	opts := []thermo.Option{thermo.WithParameters(cfg.Params)}
	if cfg.CacheSize > 0 {
		opts = append(opts, thermo.WithCaches(memo.NewLRU(cfg.CacheSize), memo.NewLRU(cfg.CacheSize)))
	}
	if cfg.CacheStats {
		a.reader = sdkmetric.NewManualReader()
		mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(a.reader))
		m, err := memo.NewMetrics(mp.Meter("primerscore"))
		if err != nil {
			return err
		}
		opts = append(opts, thermo.WithMetrics(m))
	}
	a.thermo = thermo.NewContext(opts...)
	a.fold = fold.New(a.thermo)
	logging.Logger.Debug("parameters", "set", cfg.Params.ID(), "cache_size", cfg.CacheSize)
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

func (a *app) teardown(cmd *cobra.Command, _ []string) error {
	if a.reader == nil {
		return nil
	}
	stats, err := collectCacheStats(cmd.Context(), a.reader)
	if err != nil {
		return err
	}
	for _, s := range stats {
		logging.Logger.Info("cache", "name", s.Name, "hits", s.Hits, "misses", s.Misses, "clears", s.Clears)
	}
	return nil
}

// emitList writes items as a table, an indented JSON array or JSON lines.
func emitList[T any](a *app, items []T, table func(io.Writer, []T) error) error {
	var err error
	switch a.cfg.Output {
	case config.FormatJSON:
		err = report.EncodePretty(a.out, items)
	case config.FormatJSONL:
		in, done := report.StartJSONL[T](a.out, len(items))
		for _, it := range items {
			in <- it
		}
		close(in)
		err = <-done
	default:
		err = table(a.out, items)
	}
	if err != nil {
		return outputError{err}
	}
	return nil
}

// emitOne writes a single report.
func emitOne[T any](a *app, v T, table func(io.Writer, T) error) error {
	var err error
	switch a.cfg.Output {
	case config.FormatJSON:
		err = report.EncodePretty(a.out, v)
	case config.FormatJSONL:
		err = json.NewEncoder(a.out).Encode(v)
	default:
		err = table(a.out, v)
	}
	if err != nil {
		return outputError{err}
	}
	return nil
}
