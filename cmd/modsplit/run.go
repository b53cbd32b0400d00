// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"os"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/modsplit/internal/contract"
	"github.com/kraklabs/modsplit/internal/errors"
	"github.com/kraklabs/modsplit/internal/output"
	"github.com/kraklabs/modsplit/internal/ui"
	"github.com/kraklabs/modsplit/pkg/split"
)

// GlobalFlags holds the parsed command-line flags.
type GlobalFlags struct {
	JSON        bool
	YAML        bool
	Output      string
	Verbose     bool
	Quiet       bool
	NoColor     bool
	Debug       bool
	ConfigPath  string
	BatchPath   string
	MetricsFile string
	MaxDigits   int
	Completion  string
	Version     bool
}

// newFlagSet defines all flags on a fresh FlagSet. Errors are returned to
// the caller instead of exiting so that run controls exit codes.
func newFlagSet(prog string, stderr io.Writer) (*flag.FlagSet, *GlobalFlags) {
	g := &GlobalFlags{}
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = false

	fs.BoolVar(&g.JSON, "json", false, "Output as JSON (shorthand for --output json)")
	fs.BoolVar(&g.YAML, "yaml", false, "Output as YAML (shorthand for --output yaml)")
	fs.StringVarP(&g.Output, "output", "o", "", "Output format: text, json or yaml (default text)")
	fs.BoolVarP(&g.Verbose, "verbose", "v", false, "Explain the arithmetic on stderr")
	fs.BoolVarP(&g.Quiet, "quiet", "q", false, "Suppress progress and explanations")
	fs.BoolVar(&g.NoColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&g.Debug, "debug", false, "Enable debug logging on stderr")
	fs.StringVar(&g.ConfigPath, "config", "", "Path to config file (default: $MODSPLIT_CONFIG or ./.modsplit.yaml)")
	fs.StringVar(&g.BatchPath, "batch", "", "Split one \"N M\" pair per line of `FILE` (- for stdin)")
	fs.StringVar(&g.MetricsFile, "metrics-file", "", "Write Prometheus metrics to `FILE` on exit")
	fs.IntVar(&g.MaxDigits, "max-digits", 0, "Maximum operand length (default $MODSPLIT_MAX_DIGITS or 4096)")
	fs.StringVar(&g.Completion, "completion", "", "Print shell completion script (bash|zsh|fish) and exit")
	fs.BoolVar(&g.Version, "version", false, "Show version and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `modsplit - split the remainder of N mod M into two halves

Computes s = N mod M with floored modulus (the remainder takes the sign
of M), then prints (floor(s/2), s - floor(s/2)).

Usage:
  %[1]s [options] N M
  %[1]s [options] --batch FILE

Options:
`, prog)
		fs.PrintDefaults()
		fmt.Fprintf(stderr, `
Examples:
  %[1]s 10 3                     (0, 1)
  %[1]s -7 4                     (0, 1)
  %[1]s --json 7 4               {"n": 7, "m": 4, "remainder": 3, ...}
  %[1]s --batch pairs.txt        One result per input line
  seq 1 5 | sed 's/$/ 3/' | %[1]s --batch -

Exit Codes:
  0   success
  1   wrong number of operands or bad flags
  2   invalid configuration file
  3   operand is not a base-10 integer
  4   M is zero
  10  internal error

Environment Variables:
  MODSPLIT_CONFIG      Config file path
  MODSPLIT_MAX_DIGITS  Maximum operand length (default %[2]d)
  NO_COLOR             Disable colored output
`, prog, contract.DefaultMaxDigits)
	}
	return fs, g
}

// isNegativeNumber reports whether arg is an operand like "-7" rather than a flag.
func isNegativeNumber(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	for _, r := range arg[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// partitionArgs separates flags from operands while keeping operand order.
// Negative integers are operands; everything after "--" is an operand; a
// value following a non-boolean flag stays with its flag.
func partitionArgs(fs *flag.FlagSet, args []string) (flagArgs, operands []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return flagArgs, append(operands, args[i+1:]...)
		case arg == "-" || !strings.HasPrefix(arg, "-") || isNegativeNumber(arg):
			operands = append(operands, arg)
		default:
			flagArgs = append(flagArgs, arg)
			if takesValue(fs, arg) && i+1 < len(args) {
				i++
				flagArgs = append(flagArgs, args[i])
			}
		}
	}
	return flagArgs, operands
}

// takesValue reports whether arg names a flag whose value is the next argument.
func takesValue(fs *flag.FlagSet, arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}
	var f *flag.Flag
	if name, ok := strings.CutPrefix(arg, "--"); ok {
		f = fs.Lookup(name)
	} else if len(arg) >= 2 {
		// In a group like -qo the last shorthand may take the next argument.
		f = fs.ShorthandLookup(arg[len(arg)-1:])
	}
	return f != nil && f.NoOptDefVal == ""
}

// programName returns argv[0] as invoked, falling back to "modsplit".
func programName(args []string) string {
	if len(args) == 0 || args[0] == "" {
		return "modsplit"
	}
	return args[0]
}

// printUsageLine writes the one-line usage message to stdout.
func printUsageLine(stdout io.Writer, prog string) {
	fmt.Fprintf(stdout, "Usage: %s N M\n", prog)
}

// settings is the merged view of flags and config file.
type settings struct {
	format      output.Format
	noColor     bool
	maxDigits   int
	metricsFile string
}

// resolveSettings merges flags over the config file.
func resolveSettings(fs *flag.FlagSet, g *GlobalFlags, cfg *Config) (settings, error) {
	s := settings{
		noColor:     g.NoColor || cfg.NoColor,
		maxDigits:   cfg.EffectiveMaxDigits(),
		metricsFile: cfg.MetricsFile,
	}
	if g.MetricsFile != "" {
		s.metricsFile = g.MetricsFile
	}
	if fs.Changed("max-digits") {
		if g.MaxDigits < 0 {
			return s, errors.NewUsageError("Invalid --max-digits", fmt.Sprintf("%d is negative", g.MaxDigits), "Use 0 to disable the limit or a positive length")
		}
		s.maxDigits = g.MaxDigits
	}

	if g.JSON && g.YAML {
		return s, errors.NewUsageError("Conflicting output flags", "--json and --yaml were both given", "Pick one output format")
	}
	name := cfg.Output
	switch {
	case g.JSON:
		name = string(output.FormatJSON)
	case g.YAML:
		name = string(output.FormatYAML)
	case g.Output != "":
		name = g.Output
	}
	format, err := output.ParseFormat(name)
	if err != nil {
		return s, errors.NewUsageError("Invalid output format", err.Error(), "Use --output text, json or yaml")
	}
	s.format = format
	return s, nil
}

// newLogger returns a text logger on w. Only warnings are shown unless
// debug is set, so stderr stays quiet on success.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// invocation carries one command line from parsing to exit.
type invocation struct {
	fs       *flag.FlagSet
	globals  *GlobalFlags
	settings settings
	prog     string
	mode     string
	operands []string
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	logger   *slog.Logger
	metrics  *cliMetrics
}

// run executes one invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	start := time.Now()
	prog := programName(args)
	fs, g := newFlagSet(prog, stderr)

	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}
	flagArgs, operands := partitionArgs(fs, rest)
	parseErr := fs.Parse(flagArgs)

	inv := &invocation{
		fs:       fs,
		globals:  g,
		settings: settings{format: output.FormatText, noColor: g.NoColor, metricsFile: g.MetricsFile},
		prog:     prog,
		mode:     "single",
		operands: append(operands, fs.Args()...),
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
		logger:   newLogger(stderr, g.Debug),
		metrics:  newCLIMetrics(),
	}
	if fs.Changed("batch") {
		inv.mode = "batch"
	}
	ui.InitColors(g.NoColor, stderr)

	if parseErr != nil {
		if stderrors.Is(parseErr, flag.ErrHelp) {
			return errors.ExitSuccess
		}
		fmt.Fprintf(stderr, "Error: %v\n", parseErr)
		printUsageLine(stdout, prog)
		return inv.finish(errors.ExitUsage, start)
	}

	if g.Version {
		fmt.Fprintf(stdout, "modsplit version %s\n", version)
		fmt.Fprintf(stdout, "commit: %s\n", commit)
		fmt.Fprintf(stdout, "built: %s\n", date)
		return errors.ExitSuccess
	}
	if g.Completion != "" {
		return runCompletion(g.Completion, stdout, stderr)
	}

	return inv.finish(inv.execute(ctx), start)
}

// execute validates the command line, loads settings and dispatches on mode.
func (inv *invocation) execute(ctx context.Context) int {
	g := inv.globals

	// The operand count is settled before any config file is read: a broken
	// ./.modsplit.yaml must not replace the usage line.
	if !inv.checkOperands() {
		printUsageLine(inv.stdout, inv.prog)
		return errors.ExitUsage
	}

	cfg, cfgPath, err := LoadConfig(g.ConfigPath)
	if err != nil {
		return errors.Report(inv.stderr, err, g.JSON, g.NoColor)
	}
	if cfgPath != "" {
		inv.logger.Debug("config.load", "path", cfgPath)
	}

	s, err := resolveSettings(inv.fs, g, cfg)
	inv.settings.metricsFile = s.metricsFile
	if err != nil {
		code := errors.Report(inv.stderr, err, g.JSON, g.NoColor)
		printUsageLine(inv.stdout, inv.prog)
		return code
	}
	inv.settings = s
	ui.InitColors(s.noColor, inv.stderr)
	g.NoColor = s.noColor

	if inv.mode == "batch" {
		return inv.runBatch(ctx)
	}
	return inv.runSingle()
}

// checkOperands reports whether the operand count fits the mode: exactly
// two in single mode, none with --batch.
func (inv *invocation) checkOperands() bool {
	switch {
	case inv.mode == "batch" && len(inv.operands) != 0:
		fmt.Fprintf(inv.stderr, "Error: operands are not accepted with --batch\n")
		return false
	case inv.mode == "single" && len(inv.operands) != 2:
		inv.logger.Debug("usage.operands", "count", len(inv.operands))
		return false
	}
	return true
}

// finish records the outcome and writes the metrics file, if one was asked for.
func (inv *invocation) finish(code int, start time.Time) int {
	inv.metrics.finish(inv.mode, code, time.Since(start))

	path := inv.settings.metricsFile
	if path == "" {
		return code
	}
	if err := inv.metrics.writeFile(path); err != nil {
		ui.Warningf(inv.stderr, "Metrics not written: %v", err)
	} else {
		inv.logger.Debug("metrics.write", "path", path)
	}
	return code
}

// parseOperand validates and parses one command-line operand.
func parseOperand(name, text string, maxDigits int) (*big.Int, error) {
	if res := contract.ValidateOperand(text, maxDigits); !res.OK {
		return nil, errors.NewInputError(
			fmt.Sprintf("Operand %s is too long", name),
			res.Message,
			"Raise the limit with --max-digits or MODSPLIT_MAX_DIGITS",
			nil,
		)
	}
	x, err := split.ParseOperand(text)
	if err != nil {
		return nil, errors.NewInputError(
			fmt.Sprintf("Invalid operand %s", name),
			fmt.Sprintf("%q is not a base-10 integer", text),
			"Pass whole numbers, for example: modsplit 10 3",
			err,
		)
	}
	return x, nil
}

// divisionError wraps split.ErrDivisionByZero for the user.
func divisionError(err error) error {
	return errors.NewDomainError(
		"Cannot compute N mod M",
		err.Error(),
		"Use a non-zero divisor M",
		err,
	)
}

// writeError wraps a failure to emit results.
func writeError(err error) error {
	return errors.NewInternalError("Cannot write result", err.Error(), "Check that stdout is writable", err)
}

// runSingle handles "modsplit N M". The operand count is already checked.
func (inv *invocation) runSingle() int {
	s := inv.settings
	jsonErrors := s.format == output.FormatJSON

	n, err := parseOperand("N", inv.operands[0], s.maxDigits)
	if err != nil {
		return errors.Report(inv.stderr, err, jsonErrors, s.noColor)
	}
	m, err := parseOperand("M", inv.operands[1], s.maxDigits)
	if err != nil {
		return errors.Report(inv.stderr, err, jsonErrors, s.noColor)
	}

	pair, err := split.Split(n, m)
	if err != nil {
		return errors.Report(inv.stderr, divisionError(err), jsonErrors, s.noColor)
	}
	inv.metrics.splits.Inc()
	inv.logger.Debug("split.compute", "n", n, "m", m, "remainder", pair.Remainder, "low", pair.Low, "high", pair.High)

	if inv.globals.Verbose && !inv.globals.Quiet {
		explain(inv.stderr, n, m, pair)
	}

	if err := output.WriteTo(inv.stdout, s.format, Result{N: n, M: m, Pair: pair}); err != nil {
		return errors.Report(inv.stderr, writeError(err), jsonErrors, s.noColor)
	}
	return errors.ExitSuccess
}

// explain prints the steps of one split.
func explain(w io.Writer, n, m *big.Int, p split.Pair) {
	ui.Header(w, fmt.Sprintf("%s mod %s", n, m))
	fmt.Fprintf(w, "%s %s %s\n", ui.Label("Remainder:"), ui.ValueText(p.Remainder), ui.DimText("(floored, sign follows M)"))
	fmt.Fprintf(w, "%s %s %s\n", ui.Label("Low:      "), ui.ValueText(p.Low), ui.DimText("floor(remainder / 2)"))
	fmt.Fprintf(w, "%s %s %s\n", ui.Label("High:     "), ui.ValueText(p.High), ui.DimText("remainder - low"))
}

// openBatch opens the batch input. The returned size is -1 when unknown.
func openBatch(path string, stdin io.Reader) (io.Reader, int64, func(), error) {
	if path == "-" {
		return stdin, -1, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, nil, err
	}
	size := int64(-1)
	if info, err := f.Stat(); err == nil && info.Mode().IsRegular() {
		size = info.Size()
	}
	return f, size, func() { _ = f.Close() }, nil
}

// runBatch handles "modsplit --batch FILE". The operand count is already checked.
func (inv *invocation) runBatch(ctx context.Context) int {
	s := inv.settings
	g := inv.globals
	jsonErrors := s.format == output.FormatJSON
	verbose := g.Verbose && !g.Quiet

	if g.BatchPath == "" {
		return errors.Report(inv.stderr, errors.NewUsageError("Missing batch input", "--batch was given an empty path", "Pass a file name, or - for stdin"), jsonErrors, s.noColor)
	}

	r, size, closeInput, err := openBatch(g.BatchPath, inv.stdin)
	if err != nil {
		return errors.Report(inv.stderr, errors.NewInputError(
			"Cannot open batch input",
			err.Error(),
			"Check the --batch path",
			err,
		), jsonErrors, s.noColor)
	}
	defer closeInput()
	if verbose && g.BatchPath == "-" {
		ui.Infof(inv.stderr, "Reading \"N M\" pairs from stdin")
	}

	bar := newBatchProgress(NewProgressConfig(*g, inv.stderr), g.BatchPath, size)
	b := split.Batch{
		Reader:    r,
		MaxDigits: s.maxDigits,
		OnLine: func(n int) {
			inv.metrics.batchLines.Inc()
			if bar != nil {
				_ = bar.Add(n)
			}
		},
	}

	stream := output.NewStream(inv.stdout, s.format)
	count := 0
	runErr := b.Run(ctx, func(l split.Line) error {
		inv.logger.Debug("batch.line", "line", l.Number, "n", l.N, "m", l.M, "low", l.Pair.Low, "high", l.Pair.High)
		if err := stream.Write(Result{Line: l.Number, N: l.N, M: l.M, Pair: l.Pair}); err != nil {
			return writeError(err)
		}
		count++
		inv.metrics.splits.Inc()
		return nil
	})
	closeErr := stream.Close()
	if bar != nil {
		_ = bar.Finish()
	}

	if runErr != nil {
		return errors.Report(inv.stderr, batchError(runErr), jsonErrors, s.noColor)
	}
	if closeErr != nil {
		return errors.Report(inv.stderr, writeError(closeErr), jsonErrors, s.noColor)
	}

	if verbose {
		ui.Successf(inv.stderr, "Split %d pairs", count)
	}
	return errors.ExitSuccess
}

// batchError maps a batch failure to a UserError with the right exit code.
func batchError(err error) error {
	var ue *errors.UserError
	if stderrors.As(err, &ue) {
		return ue
	}

	var lineErr *split.LineError
	if stderrors.As(err, &lineErr) {
		if stderrors.Is(err, split.ErrDivisionByZero) {
			return errors.NewDomainError(
				fmt.Sprintf("Cannot compute N mod M on line %d", lineErr.Number),
				lineErr.Err.Error(),
				"Use a non-zero divisor M",
				err,
			)
		}
		return errors.NewInputError(
			fmt.Sprintf("Invalid batch input on line %d", lineErr.Number),
			lineErr.Err.Error(),
			`Each line must hold two integers "N M"; blank lines and # comments are skipped`,
			err,
		)
	}

	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewInternalError("Batch interrupted", err.Error(), "Results up to the interruption were written", err)
	}
	return errors.NewInternalError("Cannot read batch input", err.Error(), "Check the --batch input", err)
}
