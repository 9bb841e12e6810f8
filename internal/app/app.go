// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"primertail/internal/appcore"
	"primertail/internal/config"
	"primertail/internal/log"
	"primertail/internal/store"
	"primertail/internal/version"
	"primertail/internal/writers"
)

// Exit codes.
const (
	exitOK     = 0
	exitErr    = 1
	exitUsage  = 2
	exitOutput = 3

	exitInterrupted = 130
)

// usageError is a bad command line, reported with exit code 2.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, a ...any) error { return usageError{fmt.Errorf(format, a...)} }

// env is the state shared by all subcommands of one run.
type env struct {
	stdout *bufio.Writer
	stderr io.Writer

	envFile   string
	logLevel  string
	logFormat string
	dataDir   string

	// ran is set once flags and arguments passed cobra's checks.
	ran      bool
	cfg      config.Config
	settings appcore.Settings
	logger   *slog.Logger
}

// Run executes one command line and returns the process exit code.
func Run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	e := &env{stdout: outw, stderr: stderr}

	root := newRootCmd(e)
	root.SetArgs(argv)
	root.SetOut(outw)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	flushErr := outw.Flush()
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return exitInterrupted
	}
	if err != nil && !writers.IsBrokenPipe(err) {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		var ue usageError
		if !e.ran || errors.As(err, &ue) {
			_, _ = fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", commandPath(root, argv))
			return exitUsage
		}
		return exitErr
	}
	if flushErr != nil && !writers.IsBrokenPipe(flushErr) {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", flushErr)
		return exitOutput
	}
	return exitOK
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "primertail",
		Short: "Design PCR primers and tail fragments for seamless assembly",
		Long: `primertail designs primer pairs that amplify whole templates at a target
melting temperature, and adds 5' tails to the primers of consecutive
fragments so the PCR products overlap for Gibson-style assembly.`,
		Version:           version.Version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: e.setup,
	}
	root.SetVersionTemplate("primertail version {{.Version}}\n")
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.StringVar(&e.envFile, "env-file", "", "dotenv file with PRIMERTAIL_* defaults (default .env)")
	pf.StringVar(&e.logLevel, "log-level", "", "DEBUG, INFO, WARN or ERROR")
	pf.StringVar(&e.logFormat, "log-format", "", "text or json")
	pf.StringVar(&e.dataDir, "data-dir", "", "primer library directory (default ~/.primertail)")

	root.AddCommand(
		newDesignCmd(e),
		newAnnealCmd(e),
		newTailCmd(e),
		newTmCmd(e),
		newPrimersCmd(e),
		newServeCmd(e),
		newMCPCmd(e),
		newVersionCmd(e),
	)
	return root
}

// setup loads the configuration every subcommand starts from.
func (e *env) setup(_ *cobra.Command, _ []string) error {
	e.ran = true
	cfg, err := config.Load(e.envFile)
	if err != nil {
		return err
	}
	if e.logLevel != "" {
		cfg.LogLevel = e.logLevel
	}
	if e.logFormat != "" {
		cfg.LogFormat = e.logFormat
	}
	if e.dataDir != "" {
		cfg.DataDir = e.dataDir
	}
	if err := cfg.Validate(); err != nil {
		return usageError{err}
	}
	e.cfg = cfg
	e.logger = log.New(e.stderr, cfg.LogFormat, cfg.LogLevel)
	e.settings, err = appcore.FromConfig(cfg, e.logger)
	return err
}

func (e *env) openStore() (*store.Store, error) {
	return store.Open(e.cfg.DataDir)
}

// outputFlags are shared by every command that writes results.
type outputFlags struct {
	format string
	header bool
	figure bool
}

func (o *outputFlags) register(cmd *cobra.Command, formats []string, figure bool) {
	f := cmd.Flags()
	f.StringVarP(&o.format, "output", "o", "text", "output format: "+strings.Join(formats, ", "))
	f.BoolVar(&o.header, "header", false, "print a header row (text output)")
	if figure {
		f.BoolVar(&o.figure, "figure", false, "draw each amplicon under its row (text output)")
	}
}

func (o outputFlags) check(formats []string) error {
	if !slices.Contains(formats, o.format) {
		return usagef("unknown output format %q (have: %s)", o.format, strings.Join(formats, ", "))
	}
	return nil
}

// thermoFlags override the configured design and Tm settings.
type thermoFlags struct {
	targetTm  float64
	fwdConc   string
	revConc   string
	salt      string
	minLength int
	formula   string
	threads   int
}

func (t *thermoFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&t.targetTm, "target-tm", 0, "target melting temperature in °C (default from config, 55)")
	f.StringVar(&t.fwdConc, "fwd-conc", "", `forward primer concentration, e.g. "1uM" (bare numbers are nM)`)
	f.StringVar(&t.revConc, "rev-conc", "", "reverse primer concentration")
	f.StringVar(&t.salt, "salt", "", `monovalent salt, e.g. "50mM" (bare numbers are mM)`)
	f.IntVar(&t.minLength, "min-length", 0, "minimum primer length and annealing footprint")
	f.StringVar(&t.formula, "formula", "", "Tm formula: bresluc, breslauer86, santalucia or basic")
	f.IntVar(&t.threads, "threads", 0, "templates designed in parallel (0 = all CPUs)")
}

func (t thermoFlags) apply(cmd *cobra.Command, s appcore.Settings) (appcore.Settings, error) {
	s, err := s.WithConc(t.fwdConc, t.revConc, t.salt)
	if err != nil {
		return s, usageError{err}
	}
	if s, err = s.WithFormula(t.formula); err != nil {
		return s, usageError{err}
	}
	changed := cmd.Flags().Changed
	if changed("target-tm") {
		s.TargetTm = t.targetTm
	}
	if changed("min-length") {
		if t.minLength < 1 {
			return s, usagef("--min-length must be >= 1, got %d", t.minLength)
		}
		s.MinLength = t.minLength
	}
	if changed("threads") {
		if t.threads < 0 {
			return s, usagef("--threads must be >= 0, got %d", t.threads)
		}
		s.Threads = t.threads
	}
	return s, nil
}

// commandPath names the subcommand argv selected, for the usage hint.
func commandPath(root *cobra.Command, argv []string) string {
	cmd, _, err := root.Find(argv)
	if err != nil || cmd == nil {
		return root.Name()
	}
	return cmd.CommandPath()
}
