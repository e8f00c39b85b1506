package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/config"
	"github.com/zephyrtronium/calc/internal/logger"
	"github.com/zephyrtronium/calc/internal/repl"
)

// errFailed is returned when an argument expression fails. The diagnostic
// has already been printed by then.
var errFailed = errors.New("evaluation failed")

type options struct {
	cfgFile   string
	inname    string
	format    string
	prompt    string
	maxDepth  int
	leftAssoc bool
	noColor   bool
	debug     bool
}

func newRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "calc [expr ...]",
		Short: "Evaluate arithmetic expressions",
		Long: `calc evaluates arithmetic expressions in float64.

With arguments, each argument is evaluated and printed. Without, calc reads
one expression per line from --in or stdin until EOF or a line containing
"exit" or "quit".`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &o, args)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	f := cmd.Flags()
	f.StringVar(&o.cfgFile, "config", "", "YAML configuration file")
	f.StringVar(&o.inname, "in", "", "input file (default stdin if no args given)")
	f.StringVar(&o.format, "fmt", "", `result formatting string (default "%.16g")`)
	f.StringVar(&o.prompt, "prompt", "", `prompt before each line (default ">>> ")`)
	f.IntVar(&o.maxDepth, "max-depth", 0, "recursion limit; 0 disables it (default 10000)")
	f.BoolVar(&o.leftAssoc, "left-assoc", false, "fold chains of equal-precedence operators left")
	f.BoolVar(&o.noColor, "no-color", false, "disable colored diagnostics")
	f.BoolVar(&o.debug, "debug", false, "log every evaluation")

	cmd.AddCommand(newFuncsCmd())
	return cmd
}

func run(cmd *cobra.Command, o *options, args []string) error {
	cfg, err := config.LoadFromFile(o.cfgFile)
	if err != nil {
		return err
	}
	applyFlags(cmd, o, cfg)

	log, closeLog, err := logger.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := calc.NewContext(
		calc.MaxDepth(cfg.Eval.MaxDepth),
		calc.LeftAssociative(cfg.Eval.LeftAssociative),
	)
	log.Debug("context ready",
		zap.Int("max_depth", ctx.MaxDepth()),
		zap.Bool("left_associative", cfg.Eval.LeftAssociative),
	)

	out := cmd.OutOrStdout()
	if len(args) > 0 {
		s := repl.New(ctx, repl.Options{Format: cfg.REPL.Format, Color: cfg.REPL.Color}, log)
		failed := false
		for _, arg := range args {
			ok, err := s.Line(out, arg)
			if err != nil {
				return err
			}
			failed = failed || !ok
		}
		if failed {
			return errFailed
		}
		return nil
	}

	in, err := input(cmd, o.inname)
	if err != nil {
		return err
	}
	if c, ok := in.(io.Closer); ok && in != os.Stdin {
		defer c.Close()
	}
	s := repl.New(ctx, repl.Options{Prompt: cfg.REPL.Prompt, Format: cfg.REPL.Format, Color: cfg.REPL.Color}, log)
	return s.Run(in, out)
}

// applyFlags overrides configuration with flags the user actually set.
func applyFlags(cmd *cobra.Command, o *options, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("fmt") {
		cfg.REPL.Format = o.format
	}
	if f.Changed("prompt") {
		cfg.REPL.Prompt = o.prompt
	}
	if f.Changed("max-depth") {
		cfg.Eval.MaxDepth = o.maxDepth
	}
	if f.Changed("left-assoc") {
		cfg.Eval.LeftAssociative = o.leftAssoc
	}
	if o.noColor {
		cfg.REPL.Color = false
	}
	if o.debug {
		cfg.Logging.Level = "debug"
	}
}

func input(cmd *cobra.Command, inname string) (io.Reader, error) {
	if inname == "" || inname == "-" {
		return cmd.InOrStdin(), nil
	}
	f, err := os.Open(inname)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	return f, nil
}

func newFuncsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "funcs",
		Short: "List the available functions and constants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, f := range calc.Funcs() {
				params := "x"
				if f.Arity() == 2 {
					params = "x, y"
				}
				if _, err := fmt.Fprintf(w, "%s(%s)\n", f.Name(), params); err != nil {
					return err
				}
			}
			for _, c := range calc.Constants() {
				v, err := calc.EvalString(c)
				if err != nil {
					return fmt.Errorf("constant %s: %w", c, err)
				}
				if _, err := fmt.Fprintf(w, "%s = %s\n", c, strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
