// Package repl is the line-oriented loop around a calc.Context. It owns no
// parsing: each line goes to the context whole, and the loop only prints
// what comes back.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/zephyrtronium/calc"
)

// Options controls presentation.
type Options struct {
	// Prompt is written before each line is read. It may be empty.
	Prompt string
	// Format is the fmt format for results, e.g. "%.16g".
	Format string
	// Color enables coloring of failure diagnostics. Color is also
	// suppressed when the color package decides the terminal lacks it.
	Color bool
}

// Session evaluates lines with one context. It is not safe for concurrent
// use, as the context it wraps is not.
type Session struct {
	ctx  *calc.Context
	opts Options
	diag *color.Color
	log  *zap.Logger

	evals, failures int
}

// New creates a session. A nil logger discards logs.
func New(ctx *calc.Context, opts Options, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Format == "" {
		opts.Format = "%.16g"
	}
	diag := color.New(color.FgRed)
	if !opts.Color {
		diag.DisableColor()
	}
	return &Session{ctx: ctx, opts: opts, diag: diag, log: log}
}

// IsExit reports whether a line ends the session. Any line containing "exit"
// or "quit" does, wherever the word appears.
func IsExit(line string) bool {
	return strings.Contains(line, "exit") || strings.Contains(line, "quit")
}

// Run reads lines from r until EOF or an exit line, writing a result for
// each to w. Lines may be any length. A final line without a newline is still
// evaluated. A failed evaluation is not an error; only I/O errors are.
func (s *Session) Run(r io.Reader, w io.Writer) error {
	s.log.Info("session started")
	defer func() {
		s.log.Info("session ended", zap.Int("evaluations", s.evals), zap.Int("failures", s.failures))
	}()
	br := bufio.NewReader(r)
	for {
		if _, err := io.WriteString(w, s.opts.Prompt); err != nil {
			return err
		}
		line, err := br.ReadString('\n')
		switch {
		case err == io.EOF && line == "":
			return nil
		case err != nil && err != io.EOF:
			return err
		}
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if IsExit(line) {
			return nil
		}
		if _, err := s.Line(w, line); err != nil {
			return err
		}
	}
}

// Line evaluates one line and writes its result, followed by a diagnostic if
// evaluation failed. It returns whether evaluation succeeded.
func (s *Session) Line(w io.Writer, line string) (bool, error) {
	r := s.ctx.Eval(line)
	s.evals++
	ok := !s.ctx.Failed()
	s.log.Debug("evaluated",
		zap.String("expr", line),
		zap.Float64("result", r),
		zap.Bool("failed", !ok),
		zap.Int("pos", s.ctx.End()),
	)
	if _, err := fmt.Fprintf(w, s.opts.Format+"\n", r); err != nil {
		return ok, err
	}
	if ok {
		return true, nil
	}
	s.failures++
	near := ""
	if end := s.ctx.End(); end < len(line) {
		near = line[end:]
	}
	_, err := s.diag.Fprintf(w, "failed near: %s\n", near)
	return false, err
}
