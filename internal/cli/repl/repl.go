package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// LineReader reads one line at a time. *readline.Instance satisfies it.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

// Executor runs one parsed command line.
type Executor func(ctx context.Context, args []string) error

// Config configures a readline-backed REPL.
type Config struct {
	Prompt       string
	HistoryFile  string
	HistoryLimit int
	Completer    *Completer
	Stdin        io.ReadCloser
	Stdout       io.Writer
	Stderr       io.Writer
}

// REPL is the read-eval-print loop.
type REPL struct {
	reader LineReader
	exec   Executor
	out    io.Writer
	errOut io.Writer
	prompt func() string
}

// New creates a REPL reading from a readline instance.
func New(cfg Config, exec Executor) (*REPL, error) {
	rlCfg := &readline.Config{
		Prompt:          cfg.Prompt,
		HistoryFile:     cfg.HistoryFile,
		HistoryLimit:    cfg.HistoryLimit,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdin:           cfg.Stdin,
		Stdout:          cfg.Stdout,
		Stderr:          cfg.Stderr,
	}
	if cfg.Completer != nil {
		rlCfg.AutoComplete = cfg.Completer
	}

	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return nil, fmt.Errorf("init readline: %w", err)
	}

	r := NewWithReader(rl, rl.Stdout(), rl.Stderr(), exec)
	r.prompt = func() string { return cfg.Prompt }
	return r, nil
}

// NewWithReader creates a REPL over an arbitrary line reader.
func NewWithReader(reader LineReader, out, errOut io.Writer, exec Executor) *REPL {
	return &REPL{
		reader: reader,
		exec:   exec,
		out:    out,
		errOut: errOut,
		prompt: func() string { return "wildwave> " },
	}
}

// SetPromptFunc sets the function evaluated before each line is read.
func (r *REPL) SetPromptFunc(fn func() string) {
	r.prompt = fn
}

// Run reads and executes lines until exit, EOF or ctx is done.
func (r *REPL) Run(ctx context.Context) error {
	defer r.reader.Close()

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		r.reader.SetPrompt(r.prompt())
		line, err := r.reader.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			fmt.Fprintln(r.out, "Use 'exit' or 'quit' to leave the shell.")
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		args, err := SplitArgs(line)
		if err != nil {
			fmt.Fprintf(r.errOut, "error: %v\n", err)
			continue
		}
		if err := r.exec(ctx, args); err != nil {
			fmt.Fprintf(r.errOut, "error: %v\n", err)
		}
	}
}

// SplitArgs splits a line into arguments. Single and double quotes group
// words and a backslash escapes the next character outside single quotes.
func SplitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		quote   rune
		escaped bool
		inArg   bool
	)

	for _, ch := range line {
		switch {
		case escaped:
			cur.WriteRune(ch)
			escaped = false
		case ch == '\\' && quote != '\'':
			escaped = true
			inArg = true
		case quote != 0:
			if ch == quote {
				quote = 0
			} else {
				cur.WriteRune(ch)
			}
		case ch == '"' || ch == '\'':
			quote = ch
			inArg = true
		case ch == ' ' || ch == '\t':
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(ch)
			inArg = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if escaped {
		return nil, errors.New("trailing backslash")
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args, nil
}
