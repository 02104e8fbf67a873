package repl

import (
	"bytes"
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/chzyer/readline"
)

// scriptReader replays lines and then reports EOF.
type scriptReader struct {
	lines   []string
	errs    map[int]error
	prompts []string
	pos     int
	closed  bool
}

func (s *scriptReader) Readline() (string, error) {
	if err, ok := s.errs[s.pos]; ok {
		s.pos++
		return "", err
	}
	if s.pos >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.pos]
	s.pos++
	return line, nil
}

func (s *scriptReader) SetPrompt(p string) { s.prompts = append(s.prompts, p) }
func (s *scriptReader) Close() error       { s.closed = true; return nil }

func TestREPL_Run_Exit(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  int
	}{
		{"exit", []string{"exit", "dashboard"}, 0},
		{"quit", []string{"quit"}, 0},
		{"EOF", []string{"dashboard"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			reader := &scriptReader{lines: tt.lines}
			r := NewWithReader(reader, io.Discard, io.Discard, func(ctx context.Context, args []string) error {
				calls++
				return nil
			})

			if err := r.Run(context.Background()); err != nil {
				t.Errorf("Run() error = %v", err)
			}
			if calls != tt.want {
				t.Errorf("executor calls = %d, want %d", calls, tt.want)
			}
			if !reader.closed {
				t.Error("reader not closed")
			}
		})
	}
}

func TestREPL_Run_SkipsBlankAndComments(t *testing.T) {
	var got [][]string
	reader := &scriptReader{lines: []string{"", "   ", "# note", `bookings status 7 confirmed`}}
	r := NewWithReader(reader, io.Discard, io.Discard, func(ctx context.Context, args []string) error {
		got = append(got, args)
		return nil
	})
	r.Run(context.Background())

	want := [][]string{{"bookings", "status", "7", "confirmed"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("executed %v, want %v", got, want)
	}
}

func TestREPL_Run_ErrorsContinue(t *testing.T) {
	errOut := &bytes.Buffer{}
	calls := 0
	reader := &scriptReader{lines: []string{"enquiries list", "enquiries list"}}
	r := NewWithReader(reader, io.Discard, errOut, func(ctx context.Context, args []string) error {
		calls++
		return errors.New("Not found")
	})

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if strings.Count(errOut.String(), "error: Not found\n") != 2 {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestREPL_Run_Interrupt(t *testing.T) {
	out := &bytes.Buffer{}
	reader := &scriptReader{errs: map[int]error{0: readline.ErrInterrupt}, lines: []string{"", "exit"}}
	r := NewWithReader(reader, out, io.Discard, func(ctx context.Context, args []string) error { return nil })

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "exit") {
		t.Errorf("interrupt hint missing: %q", out.String())
	}
}

func TestREPL_PromptFunc(t *testing.T) {
	reader := &scriptReader{lines: []string{"whoami"}}
	r := NewWithReader(reader, io.Discard, io.Discard, func(ctx context.Context, args []string) error { return nil })

	user := ""
	r.SetPromptFunc(func() string {
		defer func() { user = "admin@wildwave.com" }()
		if user == "" {
			return "wildwave> "
		}
		return "wildwave (" + user + ")> "
	})
	r.Run(context.Background())

	if len(reader.prompts) != 2 || reader.prompts[1] != "wildwave (admin@wildwave.com)> " {
		t.Errorf("prompts = %q", reader.prompts)
	}
}

func TestREPL_Run_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	reader := &scriptReader{lines: []string{"dashboard"}}
	r := NewWithReader(reader, io.Discard, io.Discard, func(ctx context.Context, args []string) error {
		calls++
		return nil
	})
	if err := r.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if calls != 0 {
		t.Error("cancelled REPL executed a command")
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{`login --email admin@wildwave.com`, []string{"login", "--email", "admin@wildwave.com"}},
		{`blogs create --title "Great Migration"`, []string{"blogs", "create", "--title", "Great Migration"}},
		{`contact update --address 'Karen Rd, Nairobi'`, []string{"contact", "update", "--address", "Karen Rd, Nairobi"}},
		{`promotions create --title 20\%\ off`, []string{"promotions", "create", "--title", "20% off"}},
		{`a "" b`, []string{"a", "", "b"}},
		{"  spaced\t\tout  ", []string{"spaced", "out"}},
	}
	for _, tt := range tests {
		got, err := SplitArgs(tt.line)
		if err != nil {
			t.Errorf("SplitArgs(%q) error = %v", tt.line, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitArgs(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}

	for _, bad := range []string{`say "hello`, `path\`} {
		if _, err := SplitArgs(bad); err == nil {
			t.Errorf("SplitArgs(%q) should fail", bad)
		}
	}
}
