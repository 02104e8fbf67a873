package repl

import (
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/urfave/cli/v2"
)

// shellBuiltins are handled by the loop itself.
var shellBuiltins = []string{"exit", "quit"}

// Completer completes command paths from the console's command tree.
type Completer struct {
	commands []string
	prefix   *readline.PrefixCompleter
}

// NewCompleter builds a completer for cmds and their subcommands.
// Hidden commands are skipped.
func NewCompleter(cmds []*cli.Command) *Completer {
	c := &Completer{}
	items := make([]readline.PrefixCompleterInterface, 0, len(cmds)+len(shellBuiltins))
	for _, cmd := range cmds {
		if cmd.Hidden {
			continue
		}
		items = append(items, c.item(cmd, ""))
	}
	for _, b := range shellBuiltins {
		c.commands = append(c.commands, b)
		items = append(items, readline.PcItem(b))
	}
	sort.Strings(c.commands)
	c.prefix = readline.NewPrefixCompleter(items...)
	return c
}

func (c *Completer) item(cmd *cli.Command, parent string) *readline.PrefixCompleter {
	path := strings.TrimSpace(parent + " " + cmd.Name)
	c.commands = append(c.commands, path)

	children := make([]readline.PrefixCompleterInterface, 0, len(cmd.Subcommands))
	for _, sub := range cmd.Subcommands {
		if sub.Hidden {
			continue
		}
		children = append(children, c.item(sub, path))
	}
	return readline.PcItem(cmd.Name, children...)
}

// Do implements readline.AutoCompleter.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	return c.prefix.Do(line, pos)
}

// Complete returns the command paths starting with prefix.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
