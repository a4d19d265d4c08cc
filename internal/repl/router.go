package repl

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aidanlsb/jrnl/internal/ui"
)

// HelpAlias is reserved by the router for listing commands.
const HelpAlias = "help"

// helpColumn is the width the alias column is padded to in help output.
const helpColumn = 25

var (
	// ErrDuplicateAlias is returned by Register for an alias already taken.
	ErrDuplicateAlias = errors.New("duplicate command alias")
	// ErrUnknownCommand is reported when input names no registered command.
	ErrUnknownCommand = errors.New("unknown command")
)

// Router dispatches tokenized input to registered commands and remembers the
// most recent output for back-references.
type Router struct {
	commands map[string]Command
	order    []string
	last     Output

	out    io.Writer
	errOut io.Writer
	logger *slog.Logger
}

// NewRouter returns a router writing command output to out and user errors
// to errOut. A nil logger uses slog.Default().
func NewRouter(out, errOut io.Writer, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		commands: make(map[string]Command),
		last:     Neutral(),
		out:      out,
		errOut:   errOut,
		logger:   logger,
	}
}

func normalizeAlias(alias string) string {
	return strings.ToLower(strings.TrimSpace(alias))
}

// Register adds cmd under its alias. A taken or reserved alias is a
// programming error and yields ErrDuplicateAlias.
func (r *Router) Register(cmd Command) error {
	alias := normalizeAlias(cmd.Spec().Alias)
	if alias == "" {
		return fmt.Errorf("register: command has no alias")
	}
	if alias == HelpAlias {
		return fmt.Errorf("%w: %q is reserved", ErrDuplicateAlias, alias)
	}
	if _, ok := r.commands[alias]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateAlias, alias)
	}
	r.commands[alias] = cmd
	r.order = append(r.order, alias)
	return nil
}

// MustRegister registers every command and panics on the first failure.
func (r *Router) MustRegister(cmds ...Command) {
	for _, cmd := range cmds {
		if err := r.Register(cmd); err != nil {
			panic(err)
		}
	}
}

// Aliases returns the registered aliases in registration order.
func (r *Router) Aliases() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Last returns the output recorded by the most recent Handle call.
func (r *Router) Last() Output {
	return r.last
}

// Handle routes one line of tokenized input. The returned output, including
// the neutral output produced for errors, becomes the previous output of the
// next call. Only fatal errors are returned.
func (r *Router) Handle(tokens []string) (Output, error) {
	if len(tokens) == 0 {
		return Neutral(), nil
	}

	alias := normalizeAlias(tokens[0])
	if alias == HelpAlias {
		r.PrintHelp()
		r.last = Neutral()
		return r.last, nil
	}

	cmd, ok := r.commands[alias]
	if !ok {
		fmt.Fprintln(r.errOut, ui.Errorf("%v: %q (try %q)", ErrUnknownCommand, tokens[0], HelpAlias))
		r.last = Neutral()
		return r.last, nil
	}

	out, err := Execute(cmd, Env{Out: r.out, Err: r.errOut, Previous: r.last}, tokens[1:])
	r.last = out
	if err != nil {
		// The caller reports fatal errors.
		return out, err
	}

	r.logger.Debug("command done",
		slog.String("command", alias),
		slog.String("type", string(out.Type)),
		slog.Int("results", len(out.Results)),
		slog.Bool("exit", out.Exit))
	return out, nil
}

// PrintHelp writes every alias with its help text, aligned in one column.
func (r *Router) PrintHelp() {
	for _, alias := range r.order {
		fmt.Fprintf(r.out, "%s%s\n", ui.PadRight(ui.AccentBold.Render(alias), helpColumn), r.commands[alias].Spec().Help)
	}
	fmt.Fprintf(r.out, "%s%s\n", ui.PadRight(ui.AccentBold.Render(HelpAlias), helpColumn), "Show this help")
	fmt.Fprintln(r.out, ui.Hint("Run '<command> -h' for a command's flags."))
}
