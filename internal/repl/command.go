package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/aidanlsb/jrnl/internal/ui"
)

// Spec describes a command to the router and to Execute.
type Spec struct {
	// Alias selects the command. It is matched case-insensitively.
	Alias string
	// Usage is the argument synopsis shown by "-h", e.g. "[-t] <term>".
	Usage string
	// Help is the one-line description shown by "help".
	Help string
	// Args validates positional arguments after references are resolved.
	// Nil accepts anything.
	Args PositionalArgs
	// Consumes, when set, lets every positional argument be an "@N"
	// reference into previous results of this type.
	Consumes ResultType
}

// Command is one unit of prompt behavior. Implementations declare their flags
// in Configure and do their work in Run; Execute supplies everything else.
//
// Configure is called with a fresh flag set on every execution, so flag
// variables bound there start from their defaults each time.
type Command interface {
	Spec() Spec
	Configure(fs *pflag.FlagSet)
	Run(env Env, args []string) (Output, error)
}

// Env is what a command sees of the outside world during one execution.
type Env struct {
	Out io.Writer
	Err io.Writer
	// Previous is the output of the command run before this one.
	Previous Output
}

// Execute parses raw against cmd's grammar, resolves back-references and runs
// the command.
//
// Every error caused by user input is written to env.Err and turned into
// Neutral(). Only errors marked with Fatal are returned.
func Execute(cmd Command, env Env, raw []string) (Output, error) {
	spec := cmd.Spec()

	fs := pflag.NewFlagSet(spec.Alias, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false
	cmd.Configure(fs)

	if err := fs.Parse(raw); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printUsage(env.Out, spec, fs)
			return Neutral(), nil
		}
		return userError(env, spec, err)
	}

	args := fs.Args()
	if spec.Consumes != NoResults {
		resolved, err := Resolve(args, env.Previous, spec.Consumes)
		if err != nil {
			return userError(env, spec, err)
		}
		args = resolved
	}

	if spec.Args != nil {
		if err := spec.Args(args); err != nil {
			return userError(env, spec, err)
		}
	}

	out, err := cmd.Run(env, args)
	if err != nil {
		if IsFatal(err) {
			return Neutral(), err
		}
		return userError(env, spec, err)
	}
	if out.Results == nil {
		out.Results = []string{}
	}
	return out, nil
}

func userError(env Env, spec Spec, err error) (Output, error) {
	fmt.Fprintln(env.Err, ui.Errorf("%s: %v", spec.Alias, err))
	return Neutral(), nil
}

func printUsage(w io.Writer, spec Spec, fs *pflag.FlagSet) {
	synopsis := spec.Alias
	if spec.Usage != "" {
		synopsis += " " + spec.Usage
	}
	fmt.Fprintln(w, ui.Header("usage: "+synopsis))
	if spec.Help != "" {
		fmt.Fprintln(w, spec.Help)
	}
	if flags := fs.FlagUsages(); strings.TrimSpace(flags) != "" {
		fmt.Fprintln(w)
		fmt.Fprint(w, flags)
	}
	if spec.Consumes != NoResults {
		fmt.Fprintln(w)
		fmt.Fprintln(w, ui.Hint(fmt.Sprintf("Arguments accept @N or @N-M references to previous %s results.", spec.Consumes)))
	}
}

// fatalError marks an error as a broken invariant rather than bad input.
type fatalError struct {
	err error
}

func (e *fatalError) Error() string { return e.err.Error() }

func (e *fatalError) Unwrap() error { return e.err }

// Fatal marks err as a contract violation. Execute returns fatal errors to
// its caller instead of reporting them to the user.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &fatalError{err: err}
}

// IsFatal reports whether err, or any error it wraps, was marked with Fatal.
func IsFatal(err error) bool {
	var fe *fatalError
	return errors.As(err, &fe)
}
