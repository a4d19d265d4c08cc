// Package repl implements the command framework behind the journal prompt:
// command registration, per-command argument parsing, typed command output
// and "@N" back-references into the previous command's results.
package repl

// ResultType identifies what kind of values an Output carries.
type ResultType string

const (
	// NoResults marks an output with nothing to reference.
	NoResults ResultType = ""
	// JournalEntry results are entry ids issued by a journal.Store.
	JournalEntry ResultType = "JOURNAL_ENTRY"
	// Tag results are tag names.
	Tag ResultType = "TAG"
)

// Output is what a command hands back to the caller.
//
// Exit and ExitArgs together encode the caller's next step:
//   - Exit false: keep reading input.
//   - Exit true, no ExitArgs: stop silently.
//   - Exit true with ExitArgs: stop, then run ExitArgs as a new process.
type Output struct {
	Results  []string
	Type     ResultType
	Exit     bool
	ExitArgs []string
}

// Neutral returns the output for "nothing happened": continue, no results.
func Neutral() Output {
	return Output{Results: []string{}}
}

// Results returns a continuing output carrying values of type t.
func Results(t ResultType, values []string) Output {
	if values == nil {
		values = []string{}
	}
	return Output{Results: values, Type: t}
}

// Exit returns an output that stops the prompt and optionally runs argv.
func Exit(argv ...string) Output {
	return Output{Results: []string{}, Exit: true, ExitArgs: argv}
}

// HasResults reports whether the output can be referenced.
func (o Output) HasResults() bool {
	return o.Type != NoResults && len(o.Results) > 0
}
