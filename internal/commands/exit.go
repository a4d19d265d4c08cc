package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/aidanlsb/jrnl/internal/editor"
	"github.com/aidanlsb/jrnl/internal/journal"
	"github.com/aidanlsb/jrnl/internal/repl"
	"github.com/aidanlsb/jrnl/internal/slugs"
	"github.com/aidanlsb/jrnl/internal/ui"
)

type openCmd struct {
	store  *journal.Store
	editor string
}

// NewOpen returns "open": leave the prompt and open referenced entries in
// the editor.
func NewOpen(store *journal.Store, editorCmd string) repl.Command {
	return &openCmd{store: store, editor: editorCmd}
}

func (c *openCmd) Spec() repl.Spec {
	return repl.Spec{
		Alias:    "open",
		Usage:    "<entry>...",
		Help:     "Open entries in the editor and quit",
		Args:     repl.MinimumNArgs(1),
		Consumes: repl.JournalEntry,
	}
}

func (c *openCmd) Configure(*pflag.FlagSet) {}

func (c *openCmd) Run(_ repl.Env, args []string) (repl.Output, error) {
	entries, err := lookup(c.store, args)
	if err != nil {
		return repl.Output{}, err
	}
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}

	out := repl.Exit(editor.Command(c.editor, paths...)...)
	out.Type = repl.JournalEntry
	out.Results = entryIDs(entries)
	return out, nil
}

type newCmd struct {
	store      *journal.Store
	editor     string
	defaultExt string
	now        func() time.Time

	tags []string
	slug bool
	ext  string
}

// NewEntry returns "new": leave the prompt and open the editor on the path a
// new entry with the given name and tags would have. Nothing is written; the
// editor creates the file.
func NewEntry(store *journal.Store, editorCmd, defaultExt string, now func() time.Time) repl.Command {
	return &newCmd{store: store, editor: editorCmd, defaultExt: defaultExt, now: now}
}

func (c *newCmd) Spec() repl.Spec {
	return repl.Spec{
		Alias: "new",
		Usage: "[-t tag,...] [--slug] [-e ext] <name>...",
		Help:  "Start a new entry in the editor and quit",
		Args:  repl.MinimumNArgs(1),
	}
}

func (c *newCmd) Configure(fs *pflag.FlagSet) {
	c.tags = nil
	c.slug = false
	fs.StringSliceVarP(&c.tags, "tags", "t", nil, "comma-separated tags")
	fs.BoolVar(&c.slug, "slug", false, "slugify the name")
	fs.StringVarP(&c.ext, "ext", "e", c.defaultExt, "file extension")
}

func (c *newCmd) Run(env repl.Env, args []string) (repl.Output, error) {
	name := strings.Join(args, " ")
	if c.slug {
		name = slugs.Name(name)
	}
	if ext := strings.TrimSpace(c.ext); ext != "" {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		name += ext
	}

	path, err := c.store.ProposedPath(name, c.now().Truncate(time.Second), c.tags)
	if err != nil {
		return repl.Output{}, err
	}
	if _, err := os.Stat(path); err == nil {
		return repl.Output{}, fmt.Errorf("%s already exists", filepath.Base(path))
	} else if !errors.Is(err, os.ErrNotExist) {
		return repl.Output{}, err
	}

	fmt.Fprintln(env.Out, ui.Successf("New entry %s", ui.FilePath(filepath.Base(path))))
	return repl.Exit(editor.Command(c.editor, path)...), nil
}

type quitCmd struct {
	alias string
}

// NewQuit returns a command that leaves the prompt without running anything.
func NewQuit(alias string) repl.Command {
	return &quitCmd{alias: alias}
}

func (c *quitCmd) Spec() repl.Spec {
	return repl.Spec{
		Alias: c.alias,
		Help:  "Leave the journal",
		Args:  repl.NoArgs,
	}
}

func (c *quitCmd) Configure(*pflag.FlagSet) {}

func (c *quitCmd) Run(repl.Env, []string) (repl.Output, error) {
	return repl.Exit(), nil
}
