package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/aidanlsb/jrnl/internal/journal"
	"github.com/aidanlsb/jrnl/internal/repl"
	"github.com/aidanlsb/jrnl/internal/ui"
)

type listCmd struct {
	Listing
	store *journal.Store
}

// NewList returns "ls": list every entry.
func NewList(store *journal.Store) repl.Command {
	return &listCmd{store: store}
}

func (c *listCmd) Spec() repl.Spec {
	return repl.Spec{
		Alias: "ls",
		Usage: "[-s time|name] [-r]",
		Help:  "List all entries",
		Args:  repl.NoArgs,
	}
}

func (c *listCmd) Configure(fs *pflag.FlagSet) { c.configureListing(fs) }

func (c *listCmd) Run(env repl.Env, _ []string) (repl.Output, error) {
	return c.list(env.Out, c.store.All()), nil
}

type findCmd struct {
	Listing
	store *journal.Store
	byTag bool
}

// NewFind returns "find": match entries by name substring or, with -t, by tag.
// The term may reference a previous "tags" result.
func NewFind(store *journal.Store) repl.Command {
	return &findCmd{store: store}
}

func (c *findCmd) Spec() repl.Spec {
	return repl.Spec{
		Alias:    "find",
		Usage:    "[-t] [-s time|name] [-r] <term>",
		Help:     "Find entries by name, or by tag with -t",
		Args:     repl.ExactArgs(1),
		Consumes: repl.Tag,
	}
}

func (c *findCmd) Configure(fs *pflag.FlagSet) {
	c.configureListing(fs)
	c.byTag = false
	fs.BoolVarP(&c.byTag, "tag", "t", false, "match a tag instead of the name")
}

func (c *findCmd) Run(env repl.Env, args []string) (repl.Output, error) {
	if c.byTag {
		return c.list(env.Out, c.store.ByTag(args[0])), nil
	}
	return c.list(env.Out, c.store.ByName(args[0])), nil
}

type tagsCmd struct {
	store  *journal.Store
	counts bool
}

// NewTags returns "tags": list every distinct tag as TAG results.
func NewTags(store *journal.Store) repl.Command {
	return &tagsCmd{store: store}
}

func (c *tagsCmd) Spec() repl.Spec {
	return repl.Spec{
		Alias: "tags",
		Usage: "[-c]",
		Help:  "List all tags",
		Args:  repl.NoArgs,
	}
}

func (c *tagsCmd) Configure(fs *pflag.FlagSet) {
	c.counts = false
	fs.BoolVarP(&c.counts, "count", "c", false, "show how many entries carry each tag")
}

func (c *tagsCmd) Run(env repl.Env, _ []string) (repl.Output, error) {
	tags := c.store.Tags()
	if len(tags) == 0 {
		fmt.Fprintln(env.Out, ui.Hint("  No tags"))
		return repl.Results(repl.Tag, nil), nil
	}

	cols := 2
	if c.counts {
		cols = 3
	}
	tbl := ui.NewTable(cols)
	for i, tag := range tags {
		if c.counts {
			tbl.AddRow(ui.Ref(i), ui.Accent.Render(tag), ui.Hint(strconv.Itoa(c.store.TagCount(tag))))
		} else {
			tbl.AddRow(ui.Ref(i), ui.Accent.Render(tag))
		}
	}
	fmt.Fprint(env.Out, tbl.String())

	return repl.Results(repl.Tag, tags), nil
}

type pickCmd struct {
	Listing
	store *journal.Store
}

// NewPick returns "pick": list referenced entries again, narrowing the
// previous results for the next command.
func NewPick(store *journal.Store) repl.Command {
	return &pickCmd{store: store}
}

func (c *pickCmd) Spec() repl.Spec {
	return repl.Spec{
		Alias:    "pick",
		Usage:    "[-s time|name] [-r] <entry>...",
		Help:     "Keep only the given entries, e.g. pick @0 @2-4",
		Args:     repl.MinimumNArgs(1),
		Consumes: repl.JournalEntry,
	}
}

func (c *pickCmd) Configure(fs *pflag.FlagSet) { c.configureListing(fs) }

func (c *pickCmd) Run(env repl.Env, args []string) (repl.Output, error) {
	entries, err := lookup(c.store, args)
	if err != nil {
		return repl.Output{}, err
	}
	return c.list(env.Out, entries), nil
}
