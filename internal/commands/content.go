package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/jrnl/internal/journal"
	"github.com/aidanlsb/jrnl/internal/repl"
	"github.com/aidanlsb/jrnl/internal/ui"
)

type showCmd struct {
	store *journal.Store
	width int
}

// NewShow returns "show": print referenced entries rendered as markdown,
// wrapped to width columns.
func NewShow(store *journal.Store, width int) repl.Command {
	return &showCmd{store: store, width: width}
}

func (c *showCmd) Spec() repl.Spec {
	return repl.Spec{
		Alias:    "show",
		Usage:    "<entry>...",
		Help:     "Print entries as rendered markdown",
		Args:     repl.MinimumNArgs(1),
		Consumes: repl.JournalEntry,
	}
}

func (c *showCmd) Configure(*pflag.FlagSet) {}

func (c *showCmd) Run(env repl.Env, args []string) (repl.Output, error) {
	entries, err := lookup(c.store, args)
	if err != nil {
		return repl.Output{}, err
	}
	contents, err := readAll(entries)
	if err != nil {
		return repl.Output{}, err
	}

	for i, e := range entries {
		rendered, err := ui.RenderMarkdown(string(contents[i]), c.width)
		if err != nil {
			return repl.Output{}, fmt.Errorf("render %s: %w", e.ID, err)
		}
		fmt.Fprintf(env.Out, "%s  %s\n", ui.Header(e.Name), ui.Hint(e.Created.Format(TimeLayout)))
		fmt.Fprint(env.Out, rendered)
	}
	return repl.Results(repl.JournalEntry, entryIDs(entries)), nil
}

type infoCmd struct {
	store *journal.Store
}

// NewInfo returns "info": print metadata and a content summary of
// referenced entries as YAML documents.
func NewInfo(store *journal.Store) repl.Command {
	return &infoCmd{store: store}
}

func (c *infoCmd) Spec() repl.Spec {
	return repl.Spec{
		Alias:    "info",
		Usage:    "<entry>...",
		Help:     "Print entry metadata as YAML",
		Args:     repl.MinimumNArgs(1),
		Consumes: repl.JournalEntry,
	}
}

func (c *infoCmd) Configure(*pflag.FlagSet) {}

// EntryInfo is the document info prints for one entry.
type EntryInfo struct {
	ID      string   `yaml:"id"`
	Path    string   `yaml:"path"`
	Name    string   `yaml:"name"`
	Created string   `yaml:"created"`
	Tags    []string `yaml:"tags"`
	Title   string   `yaml:"title,omitempty"`
	Words   int      `yaml:"words"`
	Bytes   int      `yaml:"bytes"`
}

func (c *infoCmd) Run(env repl.Env, args []string) (repl.Output, error) {
	entries, err := lookup(c.store, args)
	if err != nil {
		return repl.Output{}, err
	}
	contents, err := readAll(entries)
	if err != nil {
		return repl.Output{}, err
	}

	enc := yaml.NewEncoder(env.Out)
	enc.SetIndent(2)
	for i, e := range entries {
		title, words := summarize(contents[i])
		doc := EntryInfo{
			ID:      e.ID,
			Path:    e.Path,
			Name:    e.Name,
			Created: e.Created.Format(TimeLayout),
			Tags:    e.Tags,
			Title:   title,
			Words:   words,
			Bytes:   len(contents[i]),
		}
		if err := enc.Encode(doc); err != nil {
			return repl.Output{}, fmt.Errorf("encode %s: %w", e.ID, err)
		}
	}
	if err := enc.Close(); err != nil {
		return repl.Output{}, err
	}
	return repl.Results(repl.JournalEntry, entryIDs(entries)), nil
}

func readAll(entries []journal.Entry) ([][]byte, error) {
	out := make([][]byte, len(entries))
	for i, e := range entries {
		data, err := os.ReadFile(e.Path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.ID, err)
		}
		out[i] = data
	}
	return out, nil
}

// summarize returns the text of the first heading in a markdown document and
// the number of words in its text and code.
func summarize(source []byte) (title string, words int) {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var body strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if n.Type() == ast.TypeBlock {
			body.WriteByte(' ')
		}
		switch n := n.(type) {
		case *ast.Heading:
			if title == "" {
				title = strings.TrimSpace(inlineText(n, source))
			}
		case *ast.Text:
			body.Write(n.Segment.Value(source))
			if n.SoftLineBreak() || n.HardLineBreak() {
				body.WriteByte(' ')
			}
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				body.Write(seg.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return title, len(strings.Fields(body.String()))
}

// inlineText concatenates the text segments under n.
func inlineText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := child.(*ast.Text); ok && entering {
			sb.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
