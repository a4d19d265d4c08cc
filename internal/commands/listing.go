package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/pflag"

	"github.com/aidanlsb/jrnl/internal/journal"
	"github.com/aidanlsb/jrnl/internal/repl"
	"github.com/aidanlsb/jrnl/internal/ui"
)

// TimeLayout is how creation times are shown in listings.
const TimeLayout = "2006-01-02 15:04:05"

// SortKey orders listed entries. It implements pflag.Value.
type SortKey string

const (
	SortTime SortKey = "time"
	SortName SortKey = "name"
)

func (k *SortKey) String() string { return string(*k) }

func (k *SortKey) Set(v string) error {
	switch key := SortKey(strings.ToLower(v)); key {
	case SortTime, SortName:
		*k = key
		return nil
	default:
		return fmt.Errorf("must be %q or %q", SortTime, SortName)
	}
}

func (k *SortKey) Type() string { return "time|name" }

// Listing is embedded by commands that print entries and return them as
// JOURNAL_ENTRY results. It contributes the -s/--sort and -r/--reverse flags.
type Listing struct {
	sortKey SortKey
	reverse bool
}

func (l *Listing) configureListing(fs *pflag.FlagSet) {
	l.sortKey = SortTime
	l.reverse = false
	fs.VarP(&l.sortKey, "sort", "s", "sort by time or name")
	fs.BoolVarP(&l.reverse, "reverse", "r", false, "reverse the sort order")
}

// list sorts entries, prints one numbered row per entry and returns their
// ids in printed order.
func (l *Listing) list(w io.Writer, entries []journal.Entry) repl.Output {
	SortEntries(entries, l.sortKey, l.reverse)

	if len(entries) == 0 {
		fmt.Fprintln(w, ui.Hint("  No results"))
		return repl.Results(repl.JournalEntry, nil)
	}

	tbl := ui.NewTable(4)
	for i, e := range entries {
		tbl.AddRow(
			ui.Ref(i),
			ui.Hint(e.Created.Format(TimeLayout)),
			ui.Accent.Render(e.Name),
			ui.Hint(strings.Join(e.Tags, " ")),
		)
	}
	fmt.Fprint(w, tbl.String())

	return repl.Results(repl.JournalEntry, entryIDs(entries))
}

// SortEntries sorts entries in place by key. The sort is stable and reverse
// flips the comparison, so equal entries keep their retrieval order either way.
func SortEntries(entries []journal.Entry, key SortKey, reverse bool) {
	less := func(a, b journal.Entry) bool {
		if key == SortName {
			return a.Name < b.Name
		}
		return a.Created.Before(b.Created)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if reverse {
			return less(entries[j], entries[i])
		}
		return less(entries[i], entries[j])
	})
}
