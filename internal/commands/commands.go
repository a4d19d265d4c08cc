// Package commands implements the journal prompt's built-in commands on top
// of the repl framework.
package commands

import (
	"fmt"
	"time"

	"github.com/aidanlsb/jrnl/internal/journal"
	"github.com/aidanlsb/jrnl/internal/repl"
)

// Deps is what the built-in commands need from the process.
type Deps struct {
	Store *journal.Store
	// Editor is the editor command line used by open and new.
	Editor string
	// Extension is the default extension for new entries.
	Extension string
	// Width is the column width show renders markdown to.
	Width int
	// Now returns the creation time for new entries. Nil uses time.Now.
	Now func() time.Time
}

// All returns the built-in commands in the order help lists them.
func All(deps Deps) []repl.Command {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return []repl.Command{
		NewList(deps.Store),
		NewFind(deps.Store),
		NewTags(deps.Store),
		NewPick(deps.Store),
		NewShow(deps.Store, deps.Width),
		NewInfo(deps.Store),
		NewOpen(deps.Store, deps.Editor),
		NewEntry(deps.Store, deps.Editor, deps.Extension, now),
		NewQuit("quit"),
		NewQuit("exit"),
	}
}

// Register adds every built-in command to r.
func Register(r *repl.Router, deps Deps) error {
	for _, cmd := range All(deps) {
		if err := r.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}

// lookup returns the entries for ids. Ids typed by the user that the store
// does not know are input errors; an id the store rejects after that check
// means a back-reference outlived its store, which is fatal.
func lookup(store *journal.Store, ids []string) ([]journal.Entry, error) {
	for _, id := range ids {
		if !store.Has(id) {
			return nil, fmt.Errorf("no entry named %q (use @N to refer to listed entries)", id)
		}
	}
	entries, err := store.ByIDs(ids)
	if err != nil {
		return nil, repl.Fatal(err)
	}
	return entries, nil
}

func entryIDs(entries []journal.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}
