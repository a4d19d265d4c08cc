// Package testutil provides reusable fixtures for jrnl tests.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// TestJournal is a journal directory built in a temp dir.
type TestJournal struct {
	Path     string
	t        *testing.T
	files    map[string]string
	symlinks map[string]string
}

// NewTestJournal creates a new test journal builder.
// Call Build() to create the actual directory.
func NewTestJournal(t *testing.T) *TestJournal {
	t.Helper()
	return &TestJournal{
		t:        t,
		files:    make(map[string]string),
		symlinks: make(map[string]string),
	}
}

// WithEntry adds a file with the given name and content.
func (j *TestJournal) WithEntry(name, content string) *TestJournal {
	j.files[name] = content
	return j
}

// WithEntries adds empty files.
func (j *TestJournal) WithEntries(names ...string) *TestJournal {
	for _, name := range names {
		j.files[name] = ""
	}
	return j
}

// WithSymlink adds a symlink named name pointing at target. A relative
// target is resolved against the journal directory.
func (j *TestJournal) WithSymlink(name, target string) *TestJournal {
	j.symlinks[name] = target
	return j
}

// Build creates the directory, its files and then its symlinks.
func (j *TestJournal) Build() *TestJournal {
	j.t.Helper()
	j.Path = j.t.TempDir()

	for _, name := range sortedKeys(j.files) {
		full := filepath.Join(j.Path, name)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			j.t.Fatalf("failed to create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(full, []byte(j.files[name]), 0o644); err != nil {
			j.t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	for _, name := range sortedKeys(j.symlinks) {
		if err := os.Symlink(j.symlinks[name], filepath.Join(j.Path, name)); err != nil {
			j.t.Skipf("symlinks unavailable: %v", err)
		}
	}
	return j
}

// File returns the absolute path of name inside the journal.
func (j *TestJournal) File(name string) string {
	return filepath.Join(j.Path, name)
}

// Remove deletes name from the built journal.
func (j *TestJournal) Remove(name string) {
	j.t.Helper()
	if err := os.Remove(j.File(name)); err != nil {
		j.t.Fatalf("failed to remove %s: %v", name, err)
	}
}

// FileExists reports whether name exists in the journal.
func (j *TestJournal) FileExists(name string) bool {
	_, err := os.Lstat(j.File(name))
	return err == nil
}

// AssertFileNotExists fails the test if name exists.
func (j *TestJournal) AssertFileNotExists(name string) {
	j.t.Helper()
	if j.FileExists(name) {
		j.t.Errorf("expected file to not exist: %s", name)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
