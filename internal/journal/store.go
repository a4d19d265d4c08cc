// Package journal loads a directory of journal entries into an indexed,
// read-only snapshot.
//
// The store is built once from a directory listing and never changes
// afterwards. Modifying the directory while a store is loaded is undefined:
// the store keeps answering from its snapshot and paths it hands out may no
// longer exist. Reload by constructing a new Store; Entry values from an
// older store must not be passed to a newer one.
package journal

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/aidanlsb/jrnl/internal/filename"
)

// ErrUnknownID is returned by ByIDs for an id this store never issued.
// It signals a caller bug, not bad user input.
var ErrUnknownID = errors.New("journal: unknown entry id")

// Entry is the caller-facing view of one journal entry.
type Entry struct {
	// ID is the on-disk filename. It is unique within a store.
	ID string
	// Path is the absolute path of the file.
	Path string
	// Created is parsed from the filename, or filename.Epoch.
	Created time.Time
	// Name is the filename without its metadata fragments.
	Name string
	// Tags is sorted and de-duplicated.
	Tags []string
}

// record is the store-owned representation of an entry.
type record struct {
	id          string
	displayName string
	created     time.Time
	tags        []string
}

// Store is an immutable, indexed snapshot of a journal directory.
//
// Records live in a dense slice in directory order; every index maps keys
// to positions in that slice.
type Store struct {
	dir     string
	records []record
	byID    map[string]int
	byTag   map[string][]int
	byName  map[string][]int
}

// Options configures Load.
type Options struct {
	// Exclude holds regular expressions matched against bare filenames.
	// Matching is anchored at the start of the name.
	Exclude []string

	// Logger receives debug diagnostics. Nil uses slog.Default().
	Logger *slog.Logger
}

// Load scans dir and builds a store from every regular file whose name
// matches none of the exclusion patterns. Subdirectories are skipped.
// Any failure to read the directory or compile a pattern is returned and no
// store is built.
func Load(dir string, opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("journal: resolve dir: %w", err)
	}

	exclude, err := compilePatterns(opts.Exclude)
	if err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("journal: read dir: %w", err)
	}

	s := &Store{
		dir:     abs,
		records: make([]record, 0, len(dirEntries)),
		byID:    make(map[string]int, len(dirEntries)),
		byTag:   make(map[string][]int),
		byName:  make(map[string][]int),
	}

	excluded, skipped := 0, 0
	for _, de := range dirEntries {
		name := de.Name()
		if isExcluded(exclude, name) {
			excluded++
			continue
		}
		// Stat follows symlinks so linked files count as regular files.
		info, err := os.Stat(filepath.Join(abs, name))
		if err != nil {
			// Dangling or looping links and unreadable targets are not
			// regular files.
			logger.Debug("journal skip", slog.String("name", name), slog.String("error", err.Error()))
			skipped++
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		s.add(newRecord(name))
	}

	logger.Debug("journal loaded",
		slog.String("dir", abs),
		slog.Int("entries", len(s.records)),
		slog.Int("excluded", excluded),
		slog.Int("skipped", skipped))

	return s, nil
}

func newRecord(name string) record {
	meta := filename.Decode(name)
	return record{
		id:          name,
		displayName: meta.DisplayName(),
		created:     meta.Created,
		tags:        meta.Tags,
	}
}

func (s *Store) add(r record) {
	idx := len(s.records)
	s.records = append(s.records, r)
	s.byID[r.id] = idx
	s.byName[r.displayName] = append(s.byName[r.displayName], idx)
	for _, tag := range r.tags {
		s.byTag[tag] = append(s.byTag[tag], idx)
	}
}

// Dir returns the absolute journal directory.
func (s *Store) Dir() string {
	return s.dir
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.records)
}

// All returns every entry in directory order.
func (s *Store) All() []Entry {
	out := make([]Entry, len(s.records))
	for i := range s.records {
		out[i] = s.entry(i)
	}
	return out
}

// Tags returns the distinct tags in sorted order.
func (s *Store) Tags() []string {
	tags := make([]string, 0, len(s.byTag))
	for tag := range s.byTag {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// TagCount returns how many entries carry tag.
func (s *Store) TagCount(tag string) int {
	return len(s.byTag[tag])
}

// Has reports whether id names an entry of this store.
func (s *Store) Has(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// ByIDs returns the entries for ids, in the order given. Every id must have
// been issued by this store; otherwise ErrUnknownID is returned.
func (s *Store) ByIDs(ids []string) ([]Entry, error) {
	out := make([]Entry, 0, len(ids))
	for _, id := range ids {
		idx, ok := s.byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownID, id)
		}
		out = append(out, s.entry(idx))
	}
	return out, nil
}

// ByTag returns the entries carrying tag, or an empty slice.
func (s *Store) ByTag(tag string) []Entry {
	return s.entries(s.byTag[tag])
}

// ByName returns the entries whose display name contains substr.
// Matching is case-sensitive.
func (s *Store) ByName(substr string) []Entry {
	var idxs []int
	for name, positions := range s.byName {
		if strings.Contains(name, substr) {
			idxs = append(idxs, positions...)
		}
	}
	sort.Ints(idxs)
	return s.entries(idxs)
}

// ProposedPath returns the path a new entry with these attributes would
// occupy. Nothing is created. displayName may carry an extension, which is
// kept as the file's extension.
func (s *Store) ProposedPath(displayName string, created time.Time, tags []string) (string, error) {
	base, ext := filename.SplitExt(displayName)
	name, err := filename.Encode(base, ext, created, tags)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name), nil
}

func (s *Store) entries(idxs []int) []Entry {
	out := make([]Entry, len(idxs))
	for i, idx := range idxs {
		out[i] = s.entry(idx)
	}
	return out
}

func (s *Store) entry(idx int) Entry {
	r := s.records[idx]
	tags := make([]string, len(r.tags))
	copy(tags, r.tags)
	return Entry{
		ID:      r.id,
		Path:    filepath.Join(s.dir, r.id),
		Created: r.created,
		Name:    r.displayName,
		Tags:    tags,
	}
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(`^(?:` + p + `)`)
		if err != nil {
			return nil, fmt.Errorf("journal: exclude pattern %q: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

func isExcluded(patterns []*regexp.Regexp, name string) bool {
	for _, re := range patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}
