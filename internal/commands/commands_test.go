package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/jrnl/internal/journal"
	"github.com/aidanlsb/jrnl/internal/repl"
	"github.com/aidanlsb/jrnl/internal/testutil"
	"github.com/aidanlsb/jrnl/internal/ui"
)

func TestMain(m *testing.M) {
	ui.SetColorEnabled(false)
	os.Exit(m.Run())
}

const (
	alphaID = "alpha~2024-01-03_09-00-00~work,ideas.md"
	betaID  = "beta~2024-01-01_09-00-00~work.md"
	gammaID = "gamma~2024-01-02_09-00-00.txt"
	plainID = "plainfile.txt"
)

var fixedNow = time.Date(2024, 5, 6, 7, 8, 9, 500, time.Local)

type harness struct {
	store  *journal.Store
	router *repl.Router
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	j := testutil.NewTestJournal(t).
		WithEntry(alphaID, "# Alpha plan\n\nSome words here.\n").
		WithEntry(betaID, "beta body\n").
		WithEntry(gammaID, "gamma\n").
		WithEntries(plainID).
		Build()

	store, err := journal.Load(j.Path, journal.Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	h := &harness{store: store, out: &bytes.Buffer{}, errOut: &bytes.Buffer{}}
	h.router = repl.NewRouter(h.out, h.errOut, nil)
	err = Register(h.router, Deps{
		Store:     store,
		Editor:    "vim",
		Extension: ".md",
		Width:     80,
		Now:       func() time.Time { return fixedNow },
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return h
}

// run feeds one line to the router and fails the test on fatal errors.
func (h *harness) run(t *testing.T, line string) repl.Output {
	t.Helper()
	h.out.Reset()
	h.errOut.Reset()
	out, err := h.router.Handle(strings.Fields(line))
	if err != nil {
		t.Fatalf("%q: fatal error %v", line, err)
	}
	return out
}

func (h *harness) path(id string) string {
	return filepath.Join(h.store.Dir(), id)
}

func TestRegisterOrderAndDuplicates(t *testing.T) {
	h := newHarness(t)
	want := []string{"ls", "find", "tags", "pick", "show", "info", "open", "new", "quit", "exit"}
	if got := h.router.Aliases(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Aliases() = %v, want %v", got, want)
	}
	if err := Register(h.router, Deps{Store: h.store}); err == nil {
		t.Fatal("registering the built-ins twice should fail")
	}
}

func TestList(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"ls", []string{plainID, betaID, gammaID, alphaID}},
		{"ls -r", []string{alphaID, gammaID, betaID, plainID}},
		{"ls -s name", []string{alphaID, betaID, gammaID, plainID}},
		{"ls --sort NAME --reverse", []string{plainID, gammaID, betaID, alphaID}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			h := newHarness(t)
			out := h.run(t, tt.line)
			if out.Type != repl.JournalEntry || out.Exit {
				t.Fatalf("output = %+v", out)
			}
			if !reflect.DeepEqual(out.Results, tt.want) {
				t.Fatalf("results = %v, want %v", out.Results, tt.want)
			}
		})
	}
}

func TestListRendering(t *testing.T) {
	h := newHarness(t)
	h.run(t, "ls")

	lines := strings.Split(strings.TrimRight(h.out.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 rows, got %q", h.out.String())
	}
	if !strings.HasPrefix(lines[0], "@0") || !strings.Contains(lines[0], "1970-01-01 00:00:00") || !strings.Contains(lines[0], plainID) {
		t.Errorf("row 0 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[3], "@3") || !strings.Contains(lines[3], "alpha.md") || !strings.HasSuffix(lines[3], "ideas work") {
		t.Errorf("row 3 = %q", lines[3])
	}
}

func TestListRejectsBadInput(t *testing.T) {
	h := newHarness(t)
	for _, line := range []string{"ls -s size", "ls extra", "ls --bogus"} {
		out := h.run(t, line)
		if out.HasResults() {
			t.Errorf("%q produced results", line)
		}
		if !strings.Contains(h.errOut.String(), ui.SymbolError) {
			t.Errorf("%q: no error reported", line)
		}
	}
}

func TestSortEntriesIsStable(t *testing.T) {
	same := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	entries := []journal.Entry{
		{ID: "1", Name: "b", Created: same},
		{ID: "2", Name: "a", Created: same},
		{ID: "3", Name: "a", Created: same.Add(time.Hour)},
	}

	tests := []struct {
		key     SortKey
		reverse bool
		want    []string
	}{
		{SortTime, false, []string{"1", "2", "3"}},
		{SortTime, true, []string{"3", "1", "2"}},
		{SortName, false, []string{"2", "3", "1"}},
		{SortName, true, []string{"1", "2", "3"}},
	}

	for _, tt := range tests {
		got := make([]journal.Entry, len(entries))
		copy(got, entries)
		SortEntries(got, tt.key, tt.reverse)
		if ids := entryIDs(got); !reflect.DeepEqual(ids, tt.want) {
			t.Errorf("SortEntries(%s, reverse=%v) = %v, want %v", tt.key, tt.reverse, ids, tt.want)
		}
	}
}

func TestEmptyListing(t *testing.T) {
	h := newHarness(t)
	out := h.run(t, "find nothing-matches")
	if out.Type != repl.JournalEntry || len(out.Results) != 0 {
		t.Fatalf("output = %+v, want empty JOURNAL_ENTRY", out)
	}
	if strings.TrimSpace(h.out.String()) != "No results" {
		t.Fatalf("output text = %q", h.out.String())
	}
}

func TestFind(t *testing.T) {
	h := newHarness(t)

	if out := h.run(t, "find -t work"); !reflect.DeepEqual(out.Results, []string{betaID, alphaID}) {
		t.Errorf("find -t work = %v", out.Results)
	}
	if out := h.run(t, "find lph"); !reflect.DeepEqual(out.Results, []string{alphaID}) {
		t.Errorf("find lph = %v", out.Results)
	}
	if out := h.run(t, "find Alpha"); len(out.Results) != 0 {
		t.Errorf("find is case-sensitive, got %v", out.Results)
	}

	out := h.run(t, "find")
	if out.HasResults() || !strings.Contains(h.errOut.String(), "accepts 1 arg(s)") {
		t.Errorf("find without term: %+v %q", out, h.errOut.String())
	}
}

func TestTagsFeedFind(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "tags -c")
	if out.Type != repl.Tag || !reflect.DeepEqual(out.Results, []string{"ideas", "work"}) {
		t.Fatalf("tags = %+v", out)
	}
	lines := strings.Split(strings.TrimRight(h.out.String(), "\n"), "\n")
	if len(lines) != 2 || !reflect.DeepEqual(strings.Fields(lines[1]), []string{"@1", "work", "2"}) {
		t.Errorf("tag counts = %q", h.out.String())
	}

	out = h.run(t, "find -t @1")
	if !reflect.DeepEqual(out.Results, []string{betaID, alphaID}) {
		t.Fatalf("find -t @1 = %v", out.Results)
	}
}

func TestOpen(t *testing.T) {
	h := newHarness(t)

	h.run(t, "ls -s name")
	out := h.run(t, "open @1")
	if !out.Exit {
		t.Fatal("open should leave the prompt")
	}
	if want := []string{"vim", h.path(betaID)}; !reflect.DeepEqual(out.ExitArgs, want) {
		t.Fatalf("ExitArgs = %v, want %v", out.ExitArgs, want)
	}
	if out.Type != repl.JournalEntry || !reflect.DeepEqual(out.Results, []string{betaID}) {
		t.Fatalf("open output = %+v", out)
	}

	h.run(t, "ls -s name")
	out = h.run(t, "open @0-1 @3")
	if want := []string{"vim", h.path(alphaID), h.path(betaID), h.path(plainID)}; !reflect.DeepEqual(out.ExitArgs, want) {
		t.Fatalf("ExitArgs = %v, want %v", out.ExitArgs, want)
	}
}

func TestOpenReferenceErrors(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "open @0")
	if out.Exit || !strings.Contains(h.errOut.String(), repl.ErrNoPrevious.Error()) {
		t.Fatalf("open at start: %+v %q", out, h.errOut.String())
	}

	h.run(t, "tags")
	out = h.run(t, "open @0")
	if out.Exit || !strings.Contains(h.errOut.String(), repl.ErrTypeMismatch.Error()) {
		t.Fatalf("open after tags: %+v %q", out, h.errOut.String())
	}

	h.run(t, "ls")
	out = h.run(t, "open @4")
	if out.Exit || !strings.Contains(h.errOut.String(), repl.ErrOutOfRange.Error()) {
		t.Fatalf("open out of range: %+v %q", out, h.errOut.String())
	}

	out = h.run(t, "open not-an-entry.md")
	if out.Exit || !strings.Contains(h.errOut.String(), `no entry named "not-an-entry.md"`) {
		t.Fatalf("open unknown id: %+v %q", out, h.errOut.String())
	}
}

func TestOpenLiteralID(t *testing.T) {
	h := newHarness(t)
	out := h.run(t, "open "+plainID)
	if !reflect.DeepEqual(out.ExitArgs, []string{"vim", h.path(plainID)}) {
		t.Fatalf("ExitArgs = %v", out.ExitArgs)
	}
}

func TestPickNarrowsResults(t *testing.T) {
	h := newHarness(t)

	h.run(t, "ls")
	out := h.run(t, "pick -s name @3 @1")
	if !reflect.DeepEqual(out.Results, []string{alphaID, betaID}) {
		t.Fatalf("pick = %v", out.Results)
	}
	if out.Exit {
		t.Fatal("pick should not leave the prompt")
	}

	out = h.run(t, "open @1")
	if !reflect.DeepEqual(out.ExitArgs, []string{"vim", h.path(betaID)}) {
		t.Fatalf("open after pick = %v", out.ExitArgs)
	}
}

func TestShow(t *testing.T) {
	h := newHarness(t)

	h.run(t, "find -t ideas")
	out := h.run(t, "show @0")
	if !reflect.DeepEqual(out.Results, []string{alphaID}) || out.Type != repl.JournalEntry {
		t.Fatalf("show output = %+v", out)
	}
	for _, want := range []string{"alpha.md", "Alpha plan", "Some words here."} {
		if !strings.Contains(h.out.String(), want) {
			t.Errorf("show output missing %q: %q", want, h.out.String())
		}
	}
}

func TestShowUnreadableEntry(t *testing.T) {
	h := newHarness(t)
	h.run(t, "ls")
	if err := os.Remove(h.path(plainID)); err != nil {
		t.Fatal(err)
	}

	out := h.run(t, "show @0")
	if out.HasResults() || !strings.Contains(h.errOut.String(), "read "+plainID) {
		t.Fatalf("show missing file: %+v %q", out, h.errOut.String())
	}
}

func TestInfo(t *testing.T) {
	h := newHarness(t)

	h.run(t, "ls")
	out := h.run(t, "info @3 @1")
	if !reflect.DeepEqual(out.Results, []string{alphaID, betaID}) {
		t.Fatalf("info results = %v", out.Results)
	}

	dec := yaml.NewDecoder(strings.NewReader(h.out.String()))
	var docs []EntryInfo
	for {
		var doc EntryInfo
		if err := dec.Decode(&doc); err != nil {
			break
		}
		docs = append(docs, doc)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 YAML documents, got %d in %q", len(docs), h.out.String())
	}

	alpha := docs[0]
	if alpha.ID != alphaID || alpha.Name != "alpha.md" || alpha.Title != "Alpha plan" {
		t.Errorf("alpha info = %+v", alpha)
	}
	if alpha.Words != 5 || alpha.Bytes != len("# Alpha plan\n\nSome words here.\n") {
		t.Errorf("alpha counts = %d words, %d bytes", alpha.Words, alpha.Bytes)
	}
	if alpha.Created != "2024-01-03 09:00:00" || !reflect.DeepEqual(alpha.Tags, []string{"ideas", "work"}) {
		t.Errorf("alpha metadata = %+v", alpha)
	}
	if docs[1].Title != "" || docs[1].Words != 2 {
		t.Errorf("beta info = %+v", docs[1])
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		title string
		words int
	}{
		{name: "empty", src: "", title: "", words: 0},
		{name: "no heading", src: "just two", title: "", words: 2},
		{name: "second level heading", src: "intro\n\n## Later *bold* title\n", title: "Later bold title", words: 4},
		{name: "emphasis inside word", src: "foo*bar* baz", words: 2},
		{name: "soft breaks", src: "one\ntwo\nthree", words: 3},
		{name: "code block", src: "# T\n\n```\nfmt.Println(x)\ny := 1\n```\n", title: "T", words: 5},
		{name: "list", src: "- a\n- b c\n", words: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, words := summarize([]byte(tt.src))
			if title != tt.title || words != tt.words {
				t.Fatalf("summarize(%q) = (%q, %d), want (%q, %d)", tt.src, title, words, tt.title, tt.words)
			}
		})
	}
}

func TestNew(t *testing.T) {
	stamp := "2024-05-06_07-08-09"

	tests := []struct {
		line string
		want string
	}{
		{"new Trip notes", "Trip notes~" + stamp + ".md"},
		{"new -t travel,oslo Trip notes", "Trip notes~" + stamp + "~oslo,travel.md"},
		{"new -t b -t a x", "x~" + stamp + "~a,b.md"},
		{"new --slug Trip Notes: Oslo", "trip-notes-oslo~" + stamp + ".md"},
		{"new -e txt todo", "todo~" + stamp + ".txt"},
		{"new @0 literal", "@0 literal~" + stamp + ".md"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			h := newHarness(t)
			out := h.run(t, tt.line)
			if !out.Exit {
				t.Fatalf("new did not exit: %q", h.errOut.String())
			}
			if want := []string{"vim", h.path(tt.want)}; !reflect.DeepEqual(out.ExitArgs, want) {
				t.Fatalf("ExitArgs = %v, want %v", out.ExitArgs, want)
			}
			if _, err := os.Stat(h.path(tt.want)); !os.IsNotExist(err) {
				t.Fatalf("new must not create the file: %v", err)
			}
		})
	}
}

func TestNewRejectsBadNames(t *testing.T) {
	for _, line := range []string{"new bad~name", "new -t x.y thing", "new -t a~b thing", "new a/b", "new"} {
		t.Run(line, func(t *testing.T) {
			h := newHarness(t)
			out := h.run(t, line)
			if out.Exit {
				t.Fatalf("%q exited with %v", line, out.ExitArgs)
			}
			if !strings.Contains(h.errOut.String(), ui.SymbolError) {
				t.Fatalf("%q: no error reported", line)
			}
		})
	}
}

func TestNewRefusesExistingFile(t *testing.T) {
	h := newHarness(t)
	existing := "dup~2024-05-06_07-08-09.md"
	if err := os.WriteFile(h.path(existing), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	out := h.run(t, "new dup")
	if out.Exit || !strings.Contains(h.errOut.String(), "already exists") {
		t.Fatalf("new over existing: %+v %q", out, h.errOut.String())
	}
}

func TestQuit(t *testing.T) {
	for _, alias := range []string{"quit", "EXIT"} {
		h := newHarness(t)
		out := h.run(t, alias)
		if !out.Exit || out.ExitArgs != nil || out.HasResults() {
			t.Fatalf("%s = %+v, want exit without args", alias, out)
		}
		if out := h.run(t, alias+" now"); out.Exit {
			t.Fatalf("%s with args should be rejected", alias)
		}
	}
}
