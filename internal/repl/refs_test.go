package repl

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	entries := Results(JournalEntry, []string{"a.md", "b.md", "c.md"})

	tests := []struct {
		name    string
		args    []string
		prev    Output
		want    []string
		wantErr error
	}{
		{name: "literals pass through", args: []string{"x", "y"}, prev: Neutral(), want: []string{"x", "y"}},
		{name: "no args", args: nil, prev: Neutral(), want: []string{}},
		{name: "single reference", args: []string{"@1"}, prev: entries, want: []string{"b.md"}},
		{name: "mixed", args: []string{"@2", "lit", "@0"}, prev: entries, want: []string{"c.md", "lit", "a.md"}},
		{name: "range", args: []string{"@0-2"}, prev: entries, want: []string{"a.md", "b.md", "c.md"}},
		{name: "single element range", args: []string{"@1-1"}, prev: entries, want: []string{"b.md"}},
		{name: "leading zeros", args: []string{"@01"}, prev: entries, want: []string{"b.md"}},
		{name: "not a number", args: []string{"@x"}, prev: entries, wantErr: ErrInvalidReference},
		{name: "bare prefix", args: []string{"@"}, prev: entries, wantErr: ErrInvalidReference},
		{name: "negative", args: []string{"@-1"}, prev: entries, wantErr: ErrInvalidReference},
		{name: "signed", args: []string{"@+1"}, prev: entries, wantErr: ErrInvalidReference},
		{name: "backwards range", args: []string{"@2-0"}, prev: entries, wantErr: ErrInvalidReference},
		{name: "open range", args: []string{"@1-"}, prev: entries, wantErr: ErrInvalidReference},
		{name: "huge range", args: []string{"@0-5000"}, prev: entries, wantErr: ErrInvalidReference},
		{name: "no previous output", args: []string{"@0"}, prev: Neutral(), wantErr: ErrNoPrevious},
		{name: "empty typed output", args: []string{"@0"}, prev: Results(JournalEntry, nil), wantErr: ErrNoPrevious},
		{name: "type mismatch", args: []string{"@0"}, prev: Results(Tag, []string{"work"}), wantErr: ErrTypeMismatch},
		{name: "out of range", args: []string{"@3"}, prev: entries, wantErr: ErrOutOfRange},
		{name: "range past end", args: []string{"@1-3"}, prev: entries, wantErr: ErrOutOfRange},
		{name: "syntax checked before emptiness", args: []string{"@0", "@zz"}, prev: Neutral(), wantErr: ErrInvalidReference},
		{name: "type checked before range", args: []string{"@9"}, prev: Results(Tag, []string{"work"}), wantErr: ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.args, tt.prev, JournalEntry)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Resolve() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestResolveReportsFirstOutOfRangeReference(t *testing.T) {
	prev := Results(JournalEntry, []string{"a.md", "b.md"})
	for i := 0; i < 20; i++ {
		_, err := Resolve([]string{"@0", "@5", "lit", "@9-10"}, prev, JournalEntry)
		if !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("Resolve() error = %v, want ErrOutOfRange", err)
		}
		if !strings.Contains(err.Error(), "@5 ") || strings.Contains(err.Error(), "@9") {
			t.Fatalf("Resolve() error = %q, want it to name @5", err)
		}
	}
}

func TestResolveDoesNotAliasPreviousResults(t *testing.T) {
	prev := Results(JournalEntry, []string{"a.md", "b.md"})
	got, err := Resolve([]string{"@0-1"}, prev, JournalEntry)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	got[0] = "changed"
	if prev.Results[0] != "a.md" {
		t.Fatalf("previous results modified through resolved args")
	}
}

func TestIsReference(t *testing.T) {
	if !IsReference("@3") || IsReference("3") || IsReference("a@3") {
		t.Fatal("IsReference mismatch")
	}
}

func TestOutputHasResults(t *testing.T) {
	tests := []struct {
		name string
		out  Output
		want bool
	}{
		{"neutral", Neutral(), false},
		{"exit", Exit(), false},
		{"typed empty", Results(Tag, nil), false},
		{"untyped values", Output{Results: []string{"x"}}, false},
		{"typed values", Results(Tag, []string{"x"}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.out.HasResults(); got != tt.want {
				t.Fatalf("HasResults() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExitOutput(t *testing.T) {
	quit := Exit()
	if !quit.Exit || len(quit.ExitArgs) != 0 {
		t.Fatalf("Exit() = %+v, want exit with no args", quit)
	}
	run := Exit("vim", "a.md")
	if !run.Exit || !reflect.DeepEqual(run.ExitArgs, []string{"vim", "a.md"}) {
		t.Fatalf("Exit(vim, a.md) = %+v", run)
	}
	if Neutral().Exit {
		t.Fatal("Neutral() must not exit")
	}
}
