// Package slugs turns free-form entry names into filename-friendly slugs.
package slugs

import (
	"strings"

	goslug "github.com/gosimple/slug"
)

// Name slugifies an entry name, e.g. "Weekly Review: Q3" -> "weekly-review-q3".
// A trailing extension is kept apart from the slug so "Notes.md" becomes
// "notes.md". Names gosimple/slug reduces to nothing fall back to a
// lower-cased, dash-joined form of the input.
func Name(name string) string {
	name = strings.TrimSpace(name)
	ext := ""
	if dot := strings.LastIndex(name, "."); dot > 0 && !strings.ContainsAny(name[dot:], " ") {
		name, ext = name[:dot], strings.ToLower(name[dot:])
	}

	slugged := goslug.Make(name)
	if slugged == "" {
		slugged = strings.ToLower(strings.Join(strings.Fields(name), "-"))
	}
	return slugged + ext
}
