// Package filename encodes journal entry metadata into on-disk filenames and
// decodes it back.
//
// A journal filename has up to three "~"-separated fragments followed by an
// optional extension:
//
//	<name>~<YYYY-MM-DD_HH-MM-SS>~<tag1,tag2,...><.ext>
//
// Examples:
//   - "standup~2024-03-01_09-30-00~work,meetings.md"
//   - "ideas~2019-06-02.txt" (legacy date-only timestamp, no tags)
//   - "plainfile.txt" (no metadata at all)
//
// Decoding never fails: a missing or unparsable timestamp becomes Epoch and
// missing tags become an empty list, so legacy files stay loadable.
//
// Timestamps are local wall-clock time with no UTC offset. A wall time that
// occurs twice, such as 01:30 on a daylight-saving fall-back day, decodes to
// a single instant chosen by the time package, so two entries created an
// hour apart in the repeated hour may decode to the same moment. The wall
// clock itself always round-trips.
package filename

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	// Separator delimits the name, timestamp and tag fragments.
	Separator = "~"

	// TagSeparator joins tags inside the tag fragment.
	TagSeparator = ","

	// TimestampLayout is the layout written by Encode.
	TimestampLayout = "2006-01-02_15-04-05"

	// DateLayout is the coarser legacy layout accepted by Decode.
	DateLayout = "2006-01-02"
)

// Epoch is the creation time assumed for entries whose filename carries no
// parsable timestamp.
var Epoch = time.Date(1970, 1, 1, 0, 0, 0, 0, time.Local)

// decodeLayouts are tried in order; the first successful parse wins.
var decodeLayouts = []string{TimestampLayout, DateLayout}

var (
	// ErrInvalidName is returned when a base name cannot be encoded losslessly.
	ErrInvalidName = errors.New("invalid entry name")

	// ErrInvalidTag is returned when a tag cannot be encoded losslessly.
	ErrInvalidTag = errors.New("invalid tag")
)

// Metadata is the decoded form of a journal filename.
type Metadata struct {
	// Base is the name fragment without the extension.
	Base string
	// Ext is the extension including its leading dot, or "".
	Ext string
	// Created is the parsed creation time, or Epoch.
	Created time.Time
	// Tags is sorted and de-duplicated.
	Tags []string
}

// DisplayName returns the base name with the extension re-attached.
func (m Metadata) DisplayName() string {
	return m.Base + m.Ext
}

// Encode builds the filename for an entry. Tags are sorted and
// de-duplicated, the timestamp is written in local time at one-second
// resolution, and the tag fragment is omitted when there are no tags.
func Encode(base, ext string, created time.Time, tags []string) (string, error) {
	if err := ValidateName(base); err != nil {
		return "", err
	}
	ext = normalizeExt(ext)
	if strings.Contains(ext, Separator) || strings.Count(ext, ".") > 1 {
		return "", fmt.Errorf("%w: extension %q", ErrInvalidName, ext)
	}
	// Without an extension, a dot in the name would be read back as one.
	if ext == "" && strings.Contains(strings.TrimLeft(base, "."), ".") {
		return "", fmt.Errorf("%w: %q needs an extension", ErrInvalidName, base)
	}
	for _, tag := range tags {
		if err := ValidateTag(tag); err != nil {
			return "", err
		}
	}

	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString(Separator)
	sb.WriteString(created.Local().Format(TimestampLayout))
	if normalized := NormalizeTags(tags); len(normalized) > 0 {
		sb.WriteString(Separator)
		sb.WriteString(strings.Join(normalized, TagSeparator))
	}
	sb.WriteString(ext)
	return sb.String(), nil
}

// Decode splits a filename into its metadata. Zero, one or two separators are
// accepted; fragments past the third are ignored.
func Decode(name string) Metadata {
	stem, ext := SplitExt(name)

	fragments := strings.Split(stem, Separator)
	meta := Metadata{
		Base:    fragments[0],
		Ext:     ext,
		Created: Epoch,
		Tags:    []string{},
	}
	if len(fragments) >= 2 {
		meta.Created = parseTimestamp(fragments[1])
	}
	if len(fragments) >= 3 && fragments[2] != "" {
		meta.Tags = NormalizeTags(strings.Split(fragments[2], TagSeparator))
	}
	return meta
}

// SplitExt splits name into stem and extension the way a filename is usually
// read by people: the extension is the suffix starting at the last dot, and
// leading dots (as in ".bashrc") never start an extension.
func SplitExt(name string) (stem, ext string) {
	dot := strings.LastIndex(name, ".")
	if dot <= 0 {
		return name, ""
	}
	// Only leading dots precede this one: "..rc" has no extension.
	if strings.TrimLeft(name[:dot], ".") == "" {
		return name, ""
	}
	return name[:dot], name[dot:]
}

// NormalizeTags returns tags sorted, de-duplicated and without empty strings.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// ValidateName reports whether base can be used as the name fragment.
func ValidateName(base string) error {
	switch {
	case strings.TrimSpace(base) == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	case strings.Contains(base, Separator):
		return fmt.Errorf("%w: %q contains %q", ErrInvalidName, base, Separator)
	case strings.ContainsAny(base, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, base)
	}
	return nil
}

// ValidateTag reports whether tag survives an encode/decode round trip.
func ValidateTag(tag string) error {
	switch {
	case tag == "":
		return fmt.Errorf("%w: tag is empty", ErrInvalidTag)
	case strings.ContainsAny(tag, Separator+TagSeparator+`./\`):
		return fmt.Errorf("%w: %q", ErrInvalidTag, tag)
	}
	return nil
}

func parseTimestamp(s string) time.Time {
	for _, layout := range decodeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return Epoch
}

func normalizeExt(ext string) string {
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}
