package repl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// RefPrefix starts a back-reference token.
const RefPrefix = "@"

// maxRangeSize bounds "@N-M" so a typo cannot expand into a huge argument list.
const maxRangeSize = 1000

var (
	ErrInvalidReference = errors.New("invalid reference")
	ErrNoPrevious       = errors.New("no previous results to reference")
	ErrTypeMismatch     = errors.New("reference type mismatch")
	ErrOutOfRange       = errors.New("reference out of range")
)

// reference is a parsed "@N" or "@N-M" token. Indexes are 0-based and
// inclusive.
type reference struct {
	token      string
	start, end int
	pos        int // index in the argument list
}

// IsReference reports whether tok is written as a back-reference.
func IsReference(tok string) bool {
	return strings.HasPrefix(tok, RefPrefix)
}

// Resolve replaces every back-reference in args with the values it addresses
// in prev. Literal arguments pass through unchanged.
//
// Checks run in a fixed order: every reference must be well-formed, then prev
// must have results, then prev must be of type want, then every index must be
// in range.
func Resolve(args []string, prev Output, want ResultType) ([]string, error) {
	// refs is in argument order so the first bad token is the one reported.
	var refs []reference
	for i, arg := range args {
		if !IsReference(arg) {
			continue
		}
		ref, err := parseReference(arg)
		if err != nil {
			return nil, err
		}
		ref.pos = i
		refs = append(refs, ref)
	}

	out := make([]string, 0, len(args))
	if len(refs) == 0 {
		return append(out, args...), nil
	}

	if !prev.HasResults() {
		return nil, ErrNoPrevious
	}
	if prev.Type != want {
		return nil, fmt.Errorf("%w: previous results are %s, expected %s", ErrTypeMismatch, prev.Type, want)
	}
	for _, ref := range refs {
		if ref.end >= len(prev.Results) {
			return nil, fmt.Errorf("%w: %s (previous command returned %d result(s), valid: @0-@%d)",
				ErrOutOfRange, ref.token, len(prev.Results), len(prev.Results)-1)
		}
	}

	next := 0
	for i, arg := range args {
		if next == len(refs) || refs[next].pos != i {
			out = append(out, arg)
			continue
		}
		ref := refs[next]
		next++
		out = append(out, prev.Results[ref.start:ref.end+1]...)
	}
	return out, nil
}

func parseReference(tok string) (reference, error) {
	body := strings.TrimPrefix(tok, RefPrefix)

	lo, hi, isRange := strings.Cut(body, "-")
	start, err := parseIndex(lo)
	if err != nil {
		return reference{}, fmt.Errorf("%w: %q", ErrInvalidReference, tok)
	}
	end := start
	if isRange {
		end, err = parseIndex(hi)
		if err != nil {
			return reference{}, fmt.Errorf("%w: %q", ErrInvalidReference, tok)
		}
		if end < start {
			return reference{}, fmt.Errorf("%w: %q ends before it starts", ErrInvalidReference, tok)
		}
		if end-start+1 > maxRangeSize {
			return reference{}, fmt.Errorf("%w: %q is too large (max %d)", ErrInvalidReference, tok, maxRangeSize)
		}
	}
	return reference{token: tok, start: start, end: end}, nil
}

// parseIndex accepts only plain decimal digits.
func parseIndex(s string) (int, error) {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, fmt.Errorf("not an index: %q", s)
	}
	return strconv.Atoi(s)
}
