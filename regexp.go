/*
 * ptyexpect: drive interactive child processes through a pseudo-terminal
 * Copyright 2024 ptyexpect contributors
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

package ptyexpect

import (
	"fmt"

	pcre "github.com/gijsbers/go-pcre"
)

// Regexp wraps a compiled PCRE pattern. The caller compiles patterns once
// (they're expensive to build) and reuses them across many Expect calls, the
// same lifecycle miniexpect.h documents for its opaque `pcre *re` field.
type Regexp struct {
	compiled pcre.Regexp
}

// Compile compiles a PCRE pattern for use in a RegexpEntry. It returns an
// error rather than panicking, unlike pcre.MustCompile, because malformed
// patterns are routinely caller input (e.g. a flag value) rather than a
// programmer mistake.
func Compile(pattern string) (*Regexp, error) {
	compiled, err := pcre.Compile(pattern, 0)
	if err != "" {
		return nil, fmt.Errorf("compile regexp %q: %s", pattern, err)
	}
	return &Regexp{compiled: compiled}, nil
}

// RegexpEntry is one element of the ordered list passed to Expect. Tag must
// be strictly positive; a zero-tag entry is how the C API terminates its
// array, but in Go the list length already does that job. Expect skips an
// entry whose Tag is below 1 and goes on with the rest of the list; such an
// entry does not end the list.
type RegexpEntry struct {
	// Tag is returned from Expect when this entry's Re fully matches. Must
	// be >= 1.
	Tag int
	// Re is the compiled pattern to try, in list order.
	Re *Regexp
	// Options are extra PCRE exec-time option bits, ORed with the
	// partial-soft flag Expect always sets.
	Options int
}

// MatchData is an opaque, reusable capture-group container. Callers create
// one per Handle (or share one across handles that are never used
// concurrently) and pass it to Expect; the library only populates it, and
// extracting substrings is the caller's job via Group.
type MatchData struct {
	matcher *pcre.Matcher
}

// NewMatchData allocates a reusable match-data object. The argument is
// ignored: after a match the object holds whatever capture groups the
// matching pattern defines.
func NewMatchData(_ int) *MatchData {
	return &MatchData{}
}

// Group returns capture group n (0 is the whole match) from the most recent
// successful match, or nil if that group did not participate.
func (md *MatchData) Group(n int) []byte {
	if md == nil || md.matcher == nil {
		return nil
	}
	if !md.matcher.Present(n) {
		return nil
	}
	return md.matcher.Group(n)
}

// GroupString is Group as a string.
func (md *MatchData) GroupString(n int) string {
	b := md.Group(n)
	if b == nil {
		return ""
	}
	return string(b)
}

// regexpError wraps a raw PCRE result code as a Go error for StatusRegexpError
// returns.
func regexpError(code int) error {
	return fmt.Errorf("pcre match error: code %d", code)
}

// pcreErrNoMatch and pcreErrPartial mirror libpcre's PCRE_ERROR_NOMATCH (-1)
// and PCRE_ERROR_PARTIAL (-12), the two non-error result codes mexp_expect's
// match step treats specially.
const (
	pcreErrNoMatch = -1
	pcreErrPartial = -12
)

// execPartialSoft runs one PCRE exec attempt over buf with partial-soft
// matching enabled, mirroring mexp_expect's inner loop body for a single
// regexp entry.
//
// It returns:
//   - matched=true, end = the byte offset just past the whole match (ovector[1])
//   - matched=false, partial=true if this is a PCRE2_ERROR_PARTIAL-equivalent result
//   - matched=false, partial=false, code=pcreErrNoMatch on no match
//
// These are its only results; it never returns any other code, so an
// engine error is not reported through code.
func (re *Regexp) execPartialSoft(buf []byte, options int, md *MatchData) (matched, partial bool, end, code int) {
	matcher := re.compiled.Matcher(buf, pcre.PARTIAL_SOFT|options)
	if md != nil {
		md.matcher = matcher
	}

	if matcher.Matches() {
		groupEnd := matcher.Index()
		if len(groupEnd) >= 2 {
			end = groupEnd[1]
		} else {
			end = -1
		}
		return true, false, end, 0
	}

	switch {
	case matcher.IsPartial():
		return false, true, -1, pcreErrPartial
	default:
		return false, false, -1, pcreErrNoMatch
	}
}
