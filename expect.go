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
	"errors"
	"time"

	"golang.org/x/sys/unix"
)

// Expect polls the child's pty for output and matches it against regexps in
// list order, with partial-match awareness, carrying any unmatched suffix
// over to the next call.
//
// regexps may be nil or empty, in which case Expect only waits for
// StatusEOF/StatusTimeout/StatusError -- it never attempts a match.
//
// On a full match, Expect returns (tag, 0, nil) where tag is the matching
// entry's Tag. Otherwise it returns (0, status, err) with err set for
// StatusError and StatusRegexpError.
func Expect(h *Handle, regexps []RegexpEntry, md *MatchData) (tag int, status Status, err error) {
	start := time.Now()

	if h.nextMatch == -1 {
		h.buffer = nil
	} else {
		// Shift the unconsumed suffix to the front and try matching it
		// before polling/reading again -- the carry-over may already
		// contain another match (see test-multi-match.c).
		copy(h.buffer, h.buffer[h.nextMatch:])
		h.buffer = h.buffer[:len(h.buffer)-h.nextMatch]
		h.nextMatch = -1
		if tag, status, err, done := h.tryMatch(regexps, md); done {
			return tag, status, err
		}
	}

	for {
		remaining := h.remainingTimeout(start)

		pfds := []unix.PollFd{{Fd: int32(h.fd.Fd()), Events: unix.POLLIN}}
		n, perr := unix.Poll(pfds, remaining)
		h.debugf("DEBUG: poll returned %d\n", n)
		if perr != nil {
			return 0, StatusError, perr
		}
		if n == 0 {
			return 0, StatusTimeout, nil
		}

		if err := h.ensureCapacity(); err != nil {
			return 0, StatusError, err
		}

		oldLen := len(h.buffer)
		h.buffer = h.buffer[:oldLen+h.ReadSize]
		rs, rerr := unix.Read(int(h.fd.Fd()), h.buffer[oldLen:oldLen+h.ReadSize])
		h.debugf("DEBUG: read returned %d\n", rs)
		if rerr != nil {
			h.buffer = h.buffer[:oldLen]
			// On Linux, once the last writer closes a pty, the kernel
			// destroys it, and a pending read fails with EIO rather than
			// returning 0. Reinterpret that as EOF.
			if errors.Is(rerr, unix.EIO) {
				return 0, StatusEOF, nil
			}
			return 0, StatusError, rerr
		}
		if rs == 0 {
			h.buffer = h.buffer[:oldLen]
			return 0, StatusEOF, nil
		}

		h.buffer = h.buffer[:oldLen+rs]
		if h.DebugSink != nil {
			h.debugf("DEBUG: read %d bytes from pty\n", rs)
			h.debugf("DEBUG: buffer content: %s\n", escapeForDebug(h.buffer))
		}

		if tag, status, err, done := h.tryMatch(regexps, md); done {
			return tag, status, err
		}
	}
}

// remainingTimeout computes the poll(2) timeout in milliseconds for this
// iteration, per spec: a negative Handle.Timeout is NOT "wait forever" --
// the underlying C source treats negative timeouts identically to zero
// (immediate, non-blocking poll), and this library documents that as
// normative rather than "fixing" it to mean infinite.
func (h *Handle) remainingTimeout(start time.Time) int {
	if h.Timeout < 0 {
		return 0
	}
	elapsed := time.Since(start)
	remaining := h.Timeout - elapsed
	if remaining < 0 {
		return 0
	}
	return int(remaining / time.Millisecond)
}

// ensureCapacity grows the buffer so at least ReadSize+1 bytes are available
// beyond the current length, reserving the +1 for a trailing NUL the way
// miniexpect's realloc does (kept for debug-string compatibility even though
// Go slices don't need a NUL terminator to know their own length).
func (h *Handle) ensureCapacity() error {
	if cap(h.buffer)-len(h.buffer) > h.ReadSize {
		return nil
	}
	grown := make([]byte, len(h.buffer), cap(h.buffer)+h.ReadSize+1)
	copy(grown, h.buffer)
	h.buffer = grown
	return nil
}

// tryMatch runs the match step (spec.md §4.3 step 3f/3g) once over the
// current buffer. done is true when Expect should return immediately;
// otherwise the caller should go back to polling.
func (h *Handle) tryMatch(regexps []RegexpEntry, md *MatchData) (tag int, status Status, err error, done bool) {
	if len(regexps) == 0 {
		return 0, 0, nil, false
	}

	canClearBuffer := true

	for _, entry := range regexps {
		if entry.Tag <= 0 {
			continue
		}

		matched, partial, end, code := entry.Re.execPartialSoft(h.buffer, entry.Options, md)
		h.pcreError = code

		if matched {
			if md != nil && end >= 0 {
				h.nextMatch = end
			} else {
				h.nextMatch = -1
			}
			h.debugf("DEBUG: next_match at buffer offset %d\n", h.nextMatch)
			return entry.Tag, 0, nil, true
		}

		if partial {
			canClearBuffer = false
			continue
		}

		if code != pcreErrNoMatch {
			return 0, StatusRegexpError, regexpError(code), true
		}
		// no match: keep scanning the remaining entries
	}

	if canClearBuffer {
		h.buffer = nil
	}
	return 0, 0, nil, false
}
