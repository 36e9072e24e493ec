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

// Status is the terminal outcome of an Expect call when no regexp matched.
// A successful match is reported through Expect's positive tag instead; the
// Status returned alongside that tag is zero and carries no meaning.
type Status int

const (
	// StatusEOF means the child closed its end of the pty, or (on Linux) a
	// read returned EIO after the writer closed -- the kernel destroys the
	// whole pty once the last writer goes away, and we reinterpret that as
	// EOF rather than an error.
	StatusEOF Status = iota
	// StatusTimeout means the deadline elapsed before any regexp fully
	// matched. Handle.Buffer shows what the buffer still holds until the
	// next Expect call, which starts from an empty buffer.
	StatusTimeout
	// StatusError means a syscall (poll, read, alloc) failed for a reason
	// other than EIO. The underlying error is always returned alongside.
	StatusError
	// StatusRegexpError means the matcher returned a code other than "no
	// match" or "partial match". The raw code is available via
	// Handle.PCREError.
	StatusRegexpError
)

func (s Status) String() string {
	switch s {
	case StatusEOF:
		return "eof"
	case StatusTimeout:
		return "timeout"
	case StatusError:
		return "error"
	case StatusRegexpError:
		return "regexp error"
	default:
		return "unknown status"
	}
}
