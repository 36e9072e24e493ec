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
	"strconv"
	"strings"
)

// Printf formats a message and writes it in full to the child, looping past
// any short writes. It returns the number of bytes written, or -1 and an
// error on failure. Partial writes are never visible to the caller.
func Printf(h *Handle, format string, args ...any) (int, error) {
	return h.vprintf(false, format, args...)
}

// PrintfPassword is Printf, except it logs "(password redacted)" to the
// debug sink instead of the formatted message, so secrets never end up in a
// debug trace.
func PrintfPassword(h *Handle, format string, args ...any) (int, error) {
	return h.vprintf(true, format, args...)
}

func (h *Handle) vprintf(password bool, format string, args ...any) (int, error) {
	msg := fmt.Sprintf(format, args...)

	if h.DebugSink != nil {
		if password {
			h.debugf("DEBUG: writing (password redacted)\n")
		} else {
			h.debugf("DEBUG: writing: %s\n", escapeForDebug([]byte(msg)))
		}
	}

	n, err := writeAll(h.fd, []byte(msg))
	if err != nil {
		return -1, err
	}
	return n, nil
}

// writeAll loops past short writes, the Go analogue of mexp_vprintf's write
// loop. os.File.Write already retries internally for most fds, but doing it
// explicitly here keeps the contract documented at the call site instead of
// relying on an implementation detail of os.File.
func writeAll(w interface{ Write([]byte) (int, error) }, p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		n, err := w.Write(p)
		total += n
		if err != nil {
			return total, err
		}
		p = p[n:]
	}
	return total, nil
}

// SendInterrupt writes a single ^C (0x03) byte to the child, the same way a
// terminal's signal-generating line discipline would if it weren't disabled
// by raw mode.
func SendInterrupt(h *Handle) (int, error) {
	return writeAll(h.fd, []byte{0x03})
}

// escapeForDebug renders buf the way miniexpect's debug_buffer does:
// printable bytes pass through, common control characters get their C
// escape, and everything else becomes \x followed by its value in lowercase
// hex without zero padding (0x01 renders as \x1).
func escapeForDebug(buf []byte) string {
	var sb strings.Builder
	for _, b := range buf {
		switch {
		case b >= 0x20 && b < 0x7f:
			sb.WriteByte(b)
		case b == 0:
			sb.WriteString(`\0`)
		case b == '\a':
			sb.WriteString(`\a`)
		case b == '\b':
			sb.WriteString(`\b`)
		case b == '\f':
			sb.WriteString(`\f`)
		case b == '\n':
			sb.WriteString(`\n`)
		case b == '\r':
			sb.WriteString(`\r`)
		case b == '\t':
			sb.WriteString(`\t`)
		case b == '\v':
			sb.WriteString(`\v`)
		default:
			sb.WriteString(`\x`)
			sb.WriteString(strconv.FormatInt(int64(b), 16))
		}
	}
	return sb.String()
}
