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

	"golang.org/x/sys/unix"
)

// SetWindowSize tells the child's pty its terminal size, the way a real
// terminal emulator would on SIGWINCH. Not part of miniexpect, which never
// resizes, but most interactive programs (installers, editors, shells)
// query COLUMNS/LINES or call ioctl(TIOCGWINSZ) on startup and expect a
// sane answer.
func (h *Handle) SetWindowSize(rows, cols uint16) error {
	ws := &unix.Winsize{Row: rows, Col: cols}
	if err := unix.IoctlSetWinsize(int(h.fd.Fd()), unix.TIOCSWINSZ, ws); err != nil {
		return fmt.Errorf("set window size: %w", err)
	}
	return nil
}
