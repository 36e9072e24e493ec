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
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/term"
)

// spawn implements mexp_spawnvf's contract on top of os/exec. The ordering
// of operations below is load-bearing in the same way the C child-side
// sequence is (see SPEC_FULL.md §5 for the Go re-architecture notes):
//
//  1. open the pty pair and resolve the slave path
//  2. open the slave (in the parent -- exec.Cmd needs *os.File handles)
//  3. unless CookedMode, put the slave into raw mode before anything execs
//     against it
//  4. start the child with Setsid+Setctty so the kernel creates a new
//     session and assigns the slave as its controlling terminal, in that
//     order, before the exec completes; execve resets the child's caught
//     signal dispositions to SIG_DFL as a side effect, without the parent
//     needing to do anything (see KeepSignals below). Signals ignored in the
//     parent stay ignored in the child: unlike the original's per-signal
//     reset loop, nothing here sets them back to SIG_DFL.
//  5. close the parent's copy of the slave fd once the child has its own
func spawn(flags SpawnFlags, file string, argv []string) (*Handle, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("ptyexpect: spawn: argv must include argv[0]")
	}

	master, slavePath, err := openPTY()
	if err != nil {
		return nil, err
	}

	slave, err := os.OpenFile(slavePath, os.O_RDWR, 0)
	if err != nil {
		_ = master.Close()
		return nil, fmt.Errorf("open slave pty %s: %w", slavePath, err)
	}

	if flags&CookedMode == 0 {
		if _, err := term.MakeRaw(int(slave.Fd())); err != nil {
			_ = master.Close()
			_ = slave.Close()
			return nil, fmt.Errorf("set raw mode on slave pty: %w", err)
		}
	}

	cmd := exec.Command(file, argv[1:]...)
	cmd.Args[0] = argv[0]
	cmd.Stdin = slave
	cmd.Stdout = slave
	cmd.Stderr = slave
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid:  true,
		Setctty: true,
		Ctty:    0, // stdin, i.e. the slave pty set above
	}

	// KeepSignals has no action to skip here (see step 4 above); it is kept
	// as a no-op flag for API parity. It must never be wired to
	// signal.Reset() in the parent -- that would strip every handler the
	// host program installed with signal.Notify and never restore them.

	startErr := cmd.Start()
	// The parent no longer needs its copy; the child has its own duplicated
	// fds from Stdin/Stdout/Stderr.
	_ = slave.Close()

	if startErr != nil {
		_ = master.Close()
		return nil, fmt.Errorf("start %s: %w", file, startErr)
	}

	h := newHandle()
	h.fd = master
	h.cmd = cmd
	return h, nil
}
