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

// SpawnFlags enumerates the options mexp_spawnvf accepts, combinable with
// bitwise OR.
type SpawnFlags uint

const (
	// KeepSignals is accepted for API parity with mexp_spawnvf but has no
	// effect: execve already resets the child's caught signal dispositions
	// to SIG_DFL on its own, and there is no equivalent parent-side state to
	// conditionally skip resetting. See child.go.
	KeepSignals SpawnFlags = 1 << iota
	// CookedMode skips putting the child's pty into raw mode.
	CookedMode
	// KeepFds is accepted for API parity with mexp_spawnvf but has no
	// effect. Spawn never closes descriptors 3 and up itself: the child only
	// misses those that are close-on-exec (as every fd the os package opens
	// is), and any other inherited descriptor reaches the child either way.
	KeepFds
)

// SpawnV spawns file with the given argv (including argv[0]) and default
// flags.
func SpawnV(file string, argv []string) (*Handle, error) {
	return SpawnVF(0, file, argv)
}

// SpawnVF spawns file with the given argv and flags.
func SpawnVF(flags SpawnFlags, file string, argv []string) (*Handle, error) {
	return spawn(flags, file, argv)
}

// SpawnL is the variadic convenience form of SpawnV: args should include
// argv[0] and need not be nil-terminated (unlike the C API, Go's variadic
// args already carry their own length).
func SpawnL(file string, args ...string) (*Handle, error) {
	return SpawnV(file, args)
}

// SpawnLF is the variadic convenience form of SpawnVF.
func SpawnLF(flags SpawnFlags, file string, args ...string) (*Handle, error) {
	return SpawnVF(flags, file, args)
}
