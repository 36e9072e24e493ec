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
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"ptyexpect"
)

// arrayFlags collects repeated occurrences of the same flag, e.g.
// -expect foo -expect bar.
type arrayFlags []string

func (*arrayFlags) String() string      { return "" }
func (af *arrayFlags) Set(v string) error { *af = append(*af, v); return nil }

func main() {
	var expectArgs arrayFlags
	var sendArgs arrayFlags
	var timeout time.Duration
	debug := false
	cooked := false
	keepSignals := false

	flag.Var(&expectArgs, "expect", "Regexp to wait for (may be given multiple times; first match wins)")
	flag.Var(&sendArgs, "send", "Text to send after the preceding -expect matches (may be given multiple times)")
	flag.DurationVar(&timeout, "timeout", ptyexpect.DefaultTimeout, "Per-call timeout for -expect")
	flag.BoolVar(&debug, "debug", false, "Trace poll/read/write/match activity to stderr")
	flag.BoolVar(&cooked, "cooked", false, "Leave the child's pty in cooked mode instead of raw mode")
	flag.BoolVar(&keepSignals, "keep-signals", false, "Pass the KeepSignals spawn flag (accepted for parity; it has no effect)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] command [args...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	argv := flag.Args()
	if len(argv) == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if len(expectArgs) != len(sendArgs) {
		fmt.Fprintln(os.Stderr, "ptyexpect-demo: -expect and -send must be given the same number of times")
		os.Exit(2)
	}

	var flags ptyexpect.SpawnFlags
	if cooked {
		flags |= ptyexpect.CookedMode
	}
	if keepSignals {
		flags |= ptyexpect.KeepSignals
	}

	h, err := ptyexpect.SpawnVF(flags, argv[0], argv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ptyexpect-demo: spawn: %v\n", err)
		os.Exit(1)
	}

	h.Timeout = timeout
	if debug {
		h.DebugSink = os.Stderr
	}

	var regexps []ptyexpect.RegexpEntry
	for i, pattern := range expectArgs {
		re, err := ptyexpect.Compile(pattern)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ptyexpect-demo: compile %q: %v\n", pattern, err)
			os.Exit(1)
		}
		regexps = append(regexps, ptyexpect.RegexpEntry{Tag: i + 1, Re: re})
	}

	md := ptyexpect.NewMatchData(0)
	for step := 0; step < len(regexps); step++ {
		tag, status, err := ptyexpect.Expect(h, regexps, md)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ptyexpect-demo: expect: %v\n", err)
			os.Exit(1)
		}
		if tag == 0 {
			fmt.Fprintf(os.Stderr, "ptyexpect-demo: stopped waiting: %v\n", status)
			break
		}

		reply := sendArgs[tag-1]
		reply = strings.ReplaceAll(reply, `\n`, "\n")
		if _, err := ptyexpect.Printf(h, "%s", reply); err != nil {
			fmt.Fprintf(os.Stderr, "ptyexpect-demo: send: %v\n", err)
			os.Exit(1)
		}
	}

	// Drain whatever is left and report how the child actually exited.
	_, _, _ = ptyexpect.Expect(h, nil, nil)
	os.Exit(h.Close())
}
