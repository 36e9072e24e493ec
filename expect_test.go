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
	"strings"
	"testing"
	"time"
)

// TestExpectMultiMatch mirrors original_source/test-multi-match.c: repeated
// calls to Expect against a single line of output should each return the
// first regexp in list order that matches the still-unconsumed output, and
// the next call should resume just past that match.
// This only works with a real match-data object supplied -- without one,
// next_match is never set and each call clears the buffer instead of
// resuming from the previous match's end offset.
func TestExpectMultiMatch(t *testing.T) {
	h, err := SpawnL("echo", "echo", "multimatchingstrs")
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	defer h.Close()

	patterns := []string{"multi", "match", "ing", "str", "s"}
	var entries []RegexpEntry
	for i, p := range patterns {
		re, err := Compile(p)
		if err != nil {
			t.Fatalf("compile %q: %v", p, err)
		}
		entries = append(entries, RegexpEntry{Tag: 100 + i, Re: re})
	}

	md := NewMatchData(0)
	var got []int
	for i := 0; i < 5; i++ {
		tag, status, err := Expect(h, entries, md)
		if err != nil {
			t.Fatalf("expect iteration %d: %v", i, err)
		}
		if tag == 0 {
			t.Fatalf("expect iteration %d: unexpected status %v", i, status)
		}
		got = append(got, tag)
	}

	want := []int{100, 101, 102, 103, 104}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("iteration %d: got tag %d, want %d (all: %v)", i, got[i], want[i], got)
		}
	}
}

// TestExpectTimeoutRetainsBuffer mirrors the timeout scenario in spec.md
// §8: a child that prints something and then goes quiet should produce
// StatusTimeout without losing what was already read.
func TestExpectTimeoutRetainsBuffer(t *testing.T) {
	h, err := SpawnL("sh", "sh", "-c", "echo hello; sleep 10")
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	defer h.Close()

	h.Timeout = 500 * time.Millisecond

	re, err := Compile(`world`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	tag, status, err := Expect(h, []RegexpEntry{{Tag: 1, Re: re}}, nil)
	if err != nil {
		t.Fatalf("expect: %v", err)
	}
	if status != StatusTimeout || tag != 0 {
		t.Fatalf("expected timeout, got tag=%d status=%v", tag, status)
	}
	if !strings.Contains(string(h.Buffer()), "hello") {
		t.Fatalf("expected buffer to retain prior output, got %q", h.Buffer())
	}
}

// TestExpectEOF checks that a child exiting immediately is reported as EOF.
func TestExpectEOF(t *testing.T) {
	h, err := SpawnL("true", "true")
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	defer h.Close()

	re, err := Compile(`anything`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	tag, status, err := Expect(h, []RegexpEntry{{Tag: 1, Re: re}}, nil)
	if err != nil {
		t.Fatalf("expect: %v", err)
	}
	if status != StatusEOF || tag != 0 {
		t.Fatalf("expected eof, got tag=%d status=%v", tag, status)
	}
}

// TestExpectEmptyRegexpListWaitsForEOF covers the documented boundary
// behavior: an empty regexp list only ever terminates on EOF/timeout/error.
func TestExpectEmptyRegexpListWaitsForEOF(t *testing.T) {
	h, err := SpawnL("true", "true")
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	defer h.Close()

	tag, status, err := Expect(h, nil, nil)
	if err != nil {
		t.Fatalf("expect: %v", err)
	}
	if status != StatusEOF || tag != 0 {
		t.Fatalf("expected eof waiting with no regexps, got tag=%d status=%v", tag, status)
	}
}
