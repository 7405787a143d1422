// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package pkr_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mdhender/pkr"
)

func scanAll(input string) []string {
	s := pkr.NewLineScanner(input)
	var lines []string
	for line, ok := s.NextLine(); ok; line, ok = s.NextLine() {
		lines = append(lines, line)
	}
	return lines
}

func TestLineScanner(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single partial line", "abc", []string{"abc"}},
		{"single line", "abc\n", []string{"abc\n"}},
		{"only newline", "\n", []string{"\n"}},
		{"blank lines", "\n\n", []string{"\n", "\n"}},
		{"trailing partial", "a\nb", []string{"a\n", "b"}},
		{"crlf kept", "a\r\nb\r\n", []string{"a\r\n", "b\r\n"}},
		{"stray cr kept", "a\rb\n", []string{"a\rb\n"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, scanAll(tc.input)); diff != "" {
				t.Errorf("lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLineScanner_StaysDone(t *testing.T) {
	s := pkr.NewLineScanner("one\ntwo")
	if s.Line() != 0 {
		t.Errorf("Line before scanning: got %d, want 0", s.Line())
	}
	for i := 0; i < 2; i++ {
		if _, ok := s.NextLine(); !ok {
			t.Fatalf("line %d: unexpected end of input", i+1)
		}
	}
	if s.Line() != 2 {
		t.Errorf("Line: got %d, want 2", s.Line())
	}
	if !s.Done() {
		t.Errorf("Done: got false, want true")
	}
	for i := 0; i < 3; i++ {
		if line, ok := s.NextLine(); ok || line != "" {
			t.Errorf("after end: got (%q, %v), want (\"\", false)", line, ok)
		}
	}
	if s.Line() != 2 {
		t.Errorf("Line after end: got %d, want 2", s.Line())
	}
}
