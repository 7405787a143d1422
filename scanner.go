// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package pkr

import "strings"

const (
	// LF is 0x0A or '\n'.
	// It is the only line terminator the scanner knows about;
	// a CR in front of it is just another character on the line.
	LF = '\n'
)

// LineScanner splits input into lines without normalizing them.
//
// Every line keeps its trailing LF if the input has one. The last line
// is returned without an LF when the input doesn't end with one.
// The scanner only moves forward; once it reports the end of input it
// keeps reporting the end of input.
type LineScanner struct {
	input string
	pos   int // index of the first byte of the next line
	line  int // number of lines returned so far
}

func NewLineScanner(input string) *LineScanner {
	return &LineScanner{input: input}
}

// NextLine returns the next line and true, or "" and false at end of input.
func (s *LineScanner) NextLine() (string, bool) {
	if s.pos >= len(s.input) {
		return "", false
	}
	end := len(s.input)
	if i := strings.IndexByte(s.input[s.pos:], LF); i != -1 {
		end = s.pos + i + 1
	}
	line := s.input[s.pos:end]
	s.pos, s.line = end, s.line+1
	return line, true
}

// Line is the 1-based number of the last line returned by NextLine.
// It is 0 before the first call.
func (s *LineScanner) Line() int {
	return s.line
}

// Done reports whether the input has been consumed.
func (s *LineScanner) Done() bool {
	return s.pos >= len(s.input)
}
