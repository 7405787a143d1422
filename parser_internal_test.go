// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package pkr

import (
	"errors"
	"strings"
	"testing"
)

func TestParser_InvariantRecovered(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		cursor *Node
	}{
		{"stray cursor on blank line", "\n", NewNode(TEXT, "stray")},
		{"stray cursor on list item", "* a\n", NewNode(TEXT, "stray")},
		{"stray list", "* a\n", NewNode(UL)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewParser(tc.input)
			if err != nil {
				t.Fatalf("new parser: %v", err)
			}
			p.cursor = tc.cursor

			doc, err := p.Parse()
			if !errors.Is(err, ErrInvariant) {
				t.Fatalf("got %v, want ErrInvariant", err)
			}
			if doc != nil {
				t.Errorf("got a tree with the error: %v", doc.Serialize())
			}
			if !strings.HasPrefix(err.Error(), "line 1: assert(") {
				t.Errorf("error: got %q", err.Error())
			}
		})
	}
}

func TestParser_InvariantConsumesParser(t *testing.T) {
	p, err := NewParser("\n")
	if err != nil {
		t.Fatalf("new parser: %v", err)
	}
	p.cursor = NewNode(BOLD, "stray")
	if _, err := p.Parse(); !errors.Is(err, ErrInvariant) {
		t.Fatalf("got %v, want ErrInvariant", err)
	}
	if _, err := p.Parse(); !errors.Is(err, ErrParserConsumed) {
		t.Errorf("second parse: got %v, want ErrParserConsumed", err)
	}
}
