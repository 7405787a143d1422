// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package pkr_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mdhender/pkr"
)

// url builds the attribute element of a serialized LINK.
func url(u string) map[string]string {
	return map[string]string{"url": u}
}

func mustParse(t *testing.T, input string) *pkr.Node {
	t.Helper()
	doc, err := pkr.Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []any
	}{
		{
			name:  "empty",
			input: "",
			want:  []any{"DOC"},
		},
		{
			name:  "sentence",
			input: "This is a simple sentence.",
			want: []any{"DOC",
				[]any{"BLOCK",
					[]any{"TEXT", "This is a simple sentence."}}},
		},
		{
			name:  "paragraphs",
			input: "This is the first paragraph.\n\nThis is the second paragraph.",
			want: []any{"DOC",
				[]any{"BLOCK",
					[]any{"TEXT", "This is the first paragraph.\n"}},
				[]any{"BLOCK",
					[]any{"TEXT", "This is the second paragraph."}}},
		},
		{
			name:  "multiline paragraph",
			input: "\nThis is a paragraph that\nspans multiple lines.\n",
			want: []any{"DOC",
				[]any{"BLOCK",
					[]any{"TEXT", "This is a paragraph that spans multiple lines.\n"}}},
		},
		{
			name:  "heading",
			input: "# this is a heading",
			want: []any{"DOC",
				[]any{"H1",
					[]any{"TEXT", "this is a heading"}}},
		},
		{
			name:  "unordered lists",
			input: "\n* backpack\n* sleeping bag\n* socks\n* head lamp\n\n- this is also\n- an un-ordered list\n- and 2 * 2 = 4\n",
			want: []any{"DOC",
				[]any{"UL",
					[]any{"LI", []any{"TEXT", "backpack\n"}},
					[]any{"LI", []any{"TEXT", "sleeping bag\n"}},
					[]any{"LI", []any{"TEXT", "socks\n"}},
					[]any{"LI", []any{"TEXT", "head lamp\n"}}},
				[]any{"UL",
					[]any{"LI", []any{"TEXT", "this is also\n"}},
					[]any{"LI", []any{"TEXT", "an un-ordered list\n"}},
					[]any{"LI", []any{"TEXT", "and 2 * 2 = 4\n"}}}},
		},
		{
			name:  "hyperlink",
			input: "\nThis code is [hosted on GitHub](https://github.com/jbgo/pkr).\n",
			want: []any{"DOC",
				[]any{"BLOCK",
					[]any{"TEXT", "This code is "},
					[]any{"LINK", url("https://github.com/jbgo/pkr"),
						[]any{"TEXT", "hosted on GitHub"}},
					[]any{"TEXT", ".\n"}}},
		},
		{
			name:  "bold",
			input: "Hello. __This text is bold.__ However, __this text is not.\n\n**This text is also bold**. But then again, **this text is not.",
			want: []any{"DOC",
				[]any{"BLOCK",
					[]any{"TEXT", "Hello. "},
					[]any{"BOLD", "This text is bold."},
					[]any{"TEXT", " However, __this text is not.\n"}},
				[]any{"BLOCK",
					[]any{"BOLD", "This text is also bold"},
					[]any{"TEXT", ". But then again, **this text is not."}}},
		},
		{
			name:  "line after heading continues the heading",
			input: "# a heading\nthat keeps going\n",
			want: []any{"DOC",
				[]any{"H1",
					[]any{"TEXT", "a heading that keeps going\n"}}},
		},
		{
			name:  "line after list item continues the item",
			input: "* first\n  wrapped\n* second\n",
			want: []any{"DOC",
				[]any{"UL",
					[]any{"LI", []any{"TEXT", "first   wrapped\n"}},
					[]any{"LI", []any{"TEXT", "second\n"}}}},
		},
		{
			name:  "list after paragraph without blank line",
			input: "intro\n* item\n",
			want: []any{"DOC",
				[]any{"BLOCK",
					[]any{"TEXT", "intro\n"}},
				[]any{"UL",
					[]any{"LI", []any{"TEXT", "item\n"}}}},
		},
		{
			name:  "heading after paragraph nests under the text",
			input: "intro\n# heading\n",
			want: []any{"DOC",
				[]any{"BLOCK",
					[]any{"TEXT", "intro\n",
						[]any{"H1", []any{"TEXT", "heading\n"}}}}},
		},
		{
			name:  "text after link line merges into the trailing text",
			input: "see [docs](https://example.com)\nfor more\n",
			want: []any{"DOC",
				[]any{"BLOCK",
					[]any{"TEXT", "see "},
					[]any{"LINK", url("https://example.com"),
						[]any{"TEXT", "docs"}},
					[]any{"TEXT", " for more\n"}}},
		},
		{
			name:  "text after bold line merges into the newline text",
			input: "**loud**\nquiet\n",
			want: []any{"DOC",
				[]any{"BLOCK",
					[]any{"BOLD", "loud"},
					[]any{"TEXT", " quiet\n"}}},
		},
		{
			name:  "crlf lines are not blank",
			input: "one\r\n\r\ntwo\r\n",
			want: []any{"DOC",
				[]any{"BLOCK",
					[]any{"TEXT", "one\r \r two\r\n"}}},
		},
		{
			name:  "markers need a space",
			input: "#nope\n*nope\n",
			want: []any{"DOC",
				[]any{"BLOCK",
					[]any{"TEXT", "#nope *nope\n"}}},
		},
		{
			name:  "several blank lines",
			input: "a\n\n\n\nb\n",
			want: []any{"DOC",
				[]any{"BLOCK", []any{"TEXT", "a\n"}},
				[]any{"BLOCK", []any{"TEXT", "b\n"}}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := mustParse(t, tc.input).Serialize()
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Serialize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Deterministic(t *testing.T) {
	input := "# Packing\n\n* backpack\n* socks\n\nSee **this** and [that](https://example.com).\nMore.\n"
	first := mustParse(t, input).Serialize()
	second := mustParse(t, input).Serialize()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("parses differ (-first +second):\n%s", diff)
	}
}

func TestParser_ParseOnce(t *testing.T) {
	p, err := pkr.NewParser("hello\n")
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	doc, err := p.Parse()
	if err != nil {
		t.Fatalf("first Parse: %v", err)
	}
	if doc == nil || doc.Kind() != pkr.DOC {
		t.Fatalf("first Parse: got %v, want DOC", doc)
	}
	doc, err = p.Parse()
	if !errors.Is(err, pkr.ErrParserConsumed) {
		t.Errorf("second Parse: err = %v, want %v", err, pkr.ErrParserConsumed)
	}
	if doc != nil {
		t.Errorf("second Parse: doc = %v, want nil", doc)
	}
}

func TestParse_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if _, err := pkr.Parse("# title\n\n* item\ntext\n", pkr.WithLogger(logger)); err != nil {
		t.Fatalf("parse: %v", err)
	}
	for _, want := range []string{"heading: cursor DOC/H1/TEXT", "blank: cursor DOC", "list item: cursor DOC/UL/LI/TEXT", "generic: merged into DOC/UL/LI/TEXT"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log missing %q\n%s", want, buf.String())
		}
	}
}

func TestParse_TreeOwnership(t *testing.T) {
	doc := mustParse(t, "# h\n\n* a\n* b\n\nsome [link](https://x.y) text\n")
	if doc.Parent() != nil {
		t.Fatalf("root has parent %v", doc.Parent())
	}
	pkr.Walk(doc, func(n *pkr.Node, depth int) bool {
		for _, child := range n.Children() {
			if child.Parent() != n {
				t.Errorf("%s: child parent mismatch", child.Path())
			}
		}
		if n.Content() != "" && !n.Kind().IsTextual() {
			t.Errorf("%s: non-textual node has content %q", n.Path(), n.Content())
		}
		if len(n.Attrs()) != 0 && n.Kind() != pkr.LINK {
			t.Errorf("%s: non-link node has attributes", n.Path())
		}
		return true
	})
}
