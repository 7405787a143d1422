// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package pkr_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mdhender/pkr"
)

func serializeAll(nodes []*pkr.Node) []any {
	var out []any
	for _, n := range nodes {
		out = append(out, n.Serialize())
	}
	return out
}

func TestExtractInline(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []any
	}{
		{
			name: "plain text keeps newline",
			line: "just words\n",
			want: []any{[]any{"TEXT", "just words\n"}},
		},
		{
			name: "link in the middle",
			line: "This code is [hosted on GitHub](https://github.com/jbgo/pkr).\n",
			want: []any{
				[]any{"TEXT", "This code is "},
				[]any{"LINK", url("https://github.com/jbgo/pkr"), []any{"TEXT", "hosted on GitHub"}},
				[]any{"TEXT", ".\n"},
			},
		},
		{
			name: "link keeps empty before and after",
			line: "[home](/)",
			want: []any{
				[]any{"TEXT"},
				[]any{"LINK", url("/"), []any{"TEXT", "home"}},
				[]any{"TEXT"},
			},
		},
		{
			name: "only the first link is extracted",
			line: "[a](1) and [b](2)",
			want: []any{
				[]any{"TEXT"},
				[]any{"LINK", url("1"), []any{"TEXT", "a"}},
				[]any{"TEXT", " and [b](2)"},
			},
		},
		{
			name: "link wins over an earlier bold",
			line: "**big** [x](y)",
			want: []any{
				[]any{"TEXT", "**big** "},
				[]any{"LINK", url("y"), []any{"TEXT", "x"}},
				[]any{"TEXT"},
			},
		},
		{
			name: "bold omits empty text",
			line: "**all bold**",
			want: []any{[]any{"BOLD", "all bold"}},
		},
		{
			name: "underscore bold",
			line: "a __b__ c",
			want: []any{
				[]any{"TEXT", "a "},
				[]any{"BOLD", "b"},
				[]any{"TEXT", " c"},
			},
		},
		{
			name: "stars win over an earlier underscore run",
			line: "__u__ **s**",
			want: []any{
				[]any{"TEXT", "__u__ "},
				[]any{"BOLD", "s"},
			},
		},
		{
			name: "only the first bold is extracted",
			line: "**a** **b**",
			want: []any{
				[]any{"BOLD", "a"},
				[]any{"TEXT", " **b**"},
			},
		},
		{
			name: "unterminated markup is text",
			line: "[label](no close and **open\n",
			want: []any{[]any{"TEXT", "[label](no close and **open\n"}},
		},
		{
			name: "empty label is not a link",
			line: "[](https://example.com)",
			want: []any{[]any{"TEXT", "[](https://example.com)"}},
		},
		{
			name: "label cannot span a bracket",
			line: "[a]b](c)",
			want: []any{[]any{"TEXT", "[a]b](c)"}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, serializeAll(pkr.ExtractInline(tc.line))); diff != "" {
				t.Errorf("ExtractInline(%q) mismatch (-want +got):\n%s", tc.line, diff)
			}
		})
	}
}
