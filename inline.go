// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package pkr

import "regexp"

var (
	// [label](url): the label can't contain ']' and the url can't contain ')'.
	linkPattern = regexp.MustCompile(`\[([^\]]+?)\]\(([^)]+?)\)`)

	// **text** is tried before __text__
	boldPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\*\*(.+?)\*\*`),
		regexp.MustCompile(`__(.+?)__`),
	}
)

// ExtractInline splits one line into inline nodes.
//
// A link is always searched for first, regardless of where a bold span
// starts. Only the first span found is extracted; anything after it is
// left as literal text.
//
//   - link: TEXT(before), LINK{url}[TEXT(label)], TEXT(after), always three nodes
//   - bold: TEXT(before), BOLD(inner), TEXT(after), omitting empty TEXT nodes
//   - otherwise: TEXT(line)
//
// The line is never modified, so a trailing LF ends up in the last TEXT node.
func ExtractInline(line string) []*Node {
	if m := linkPattern.FindStringSubmatchIndex(line); m != nil {
		link := NewNode(LINK)
		link.SetAttr("url", line[m[4]:m[5]])
		link.AddChild(NewNode(TEXT, line[m[2]:m[3]]))
		return []*Node{
			NewNode(TEXT, line[:m[0]]),
			link,
			NewNode(TEXT, line[m[1]:]),
		}
	}

	for _, pattern := range boldPatterns {
		m := pattern.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		var nodes []*Node
		if before := line[:m[0]]; before != "" {
			nodes = append(nodes, NewNode(TEXT, before))
		}
		nodes = append(nodes, NewNode(BOLD, line[m[2]:m[3]]))
		if after := line[m[1]:]; after != "" {
			nodes = append(nodes, NewNode(TEXT, after))
		}
		return nodes
	}

	return []*Node{NewNode(TEXT, line)}
}
