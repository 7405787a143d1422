// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package renderer

import (
	"context"
	"strings"

	"github.com/a-h/templ"
	"github.com/mdhender/pkr"
)

// Node renders a parsed tree with the default options.
func Node(n *pkr.Node) templ.Component {
	return defaultRenderer.Node(n)
}

// Node renders n and its descendants as an HTML fragment.
//
//	DOC   children only
//	H1    <h1>
//	UL    <ul>
//	LI    <li>
//	BLOCK <p>
//	TEXT  escaped content, then children
//	LINK  <a href="url">
//	BOLD  <strong>
func (r *Renderer) Node(n *pkr.Node) templ.Component {
	return component(func(ctx context.Context, hw *htmlWriter) error {
		r.writeTree(hw, n)
		return nil
	})
}

// frame is either a node to open or, when node is nil, a closing tag.
type frame struct {
	node    *pkr.Node
	closing string
}

// writeTree walks the tree with an explicit stack; note trees can nest
// deeper than is comfortable for recursion.
func (r *Renderer) writeTree(hw *htmlWriter, root *pkr.Node) {
	if root == nil {
		return
	}
	stack := []frame{{node: root}}
	for len(stack) > 0 && hw.err == nil {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.node == nil {
			hw.raw(f.closing)
			continue
		}

		n, closing := f.node, ""
		switch n.Kind() {
		case pkr.DOC:
		case pkr.H1:
			hw.raw("<h1>")
			closing = "</h1>\n"
		case pkr.UL:
			hw.raw("<ul>\n")
			closing = "</ul>\n"
		case pkr.LI:
			hw.raw("<li>")
			closing = "</li>\n"
		case pkr.BLOCK:
			hw.raw("<p>")
			closing = "</p>\n"
		case pkr.TEXT:
			hw.text(r.content(n))
		case pkr.LINK:
			hw.raw(`<a href="`)
			hw.text(string(templ.URL(n.Attr("url"))))
			hw.raw(`">`)
			closing = "</a>"
		case pkr.BOLD:
			hw.raw("<strong>")
			hw.text(r.content(n))
			closing = "</strong>"
		default:
			panic("assert(kind is rendered)")
		}

		if closing != "" {
			stack = append(stack, frame{closing: closing})
		}
		children := n.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: children[i]})
		}
	}
}

func (r *Renderer) content(n *pkr.Node) string {
	if r.trimText {
		return strings.TrimRight(n.Content(), "\n")
	}
	return n.Content()
}
