// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package pkr

import (
	"maps"
	"strings"
)

// Node is an element of a parsed document tree.
//
// Ownership rules:
//   - a node is attached to at most one parent, once;
//   - the DOC root never has a parent;
//   - nodes are never detached, so the tree only grows while parsing.
//
// Content is only carried by TEXT and BOLD nodes.
// Attributes are only carried by LINK nodes.
type Node struct {
	kind     Kind
	content  string
	attrs    map[string]string
	parent   *Node
	children []*Node
}

// NewNode returns a detached node of the given kind.
// The optional content is concatenated and is only allowed for TEXT and BOLD.
//
// Panics if kind is not valid since that's a bug in the caller, not in the input.
func NewNode(kind Kind, content ...string) *Node {
	if !kind.IsValid() {
		panic("assert(kind.IsValid())")
	}
	n := &Node{kind: kind}
	if len(content) != 0 {
		n.SetContent(strings.Join(content, ""))
	}
	return n
}

func (n *Node) Kind() Kind        { return n.kind }
func (n *Node) Content() string   { return n.content }
func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) Children() []*Node { return n.children }

// Attr returns the attribute value for key, or the empty string.
func (n *Node) Attr(key string) string {
	return n.attrs[key]
}

// Attrs returns a copy of the node's attributes.
func (n *Node) Attrs() map[string]string {
	return maps.Clone(n.attrs)
}

// IsRoot reports whether the node is a DOC node, which is never attached.
func (n *Node) IsRoot() bool {
	return n.kind == DOC
}

// AddChild appends child to the node's children and makes the node its owner.
//
// Panics if the child already has an owner, is the node itself, or is a DOC.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("assert(child != nil)")
	} else if child == n {
		panic("assert(child != self)")
	} else if child.parent != nil {
		panic("assert(child.parent == nil)")
	} else if child.kind == DOC {
		panic("assert(child.kind != DOC)")
	}
	child.parent = n
	n.children = append(n.children, child)
}

// AddSibling appends sibling to the node's parent.
//
// Panics if the node has no parent.
func (n *Node) AddSibling(sibling *Node) {
	if n.parent == nil {
		panic("assert(node.parent != nil)")
	}
	n.parent.AddChild(sibling)
}

// SetContent replaces the node's content.
// Callers accumulate text with n.SetContent(n.Content() + more).
func (n *Node) SetContent(text string) {
	if !n.kind.IsTextual() {
		panic("assert(node.kind.IsTextual())")
	}
	n.content = text
}

// SetAttr sets an attribute on a LINK node.
func (n *Node) SetAttr(key, value string) {
	if n.kind != LINK {
		panic("assert(node.kind == LINK)")
	}
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[key] = value
}

// Path returns the slash-joined kinds from the root down to the node,
// e.g. "DOC/UL/LI/TEXT".
func (n *Node) Path() string {
	var names []string
	for p := n; p != nil; p = p.parent {
		names = append(names, p.kind.String())
	}
	var sb strings.Builder
	for i := len(names) - 1; i >= 0; i-- {
		sb.WriteString(names[i])
		if i != 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// Root climbs to the top of the tree.
func (n *Node) Root() *Node {
	p := n
	for p.parent != nil {
		p = p.parent
	}
	return p
}

// Serialize returns the subtree as a nested list:
//
//	[name, content?, attributes?, child.Serialize()...]
//
// Content is omitted when empty and attributes are omitted when there are none.
// This is the shape of the JSON tree output and of the tests.
//
// Serialize uses an explicit stack, so deep trees don't grow the call stack.
func (n *Node) Serialize() []any {
	type frame struct {
		node *Node
		out  []any
		next int // index of the next child to visit
	}
	stack := []*frame{{node: n, out: n.head()}}
	for {
		top := stack[len(stack)-1]
		if top.next < len(top.node.children) {
			child := top.node.children[top.next]
			top.next++
			stack = append(stack, &frame{node: child, out: child.head()})
			continue
		}
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return top.out
		}
		parent := stack[len(stack)-1]
		parent.out = append(parent.out, top.out)
	}
}

// head returns the leading, non-child elements of the serialized node.
func (n *Node) head() []any {
	out := []any{n.kind.String()}
	if n.content != "" {
		out = append(out, n.content)
	}
	if len(n.attrs) != 0 {
		out = append(out, maps.Clone(n.attrs))
	}
	return out
}

// VisitFunc is called for every node in a walk.
// Returning false skips the node's children.
type VisitFunc func(node *Node, depth int) bool

// Walk visits the subtree rooted at n in document order.
func Walk(n *Node, visit VisitFunc) {
	type item struct {
		node  *Node
		depth int
	}
	stack := []item{{node: n}}
	for len(stack) != 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(it.node, it.depth) {
			continue
		}
		// push in reverse so the first child is visited next
		for i := len(it.node.children) - 1; i >= 0; i-- {
			stack = append(stack, item{node: it.node.children[i], depth: it.depth + 1})
		}
	}
}
