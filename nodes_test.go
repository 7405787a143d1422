// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package pkr_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mdhender/pkr"
)

// expectPanic fails the test if fn returns normally.
func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestKind_String(t *testing.T) {
	for kind, want := range map[pkr.Kind]string{
		pkr.DOC:   "DOC",
		pkr.H1:    "H1",
		pkr.UL:    "UL",
		pkr.LI:    "LI",
		pkr.BLOCK: "BLOCK",
		pkr.TEXT:  "TEXT",
		pkr.LINK:  "LINK",
		pkr.BOLD:  "BOLD",
	} {
		if got := kind.String(); got != want {
			t.Errorf("%d: got %q, want %q", int(kind), got, want)
		}
		if !kind.IsValid() {
			t.Errorf("%s: IsValid() = false, want true", want)
		}
	}
	if pkr.Kind(0).IsValid() || pkr.Kind(42).IsValid() {
		t.Errorf("IsValid() accepted an unnamed kind")
	}
}

func TestNewNode(t *testing.T) {
	n := pkr.NewNode(pkr.TEXT, "hello")
	if n.Kind() != pkr.TEXT {
		t.Errorf("Kind: got %s, want TEXT", n.Kind())
	}
	if n.Content() != "hello" {
		t.Errorf("Content: got %q, want %q", n.Content(), "hello")
	}
	if n.Parent() != nil || len(n.Children()) != 0 || len(n.Attrs()) != 0 {
		t.Errorf("new node is not detached and empty")
	}

	expectPanic(t, "invalid kind", func() { pkr.NewNode(pkr.Kind(99)) })
	expectPanic(t, "content on BLOCK", func() { pkr.NewNode(pkr.BLOCK, "text") })
	expectPanic(t, "SetContent on UL", func() { pkr.NewNode(pkr.UL).SetContent("text") })
	expectPanic(t, "SetAttr on TEXT", func() { pkr.NewNode(pkr.TEXT).SetAttr("url", "x") })
}

func TestNode_AddChild(t *testing.T) {
	doc, block, text := pkr.NewNode(pkr.DOC), pkr.NewNode(pkr.BLOCK), pkr.NewNode(pkr.TEXT, "a")
	doc.AddChild(block)
	block.AddChild(text)
	if text.Parent() != block || block.Parent() != doc {
		t.Fatalf("parents not set")
	}
	if got := text.Path(); got != "DOC/BLOCK/TEXT" {
		t.Errorf("Path: got %q, want %q", got, "DOC/BLOCK/TEXT")
	}
	if got := doc.Path(); got != "DOC" {
		t.Errorf("root Path: got %q, want %q", got, "DOC")
	}
	if text.Root() != doc {
		t.Errorf("Root: did not reach DOC")
	}

	expectPanic(t, "reattach", func() { doc.AddChild(text) })
	expectPanic(t, "self", func() { block.AddChild(block) })
	expectPanic(t, "attach DOC", func() { block.AddChild(pkr.NewNode(pkr.DOC)) })
	expectPanic(t, "nil", func() { block.AddChild(nil) })
	if len(doc.Children()) != 1 {
		t.Errorf("failed attach modified the tree: %d children", len(doc.Children()))
	}
}

func TestNode_AddSibling(t *testing.T) {
	doc, first := pkr.NewNode(pkr.DOC), pkr.NewNode(pkr.BLOCK)
	doc.AddChild(first)
	second := pkr.NewNode(pkr.UL)
	first.AddSibling(second)
	if second.Parent() != doc || len(doc.Children()) != 2 || doc.Children()[1] != second {
		t.Errorf("sibling not appended to parent")
	}
	expectPanic(t, "sibling of root", func() { doc.AddSibling(pkr.NewNode(pkr.BLOCK)) })
}

func TestNode_SetContentAccumulates(t *testing.T) {
	n := pkr.NewNode(pkr.BOLD, "one")
	n.SetContent(n.Content() + " two")
	if n.Content() != "one two" {
		t.Errorf("got %q, want %q", n.Content(), "one two")
	}
}

func TestNode_Attrs(t *testing.T) {
	link := pkr.NewNode(pkr.LINK)
	link.SetAttr("url", "https://example.com")
	if got := link.Attr("url"); got != "https://example.com" {
		t.Errorf("Attr: got %q", got)
	}
	attrs := link.Attrs()
	attrs["url"] = "changed"
	if link.Attr("url") != "https://example.com" {
		t.Errorf("Attrs returned the node's own map")
	}
}

func TestNode_Serialize(t *testing.T) {
	doc := pkr.NewNode(pkr.DOC)
	block := pkr.NewNode(pkr.BLOCK)
	link := pkr.NewNode(pkr.LINK)
	link.SetAttr("url", "https://example.com")
	link.AddChild(pkr.NewNode(pkr.TEXT, "label"))
	doc.AddChild(block)
	block.AddChild(pkr.NewNode(pkr.TEXT, ""))
	block.AddChild(link)
	block.AddChild(pkr.NewNode(pkr.BOLD, "loud"))

	want := []any{"DOC",
		[]any{"BLOCK",
			[]any{"TEXT"},
			[]any{"LINK", map[string]string{"url": "https://example.com"},
				[]any{"TEXT", "label"}},
			[]any{"BOLD", "loud"}}}
	if diff := cmp.Diff(want, doc.Serialize()); diff != "" {
		t.Errorf("Serialize() mismatch (-want +got):\n%s", diff)
	}

	// a subtree serializes on its own
	if diff := cmp.Diff([]any{"TEXT", "label"}, link.Children()[0].Serialize()); diff != "" {
		t.Errorf("subtree Serialize() mismatch (-want +got):\n%s", diff)
	}
}

func TestNode_SerializeDeepTree(t *testing.T) {
	// deep enough to hurt a recursive implementation
	const depth = 100_000
	doc := pkr.NewNode(pkr.DOC)
	n := pkr.NewNode(pkr.TEXT, "0")
	doc.AddChild(n)
	for i := 1; i < depth; i++ {
		child := pkr.NewNode(pkr.TEXT, "x")
		n.AddChild(child)
		n = child
	}
	out := doc.Serialize()
	levels := 0
	for len(out) > 0 {
		levels++
		last, ok := out[len(out)-1].([]any)
		if !ok {
			break
		}
		out = last
	}
	if levels != depth+1 {
		t.Errorf("got %d levels, want %d", levels, depth+1)
	}
	if !strings.HasPrefix(n.Path(), "DOC/TEXT/TEXT") {
		t.Errorf("unexpected path prefix")
	}
}

func TestWalk(t *testing.T) {
	doc := mustParse(t, "# h\n\n* a\n* b\n")
	var got []string
	pkr.Walk(doc, func(n *pkr.Node, depth int) bool {
		got = append(got, strings.Repeat(".", depth)+n.Kind().String())
		return n.Kind() != pkr.LI
	})
	want := []string{"DOC", ".H1", "..TEXT", ".UL", "..LI", "..LI"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Walk order mismatch (-want +got):\n%s", diff)
	}
}
