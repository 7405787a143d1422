// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package pkr

//go:generate stringer --type Kind

// Kind implements the closed set of node names in a document tree.
type Kind int

const (
	invalidKind Kind = iota

	DOC   // root of a parsed note
	H1    // heading; its only child is a TEXT node
	UL    // unordered list
	LI    // list item
	BLOCK // paragraph-level group of inline nodes
	TEXT  // literal text, merge-accumulable across lines
	LINK  // inline link with a url attribute and one TEXT child
	BOLD  // inline emphasized text

	endOfKinds
)

// IsValid reports whether k is one of the named kinds.
func (k Kind) IsValid() bool {
	return invalidKind < k && k < endOfKinds
}

// IsTextual reports whether nodes of this kind may carry content.
func (k Kind) IsTextual() bool {
	return k == TEXT || k == BOLD
}
