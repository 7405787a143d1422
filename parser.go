// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package pkr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

/*
Invariants:
 * Initialization
   * `NewParser` creates the DOC root and sets `cursor` to it.
   * `cursor` is never nil and always belongs to the tree under `root`.

 * Cursor semantics
   * `cursor` is the node the next line's content is attached to.
   * A blank line moves `cursor` back up to `root`.
   * Headings and list items leave `cursor` on their TEXT node, so an
     unbroken following line continues that text.
   * A generic line leaves `cursor` on the last inline node it attached.

 * Single use
   * The scanner only moves forward, so `Parse` may run once.
     Later calls return ErrParserConsumed.
   * A broken invariant panics with "assert(...)". Parse recovers it and
     returns ErrInvariant with no tree; callers never see a half-built tree.
*/

var (
	// ErrParserConsumed is returned when Parse is called more than once.
	ErrParserConsumed = errors.New("parser already consumed its input")

	// ErrInvariant is returned when the parser detects a bug in itself.
	ErrInvariant = errors.New("parser invariant violated")
)

// Parser turns note text into a document tree, one line at a time.
type Parser struct {
	logger  *slog.Logger
	scanner *LineScanner
	root    *Node
	cursor  *Node
	used    bool
}

// Option configures a Parser.
type Option func(p *Parser) error

// WithLogger traces every rule decision at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) error {
		p.logger = logger
		return nil
	}
}

// NewParser returns a parser that owns the input.
func NewParser(input string, options ...Option) (*Parser, error) {
	root := NewNode(DOC)
	p := &Parser{
		scanner: NewLineScanner(input),
		root:    root,
		cursor:  root,
	}
	for _, option := range options {
		if err := option(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Parse is a helper that creates a parser and runs it once.
func Parse(input string, options ...Option) (*Node, error) {
	p, err := NewParser(input, options...)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// Parse consumes every line of the input and returns the DOC root.
// It never fails on malformed markup.
func (p *Parser) Parse() (doc *Node, err error) {
	if p.used {
		return nil, ErrParserConsumed
	}
	p.used = true

	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("line %d: %v: %w", p.scanner.Line(), r, ErrInvariant)
		}
	}()

	for line, ok := p.scanner.NextLine(); ok; line, ok = p.scanner.NextLine() {
		switch {
		case line == "\n":
			p.blankLine()
		case strings.HasPrefix(line, "# "):
			p.headingLine(line[2:])
		case strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "- "):
			p.listItemLine(line[2:])
		default:
			p.genericLine(line)
		}
	}

	return p.root, nil
}

// blankLine closes any open heading, list or paragraph.
func (p *Parser) blankLine() {
	p.cursor = p.climb(DOC)
	p.debug("blank: cursor %s", pathOf{p.cursor})
}

// headingLine attaches H1[TEXT] under the cursor.
func (p *Parser) headingLine(text string) {
	h1, t := NewNode(H1), NewNode(TEXT, text)
	h1.AddChild(t)
	p.cursor.AddChild(h1)
	p.cursor = t
	p.debug("heading: cursor %s", pathOf{p.cursor})
}

// listItemLine attaches LI[TEXT] to the open list, starting a new list
// if there isn't one.
func (p *Parser) listItemLine(text string) {
	li, t := NewNode(LI), NewNode(TEXT, text)
	p.cursor = p.climb(UL)
	if p.cursor.kind == DOC {
		ul := NewNode(UL)
		p.cursor.AddChild(ul)
		p.cursor = ul
	}
	p.cursor.AddChild(li)
	li.AddChild(t)
	p.cursor = t
	p.debug("list item: cursor %s", pathOf{p.cursor})
}

// genericLine attaches the inline nodes of the line, or merges plain text
// into the text node under the cursor.
func (p *Parser) genericLine(line string) {
	if p.cursor.kind == DOC {
		block := NewNode(BLOCK)
		p.cursor.AddChild(block)
		p.cursor = block
	}

	nodes := ExtractInline(line)
	if len(nodes) == 1 && nodes[0].kind == TEXT && p.cursor.kind == TEXT {
		text := strings.TrimSuffix(p.cursor.content, "\n")
		p.cursor.SetContent(text + " " + line)
		p.debug("generic: merged into %s", pathOf{p.cursor})
		return
	}

	for _, node := range nodes {
		p.cursor.AddChild(node)
	}
	p.cursor = nodes[len(nodes)-1]
	p.debug("generic: attached %d nodes, cursor %s", len(nodes), pathOf{p.cursor})
}

// climb moves up from the cursor until it finds a node of the given kind,
// stopping at the root. The root is a DOC, so climbing to DOC always
// succeeds. Reaching a parentless node that isn't the root means the
// cursor escaped the tree.
func (p *Parser) climb(kind Kind) *Node {
	n := p.cursor
	for n.kind != kind && n.kind != DOC && n.parent != nil {
		n = n.parent
	}
	if n.parent == nil && n != p.root {
		panic("assert(cursor is under root)")
	}
	return n
}

// pathOf defers building a node's path until a log line needs it.
type pathOf struct{ n *Node }

func (po pathOf) String() string {
	return po.n.Path()
}

func (p *Parser) debug(format string, args ...any) {
	if p.logger == nil || !p.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	p.logger.Debug(fmt.Sprintf(format, args...), "line", p.scanner.Line())
}
