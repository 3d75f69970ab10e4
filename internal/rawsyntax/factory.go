package rawsyntax

import "fortio.org/safecast"

// MakeToken builds a present Token node. leadingTrivia, text and
// trailingTrivia are kept as-is: a Go string is already an immutable,
// independently-held value distinct from whatever mutable buffer (e.g. a
// lexer's scratch slice) the caller built it from, so no further
// arena-managed copy is needed to detach from that buffer. id is
// optional: omit it for a fresh process-wide id, or pass exactly one
// NodeId (e.g. one recovered from the incremental cache) to reuse it
// verbatim, advancing the next-free counter past it (SPEC_FULL §4.7).
func MakeToken(arena *SyntaxArena, kind uint16, leadingTrivia, text, trailingTrivia string, id ...NodeId) *RawSyntax {
	length, err := safecast.Conv[uint32](len(leadingTrivia) + len(text) + len(trailingTrivia))
	if err != nil {
		panic(err)
	}

	return &RawSyntax{
		id:             allocNodeID(id...),
		arena:          arena,
		isToken:        true,
		presence:       Present,
		tokenKind:      kind,
		leadingTrivia:  leadingTrivia,
		text:           text,
		trailingTrivia: trailingTrivia,
		textLength:     length,
	}
}

// MakeMissingToken builds a Missing Token node carrying no text. id is
// optional, as in MakeToken.
func MakeMissingToken(arena *SyntaxArena, kind uint16, id ...NodeId) *RawSyntax {
	return &RawSyntax{
		id:        allocNodeID(id...),
		arena:     arena,
		isToken:   true,
		presence:  Missing,
		tokenKind: kind,
	}
}

// MakeLayout builds a present Layout node from children, recording arena
// retention links for any child built in a different arena and computing
// TextLength/TotalSubNodeCount bottom-up from the children, exactly as
// the original constructor does inline. id is optional, as in MakeToken.
func MakeLayout(arena *SyntaxArena, kind Kind, children []*RawSyntax, id ...NodeId) *RawSyntax {
	return makeLayout(arena, kind, children, Present, id...)
}

// MakeMissingNode builds a Missing Layout node with no children and zero
// text length — used to plug a required-but-absent grammar slot. id is
// optional, as in MakeToken.
func MakeMissingNode(arena *SyntaxArena, kind Kind, id ...NodeId) *RawSyntax {
	return makeLayout(arena, kind, nil, Missing, id...)
}

func makeLayout(arena *SyntaxArena, kind Kind, children []*RawSyntax, presence SourcePresence, id ...NodeId) *RawSyntax {
	var textLen uint64
	var subNodes uint64
	for _, c := range children {
		if c == nil {
			continue
		}
		textLen += uint64(c.textLength)
		subNodes += uint64(c.totalSubNodeCount) + 1
		if c.arena != nil {
			arena.addChildArena(c.arena)
		}
	}
	length, err := safecast.Conv[uint32](textLen)
	if err != nil {
		panic(err)
	}
	count, err := safecast.Conv[uint32](subNodes)
	if err != nil {
		panic(err)
	}

	return &RawSyntax{
		id:                allocNodeID(id...),
		arena:             arena,
		kind:              kind,
		presence:          presence,
		children:          children,
		textLength:        length,
		totalSubNodeCount: count,
	}
}

// CacheLookup is the incremental-parse cache boundary: given a lexer
// offset and the kind the parser is currently trying to produce, it
// either returns a previously-built node to reuse verbatim (skipping
// re-parsing and re-recording that subtree) or reports a cache miss.
type CacheLookup interface {
	LookUp(lexerOffset int, kind Kind) (*RawSyntax, bool)
}

// SyntaxTreeCreator is the external boundary a parser drives while
// building a tree: it owns the arena for the file being parsed and,
// when given a cache, can short-circuit re-parsing unchanged regions.
type SyntaxTreeCreator struct {
	Arena *SyntaxArena
	Cache CacheLookup // nil disables incremental lookups
}

// NewSyntaxTreeCreator creates a tree creator backed by a fresh arena.
func NewSyntaxTreeCreator(cache CacheLookup) *SyntaxTreeCreator {
	return &SyntaxTreeCreator{Arena: NewSyntaxArena(), Cache: cache}
}

// RecordToken records a present token built from the parser's lexed
// trivia/text. id is optional: a parser doing incremental reparse passes
// the id LookupNode handed back for a reused cache hit; a fresh parse
// omits it.
func (c *SyntaxTreeCreator) RecordToken(kind uint16, leadingTrivia, text, trailingTrivia string, id ...NodeId) *RawSyntax {
	return MakeToken(c.Arena, kind, leadingTrivia, text, trailingTrivia, id...)
}

// RecordMissingToken records a missing token at a grammar slot the
// parser could not fill. id is optional, as in RecordToken.
func (c *SyntaxTreeCreator) RecordMissingToken(kind uint16, id ...NodeId) *RawSyntax {
	return MakeMissingToken(c.Arena, kind, id...)
}

// RecordRawSyntax records a present Layout node over elements. A nil
// element represents an absent optional child slot and contributes no
// text length, matching the original's handling of a null OpaqueSyntaxNode.
// id is optional, as in RecordToken.
func (c *SyntaxTreeCreator) RecordRawSyntax(kind Kind, elements []*RawSyntax, id ...NodeId) *RawSyntax {
	return MakeLayout(c.Arena, kind, elements, id...)
}

// RecordMissingNode records a missing Layout node. id is optional, as in
// RecordToken.
func (c *SyntaxTreeCreator) RecordMissingNode(kind Kind, id ...NodeId) *RawSyntax {
	return MakeMissingNode(c.Arena, kind, id...)
}

// LookupNode consults the incremental cache, returning the cached node's
// text length and the node itself on a hit. A miss, or a tree creator
// with no cache installed, reports (0, nil, false).
func (c *SyntaxTreeCreator) LookupNode(lexerOffset int, kind Kind) (length uint32, node *RawSyntax, hit bool) {
	if c.Cache == nil {
		return 0, nil, false
	}
	node, hit = c.Cache.LookUp(lexerOffset, kind)
	if !hit {
		return 0, nil, false
	}
	return node.TextLength(), node, true
}

// RealizeRoot finalizes root as the tree's root node, running verify
// against it if verify is non-nil. Non-fatal: verification findings are
// appended to the caller-supplied diagnostic sink rather than rejecting
// the tree.
func (c *SyntaxTreeCreator) RealizeRoot(root *RawSyntax, verify func(*RawSyntax)) *RawSyntax {
	if verify != nil {
		verify(root)
	}
	return root
}
