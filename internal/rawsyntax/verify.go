package rawsyntax

import (
	"fmt"

	"concore/internal/diag"
	"concore/internal/source"
)

// Verify walks root and reports a warning diagnostic for every node
// whose Kind is not present in known. It never mutates the tree and
// never panics — unknown-kind findings are reported, not rejected,
// matching the original's SyntaxVerifier, which diagnoses unknown nodes
// without refusing to build the tree around them.
//
// file identifies the source file a caller has registered root's text
// under (e.g. via source.FileSet.AddVirtual); each finding's span covers
// exactly the node's reconstructed text, computed by accumulating
// TextLength across preceding siblings during the walk — the same
// running offset a real incremental lexer keeps rather than a stored
// absolute position on the node itself.
func Verify(root *RawSyntax, known map[Kind]bool, file source.FileID, r diag.Reporter) {
	verifyAt(root, known, file, 0, r)
}

func verifyAt(n *RawSyntax, known map[Kind]bool, file source.FileID, offset uint32, r diag.Reporter) {
	if n == nil {
		return
	}
	span := source.Span{File: file, Start: offset, End: offset + n.textLength}
	// Tokens are skipped here: TokenKind is a lexical-category namespace
	// a front-end defines separately from Kind, which only names Layout
	// productions, so known (a Kind set) has nothing meaningful to check
	// a token against.
	if !n.isToken && !known[n.kind] {
		diag.ReportWarning(r, diag.RstUnknownKind, span,
			fmt.Sprintf("raw syntax node has unrecognized kind %d (id %d)", n.kind, n.id)).Emit()
	}
	childOffset := offset
	for _, c := range n.children {
		verifyAt(c, known, file, childOffset, r)
		if c != nil {
			childOffset += c.textLength
		}
	}
}

// VerifyToBag is a convenience wrapper for callers that just want the
// findings collected, deduplicated, into a Bag.
func VerifyToBag(root *RawSyntax, known map[Kind]bool, file source.FileID, bag *diag.Bag) {
	Verify(root, known, file, diag.NewDedupReporter(diag.BagReporter{Bag: bag}))
}
