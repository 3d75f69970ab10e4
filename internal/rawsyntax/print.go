package rawsyntax

import (
	"fmt"
	"strings"
)

// PrintOptions controls Dump and Print's output.
type PrintOptions struct {
	// PrintTrivia includes leading/trailing trivia text on Dump's token
	// lines.
	PrintTrivia bool

	// Visual annotates Print's source reconstruction with structural
	// markers (each layout node wrapped in <...>...</...>) instead of
	// emitting bare source text. It never changes the reconstructed text
	// itself, only what surrounds it.
	Visual bool
	// PrintSyntaxKind, under Visual, labels each layout node's marker with
	// its numeric Kind rather than a bare "<node>".
	PrintSyntaxKind bool
	// PrintTrivialNodeKind, under Visual, also renders missing tokens
	// (which contribute no text) as an inline "<missing:KIND/>" marker
	// instead of silently contributing nothing.
	PrintTrivialNodeKind bool
}

// Dump renders root as an indented structural text form, one child per
// line, purely for debugging and golden-file comparisons. It is not the
// format Verify's diagnostics reference (those carry source spans).
func Dump(root *RawSyntax, opts PrintOptions) string {
	var b strings.Builder
	dumpNode(&b, root, 0, opts)
	return b.String()
}

// Print reconstructs root's exact source text by concatenating every
// token's leading trivia, text, and trailing trivia in document order —
// the same traversal TextLength's invariant sums over. With default
// options (Visual unset) this reproduces the exact source slice the tree
// was built from, byte for byte. Visual interleaves structural markers
// around each layout node's reconstructed span without altering that
// text's content, for human inspection of how a span maps to structure.
func Print(root *RawSyntax, opts PrintOptions) string {
	var b strings.Builder
	printNode(&b, root, opts)
	return b.String()
}

func printNode(b *strings.Builder, n *RawSyntax, opts PrintOptions) {
	if n == nil {
		return
	}
	if n.isToken {
		if n.IsMissing() {
			if opts.Visual && opts.PrintTrivialNodeKind {
				fmt.Fprintf(b, "<missing:%d/>", n.tokenKind)
			}
			return
		}
		b.WriteString(n.leadingTrivia)
		b.WriteString(n.text)
		b.WriteString(n.trailingTrivia)
		return
	}
	open, close := "", ""
	if opts.Visual {
		if opts.PrintSyntaxKind {
			open, close = fmt.Sprintf("<%d>", n.kind), fmt.Sprintf("</%d>", n.kind)
		} else {
			open, close = "<node>", "</node>"
		}
	}
	b.WriteString(open)
	for _, c := range n.children {
		printNode(b, c, opts)
	}
	b.WriteString(close)
}

func dumpNode(b *strings.Builder, n *RawSyntax, depth int, opts PrintOptions) {
	indent := strings.Repeat("  ", depth)
	if n == nil {
		fmt.Fprintf(b, "%s<nil>\n", indent)
		return
	}
	if n.isToken {
		if opts.PrintTrivia {
			fmt.Fprintf(b, "%stoken(%d) %q [lead=%q trail=%q] %s\n",
				indent, n.tokenKind, n.text, n.leadingTrivia, n.trailingTrivia, n.presence)
		} else {
			fmt.Fprintf(b, "%stoken(%d) %q %s\n", indent, n.tokenKind, n.text, n.presence)
		}
		return
	}
	fmt.Fprintf(b, "%slayout(kind=%d) len=%d subnodes=%d %s\n",
		indent, n.kind, n.textLength, n.totalSubNodeCount, n.presence)
	for _, c := range n.children {
		dumpNode(b, c, depth+1, opts)
	}
}
