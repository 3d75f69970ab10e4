package rawsyntax

import "fortio.org/safecast"

// WithLeadingTrivia returns a new Token node identical to n but with its
// leading trivia replaced. n is never mutated; every transform in this
// file returns a fresh node sharing n's arena.
func (n *RawSyntax) WithLeadingTrivia(trivia string) *RawSyntax {
	if !n.isToken {
		panic("rawsyntax: WithLeadingTrivia on a non-token node")
	}
	out := *n
	out.id = allocNodeID()
	out.leadingTrivia = trivia
	out.textLength = recomputeTokenLength(trivia, out.text, out.trailingTrivia)
	return &out
}

// WithTrailingTrivia returns a new Token node identical to n but with its
// trailing trivia replaced.
func (n *RawSyntax) WithTrailingTrivia(trivia string) *RawSyntax {
	if !n.isToken {
		panic("rawsyntax: WithTrailingTrivia on a non-token node")
	}
	out := *n
	out.id = allocNodeID()
	out.trailingTrivia = trivia
	out.textLength = recomputeTokenLength(out.leadingTrivia, out.text, trivia)
	return &out
}

func recomputeTokenLength(leading, text, trailing string) uint32 {
	n, err := safecast.Conv[uint32](len(leading) + len(text) + len(trailing))
	if err != nil {
		panic(err)
	}
	return n
}

// Append returns a new Layout node with child appended after n's existing
// children.
func (n *RawSyntax) Append(child *RawSyntax) *RawSyntax {
	if n.isToken {
		panic("rawsyntax: Append on a token node")
	}
	children := make([]*RawSyntax, len(n.children)+1)
	copy(children, n.children)
	children[len(n.children)] = child
	return makeLayout(n.arena, n.kind, children, n.presence)
}

// ReplacingChild returns a new Layout node with the child at index
// replaced by replacement. Panics if index is out of range.
func (n *RawSyntax) ReplacingChild(index int, replacement *RawSyntax) *RawSyntax {
	if n.isToken {
		panic("rawsyntax: ReplacingChild on a token node")
	}
	if index < 0 || index >= len(n.children) {
		panic("rawsyntax: ReplacingChild index out of range")
	}
	children := make([]*RawSyntax, len(n.children))
	copy(children, n.children)
	children[index] = replacement
	return makeLayout(n.arena, n.kind, children, n.presence)
}
