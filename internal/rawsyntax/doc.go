// Package rawsyntax implements the immutable, arena-allocated raw syntax
// tree used as a parser front-end's backbone: tagged Token/Layout nodes,
// a reference-counted SyntaxArena with child-arena retention, a tree-creator
// boundary (SyntaxTreeCreator) for recording nodes during parsing, and a
// non-fatal post-construction verifier.
//
// Nodes have no identity beyond their NodeId and carry no source location;
// the same node may be structurally shared across unrelated trees.
package rawsyntax
