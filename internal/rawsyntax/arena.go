package rawsyntax

import "sync/atomic"

// SyntaxArena owns a node tree's lifetime and keeps child arenas it has
// come to depend on alive. It does not own node text storage: Go strings
// are already immutable, so a string copied out of a lexer's scratch
// buffer needs no further arena-managed backing store the way the
// original's bump allocator provides for mutable C++ buffers — the copy
// itself is the retention.
//
// A node built in arena A that references a node built in arena B (for
// instance, a reused subtree lifted from a previous parse) pins B alive
// by adding it to A's child-arena set — that single retention link
// replaces the per-node refcounting a naive Go port would otherwise need,
// mirroring the original runtime's "arena retains arena" design instead
// of "node retains arena".
type SyntaxArena struct {
	refs atomic.Int32

	children map[*SyntaxArena]struct{}
}

// NewSyntaxArena creates an arena with one initial retain. Call Retain for
// every additional long-lived holder and Release to give one back; once
// the ref count reaches zero the arena releases every child it retained.
func NewSyntaxArena() *SyntaxArena {
	a := &SyntaxArena{}
	a.refs.Store(1)
	return a
}

func (a *SyntaxArena) Retain() {
	if a == nil {
		return
	}
	a.refs.Add(1)
}

func (a *SyntaxArena) Release() {
	if a == nil {
		return
	}
	if a.refs.Add(-1) != 0 {
		return
	}
	for child := range a.children {
		child.Release()
	}
}

// RefCount reports the arena's current retain count, for tests and debug
// tooling.
func (a *SyntaxArena) RefCount() int32 { return a.refs.Load() }

// addChildArena records that a node built in a belongs to, or references
// a node from, other, keeping other alive for at least as long as a is.
// A no-op if other is a or already recorded.
func (a *SyntaxArena) addChildArena(other *SyntaxArena) {
	if other == nil || other == a {
		return
	}
	if a.children == nil {
		a.children = make(map[*SyntaxArena]struct{})
	}
	if _, ok := a.children[other]; ok {
		return
	}
	a.children[other] = struct{}{}
	other.Retain()
}
