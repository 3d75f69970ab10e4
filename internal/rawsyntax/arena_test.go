package rawsyntax

import "testing"

func TestArenaRetainRelease(t *testing.T) {
	a := NewSyntaxArena()
	if a.RefCount() != 1 {
		t.Fatalf("got refcount %d, want 1", a.RefCount())
	}
	a.Retain()
	if a.RefCount() != 2 {
		t.Fatalf("got refcount %d, want 2", a.RefCount())
	}
	a.Release()
	if a.RefCount() != 1 {
		t.Fatalf("got refcount %d, want 1", a.RefCount())
	}
}

func TestChildArenaKeptAliveByParent(t *testing.T) {
	child := NewSyntaxArena()
	parent := NewSyntaxArena()

	parent.addChildArena(child)
	if child.RefCount() != 2 {
		t.Fatalf("got child refcount %d, want 2 after being adopted", child.RefCount())
	}

	parent.Release()
	if child.RefCount() != 1 {
		t.Fatalf("got child refcount %d, want 1 after parent released", child.RefCount())
	}
}

func TestAddChildArenaIgnoresSelfAndDuplicates(t *testing.T) {
	a := NewSyntaxArena()
	a.addChildArena(a)
	if a.RefCount() != 1 {
		t.Fatalf("self-adoption must not retain")
	}

	child := NewSyntaxArena()
	a.addChildArena(child)
	a.addChildArena(child)
	if child.RefCount() != 2 {
		t.Fatalf("got refcount %d, want 2 (duplicate adoption must be a no-op)", child.RefCount())
	}
}

