package rawsyntax

import "testing"

const (
	kindFile Kind = KindFirstReserved
	kindExpr Kind = KindFirstReserved + 1
)

func TestMakeTokenComputesTextLength(t *testing.T) {
	arena := NewSyntaxArena()
	tok := MakeToken(arena, 1, " ", "foo", "\n")

	if tok.TextLength() != uint32(len(" foo\n")) {
		t.Fatalf("got %d, want %d", tok.TextLength(), len(" foo\n"))
	}
	if !tok.IsToken() {
		t.Fatalf("expected IsToken")
	}
	if tok.Presence() != Present {
		t.Fatalf("expected Present")
	}
}

func TestMakeMissingTokenHasZeroLength(t *testing.T) {
	arena := NewSyntaxArena()
	tok := MakeMissingToken(arena, 1)
	if tok.TextLength() != 0 {
		t.Fatalf("got %d, want 0", tok.TextLength())
	}
	if !tok.IsMissing() {
		t.Fatalf("expected Missing")
	}
}

func TestMakeLayoutAggregatesChildren(t *testing.T) {
	arena := NewSyntaxArena()
	a := MakeToken(arena, 1, "", "a", "")
	b := MakeToken(arena, 1, "", "bb", "")

	layout := MakeLayout(arena, kindExpr, []*RawSyntax{a, b})

	if layout.TextLength() != a.TextLength()+b.TextLength() {
		t.Fatalf("got %d, want %d", layout.TextLength(), a.TextLength()+b.TextLength())
	}
	if layout.TotalSubNodeCount() != 2 {
		t.Fatalf("got %d, want 2", layout.TotalSubNodeCount())
	}
	if layout.NumChildren() != 2 {
		t.Fatalf("got %d children, want 2", layout.NumChildren())
	}
}

func TestMakeLayoutSkipsNilChildren(t *testing.T) {
	arena := NewSyntaxArena()
	a := MakeToken(arena, 1, "", "a", "")

	layout := MakeLayout(arena, kindExpr, []*RawSyntax{a, nil})
	if layout.TextLength() != a.TextLength() {
		t.Fatalf("got %d, want %d", layout.TextLength(), a.TextLength())
	}
	if layout.TotalSubNodeCount() != 1 {
		t.Fatalf("got %d, want 1", layout.TotalSubNodeCount())
	}
}

func TestCrossArenaChildIsRetained(t *testing.T) {
	childArena := NewSyntaxArena()
	tok := MakeToken(childArena, 1, "", "shared", "")

	parentArena := NewSyntaxArena()
	MakeLayout(parentArena, kindExpr, []*RawSyntax{tok})

	if childArena.RefCount() != 2 {
		t.Fatalf("got refcount %d, want 2 (retained by parent arena)", childArena.RefCount())
	}
}

func TestNodeIdsAreUnique(t *testing.T) {
	arena := NewSyntaxArena()
	a := MakeToken(arena, 1, "", "a", "")
	b := MakeToken(arena, 1, "", "b", "")
	if a.ID() == b.ID() {
		t.Fatalf("expected distinct node ids, got %d == %d", a.ID(), b.ID())
	}
}

func TestSyntaxTreeCreatorRecordToken(t *testing.T) {
	creator := NewSyntaxTreeCreator(nil)
	tok := creator.RecordToken(1, " ", "let", " ")
	if tok.Text() != "let" {
		t.Fatalf("got %q, want let", tok.Text())
	}
	if tok.Arena() != creator.Arena {
		t.Fatalf("expected token to be built in the creator's arena")
	}
}

func TestSyntaxTreeCreatorLookupMissWithoutCache(t *testing.T) {
	creator := NewSyntaxTreeCreator(nil)
	_, node, hit := creator.LookupNode(0, kindExpr)
	if hit || node != nil {
		t.Fatalf("expected a miss with no cache installed")
	}
}

func TestMakeTokenHonorsSuppliedID(t *testing.T) {
	arena := NewSyntaxArena()
	warm := MakeToken(arena, 1, "", "warm up the counter", "")

	reused := warm.ID() + 1000
	tok := MakeToken(arena, 1, "", "x", "", reused)
	if tok.ID() != reused {
		t.Fatalf("got id %d, want the supplied id %d", tok.ID(), reused)
	}
}

func TestMakeTokenAdvancesNextFreeIDPastSuppliedID(t *testing.T) {
	arena := NewSyntaxArena()
	warm := MakeToken(arena, 1, "", "warm up the counter", "")

	reused := warm.ID() + 1000
	MakeToken(arena, 1, "", "reused", "", reused)

	next := MakeToken(arena, 1, "", "fresh", "")
	if next.ID() <= reused {
		t.Fatalf("got fresh id %d, want it to be greater than the supplied id %d", next.ID(), reused)
	}
}

func TestMakeLayoutHonorsSuppliedID(t *testing.T) {
	arena := NewSyntaxArena()
	child := MakeToken(arena, 1, "", "x", "")

	reused := child.ID() + 1000
	layout := MakeLayout(arena, kindExpr, []*RawSyntax{child}, reused)
	if layout.ID() != reused {
		t.Fatalf("got id %d, want the supplied id %d", layout.ID(), reused)
	}
}

func TestSyntaxTreeCreatorRecordTokenHonorsSuppliedID(t *testing.T) {
	creator := NewSyntaxTreeCreator(nil)
	warm := creator.RecordToken(1, "", "warm up the counter", "")

	reused := warm.ID() + 1000
	tok := creator.RecordToken(1, "", "x", "", reused)
	if tok.ID() != reused {
		t.Fatalf("got id %d, want the supplied id %d", tok.ID(), reused)
	}
}

func TestSyntaxTreeCreatorLookupHit(t *testing.T) {
	cache := NewParsingCache()
	creator := NewSyntaxTreeCreator(cache)

	tok := creator.RecordToken(1, "", "x", "")
	cache.Record(5, tok)

	length, node, hit := creator.LookupNode(5, tok.Kind())
	if !hit {
		t.Fatalf("expected a cache hit")
	}
	if node != tok || length != tok.TextLength() {
		t.Fatalf("cache hit returned wrong node/length")
	}
}
