package rawsyntax

import "testing"

func TestParsingCacheRoundTrip(t *testing.T) {
	arena := NewSyntaxArena()
	tok := MakeToken(arena, 1, "", "x", "")

	cache := NewParsingCache()
	cache.Record(10, tok)

	got, ok := cache.LookUp(10, tok.Kind())
	if !ok || got != tok {
		t.Fatalf("got (%v, %v), want (%v, true)", got, ok, tok)
	}

	if _, ok := cache.LookUp(11, tok.Kind()); ok {
		t.Fatalf("did not expect a hit at a different offset")
	}
}

func TestParsingCacheInvalidate(t *testing.T) {
	arena := NewSyntaxArena()
	before := MakeToken(arena, 1, "", "before", "")
	after := MakeToken(arena, 1, "", "after", "")

	cache := NewParsingCache()
	cache.Record(5, before)
	cache.Record(15, after)

	cache.Invalidate(10)

	if _, ok := cache.LookUp(5, before.Kind()); !ok {
		t.Fatalf("expected entry before the invalidation point to survive")
	}
	if _, ok := cache.LookUp(15, after.Kind()); ok {
		t.Fatalf("expected entry at/after the invalidation point to be dropped")
	}
}
