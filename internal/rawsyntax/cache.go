package rawsyntax

// ParsingCache is a concrete, in-memory CacheLookup implementation keyed
// on (lexerOffset, kind) — the same key the original incremental parser
// cache uses to decide whether a subtree can be reused verbatim instead
// of re-parsed. It is not safe for concurrent use; a parse session owns
// one cache for its own duration.
type ParsingCache struct {
	entries map[cacheKey]*RawSyntax
}

type cacheKey struct {
	offset int
	kind   Kind
}

// NewParsingCache creates an empty cache.
func NewParsingCache() *ParsingCache {
	return &ParsingCache{entries: make(map[cacheKey]*RawSyntax)}
}

// Record associates node with (lexerOffset, node.Kind()) for later reuse.
// Call this after a subtree is fully built at that offset in a previous
// parse of the same buffer.
func (c *ParsingCache) Record(lexerOffset int, node *RawSyntax) {
	if node == nil {
		return
	}
	c.entries[cacheKey{offset: lexerOffset, kind: node.kind}] = node
}

// LookUp implements CacheLookup.
func (c *ParsingCache) LookUp(lexerOffset int, kind Kind) (*RawSyntax, bool) {
	node, ok := c.entries[cacheKey{offset: lexerOffset, kind: kind}]
	return node, ok
}

// Invalidate drops every cached entry whose offset falls at or after
// from, used after an edit to stop stale subtrees downstream of the
// edit point from being reused.
func (c *ParsingCache) Invalidate(from int) {
	for k := range c.entries {
		if k.offset >= from {
			delete(c.entries, k)
		}
	}
}
