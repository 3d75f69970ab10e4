package rawsyntax

import "github.com/vmihailenco/msgpack/v5"

// Snapshot is a msgpack-encodable view of a node's shape, used as a
// golden-file fixture in regression tests so a tree's structure can be
// compared across test runs without re-deriving it from source text.
type Snapshot struct {
	Kind           Kind
	IsToken        bool
	Presence       SourcePresence
	TokenKind      uint16
	Text           string
	LeadingTrivia  string
	TrailingTrivia string
	TextLength     uint32
	Children       []Snapshot
}

// TakeSnapshot captures n's shape, recursing into children.
func TakeSnapshot(n *RawSyntax) Snapshot {
	if n == nil {
		return Snapshot{}
	}
	s := Snapshot{
		Kind:       n.kind,
		IsToken:    n.isToken,
		Presence:   n.presence,
		TextLength: n.textLength,
	}
	if n.isToken {
		s.TokenKind = n.tokenKind
		s.Text = n.text
		s.LeadingTrivia = n.leadingTrivia
		s.TrailingTrivia = n.trailingTrivia
		return s
	}
	for _, c := range n.children {
		s.Children = append(s.Children, TakeSnapshot(c))
	}
	return s
}

// MarshalSnapshot encodes a Snapshot to its msgpack wire form.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	return msgpack.Marshal(s)
}

// UnmarshalSnapshot decodes a Snapshot previously produced by
// MarshalSnapshot.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	err := msgpack.Unmarshal(data, &s)
	return s, err
}
