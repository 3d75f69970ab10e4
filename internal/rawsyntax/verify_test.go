package rawsyntax

import (
	"testing"

	"concore/internal/diag"
	"concore/internal/source"
)

func TestVerifyFlagsUnknownKind(t *testing.T) {
	arena := NewSyntaxArena()
	tok := MakeToken(arena, 1, "", "x", "")
	layout := MakeLayout(arena, kindExpr, []*RawSyntax{tok})

	bag := diag.NewBag(16)
	VerifyToBag(layout, map[Kind]bool{kindFile: true}, source.FileID(0), bag)

	if !bag.HasWarnings() {
		t.Fatalf("expected a warning for the unrecognized layout kind")
	}
}

func TestVerifyAcceptsKnownKind(t *testing.T) {
	arena := NewSyntaxArena()
	tok := MakeToken(arena, 1, "", "x", "")
	layout := MakeLayout(arena, kindExpr, []*RawSyntax{tok})

	bag := diag.NewBag(16)
	VerifyToBag(layout, map[Kind]bool{kindExpr: true}, source.FileID(0), bag)

	if bag.HasWarnings() {
		t.Fatalf("did not expect warnings for a known kind")
	}
}

func TestVerifyNeverFlagsTokens(t *testing.T) {
	arena := NewSyntaxArena()
	tok := MakeToken(arena, 1, "", "x", "")

	bag := diag.NewBag(16)
	VerifyToBag(tok, map[Kind]bool{}, source.FileID(0), bag)

	if bag.HasWarnings() {
		t.Fatalf("tokens must never be flagged, they have no grammar kind")
	}
}

func TestVerifySpanCoversNodesReconstructedText(t *testing.T) {
	arena := NewSyntaxArena()
	first := MakeToken(arena, 1, "", "if", " ")
	second := MakeToken(arena, 1, "", "x", "")
	layout := MakeLayout(arena, kindExpr, []*RawSyntax{first, second})

	bag := diag.NewBag(16)
	const file = source.FileID(3)
	VerifyToBag(layout, map[Kind]bool{}, file, bag)

	if !bag.HasWarnings() {
		t.Fatalf("expected a warning for the unrecognized layout kind")
	}
	span := bag.Items()[0].Primary
	if span.File != file {
		t.Fatalf("span.File = %v, want %v", span.File, file)
	}
	if span.Start != 0 || span.End != layout.TextLength() {
		t.Fatalf("span = %v, want [0, %d)", span, layout.TextLength())
	}
}
