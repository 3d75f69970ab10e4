package rawsyntax

import (
	"fmt"
	"strings"
	"testing"
)

func TestDumpIndentsOneChildPerLine(t *testing.T) {
	arena := NewSyntaxArena()
	a := MakeToken(arena, 1, "", "a", "")
	b := MakeToken(arena, 1, "", "b", "")
	layout := MakeLayout(arena, kindExpr, []*RawSyntax{a, b})

	out := Dump(layout, PrintOptions{})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (layout + 2 tokens), output:\n%s", len(lines), out)
	}
	if strings.HasPrefix(lines[1], "  ") == false {
		t.Fatalf("expected child lines to be indented, got %q", lines[1])
	}
}

func TestDumpWithTriviaIncludesItInOutput(t *testing.T) {
	arena := NewSyntaxArena()
	tok := MakeToken(arena, 1, " ", "x", "\n")

	out := Dump(tok, PrintOptions{PrintTrivia: true})
	if !strings.Contains(out, "lead=") {
		t.Fatalf("expected trivia in output, got %q", out)
	}
}

func TestPrintWithDefaultOptionsReproducesExactSourceSlice(t *testing.T) {
	arena := NewSyntaxArena()
	ifTok := MakeToken(arena, 1, "", "if", " ")
	open := MakeToken(arena, 2, "", "(", "")
	name := MakeToken(arena, 3, "", "x", "")
	closeTok := MakeToken(arena, 2, "", ")", " ")
	layout := MakeLayout(arena, kindExpr, []*RawSyntax{ifTok, open, name, closeTok})

	const want = "if (x) "
	if got := Print(layout, PrintOptions{}); got != want {
		t.Fatalf("Print() = %q, want %q", got, want)
	}
	if layout.TextLength() != uint32(len(want)) {
		t.Fatalf("TextLength() = %d, want %d", layout.TextLength(), len(want))
	}
}

func TestPrintVisualWrapsLayoutsWithoutChangingText(t *testing.T) {
	arena := NewSyntaxArena()
	tok := MakeToken(arena, 1, "", "x", "")
	layout := MakeLayout(arena, kindExpr, []*RawSyntax{tok})

	plain := Print(layout, PrintOptions{})
	visual := Print(layout, PrintOptions{Visual: true})
	if !strings.Contains(visual, plain) {
		t.Fatalf("visual output %q does not contain reconstructed text %q", visual, plain)
	}
	if visual == plain {
		t.Fatalf("expected Visual to add markers around the reconstructed text")
	}
}

func TestPrintVisualWithSyntaxKindLabelsMarkersByKind(t *testing.T) {
	arena := NewSyntaxArena()
	tok := MakeToken(arena, 1, "", "x", "")
	layout := MakeLayout(arena, kindExpr, []*RawSyntax{tok})

	out := Print(layout, PrintOptions{Visual: true, PrintSyntaxKind: true})
	want := fmt.Sprintf("<%d>x</%d>", kindExpr, kindExpr)
	if out != want {
		t.Fatalf("Print() = %q, want %q", out, want)
	}
}

func TestPrintVisualWithTrivialNodeKindRendersMissingTokens(t *testing.T) {
	arena := NewSyntaxArena()
	missing := MakeMissingToken(arena, 7)
	layout := MakeLayout(arena, kindExpr, []*RawSyntax{missing})

	if out := Print(layout, PrintOptions{Visual: true}); out != "<node></node>" {
		t.Fatalf("Print() without PrintTrivialNodeKind = %q, want no trace of the missing token", out)
	}
	if out := Print(layout, PrintOptions{Visual: true, PrintTrivialNodeKind: true}); out != "<node><missing:7/></node>" {
		t.Fatalf("Print() = %q, want the missing token rendered inline", out)
	}
}
