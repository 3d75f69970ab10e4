package rawsyntax_test

import (
	"testing"

	"concore/internal/rawsyntax"
	"concore/internal/testkit"
)

const (
	kindFile rawsyntax.Kind = rawsyntax.KindFirstReserved
	kindExpr rawsyntax.Kind = rawsyntax.KindFirstReserved + 1
)

func buildSampleTree(arena *rawsyntax.SyntaxArena) *rawsyntax.RawSyntax {
	left := rawsyntax.MakeToken(arena, 1, "", "foo", " ")
	right := rawsyntax.MakeToken(arena, 2, "", "bar", "")
	missing := rawsyntax.MakeMissingToken(arena, 3)
	expr := rawsyntax.MakeLayout(arena, kindExpr, []*rawsyntax.RawSyntax{left, right, missing})
	return rawsyntax.MakeLayout(arena, kindFile, []*rawsyntax.RawSyntax{expr})
}

func TestTextLengthLawHoldsForSampleTree(t *testing.T) {
	arena := rawsyntax.NewSyntaxArena()
	root := buildSampleTree(arena)
	if err := testkit.CheckTextLengthLaw(root); err != nil {
		t.Fatal(err)
	}
}

func TestTotalSubNodeCountLawHoldsForSampleTree(t *testing.T) {
	arena := rawsyntax.NewSyntaxArena()
	root := buildSampleTree(arena)
	if err := testkit.CheckTotalSubNodeCountLaw(root); err != nil {
		t.Fatal(err)
	}
}

func TestNodeIDsAreUniqueAcrossSampleTree(t *testing.T) {
	arena := rawsyntax.NewSyntaxArena()
	root := buildSampleTree(arena)
	if err := testkit.CheckNodeIDsUnique(root); err != nil {
		t.Fatal(err)
	}
}

func TestInvariantsHoldForMissingNode(t *testing.T) {
	arena := rawsyntax.NewSyntaxArena()
	missing := rawsyntax.MakeMissingNode(arena, kindExpr)
	if err := testkit.CheckTextLengthLaw(missing); err != nil {
		t.Fatal(err)
	}
	if err := testkit.CheckTotalSubNodeCountLaw(missing); err != nil {
		t.Fatal(err)
	}
}
