package main

import (
	"testing"

	"github.com/spf13/cobra"
)

func newTestRootWithColorFlag(t *testing.T, color string) *cobra.Command {
	t.Helper()
	root := &cobra.Command{Use: "concore"}
	root.PersistentFlags().String("color", color, "")
	child := &cobra.Command{Use: "run"}
	root.AddCommand(child)
	return child
}

func TestUseColorOnForcesColor(t *testing.T) {
	if !useColor(newTestRootWithColorFlag(t, "on")) {
		t.Fatal("useColor(\"on\") = false, want true")
	}
}

func TestUseColorOffDisablesColor(t *testing.T) {
	if useColor(newTestRootWithColorFlag(t, "off")) {
		t.Fatal("useColor(\"off\") = true, want false")
	}
}

func TestUseColorAutoFallsBackWhenNotATerminal(t *testing.T) {
	// go test's stdout is not a terminal, so auto-detection should disable color.
	if useColor(newTestRootWithColorFlag(t, "auto")) {
		t.Fatal("useColor(\"auto\") = true under go test, want false")
	}
}
