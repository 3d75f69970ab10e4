package main

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"concore/internal/diag"
	"concore/internal/observ"
	"concore/internal/rawsyntax"
	"concore/internal/source"
)

// Demo token/layout kinds for the syntax command's toy tokenizer. A real
// front-end would define a much larger kind set; this one only needs
// enough structure to exercise RawSyntax construction and Verify.
const (
	kindWord  uint16 = 1
	kindPunct uint16 = 2

	layoutFile rawsyntax.Kind = rawsyntax.KindFirstReserved
)

var syntaxCmd = &cobra.Command{
	Use:   "syntax [flags] <file>",
	Short: "Tokenize a file into a raw syntax tree and verify it",
	Long:  `syntax runs a minimal whitespace tokenizer over a file, builds a RawSyntax tree from the result, verifies node kinds, and dumps the tree.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSyntax,
}

func init() {
	syntaxCmd.Flags().Bool("trivia", false, "include leading/trailing trivia in the dump")
	syntaxCmd.Flags().Bool("verify-only", false, "only report verification findings, skip the tree dump")
	syntaxCmd.Flags().Bool("timing", false, "print phase timings after verification")
	syntaxCmd.Flags().Bool("source", false, "print the reconstructed source text instead of the structural dump")
	syntaxCmd.Flags().Bool("visual", false, "with --source, annotate the reconstructed text with structural markers")
	syntaxCmd.Flags().Bool("print-syntax-kind", false, "with --source --visual, label markers with each node's numeric kind")
	syntaxCmd.Flags().Bool("print-trivial-node-kind", false, "with --source --visual, also render missing tokens inline")
}

func runSyntax(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	showTrivia, err := cmd.Flags().GetBool("trivia")
	if err != nil {
		return fmt.Errorf("failed to get trivia flag: %w", err)
	}
	verifyOnly, err := cmd.Flags().GetBool("verify-only")
	if err != nil {
		return fmt.Errorf("failed to get verify-only flag: %w", err)
	}
	timing, err := cmd.Flags().GetBool("timing")
	if err != nil {
		return fmt.Errorf("failed to get timing flag: %w", err)
	}
	printSource, err := cmd.Flags().GetBool("source")
	if err != nil {
		return fmt.Errorf("failed to get source flag: %w", err)
	}
	visual, err := cmd.Flags().GetBool("visual")
	if err != nil {
		return fmt.Errorf("failed to get visual flag: %w", err)
	}
	printSyntaxKind, err := cmd.Flags().GetBool("print-syntax-kind")
	if err != nil {
		return fmt.Errorf("failed to get print-syntax-kind flag: %w", err)
	}
	printTrivialNodeKind, err := cmd.Flags().GetBool("print-trivial-node-kind")
	if err != nil {
		return fmt.Errorf("failed to get print-trivial-node-kind flag: %w", err)
	}

	timer := observ.NewTimer()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual(args[0], content)

	tokenizePhase := timer.Begin("tokenize")
	arena := rawsyntax.NewSyntaxArena()
	tokens := tokenize(string(content))
	timer.End(tokenizePhase, fmt.Sprintf("%d tokens", len(tokens)))

	buildPhase := timer.Begin("build")
	children := make([]*rawsyntax.RawSyntax, 0, len(tokens))
	for _, tok := range tokens {
		children = append(children, rawsyntax.MakeToken(arena, tok.kind, tok.leading, tok.text, ""))
	}
	root := rawsyntax.MakeLayout(arena, layoutFile, children)
	timer.End(buildPhase, "")

	verifyPhase := timer.Begin("verify")
	bag := diag.NewBag(100)
	known := map[rawsyntax.Kind]bool{layoutFile: true}
	rawsyntax.VerifyToBag(root, known, fileID, bag)
	timer.End(verifyPhase, fmt.Sprintf("%d findings", bag.Len()))

	reportDiagnostics(cmd, bag, fs)

	defer func() {
		if timing {
			fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
		}
	}()

	if verifyOnly {
		return nil
	}

	dumpPhase := timer.Begin("dump")
	var out string
	if printSource {
		out = rawsyntax.Print(root, rawsyntax.PrintOptions{
			Visual:               visual,
			PrintSyntaxKind:      printSyntaxKind,
			PrintTrivialNodeKind: printTrivialNodeKind,
		})
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
	} else {
		out = rawsyntax.Dump(root, rawsyntax.PrintOptions{PrintTrivia: showTrivia})
		if useColor(cmd) {
			out = colorizeDump(out)
		}
	}
	timer.End(dumpPhase, "")
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// reportDiagnostics resolves bag's findings against fs and prints them as
// path:line:col locations, the same rendering diag.FormatShortDiagnostics
// gives any other diagnostic consumer in this tree.
func reportDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) {
	if bag.Len() == 0 {
		return
	}
	out := cmd.ErrOrStderr()
	items := bag.Items()
	ptrs := make([]*diag.Diagnostic, len(items))
	for i := range items {
		ptrs[i] = &items[i]
	}
	formatted := diag.FormatShortDiagnostics(ptrs, fs, false)
	if formatted == "" {
		return
	}
	if useColor(cmd) {
		color.New(color.FgYellow).Fprintln(out, formatted)
		return
	}
	fmt.Fprintln(out, formatted)
}

func colorizeDump(dump string) string {
	tokenColor := color.New(color.FgCyan)
	layoutColor := color.New(color.FgGreen)
	tokenColor.EnableColor()
	layoutColor.EnableColor()
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimSuffix(dump, "\n"), "\n") {
		switch {
		case strings.Contains(line, "token("):
			b.WriteString(tokenColor.Sprint(line))
		case strings.Contains(line, "layout("):
			b.WriteString(layoutColor.Sprint(line))
		default:
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

type demoToken struct {
	kind    uint16
	leading string
	text    string
}

// tokenize splits src into runs of whitespace (kept as the following
// token's leading trivia) and runs of either letters/digits or
// punctuation.
func tokenize(src string) []demoToken {
	var tokens []demoToken
	runes := []rune(src)
	i := 0
	for i < len(runes) {
		start := i
		for i < len(runes) && unicode.IsSpace(runes[i]) {
			i++
		}
		leading := string(runes[start:i])
		if i >= len(runes) {
			break
		}
		wordStart := i
		isWord := unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i])
		for i < len(runes) && !unicode.IsSpace(runes[i]) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i])) == isWord {
			i++
		}
		kind := kindPunct
		if isWord {
			kind = kindWord
		}
		tokens = append(tokens, demoToken{kind: kind, leading: leading, text: string(runes[wordStart:i])})
	}
	return tokens
}
