package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"concore/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "concore",
	Short: "concore task runtime and syntax tooling",
	Long:  `concore drives the structured-concurrency task runtime and the raw-syntax arena toolchain it shares a core with.`,
}

// main registers subcommands and persistent flags, then executes the
// root command. If command execution returns an error, the process
// exits with status code 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(syntaxCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().String("config", "", "path to a concore.toml config file")

	rootCmd.PersistentFlags().String("trace", "", "trace output path (- for stderr, empty disables)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace verbosity (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "ring", "trace storage mode (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace output format (auto|text|ndjson|chrome)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "ring buffer capacity when trace-mode is ring or both")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 disables)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func useColor(cmd *cobra.Command) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
