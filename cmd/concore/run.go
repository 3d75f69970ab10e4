package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"concore/internal/asyncexec"
	"concore/internal/demo"
	"concore/internal/observ"
	"concore/internal/runevent"
	"concore/internal/ui"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a demo structured-concurrency workload on the task executor",
	Long:  `run spawns a root task that fans a task group out over a configurable number of children, each parking on a virtual timer, then joins them to completion.`,
	Args:  cobra.NoArgs,
	RunE:  runExecution,
}

func init() {
	runCmd.Flags().Int("children", 4, "number of group children the root task spawns")
	runCmd.Flags().Uint64("work-ms", 10, "simulated virtual work duration per child, in milliseconds")
	runCmd.Flags().Bool("watch", false, "render live task progress instead of a final summary table")
	runCmd.Flags().Bool("fuzz", false, "use randomized scheduling instead of deterministic FIFO")
	runCmd.Flags().Uint64("seed", 0, "scheduler seed used when --fuzz is set")
	runCmd.Flags().Bool("timing", false, "print phase timings after the run completes")
	runCmd.Flags().Int("lanes", 1, "number of independent workloads to run concurrently on separate executors (disables --watch)")
	runCmd.Flags().Int("lane-jobs", 0, "max concurrent lanes (0 = GOMAXPROCS)")
}

func runExecution(cmd *cobra.Command, _ []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	children, err := cmd.Flags().GetInt("children")
	if err != nil {
		return fmt.Errorf("failed to get children flag: %w", err)
	}
	workMs, err := cmd.Flags().GetUint64("work-ms")
	if err != nil {
		return fmt.Errorf("failed to get work-ms flag: %w", err)
	}
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return fmt.Errorf("failed to get watch flag: %w", err)
	}
	fuzz, err := cmd.Flags().GetBool("fuzz")
	if err != nil {
		return fmt.Errorf("failed to get fuzz flag: %w", err)
	}
	seed, err := cmd.Flags().GetUint64("seed")
	if err != nil {
		return fmt.Errorf("failed to get seed flag: %w", err)
	}
	timing, err := cmd.Flags().GetBool("timing")
	if err != nil {
		return fmt.Errorf("failed to get timing flag: %w", err)
	}
	lanes, err := cmd.Flags().GetInt("lanes")
	if err != nil {
		return fmt.Errorf("failed to get lanes flag: %w", err)
	}
	laneJobs, err := cmd.Flags().GetInt("lane-jobs")
	if err != nil {
		return fmt.Errorf("failed to get lane-jobs flag: %w", err)
	}

	execCfg := cfg.Executor
	if fuzz {
		execCfg.Fuzz = true
		execCfg.Seed = seed
	}
	if activeTracer != nil {
		execCfg.Tracer = activeTracer
	}

	opts := demo.WorkloadOptions{ChildCount: children, WorkMs: workMs}
	timer := observ.NewTimer()

	if lanes > 1 {
		runPhase := timer.Begin("run")
		laneOpts := make([]demo.WorkloadOptions, lanes)
		for i := range laneOpts {
			laneOpts[i] = opts
		}
		results, err := demo.RunWorkloadsParallel(cmd.Context(), laneOpts, laneJobs, runevent.NopSink{})
		timer.End(runPhase, fmt.Sprintf("%d lanes", lanes))
		if err != nil {
			return fmt.Errorf("running lanes: %w", err)
		}
		renderLaneSummary(cmd, results)
		if timing {
			fmt.Fprint(cmd.OutOrStdout(), timer.Summary())
		}
		return nil
	}

	executor := asyncexec.NewExecutor(execCfg)
	runPhase := timer.Begin("run")
	var result demo.WorkloadResult
	if watch {
		result = runWithWatch(executor, opts)
	} else {
		result = demo.RunWorkload(executor, opts, runevent.NopSink{})
	}
	timer.End(runPhase, fmt.Sprintf("%d children", len(result.Children)))

	renderSummary(cmd, result)
	if timing {
		fmt.Fprint(cmd.OutOrStdout(), timer.Summary())
	}
	return nil
}

func runWithWatch(executor *asyncexec.Executor, opts demo.WorkloadOptions) demo.WorkloadResult {
	events := make(chan runevent.Event, 256)
	resultCh := make(chan demo.WorkloadResult, 1)

	go func() {
		result := demo.RunWorkload(executor, opts, runevent.ChannelSink{Ch: events})
		resultCh <- result
		close(events)
	}()

	model := ui.NewProgressModel("concore run", nil, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "watch: %v\n", err)
	}
	return <-resultCh
}

func renderSummary(cmd *cobra.Command, result demo.WorkloadResult) {
	out := cmd.OutOrStdout()
	headerStyle := lipgloss.NewStyle().Bold(true)
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("root task %d completed with %d children", result.RootID, len(result.Children))))
	for i, child := range result.Children {
		fmt.Fprintf(out, "  child %d -> %v\n", i, child.Value)
	}
}

func renderLaneSummary(cmd *cobra.Command, results []demo.WorkloadResult) {
	out := cmd.OutOrStdout()
	headerStyle := lipgloss.NewStyle().Bold(true)
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("ran %d lanes on independent executors", len(results))))
	for i, result := range results {
		fmt.Fprintf(out, "  lane %d: root task %d completed with %d children\n", i, result.RootID, len(result.Children))
	}
}
