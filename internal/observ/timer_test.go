package observ

import (
	"strings"
	"testing"
)

func TestTimerReportAccumulatesPhases(t *testing.T) {
	timer := NewTimer()
	a := timer.Begin("tokenize")
	timer.End(a, "3 tokens")
	b := timer.Begin("build")
	timer.End(b, "")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("got %d phases, want 2", len(report.Phases))
	}
	if report.Phases[0].Name != "tokenize" || report.Phases[0].Note != "3 tokens" {
		t.Fatalf("phase 0 = %+v", report.Phases[0])
	}
	if report.Phases[1].Name != "build" || report.Phases[1].Note != "" {
		t.Fatalf("phase 1 = %+v", report.Phases[1])
	}
}

func TestTimerEndIgnoresOutOfRangeIndex(t *testing.T) {
	timer := NewTimer()
	timer.End(5, "ignored")
	if report := timer.Report(); len(report.Phases) != 0 {
		t.Fatalf("got %d phases, want 0", len(report.Phases))
	}
}

func TestTimerSummaryIncludesTotal(t *testing.T) {
	timer := NewTimer()
	idx := timer.Begin("phase")
	timer.End(idx, "")

	summary := timer.Summary()
	if !strings.Contains(summary, "total") {
		t.Fatalf("Summary has no total line: %q", summary)
	}
}

func TestTimerReportEmptyWhenNoPhases(t *testing.T) {
	report := NewTimer().Report()
	if report.TotalMS != 0 || len(report.Phases) != 0 {
		t.Fatalf("report = %+v, want zero value", report)
	}
}
