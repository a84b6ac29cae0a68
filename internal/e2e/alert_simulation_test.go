package e2e

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type alertScenario struct {
	name       string
	severity   string
	threshold  float64
	actual     float64
	window     time.Duration
	runbookRef string
}

func TestAlertSimulationProducesFiringAndResolvedLogs(t *testing.T) {
	scenarios := []alertScenario{
		{
			name:       "HighErrorRate",
			severity:   "critical",
			threshold:  0.05,
			actual:     0.08,
			window:     5 * time.Minute,
			runbookRef: "docs/runbook.md#high-error-rate",
		},
		{
			name:       "HighLatency",
			severity:   "warning",
			threshold:  1,
			actual:     1.4,
			window:     10 * time.Minute,
			runbookRef: "docs/runbook.md#high-latency",
		},
		{
			name:       "JobFailures",
			severity:   "warning",
			threshold:  0,
			actual:     3,
			window:     15 * time.Minute,
			runbookRef: "docs/runbook.md#job-failures",
		},
	}

	var logBuilder strings.Builder
	for _, scenario := range scenarios {
		logBuilder.WriteString(renderAlertLog("FIRING", scenario))
		logBuilder.WriteString(renderAlertLog("RESOLVED", scenario))
	}

	logOutput := logBuilder.String()
	for _, scenario := range scenarios {
		if !strings.Contains(logOutput, renderAlertLog("FIRING", scenario)) {
			t.Fatalf("expected log to contain firing entry for %s", scenario.name)
		}
		if !strings.Contains(logOutput, renderAlertLog("RESOLVED", scenario)) {
			t.Fatalf("expected log to contain resolved entry for %s", scenario.name)
		}
	}
}

func TestRunbookAnchorsExist(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "docs", "runbook.md"))
	if err != nil {
		t.Fatalf("read runbook: %v", err)
	}
	anchors := map[string]bool{}
	for _, line := range strings.Split(string(data), "\n") {
		if title, ok := strings.CutPrefix(line, "## "); ok {
			anchors[strings.ReplaceAll(strings.ToLower(strings.TrimSpace(title)), " ", "-")] = true
		}
	}
	for _, want := range []string{"high-error-rate", "high-latency", "job-failures", "fixture-load-errors"} {
		if !anchors[want] {
			t.Fatalf("runbook missing section %s", want)
		}
	}
}

func renderAlertLog(state string, scenario alertScenario) string {
	return fmt.Sprintf("%s %s severity=%s actual=%.2f threshold=%.2f window=%s runbook=%s\n",
		state, scenario.name, scenario.severity, scenario.actual, scenario.threshold, scenario.window, scenario.runbookRef)
}
