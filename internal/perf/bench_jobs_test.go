package perf

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	jobmetrics "github.com/cfohub/cfohub/internal/jobs"
	"github.com/cfohub/cfohub/jobs"
)

func TestJobThroughputAndReliability(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := jobmetrics.NewMetrics(reg)

	// Reminder generation runs hourly and is quick.
	for i := 0; i < 60; i++ {
		tracker := metrics.Track(jobs.TaskReminderGenerate)
		time.Sleep(2 * time.Millisecond)
		if err := tracker.End(nil); err != nil {
			t.Fatalf("unexpected error ending reminder tracker: %v", err)
		}
	}

	// OMIE batches are slower but stay well within budget.
	for i := 0; i < 15; i++ {
		tracker := metrics.Track(jobs.TaskOmieSync)
		time.Sleep(10 * time.Millisecond)
		if err := tracker.End(nil); err != nil {
			t.Fatalf("unexpected error ending omie tracker: %v", err)
		}
	}

	for i := 0; i < 3; i++ {
		tracker := metrics.Track(jobs.TaskReminderGenerate)
		if err := tracker.End(errors.New("roster unavailable")); err == nil {
			t.Fatal("expected error to propagate")
		}
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	success := metricValue(t, families, "cfohub_jobs_total", map[string]string{"job": jobs.TaskReminderGenerate, "status": "success"})
	failure := metricValue(t, families, "cfohub_jobs_total", map[string]string{"job": jobs.TaskReminderGenerate, "status": "failure"})
	if success+failure == 0 {
		t.Fatal("no reminder executions recorded")
	}
	if ratio := success / (success + failure); ratio < 0.9 {
		t.Fatalf("reminder success ratio too low: %f", ratio)
	}
	if failures := metricValue(t, families, "cfohub_jobs_failures_total", map[string]string{"job": jobs.TaskReminderGenerate}); failures != 3 {
		t.Fatalf("expected 3 failures, got %f", failures)
	}

	if mean := histogramMean(t, families, "cfohub_job_duration_seconds", map[string]string{"job": jobs.TaskOmieSync}); mean > 2.0 {
		t.Fatalf("omie sync duration above budget: %f", mean)
	}
	if mean := histogramMean(t, families, "cfohub_job_duration_seconds", map[string]string{"job": jobs.TaskReminderGenerate}); mean > 0.5 {
		t.Fatalf("reminder duration above budget: %f", mean)
	}
}

func metricValue(t *testing.T, families []*dto.MetricFamily, name string, labels map[string]string) float64 {
	t.Helper()
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, metric := range fam.GetMetric() {
			if hasLabels(metric, labels) {
				if fam.GetType() == dto.MetricType_COUNTER {
					return metric.GetCounter().GetValue()
				}
				if fam.GetType() == dto.MetricType_GAUGE {
					return metric.GetGauge().GetValue()
				}
			}
		}
	}
	t.Fatalf("metric %s with labels %v not found", name, labels)
	return 0
}

func histogramMean(t *testing.T, families []*dto.MetricFamily, name string, labels map[string]string) float64 {
	t.Helper()
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, metric := range fam.GetMetric() {
			if hasLabels(metric, labels) {
				hist := metric.GetHistogram()
				if hist == nil || hist.GetSampleCount() == 0 {
					t.Fatalf("histogram %s missing samples", name)
				}
				return hist.GetSampleSum() / float64(hist.GetSampleCount())
			}
		}
	}
	t.Fatalf("histogram %s with labels %v not found", name, labels)
	return 0
}

func hasLabels(metric *dto.Metric, labels map[string]string) bool {
	for _, lp := range metric.GetLabel() {
		if val, ok := labels[lp.GetName()]; ok {
			if lp.GetValue() != val {
				return false
			}
		}
	}
	for key := range labels {
		found := false
		for _, lp := range metric.GetLabel() {
			if lp.GetName() == key {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
