package pipeline

import (
	"testing"
	"time"

	"github.com/dgallion1/modeltab/internal/params"
)

func TestStatsSnapshotPercentiles(t *testing.T) {
	stats := NewStats(time.Hour)
	for _, ms := range []int64{100, 200, 300, 400, 500} {
		stats.Observe(time.Duration(ms)*time.Millisecond, params.CategoryMedium, false)
	}

	snap := stats.Snapshot()
	if snap.Files != 5 {
		t.Fatalf("expected files=5, got %d", snap.Files)
	}
	if snap.MinMs != 100 {
		t.Fatalf("expected min=100, got %d", snap.MinMs)
	}
	if snap.MaxMs != 500 {
		t.Fatalf("expected max=500, got %d", snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
	if snap.P99Ms != 496 {
		t.Fatalf("expected p99=496, got %f", snap.P99Ms)
	}
}

func TestStatsCountsCategoriesAndDegraded(t *testing.T) {
	stats := NewStats(time.Hour)
	stats.Observe(time.Millisecond, params.CategorySmall, false)
	stats.Observe(time.Millisecond, params.CategoryUnknown, true)
	stats.Observe(time.Millisecond, params.CategoryUnknown, true)

	snap := stats.Snapshot()
	if snap.Degraded != 2 {
		t.Fatalf("expected degraded=2, got %d", snap.Degraded)
	}
	if snap.Categories["unknown"] != 2 || snap.Categories["Small (<1B)"] != 1 {
		t.Fatalf("unexpected categories: %v", snap.Categories)
	}
}

func TestStatsPrunesExpiredSamples(t *testing.T) {
	stats := NewStats(10 * time.Minute)
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	stats.now = func() time.Time { return clock }

	stats.Observe(100*time.Millisecond, params.CategorySmall, false)
	clock = clock.Add(11 * time.Minute)

	if snap := stats.Snapshot(); snap.Files != 0 {
		t.Fatalf("expected files=0 after prune, got %d", snap.Files)
	}

	stats.Observe(200*time.Millisecond, params.CategorySmall, false)
	snap := stats.Snapshot()
	if snap.Files != 1 {
		t.Fatalf("expected files=1 for fresh sample, got %d", snap.Files)
	}
	if snap.MinMs != 200 || snap.MaxMs != 200 {
		t.Fatalf("expected min=max=200, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}

func TestStatsClampsNegativeDuration(t *testing.T) {
	stats := NewStats(time.Hour)
	stats.Observe(-10*time.Millisecond, params.CategorySmall, false)
	snap := stats.Snapshot()
	if snap.Files != 1 {
		t.Fatalf("expected files=1, got %d", snap.Files)
	}
	if snap.MinMs != 0 || snap.MaxMs != 0 {
		t.Fatalf("expected clamped duration=0, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}

func TestStatsNilIsNoop(t *testing.T) {
	var stats *Stats
	stats.Observe(time.Second, params.CategorySmall, false)
	if snap := stats.Snapshot(); snap.Files != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
}
