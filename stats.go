package main

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	plog "github.com/pingcap/log"
	"go.uber.org/zap"
)

var summaryStages = []string{StageSessionCreate, StagePageGoto, StageSessionRelease}

// stageStats aggregates per-stage latencies across measured runs for the
// end-of-run summary. Warmup runs are never fed into it.
type stageStats struct {
	hists map[string]*hdrhistogram.Histogram
}

func newStageStats() *stageStats {
	s := &stageStats{hists: make(map[string]*hdrhistogram.Histogram)}
	for _, stage := range summaryStages {
		s.hists[stage] = hdrhistogram.New(1, (10 * time.Minute).Milliseconds(), 3)
	}
	return s
}

func (s *stageStats) observe(record *RunRecord) {
	s.record(StageSessionCreate, record.SessionCreationMs)
	s.record(StagePageGoto, record.PageGotoMs)
	s.record(StageSessionRelease, record.SessionReleaseMs)
}

func (s *stageStats) record(stage string, ms *int64) {
	if ms == nil {
		return
	}
	v := *ms
	if v < 1 {
		v = 1
	}
	hist := s.hists[stage]
	if err := hist.RecordValue(v); err != nil {
		_ = hist.RecordValue(hist.HighestTrackableValue())
	}
}

type stageSummary struct {
	Stage string
	Count int64
	P50   int64
	P95   int64
	P99   int64
	Max   int64
}

// summaries returns one entry per stage that recorded at least one value, in
// run-lifecycle order.
func (s *stageStats) summaries() []stageSummary {
	out := make([]stageSummary, 0, len(summaryStages))
	for _, stage := range summaryStages {
		hist := s.hists[stage]
		if hist.TotalCount() == 0 {
			continue
		}
		out = append(out, stageSummary{
			Stage: stage,
			Count: hist.TotalCount(),
			P50:   hist.ValueAtQuantile(50),
			P95:   hist.ValueAtQuantile(95),
			P99:   hist.ValueAtQuantile(99),
			Max:   hist.Max(),
		})
	}
	return out
}

func (s *stageStats) logSummary() {
	for _, sum := range s.summaries() {
		plog.Info("stage latency summary",
			zap.String("stage", sum.Stage),
			zap.Int64("count", sum.Count),
			zap.Int64("p50Ms", sum.P50),
			zap.Int64("p95Ms", sum.P95),
			zap.Int64("p99Ms", sum.P99),
			zap.Int64("maxMs", sum.Max))
	}
}
