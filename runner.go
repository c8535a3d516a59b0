// Copyright 2026 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pingcap/errors"
	plog "github.com/pingcap/log"
	"go.uber.org/zap"

	"browserbench/browser"
)

// BenchRunner drives the warmup and measured phases against one provider.
// Iterations run strictly sequentially; a single session is in flight at any
// time.
type BenchRunner struct {
	cfg    *BenchConfig
	client browser.Client
	writer *ResultWriter
	stats  *stageStats
	stdout io.Writer

	success int
	failure int
}

func NewBenchRunner(cfg *BenchConfig, client browser.Client) *BenchRunner {
	return &BenchRunner{
		cfg:    cfg,
		client: client,
		writer: NewResultWriter(cfg.Out),
		stats:  newStageStats(),
		stdout: os.Stdout,
	}
}

// Run executes the warmup phase, then the measured phase, and prints the
// final success/failure tally. Individual run failures never abort the loop;
// only writer and encoding errors do.
func (r *BenchRunner) Run(ctx context.Context) error {
	for i := 1; i <= r.cfg.Warmup; i++ {
		plog.Info("warmup run", zap.Int("current", i), zap.Int("total", r.cfg.Warmup))
		// Warmup outcomes only stabilize the provider side. Errors and
		// timings are discarded.
		r.runSingleSession(ctx)
	}

	for i := 1; i <= r.cfg.Runs; i++ {
		plog.Info("measured run", zap.Int("current", i), zap.Int("total", r.cfg.Runs))
		record := r.runSingleSession(ctx)

		line, err := json.Marshal(record)
		if err != nil {
			return errors.Annotate(err, "encode record failed")
		}
		if err := r.writer.AppendLine(line); err != nil {
			return err
		}
		fmt.Fprintln(r.stdout, string(line))

		if record.Success {
			r.success++
		} else {
			r.failure++
		}
		r.stats.observe(record)
	}

	fmt.Fprintf(r.stdout, "Success: %d, Failure: %d\n", r.success, r.failure)
	r.stats.logSummary()
	return nil
}

// runSingleSession executes one create/navigate/release cycle. It never
// fails: every error is folded into the returned record together with the
// stage active when it occurred. The first error wins; in particular a
// teardown failure neither overwrites an earlier error nor flips an already
// successful run to failed.
func (r *BenchRunner) runSingleSession(ctx context.Context) *RunRecord {
	record := newRunRecord(r.cfg.Provider)

	stage := StageInit
	fail := func(err error) {
		if record.Success || record.ErrorStage != nil {
			return
		}
		record.ErrorStage = strPtr(stage)
		record.ErrorMessage = strPtr(err.Error())
	}

	sess := r.client.NewSession()
	defer func() {
		// The release attempt is unconditional. A session whose start
		// failed rejects the stop, which fail swallows because the
		// start error was recorded first.
		stage = StageSessionRelease
		start := time.Now()
		if err := sess.Stop(ctx); err != nil {
			fail(err)
			return
		}
		record.SessionReleaseMs = int64Ptr(msSince(start))
	}()

	stage = StageSessionCreate
	start := time.Now()
	if err := sess.Start(ctx); err != nil {
		fail(err)
		return record
	}
	record.SessionCreationMs = int64Ptr(msSince(start))

	stage = StagePageGoto
	start = time.Now()
	if err := sess.Navigate(ctx, r.cfg.URL); err != nil {
		fail(err)
		return record
	}
	record.PageGotoMs = int64Ptr(msSince(start))
	record.Success = true

	return record
}
