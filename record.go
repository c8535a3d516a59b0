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
	"time"

	"github.com/google/uuid"
)

// Stage names attribute a failure to the step that was in progress.
const (
	StageInit           = "init"
	StageSessionCreate  = "session_create"
	StagePageGoto       = "page_goto"
	StageSessionRelease = "session_release"
)

// RunRecord captures the full outcome and per-stage timings of one measured
// run. It is written once as a single JSONL line and never updated.
type RunRecord struct {
	CreatedAt string `json:"created_at"`
	ID        string `json:"id"`

	SessionCreationMs *int64 `json:"session_creation_ms"`
	// SessionConnectMs is reserved. No stage populates it today.
	SessionConnectMs *int64 `json:"session_connect_ms"`
	PageGotoMs       *int64 `json:"page_goto_ms"`
	SessionReleaseMs *int64 `json:"session_release_ms"`

	Provider     string  `json:"provider"`
	Success      bool    `json:"success"`
	ErrorStage   *string `json:"error_stage"`
	ErrorMessage *string `json:"error_message"`
}

func newRunRecord(providerLabel string) *RunRecord {
	return &RunRecord{
		CreatedAt: isoUTCNowMs(),
		ID:        uuid.NewString(),
		Provider:  providerLabel,
	}
}

// isoUTCNowMs renders the current UTC time with millisecond precision and a
// trailing Z, e.g. 2026-08-30T12:34:56.789Z.
func isoUTCNowMs() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

// msSince truncates to whole milliseconds via the monotonic clock.
func msSince(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(s string) *string { return &s }
