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

// Package browser defines the narrow capability surface the harness needs
// from a cloud browser provider, plus an implementation speaking the Chrome
// DevTools Protocol to a remote endpoint.
package browser

import "context"

// Session is one remote browser session. Implementations may fail any
// operation with an arbitrary error; callers attribute failures to the
// operation in progress. Navigate and Stop must reject sessions that were
// never successfully started.
type Session interface {
	Start(ctx context.Context) error
	Navigate(ctx context.Context, url string) error
	Stop(ctx context.Context) error
}

// Client hands out fresh sessions. Each session is independent; the harness
// never reuses one across runs.
type Client interface {
	NewSession() Session
}
