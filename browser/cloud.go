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

package browser

import (
	"context"
	"net/url"

	"github.com/chromedp/chromedp"
	"github.com/pingcap/errors"
)

// CloudClient dials a cloud browser provider over a remote CDP websocket.
// The API key travels as a query parameter on the allocator URL.
type CloudClient struct {
	wsURL string
}

func NewCloudClient(endpoint, apiKey string) *CloudClient {
	return &CloudClient{
		wsURL: endpoint + "?apiKey=" + url.QueryEscape(apiKey),
	}
}

func (c *CloudClient) NewSession() Session {
	return &cloudSession{wsURL: c.wsURL}
}

type cloudSession struct {
	wsURL string

	tabCtx      context.Context
	tabCancel   context.CancelFunc
	allocCancel context.CancelFunc
}

// Start connects to the remote allocator and attaches to a fresh target. The
// empty Run establishes the websocket connection, so connection failures
// surface here rather than on first navigation.
func (s *cloudSession) Start(ctx context.Context) error {
	allocCtx, allocCancel := chromedp.NewRemoteAllocator(ctx, s.wsURL)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		allocCancel()
		return errors.Annotate(err, "start remote browser session failed")
	}
	s.tabCtx = tabCtx
	s.tabCancel = tabCancel
	s.allocCancel = allocCancel
	return nil
}

func (s *cloudSession) Navigate(_ context.Context, target string) error {
	if s.tabCtx == nil {
		return errors.New("session not started")
	}
	if err := chromedp.Run(s.tabCtx, chromedp.Navigate(target)); err != nil {
		return errors.Annotate(err, "navigate failed")
	}
	return nil
}

// Stop closes the attached target gracefully before releasing the allocator.
func (s *cloudSession) Stop(_ context.Context) error {
	if s.tabCtx == nil {
		return errors.New("session not started")
	}
	err := chromedp.Cancel(s.tabCtx)
	s.tabCancel()
	s.allocCancel()
	s.tabCtx = nil
	if err != nil {
		return errors.Annotate(err, "stop remote browser session failed")
	}
	return nil
}
