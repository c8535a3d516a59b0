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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"browserbench/browser"
)

const (
	ExitCodeExecuteFailed = 1
	ExitCodeInvalidConfig = 2
)

const (
	FlagConfig   = "config"
	FlagRuns     = "runs"
	FlagWarmup   = "warmup"
	FlagURL      = "url"
	FlagOut      = "out"
	FlagProvider = "provider"
	FlagEndpoint = "endpoint"
)

func main() {
	var cfgPath string
	flagCfg := defaultBenchConfig()

	rootCmd := &cobra.Command{
		Use:          "browserbench",
		Short:        "A tool to benchmark cloud browser session lifecycle latency",
		Long:         "A tool to repeatedly open a cloud browser session, navigate to a URL, and append per-stage latency records to a JSONL file",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveBenchConfig(cmd.Flags(), flagCfg, cfgPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
				os.Exit(ExitCodeInvalidConfig)
			}
			return run(cfg)
		},
	}

	fs := rootCmd.Flags()
	fs.StringVarP(&cfgPath, FlagConfig, "c", "", "optional TOML configuration file path")
	fs.IntVarP(&flagCfg.Runs, FlagRuns, "n", flagCfg.Runs, "number of measured runs")
	fs.IntVar(&flagCfg.Warmup, FlagWarmup, flagCfg.Warmup, "number of warmup runs (not recorded)")
	fs.StringVarP(&flagCfg.URL, FlagURL, "u", flagCfg.URL, "target URL to navigate to")
	fs.StringVarP(&flagCfg.Out, FlagOut, "o", flagCfg.Out, "path to the JSONL output file")
	fs.StringVarP(&flagCfg.Provider, FlagProvider, "p", flagCfg.Provider, "provider label to record")
	fs.StringVar(&flagCfg.Endpoint, FlagEndpoint, flagCfg.Endpoint, "remote CDP endpoint of the cloud browser provider")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitCodeExecuteFailed)
	}
}

func run(cfg *BenchConfig) error {
	client := browser.NewCloudClient(cfg.Endpoint, cfg.APIKey)
	runner := NewBenchRunner(cfg, client)
	return runner.Run(context.Background())
}
