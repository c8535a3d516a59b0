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
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/errors"
	"github.com/spf13/pflag"
)

const (
	DefaultRuns     = 1
	DefaultWarmup   = 10
	DefaultURL      = "https://www.google.com"
	DefaultOut      = "results/browser_use.jsonl"
	DefaultProvider = "BROWSER_USE"
	DefaultEndpoint = "wss://connect.browser-use.com"
)

const (
	EnvRuns     = "RUNS"
	EnvWarmup   = "WARMUP"
	EnvURL      = "URL"
	EnvOut      = "OUT"
	EnvProvider = "PROVIDER"
	EnvEndpoint = "ENDPOINT"

	// EnvAPIKey must be set; there is no flag or config file fallback for
	// the credential.
	EnvAPIKey = "BROWSER_USE_API_KEY"
)

// BenchConfig is the fully resolved configuration of one harness invocation.
// Precedence per option: command line flag > environment variable > config
// file > built-in default.
type BenchConfig struct {
	Runs     int    `toml:"runs"`
	Warmup   int    `toml:"warmup"`
	URL      string `toml:"url"`
	Out      string `toml:"out"`
	Provider string `toml:"provider"`
	Endpoint string `toml:"endpoint"`

	APIKey string `toml:"-"`
}

func defaultBenchConfig() *BenchConfig {
	return &BenchConfig{
		Runs:     DefaultRuns,
		Warmup:   DefaultWarmup,
		URL:      DefaultURL,
		Out:      DefaultOut,
		Provider: DefaultProvider,
		Endpoint: DefaultEndpoint,
	}
}

// resolveBenchConfig layers the optional config file, the environment and the
// explicitly set flags over the defaults, then validates the result. flagCfg
// holds the flag-bound values; only flags reported as changed by flags are
// taken from it.
func resolveBenchConfig(flags *pflag.FlagSet, flagCfg *BenchConfig, cfgPath string) (*BenchConfig, error) {
	cfg := defaultBenchConfig()

	if cfgPath != "" {
		if err := loadConfigFile(cfgPath, cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyFlags(flags, flagCfg, cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	key := os.Getenv(EnvAPIKey)
	if key == "" {
		return nil, errors.Errorf("%s environment variable must be set", EnvAPIKey)
	}
	cfg.APIKey = key

	return cfg, nil
}

func loadConfigFile(path string, cfg *BenchConfig) error {
	if filepath.Ext(path) != ".toml" {
		return errors.Errorf("config must be a .toml file: %s", path)
	}
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return errors.Annotate(err, "decode config failed")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return errors.Errorf("unknown keys in config: %v", undecoded)
	}
	return nil
}

func applyEnv(cfg *BenchConfig) error {
	if v, ok := os.LookupEnv(EnvRuns); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Annotatef(err, "parse %s", EnvRuns)
		}
		cfg.Runs = n
	}
	if v, ok := os.LookupEnv(EnvWarmup); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Annotatef(err, "parse %s", EnvWarmup)
		}
		cfg.Warmup = n
	}
	if v, ok := os.LookupEnv(EnvURL); ok {
		cfg.URL = v
	}
	if v, ok := os.LookupEnv(EnvOut); ok {
		cfg.Out = v
	}
	if v, ok := os.LookupEnv(EnvProvider); ok {
		cfg.Provider = v
	}
	if v, ok := os.LookupEnv(EnvEndpoint); ok {
		cfg.Endpoint = v
	}
	return nil
}

func applyFlags(flags *pflag.FlagSet, src, dst *BenchConfig) {
	if flags.Changed(FlagRuns) {
		dst.Runs = src.Runs
	}
	if flags.Changed(FlagWarmup) {
		dst.Warmup = src.Warmup
	}
	if flags.Changed(FlagURL) {
		dst.URL = src.URL
	}
	if flags.Changed(FlagOut) {
		dst.Out = src.Out
	}
	if flags.Changed(FlagProvider) {
		dst.Provider = src.Provider
	}
	if flags.Changed(FlagEndpoint) {
		dst.Endpoint = src.Endpoint
	}
}

func (c *BenchConfig) validate() error {
	if c.Runs < 0 {
		return errors.Errorf("runs must not be negative: %d", c.Runs)
	}
	if c.Warmup < 0 {
		return errors.Errorf("warmup must not be negative: %d", c.Warmup)
	}
	if c.URL == "" {
		return errors.New("url must not be empty")
	}
	if c.Out == "" {
		return errors.New("out must not be empty")
	}
	if c.Endpoint == "" {
		return errors.New("endpoint must not be empty")
	}
	return nil
}
