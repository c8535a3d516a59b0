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
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// newTestFlags registers the same flags main does, bound to flagCfg.
func newTestFlags(flagCfg *BenchConfig) *pflag.FlagSet {
	fs := pflag.NewFlagSet("browserbench", pflag.ContinueOnError)
	fs.IntVarP(&flagCfg.Runs, FlagRuns, "n", flagCfg.Runs, "")
	fs.IntVar(&flagCfg.Warmup, FlagWarmup, flagCfg.Warmup, "")
	fs.StringVarP(&flagCfg.URL, FlagURL, "u", flagCfg.URL, "")
	fs.StringVarP(&flagCfg.Out, FlagOut, "o", flagCfg.Out, "")
	fs.StringVarP(&flagCfg.Provider, FlagProvider, "p", flagCfg.Provider, "")
	fs.StringVar(&flagCfg.Endpoint, FlagEndpoint, flagCfg.Endpoint, "")
	return fs
}

func TestResolveBenchConfigDefaults(t *testing.T) {
	t.Setenv(EnvAPIKey, "test-key")

	flagCfg := defaultBenchConfig()
	cfg, err := resolveBenchConfig(newTestFlags(flagCfg), flagCfg, "")
	require.NoError(t, err)

	require.Equal(t, DefaultRuns, cfg.Runs)
	require.Equal(t, DefaultWarmup, cfg.Warmup)
	require.Equal(t, DefaultURL, cfg.URL)
	require.Equal(t, DefaultOut, cfg.Out)
	require.Equal(t, DefaultProvider, cfg.Provider)
	require.Equal(t, DefaultEndpoint, cfg.Endpoint)
	require.Equal(t, "test-key", cfg.APIKey)
}

func TestResolveBenchConfigEnvOverridesDefault(t *testing.T) {
	t.Setenv(EnvAPIKey, "test-key")
	t.Setenv(EnvRuns, "5")
	t.Setenv(EnvWarmup, "0")
	t.Setenv(EnvURL, "https://example.org")
	t.Setenv(EnvProvider, "STAGING")

	flagCfg := defaultBenchConfig()
	cfg, err := resolveBenchConfig(newTestFlags(flagCfg), flagCfg, "")
	require.NoError(t, err)

	require.Equal(t, 5, cfg.Runs)
	require.Equal(t, 0, cfg.Warmup)
	require.Equal(t, "https://example.org", cfg.URL)
	require.Equal(t, "STAGING", cfg.Provider)
	require.Equal(t, DefaultOut, cfg.Out)
}

func TestResolveBenchConfigFlagOverridesEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "test-key")
	t.Setenv(EnvRuns, "5")

	flagCfg := defaultBenchConfig()
	fs := newTestFlags(flagCfg)
	require.NoError(t, fs.Parse([]string{"--runs", "7", "-u", "https://flagged.example.com"}))

	cfg, err := resolveBenchConfig(fs, flagCfg, "")
	require.NoError(t, err)

	require.Equal(t, 7, cfg.Runs)
	require.Equal(t, "https://flagged.example.com", cfg.URL)
}

func TestResolveBenchConfigFile(t *testing.T) {
	t.Setenv(EnvAPIKey, "test-key")

	dir := t.TempDir()
	path := filepath.Join(dir, "bench.toml")
	content := `
runs = 3
url = "https://from-file.example.com"
provider = "FILE_PROVIDER"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Run("file overrides default", func(t *testing.T) {
		flagCfg := defaultBenchConfig()
		cfg, err := resolveBenchConfig(newTestFlags(flagCfg), flagCfg, path)
		require.NoError(t, err)
		require.Equal(t, 3, cfg.Runs)
		require.Equal(t, "https://from-file.example.com", cfg.URL)
		require.Equal(t, "FILE_PROVIDER", cfg.Provider)
		require.Equal(t, DefaultWarmup, cfg.Warmup)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv(EnvRuns, "9")
		flagCfg := defaultBenchConfig()
		cfg, err := resolveBenchConfig(newTestFlags(flagCfg), flagCfg, path)
		require.NoError(t, err)
		require.Equal(t, 9, cfg.Runs)
		require.Equal(t, "https://from-file.example.com", cfg.URL)
	})

	t.Run("extension check", func(t *testing.T) {
		badPath := filepath.Join(dir, "bench.yaml")
		require.NoError(t, os.WriteFile(badPath, []byte("runs = 1"), 0o644))
		flagCfg := defaultBenchConfig()
		_, err := resolveBenchConfig(newTestFlags(flagCfg), flagCfg, badPath)
		require.Error(t, err)
	})

	t.Run("unknown keys rejected", func(t *testing.T) {
		badPath := filepath.Join(dir, "unknown.toml")
		require.NoError(t, os.WriteFile(badPath, []byte("retries = 3"), 0o644))
		flagCfg := defaultBenchConfig()
		_, err := resolveBenchConfig(newTestFlags(flagCfg), flagCfg, badPath)
		require.Error(t, err)
		require.Contains(t, err.Error(), "unknown keys")
	})
}

func TestResolveBenchConfigMissingAPIKey(t *testing.T) {
	t.Setenv(EnvAPIKey, "")

	flagCfg := defaultBenchConfig()
	_, err := resolveBenchConfig(newTestFlags(flagCfg), flagCfg, "")
	require.Error(t, err)
	require.Contains(t, err.Error(), EnvAPIKey)
}

func TestResolveBenchConfigInvalidEnvInt(t *testing.T) {
	t.Setenv(EnvAPIKey, "test-key")
	t.Setenv(EnvRuns, "not-a-number")

	flagCfg := defaultBenchConfig()
	_, err := resolveBenchConfig(newTestFlags(flagCfg), flagCfg, "")
	require.Error(t, err)
}

func TestBenchConfigValidate(t *testing.T) {
	t.Parallel()

	t.Run("negative runs", func(t *testing.T) {
		cfg := defaultBenchConfig()
		cfg.Runs = -1
		require.Error(t, cfg.validate())
	})

	t.Run("negative warmup", func(t *testing.T) {
		cfg := defaultBenchConfig()
		cfg.Warmup = -1
		require.Error(t, cfg.validate())
	})

	t.Run("empty url", func(t *testing.T) {
		cfg := defaultBenchConfig()
		cfg.URL = ""
		require.Error(t, cfg.validate())
	})

	t.Run("empty out", func(t *testing.T) {
		cfg := defaultBenchConfig()
		cfg.Out = ""
		require.Error(t, cfg.validate())
	})

	t.Run("zero runs allowed", func(t *testing.T) {
		cfg := defaultBenchConfig()
		cfg.Runs = 0
		cfg.Warmup = 0
		require.NoError(t, cfg.validate())
	})
}
