// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citegrowth/internal/secrets"
	"github.com/pdiddy/citegrowth/pkg/types"
)

// override sets viper keys for one test and restores the previous values.
func override(t *testing.T, kv map[string]any) {
	t.Helper()
	for k, v := range kv {
		prev := viper.Get(k)
		viper.Set(k, v)
		t.Cleanup(func() { viper.Set(k, prev) })
	}
}

func TestRunConfigDefaults(t *testing.T) {
	t.Setenv(secrets.SemanticScholarEnv, "env-key")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := runConfig()
	require.NoError(t, err)

	assert.Equal(t, types.ResolutionMonth, cfg.Resolution)
	assert.Equal(t, types.ThemeSketch, cfg.Chart.Theme)
	assert.Equal(t, "citations.csv", cfg.OutputFile)
	assert.Equal(t, 20*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 1000, cfg.Fetch.PageSize)
	assert.Zero(t, cfg.Fetch.MaxRetries)
	assert.InDelta(t, 1.0, cfg.Fetch.RequestsPerSecond, 1e-9)
	assert.Equal(t, "env-key", cfg.Fetch.APIKey)
	assert.Equal(t, "citegrowth/dev", cfg.Fetch.UserAgent)
}

func TestRunConfigOverrides(t *testing.T) {
	override(t, map[string]any{"freq": "w", "theme": "PLAIN", "api_key": "flag-key", "max_retries": 3})

	cfg, err := runConfig()
	require.NoError(t, err)
	assert.Equal(t, types.ResolutionWeek, cfg.Resolution)
	assert.Equal(t, types.ThemePlain, cfg.Chart.Theme)
	assert.Equal(t, "flag-key", cfg.Fetch.APIKey)
	assert.Equal(t, 3, cfg.Fetch.MaxRetries)
}

func TestRunConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		kv   map[string]any
	}{
		{"frequency", map[string]any{"freq": "H"}},
		{"theme", map[string]any{"theme": "neon"}},
		{"page size zero", map[string]any{"page_size": 0}},
		{"page size too big", map[string]any{"page_size": 5000}},
		{"negative retries", map[string]any{"max_retries": -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			override(t, tt.kv)
			_, err := runConfig()
			require.Error(t, err)
			assert.Equal(t, exitUsage, exitCode(err))
		})
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "citegrowth dev\n", out.String())
}

func TestRootRequiresOneArgument(t *testing.T) {
	rootCmd.SetArgs([]string{})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Equal(t, exitUsage, exitCode(err))
}
