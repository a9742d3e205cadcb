package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Flags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	input, err := flags.GetString("input")
	require.NoError(t, err)
	assert.Equal(t, "rule.yml", input)

	output, err := flags.GetString("output")
	require.NoError(t, err)
	assert.Equal(t, "merged.sgmodule", output)

	retries, err := flags.GetInt("retries")
	require.NoError(t, err)
	assert.Equal(t, 3, retries)

	workers, err := flags.GetInt("concurrency")
	require.NoError(t, err)
	assert.Equal(t, 5, workers)

	base, err := flags.GetFloat64("backoff-base")
	require.NoError(t, err)
	assert.Equal(t, 2.0, base)

	for _, name := range []string{"name", "desc", "prefer-local", "no-cache", "refresh-cache", "dry-run", "timeout", "cache-ttl", "proxy", "user-agent", "verbose"} {
		assert.NotNil(t, flags.Lookup(name), "flag %s should be registered", name)
	}
}

func TestInitConfig_DoesNotPanic(t *testing.T) {
	orig := cfgFile
	defer func() { cfgFile = orig }()

	for _, path := range []string{"", "/tmp/sgmerge-config.yaml"} {
		cfgFile = path
		assert.NotPanics(t, initConfig)
	}
}

func TestVersionCmd(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
	assert.NotNil(t, versionCmd.Run)
}
