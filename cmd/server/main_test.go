package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"--config", "prod.yaml", "--migrate", "status", "--skip-migrations"})

	require.NoError(t, err)
	assert.Equal(t, "prod.yaml", opts.configFile)
	assert.Equal(t, "status", opts.migrate)
	assert.True(t, opts.skipMigrations)

	opts, err = parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, cliOptions{}, opts)

	_, err = parseFlags([]string{"--no-such-flag"})
	assert.Error(t, err)
}
