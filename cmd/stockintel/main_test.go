package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenAddr(t *testing.T) {
	assert.Equal(t, ":8080", listenAddr("8080"))
	assert.Equal(t, ":8080", listenAddr(":8080"))
	assert.Equal(t, "127.0.0.1:9090", listenAddr("127.0.0.1:9090"))
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, version+"\n", out.String())
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := newRootCommand()
	for _, name := range []string{"serve", "snapshot", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	snap, _, err := cmd.Find([]string{"snapshot"})
	require.NoError(t, err)
	for _, flag := range []string{"group", "search", "cluster", "overview"} {
		assert.NotNil(t, snap.Flags().Lookup(flag), flag)
	}
}
