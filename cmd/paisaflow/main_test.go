package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCommand(t *testing.T, name string) *cobra.Command {
	t.Helper()
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}
	t.Fatalf("command %q not registered", name)
	return nil
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	for _, name := range []string{"process", "banks", "categories", "stats", "version"} {
		cmd := findCommand(t, name)
		assert.NotEmpty(t, cmd.Short, "command %q should have a short description", name)
	}
}

func TestProcessCommandRequiresFiles(t *testing.T) {
	cmd := processCmd()
	err := cmd.Args(cmd, []string{})
	require.Error(t, err, "process should reject an empty file list")

	err = cmd.Args(cmd, []string{"statement.json"})
	assert.NoError(t, err)
}

func TestProcessCommandFlags(t *testing.T) {
	cmd := processCmd()
	flag := cmd.Flags().Lookup("workers")
	require.NotNil(t, flag)
	assert.Equal(t, "w", flag.Shorthand)
}

func TestStatsCommandFlags(t *testing.T) {
	cmd := statsCmd()
	flag := cmd.Flags().Lookup("monthly")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestPersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "log-level", "log-format"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name),
			"persistent flag %q should exist", name)
	}
}
