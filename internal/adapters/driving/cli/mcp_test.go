package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPCmd_Use(t *testing.T) {
	assert.Equal(t, "mcp", mcpCmd.Use)
}

func TestMCPCmd_Short(t *testing.T) {
	assert.Equal(t, "Start the MCP server", mcpCmd.Short)
}

func TestMCPCmd_Long(t *testing.T) {
	assert.Contains(t, mcpCmd.Long, "stdio")
	assert.Contains(t, mcpCmd.Long, "Claude Desktop")
	assert.Contains(t, mcpCmd.Long, "rustyrag mcp")
}

func TestMCPCmd_HasHTTPFlag(t *testing.T) {
	flag := mcpCmd.Flags().Lookup("http")
	require.NotNil(t, flag, "http flag should exist")
	assert.Equal(t, "", flag.DefValue)
}

func TestMCPCmd_ServiceNotConfigured(t *testing.T) {
	oldRecord := recordService
	oldSearch := searchService
	recordService = nil
	searchService = nil
	defer func() {
		recordService = oldRecord
		searchService = oldSearch
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"mcp"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires record and search services")
}
