// Package mcp provides an MCP (Model Context Protocol) server adapter for
// rustyrag. It lets AI assistants search, read and create package records.
package mcp

import "errors"

// Required-port errors returned by NewServer.
var (
	// ErrMissingRecordService is returned when the record service is not provided.
	ErrMissingRecordService = errors.New("mcp: record service is required")

	// ErrMissingSearchService is returned when the search service is not provided.
	ErrMissingSearchService = errors.New("mcp: search service is required")
)
