// Package mcp provides an MCP (Model Context Protocol) server adapter for Medley.
// It enables AI assistants like Claude to resolve, suggest and search the user's
// media library without going through the CLI.
package mcp

import "errors"

// Errors returned when required ports are not provided.
var (
	ErrMissingItemLookup       = errors.New("mcp: item lookup is required")
	ErrMissingCollectionLookup = errors.New("mcp: collection lookup is required")
)
