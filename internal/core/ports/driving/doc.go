// Package driving provides interfaces for application entry points (primary/inbound ports).
// The CLI and the MCP automation front-end consume these contracts; the
// package defines the contract shape only, not the transport.
package driving
