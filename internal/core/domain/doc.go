// Package domain contains the core business entities and errors for Medley.
// It has no dependencies on infrastructure - pure business logic only.
package domain
