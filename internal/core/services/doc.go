// Package services implements the core business logic for Medley: composing
// embedding input text from item metadata, generating semantic fingerprints,
// ranking items and collections, and keeping the external search index in
// sync with the library. Services depend only on the port interfaces, never
// on concrete adapters.
package services
