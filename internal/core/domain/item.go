package domain

import (
	"time"

	"github.com/google/uuid"
)

// MediaItem is a single entry in the media library.
// Items come either from a remote source (RemoteID set) or from a local file
// (LocalPath set); the two are mutually exclusive and at least one is required
// so the item's external identity never changes after creation.
type MediaItem struct {
	// ID is the internal identifier, assigned once at construction.
	ID string

	// RemoteID identifies the item at its remote source, if any.
	RemoteID string

	// LocalPath is the absolute path of a local file, if any.
	LocalPath string

	// Title is the human-readable title.
	Title string

	// Channel is the channel or author name, if known.
	Channel string

	// Description is the item's long-form description, if any.
	Description string

	// Tags are free-form labels attached to the item.
	Tags []string

	// DurationSeconds is the playback duration.
	DurationSeconds float64

	// Embedding is the semantic fingerprint of the item's metadata.
	// Nil until generation succeeds; populated asynchronously after creation.
	Embedding []float32

	// OCRText is pre-computed text extracted from the item's frames, if any.
	OCRText string

	// WatchProgressSeconds is how far into the item the user has watched.
	WatchProgressSeconds float64

	// AddedAt is when the item was imported.
	AddedAt time.Time

	// LastAccessedAt is when the item was last opened or watched.
	LastAccessedAt *time.Time
}

// NewMediaItem constructs a media item with a fresh internal ID.
// Exactly one of remoteID and localPath must be non-empty; otherwise the
// item's external identifier could not be derived deterministically and
// ErrMissingIdentity is returned.
func NewMediaItem(remoteID, localPath, title string) (*MediaItem, error) {
	if remoteID == "" && localPath == "" {
		return nil, ErrMissingIdentity
	}
	if remoteID != "" && localPath != "" {
		return nil, ErrInvalidInput
	}

	return &MediaItem{
		ID:        uuid.New().String(),
		RemoteID:  remoteID,
		LocalPath: localPath,
		Title:     title,
		AddedAt:   time.Now().UTC(),
	}, nil
}

// ExternalIdentity returns the identity used by lookup contracts:
// the remote ID when present, otherwise the local path.
func (m *MediaItem) ExternalIdentity() string {
	if m.RemoteID != "" {
		return m.RemoteID
	}
	return m.LocalPath
}

// IsLocal reports whether the item refers to a local file.
func (m *MediaItem) IsLocal() bool {
	return m.LocalPath != ""
}

// HasEmbedding reports whether a semantic fingerprint has been attached.
func (m *MediaItem) HasEmbedding() bool {
	return len(m.Embedding) > 0
}

// LastRelevantAt is the timestamp used for recency ordering: the last access
// or watch time when known, otherwise the added date.
func (m *MediaItem) LastRelevantAt() time.Time {
	if m.LastAccessedAt != nil {
		return *m.LastAccessedAt
	}
	return m.AddedAt
}
