package domain

// SearchDomain is the constant domain tag under which Medley's entries live
// in the external search index. Entries are keyed by (UniqueID, Domain).
const SearchDomain = "medley.media"

// IndexEntry is the external-search-visible projection of a MediaItem.
// It is derived deterministically from the item and never persisted locally -
// recomputed on demand.
type IndexEntry struct {
	// UniqueID is the stable external identifier, identical across process
	// restarts so reindexing never duplicates or orphans entries.
	UniqueID string

	// Domain is the tag grouping all of Medley's entries in the shared index.
	Domain string

	// Title is the item title. Required.
	Title string

	// Keywords are the item's tags. Omitted when the item has none.
	Keywords []string

	// DurationSeconds is the playback duration.
	DurationSeconds float64

	// ContentURL locates the underlying content for local items.
	ContentURL string
}
