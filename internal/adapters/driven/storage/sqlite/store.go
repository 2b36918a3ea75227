package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/medley-app/medley-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/medley-app/medley-cli/internal/core/domain"
	"github.com/medley-app/medley-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all library store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.medley/data/library.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".medley", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "library.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ItemStore returns an ItemStore interface backed by this store.
func (s *Store) ItemStore() driven.ItemStore {
	return &itemStore{store: s}
}

// CollectionStore returns a CollectionStore interface backed by this store.
func (s *Store) CollectionStore() driven.CollectionStore {
	return &collectionStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Item Store ====================

// itemStore implements driven.ItemStore.
type itemStore struct {
	store *Store
}

var _ driven.ItemStore = (*itemStore)(nil)

// SaveItem stores or updates a media item.
func (s *itemStore) SaveItem(ctx context.Context, item *domain.MediaItem) error {
	if item.ID == "" {
		return domain.ErrInvalidInput
	}

	tagsJSON, err := json.Marshal(item.Tags)
	if err != nil {
		return fmt.Errorf("marshalling tags: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO items (id, remote_id, local_path, title, channel, description, tags,
			duration_seconds, embedding, ocr_text, watch_progress_seconds, added_at, last_accessed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			remote_id = excluded.remote_id,
			local_path = excluded.local_path,
			title = excluded.title,
			channel = excluded.channel,
			description = excluded.description,
			tags = excluded.tags,
			duration_seconds = excluded.duration_seconds,
			embedding = excluded.embedding,
			ocr_text = excluded.ocr_text,
			watch_progress_seconds = excluded.watch_progress_seconds,
			last_accessed_at = excluded.last_accessed_at
	`, item.ID, item.RemoteID, item.LocalPath, item.Title, item.Channel, item.Description,
		string(tagsJSON), item.DurationSeconds, float32SliceToBytes(item.Embedding),
		item.OCRText, item.WatchProgressSeconds, item.AddedAt, nullTime(item.LastAccessedAt))

	if err != nil {
		return fmt.Errorf("saving item: %w", err)
	}
	return nil
}

// GetItem retrieves an item by internal ID.
func (s *itemStore) GetItem(ctx context.Context, id string) (*domain.MediaItem, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, remote_id, local_path, title, channel, description, tags,
			duration_seconds, embedding, ocr_text, watch_progress_seconds, added_at, last_accessed_at
		FROM items WHERE id = ?
	`, id)

	item, err := scanItem(row.Scan)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return item, err
}

// DeleteItem removes an item.
func (s *itemStore) DeleteItem(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// ListItems returns items matching the query's sort and limit.
func (s *itemStore) ListItems(ctx context.Context, query driven.ItemQuery) ([]domain.MediaItem, error) {
	q := `
		SELECT id, remote_id, local_path, title, channel, description, tags,
			duration_seconds, embedding, ocr_text, watch_progress_seconds, added_at, last_accessed_at
		FROM items
	`
	if query.Sort == driven.ItemSortRecency {
		q += " ORDER BY COALESCE(last_accessed_at, added_at) DESC, added_at DESC"
	}
	if query.Limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", query.Limit)
	}

	rows, err := s.store.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	var items []domain.MediaItem //nolint:prealloc // size unknown from query
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}

	return items, nil
}

// scanItem scans a single item row through the given scan function.
func scanItem(scan func(dest ...any) error) (*domain.MediaItem, error) {
	var item domain.MediaItem
	var tagsJSON string
	var embeddingBlob []byte
	var lastAccessed sql.NullTime

	if err := scan(&item.ID, &item.RemoteID, &item.LocalPath, &item.Title, &item.Channel,
		&item.Description, &tagsJSON, &item.DurationSeconds, &embeddingBlob,
		&item.OCRText, &item.WatchProgressSeconds, &item.AddedAt, &lastAccessed); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning item: %w", err)
	}

	if tagsJSON != "" {
		if err := json.Unmarshal([]byte(tagsJSON), &item.Tags); err != nil {
			return nil, fmt.Errorf("unmarshaling tags: %w", err)
		}
	}

	item.Embedding = bytesToFloat32Slice(embeddingBlob)
	if lastAccessed.Valid {
		t := lastAccessed.Time
		item.LastAccessedAt = &t
	}

	return &item, nil
}

// ==================== Collection Store ====================

// collectionStore implements driven.CollectionStore.
type collectionStore struct {
	store *Store
}

var _ driven.CollectionStore = (*collectionStore)(nil)

// SaveCollection stores or updates a collection.
func (s *collectionStore) SaveCollection(ctx context.Context, collection *domain.Collection) error {
	if collection.ID == "" {
		return domain.ErrInvalidInput
	}

	if collection.UpdatedAt.IsZero() {
		collection.UpdatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO collections (id, label, centroid, item_count, confidence, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			label = excluded.label,
			centroid = excluded.centroid,
			item_count = excluded.item_count,
			confidence = excluded.confidence,
			updated_at = excluded.updated_at
	`, collection.ID, collection.Label, float32SliceToBytes(collection.Centroid),
		collection.ItemCount, collection.Confidence, collection.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving collection: %w", err)
	}
	return nil
}

// GetCollection retrieves a collection by ID.
func (s *collectionStore) GetCollection(ctx context.Context, id string) (*domain.Collection, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, label, centroid, item_count, confidence, updated_at
		FROM collections WHERE id = ?
	`, id)

	var collection domain.Collection
	var centroidBlob []byte
	if err := row.Scan(&collection.ID, &collection.Label, &centroidBlob,
		&collection.ItemCount, &collection.Confidence, &collection.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning collection: %w", err)
	}

	collection.Centroid = bytesToFloat32Slice(centroidBlob)
	return &collection, nil
}

// DeleteCollection removes a collection.
func (s *collectionStore) DeleteCollection(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM collections WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting collection: %w", err)
	}
	return nil
}

// ListCollections returns collections ordered by item count descending.
// A positive limit caps the result.
func (s *collectionStore) ListCollections(ctx context.Context, limit int) ([]domain.Collection, error) {
	q := `
		SELECT id, label, centroid, item_count, confidence, updated_at
		FROM collections
		ORDER BY item_count DESC, label ASC
	`
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.store.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying collections: %w", err)
	}
	defer rows.Close()

	var collections []domain.Collection //nolint:prealloc // size unknown from query
	for rows.Next() {
		var collection domain.Collection
		var centroidBlob []byte
		if err := rows.Scan(&collection.ID, &collection.Label, &centroidBlob,
			&collection.ItemCount, &collection.Confidence, &collection.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning collection: %w", err)
		}
		collection.Centroid = bytesToFloat32Slice(centroidBlob)
		collections = append(collections, collection)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating collections: %w", err)
	}

	return collections, nil
}

// ==================== Helper Functions ====================

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// nullTime converts an optional time to a driver-friendly value.
func nullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
