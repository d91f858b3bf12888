package snapshot

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"pricewatcher/internal/crawler"
	apperrors "pricewatcher/pkg/errors"
)

// Snapshot is the durable record of the last completed crawl. It is the
// sole state carried between invocations and is overwritten wholesale
// every cycle.
type Snapshot struct {
	ScrapedAt time.Time         `json:"scraped_at"`
	Products  []crawler.Product `json:"products"`
}

// Store abstracts snapshot persistence
type Store interface {
	// Load returns the prior snapshot. An absent file is first-run
	// state: an empty snapshot and no error. A malformed file returns
	// an empty snapshot and a snapshot-typed error the caller may
	// recover from.
	Load() (Snapshot, error)

	// Save persists the product list with the current timestamp,
	// replacing any prior snapshot.
	Save(products []crawler.Product) error
}

// FileStore persists snapshots as a JSON file
type FileStore struct {
	path string
	now  func() time.Time
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a FileStore writing to path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// Load reads the snapshot file
func (s *FileStore) Load() (Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Snapshot{}, nil
		}
		return Snapshot{}, apperrors.NewSnapshot("store", "failed to read "+s.path, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, apperrors.NewSnapshot("store", "malformed snapshot in "+s.path, err)
	}
	return snap, nil
}

// Save writes the snapshot file via a temp file and rename, so a crash
// mid-write never leaves a truncated snapshot behind.
func (s *FileStore) Save(products []crawler.Product) error {
	snap := Snapshot{
		ScrapedAt: s.now().UTC().Truncate(time.Second),
		Products:  products,
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return apperrors.NewSnapshot("store", "failed to encode snapshot", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		return apperrors.NewSnapshot("store", "failed to create temp snapshot", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return apperrors.NewSnapshot("store", "failed to write temp snapshot", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return apperrors.NewSnapshot("store", "failed to close temp snapshot", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return apperrors.NewSnapshot("store", "failed to replace "+s.path, err)
	}
	return nil
}
