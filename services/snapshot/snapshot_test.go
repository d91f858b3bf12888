package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pricewatcher/internal/crawler"
	apperrors "pricewatcher/pkg/errors"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	store := NewFileStore(path)

	products := []crawler.Product{
		{Title: "Cohiba", Price: "$450.00", URL: "https://shop.example.com/cohiba-p1/"},
	}

	assert.NoError(t, store.Save(products))

	snap, err := store.Load()
	assert.NoError(t, err)
	assert.Equal(t, products, snap.Products)
	assert.False(t, snap.ScrapedAt.IsZero())
}

func TestFileStoreAbsentFileIsFirstRun(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing.json"))

	snap, err := store.Load()
	assert.NoError(t, err)
	assert.Empty(t, snap.Products)
}

func TestFileStoreMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	store := NewFileStore(path)
	snap, err := store.Load()
	assert.Error(t, err)
	assert.True(t, apperrors.IsSnapshot(err))
	assert.Empty(t, snap.Products)
}

func TestFileStoreTimestampSecondPrecisionUTC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	store := NewFileStore(path)
	store.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 30, 45, 987654321, time.FixedZone("EST", -5*3600))
	}

	assert.NoError(t, store.Save(nil))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)

	var raw map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(data, &raw))
	assert.JSONEq(t, `"2025-06-01T17:30:45Z"`, string(raw["scraped_at"]))
}

func TestFileStoreOverwritesPriorSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	store := NewFileStore(path)

	assert.NoError(t, store.Save([]crawler.Product{{Title: "Old", Price: "$1.00", URL: "u1"}}))
	assert.NoError(t, store.Save([]crawler.Product{{Title: "New", Price: "$2.00", URL: "u2"}}))

	snap, err := store.Load()
	assert.NoError(t, err)
	assert.Len(t, snap.Products, 1)
	assert.Equal(t, "New", snap.Products[0].Title)
}
