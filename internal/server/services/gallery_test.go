package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/portraitstudio/internal/common"
	"github.com/dmitrijs2005/portraitstudio/internal/server/kv"
	"github.com/dmitrijs2005/portraitstudio/internal/server/models"
	"github.com/dmitrijs2005/portraitstudio/internal/server/storage"
)

// quotaStore wraps a memory store and rejects gallery writes larger than
// maxItems entries, simulating a store that runs out of room mid-save.
type quotaStore struct {
	*kv.MemoryStore
	maxItems int
}

func (s *quotaStore) Set(ctx context.Context, key string, value []byte) error {
	if s.maxItems > 0 && strings.Contains(key, "gallery") {
		// count items by their id fields rather than parsing fully
		if strings.Count(string(value), `"id"`) > s.maxItems {
			return fmt.Errorf("set %q: %w", key, kv.ErrQuotaExceeded)
		}
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func newGalleryService(maxItems int) (*GalleryService, *storage.Service) {
	st := storage.New(&quotaStore{MemoryStore: kv.NewMemoryStore(0), maxItems: maxItems})
	return NewGalleryService(st, testLogger()), st
}

func item(id string) models.GalleryItem {
	return models.GalleryItem{ID: id, Image: "data:image/jpeg;base64,aGk=", StyleID: "corporate-grey"}
}

func TestGallerySaveAndList(t *testing.T) {
	ctx := context.Background()
	s, _ := newGalleryService(0)

	for i := 0; i < 3; i++ {
		_, err := s.Save(ctx, "PS-10234", item(fmt.Sprintf("img-%d", i)))
		require.NoError(t, err)
	}

	items, err := s.List(ctx, "PS-10234")
	require.NoError(t, err)
	require.Len(t, items, 3)
	// newest first
	assert.Equal(t, "img-2", items[0].ID)
	assert.Equal(t, "img-0", items[2].ID)
}

func TestGallerySaveAssignsIDAndOwner(t *testing.T) {
	ctx := context.Background()
	s, _ := newGalleryService(0)

	saved, err := s.Save(ctx, "PS-10234", models.GalleryItem{Image: "data:image/jpeg;base64,aGk="})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "PS-10234", saved.UserID)
	assert.False(t, saved.CreatedAt.IsZero())
}

func TestGallerySoftCapTrimsToNine(t *testing.T) {
	ctx := context.Background()
	s, st := newGalleryService(0)

	for i := 0; i < 12; i++ {
		_, err := s.Save(ctx, "PS-10234", item(fmt.Sprintf("img-%d", i)))
		require.NoError(t, err)
	}

	stored, err := st.Gallery(ctx, "PS-10234")
	require.NoError(t, err)
	assert.Len(t, stored, 10)
	// oldest entries were trimmed, the newest survive in order
	assert.Equal(t, "img-2", stored[0].ID)
	assert.Equal(t, "img-11", stored[9].ID)
}

func TestGalleryEvictsOldestOnQuota(t *testing.T) {
	ctx := context.Background()
	s, st := newGalleryService(4)

	for i := 0; i < 6; i++ {
		_, err := s.Save(ctx, "PS-10234", item(fmt.Sprintf("img-%d", i)))
		require.NoError(t, err)
	}

	stored, err := st.Gallery(ctx, "PS-10234")
	require.NoError(t, err)
	require.Len(t, stored, 4)
	// the newest item always lands; oldest entries were evicted
	assert.Equal(t, "img-5", stored[3].ID)
	assert.Equal(t, "img-2", stored[0].ID)
}

func TestGalleryGivesUpWhenNothingFits(t *testing.T) {
	ctx := context.Background()
	s := NewGalleryService(storage.New(rejectAllStore{}), testLogger())

	_, err := s.Save(ctx, "PS-10234", item("img-0"))
	assert.ErrorIs(t, err, common.ErrGalleryFull)
}

// rejectAllStore fails every write with a quota error.
type rejectAllStore struct{}

func (rejectAllStore) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, common.ErrorNotFound
}

func (rejectAllStore) Set(ctx context.Context, key string, value []byte) error {
	return kv.ErrQuotaExceeded
}

func (rejectAllStore) Delete(ctx context.Context, key string) error { return nil }

func TestGalleryDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := newGalleryService(0)

	_, err := s.Save(ctx, "PS-10234", item("img-0"))
	require.NoError(t, err)
	_, err = s.Save(ctx, "PS-10234", item("img-1"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "PS-10234", "img-0"))

	items, err := s.List(ctx, "PS-10234")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "img-1", items[0].ID)

	assert.ErrorIs(t, s.Delete(ctx, "PS-10234", "img-0"), common.ErrorNotFound)
}
