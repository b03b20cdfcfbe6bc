package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/portraitstudio/internal/common"
	"github.com/dmitrijs2005/portraitstudio/internal/logging"
	"github.com/dmitrijs2005/portraitstudio/internal/server/kv"
	"github.com/dmitrijs2005/portraitstudio/internal/server/models"
	"github.com/dmitrijs2005/portraitstudio/internal/server/storage"
)

// galleryCap is the soft per-user gallery size. Saving the 10th image trims
// the list to the newest 9 before appending.
const galleryCap = 10

// GalleryService stores portraits per user and evicts oldest-first when the
// blob store runs out of room.
type GalleryService struct {
	storage *storage.Service
	logger  logging.Logger
}

func NewGalleryService(st *storage.Service, logger logging.Logger) *GalleryService {
	return &GalleryService{storage: st, logger: logger}
}

// Save appends a portrait to the user's gallery. Two mechanisms bound its
// size: a soft cap of 10 entries enforced up front, and a retry loop that
// drops the oldest entry whenever the store rejects the snapshot for
// capacity. If even a single-item list cannot be persisted the new image is
// given up on and ErrGalleryFull is returned.
func (s *GalleryService) Save(ctx context.Context, userID string, item models.GalleryItem) (*models.GalleryItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.UserID = userID
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	items, err := s.storage.Gallery(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load gallery: %w", err)
	}

	if len(items) >= galleryCap {
		items = items[len(items)-(galleryCap-1):]
	}
	items = append(items, item)

	for {
		err := s.storage.SaveGallery(ctx, userID, items)
		if err == nil {
			return &item, nil
		}

		if kv.Classify(err) != kv.KindQuota || len(items) <= 1 {
			if kv.Classify(err) == kv.KindQuota {
				s.logger.Warn(ctx, "gallery write abandoned, store exhausted", "user_id", userID)
				return nil, common.ErrGalleryFull
			}
			return nil, fmt.Errorf("save gallery: %w", err)
		}

		s.logger.Warn(ctx, "store full, evicting oldest gallery item",
			"user_id", userID, "evicted_id", items[0].ID)
		items = items[1:]
	}
}

// List returns the user's portraits, newest first.
func (s *GalleryService) List(ctx context.Context, userID string) ([]models.GalleryItem, error) {
	items, err := s.storage.Gallery(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load gallery: %w", err)
	}

	out := make([]models.GalleryItem, len(items))
	for i, it := range items {
		out[len(items)-1-i] = it
	}
	return out, nil
}

// Delete removes one portrait by ID.
func (s *GalleryService) Delete(ctx context.Context, userID, itemID string) error {
	items, err := s.storage.Gallery(ctx, userID)
	if err != nil {
		return fmt.Errorf("load gallery: %w", err)
	}

	kept := items[:0]
	found := false
	for _, it := range items {
		if it.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	if !found {
		return common.ErrorNotFound
	}

	if err := s.storage.SaveGallery(ctx, userID, kept); err != nil {
		return fmt.Errorf("save gallery: %w", err)
	}
	return nil
}
