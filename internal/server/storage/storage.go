// Package storage provides typed snapshot access to the blob store. Each
// record family lives under one fixed key and is read and written as a whole
// JSON document, so every update is a read-modify-write of its snapshot.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/portraitstudio/internal/common"
	"github.com/dmitrijs2005/portraitstudio/internal/server/kv"
	"github.com/dmitrijs2005/portraitstudio/internal/server/models"
)

const (
	keyUsers         = "portraitstudio_users"
	keySession       = "portraitstudio_session"
	keyLicenses      = "portraitstudio_codes"
	keyVisits        = "portraitstudio_visits"
	keyGalleryPrefix = "portraitstudio_gallery_"
)

// VisitSeed is the counter value reported for the very first visit.
const VisitSeed = 10240

// Service wraps a kv.Store with the fixed keys and JSON encoding used by the
// application. It is the single persistence dependency of all services.
type Service struct {
	store kv.Store
}

func New(store kv.Store) *Service {
	return &Service{store: store}
}

// Store exposes the underlying blob store for callers that need raw access
// (quota classification in retry loops).
func (s *Service) Store() kv.Store {
	return s.store
}

func galleryKey(userID string) string {
	return keyGalleryPrefix + userID
}

// getList decodes a JSON list snapshot. An absent key or a corrupt payload
// both yield an empty list; corruption is deliberately absorbed because the
// snapshot is the only copy and there is nothing to repair it from.
func getList[T any](ctx context.Context, s *Service, key string) ([]T, error) {
	b, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("load %q: %w", key, err)
	}

	var out []T
	if err := json.Unmarshal(b, &out); err != nil {
		return []T{}, nil
	}
	return out, nil
}

func setList[T any](ctx context.Context, s *Service, key string, list []T) error {
	b, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	if err := s.store.Set(ctx, key, b); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

func (s *Service) Users(ctx context.Context) ([]models.User, error) {
	return getList[models.User](ctx, s, keyUsers)
}

func (s *Service) SaveUsers(ctx context.Context, users []models.User) error {
	return setList(ctx, s, keyUsers, users)
}

// Session returns the active session, or common.ErrorNotFound when nobody
// is signed in.
func (s *Service) Session(ctx context.Context) (*models.Session, error) {
	b, err := s.store.Get(ctx, keySession)
	if err != nil {
		return nil, err
	}
	var sess models.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, common.ErrorNotFound
	}
	return &sess, nil
}

func (s *Service) SaveSession(ctx context.Context, sess *models.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.store.Set(ctx, keySession, b)
}

func (s *Service) ClearSession(ctx context.Context) error {
	return s.store.Delete(ctx, keySession)
}

func (s *Service) Gallery(ctx context.Context, userID string) ([]models.GalleryItem, error) {
	return getList[models.GalleryItem](ctx, s, galleryKey(userID))
}

func (s *Service) SaveGallery(ctx context.Context, userID string, items []models.GalleryItem) error {
	return setList(ctx, s, galleryKey(userID), items)
}

func (s *Service) Licenses(ctx context.Context) ([]string, error) {
	return getList[string](ctx, s, keyLicenses)
}

func (s *Service) SaveLicenses(ctx context.Context, codes []string) error {
	return setList(ctx, s, keyLicenses, codes)
}

// IncrementVisits bumps the visit counter and returns the new value. The
// counter starts from a fixed seed so the first visitor does not see zero.
func (s *Service) IncrementVisits(ctx context.Context) (int64, error) {
	count := int64(VisitSeed)

	b, err := s.store.Get(ctx, keyVisits)
	if err == nil {
		if parsed, perr := strconv.ParseInt(string(b), 10, 64); perr == nil {
			count = parsed
		}
	} else if !errors.Is(err, common.ErrorNotFound) {
		return 0, fmt.Errorf("load visits: %w", err)
	}

	count++
	if err := s.store.Set(ctx, keyVisits, []byte(strconv.FormatInt(count, 10))); err != nil {
		return 0, fmt.Errorf("save visits: %w", err)
	}
	return count, nil
}
