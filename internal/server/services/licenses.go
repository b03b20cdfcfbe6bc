package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/portraitstudio/internal/common"
	"github.com/dmitrijs2005/portraitstudio/internal/logging"
	"github.com/dmitrijs2005/portraitstudio/internal/server/models"
	"github.com/dmitrijs2005/portraitstudio/internal/server/storage"
)

// LicenseService issues and redeems the one-time premium codes.
type LicenseService struct {
	storage *storage.Service
	logger  logging.Logger
}

func NewLicenseService(st *storage.Service, logger logging.Logger) *LicenseService {
	return &LicenseService{storage: st, logger: logger}
}

// Generate mints n fresh codes, replacing any previously stored batch, and
// returns them. Access control (the admin passcode) is enforced at the API
// layer.
func (s *LicenseService) Generate(ctx context.Context, n int) ([]string, error) {
	if n <= 0 {
		n = 1000
	}

	codes := make([]string, 0, n)
	seen := make(map[string]struct{}, n)
	for len(codes) < n {
		code, err := common.MakeRandCode(common.LicenseCodeLength)
		if err != nil {
			return nil, fmt.Errorf("generate code: %w", err)
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}

	if err := s.storage.SaveLicenses(ctx, codes); err != nil {
		return nil, fmt.Errorf("save codes: %w", err)
	}

	s.logger.Info(ctx, "license codes generated", "count", len(codes))
	return codes, nil
}

// Redeem upgrades the account to premium when code is valid. A code is
// valid if it is in the stored batch, or, when no batch was ever generated,
// if it merely has the right length; that bootstrap path keeps a fresh
// deployment usable before an admin mints codes. Redeemed codes are removed
// so each works once.
func (s *LicenseService) Redeem(ctx context.Context, code, userID string) (*models.User, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) < common.LicenseCodeLength {
		return nil, fmt.Errorf("%w: license code must be %d characters", common.ErrorValidation, common.LicenseCodeLength)
	}

	codes, err := s.storage.Licenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("load codes: %w", err)
	}

	allowBootstrapCode := len(codes) == 0

	idx := -1
	for i, c := range codes {
		if c == code {
			idx = i
			break
		}
	}

	if idx < 0 && !allowBootstrapCode {
		return nil, common.ErrCodeConsumed
	}

	user, err := s.markPremium(ctx, userID)
	if err != nil {
		return nil, err
	}

	if idx >= 0 {
		codes = append(codes[:idx], codes[idx+1:]...)
		if err := s.storage.SaveLicenses(ctx, codes); err != nil {
			return nil, fmt.Errorf("save codes: %w", err)
		}
	}

	s.logger.Info(ctx, "license redeemed", "user_id", userID, "bootstrap", idx < 0)
	return user, nil
}

// markPremium flips the premium flag in the users list and, when the
// session belongs to the same account, in the session snapshot too.
func (s *LicenseService) markPremium(ctx context.Context, userID string) (*models.User, error) {
	users, err := s.storage.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	var updated *models.User
	for i := range users {
		if users[i].ID == userID {
			users[i].Premium = true
			u := users[i]
			updated = &u
			break
		}
	}
	if updated == nil {
		return nil, common.ErrorNotFound
	}

	if err := s.storage.SaveUsers(ctx, users); err != nil {
		return nil, fmt.Errorf("save users: %w", err)
	}

	if sess, serr := s.storage.Session(ctx); serr == nil && sess.ID == userID {
		sess.Premium = true
		if err := s.storage.SaveSession(ctx, sess); err != nil {
			return nil, fmt.Errorf("save session: %w", err)
		}
	}

	return updated, nil
}
