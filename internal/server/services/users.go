// Package services implements the application use cases on top of the
// storage snapshots: accounts, sessions, license redemption, the gallery
// with its quota eviction policy, and portrait generation.
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/portraitstudio/internal/common"
	"github.com/dmitrijs2005/portraitstudio/internal/logging"
	"github.com/dmitrijs2005/portraitstudio/internal/server/auth"
	"github.com/dmitrijs2005/portraitstudio/internal/server/config"
	"github.com/dmitrijs2005/portraitstudio/internal/server/models"
	"github.com/dmitrijs2005/portraitstudio/internal/server/storage"
)

// maxIDAttempts bounds account number generation when the random pick keeps
// colliding with existing users.
const maxIDAttempts = 10

var (
	nameRe   = regexp.MustCompile(`^[A-Za-z][A-Za-z .]*$`)
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobileRe = regexp.MustCompile(`^[0-9]{10}$`)
)

// UserService handles registration, login and session state.
type UserService struct {
	storage                     *storage.Service
	logger                      logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewUserService(st *storage.Service, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		storage:                     st,
		logger:                      logger,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// ValidateRegistration checks the signup fields and returns a field-keyed
// message map. An empty map means the input is acceptable.
func ValidateRegistration(name, email, mobile, password string) map[string]string {
	problems := map[string]string{}

	name = strings.TrimSpace(name)
	if len(name) < 3 || !nameRe.MatchString(name) {
		problems["name"] = "name must be at least 3 characters (letters, spaces and dots only)"
	}
	if !emailRe.MatchString(strings.TrimSpace(email)) {
		problems["email"] = "enter a valid email address"
	}
	if !mobileRe.MatchString(strings.TrimSpace(mobile)) {
		problems["mobile"] = "mobile number must be exactly 10 digits"
	}
	if len(password) < 6 {
		problems["password"] = "password must be at least 6 characters"
	}

	return problems
}

// Register creates an account and returns it. The account number is
// generated server-side; name, email and mobile must pass validation and
// email and mobile must be unused.
func (s *UserService) Register(ctx context.Context, name, email, mobile, password string) (*models.User, error) {
	if problems := ValidateRegistration(name, email, mobile, password); len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrorValidation, joinProblems(problems))
	}

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	mobile = strings.TrimSpace(mobile)

	users, err := s.storage.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return nil, fmt.Errorf("%w: email already registered", common.ErrorAlreadyExists)
		}
		if u.Mobile == mobile {
			return nil, fmt.Errorf("%w: mobile already registered", common.ErrorAlreadyExists)
		}
	}

	id, err := generateUserID(users)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:       id,
		Name:     name,
		Email:    email,
		Mobile:   mobile,
		Password: password,
		Premium:  false,
		JoinedAt: time.Now().UTC(),
	}

	users = append(users, user)
	if err := s.storage.SaveUsers(ctx, users); err != nil {
		return nil, fmt.Errorf("save users: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return &user, nil
}

// generateUserID picks a fresh "PS-" + 5 digit account number. Collisions
// are retried up to maxIDAttempts, after which an error is returned
// rather than looping forever.
func generateUserID(existing []models.User) (string, error) {
	taken := make(map[string]struct{}, len(existing))
	for _, u := range existing {
		taken[u.ID] = struct{}{}
	}

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		n, err := common.MakeRandDigits(5)
		if err != nil {
			return "", err
		}
		id := common.UserIDPrefix + strconv.Itoa(n)
		if _, ok := taken[id]; !ok {
			return id, nil
		}
	}

	return "", fmt.Errorf("%w: could not allocate account number", common.ErrorInternal)
}

// Login checks credentials, stores the session snapshot and returns the
// user together with an access token. The ID is normalized (trimmed,
// uppercased) before lookup.
func (s *UserService) Login(ctx context.Context, userID, password string) (*models.User, string, error) {
	userID = strings.ToUpper(strings.TrimSpace(userID))
	if !strings.HasPrefix(userID, common.UserIDPrefix) || len(userID) < 6 {
		return nil, "", fmt.Errorf("%w: malformed account number", common.ErrorValidation)
	}

	users, err := s.storage.Users(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("load users: %w", err)
	}

	for _, u := range users {
		if u.ID == userID && u.Password == password {
			sess := &models.Session{User: u, LoggedInAt: time.Now().UTC()}
			if err := s.storage.SaveSession(ctx, sess); err != nil {
				return nil, "", fmt.Errorf("save session: %w", err)
			}

			token, err := auth.GenerateToken(u.ID, s.jwtSecret, s.accessTokenValidityDuration)
			if err != nil {
				return nil, "", common.ErrorInternal
			}

			s.logger.Info(ctx, "user logged in", "user_id", u.ID)
			found := u
			return &found, token, nil
		}
	}

	return nil, "", common.ErrorUnauthorized
}

// Logout clears the stored session.
func (s *UserService) Logout(ctx context.Context) error {
	return s.storage.ClearSession(ctx)
}

// Session returns the active session, or common.ErrorNotFound.
func (s *UserService) Session(ctx context.Context) (*models.Session, error) {
	sess, err := s.storage.Session(ctx)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	return sess, nil
}

func joinProblems(problems map[string]string) string {
	parts := make([]string, 0, len(problems))
	for field, msg := range problems {
		parts = append(parts, field+": "+msg)
	}
	// map order is random; sort for stable messages
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}
