package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"go.uber.org/zap"

	"asokatrip/models"
	"asokatrip/utils"
)

// MinPasswordLength is the shortest password Firebase accepts.
const MinPasswordLength = 6

// Directory is the part of the Firebase Admin auth client the service uses.
type Directory interface {
	VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*fbauth.Token, error)
	UpdateUser(ctx context.Context, uid string, user *fbauth.UserToUpdate) (*fbauth.UserRecord, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// AuthService authenticates administrators.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (*models.AdminSession, error)
	SendPasswordReset(ctx context.Context, email string) error
	Verify(ctx context.Context, idToken string) (*models.AdminUser, error)
	UpdateAccount(ctx context.Context, uid string, req models.AccountUpdateRequest) (*models.AdminUser, error)
	SignOut(ctx context.Context, uid string) error
}

// DefaultAuthService implements AuthService on Firebase Authentication.
type DefaultAuthService struct {
	dir       Directory
	passwords PasswordGateway
	cache     SessionCache
	now       func() time.Time
}

func NewDefaultAuthService(dir Directory, passwords PasswordGateway, cache SessionCache) *DefaultAuthService {
	if cache == nil {
		cache = NoCache{}
	}
	return &DefaultAuthService{dir: dir, passwords: passwords, cache: cache, now: time.Now}
}

func (s *DefaultAuthService) SignIn(ctx context.Context, email, password string) (*models.AdminSession, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	session, err := s.passwords.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Admin signed in", zap.String("uid", session.UID))
	return session, nil
}

func (s *DefaultAuthService) SendPasswordReset(ctx context.Context, email string) error {
	return s.passwords.SendPasswordReset(ctx, strings.TrimSpace(strings.ToLower(email)))
}

// Verify checks an ID token, answering from the cache when it was verified recently.
func (s *DefaultAuthService) Verify(ctx context.Context, idToken string) (*models.AdminUser, error) {
	if idToken == "" {
		return nil, ErrUnauthorized
	}
	if user, ok := s.cache.Get(ctx, idToken); ok {
		return user, nil
	}

	tok, err := s.dir.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		utils.GetLogger().Debug("ID token rejected", zap.Error(err))
		return nil, ErrUnauthorized
	}
	user := userFromToken(tok)

	ttl := utils.AuthCacheTTL
	if left := time.Unix(tok.Expires, 0).Sub(s.now()); left < ttl {
		ttl = left
	}
	if ttl > 0 {
		if err := s.cache.Set(ctx, idToken, user, ttl); err != nil {
			utils.GetLogger().Warn("Failed to cache verified token", zap.Error(err))
		}
	}
	return user, nil
}

// UpdateAccount changes the display name and, when given, the password. Cached tokens are dropped
// so the change is visible on the next request.
func (s *DefaultAuthService) UpdateAccount(ctx context.Context, uid string, req models.AccountUpdateRequest) (*models.AdminUser, error) {
	name := strings.TrimSpace(req.DisplayName)
	if name == "" && req.NewPassword == "" {
		return nil, ErrNothingToUpdate
	}
	if req.NewPassword != "" && len(req.NewPassword) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	update := &fbauth.UserToUpdate{}
	if name != "" {
		update = update.DisplayName(name)
	}
	if req.NewPassword != "" {
		update = update.Password(req.NewPassword)
	}
	rec, err := s.dir.UpdateUser(ctx, uid, update)
	if err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}
	if err := s.cache.Forget(ctx, uid); err != nil {
		utils.GetLogger().Warn("Failed to clear auth cache", zap.String("uid", uid), zap.Error(err))
	}
	utils.GetLogger().Info("Admin account updated", zap.String("uid", uid), zap.Bool("passwordChanged", req.NewPassword != ""))
	return &models.AdminUser{UID: rec.UID, Email: rec.Email, DisplayName: rec.DisplayName}, nil
}

// SignOut revokes every refresh token of uid and forgets its cached ID tokens.
func (s *DefaultAuthService) SignOut(ctx context.Context, uid string) error {
	if err := s.dir.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	if err := s.cache.Forget(ctx, uid); err != nil {
		utils.GetLogger().Warn("Failed to clear auth cache", zap.String("uid", uid), zap.Error(err))
	}
	utils.GetLogger().Info("Admin signed out", zap.String("uid", uid))
	return nil
}

func userFromToken(tok *fbauth.Token) *models.AdminUser {
	user := &models.AdminUser{UID: tok.UID}
	if email, ok := tok.Claims["email"].(string); ok {
		user.Email = email
	}
	if name, ok := tok.Claims["name"].(string); ok {
		user.DisplayName = name
	}
	return user
}
