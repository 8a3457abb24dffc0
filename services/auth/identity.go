package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"asokatrip/models"
)

// PasswordGateway signs admins in with email and password and sends reset emails.
type PasswordGateway interface {
	VerifyPassword(ctx context.Context, email, password string) (*models.AdminSession, error)
	SendPasswordReset(ctx context.Context, email string) error
}

// IdentityToolkit is the PasswordGateway of the Firebase project, reached with its web API key.
type IdentityToolkit struct {
	svc *identitytoolkit.Service
}

func NewIdentityToolkit(ctx context.Context, apiKey string) (*IdentityToolkit, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("identity toolkit: FIREBASE_API_KEY is not set")
	}
	svc, err := identitytoolkit.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("identity toolkit: %w", err)
	}
	return &IdentityToolkit{svc: svc}, nil
}

func (t *IdentityToolkit) VerifyPassword(ctx context.Context, email, password string) (*models.AdminSession, error) {
	resp, err := t.svc.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		if isCredentialError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("verify password: %w", err)
	}
	return &models.AdminSession{
		AdminUser: models.AdminUser{
			UID:         resp.LocalId,
			Email:       resp.Email,
			DisplayName: resp.DisplayName,
		},
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
	}, nil
}

// SendPasswordReset asks Firebase to email a reset link. Unknown emails are not reported, so the
// endpoint cannot be used to discover accounts.
func (t *IdentityToolkit) SendPasswordReset(ctx context.Context, email string) error {
	_, err := t.svc.Relyingparty.GetOobConfirmationCode(&identitytoolkit.Relyingparty{
		RequestType: "PASSWORD_RESET",
		Email:       email,
	}).Context(ctx).Do()
	if err != nil && !isCredentialError(err) {
		return fmt.Errorf("send password reset: %w", err)
	}
	return nil
}

// isCredentialError matches the 400 responses Firebase gives for bad email/password pairs.
func isCredentialError(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Code != 400 {
		return false
	}
	for _, code := range []string{"EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "USER_DISABLED", "INVALID_EMAIL"} {
		if strings.Contains(gerr.Message, code) {
			return true
		}
	}
	return false
}
