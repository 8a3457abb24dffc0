package models

// AdminUser is the authenticated administrator attached to a request.
type AdminUser struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// AdminSession is returned by sign-in. IDToken is sent back as a bearer token on admin routes.
type AdminSession struct {
	AdminUser
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// AccountUpdateRequest changes the signed-in admin's display name and optionally the password.
type AccountUpdateRequest struct {
	DisplayName string `json:"displayName"`
	NewPassword string `json:"newPassword"`
}
