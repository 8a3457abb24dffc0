package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"asokatrip/middleware"
	"asokatrip/models"
	"asokatrip/services/auth"
)

// AuthHandler serves admin sign-in and account endpoints.
type AuthHandler struct {
	Auth auth.AuthService
}

func NewAuthHandler(svc auth.AuthService) *AuthHandler {
	return &AuthHandler{Auth: svc}
}

// SignInHandler exchanges email and password for an ID token.
func (h *AuthHandler) SignInHandler(c *gin.Context) {
	var req models.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	session, err := h.Auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, "sign in", err)
		return
	}
	getLogger(c).Info("Admin signed in", zap.String("uid", session.UID))
	c.JSON(http.StatusOK, session)
}

// PasswordResetHandler mails a reset link. It answers 200 whether or not the account exists.
func (h *AuthHandler) PasswordResetHandler(c *gin.Context) {
	var req models.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.Auth.SendPasswordReset(c.Request.Context(), req.Email); err != nil {
		getLogger(c).Warn("Password reset failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"message": "Jika email terdaftar, tautan reset kata sandi telah dikirim."})
}

// MeHandler returns the signed-in admin.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		respondError(c, "me", auth.ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, admin)
}

// UpdateAccountHandler changes the display name and optionally the password.
func (h *AuthHandler) UpdateAccountHandler(c *gin.Context) {
	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		respondError(c, "update account", auth.ErrUnauthorized)
		return
	}
	var req models.AccountUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	updated, err := h.Auth.UpdateAccount(c.Request.Context(), admin.UID, req)
	if err != nil {
		respondError(c, "update account", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// SignOutHandler revokes the admin's refresh tokens.
func (h *AuthHandler) SignOutHandler(c *gin.Context) {
	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		respondError(c, "sign out", auth.ErrUnauthorized)
		return
	}
	if err := h.Auth.SignOut(c.Request.Context(), admin.UID); err != nil {
		respondError(c, "sign out", err)
		return
	}
	c.Status(http.StatusNoContent)
}
