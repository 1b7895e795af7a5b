package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vidshare-go/internal/api/dto"
	"vidshare-go/internal/api/middleware"
	"vidshare-go/internal/api/response"
	"vidshare-go/internal/config"
	"vidshare-go/internal/service"
	"vidshare-go/pkg/logger"
)

// Cookie names are part of the wire contract with the frontend; the
// misspelled access cookie is kept on purpose.
const (
	accessCookie  = "accesToken"
	refreshCookie = "refreshToken"
)

type AuthHandler struct {
	authService *service.AuthService
	authCfg     *config.AuthConfig
}

func NewAuthHandler(authService *service.AuthService, authCfg *config.AuthConfig) *AuthHandler {
	return &AuthHandler{authService: authService, authCfg: authCfg}
}

func (h *AuthHandler) setSessionCookies(c *gin.Context, pair *dto.TokenPair) {
	maxAge := h.authCfg.CookieMaxAge()
	c.SetCookie(accessCookie, pair.AccessToken, maxAge, "/", "", true, true)
	c.SetCookie(refreshCookie, pair.RefreshToken, maxAge, "/", "", true, true)
}

func (h *AuthHandler) clearSessionCookies(c *gin.Context) {
	c.SetCookie(accessCookie, "", -1, "/", "", true, true)
	c.SetCookie(refreshCookie, "", -1, "/", "", true, true)
}

// Register POST /api/v1/users/register
// @Summary Register a new account
// @Description Creates the account and sends a verification email
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "account details"
// @Success 201 {object} response.Envelope{data=dto.UserInfo}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /users/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	info, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.Created(c, "account created, check your inbox to verify your email", info)
}

// VerifyEmail GET /api/v1/users/verify
// @Summary Verify an email address
// @Tags users
// @Produce json
// @Param token query string true "verification token"
// @Param uid query int true "user id"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /users/verify [get]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	userID, err := strconv.ParseInt(c.Query("uid"), 10, 64)
	if err != nil || token == "" {
		response.BadRequest(c, "missing token or uid")
		return
	}

	if err := h.authService.VerifyEmail(userID, token); err != nil {
		handleAuthError(c, err)
		return
	}
	response.OK(c, "email verified", nil)
}

// Login POST /api/v1/users/login
// @Summary Log in with username or email
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "credentials"
// @Success 200 {object} response.Envelope{data=dto.UserInfo}
// @Failure 401 {object} response.Envelope
// @Router /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	info, pair, err := h.authService.Login(&req)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	h.setSessionCookies(c, pair)
	response.OK(c, "logged in", gin.H{"user": info, "tokens": pair})
}

// Logout POST /api/v1/users/logout
// @Summary Log out and invalidate the refresh token
// @Tags users
// @Produce json
// @Success 200 {object} response.Envelope
// @Security ApiKeyAuth
// @Router /users/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)
	if err := h.authService.Logout(userID); err != nil {
		handleAuthError(c, err)
		return
	}

	h.clearSessionCookies(c)
	response.OK(c, "logged out", nil)
}

// Refresh POST /api/v1/users/refresh
// @Summary Rotate the token pair using the refresh token
// @Tags users
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.TokenPair}
// @Failure 401 {object} response.Envelope
// @Router /users/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, err := c.Cookie(refreshCookie)
	if err != nil || token == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || body.RefreshToken == "" {
			response.Unauthorized(c, "missing refresh token")
			return
		}
		token = body.RefreshToken
	}

	pair, err := h.authService.Refresh(token)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	h.setSessionCookies(c, pair)
	response.OK(c, "tokens refreshed", pair)
}

// ChangePassword POST /api/v1/users/change-password
// @Summary Change the current password
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "passwords"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security ApiKeyAuth
// @Router /users/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	if err := h.authService.ChangePassword(userID, &req); err != nil {
		handleAuthError(c, err)
		return
	}
	response.OK(c, "password changed", nil)
}

// ForgotPassword POST /api/v1/users/forgot-password
// @Summary Request a password reset email
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "account email"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		handleAuthError(c, err)
		return
	}
	response.OK(c, "reset link sent", nil)
}

// ResetPassword POST /api/v1/users/reset-password
// @Summary Complete a password reset with the emailed token
// @Tags users
// @Accept json
// @Produce json
// @Param token query string true "reset token"
// @Param uid query int true "user id"
// @Param request body dto.ResetPasswordRequest true "new password"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /users/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	token := c.Query("token")
	userID, err := strconv.ParseInt(c.Query("uid"), 10, 64)
	if err != nil || token == "" {
		response.BadRequest(c, "missing token or uid")
		return
	}

	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if err := h.authService.ResetPassword(userID, token, req.NewPassword); err != nil {
		handleAuthError(c, err)
		return
	}
	response.OK(c, "password reset", nil)
}

func handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateUser):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidRefresh):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidVerifyToken),
		errors.Is(err, service.ErrWrongOldPassword),
		errors.Is(err, service.ErrPasswordConfirm),
		errors.Is(err, service.ErrSamePassword),
		errors.Is(err, service.ErrResetTokenInvalid),
		errors.Is(err, service.ErrResetTokenExpired):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Auth operation failed", zap.Error(err))
		response.InternalError(c, "operation failed, please try again later")
	}
}
