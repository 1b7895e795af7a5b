package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"vidshare-go/internal/api/dto"
	"vidshare-go/internal/config"
	"vidshare-go/internal/infra/email"
	"vidshare-go/internal/model"
	"vidshare-go/internal/repository"
	"vidshare-go/pkg/logger"
	"vidshare-go/pkg/utils"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUser      = errors.New("username or email already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidVerifyToken = errors.New("invalid verification token")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
	ErrWrongOldPassword   = errors.New("old password does not match")
	ErrPasswordConfirm    = errors.New("password confirmation does not match")
	ErrSamePassword       = errors.New("new password must differ from the current one")
	ErrResetTokenInvalid  = errors.New("invalid reset token")
	ErrResetTokenExpired  = errors.New("reset token has expired")
)

const (
	verifyTokenLength = 20
	resetTokenLength  = 25
	resetTokenTTL     = 15 * time.Minute
)

type AuthService struct {
	userRepo   *repository.UserRepository
	forgotRepo *repository.ForgotPasswordRepository
	mailer     *email.Sender
	authCfg    *config.AuthConfig
}

func NewAuthService(userRepo *repository.UserRepository, forgotRepo *repository.ForgotPasswordRepository, mailer *email.Sender, authCfg *config.AuthConfig) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		forgotRepo: forgotRepo,
		mailer:     mailer,
		authCfg:    authCfg,
	}
}

// Register creates the account and emails a verification link.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserInfo, error) {
	exists, err := s.userRepo.ExistsByUsernameOrEmail(req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateUser
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	verifyToken, err := utils.RandomToken(verifyTokenLength)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:               req.Username,
		Email:                  req.Email,
		Password:               hash,
		FirstName:              req.FirstName,
		LastName:               req.LastName,
		EmailVerificationToken: verifyToken,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	if err := s.mailer.SendVerificationEmail(ctx, user.Email, verifyToken, user.ID); err != nil {
		return nil, fmt.Errorf("failed to send verification email: %w", err)
	}

	info := dto.NewUserInfo(user)
	return &info, nil
}

// VerifyEmail marks the account verified when the emailed token matches.
func (s *AuthService) VerifyEmail(userID int64, token string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return ErrUserNotFound
	}
	if user.EmailVerificationToken == "" || !utils.SecureCompare(user.EmailVerificationToken, token) {
		return ErrInvalidVerifyToken
	}

	_, err = s.userRepo.Update(user.ID, map[string]interface{}{
		"is_email_verified":        true,
		"email_verification_token": "",
	})
	return err
}

// Login accepts a username or email and issues a fresh token pair,
// rotating the stored refresh token.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.UserInfo, *dto.TokenPair, error) {
	user, err := s.userRepo.GetByUsernameOrEmail(req.Username)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !utils.VerifyPassword(req.Password, user.Password) {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, nil, err
	}

	if _, err := s.userRepo.Update(user.ID, map[string]interface{}{
		"refresh_token": pair.RefreshToken,
		"last_online":   time.Now(),
	}); err != nil {
		return nil, nil, err
	}

	info := dto.NewUserInfo(user)
	return &info, pair, nil
}

// Logout invalidates the stored refresh token.
func (s *AuthService) Logout(userID int64) error {
	_, err := s.userRepo.Update(userID, map[string]interface{}{"refresh_token": ""})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	return err
}

// Refresh validates the presented refresh token against its signature and
// the stored copy, then rotates the pair.
func (s *AuthService) Refresh(refreshToken string) (*dto.TokenPair, error) {
	claims, err := utils.ParseToken(refreshToken, s.authCfg.RefreshSecret)
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	if user.RefreshToken == "" || !utils.SecureCompare(user.RefreshToken, refreshToken) {
		return nil, ErrInvalidRefresh
	}

	pair, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.Update(user.ID, map[string]interface{}{"refresh_token": pair.RefreshToken}); err != nil {
		return nil, err
	}
	return pair, nil
}

// ChangePassword rotates the password after checking the old one.
func (s *AuthService) ChangePassword(userID int64, req *dto.ChangePasswordRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return ErrPasswordConfirm
	}
	if req.NewPassword == req.OldPassword {
		return ErrSamePassword
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return ErrUserNotFound
	}
	if !utils.VerifyPassword(req.OldPassword, user.Password) {
		return ErrWrongOldPassword
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	_, err = s.userRepo.Update(userID, map[string]interface{}{"password": hash})
	return err
}

// RequestPasswordReset upserts a short-lived reset token and mails the
// reset link. One active token per user.
func (s *AuthService) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(emailAddr)
	if err != nil {
		return ErrUserNotFound
	}

	token, err := utils.RandomToken(resetTokenLength)
	if err != nil {
		return err
	}
	if err := s.forgotRepo.Upsert(user.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}

	if err := s.mailer.SendForgotPasswordEmail(ctx, user.Email, token, user.ID); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

// ResetPassword completes a reset. The token is single use: its record is
// deleted on success.
func (s *AuthService) ResetPassword(userID int64, token, newPassword string) error {
	record, err := s.forgotRepo.GetByOwner(userID)
	if err != nil {
		return ErrResetTokenInvalid
	}
	if record.Expired() {
		return ErrResetTokenExpired
	}
	if !utils.SecureCompare(record.Token, token) {
		return ErrResetTokenInvalid
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return ErrUserNotFound
	}
	if utils.VerifyPassword(newPassword, user.Password) {
		return ErrSamePassword
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if _, err := s.userRepo.Update(userID, map[string]interface{}{"password": hash}); err != nil {
		return err
	}

	if err := s.forgotRepo.DeleteByOwner(userID); err != nil {
		logger.Warn("failed to delete used reset token", zap.Int64("user_id", userID), zap.Error(err))
	}
	return nil
}

func (s *AuthService) issueTokens(userID int64) (*dto.TokenPair, error) {
	access, err := utils.GenerateToken(userID, s.authCfg.AccessSecret, s.authCfg.Issuer, s.authCfg.AccessTTL())
	if err != nil {
		return nil, err
	}
	refresh, err := utils.GenerateToken(userID, s.authCfg.RefreshSecret, s.authCfg.Issuer, s.authCfg.RefreshTTL())
	if err != nil {
		return nil, err
	}
	return &dto.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
