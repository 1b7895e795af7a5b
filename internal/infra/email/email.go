package email

import (
	"context"
	"fmt"

	"vidshare-go/internal/config"
	"vidshare-go/pkg/logger"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// Sender delivers transactional mail through Resend.
type Sender struct {
	client    *resend.Client
	from      string
	publicURL string
}

// NewSender builds a Resend-backed sender from config.
func NewSender(cfg *config.EmailConfig) *Sender {
	return &Sender{
		client:    resend.NewClient(cfg.ResendAPIKey),
		from:      cfg.From,
		publicURL: cfg.PublicURL,
	}
}

// SendVerificationEmail mails the address-verification link issued at
// registration.
func (s *Sender) SendVerificationEmail(ctx context.Context, to, token string, userID int64) error {
	verifyURL := fmt.Sprintf("%s/api/v1/users/verify?token=%s&uid=%d", s.publicURL, token, userID)

	html := fmt.Sprintf(`<html><body>
<p>Hello,</p>
<p>Please verify your email address by clicking the link below:</p>
<a href="%s">Verify Email</a>
<p>If you did not request this verification, please ignore this email.</p>
</body></html>`, verifyURL)

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: "Email Verification",
		Html:    html,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	logger.Info("Verification email sent", zap.String("to", to))
	return nil
}

// SendForgotPasswordEmail mails the password-reset link.
func (s *Sender) SendForgotPasswordEmail(ctx context.Context, to, token string, userID int64) error {
	resetURL := fmt.Sprintf("%s/api/v1/users/reset-password?token=%s&uid=%d", s.publicURL, token, userID)

	html := fmt.Sprintf(`<html><body>
<p>Hi,</p>
<p>Click the link below to reset your password:</p>
<a href="%s">Reset Password</a>
<p>If you did not request a password reset, please ignore this email.</p>
</body></html>`, resetURL)

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: "Reset Your Password",
		Html:    html,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	logger.Info("Password reset email sent", zap.String("to", to))
	return nil
}
