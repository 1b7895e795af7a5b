package dto

// RegisterRequest is the account creation payload.
type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required,notblank,max=100"`
	LastName  string `json:"lastName" binding:"required,notblank,max=100"`
	Username  string `json:"username" binding:"required,notblank,max=100"`
	Email     string `json:"email" binding:"required,email,max=255"`
	Password  string `json:"password" binding:"required,min=6,max=255"`
}

// LoginRequest accepts either a username or an email in the username field.
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=1,max=255"`
	Password string `json:"password" binding:"required,min=1,max=255"`
}

// ChangePasswordRequest rotates the caller's password.
type ChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6,max=255"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// ForgotPasswordRequest starts a password reset by email.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest completes a password reset with the emailed token.
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=6,max=255"`
}

// TokenPair is returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
