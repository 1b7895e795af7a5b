package model

import "time"

// ForgotPassword is a one-time password-reset token. At most one row exists
// per owner; a new request overwrites the previous token and expiry.
type ForgotPassword struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID   int64     `gorm:"not null;uniqueIndex:uq_forgot_owner" json:"owner_id"`
	Token     string    `gorm:"size:64;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ForgotPassword) TableName() string {
	return "forgot_passwords"
}

// Expired reports whether the token is past its expiry.
func (f *ForgotPassword) Expired() bool {
	return time.Now().After(f.ExpiresAt)
}
