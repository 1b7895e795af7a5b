package model

import "time"

// User is an account and, equivalently, a channel.
type User struct {
	ID                     int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username               string    `gorm:"size:255;not null;uniqueIndex" json:"username"`
	Email                  string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password               string    `gorm:"size:255;not null" json:"-"`
	FirstName              string    `gorm:"size:255;not null" json:"first_name"`
	LastName               string    `gorm:"size:255;not null" json:"last_name"`
	Bio                    string    `gorm:"type:text" json:"bio"`
	Avatar                 string    `gorm:"size:500" json:"avatar"`
	Background             string    `gorm:"size:500" json:"background"`
	RefreshToken           string    `gorm:"size:1024" json:"-"`
	EmailVerificationToken string    `gorm:"size:64" json:"-"`
	IsEmailVerified        bool      `gorm:"not null;default:false" json:"is_email_verified"`
	LastOnline             time.Time `json:"last_online"`
	CreatedAt              time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Videos []Video `gorm:"foreignKey:OwnerID" json:"videos,omitempty"`
}

func (User) TableName() string {
	return "users"
}
