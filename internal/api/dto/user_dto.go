package dto

import (
	"time"

	"vidshare-go/internal/model"
)

// UserUpdateRequest is a partial profile update; at least one field must
// be present.
type UserUpdateRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName" binding:"omitempty,min=1,max=100"`
	Bio       *string `json:"bio" binding:"omitempty,max=1000"`
}

// UserInfo is the sanitized public view of a user.
type UserInfo struct {
	ID              int64     `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Bio             string    `json:"bio"`
	Avatar          string    `json:"avatar"`
	Background      string    `json:"background"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ChannelInfo extends UserInfo with subscription aggregates relative to
// the requester.
type ChannelInfo struct {
	UserInfo
	SubscriberCount   int64 `json:"subscriberCount"`
	SubscribedToCount int64 `json:"subscribedToCount"`
	IsSubscribed      bool  `json:"isSubscribed"`
}

// NewUserInfo projects a model.User into its sanitized form.
func NewUserInfo(u *model.User) UserInfo {
	return UserInfo{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Bio:             u.Bio,
		Avatar:          u.Avatar,
		Background:      u.Background,
		IsEmailVerified: u.IsEmailVerified,
		CreatedAt:       u.CreatedAt,
	}
}

// OwnerBrief is the author info embedded in videos and comments.
type OwnerBrief struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// NewOwnerBrief projects a model.User into its embedded form.
func NewOwnerBrief(u *model.User) OwnerBrief {
	return OwnerBrief{ID: u.ID, Username: u.Username, Avatar: u.Avatar}
}
