package repository

import (
	"time"

	"vidshare-go/internal/model"

	"gorm.io/gorm"
)

type ForgotPasswordRepository struct {
	db *gorm.DB
}

func NewForgotPasswordRepository(db *gorm.DB) *ForgotPasswordRepository {
	return &ForgotPasswordRepository{db: db}
}

// GetByOwner returns the owner's active reset row, if any.
func (r *ForgotPasswordRepository) GetByOwner(ownerID int64) (*model.ForgotPassword, error) {
	var fp model.ForgotPassword
	err := r.db.Where("owner_id = ?", ownerID).First(&fp).Error
	if err != nil {
		return nil, err
	}
	return &fp, nil
}

// Upsert creates or replaces the single active token for an owner.
func (r *ForgotPasswordRepository) Upsert(ownerID int64, token string, expiresAt time.Time) error {
	existing, err := r.GetByOwner(ownerID)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return err
		}
		return r.db.Create(&model.ForgotPassword{
			OwnerID:   ownerID,
			Token:     token,
			ExpiresAt: expiresAt,
		}).Error
	}

	return r.db.Model(&model.ForgotPassword{}).Where("id = ?", existing.ID).
		Updates(map[string]interface{}{"token": token, "expires_at": expiresAt}).Error
}

// DeleteByOwner removes the owner's reset row after a successful reset.
func (r *ForgotPasswordRepository) DeleteByOwner(ownerID int64) error {
	return r.db.Where("owner_id = ?", ownerID).Delete(&model.ForgotPassword{}).Error
}
