package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"learnloop/backend/models"
)

type RefreshTokenRepository struct {
	DB *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{DB: db}
}

// Create stores one row per issuance; concurrent sessions each get their own.
func (r *RefreshTokenRepository) Create(userID uint, token string, expiresAt time.Time) (*models.RefreshToken, error) {
	record := models.RefreshToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	if err := r.DB.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// FindValid returns the token row only while it is live; revoked (deleted)
// and expired tokens both come back nil.
func (r *RefreshTokenRepository) FindValid(token string) (*models.RefreshToken, error) {
	var record models.RefreshToken
	err := r.DB.Where("token = ?", token).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !record.ExpiresAt.After(time.Now()) {
		return nil, nil
	}
	return &record, nil
}

func (r *RefreshTokenRepository) Delete(token string) error {
	return r.DB.Unscoped().Where("token = ?", token).
		Delete(&models.RefreshToken{}).Error
}

// DeleteByUser revokes every session of one user.
func (r *RefreshTokenRepository) DeleteByUser(userID uint) error {
	return r.DB.Unscoped().Where("user_id = ?", userID).
		Delete(&models.RefreshToken{}).Error
}

// DeleteExpired sweeps rows past expiry and reports how many were removed.
func (r *RefreshTokenRepository) DeleteExpired() (int64, error) {
	result := r.DB.Unscoped().Where("expires_at <= ?", time.Now()).
		Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}
