package repository

import (
	"time"

	"github.com/taskzen/taskzen/internal/models"
	"gorm.io/gorm"
)

// GormTokenRepository is a GORM implementation of TokenRepository
type GormTokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &GormTokenRepository{db: db}
}

// Create stores a newly issued token
func (r *GormTokenRepository) Create(token *models.AccessToken) error {
	return r.db.Create(token).Error
}

// Find looks a token up with its user preloaded
func (r *GormTokenRepository) Find(token string) (*models.AccessToken, error) {
	var accessToken models.AccessToken
	if err := r.db.Preload("User").Where("token = ?", token).First(&accessToken).Error; err != nil {
		return nil, err
	}
	return &accessToken, nil
}

// Delete revokes a token
func (r *GormTokenRepository) Delete(token string) error {
	return r.db.Where("token = ?", token).Delete(&models.AccessToken{}).Error
}

// DeleteExpired removes tokens that expired before now
func (r *GormTokenRepository) DeleteExpired(now time.Time) (int64, error) {
	result := r.db.Where("expires_at <= ?", now).Delete(&models.AccessToken{})
	return result.RowsAffected, result.Error
}
