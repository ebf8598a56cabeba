package repositories

import (
	"gorm.io/gorm"

	"learnloop/backend/models"
)

type ResponseRepository struct {
	DB *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{DB: db}
}

// Create appends a submission row. Responses are never updated or
// deduplicated so the full answer history stays available.
func (r *ResponseRepository) Create(response *models.UserResponse) error {
	return r.DB.Create(response).Error
}
