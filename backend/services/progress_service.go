package services

import (
	"time"

	"learnloop/backend/models"
	"learnloop/backend/repositories"
)

type ProgressInput struct {
	UserID      uint `json:"userId"`
	IsCompleted bool `json:"isCompleted"`
	TimeSpent   *int `json:"timeSpent"`
}

// ProgressService records per-user per-concept completion idempotently.
type ProgressService struct {
	progress *repositories.ProgressRepository
}

func NewProgressService(progress *repositories.ProgressRepository) *ProgressService {
	return &ProgressService{progress: progress}
}

// SaveProgress upserts on the (conceptID, userID) key. completed_at is set
// only while the concept is completed and cleared when it is un-completed.
func (s *ProgressService) SaveProgress(conceptID uint, input ProgressInput) (*models.UserConceptProgress, error) {
	if input.UserID == 0 {
		return nil, ErrMissingUserID
	}

	record := &models.UserConceptProgress{
		ConceptID: conceptID,
		UserID:    input.UserID,
		Completed: input.IsCompleted,
	}
	if input.TimeSpent != nil {
		record.TimeSpent = *input.TimeSpent
	}
	if input.IsCompleted {
		now := time.Now()
		record.CompletedAt = &now
	}

	if err := s.progress.Upsert(record, input.TimeSpent != nil); err != nil {
		return nil, err
	}
	return record, nil
}
